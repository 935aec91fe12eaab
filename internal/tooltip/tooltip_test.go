package tooltip

import (
	"testing"

	"campaignwiki/internal/attrs"
	"campaignwiki/internal/entity"
	"campaignwiki/internal/viewmodel"
)

func TestBuildCharacter(t *testing.T) {
	builder := NewBuilder(nil)
	tip := builder.Build(entity.Record{
		ID:   "c1",
		Name: "Mara",
		Type: "character",
		Attributes: attrs.Bag{
			"Level":            4,
			"race":             "Elf",
			"Class":            "Ranger",
			"Status":           "Alive",
			"hp":               "31",
			"armor class":      15,
			"Speed":            "35 ft",
			"background_image": "../img/mara.png",
		},
	}, "")

	if tip.Subtitle != "Lvl 4 • Elf • Ranger" {
		t.Fatalf("unexpected subtitle %q", tip.Subtitle)
	}
	if len(tip.Tags) != 1 || tip.Tags[0].Value != "Alive" || tip.Tags[0].Tone != ToneSuccess {
		t.Fatalf("unexpected tags %#v", tip.Tags)
	}
	if tip.Stats.HP != "31" || tip.Stats.ArmorClass != "15" || tip.Stats.Movement != "35 ft" {
		t.Fatalf("unexpected stats %#v", tip.Stats)
	}
	if tip.Image != "/img/mara.png" {
		t.Fatalf("unexpected image %q", tip.Image)
	}
	if tip.Label != "Character" || tip.Icon != "user" || tip.Path != "/wiki/character/c1" {
		t.Fatalf("unexpected identity %#v", tip)
	}
}

func TestBuildNPC(t *testing.T) {
	tip := NewBuilder(nil).Build(entity.Record{
		ID:     "n1",
		Name:   "Bram",
		Type:   "npc",
		Status: "Dead",
		Attributes: attrs.Bag{
			"gender":      "Male",
			"role":        "Smuggler",
			"affinity":    "Hostile",
			"personality": []any{map[string]any{"value": "Gruff."}, "Loyal to coin."},
		},
	}, "npc")

	if tip.Subtitle != "Male • Smuggler" {
		t.Fatalf("unexpected subtitle %q", tip.Subtitle)
	}
	if len(tip.Tags) != 2 {
		t.Fatalf("expected status and affinity tags, got %#v", tip.Tags)
	}
	if tip.Tags[0].Field != "status" || tip.Tags[0].Value != "Dead" || tip.Tags[0].Tone != ToneDanger {
		t.Fatalf("unexpected status tag %#v", tip.Tags[0])
	}
	if tip.Tags[1].Tone != ToneWarning {
		t.Fatalf("unexpected affinity tone %#v", tip.Tags[1])
	}
	if tip.Stats.Personality != "Gruff. Loyal to coin." {
		t.Fatalf("unexpected personality %q", tip.Stats.Personality)
	}
	if tip.Stats.HP != "" {
		t.Fatalf("expected no hp for npcs")
	}
}

func TestBuildOtherProfiles(t *testing.T) {
	builder := NewBuilder(viewmodel.New(viewmodel.Options{BasePath: "/assets/"}))

	tests := []struct {
		name     string
		rec      entity.Record
		subtitle string
	}{
		{name: "location", rec: entity.Record{Type: "location", Attributes: attrs.Bag{"type": "City", "parent_location": "Korinis"}}, subtitle: "City • Korinis"},
		{name: "quest", rec: entity.Record{Type: "quest", Attributes: attrs.Bag{"Quest Type": "Main Quest"}}, subtitle: "Main Quest"},
		{name: "session", rec: entity.Record{Type: "session", Attributes: attrs.Bag{"session_number": 7, "session_date": "2024-05-01"}}, subtitle: "Session 7 • 2024-05-01"},
		{name: "faction", rec: entity.Record{Type: "faction", Attributes: attrs.Bag{"Affinity": "Neutral"}}, subtitle: "Neutral"},
		{name: "unknown type", rec: entity.Record{Type: "artifact", Attributes: attrs.Bag{"Type": "Relic"}}, subtitle: "Relic"},
		{name: "empty fields are skipped", rec: entity.Record{Type: "npc"}, subtitle: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := builder.Build(tt.rec, "").Subtitle; got != tt.subtitle {
				t.Fatalf("expected %q, got %q", tt.subtitle, got)
			}
		})
	}
}

func TestBuildLocationRuler(t *testing.T) {
	tip := NewBuilder(nil).Build(entity.Record{Type: "location", Attributes: attrs.Bag{"Ruler": "Queen Ysolde", "type": "forest"}}, "")
	if tip.Stats.Ruler != "Queen Ysolde" {
		t.Fatalf("unexpected ruler %q", tip.Stats.Ruler)
	}
	if tip.Icon != "trees" {
		t.Fatalf("expected refined location icon, got %q", tip.Icon)
	}
}

func TestBuildQuestTags(t *testing.T) {
	tip := NewBuilder(nil).Build(entity.Record{Type: "quest", Attributes: attrs.Bag{"Status": "Active", "Priority": "High"}}, "")
	if len(tip.Tags) != 2 || tip.Tags[1].Field != "priority" || tip.Tags[1].Value != "High" {
		t.Fatalf("unexpected tags %#v", tip.Tags)
	}
}

func TestVariants(t *testing.T) {
	got := variants("Quest Type", "hit points")
	expected := []string{"Quest Type", "quest type", "hit points", "Hit points", "Hit Points"}
	if len(got) != len(expected) {
		t.Fatalf("expected %v, got %v", expected, got)
	}
	for i := range expected {
		if got[i] != expected[i] {
			t.Fatalf("expected %v, got %v", expected, got)
		}
	}
}
