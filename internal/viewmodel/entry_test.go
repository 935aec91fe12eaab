package viewmodel

import (
	"fmt"
	"testing"

	"campaignwiki/internal/attrs"
	"campaignwiki/internal/entity"
)

func TestMapperEntry(t *testing.T) {
	mapper := New(Options{BasePath: "/wiki-assets/", MaxConnections: 2})

	rels := make([]any, 0, 4)
	for i := 0; i < 4; i++ {
		rels = append(rels, map[string]any{"entity_id": fmt.Sprintf("n%d", i), "entity_name": "Someone", "entity_type": "npc", "type": "KNOWS"})
	}

	entry := mapper.Entry(entity.Record{
		ID:   "loc-1",
		Name: "Korinis",
		Type: "location",
		Attributes: attrs.Bag{
			"type":             "City",
			"background_image": "../images/korinis.jpg",
			"icon":             "/icons/korinis.png",
		},
		Relationships: rels,
	}, "location")

	if entry.Icon != "castle" {
		t.Fatalf("expected castle icon, got %q", entry.Icon)
	}
	if entry.Config.Label != "Location" {
		t.Fatalf("unexpected config %#v", entry.Config)
	}
	if entry.BackgroundImage != "/wiki-assets/images/korinis.jpg" || entry.IconImage != "/wiki-assets/icons/korinis.png" {
		t.Fatalf("unexpected images %q %q", entry.BackgroundImage, entry.IconImage)
	}
	if len(entry.Connections) != 2 || entry.Connections[0].ID != "n0" {
		t.Fatalf("expected two bounded connections, got %#v", entry.Connections)
	}
	if len(entry.Relationships) != 4 {
		t.Fatalf("expected all relationships on the view model, got %d", len(entry.Relationships))
	}
}

func TestMapperConnections(t *testing.T) {
	mapper := New(Options{MaxConnections: 3})
	rec := entity.Record{Relationships: `[{"entity_id":"a"},{"entity_id":"b"},{"entity_id":"c"},{"entity_id":"d"}]`}

	if got := mapper.Connections(rec, 0); len(got) != 3 {
		t.Fatalf("expected mapper bound, got %d", len(got))
	}
	if got := mapper.Connections(rec, 1); len(got) != 1 {
		t.Fatalf("expected explicit bound, got %d", len(got))
	}
}
