package dashboard

import (
	"testing"

	"campaignwiki/internal/attrs"
	"campaignwiki/internal/entity"
	"campaignwiki/internal/store"
	"campaignwiki/internal/viewmodel"
)

func quest(id, questType, priority, status string) entity.Record {
	bag := attrs.Bag{"Quest Status": status}
	if questType != "" {
		bag["Quest Type"] = questType
	}
	if priority != "" {
		bag["Priority"] = priority
	}
	return entity.Record{ID: id, Name: id, Type: entity.TypeQuest, Attributes: bag}
}

func session(id string, number int, arcID string) entity.Record {
	return entity.Record{
		ID:         id,
		Name:       id,
		Type:       entity.TypeSession,
		ArcID:      arcID,
		Attributes: attrs.Bag{"session_number": number},
	}
}

func ids(models []viewmodel.ViewModel) []string {
	out := make([]string, 0, len(models))
	for _, m := range models {
		out = append(out, m.ID)
	}
	return out
}

func TestThreads(t *testing.T) {
	mapper := viewmodel.New(viewmodel.Options{})
	quests := []entity.Record{
		quest("side-low", "Side Quest", "Low", "Active"),
		quest("done", "Main Quest", "Critical", "Completed"),
		quest("side-high", "Side Quest", "High", "Active"),
		quest("main", "Main Quest", "", "Active"),
		quest("odd", "Errand", "critical", "Active"),
		quest("personal", "Personal Quest", "Normal", "Active"),
		quest("lost", "Side Quest", "High", "Abandoned"),
	}

	got := ids(Threads(mapper, quests))
	expected := []string{"main", "personal", "side-high", "side-low", "odd"}
	if len(got) != len(expected) {
		t.Fatalf("expected %v, got %v", expected, got)
	}
	for i := range expected {
		if got[i] != expected[i] {
			t.Fatalf("expected %v, got %v", expected, got)
		}
	}
}

func TestActiveParty(t *testing.T) {
	mapper := viewmodel.New(viewmodel.Options{})
	characters := []entity.Record{
		{ID: "lyra", Name: "Lyra", Type: entity.TypeCharacter, Status: "Alive"},
		{ID: "borin", Name: "Borin", Type: entity.TypeCharacter, Status: "Dead"},
		{ID: "tam", Name: "Tam", Type: entity.TypeCharacter, Attributes: attrs.Bag{"status": "Retired"}},
	}

	got := ids(ActiveParty(mapper, characters))
	if len(got) != 1 || got[0] != "lyra" {
		t.Fatalf("expected [lyra], got %v", got)
	}
}

func TestSessionNumber(t *testing.T) {
	t.Run("attribute wins", func(t *testing.T) {
		rec := entity.Record{Name: "Session 9", Attributes: attrs.Bag{"session_number": 3}}
		if got := SessionNumber(rec); got != 3 {
			t.Fatalf("expected 3, got %d", got)
		}
	})

	t.Run("capitalized alias", func(t *testing.T) {
		rec := entity.Record{Name: "Interlude", Attributes: attrs.Bag{"Session": 4}}
		if got := SessionNumber(rec); got != 4 {
			t.Fatalf("expected 4, got %d", got)
		}
	})

	t.Run("falls back to name", func(t *testing.T) {
		rec := entity.Record{Name: "Session 12: The Drowned Bell"}
		if got := SessionNumber(rec); got != 12 {
			t.Fatalf("expected 12, got %d", got)
		}
	})

	t.Run("unparseable attribute", func(t *testing.T) {
		rec := entity.Record{Name: "Prologue", Attributes: attrs.Bag{"session_number": "first"}}
		if got := SessionNumber(rec); got != 0 {
			t.Fatalf("expected 0, got %d", got)
		}
	})
}

func TestBuild(t *testing.T) {
	mapper := viewmodel.New(viewmodel.Options{})
	in := Input{
		Campaign: store.Campaign{
			ID:   "korinis",
			Name: "Korinis",
			Arcs: []store.Arc{
				{ID: "arrival", CampaignID: "korinis", Title: "Arrival", Order: 1},
				{ID: "siege", CampaignID: "korinis", Title: "The Siege", Order: 2},
			},
		},
		Sessions: []entity.Record{
			session("s1", 1, "arrival"),
			session("s3", 3, "siege"),
			session("s2", 2, "arrival"),
			session("interlude", 0, ""),
		},
		Quests: []entity.Record{
			quest("q1", "Main Quest", "High", "Active"),
			quest("q2", "Side Quest", "", "Completed"),
		},
		Characters: []entity.Record{
			{ID: "lyra", Name: "Lyra", Type: entity.TypeCharacter, Status: "Alive"},
		},
		Counts: map[string]int{
			entity.TypeNPC:      4,
			entity.TypeLocation: 2,
		},
	}

	dash := Build(mapper, in)

	if dash.Campaign.ID != "korinis" {
		t.Fatalf("expected campaign korinis, got %q", dash.Campaign.ID)
	}
	if len(dash.Progression) != 4 || dash.Progression[0].ID != "s3" || dash.Progression[3].ID != "interlude" {
		t.Fatalf("unexpected progression: %+v", dash.Progression)
	}
	if dash.Current.LatestSession == nil || dash.Current.LatestSession.Number != 3 {
		t.Fatalf("expected latest session 3, got %+v", dash.Current.LatestSession)
	}
	if dash.Current.Arc == nil || dash.Current.Arc.Title != "The Siege" {
		t.Fatalf("expected current arc The Siege, got %+v", dash.Current.Arc)
	}
	if len(dash.OtherArcs) != 1 || dash.OtherArcs[0].ID != "arrival" {
		t.Fatalf("unexpected other arcs: %+v", dash.OtherArcs)
	}
	if len(dash.OtherArcs[0].Sessions) != 2 || dash.OtherArcs[0].Sessions[0].Number != 2 {
		t.Fatalf("expected arrival sessions newest first, got %+v", dash.OtherArcs[0].Sessions)
	}
	if len(dash.Threads) != 1 || dash.Threads[0].ID != "q1" {
		t.Fatalf("expected only q1 open, got %v", ids(dash.Threads))
	}
	if len(dash.ActiveParty) != 1 {
		t.Fatalf("expected one party member, got %d", len(dash.ActiveParty))
	}

	expected := Counts{Sessions: 4, Arcs: 2, Quests: 1, NPCs: 4, Locations: 2}
	if dash.Counts != expected {
		t.Fatalf("expected %+v, got %+v", expected, dash.Counts)
	}
}

func TestBuildEmpty(t *testing.T) {
	dash := Build(nil, Input{})
	if dash.Current.Arc != nil || dash.Current.LatestSession != nil {
		t.Fatalf("expected no current arc, got %+v", dash.Current)
	}
	if dash.Threads == nil || dash.ActiveParty == nil || dash.Progression == nil || dash.OtherArcs == nil {
		t.Fatalf("expected empty slices, got %+v", dash)
	}
}
