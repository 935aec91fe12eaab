package search

import (
	"context"
	"errors"
	"strings"
	"testing"

	"campaignwiki/internal/attrs"
	"campaignwiki/internal/entity"
	"campaignwiki/internal/store"
)

type mockSearcher struct {
	queries  []store.SearchQuery
	sessions []entity.Record
	entities []entity.Record
	err      error
}

func (m *mockSearcher) SearchEntities(ctx context.Context, q store.SearchQuery) ([]entity.Record, error) {
	m.queries = append(m.queries, q)
	if m.err != nil {
		return nil, m.err
	}
	if q.Type == entity.TypeSession {
		return m.sessions, nil
	}
	return m.entities, nil
}

func TestSearch(t *testing.T) {
	t.Run("blank query skips the store", func(t *testing.T) {
		db := &mockSearcher{}
		results, err := New(db, nil).Search(context.Background(), "korinis", "   ")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if results == nil || len(results) != 0 {
			t.Fatalf("expected empty results, got %#v", results)
		}
		if len(db.queries) != 0 {
			t.Fatalf("expected no store calls, got %d", len(db.queries))
		}
	})

	t.Run("sessions come first with limits", func(t *testing.T) {
		db := &mockSearcher{
			sessions: []entity.Record{{
				ID: "s1", Name: "Session 1", Type: "session",
				Description: "The party lands at the harbor.",
				Attributes:  attrs.Bag{"session_number": 1, "Date": "Spring 1201"},
			}},
			entities: []entity.Record{{ID: "aldric", Name: "Aldric", Type: "npc", Description: "Harbor **watchman**"}},
		}

		results, err := New(db, nil).Search(context.Background(), "korinis", " harbor ")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(db.queries) != 2 {
			t.Fatalf("expected 2 store calls, got %d", len(db.queries))
		}
		if db.queries[0].Limit != SessionLimit || db.queries[0].Type != entity.TypeSession || db.queries[0].Text != "harbor" {
			t.Fatalf("unexpected session query: %#v", db.queries[0])
		}
		if db.queries[1].Limit != EntityLimit || db.queries[1].ExcludeType != entity.TypeSession || db.queries[1].CampaignID != "korinis" {
			t.Fatalf("unexpected entity query: %#v", db.queries[1])
		}

		if len(results) != 2 {
			t.Fatalf("expected 2 results, got %d", len(results))
		}
		if results[0].ID != "s1" || results[0].Session != "1" || results[0].Date != "Spring 1201" {
			t.Fatalf("unexpected session result: %#v", results[0])
		}
		if results[0].Description != "The party lands at the harbor." {
			t.Fatalf("expected narrative snippet, got %q", results[0].Description)
		}
		if results[1].Path != "/wiki/npc/aldric" || results[1].Label != "NPC" {
			t.Fatalf("unexpected entity result: %#v", results[1])
		}
		if results[1].Description != "Harbor watchman" {
			t.Fatalf("expected stripped description, got %q", results[1].Description)
		}
	})

	t.Run("store error", func(t *testing.T) {
		db := &mockSearcher{err: errors.New("boom")}
		if _, err := New(db, nil).Search(context.Background(), "korinis", "x"); err == nil {
			t.Fatalf("expected error")
		}
	})
}

func TestSessionSnippet(t *testing.T) {
	t.Run("summary attribute wins", func(t *testing.T) {
		rec := entity.Record{Description: "long narrative", Attributes: attrs.Bag{"Summary": "Short recap"}}
		if got := sessionSnippet(rec); got != "Short recap" {
			t.Fatalf("expected summary, got %q", got)
		}
	})

	t.Run("narrative is cut at 150 runes", func(t *testing.T) {
		rec := entity.Record{Description: strings.Repeat("é", 200)}
		got := sessionSnippet(rec)
		if len([]rune(got)) != 150 {
			t.Fatalf("expected 150 runes, got %d", len([]rune(got)))
		}
	})

	t.Run("empty", func(t *testing.T) {
		if got := sessionSnippet(entity.Record{}); got != "" {
			t.Fatalf("expected empty snippet, got %q", got)
		}
	})
}
