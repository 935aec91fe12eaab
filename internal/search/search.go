// Package search merges session and entity matches into one result list.
package search

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"campaignwiki/internal/attrs"
	"campaignwiki/internal/entity"
	"campaignwiki/internal/store"
	"campaignwiki/internal/viewmodel"
)

const (
	SessionLimit = 5
	EntityLimit  = 8

	snippetRunes = 150
)

type Searcher interface {
	SearchEntities(ctx context.Context, q store.SearchQuery) ([]entity.Record, error)
}

type Result struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Type        string `json:"type"`
	Label       string `json:"label"`
	Icon        string `json:"icon"`
	Color       string `json:"color"`
	Path        string `json:"path"`
	Description string `json:"description"`
	Session     string `json:"session,omitempty"`
	Date        string `json:"date,omitempty"`
}

type Service struct {
	db     Searcher
	mapper *viewmodel.Mapper
}

func New(db Searcher, mapper *viewmodel.Mapper) *Service {
	if mapper == nil {
		mapper = viewmodel.New(viewmodel.Options{})
	}
	return &Service{db: db, mapper: mapper}
}

// Search returns up to SessionLimit sessions followed by up to EntityLimit
// other entities whose name or description contains query. A blank query
// returns no results without touching the store.
func (s *Service) Search(ctx context.Context, campaignID, query string) ([]Result, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []Result{}, nil
	}

	sessions, err := s.db.SearchEntities(ctx, store.SearchQuery{
		CampaignID: campaignID,
		Text:       query,
		Type:       entity.TypeSession,
		Limit:      SessionLimit,
	})
	if err != nil {
		return nil, fmt.Errorf("searching sessions: %w", err)
	}

	entities, err := s.db.SearchEntities(ctx, store.SearchQuery{
		CampaignID:  campaignID,
		Text:        query,
		ExcludeType: entity.TypeSession,
		Limit:       EntityLimit,
	})
	if err != nil {
		return nil, fmt.Errorf("searching entities: %w", err)
	}

	results := make([]Result, 0, len(sessions)+len(entities))
	for _, rec := range sessions {
		result := s.result(rec, entity.TypeSession)
		result.Description = sessionSnippet(rec)
		result.Session = attrs.String(rec.Attributes, entity.SessionNumberKeys...)
		result.Date = attrs.String(rec.Attributes, "session_date", "Date")
		results = append(results, result)
	}
	for _, rec := range entities {
		results = append(results, s.result(rec, ""))
	}
	return results, nil
}

func (s *Service) result(rec entity.Record, contextType string) Result {
	model := s.mapper.Map(rec, contextType)
	cfg := s.mapper.Catalog().ConfigFor(model.Type)
	return Result{
		ID:          model.ID,
		Name:        model.Name,
		Type:        model.Type,
		Label:       cfg.Label,
		Icon:        s.mapper.Catalog().IconFor(rec),
		Color:       cfg.Color,
		Path:        model.Path,
		Description: model.Description,
	}
}

// sessionSnippet prefers the Summary attribute, then the opening of the
// session narrative.
func sessionSnippet(rec entity.Record) string {
	if summary := attrs.String(rec.Attributes, "Summary"); summary != "" {
		return summary
	}
	return truncateRunes(strings.TrimSpace(rec.Description), snippetRunes)
}

func truncateRunes(text string, n int) string {
	if utf8.RuneCountInString(text) <= n {
		return text
	}
	runes := []rune(text)
	return string(runes[:n])
}
