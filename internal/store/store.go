package store

import (
	"context"
	"errors"

	"campaignwiki/internal/entity"
)

var ErrNotFound = errors.New("not found")

// Reader is the read side used by the wiki service. Entity reads carry
// their relationships as the backend's aggregated JSON array.
type Reader interface {
	ListCampaigns(ctx context.Context) ([]Campaign, error)
	GetCampaign(ctx context.Context, id string) (*Campaign, error)
	ListEntities(ctx context.Context, filter EntityFilter) ([]entity.Record, error)
	GetEntity(ctx context.Context, campaignID, key string) (*entity.Record, error)
	ListSessions(ctx context.Context, campaignID string) ([]entity.Record, error)
	SearchEntities(ctx context.Context, q SearchQuery) ([]entity.Record, error)
	CountEntities(ctx context.Context, campaignID string) (map[string]int, error)
}

type Store interface {
	Reader

	Close(ctx context.Context) error
	EnsureSchema(ctx context.Context) error

	UpsertCampaign(ctx context.Context, c CampaignInput) error
	UpsertArc(ctx context.Context, a ArcInput) error
	UpsertEntity(ctx context.Context, e EntityInput) error
	UpsertRelationship(ctx context.Context, r RelationshipInput) error
	GetSourceHashes(ctx context.Context, campaignID string) (map[string]string, error)
	RemoveStaleEntities(ctx context.Context, campaignID string, currentSourceFiles []string) (int64, error)
	// RemoveSupersededEntities deletes the entities previously ingested from
	// sourceFile under an id other than keepID, as left behind by a renamed
	// title.
	RemoveSupersededEntities(ctx context.Context, campaignID, sourceFile, keepID string) (int64, error)
	// ClearRelationships deletes the outgoing edges of an entity so a
	// re-ingested document declares its links from scratch.
	ClearRelationships(ctx context.Context, campaignID, fromID string) error

	ListDanglingPlaceholders(ctx context.Context, campaignID string) ([]EntitySummary, error)
	ListOrphanedEntities(ctx context.Context, campaignID string) ([]EntitySummary, error)
}
