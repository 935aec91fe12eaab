package postgres

import (
	"context"
	"fmt"
	"strings"

	"campaignwiki/internal/store"
)

func (c *Client) UpsertRelationship(ctx context.Context, r store.RelationshipInput) error {
	if !store.ValidRelationshipType(r.Type) {
		return fmt.Errorf("invalid relationship type: %s", r.Type)
	}

	tx, err := c.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var srcID string
	err = tx.QueryRow(ctx,
		"SELECT id FROM entities WHERE id = $1 AND campaign_id = $2",
		r.FromID, r.CampaignID,
	).Scan(&srcID)
	if err != nil {
		return fmt.Errorf("finding source entity: %w", err)
	}

	nameNormalized := strings.ToLower(r.ToName)
	_, err = tx.Exec(ctx, `
INSERT INTO entities (id, campaign_id, name, name_normalized, is_placeholder)
VALUES ($1, $2, $3, $4, TRUE)
ON CONFLICT DO NOTHING
`, r.ToID, r.CampaignID, r.ToName, nameNormalized)
	if err != nil {
		return fmt.Errorf("upserting target entity: %w", err)
	}

	var dstID string
	err = tx.QueryRow(ctx,
		"SELECT id FROM entities WHERE campaign_id = $1 AND name_normalized = $2",
		r.CampaignID, nameNormalized,
	).Scan(&dstID)
	if err != nil {
		return fmt.Errorf("finding target entity: %w", err)
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO edges (src_id, dst_id, rel_type) VALUES ($1, $2, $3)
ON CONFLICT (src_id, dst_id, rel_type) DO NOTHING`,
		srcID, dstID, r.Type,
	)
	if err != nil {
		return fmt.Errorf("upserting edge: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}
