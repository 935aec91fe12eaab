package sqlite

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

	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	var srcID string
	err = tx.QueryRowContext(ctx,
		"SELECT id FROM entities WHERE id = ? AND campaign_id = ?",
		r.FromID, r.CampaignID,
	).Scan(&srcID)
	if err != nil {
		return fmt.Errorf("finding source entity: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
	INSERT INTO entities (id, campaign_id, name, name_normalized, is_placeholder)
	VALUES (?, ?, ?, ?, 1)
	ON CONFLICT DO NOTHING
	`, r.ToID, r.CampaignID, r.ToName, strings.ToLower(r.ToName))
	if err != nil {
		return fmt.Errorf("upserting target entity: %w", err)
	}

	var dstID string
	err = tx.QueryRowContext(ctx,
		"SELECT id FROM entities WHERE campaign_id = ? AND name_normalized = ?",
		r.CampaignID, strings.ToLower(r.ToName),
	).Scan(&dstID)
	if err != nil {
		return fmt.Errorf("finding target entity: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT OR IGNORE INTO edges (src_id, dst_id, rel_type) VALUES (?, ?, ?)`,
		srcID, dstID, r.Type,
	)
	if err != nil {
		return fmt.Errorf("upserting edge: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}
