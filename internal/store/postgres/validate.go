package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"campaignwiki/internal/store"
)

func (c *Client) ListDanglingPlaceholders(ctx context.Context, campaignID string) ([]store.EntitySummary, error) {
	rows, err := c.pool.Query(ctx, `
SELECT id, campaign_id, name, entity_type, source_file FROM entities
WHERE is_placeholder = TRUE
  AND ($1 = '' OR campaign_id = $1)
ORDER BY campaign_id, name_normalized
`, campaignID)
	if err != nil {
		return nil, fmt.Errorf("listing placeholders: %w", err)
	}
	return collectSummaries(rows)
}

func (c *Client) ListOrphanedEntities(ctx context.Context, campaignID string) ([]store.EntitySummary, error) {
	rows, err := c.pool.Query(ctx, `
SELECT e.id, e.campaign_id, e.name, e.entity_type, e.source_file FROM entities e
WHERE NOT EXISTS (SELECT 1 FROM edges WHERE src_id = e.id OR dst_id = e.id)
  AND e.is_placeholder = FALSE
  AND ($1 = '' OR e.campaign_id = $1)
ORDER BY e.campaign_id, e.name_normalized
`, campaignID)
	if err != nil {
		return nil, fmt.Errorf("listing orphaned entities: %w", err)
	}
	return collectSummaries(rows)
}

func collectSummaries(rows pgx.Rows) ([]store.EntitySummary, error) {
	defer rows.Close()

	summaries := []store.EntitySummary{}
	for rows.Next() {
		var s store.EntitySummary
		if err := rows.Scan(&s.ID, &s.CampaignID, &s.Name, &s.Type, &s.SourceFile); err != nil {
			return nil, fmt.Errorf("scanning entity summary: %w", err)
		}
		summaries = append(summaries, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating entity summaries: %w", err)
	}
	return summaries, nil
}
