package sqlite

import (
	"context"
	"fmt"
	"strings"

	"campaignwiki/internal/entity"
	"campaignwiki/internal/store"
)

func (c *Client) SearchEntities(ctx context.Context, q store.SearchQuery) ([]entity.Record, error) {
	needle := strings.ToLower(strings.TrimSpace(q.Text))
	if needle == "" {
		return nil, fmt.Errorf("query must not be empty")
	}

	limit := q.Limit
	if limit <= 0 {
		limit = -1
	}

	query := `
	SELECT` + recordColumns + `
	FROM entities e
	WHERE (? = '' OR e.campaign_id = ?)
	  AND (? = '' OR e.entity_type = ?)
	  AND (? = '' OR e.entity_type <> ?)
	  AND (instr(e.name_normalized, ?) > 0 OR instr(e.description_normalized, ?) > 0)
	  AND e.is_placeholder = 0
	ORDER BY instr(e.name_normalized, ?) = 0, e.name_normalized, e.id
	LIMIT ?
	`

	entityType := entity.NormalizeType(q.Type)
	exclude := entity.NormalizeType(q.ExcludeType)
	rows, err := c.db.QueryContext(ctx, query,
		q.CampaignID, q.CampaignID,
		entityType, entityType,
		exclude, exclude,
		needle, needle,
		needle,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("searching entities: %w", err)
	}
	return collectRecords(rows)
}
