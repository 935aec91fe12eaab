package postgres

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

	var limit any
	if q.Limit > 0 {
		limit = q.Limit
	}

	sql := `
SELECT` + recordColumns + `
FROM entities e
WHERE ($1 = '' OR e.campaign_id = $1)
  AND ($2 = '' OR e.entity_type = $2)
  AND ($3 = '' OR e.entity_type <> $3)
  AND (strpos(e.name_normalized, $4) > 0 OR strpos(lower(e.description), $4) > 0)
  AND e.is_placeholder = FALSE
ORDER BY strpos(e.name_normalized, $4) = 0, e.name_normalized, e.id
LIMIT $5
`

	rows, err := c.pool.Query(ctx, sql,
		q.CampaignID,
		entity.NormalizeType(q.Type),
		entity.NormalizeType(q.ExcludeType),
		needle,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("searching entities: %w", err)
	}
	return collectRecords(rows)
}
