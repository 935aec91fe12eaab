package postgres

import (
	"context"
	"fmt"
)

func (c *Client) RemoveStaleEntities(ctx context.Context, campaignID string, currentSourceFiles []string) (int64, error) {
	if len(currentSourceFiles) == 0 {
		return 0, nil
	}

	query := `
DELETE FROM entities
WHERE campaign_id = $1
  AND source_file <> ''
  AND NOT (source_file = ANY($2))
  AND is_placeholder = FALSE
RETURNING 1
`

	rows, err := c.pool.Query(ctx, query, campaignID, currentSourceFiles)
	if err != nil {
		return 0, fmt.Errorf("removing stale entities: %w", err)
	}
	defer rows.Close()

	var count int64
	for rows.Next() {
		count++
	}
	if err := rows.Err(); err != nil {
		return 0, fmt.Errorf("removing stale entities: %w", err)
	}
	return count, nil
}

func (c *Client) GetSourceHashes(ctx context.Context, campaignID string) (map[string]string, error) {
	rows, err := c.pool.Query(ctx, `
SELECT source_file, source_hash FROM entities
WHERE campaign_id = $1
  AND source_file <> ''
  AND is_placeholder = FALSE
`, campaignID)
	if err != nil {
		return nil, fmt.Errorf("query source hashes: %w", err)
	}
	defer rows.Close()

	hashes := make(map[string]string)
	for rows.Next() {
		var sourceFile, sourceHash string
		if err := rows.Scan(&sourceFile, &sourceHash); err != nil {
			return nil, fmt.Errorf("scanning source hash: %w", err)
		}
		hashes[sourceFile] = sourceHash
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating source hashes: %w", err)
	}
	return hashes, nil
}

func (c *Client) RemoveSupersededEntities(ctx context.Context, campaignID, sourceFile, keepID string) (int64, error) {
	if sourceFile == "" {
		return 0, nil
	}

	tag, err := c.pool.Exec(ctx, `
DELETE FROM entities
WHERE campaign_id = $1
  AND source_file = $2
  AND id <> $3
  AND is_placeholder = FALSE
`, campaignID, sourceFile, keepID)
	if err != nil {
		return 0, fmt.Errorf("removing superseded entities: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (c *Client) ClearRelationships(ctx context.Context, campaignID, fromID string) error {
	_, err := c.pool.Exec(ctx, `
DELETE FROM edges
WHERE src_id IN (SELECT id FROM entities WHERE id = $1 AND campaign_id = $2)
`, fromID, campaignID)
	if err != nil {
		return fmt.Errorf("clearing relationships: %w", err)
	}
	return nil
}
