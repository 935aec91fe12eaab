package sqlite

import (
	"context"
	"fmt"
	"strings"
)

func (c *Client) RemoveStaleEntities(ctx context.Context, campaignID string, currentSourceFiles []string) (int64, error) {
	if len(currentSourceFiles) == 0 {
		return 0, nil
	}

	placeholders := make([]string, len(currentSourceFiles))
	args := make([]any, len(currentSourceFiles)+1)
	args[0] = campaignID
	for i, f := range currentSourceFiles {
		placeholders[i] = "?"
		args[i+1] = f
	}

	query := fmt.Sprintf(`
	DELETE FROM entities
	WHERE campaign_id = ?
	  AND source_file <> ''
	  AND source_file NOT IN (%s)
	  AND is_placeholder = 0
	`, strings.Join(placeholders, ", "))

	result, err := c.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("removing stale entities: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("getting rows affected: %w", err)
	}
	return affected, nil
}

func (c *Client) GetSourceHashes(ctx context.Context, campaignID string) (map[string]string, error) {
	rows, err := c.db.QueryContext(ctx, `
	SELECT source_file, source_hash FROM entities
	WHERE campaign_id = ?
	  AND source_file <> ''
	  AND is_placeholder = 0
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

	result, err := c.db.ExecContext(ctx, `
	DELETE FROM entities
	WHERE campaign_id = ?
	  AND source_file = ?
	  AND id <> ?
	  AND is_placeholder = 0
	`, campaignID, sourceFile, keepID)
	if err != nil {
		return 0, fmt.Errorf("removing superseded entities: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("getting rows affected: %w", err)
	}
	return affected, nil
}

func (c *Client) ClearRelationships(ctx context.Context, campaignID, fromID string) error {
	_, err := c.db.ExecContext(ctx, `
	DELETE FROM edges
	WHERE src_id IN (SELECT id FROM entities WHERE id = ? AND campaign_id = ?)
	`, fromID, campaignID)
	if err != nil {
		return fmt.Errorf("clearing relationships: %w", err)
	}
	return nil
}
