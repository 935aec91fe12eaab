package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"campaignwiki/internal/attrs"
	"campaignwiki/internal/entity"
	"campaignwiki/internal/store"
)

const recordColumns = `
    e.id, e.campaign_id, e.name, e.entity_type, e.status, e.description, e.arc_id, e.attributes,
    COALESCE((
        SELECT json_agg(json_build_object(
            'entity_id', l.entity_id,
            'entity_name', l.entity_name,
            'entity_type', l.entity_type,
            'type', l.rel_type,
            'direction', l.direction) ORDER BY l.direction DESC, l.seq)
        FROM entity_links l WHERE l.owner_id = e.id
    ), '[]'::json) AS relationships`

func scanRecord(row pgx.Row) (entity.Record, error) {
	var rec entity.Record
	var attributes, relationships []byte
	err := row.Scan(
		&rec.ID,
		&rec.CampaignID,
		&rec.Name,
		&rec.Type,
		&rec.Status,
		&rec.Description,
		&rec.ArcID,
		&attributes,
		&relationships,
	)
	if err != nil {
		return entity.Record{}, err
	}
	rec.Attributes = attrs.Parse(json.RawMessage(attributes))
	rec.Relationships = json.RawMessage(relationships)
	return rec, nil
}

func (c *Client) UpsertEntity(ctx context.Context, e store.EntityInput) error {
	attributes := e.Attributes
	if attributes == nil {
		attributes = map[string]any{}
	}
	attrsJSON, err := json.Marshal(attributes)
	if err != nil {
		return fmt.Errorf("marshaling attributes: %w", err)
	}

	query := `
INSERT INTO entities (id, campaign_id, name, name_normalized, entity_type, status, description, attributes, arc_id, source_file, source_hash, is_placeholder, last_ingested)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, FALSE, now())
ON CONFLICT (id) DO UPDATE SET
    name = EXCLUDED.name,
    name_normalized = EXCLUDED.name_normalized,
    entity_type = EXCLUDED.entity_type,
    status = EXCLUDED.status,
    description = EXCLUDED.description,
    attributes = EXCLUDED.attributes,
    arc_id = EXCLUDED.arc_id,
    source_file = EXCLUDED.source_file,
    source_hash = EXCLUDED.source_hash,
    is_placeholder = FALSE,
    last_ingested = now()
`

	_, err = c.pool.Exec(ctx, query,
		e.ID,
		e.CampaignID,
		e.Name,
		strings.ToLower(e.Name),
		e.Type,
		e.Status,
		e.Description,
		attrsJSON,
		e.ArcID,
		e.SourceFile,
		e.SourceHash,
	)
	if err != nil {
		return fmt.Errorf("upserting entity: %w", err)
	}
	return nil
}

// GetEntity resolves key as an entity id, then as a case-insensitive name.
// An empty campaignID searches every campaign.
func (c *Client) GetEntity(ctx context.Context, campaignID, key string) (*entity.Record, error) {
	query := `
SELECT` + recordColumns + `
FROM entities e
WHERE ($1 = '' OR e.campaign_id = $1)
  AND (e.id = $2 OR e.name_normalized = $3)
  AND e.is_placeholder = FALSE
ORDER BY (e.id = $2) DESC, e.campaign_id
LIMIT 1
`

	rec, err := scanRecord(c.pool.QueryRow(ctx, query,
		campaignID, key, strings.ToLower(strings.TrimSpace(key)),
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting entity: %w", err)
	}
	return &rec, nil
}

func (c *Client) ListEntities(ctx context.Context, filter store.EntityFilter) ([]entity.Record, error) {
	query := `
SELECT` + recordColumns + `
FROM entities e
WHERE ($1 = '' OR e.campaign_id = $1)
  AND ($2 = '' OR e.entity_type = $2)
  AND e.is_placeholder = FALSE
ORDER BY e.name_normalized, e.id
`

	rows, err := c.pool.Query(ctx, query, filter.CampaignID, entity.NormalizeType(filter.Type))
	if err != nil {
		return nil, fmt.Errorf("listing entities: %w", err)
	}
	return collectRecords(rows)
}

func (c *Client) ListSessions(ctx context.Context, campaignID string) ([]entity.Record, error) {
	return c.ListEntities(ctx, store.EntityFilter{CampaignID: campaignID, Type: entity.TypeSession})
}

func (c *Client) CountEntities(ctx context.Context, campaignID string) (map[string]int, error) {
	rows, err := c.pool.Query(ctx, `
SELECT entity_type, COUNT(*)
FROM entities
WHERE ($1 = '' OR campaign_id = $1)
  AND is_placeholder = FALSE
GROUP BY entity_type
`, campaignID)
	if err != nil {
		return nil, fmt.Errorf("counting entities: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var entityType string
		var n int
		if err := rows.Scan(&entityType, &n); err != nil {
			return nil, fmt.Errorf("scanning entity count: %w", err)
		}
		counts[entityType] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating entity counts: %w", err)
	}
	return counts, nil
}

func collectRecords(rows pgx.Rows) ([]entity.Record, error) {
	defer rows.Close()

	records := []entity.Record{}
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning entity: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating entity rows: %w", err)
	}
	return records, nil
}
