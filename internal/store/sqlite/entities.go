package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"campaignwiki/internal/attrs"
	"campaignwiki/internal/entity"
	"campaignwiki/internal/store"
)

const recordColumns = `
	e.id, e.campaign_id, e.name, e.entity_type, e.status, e.description, e.arc_id, e.attributes,
	(SELECT json_group_array(json_object(
		'entity_id', l.entity_id,
		'entity_name', l.entity_name,
		'entity_type', l.entity_type,
		'type', l.rel_type,
		'direction', l.direction) ORDER BY l.direction DESC, l.seq)
	 FROM entity_links l WHERE l.owner_id = e.id) AS relationships`

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(row scanner) (entity.Record, error) {
	var rec entity.Record
	var attributes, relationships string
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
	INSERT INTO entities (id, campaign_id, name, name_normalized, entity_type, status, description, description_normalized, attributes, arc_id, source_file, source_hash, is_placeholder, last_ingested)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, 0, datetime('now'))
	ON CONFLICT (id) DO UPDATE SET
		name = excluded.name,
		name_normalized = excluded.name_normalized,
		entity_type = excluded.entity_type,
		status = excluded.status,
		description = excluded.description,
		description_normalized = excluded.description_normalized,
		attributes = excluded.attributes,
		arc_id = excluded.arc_id,
		source_file = excluded.source_file,
		source_hash = excluded.source_hash,
		is_placeholder = 0,
		last_ingested = datetime('now')
	`

	_, err = c.db.ExecContext(ctx, query,
		e.ID,
		e.CampaignID,
		e.Name,
		strings.ToLower(e.Name),
		e.Type,
		e.Status,
		e.Description,
		strings.ToLower(e.Description),
		string(attrsJSON),
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
	WHERE (? = '' OR e.campaign_id = ?)
	  AND (e.id = ? OR e.name_normalized = ?)
	  AND e.is_placeholder = 0
	ORDER BY (e.id = ?) DESC, e.campaign_id
	LIMIT 1
	`

	rec, err := scanRecord(c.db.QueryRowContext(ctx, query,
		campaignID, campaignID, key, strings.ToLower(strings.TrimSpace(key)), key,
	))
	if errors.Is(err, sql.ErrNoRows) {
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
	WHERE (? = '' OR e.campaign_id = ?)
	  AND (? = '' OR e.entity_type = ?)
	  AND e.is_placeholder = 0
	ORDER BY e.name_normalized, e.id
	`

	entityType := entity.NormalizeType(filter.Type)
	rows, err := c.db.QueryContext(ctx, query, filter.CampaignID, filter.CampaignID, entityType, entityType)
	if err != nil {
		return nil, fmt.Errorf("listing entities: %w", err)
	}
	return collectRecords(rows)
}

func (c *Client) ListSessions(ctx context.Context, campaignID string) ([]entity.Record, error) {
	return c.ListEntities(ctx, store.EntityFilter{CampaignID: campaignID, Type: entity.TypeSession})
}

func (c *Client) CountEntities(ctx context.Context, campaignID string) (map[string]int, error) {
	rows, err := c.db.QueryContext(ctx, `
	SELECT entity_type, COUNT(*)
	FROM entities
	WHERE (? = '' OR campaign_id = ?)
	  AND is_placeholder = 0
	GROUP BY entity_type
	`, campaignID, campaignID)
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

func collectRecords(rows *sql.Rows) ([]entity.Record, error) {
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
