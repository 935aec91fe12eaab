package postgres

import (
	"context"
	"fmt"
)

func (c *Client) EnsureSchema(ctx context.Context) error {
	// Executed as one implicit transaction. IF NOT EXISTS keeps it idempotent;
	// destructive changes need a migration tool.
	ddl := `
CREATE TABLE IF NOT EXISTS campaigns (
    id          TEXT PRIMARY KEY,
    name        TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS arcs (
    id          TEXT NOT NULL,
    campaign_id TEXT NOT NULL REFERENCES campaigns(id) ON DELETE CASCADE,
    title       TEXT NOT NULL DEFAULT '',
    description TEXT NOT NULL DEFAULT '',
    sort_order  INTEGER NOT NULL DEFAULT 0,
    PRIMARY KEY (campaign_id, id)
);

CREATE TABLE IF NOT EXISTS entities (
    id              TEXT PRIMARY KEY,
    campaign_id     TEXT NOT NULL REFERENCES campaigns(id) ON DELETE CASCADE,
    name            TEXT NOT NULL,
    name_normalized TEXT NOT NULL,
    entity_type     TEXT NOT NULL DEFAULT '',
    status          TEXT NOT NULL DEFAULT '',
    description     TEXT NOT NULL DEFAULT '',
    attributes      JSONB NOT NULL DEFAULT '{}',
    arc_id          TEXT NOT NULL DEFAULT '',
    source_file     TEXT NOT NULL DEFAULT '',
    source_hash     TEXT NOT NULL DEFAULT '',
    is_placeholder  BOOLEAN NOT NULL DEFAULT FALSE,
    last_ingested   TIMESTAMPTZ DEFAULT now(),
    CONSTRAINT uq_entity_name UNIQUE (campaign_id, name_normalized)
);

CREATE TABLE IF NOT EXISTS edges (
    id       BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
    src_id   TEXT NOT NULL REFERENCES entities(id) ON DELETE CASCADE,
    dst_id   TEXT NOT NULL REFERENCES entities(id) ON DELETE CASCADE,
    rel_type TEXT NOT NULL,
    CONSTRAINT uq_edge UNIQUE (src_id, dst_id, rel_type)
);

CREATE INDEX IF NOT EXISTS idx_entities_campaign ON entities (campaign_id);
CREATE INDEX IF NOT EXISTS idx_entities_campaign_type ON entities (campaign_id, entity_type);
CREATE INDEX IF NOT EXISTS idx_entities_source_file ON entities (campaign_id, source_file);
CREATE INDEX IF NOT EXISTS idx_entities_placeholder ON entities (is_placeholder) WHERE is_placeholder = TRUE;
CREATE INDEX IF NOT EXISTS idx_edges_src ON edges (src_id);
CREATE INDEX IF NOT EXISTS idx_edges_dst ON edges (dst_id);

CREATE OR REPLACE VIEW entity_links AS
SELECT ed.id AS seq, ed.src_id AS owner_id, t.id AS entity_id, t.name AS entity_name,
    t.entity_type AS entity_type, ed.rel_type AS rel_type, 'outgoing'::text AS direction
FROM edges ed
JOIN entities t ON t.id = ed.dst_id
UNION ALL
SELECT ed.id, ed.dst_id, s.id, s.name, s.entity_type, ed.rel_type, 'incoming'::text
FROM edges ed
JOIN entities s ON s.id = ed.src_id;
`
	_, err := c.pool.Exec(ctx, ddl)
	if err != nil {
		return fmt.Errorf("ensuring schema: %w", err)
	}
	return nil
}
