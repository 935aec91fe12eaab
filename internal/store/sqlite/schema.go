package sqlite

import (
	"context"
	"fmt"
	"strings"
)

const ddl = `
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
	-- lowercased in Go; SQLite's lower() only folds ASCII
	description_normalized TEXT NOT NULL DEFAULT '',
	attributes      TEXT NOT NULL DEFAULT '{}',
	arc_id          TEXT NOT NULL DEFAULT '',
	source_file     TEXT NOT NULL DEFAULT '',
	source_hash     TEXT NOT NULL DEFAULT '',
	is_placeholder  INTEGER NOT NULL DEFAULT 0,
	last_ingested   TEXT DEFAULT (datetime('now')),
	CONSTRAINT uq_entity_name UNIQUE (campaign_id, name_normalized)
);

CREATE TABLE IF NOT EXISTS edges (
	id       INTEGER PRIMARY KEY AUTOINCREMENT,
	src_id   TEXT NOT NULL REFERENCES entities(id) ON DELETE CASCADE,
	dst_id   TEXT NOT NULL REFERENCES entities(id) ON DELETE CASCADE,
	rel_type TEXT NOT NULL,
	CONSTRAINT uq_edge UNIQUE (src_id, dst_id, rel_type)
);

CREATE INDEX IF NOT EXISTS idx_entities_campaign ON entities (campaign_id);
CREATE INDEX IF NOT EXISTS idx_entities_campaign_type ON entities (campaign_id, entity_type);
CREATE INDEX IF NOT EXISTS idx_entities_source_file ON entities (campaign_id, source_file);
CREATE INDEX IF NOT EXISTS idx_entities_placeholder ON entities (is_placeholder) WHERE is_placeholder = 1;
CREATE INDEX IF NOT EXISTS idx_edges_src ON edges (src_id);
CREATE INDEX IF NOT EXISTS idx_edges_dst ON edges (dst_id);

CREATE VIEW IF NOT EXISTS entity_links AS
SELECT ed.id AS seq, ed.src_id AS owner_id, t.id AS entity_id, t.name AS entity_name,
	t.entity_type AS entity_type, ed.rel_type AS rel_type, 'outgoing' AS direction
FROM edges ed
JOIN entities t ON t.id = ed.dst_id
UNION ALL
SELECT ed.id, ed.dst_id, s.id, s.name, s.entity_type, ed.rel_type, 'incoming'
FROM edges ed
JOIN entities s ON s.id = ed.src_id;
`

func (c *Client) EnsureSchema(ctx context.Context) error {
	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	for _, stmt := range splitStatements(ddl) {
		stmt = strings.TrimSpace(stmt)
		if stmt == "" {
			continue
		}
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("executing DDL: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing schema transaction: %w", err)
	}
	return nil
}

func splitStatements(ddl string) []string {
	var statements []string
	var current strings.Builder

	for _, line := range strings.Split(ddl, "\n") {
		stripped := strings.TrimSpace(line)
		if strings.HasPrefix(stripped, "--") {
			continue
		}
		current.WriteString(line)
		current.WriteString("\n")

		if strings.HasSuffix(stripped, ";") {
			statements = append(statements, current.String())
			current.Reset()
		}
	}

	if current.Len() > 0 {
		statements = append(statements, current.String())
	}

	return statements
}
