// Package connection turns normalized relationships into bounded, themed
// connection entries for display.
package connection

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"

	"campaignwiki/internal/entity"
	"campaignwiki/internal/relation"
)

const (
	DefaultMaxConnections = 8
	DefaultRole           = "related"
)

type Theme struct {
	entity.Theme
	Icon  string `json:"icon"`
	Color string `json:"color"`
}

type Connection struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	TypeLabel   string `json:"type_label"`
	Role        string `json:"role"`
	Direction   string `json:"direction,omitempty"`
	Placeholder bool   `json:"placeholder,omitempty"`
	Theme       Theme  `json:"theme"`
}

type Transformer struct {
	catalog *entity.Catalog
}

// NewTransformer themes connections from catalog. A nil catalog uses the
// built-in configuration.
func NewTransformer(catalog *entity.Catalog) *Transformer {
	if catalog == nil {
		catalog = entity.DefaultCatalog()
	}
	return &Transformer{catalog: catalog}
}

// Transform normalizes raw relationships and returns at most maxConnections
// entries in their original order. maxConnections <= 0 means
// DefaultMaxConnections.
func (t *Transformer) Transform(raw any, maxConnections int) []Connection {
	if maxConnections <= 0 {
		maxConnections = DefaultMaxConnections
	}

	rels := relation.Normalize(raw)
	if len(rels) > maxConnections {
		rels = rels[:maxConnections]
	}

	catalog := entity.DefaultCatalog()
	if t != nil && t.catalog != nil {
		catalog = t.catalog
	}

	connections := make([]Connection, 0, len(rels))
	for i, rel := range rels {
		cfg := catalog.ConfigFor(rel.EntityType)
		conn := Connection{
			ID:        rel.EntityID,
			Name:      rel.EntityName,
			TypeLabel: rel.EntityType,
			Role:      Role(rel.Type),
			Direction: rel.Direction,
			Theme: Theme{
				Theme: cfg.Theme,
				Icon:  cfg.Icon,
				Color: cfg.Color,
			},
		}
		if conn.ID == "" {
			conn.ID = PlaceholderID(rel.EntityName, rel.EntityType, i)
			conn.Placeholder = true
		}
		connections = append(connections, conn)
	}
	return connections
}

// Transform uses the built-in catalog.
func Transform(raw any, maxConnections int) []Connection {
	return NewTransformer(nil).Transform(raw, maxConnections)
}

// Role humanizes a relationship type: "MEMBER_OF" becomes "member of".
func Role(relType string) string {
	if relType == "" {
		return DefaultRole
	}
	return strings.ReplaceAll(strings.ToLower(relType), "_", " ")
}

// PlaceholderID derives a stable id for a relationship that has no target
// id. The same name, type and position always yield the same id.
func PlaceholderID(name, entityType string, index int) string {
	digest := xxhash.New()
	_, _ = digest.WriteString(name)
	_, _ = digest.WriteString("\x00")
	_, _ = digest.WriteString(entityType)
	_, _ = digest.WriteString("\x00")
	_, _ = digest.WriteString(strconv.Itoa(index))
	return fmt.Sprintf("rel-%016x", digest.Sum64())
}
