package entity

import (
	"strings"

	"campaignwiki/internal/relation"
)

var npcLocationTypes = map[string]struct{}{
	"location":   {},
	"located_in": {},
	"base":       {},
	"home":       {},
	"residence":  {},
	"origin":     {},
}

// ParentID returns the id of the entity rec nests under, or "".
//
// An outgoing or undirected parent_location/parent relationship wins. NPCs
// otherwise nest under a related location, preferring a residence-like
// relationship over the first location found.
func ParentID(rec Record) string {
	rels := relation.Normalize(rec.Relationships)

	for _, rel := range rels {
		if rel.Type != "parent_location" && rel.Type != "parent" {
			continue
		}
		if rel.Direction == "" || rel.Direction == "outgoing" {
			return rel.EntityID
		}
	}

	if NormalizeType(rec.Type) != TypeNPC {
		return ""
	}

	first := ""
	found := false
	for _, rel := range rels {
		if rel.EntityType != TypeLocation {
			continue
		}
		if _, ok := npcLocationTypes[strings.ToLower(rel.Type)]; ok {
			return rel.EntityID
		}
		if !found {
			first = rel.EntityID
			found = true
		}
	}
	return first
}
