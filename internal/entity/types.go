// Package entity holds the campaign entity record and the lookups the view
// layer relies on: the per-type catalog, status ranking and hierarchy.
package entity

import (
	"strings"

	"campaignwiki/internal/attrs"
)

// Type tags.
const (
	TypeCharacter = "character"
	TypeNPC       = "npc"
	TypeLocation  = "location"
	TypeQuest     = "quest"
	TypeEncounter = "encounter"
	TypeFaction   = "faction"
	TypeSession   = "session"
	TypeUnknown   = "unknown"
)

// Types lists every known type tag in display order.
var Types = []string{
	TypeSession,
	TypeCharacter,
	TypeNPC,
	TypeLocation,
	TypeQuest,
	TypeFaction,
	TypeEncounter,
}

// SessionNumberKeys are the attribute keys that carry a session's number,
// in lookup order.
var SessionNumberKeys = []string{"session_number", "Session Number", "Session"}

// Record is an entity row as read from the backend. Relationships keep the
// backend's shape; use relation.Normalize to read them.
type Record struct {
	ID            string    `json:"id"`
	CampaignID    string    `json:"campaign_id,omitempty"`
	Name          string    `json:"name"`
	Type          string    `json:"type"`
	Status        string    `json:"status,omitempty"`
	Description   string    `json:"description,omitempty"`
	ArcID         string    `json:"arc_id,omitempty"`
	Attributes    attrs.Bag `json:"attributes"`
	Relationships any       `json:"relationships,omitempty"`
}

// NormalizeType lowercases and trims a type tag and folds the plural
// "sessions" used by route contexts. Empty input yields "".
func NormalizeType(value string) string {
	normalized := strings.ToLower(strings.TrimSpace(value))
	if normalized == "sessions" {
		return TypeSession
	}
	return normalized
}

// IsKnownType reports whether value names one of the fixed entity types.
func IsKnownType(value string) bool {
	normalized := NormalizeType(value)
	for _, t := range Types {
		if t == normalized {
			return true
		}
	}
	return false
}
