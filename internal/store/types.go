package store

import "regexp"

type CampaignInput struct {
	ID          string
	Name        string
	Description string
}

type ArcInput struct {
	ID          string
	CampaignID  string
	Title       string
	Description string
	Order       int
}

type EntityInput struct {
	ID          string
	CampaignID  string
	Name        string
	Type        string
	Status      string
	Description string
	ArcID       string
	SourceFile  string
	SourceHash  string
	Attributes  map[string]any
}

// RelationshipInput links FromID to ToID. A target that has not been
// ingested yet is created as a placeholder named ToName.
type RelationshipInput struct {
	CampaignID string
	FromID     string
	ToID       string
	ToName     string
	Type       string
}

type Campaign struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Arcs        []Arc  `json:"arcs"`
}

type Arc struct {
	ID          string `json:"id"`
	CampaignID  string `json:"campaign_id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Order       int    `json:"order"`
}

// EntityFilter narrows ListEntities. Empty fields match everything.
type EntityFilter struct {
	CampaignID string
	Type       string
}

// SearchQuery matches Text as a case-insensitive substring of an entity's
// name or description. Type restricts to one type, ExcludeType drops one.
type SearchQuery struct {
	CampaignID  string
	Text        string
	Type        string
	ExcludeType string
	Limit       int
}

type EntitySummary struct {
	ID         string
	CampaignID string
	Name       string
	Type       string
	SourceFile string
}

var relTypePattern = regexp.MustCompile(`^[A-Za-z0-9_]+$`)

// ValidRelationshipType reports whether relType is safe to store.
func ValidRelationshipType(relType string) bool {
	return relTypePattern.MatchString(relType)
}
