// Package viewmodel maps raw entity records into render-ready view models.
package viewmodel

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"campaignwiki/internal/attrs"
	"campaignwiki/internal/config"
	"campaignwiki/internal/connection"
	"campaignwiki/internal/entity"
	"campaignwiki/internal/media"
	"campaignwiki/internal/relation"
)

// Candidate keys per logical field, in priority order.
var (
	statusKeys      = []string{"status", "Quest Status"}
	affinityKeys    = []string{"affinity", "disposition"}
	regionKeys      = []string{"region", "parent location"}
	questTypeKeys   = []string{"Quest Type", "Type"}
	priorityKeys    = []string{"Priority", "priority"}
	campaignArcKeys = []string{"campaign_arc", "arc", "Arc"}

	sessionTextKeys = []string{"narrative", "Narrative", "summary", "Summary"}
	summaryKeys     = []string{"synopsis", "Synopsis", "summary", "Summary", "short_description", "hook", "Hook"}
	npcFooterKeys   = []string{"role", "Role", "occupation", "Occupation", "class", "Class", "title", "Title"}
	heroRoleKeys    = []string{"class", "Class", "role", "Role", "occupation", "Occupation"}
	kindKeys        = []string{"type", "Type", "subtype", "Subtype"}
	sessionDateKeys = []string{"session_date", "Date", "date"}
)

const (
	unknownValue        = "unknown"
	descriptionMaxRunes = 140
)

// Defaults are the labels used when a record leaves a grouping field unset.
type Defaults struct {
	Region      string `json:"region"`
	QuestType   string `json:"quest_type"`
	CampaignArc string `json:"campaign_arc"`
}

func DefaultDefaults() Defaults {
	return Defaults{
		Region:      config.DefaultRegion,
		QuestType:   config.DefaultQuestType,
		CampaignArc: config.DefaultCampaignArc,
	}
}

type Meta struct {
	Status       string `json:"status"`
	Affinity     string `json:"affinity"`
	AffinityRank int    `json:"affinity_rank"`
	Region       string `json:"region"`
	QuestType    string `json:"quest_type"`
	// Priority is empty when the record sets none.
	Priority    string `json:"priority,omitempty"`
	ParentID    string `json:"parent_id,omitempty"`
	CampaignArc string `json:"campaign_arc"`
}

type ViewModel struct {
	ID              string                  `json:"id"`
	Name            string                  `json:"name"`
	Path            string                  `json:"path"`
	Type            string                  `json:"type"`
	Description     string                  `json:"description,omitempty"`
	FullDescription string                  `json:"full_description,omitempty"`
	FooterLabel     string                  `json:"footer_label,omitempty"`
	HeroSubtitle    string                  `json:"hero_subtitle,omitempty"`
	Status          string                  `json:"status"`
	Affinity        string                  `json:"affinity"`
	Attributes      attrs.Bag               `json:"attributes"`
	Relationships   []relation.Relationship `json:"relationships"`
	Meta            Meta                    `json:"meta"`
}

type Options struct {
	Defaults       Defaults
	Catalog        *entity.Catalog
	Ranks          *entity.Ranks
	BasePath       string
	MaxConnections int
}

// Mapper holds the collaborators a mapping needs. It is safe for concurrent
// use.
type Mapper struct {
	defaults       Defaults
	catalog        *entity.Catalog
	ranks          *entity.Ranks
	images         *media.Resolver
	connections    *connection.Transformer
	maxConnections int
}

// New fills unset options with built-in defaults.
func New(opts Options) *Mapper {
	defaults := DefaultDefaults()
	if opts.Defaults.Region != "" {
		defaults.Region = opts.Defaults.Region
	}
	if opts.Defaults.QuestType != "" {
		defaults.QuestType = opts.Defaults.QuestType
	}
	if opts.Defaults.CampaignArc != "" {
		defaults.CampaignArc = opts.Defaults.CampaignArc
	}
	catalog := opts.Catalog
	if catalog == nil {
		catalog = entity.DefaultCatalog()
	}
	ranks := opts.Ranks
	if ranks == nil {
		ranks = entity.DefaultRanks()
	}
	maxConnections := opts.MaxConnections
	if maxConnections <= 0 {
		maxConnections = connection.DefaultMaxConnections
	}
	return &Mapper{
		defaults:       defaults,
		catalog:        catalog,
		ranks:          ranks,
		images:         media.NewResolver(opts.BasePath),
		connections:    connection.NewTransformer(catalog),
		maxConnections: maxConnections,
	}
}

// NewFromConfig builds a mapper from the project config and an optional
// schema.
func NewFromConfig(cfg *config.ProjectConfig, schema *config.Schema) (*Mapper, error) {
	catalog, err := entity.NewCatalog(schema)
	if err != nil {
		return nil, fmt.Errorf("building mapper: %w", err)
	}
	opts := Options{
		Catalog: catalog,
		Ranks:   entity.NewRanks(schema),
	}
	if cfg != nil {
		opts.BasePath = cfg.Presentation.BasePath
		opts.MaxConnections = cfg.Presentation.MaxConnections
		opts.Defaults = Defaults{
			Region:      cfg.Presentation.Defaults.Region,
			QuestType:   cfg.Presentation.Defaults.QuestType,
			CampaignArc: cfg.Presentation.Defaults.CampaignArc,
		}
	}
	return New(opts), nil
}

func (m *Mapper) Catalog() *entity.Catalog { return m.catalog }

func (m *Mapper) Ranks() *entity.Ranks { return m.ranks }

func (m *Mapper) Images() *media.Resolver { return m.images }

func (m *Mapper) Defaults() Defaults { return m.defaults }

func (m *Mapper) MaxConnections() int { return m.maxConnections }

// Map builds the view model of rec as seen from a listing of contextType.
// It never fails; every field has a default.
func (m *Mapper) Map(rec entity.Record, contextType string) ViewModel {
	contextType = entity.NormalizeType(contextType)
	typ := entity.NormalizeType(rec.Type)
	if typ == "" {
		typ = contextType
	}
	if typ == "" {
		typ = entity.TypeUnknown
	}
	if contextType == "" {
		contextType = typ
	}

	bag := rec.Attributes
	if bag == nil {
		bag = attrs.Bag{}
	}

	status := attrs.String(bag, statusKeys...)
	if status == "" {
		status = rec.Status
	}
	if status == "" {
		status = unknownValue
	}
	status = strings.ToLower(status)

	affinity := strings.ToLower(attrs.StringOr(bag, unknownValue, affinityKeys...))

	sortKey := status
	if affinity != unknownValue {
		sortKey = affinity
	}

	rawRegion := attrs.String(bag, regionKeys...)
	region := rawRegion
	if region == "" {
		region = m.defaults.Region
	}
	questType := attrs.StringOr(bag, m.defaults.QuestType, questTypeKeys...)

	rec.Type = typ
	meta := Meta{
		Status:       status,
		Affinity:     affinity,
		AffinityRank: m.ranks.Rank(sortKey),
		Region:       region,
		QuestType:    questType,
		Priority:     attrs.String(bag, priorityKeys...),
		ParentID:     entity.ParentID(rec),
		CampaignArc:  attrs.StringOr(bag, m.defaults.CampaignArc, campaignArcKeys...),
	}

	fullDescription := rec.Description
	if typ == entity.TypeSession {
		if fullDescription == "" {
			fullDescription = attrs.String(bag, sessionTextKeys...)
		}
	} else if summary := attrs.String(bag, summaryKeys...); summary != "" {
		fullDescription = summary
	}

	footer := footerLabel(typ, bag, rawRegion, questType)

	return ViewModel{
		ID:              rec.ID,
		Name:            rec.Name,
		Path:            Path(contextType, rec.ID),
		Type:            typ,
		Description:     Summarize(fullDescription),
		FullDescription: fullDescription,
		FooterLabel:     footer,
		HeroSubtitle:    heroSubtitle(typ, bag, footer),
		Status:          status,
		Affinity:        affinity,
		Attributes:      bag,
		Relationships:   relation.Normalize(rec.Relationships),
		Meta:            meta,
	}
}

// MapAll maps every record with the same context type.
func (m *Mapper) MapAll(records []entity.Record, contextType string) []ViewModel {
	models := make([]ViewModel, 0, len(records))
	for _, rec := range records {
		models = append(models, m.Map(rec, contextType))
	}
	return models
}

// Path is the wiki route of an entity.
func Path(contextType, id string) string {
	return fmt.Sprintf("/wiki/%s/%s", contextType, id)
}

// Summarize strips markdown and truncates to a card-sized description. The
// ellipsis follows the length of the raw text, so a long markdown source
// is marked as cut even when its plain text fits.
func Summarize(text string) string {
	plain := []rune(StripMarkdown(text))
	if len(plain) > descriptionMaxRunes {
		plain = plain[:descriptionMaxRunes]
	}
	if utf8.RuneCountInString(text) > descriptionMaxRunes {
		return string(plain) + "..."
	}
	return string(plain)
}

func footerLabel(typ string, bag attrs.Bag, region, questType string) string {
	var label string
	switch typ {
	case entity.TypeSession:
		label = attrs.String(bag, sessionDateKeys...)
		if label == "" {
			label = "Session " + attrs.StringOr(bag, "#", "session_number")
		}
	case entity.TypeNPC:
		label = attrs.String(bag, npcFooterKeys...)
	case entity.TypeLocation:
		label = attrs.String(bag, "type", "Type")
		if label == "" {
			label = region
		}
	case entity.TypeEncounter:
		label = attrs.StringOr(bag, "Encounter", "status", "Status")
	case entity.TypeQuest:
		label = questType
	}
	if label == "" {
		label = region
	}
	if label == "" {
		label = attrs.String(bag, kindKeys...)
	}
	return label
}

func heroSubtitle(typ string, bag attrs.Bag, footer string) string {
	if typ != entity.TypeCharacter {
		return footer
	}
	role := attrs.String(bag, heroRoleKeys...)
	level := attrs.String(bag, "level", "Level")
	switch {
	case level != "" && role != "":
		return fmt.Sprintf("Lvl %s %s", level, role)
	case level != "":
		return "Level " + level
	default:
		return role
	}
}
