package entity

import (
	"fmt"
	"strings"

	"campaignwiki/internal/attrs"
	"campaignwiki/internal/config"
)

// Theme holds the style tokens a renderer applies for an entity type.
type Theme struct {
	Text       string `json:"text"`
	Background string `json:"background"`
	Border     string `json:"border"`
	Hover      string `json:"hover"`
}

// Config is the display configuration of one entity type.
type Config struct {
	Type        string `json:"type"`
	Label       string `json:"label"`
	LabelPlural string `json:"label_plural"`
	Icon        string `json:"icon"`
	Color       string `json:"color"`
	Theme       Theme  `json:"theme"`
}

var builtinConfigs = map[string]Config{
	TypeSession: {
		Type: TypeSession, Label: "Session", LabelPlural: "Sessions", Icon: "calendar", Color: "#64748b",
		Theme: Theme{
			Text:       "text-[var(--entity-session,theme(colors.slate.500))] font-medium",
			Background: "bg-muted/50",
			Border:     "border-border",
			Hover:      "hover:bg-muted",
		},
	},
	TypeCharacter: {
		Type: TypeCharacter, Label: "Character", LabelPlural: "Characters", Icon: "user", Color: "#ef4444",
		Theme: paletteTheme(TypeCharacter, "red"),
	},
	TypeNPC: {
		Type: TypeNPC, Label: "NPC", LabelPlural: "NPCs", Icon: "crown", Color: "#d97706",
		Theme: paletteTheme(TypeNPC, "amber"),
	},
	TypeLocation: {
		Type: TypeLocation, Label: "Location", LabelPlural: "Locations", Icon: "map-pin", Color: "#10b981",
		Theme: paletteTheme(TypeLocation, "emerald"),
	},
	TypeQuest: {
		Type: TypeQuest, Label: "Quest", LabelPlural: "Quests", Icon: "scroll", Color: "#3b82f6",
		Theme: paletteTheme(TypeQuest, "blue"),
	},
	TypeFaction: {
		Type: TypeFaction, Label: "Faction", LabelPlural: "Factions", Icon: "flag", Color: "#a855f7",
		Theme: paletteTheme(TypeFaction, "purple"),
	},
	TypeEncounter: {
		Type: TypeEncounter, Label: "Encounter", LabelPlural: "Encounters", Icon: "sword", Color: "#f97316",
		Theme: paletteTheme(TypeEncounter, "orange"),
	},
	TypeUnknown: {
		Type: TypeUnknown, Label: "Entity", LabelPlural: "Entities", Icon: "book-open", Color: "#6b7280",
		Theme: Theme{
			Text:       "text-muted-foreground",
			Background: "bg-muted",
			Border:     "border-border",
			Hover:      "hover:bg-muted/80",
		},
	},
}

var locationIcons = map[string]string{
	"building": "home",
	"ship":     "ship",
	"landmark": "landmark",
	"dungeon":  "mountain",
	"cave":     "mountain",
	"region":   "map-pin",
	"city":     "castle",
	"forest":   "trees",
	"realm":    "globe",
}

func paletteTheme(typ, color string) Theme {
	return Theme{
		Text:       fmt.Sprintf("text-[var(--entity-%s,theme(colors.%s.500))]", typ, color),
		Background: fmt.Sprintf("bg-%s-500/10", color),
		Border:     fmt.Sprintf("border-%s-500/20", color),
		Hover:      fmt.Sprintf("hover:bg-%s-500/10", color),
	}
}

// Catalog resolves display configuration per entity type. It is total: any
// type it does not know, including "", gets the unknown configuration.
type Catalog struct {
	configs map[string]Config
}

func DefaultCatalog() *Catalog {
	configs := make(map[string]Config, len(builtinConfigs))
	for key, cfg := range builtinConfigs {
		configs[key] = cfg
	}
	return &Catalog{configs: configs}
}

// NewCatalog layers schema overrides on the built-in configuration. Blank
// override fields keep the built-in value. A nil schema yields the defaults.
func NewCatalog(schema *config.Schema) (*Catalog, error) {
	catalog := DefaultCatalog()
	if schema == nil {
		return catalog, nil
	}

	for _, override := range schema.EntityTypes {
		typ := NormalizeType(override.Name)
		if typ == "default" {
			typ = TypeUnknown
		}
		base, ok := catalog.configs[typ]
		if !ok {
			return nil, fmt.Errorf("building catalog: unknown entity type: %s", override.Name)
		}
		base.Label = firstNonBlank(override.Label, base.Label)
		base.LabelPlural = firstNonBlank(override.LabelPlural, base.LabelPlural)
		base.Icon = firstNonBlank(override.Icon, base.Icon)
		base.Color = firstNonBlank(override.Color, base.Color)
		base.Theme.Text = firstNonBlank(override.Theme.Text, base.Theme.Text)
		base.Theme.Background = firstNonBlank(override.Theme.Background, base.Theme.Background)
		base.Theme.Border = firstNonBlank(override.Theme.Border, base.Theme.Border)
		base.Theme.Hover = firstNonBlank(override.Theme.Hover, base.Theme.Hover)
		catalog.configs[typ] = base
	}

	return catalog, nil
}

func (c *Catalog) ConfigFor(typ string) Config {
	if c == nil {
		c = DefaultCatalog()
	}
	if cfg, ok := c.configs[NormalizeType(typ)]; ok {
		return cfg
	}
	return c.configs[TypeUnknown]
}

// Configs returns the configuration of every known type in display order.
func (c *Catalog) Configs() []Config {
	configs := make([]Config, 0, len(Types))
	for _, typ := range Types {
		configs = append(configs, c.ConfigFor(typ))
	}
	return configs
}

// IconFor resolves the icon for a specific record. Locations refine the type
// icon by their own "type" attribute (city, forest, ship, ...).
func (c *Catalog) IconFor(rec Record) string {
	typ := NormalizeType(rec.Type)
	if typ == TypeLocation {
		kind := strings.ToLower(attrs.String(rec.Attributes, "type", "Type"))
		if icon, ok := locationIcons[kind]; ok {
			return icon
		}
	}
	return c.ConfigFor(typ).Icon
}

func firstNonBlank(values ...string) string {
	for _, value := range values {
		if strings.TrimSpace(value) != "" {
			return value
		}
	}
	return ""
}
