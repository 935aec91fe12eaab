// Package tooltip builds the compact hover card shown for an entity link.
package tooltip

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"campaignwiki/internal/attrs"
	"campaignwiki/internal/entity"
	"campaignwiki/internal/media"
	"campaignwiki/internal/viewmodel"
)

const subtitleSeparator = " • "

// Tag tones.
const (
	ToneDanger  = "danger"
	ToneSuccess = "success"
	ToneWarning = "warning"
	ToneInfo    = "info"
	ToneMuted   = "muted"
)

type Tag struct {
	Field string `json:"field"`
	Value string `json:"value"`
	Tone  string `json:"tone"`
}

type Stats struct {
	HP          string `json:"hp,omitempty"`
	ArmorClass  string `json:"armor_class,omitempty"`
	Movement    string `json:"movement,omitempty"`
	Ruler       string `json:"ruler,omitempty"`
	Personality string `json:"personality,omitempty"`
}

type Tooltip struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Type        string `json:"type"`
	Label       string `json:"label"`
	Icon        string `json:"icon"`
	Color       string `json:"color"`
	Path        string `json:"path"`
	Subtitle    string `json:"subtitle,omitempty"`
	Tags        []Tag  `json:"tags"`
	Image       string `json:"image,omitempty"`
	Description string `json:"description,omitempty"`
	Stats       Stats  `json:"stats"`
}

type Builder struct {
	catalog *entity.Catalog
	images  *media.Resolver
}

func NewBuilder(mapper *viewmodel.Mapper) *Builder {
	if mapper == nil {
		mapper = viewmodel.New(viewmodel.Options{})
	}
	return &Builder{catalog: mapper.Catalog(), images: mapper.Images()}
}

// Build assembles the tooltip for rec. The record's own type selects the
// profile; contextType is used when the record has none.
func (b *Builder) Build(rec entity.Record, contextType string) Tooltip {
	typ := entity.NormalizeType(rec.Type)
	if typ == "" {
		typ = entity.NormalizeType(contextType)
	}
	if typ == "" {
		typ = entity.TypeUnknown
	}
	rec.Type = typ

	bag := rec.Attributes
	profile := ProfileFor(typ)
	cfg := b.catalog.ConfigFor(typ)

	subtitle := make([]string, 0, len(profile.Subtitle))
	for _, field := range profile.Subtitle {
		if value := resolveField(bag, field); value != "" {
			subtitle = append(subtitle, value)
		}
	}

	tags := make([]Tag, 0, len(profile.Tags))
	for _, field := range profile.Tags {
		value := resolveField(bag, field)
		if value == "" && field == "status" {
			value = rec.Status
		}
		if value == "" {
			continue
		}
		tags = append(tags, Tag{Field: field, Value: value, Tone: tagTone(field, value)})
	}

	tip := Tooltip{
		ID:          rec.ID,
		Name:        rec.Name,
		Type:        typ,
		Label:       cfg.Label,
		Icon:        b.catalog.IconFor(rec),
		Color:       cfg.Color,
		Path:        viewmodel.Path(typ, rec.ID),
		Subtitle:    strings.Join(subtitle, subtitleSeparator),
		Tags:        tags,
		Image:       b.images.URL(bag, media.ClassBackground),
		Description: viewmodel.Summarize(rec.Description),
	}

	if profile.Features.HP {
		tip.Stats.HP = attrs.String(bag, variants("hit points", "hp")...)
	}
	if profile.Features.ArmorClass {
		tip.Stats.ArmorClass = attrs.String(bag, variants("armor class", "ac")...)
	}
	if profile.Features.Movement {
		tip.Stats.Movement = attrs.String(bag, variants("movement", "speed")...)
	}
	if profile.Features.Ruler {
		tip.Stats.Ruler = attrs.String(bag, variants("ruler")...)
	}
	if profile.Features.Personality {
		tip.Stats.Personality = personality(bag)
	}

	return tip
}

func resolveField(bag attrs.Bag, field string) string {
	switch field {
	case fieldLevelPrefix:
		if level := attrs.String(bag, variants("level")...); level != "" {
			return "Lvl " + level
		}
		return ""
	case fieldSessionNumberPrefixed:
		if number := attrs.String(bag, variants("session_number", "number")...); number != "" {
			return "Session " + number
		}
		return ""
	default:
		return attrs.String(bag, variants(field)...)
	}
}

// variants expands each key into the spellings authors use for tooltip
// fields: as written, lowercase, first letter capitalized, title case.
func variants(keys ...string) []string {
	out := make([]string, 0, len(keys)*4)
	seen := make(map[string]struct{}, len(keys)*4)
	add := func(key string) {
		if _, ok := seen[key]; ok {
			return
		}
		seen[key] = struct{}{}
		out = append(out, key)
	}
	for _, key := range keys {
		add(key)
		add(strings.ToLower(key))
		add(capitalize(key))
		add(titleCase(key))
	}
	return out
}

func titleCase(value string) string {
	words := strings.Fields(value)
	for i, word := range words {
		words[i] = capitalize(word)
	}
	return strings.Join(words, " ")
}

func capitalize(value string) string {
	r, size := utf8.DecodeRuneInString(value)
	if r == utf8.RuneError {
		return value
	}
	return string(unicode.ToUpper(r)) + value[size:]
}

func personality(bag attrs.Bag) string {
	value, ok := attrs.Lookup(bag, variants("personality")...)
	if !ok {
		return ""
	}
	list, ok := value.([]any)
	if !ok {
		return attrs.Unwrap(value)
	}
	parts := make([]string, 0, len(list))
	for _, item := range list {
		if obj, ok := item.(map[string]any); ok {
			if text := attrs.Unwrap(obj["value"]); text != "" {
				parts = append(parts, text)
			}
			continue
		}
		if text := attrs.Unwrap(item); text != "" {
			parts = append(parts, text)
		}
	}
	return strings.Join(parts, " ")
}

func tagTone(field, value string) string {
	lower := strings.ToLower(value)
	switch field {
	case "affinity":
		switch lower {
		case "enemy", "hostile":
			return ToneWarning
		case "ally", "friendly":
			return ToneInfo
		}
		return ToneMuted
	case "status":
		switch lower {
		case "dead", "destroyed", "completed", "failed":
			return ToneDanger
		case "alive", "active", "in progress":
			return ToneSuccess
		}
		return ToneMuted
	default:
		return ToneMuted
	}
}

func (t Tooltip) String() string {
	if t.Subtitle == "" {
		return fmt.Sprintf("%s (%s)", t.Name, t.Label)
	}
	return fmt.Sprintf("%s (%s) %s", t.Name, t.Label, t.Subtitle)
}
