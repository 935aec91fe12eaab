package config

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// Schema carries presentation overrides for entity types and the affinity
// ranking terms. Every section is optional; absent entries keep the built-in
// catalog values.
type Schema struct {
	Version     int          `yaml:"version"`
	EntityTypes []EntityType `yaml:"entity_types"`
	Ranks       []RankTerm   `yaml:"ranks"`

	entityIndex map[string]*EntityType
}

type EntityType struct {
	Name        string `yaml:"name"`
	Label       string `yaml:"label"`
	LabelPlural string `yaml:"label_plural"`
	Icon        string `yaml:"icon"`
	Color       string `yaml:"color"`
	Theme       Theme  `yaml:"theme"`
}

type Theme struct {
	Text       string `yaml:"text"`
	Background string `yaml:"background"`
	Border     string `yaml:"border"`
	Hover      string `yaml:"hover"`
}

// RankTerm maps a status or affinity substring to a sort rank. Terms are
// matched in file order.
type RankTerm struct {
	Term string `yaml:"term"`
	Rank int    `yaml:"rank"`
}

var hexColor = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

func LoadSchema(path string) (*Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading schema: %w", err)
	}

	var schema Schema
	if err := yaml.Unmarshal(data, &schema); err != nil {
		return nil, fmt.Errorf("loading schema: %w", err)
	}

	if err := validateSchema(&schema); err != nil {
		return nil, fmt.Errorf("loading schema: %w", err)
	}

	schema.entityIndex = make(map[string]*EntityType)
	for i := range schema.EntityTypes {
		entity := &schema.EntityTypes[i]
		schema.entityIndex[strings.ToLower(entity.Name)] = entity
	}

	return &schema, nil
}

func validateSchema(s *Schema) error {
	if s.Version != 1 {
		return fmt.Errorf("unsupported version: %d", s.Version)
	}

	entityNames := make(map[string]struct{})
	for i, entity := range s.EntityTypes {
		if strings.TrimSpace(entity.Name) == "" {
			return fmt.Errorf("entity type %d name is required", i)
		}
		key := strings.ToLower(entity.Name)
		if _, exists := entityNames[key]; exists {
			return fmt.Errorf("duplicate entity type name: %s", entity.Name)
		}
		entityNames[key] = struct{}{}

		if entity.Color != "" && !hexColor.MatchString(entity.Color) {
			return fmt.Errorf("entity type %s has invalid color: %s", entity.Name, entity.Color)
		}
	}

	terms := make(map[string]struct{})
	for i, rank := range s.Ranks {
		term := strings.ToLower(strings.TrimSpace(rank.Term))
		if term == "" {
			return fmt.Errorf("rank %d term is required", i)
		}
		if rank.Rank <= 0 {
			return fmt.Errorf("rank term %s must have a positive rank", rank.Term)
		}
		if _, exists := terms[term]; exists {
			return fmt.Errorf("duplicate rank term: %s", rank.Term)
		}
		terms[term] = struct{}{}
	}

	return nil
}

func (s *Schema) EntityTypeByName(name string) (*EntityType, bool) {
	if s == nil {
		return nil, false
	}
	entity, ok := s.entityIndex[strings.ToLower(name)]
	return entity, ok
}
