// Package parser reads campaign entity documents: markdown files that open
// with a YAML frontmatter block.
package parser

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultLinkType is used for relationships listed without a type.
const DefaultLinkType = "related"

type Document struct {
	Frontmatter map[string]any
	Title       string
	EntityType  string
	Status      string
	Description string
	Arc         string
	Tags        []string
	Links       []Link
	Body        string
	SourceFile  string
}

// Link is a relationship declared in frontmatter. Target is an entity name.
type Link struct {
	Target string
	Type   string
}

var (
	ErrNoFrontmatter = errors.New("no frontmatter found")
	ErrInvalidYAML   = errors.New("invalid YAML in frontmatter")
	ErrMissingTitle  = errors.New("frontmatter missing required 'title' field")
	ErrMissingType   = errors.New("frontmatter missing required 'type' field")
)

// reserved keys are lifted into Document fields and kept out of Attributes.
var reserved = map[string]struct{}{
	"title":         {},
	"type":          {},
	"status":        {},
	"description":   {},
	"arc":           {},
	"tags":          {},
	"relationships": {},
	"related":       {},
}

func ParseFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	doc, err := Parse(data)
	if err != nil {
		return nil, err
	}
	doc.SourceFile = path
	return doc, nil
}

func Parse(content []byte) (*Document, error) {
	content = bytes.ReplaceAll(content, []byte("\r\n"), []byte("\n"))
	trimmed := bytes.TrimLeft(content, "\ufeff\n\r\t ")
	if !bytes.HasPrefix(trimmed, []byte("---\n")) {
		return nil, ErrNoFrontmatter
	}

	rest := trimmed[len("---\n"):]
	var yamlBytes []byte
	var body string
	if bytes.HasPrefix(rest, []byte("---\n")) {
		body = string(rest[len("---\n"):])
	} else {
		end := bytes.Index(rest, []byte("\n---\n"))
		if end == -1 {
			if !bytes.HasSuffix(rest, []byte("\n---")) {
				return nil, ErrNoFrontmatter
			}
			end = len(rest) - len("\n---")
			yamlBytes = rest[:end]
		} else {
			yamlBytes = rest[:end]
			body = string(rest[end+len("\n---\n"):])
		}
	}

	var frontmatter map[string]any
	if err := yaml.Unmarshal(yamlBytes, &frontmatter); err != nil {
		return nil, ErrInvalidYAML
	}

	title, ok := frontmatter["title"].(string)
	if !ok || strings.TrimSpace(title) == "" {
		return nil, ErrMissingTitle
	}

	entityType, ok := frontmatter["type"].(string)
	if !ok || strings.TrimSpace(entityType) == "" {
		return nil, ErrMissingType
	}

	tags, err := parseTags(frontmatter["tags"])
	if err != nil {
		return nil, err
	}

	links, err := parseLinks(frontmatter["relationships"])
	if err != nil {
		return nil, err
	}
	for _, name := range stringList(frontmatter["related"]) {
		links = append(links, Link{Target: name, Type: DefaultLinkType})
	}

	return &Document{
		Frontmatter: frontmatter,
		Title:       strings.TrimSpace(title),
		EntityType:  strings.TrimSpace(entityType),
		Status:      scalar(frontmatter["status"]),
		Description: scalar(frontmatter["description"]),
		Arc:         scalar(frontmatter["arc"]),
		Tags:        tags,
		Links:       links,
		Body:        body,
	}, nil
}

// Attributes returns the frontmatter keys not lifted into Document fields.
func (d *Document) Attributes() map[string]any {
	attributes := make(map[string]any, len(d.Frontmatter))
	for key, value := range d.Frontmatter {
		if _, skip := reserved[key]; skip {
			continue
		}
		attributes[key] = value
	}
	return attributes
}

func parseTags(value any) ([]string, error) {
	if value == nil {
		return nil, nil
	}
	switch v := value.(type) {
	case string:
		if strings.TrimSpace(v) == "" {
			return nil, nil
		}
		return []string{v}, nil
	case []any:
		tags := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("tags must be strings")
			}
			if strings.TrimSpace(s) == "" {
				continue
			}
			tags = append(tags, s)
		}
		if len(tags) == 0 {
			return nil, nil
		}
		return tags, nil
	default:
		return nil, fmt.Errorf("tags must be string or list of strings")
	}
}

// parseLinks accepts a list whose items are bare entity names or
// {target, type} maps.
func parseLinks(value any) ([]Link, error) {
	if value == nil {
		return nil, nil
	}
	items, ok := value.([]any)
	if !ok {
		return nil, fmt.Errorf("relationships must be a list")
	}

	links := make([]Link, 0, len(items))
	for i, item := range items {
		switch v := item.(type) {
		case string:
			if strings.TrimSpace(v) == "" {
				continue
			}
			links = append(links, Link{Target: strings.TrimSpace(v), Type: DefaultLinkType})
		case map[string]any:
			target := scalar(v["target"])
			if target == "" {
				return nil, fmt.Errorf("relationship %d missing target", i)
			}
			relType := scalar(v["type"])
			if relType == "" {
				relType = DefaultLinkType
			}
			links = append(links, Link{Target: target, Type: relType})
		default:
			return nil, fmt.Errorf("relationship %d must be a name or a map", i)
		}
	}
	return links, nil
}

func stringList(value any) []string {
	switch v := value.(type) {
	case string:
		if strings.TrimSpace(v) == "" {
			return nil
		}
		return []string{strings.TrimSpace(v)}
	case []any:
		values := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok && strings.TrimSpace(s) != "" {
				values = append(values, strings.TrimSpace(s))
			}
		}
		return values
	default:
		return nil
	}
}

func scalar(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(v)
	case int, int64, float64, bool:
		return fmt.Sprint(v)
	default:
		return ""
	}
}
