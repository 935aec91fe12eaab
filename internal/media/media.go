// Package media resolves entity image attributes into URLs.
package media

import (
	"strings"

	"campaignwiki/internal/attrs"
)

// Class selects which family of image attributes to probe.
type Class string

const (
	ClassBackground Class = "background"
	ClassIcon       Class = "icon"
	ClassAny        Class = "any"
)

const DefaultBasePath = "/"

var classKeys = map[Class][]string{
	ClassBackground: {"background_image", "background", "Background", "Background_image"},
	ClassIcon:       {"icon", "Icon", "token", "Token", "portrait", "Portrait"},
	ClassAny:        {"background_image", "background", "image", "Image", "portrait", "Portrait", "icon", "Icon"},
}

// ParseClass maps a selector name to a Class. Unrecognised names select
// ClassAny.
func ParseClass(name string) Class {
	class := Class(strings.ToLower(strings.TrimSpace(name)))
	if _, ok := classKeys[class]; ok {
		return class
	}
	return ClassAny
}

type Resolver struct {
	basePath string
}

// NewResolver returns a resolver that prefixes cleaned paths with basePath.
// An empty base path means "/".
func NewResolver(basePath string) *Resolver {
	basePath = strings.TrimSpace(basePath)
	if basePath == "" {
		basePath = DefaultBasePath
	}
	if !strings.HasSuffix(basePath, "/") {
		basePath += "/"
	}
	return &Resolver{basePath: basePath}
}

func (r *Resolver) BasePath() string {
	if r == nil {
		return DefaultBasePath
	}
	return r.basePath
}

// Resolve returns the URL of the first image attribute of the given class.
// Each alias is tried as written and then lowercased. The boolean is false
// when no alias holds a usable path.
func (r *Resolver) Resolve(bag attrs.Bag, class Class) (string, bool) {
	if bag == nil {
		return "", false
	}
	keys, ok := classKeys[class]
	if !ok {
		keys = classKeys[ClassAny]
	}

	for _, key := range keys {
		raw := rawPath(bag[key])
		if raw == "" {
			raw = rawPath(bag[strings.ToLower(key)])
		}
		if raw == "" {
			continue
		}
		return r.BasePath() + cleanPath(raw), true
	}
	return "", false
}

// URL is Resolve with "" for a missing image.
func (r *Resolver) URL(bag attrs.Bag, class Class) string {
	url, _ := r.Resolve(bag, class)
	return url
}

func rawPath(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case []any:
		if len(v) == 0 {
			return ""
		}
		switch first := v[0].(type) {
		case string:
			return first
		case map[string]any:
			return rawPath(first["value"])
		}
		return ""
	case []string:
		if len(v) == 0 {
			return ""
		}
		return v[0]
	case map[string]any:
		return rawPath(v["value"])
	case attrs.Bag:
		return rawPath(v["value"])
	default:
		return ""
	}
}

func cleanPath(raw string) string {
	path := strings.TrimSpace(raw)
	for strings.HasPrefix(path, "../") {
		path = strings.TrimPrefix(path, "../")
	}
	return strings.TrimPrefix(path, "/")
}
