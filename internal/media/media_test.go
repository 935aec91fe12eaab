package media

import (
	"testing"

	"campaignwiki/internal/attrs"
)

func TestResolverResolve(t *testing.T) {
	resolver := NewResolver("")

	tests := []struct {
		name     string
		bag      attrs.Bag
		class    Class
		expected string
		found    bool
	}{
		{
			name:     "relative background",
			bag:      attrs.Bag{"background_image": "../../images/bg.jpg"},
			class:    ClassBackground,
			expected: "/images/bg.jpg",
			found:    true,
		},
		{
			name:  "empty bag",
			bag:   attrs.Bag{},
			class: ClassAny,
		},
		{
			name:     "absolute path loses one slash",
			bag:      attrs.Bag{"icon": "/tokens/aldric.png"},
			class:    ClassIcon,
			expected: "/tokens/aldric.png",
			found:    true,
		},
		{
			name:     "empty alias is skipped",
			bag:      attrs.Bag{"background_image": "", "background": "  maps/korinis.png "},
			class:    ClassBackground,
			expected: "/maps/korinis.png",
			found:    true,
		},
		{
			name:     "value object",
			bag:      attrs.Bag{"Portrait": map[string]any{"value": "portraits/mara.webp"}},
			class:    ClassIcon,
			expected: "/portraits/mara.webp",
			found:    true,
		},
		{
			name:     "first array element value",
			bag:      attrs.Bag{"image": []any{map[string]any{"value": "art/keep.png"}, map[string]any{"value": "art/other.png"}}},
			class:    ClassAny,
			expected: "/art/keep.png",
			found:    true,
		},
		{
			name:     "first array element string",
			bag:      attrs.Bag{"token": []any{"tokens/wolf.png"}},
			class:    ClassIcon,
			expected: "/tokens/wolf.png",
			found:    true,
		},
		{
			name:     "alias order within class",
			bag:      attrs.Bag{"icon": "icons/a.png", "background": "bg/b.png"},
			class:    ClassAny,
			expected: "/bg/b.png",
			found:    true,
		},
		{
			name:  "icon class ignores background",
			bag:   attrs.Bag{"background_image": "bg.png"},
			class: ClassIcon,
		},
		{
			name:  "non-string values are ignored",
			bag:   attrs.Bag{"icon": 42, "Icon": true},
			class: ClassIcon,
		},
		{
			name:     "unknown class behaves as any",
			bag:      attrs.Bag{"portrait": "p.png"},
			class:    Class("banner"),
			expected: "/p.png",
			found:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := resolver.Resolve(tt.bag, tt.class)
			if ok != tt.found {
				t.Fatalf("expected found=%v, got %v (%q)", tt.found, ok, got)
			}
			if got != tt.expected {
				t.Fatalf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestResolverBasePath(t *testing.T) {
	resolver := NewResolver("/campaign-wiki")
	got, ok := resolver.Resolve(attrs.Bag{"background_image": "../../images/bg.jpg"}, ClassBackground)
	if !ok || got != "/campaign-wiki/images/bg.jpg" {
		t.Fatalf("expected base path prefix, got %q", got)
	}

	if _, ok := resolver.Resolve(nil, ClassAny); ok {
		t.Fatalf("expected nil bag to resolve nothing")
	}

	var empty *Resolver
	if empty.BasePath() != DefaultBasePath {
		t.Fatalf("expected default base path for nil resolver")
	}
}

func TestParseClass(t *testing.T) {
	if ParseClass("Background") != ClassBackground {
		t.Fatalf("expected background class")
	}
	if ParseClass("icon") != ClassIcon {
		t.Fatalf("expected icon class")
	}
	if ParseClass("") != ClassAny || ParseClass("banner") != ClassAny {
		t.Fatalf("expected any class for unknown selectors")
	}
}
