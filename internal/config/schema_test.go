package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadSchema(t *testing.T) {
	t.Run("valid schema loads", func(t *testing.T) {
		schema, err := LoadSchema(filepath.Join("testdata", "valid_schema.yaml"))
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(schema.Ranks) != 3 {
			t.Fatalf("expected 3 rank terms, got %d", len(schema.Ranks))
		}
	})

	t.Run("empty schema is valid", func(t *testing.T) {
		path := writeTempSchema(t, "version: 1\n")
		if _, err := LoadSchema(path); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
	})

	t.Run("unsupported version", func(t *testing.T) {
		path := writeTempSchema(t, "version: 2\n")
		if _, err := LoadSchema(path); err == nil {
			t.Fatalf("expected error")
		}
	})

	t.Run("duplicate entity type names", func(t *testing.T) {
		path := writeTempSchema(t, "version: 1\nentity_types:\n  - name: npc\n  - name: NPC\n")
		if _, err := LoadSchema(path); err == nil {
			t.Fatalf("expected error")
		}
	})

	t.Run("entity type without name", func(t *testing.T) {
		path := writeTempSchema(t, "version: 1\nentity_types:\n  - label: Nameless\n")
		if _, err := LoadSchema(path); err == nil {
			t.Fatalf("expected error")
		}
	})

	t.Run("invalid color", func(t *testing.T) {
		path := writeTempSchema(t, "version: 1\nentity_types:\n  - name: npc\n    color: amber\n")
		if _, err := LoadSchema(path); err == nil {
			t.Fatalf("expected error")
		}
	})

	t.Run("non-positive rank", func(t *testing.T) {
		path := writeTempSchema(t, "version: 1\nranks:\n  - { term: ally, rank: 0 }\n")
		if _, err := LoadSchema(path); err == nil {
			t.Fatalf("expected error")
		}
	})

	t.Run("duplicate rank terms", func(t *testing.T) {
		path := writeTempSchema(t, "version: 1\nranks:\n  - { term: ally, rank: 1 }\n  - { term: Ally, rank: 2 }\n")
		if _, err := LoadSchema(path); err == nil {
			t.Fatalf("expected error")
		}
	})
}

func TestSchemaHelpers(t *testing.T) {
	schema, err := LoadSchema(filepath.Join("testdata", "valid_schema.yaml"))
	if err != nil {
		t.Fatalf("loading schema: %v", err)
	}

	t.Run("EntityTypeByName case-insensitive", func(t *testing.T) {
		entity, ok := schema.EntityTypeByName("NPC")
		if !ok {
			t.Fatalf("expected to find NPC entity type")
		}
		if entity.Icon != "crown" {
			t.Fatalf("expected crown icon, got %q", entity.Icon)
		}
	})

	t.Run("unknown type", func(t *testing.T) {
		if _, ok := schema.EntityTypeByName("dragon"); ok {
			t.Fatalf("expected dragon to be missing")
		}
	})

	t.Run("nil schema", func(t *testing.T) {
		var empty *Schema
		if _, ok := empty.EntityTypeByName("npc"); ok {
			t.Fatalf("expected nil schema to resolve nothing")
		}
	})
}

func writeTempSchema(t *testing.T, contents string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "schema.yaml")
	if err := os.WriteFile(path, []byte(contents), 0o600); err != nil {
		t.Fatalf("writing temp schema: %v", err)
	}
	return path
}
