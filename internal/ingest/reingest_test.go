package ingest

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"campaignwiki/internal/config"
	"campaignwiki/internal/relation"
	"campaignwiki/internal/store"
	"campaignwiki/internal/store/sqlite"
)

func newSQLiteProject(t *testing.T) (*config.ProjectConfig, *sqlite.Client, string) {
	t.Helper()
	ctx := context.Background()
	db, err := sqlite.New(ctx, "sqlite://:memory:")
	if err != nil {
		t.Fatalf("opening sqlite: %v", err)
	}
	t.Cleanup(func() { db.Close(ctx) })

	dir := t.TempDir()
	cfg := &config.ProjectConfig{
		Project:   "test",
		Version:   1,
		Database:  config.Database{Driver: config.DriverSQLite, DSN: "sqlite://:memory:"},
		Campaigns: []config.Campaign{{ID: "korinis", Name: "Shadows over Korinis", Paths: []string{dir}}},
	}
	return cfg, db, dir
}

func writeDoc(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

func runIngest(t *testing.T, cfg *config.ProjectConfig, db Store) *Result {
	t.Helper()
	result, err := Run(context.Background(), cfg, db, Options{})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(result.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	return result
}

func TestReingest_RenamedTitle(t *testing.T) {
	cfg, db, dir := newSQLiteProject(t)
	path := filepath.Join(dir, "aldric.md")

	writeDoc(t, path, "---\ntitle: Aldric\ntype: npc\n---\nA knight.\n")
	runIngest(t, cfg, db)

	writeDoc(t, path, "---\ntitle: Aldric the Bold\ntype: npc\n---\nA bolder knight.\n")
	result := runIngest(t, cfg, db)
	if result.EntitiesRemoved != 1 {
		t.Fatalf("expected the old entity to be removed, got %d", result.EntitiesRemoved)
	}

	npcs, err := db.ListEntities(context.Background(), store.EntityFilter{CampaignID: "korinis", Type: "npc"})
	if err != nil {
		t.Fatalf("listing entities: %v", err)
	}
	if len(npcs) != 1 {
		t.Fatalf("expected 1 npc after renaming the only file, got %d", len(npcs))
	}
	if npcs[0].Name != "Aldric the Bold" || npcs[0].ID != EntityID("korinis", "Aldric the Bold") {
		t.Fatalf("expected the renamed npc, got %#v", npcs[0])
	}
}

func TestReingest_DroppedRelationship(t *testing.T) {
	cfg, db, dir := newSQLiteProject(t)
	path := filepath.Join(dir, "aldric.md")

	writeDoc(t, path, "---\ntitle: Aldric\ntype: npc\nrelationships:\n  - target: Korinis\n    type: located_in\n  - The Brotherhood\n---\n")
	runIngest(t, cfg, db)

	writeDoc(t, path, "---\ntitle: Aldric\ntype: npc\nrelationships:\n  - The Brotherhood\n---\n")
	runIngest(t, cfg, db)

	rec, err := db.GetEntity(context.Background(), "korinis", "Aldric")
	if err != nil {
		t.Fatalf("getting entity: %v", err)
	}
	rels := relation.Normalize(rec.Relationships)
	if len(rels) != 1 || rels[0].EntityName != "The Brotherhood" || rels[0].Type != "related" {
		t.Fatalf("expected only the remaining link, got %#v", rels)
	}
}

func TestReingest_UnchangedFileKeepsLinks(t *testing.T) {
	cfg, db, dir := newSQLiteProject(t)
	writeDoc(t, filepath.Join(dir, "aldric.md"), "---\ntitle: Aldric\ntype: npc\nrelated: [Harbor]\n---\n")
	runIngest(t, cfg, db)

	result := runIngest(t, cfg, db)
	if result.FilesSkipped != 1 || result.EdgesUpserted != 0 {
		t.Fatalf("expected unchanged file to be skipped, got %#v", result)
	}

	rec, err := db.GetEntity(context.Background(), "korinis", "Aldric")
	if err != nil {
		t.Fatalf("getting entity: %v", err)
	}
	if rels := relation.Normalize(rec.Relationships); len(rels) != 1 {
		t.Fatalf("expected links of a skipped file to survive, got %#v", rels)
	}
}
