package config

import (
	"os"
	"path/filepath"
	"testing"
)

const minimalConfig = "project: test\nversion: 1\ndatabase:\n  driver: postgres\n  dsn: postgres://localhost/wiki\ncampaigns:\n  - id: main\n    name: Main\n    paths: [./lore]\n"

func TestLoadProjectConfig(t *testing.T) {
	t.Run("valid config loads", func(t *testing.T) {
		cfg, err := LoadProjectConfig(filepath.Join("testdata", "valid_config.yaml"))
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if cfg.Project != "test-project" {
			t.Fatalf("expected project name, got %q", cfg.Project)
		}
		if cfg.Database.Driver != DriverSQLite {
			t.Fatalf("expected sqlite driver, got %q", cfg.Database.Driver)
		}
		if len(cfg.Campaigns) != 1 || len(cfg.Campaigns[0].Arcs) != 2 {
			t.Fatalf("unexpected campaigns: %#v", cfg.Campaigns)
		}
		if cfg.Presentation.BasePath != "/assets/" || cfg.Presentation.MaxConnections != 6 {
			t.Fatalf("unexpected presentation: %#v", cfg.Presentation)
		}
	})

	t.Run("defaults fill unset presentation values", func(t *testing.T) {
		cfg, err := LoadProjectConfig(filepath.Join("testdata", "valid_config.yaml"))
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		defaults := cfg.Presentation.Defaults
		if defaults.Region != "Unmapped" {
			t.Fatalf("expected configured region, got %q", defaults.Region)
		}
		if defaults.QuestType != DefaultQuestType || defaults.CampaignArc != DefaultCampaignArc {
			t.Fatalf("unexpected defaults: %#v", defaults)
		}
	})

	t.Run("driver defaults to postgres", func(t *testing.T) {
		path := writeTempConfig(t, "project: test\nversion: 1\ndatabase:\n  dsn: postgres://localhost/wiki\ncampaigns:\n  - id: main\n    name: Main\n    paths: [./lore]\n")
		cfg, err := LoadProjectConfig(path)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if cfg.Database.Driver != DriverPostgres {
			t.Fatalf("expected postgres, got %q", cfg.Database.Driver)
		}
		if cfg.Presentation.BasePath != DefaultBasePath || cfg.Presentation.MaxConnections != DefaultMaxConnections {
			t.Fatalf("unexpected presentation: %#v", cfg.Presentation)
		}
	})

	t.Run("environment overrides file values", func(t *testing.T) {
		t.Setenv("CAMPAIGNWIKI_DATABASE_DSN", "postgres://override/wiki")
		t.Setenv("CAMPAIGNWIKI_MAX_CONNECTIONS", "3")
		cfg, err := LoadProjectConfig(writeTempConfig(t, minimalConfig))
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if cfg.Database.DSN != "postgres://override/wiki" {
			t.Fatalf("expected env dsn, got %q", cfg.Database.DSN)
		}
		if cfg.Presentation.MaxConnections != 3 {
			t.Fatalf("expected env max connections, got %d", cfg.Presentation.MaxConnections)
		}
	})

	t.Run("invalid env value", func(t *testing.T) {
		t.Setenv("CAMPAIGNWIKI_MAX_CONNECTIONS", "many")
		if _, err := LoadProjectConfig(writeTempConfig(t, minimalConfig)); err == nil {
			t.Fatalf("expected error")
		}
	})

	t.Run("missing project name", func(t *testing.T) {
		path := writeTempConfig(t, "version: 1\ndatabase:\n  dsn: postgres://localhost/wiki\ncampaigns:\n  - id: main\n    name: Main\n    paths: [./lore]\n")
		if _, err := LoadProjectConfig(path); err == nil {
			t.Fatalf("expected error")
		}
	})

	t.Run("unsupported driver", func(t *testing.T) {
		path := writeTempConfig(t, "project: test\nversion: 1\ndatabase:\n  driver: neo4j\n  dsn: bolt://localhost\ncampaigns:\n  - id: main\n    name: Main\n    paths: [./lore]\n")
		if _, err := LoadProjectConfig(path); err == nil {
			t.Fatalf("expected error")
		}
	})

	t.Run("missing dsn", func(t *testing.T) {
		path := writeTempConfig(t, "project: test\nversion: 1\ncampaigns:\n  - id: main\n    name: Main\n    paths: [./lore]\n")
		if _, err := LoadProjectConfig(path); err == nil {
			t.Fatalf("expected error")
		}
	})

	t.Run("no campaigns", func(t *testing.T) {
		path := writeTempConfig(t, "project: test\nversion: 1\ndatabase:\n  dsn: postgres://localhost/wiki\n")
		if _, err := LoadProjectConfig(path); err == nil {
			t.Fatalf("expected error")
		}
	})

	t.Run("campaign missing paths", func(t *testing.T) {
		path := writeTempConfig(t, "project: test\nversion: 1\ndatabase:\n  dsn: postgres://localhost/wiki\ncampaigns:\n  - id: main\n    name: Main\n")
		if _, err := LoadProjectConfig(path); err == nil {
			t.Fatalf("expected error")
		}
	})

	t.Run("duplicate campaign ids", func(t *testing.T) {
		path := writeTempConfig(t, "project: test\nversion: 1\ndatabase:\n  dsn: postgres://localhost/wiki\ncampaigns:\n  - id: main\n    name: Main\n    paths: [./lore]\n  - id: MAIN\n    name: Again\n    paths: [./lore2]\n")
		if _, err := LoadProjectConfig(path); err == nil {
			t.Fatalf("expected error")
		}
	})

	t.Run("duplicate arc ids", func(t *testing.T) {
		path := writeTempConfig(t, "project: test\nversion: 1\ndatabase:\n  dsn: postgres://localhost/wiki\ncampaigns:\n  - id: main\n    name: Main\n    paths: [./lore]\n    arcs:\n      - id: one\n      - id: one\n")
		if _, err := LoadProjectConfig(path); err == nil {
			t.Fatalf("expected error")
		}
	})

	t.Run("file not found", func(t *testing.T) {
		if _, err := LoadProjectConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
			t.Fatalf("expected error")
		}
	})

	t.Run("invalid yaml", func(t *testing.T) {
		path := writeTempConfig(t, "project: [\n")
		if _, err := LoadProjectConfig(path); err == nil {
			t.Fatalf("expected error")
		}
	})
}

func TestProjectConfigCampaign(t *testing.T) {
	cfg, err := LoadProjectConfig(filepath.Join("testdata", "valid_config.yaml"))
	if err != nil {
		t.Fatalf("loading config: %v", err)
	}

	if campaign, ok := cfg.Campaign(""); !ok || campaign.ID != "korinis" {
		t.Fatalf("expected first campaign for empty id, got %#v", campaign)
	}
	if campaign, ok := cfg.Campaign("korinis"); !ok || campaign.Name != "Shadows over Korinis" {
		t.Fatalf("expected korinis, got %#v", campaign)
	}
	if _, ok := cfg.Campaign("missing"); ok {
		t.Fatalf("expected missing campaign to be absent")
	}
}

func writeTempConfig(t *testing.T, contents string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(contents), 0o600); err != nil {
		t.Fatalf("writing temp config: %v", err)
	}
	return path
}
