package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type ProjectConfig struct {
	Project      string       `yaml:"project"`
	Version      int          `yaml:"version"`
	Database     Database     `yaml:"database"`
	Campaigns    []Campaign   `yaml:"campaigns"`
	Exclude      []string     `yaml:"exclude"`
	Presentation Presentation `yaml:"presentation"`
}

type Database struct {
	Driver string `yaml:"driver" env:"CAMPAIGNWIKI_DATABASE_DRIVER"`
	DSN    string `yaml:"dsn" env:"CAMPAIGNWIKI_DATABASE_DSN"`
}

type Campaign struct {
	ID          string   `yaml:"id"`
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	Paths       []string `yaml:"paths"`
	Arcs        []Arc    `yaml:"arcs"`
}

type Arc struct {
	ID          string `yaml:"id"`
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Order       int    `yaml:"order"`
}

type Presentation struct {
	BasePath       string   `yaml:"base_path" env:"CAMPAIGNWIKI_BASE_PATH"`
	MaxConnections int      `yaml:"max_connections" env:"CAMPAIGNWIKI_MAX_CONNECTIONS"`
	Defaults       Defaults `yaml:"defaults"`
}

// Defaults are the fallback labels used when an entity leaves a grouping
// field unset.
type Defaults struct {
	Region      string `yaml:"region"`
	QuestType   string `yaml:"quest_type"`
	CampaignArc string `yaml:"campaign_arc"`
}

const (
	DefaultBasePath       = "/"
	DefaultMaxConnections = 8
	DefaultRegion         = "Uncharted"
	DefaultQuestType      = "Side Quest"
	DefaultCampaignArc    = "General Chronicles"
)

func LoadProjectConfig(path string) (*ProjectConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading project config: %w", err)
	}

	var cfg ProjectConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("loading project config: %w", err)
	}

	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("loading project config: parse env: %w", err)
	}

	applyDefaults(&cfg)

	if err := validateProjectConfig(&cfg); err != nil {
		return nil, fmt.Errorf("loading project config: %w", err)
	}

	return &cfg, nil
}

// Campaign returns the configured campaign with the given id. An empty id
// selects the first campaign.
func (c *ProjectConfig) Campaign(id string) (*Campaign, bool) {
	if c == nil || len(c.Campaigns) == 0 {
		return nil, false
	}
	if strings.TrimSpace(id) == "" {
		return &c.Campaigns[0], true
	}
	for i := range c.Campaigns {
		if c.Campaigns[i].ID == id {
			return &c.Campaigns[i], true
		}
	}
	return nil, false
}

func applyDefaults(cfg *ProjectConfig) {
	cfg.Database.Driver = strings.ToLower(strings.TrimSpace(cfg.Database.Driver))
	if cfg.Database.Driver == "" {
		cfg.Database.Driver = DriverPostgres
	}
	if strings.TrimSpace(cfg.Presentation.BasePath) == "" {
		cfg.Presentation.BasePath = DefaultBasePath
	}
	if cfg.Presentation.MaxConnections <= 0 {
		cfg.Presentation.MaxConnections = DefaultMaxConnections
	}
	defaults := &cfg.Presentation.Defaults
	if strings.TrimSpace(defaults.Region) == "" {
		defaults.Region = DefaultRegion
	}
	if strings.TrimSpace(defaults.QuestType) == "" {
		defaults.QuestType = DefaultQuestType
	}
	if strings.TrimSpace(defaults.CampaignArc) == "" {
		defaults.CampaignArc = DefaultCampaignArc
	}
}

func validateProjectConfig(cfg *ProjectConfig) error {
	if strings.TrimSpace(cfg.Project) == "" {
		return fmt.Errorf("project name is required")
	}
	if cfg.Version != 1 {
		return fmt.Errorf("unsupported version: %d", cfg.Version)
	}
	switch cfg.Database.Driver {
	case DriverPostgres, DriverSQLite:
	default:
		return fmt.Errorf("unsupported database driver: %s", cfg.Database.Driver)
	}
	if strings.TrimSpace(cfg.Database.DSN) == "" {
		return fmt.Errorf("database dsn is required")
	}
	if len(cfg.Campaigns) == 0 {
		return fmt.Errorf("at least one campaign is required")
	}

	seen := make(map[string]struct{})
	for i, campaign := range cfg.Campaigns {
		if strings.TrimSpace(campaign.ID) == "" {
			return fmt.Errorf("campaign %d id is required", i)
		}
		if strings.TrimSpace(campaign.Name) == "" {
			return fmt.Errorf("campaign %s name is required", campaign.ID)
		}
		if len(campaign.Paths) == 0 {
			return fmt.Errorf("campaign %s paths are required", campaign.ID)
		}
		key := strings.ToLower(campaign.ID)
		if _, exists := seen[key]; exists {
			return fmt.Errorf("duplicate campaign id: %s", campaign.ID)
		}
		seen[key] = struct{}{}

		arcIDs := make(map[string]struct{})
		for j, arc := range campaign.Arcs {
			if strings.TrimSpace(arc.ID) == "" {
				return fmt.Errorf("campaign %s arc %d id is required", campaign.ID, j)
			}
			if _, exists := arcIDs[arc.ID]; exists {
				return fmt.Errorf("campaign %s has duplicate arc id: %s", campaign.ID, arc.ID)
			}
			arcIDs[arc.ID] = struct{}{}
		}
	}

	return nil
}
