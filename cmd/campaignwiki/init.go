package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

const defaultSchema = `version: 1

# Presentation overrides per entity type. Omitted types keep their defaults.
entity_types:
  - name: npc
    label: NPC
    icon: crown
    color: "#d97706"

# Affinity and status terms, matched in order against the lowercased value.
ranks:
  - term: ally
    rank: 1
  - term: friendly
    rank: 1
  - term: neutral
    rank: 2
  - term: enemy
    rank: 3
  - term: hostile
    rank: 3
`

func initCmd() *cobra.Command {
	var projectName string
	var campaignName string
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Scaffold a new campaign wiki project",
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(projectName) == "" {
				return fmt.Errorf("--name is required")
			}
			if strings.TrimSpace(campaignName) == "" {
				campaignName = projectName
			}
			return runInit(projectName, campaignName)
		},
	}
	cmd.Flags().StringVar(&projectName, "name", "", "Project name")
	cmd.Flags().StringVar(&campaignName, "campaign", "", "Name of the first campaign (defaults to the project name)")
	return cmd
}

func runInit(projectName, campaignName string) error {
	if _, err := os.Stat(configPath); err == nil {
		return fmt.Errorf("%s already exists", configPath)
	}
	if _, err := os.Stat(schemaPath); err == nil {
		return fmt.Errorf("%s already exists", schemaPath)
	}

	id := slug(campaignName)
	configContents := fmt.Sprintf(`project: %s
version: 1

database:
  driver: sqlite
  dsn: sqlite://campaignwiki.db

campaigns:
  - id: %s
    name: %s
    paths:
      - ./wiki/
    arcs: []

exclude:
  - ./wiki/drafts/

presentation:
  base_path: /
  max_connections: 8
`, projectName, id, campaignName)
	if err := os.WriteFile(configPath, []byte(configContents), 0o600); err != nil {
		return fmt.Errorf("writing %s: %w", configPath, err)
	}
	if err := os.WriteFile(schemaPath, []byte(defaultSchema), 0o600); err != nil {
		return fmt.Errorf("writing %s: %w", schemaPath, err)
	}

	fmt.Fprintf(os.Stdout, "Created %s and %s.\n", configPath, schemaPath)
	return nil
}

func slug(name string) string {
	fields := strings.FieldsFunc(strings.ToLower(name), func(r rune) bool {
		return !(r >= 'a' && r <= 'z' || r >= '0' && r <= '9')
	})
	if len(fields) == 0 {
		return "campaign"
	}
	return strings.Join(fields, "-")
}
