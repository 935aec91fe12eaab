package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"campaignwiki/internal/telemetry"
)

var (
	configPath string
	schemaPath string
)

func main() {
	os.Exit(run())
}

func run() int {
	_ = godotenv.Load()

	ctx := context.Background()
	shutdown, err := telemetry.Setup(ctx, "campaignwiki")
	if err != nil {
		fmt.Fprintf(os.Stderr, "tracing disabled: %v\n", err)
	}
	defer shutdown(ctx)

	root := &cobra.Command{
		Use:   "campaignwiki",
		Short: "Campaign wiki backed by Postgres or SQLite",
	}
	root.Version = version
	root.SetVersionTemplate("{{.Version}}\n")
	root.PersistentFlags().StringVar(&configPath, "config", "campaignwiki.yaml", "Project config file")
	root.PersistentFlags().StringVar(&schemaPath, "schema", "schema.yaml", "Entity type schema file (optional)")
	root.AddCommand(ingestCmd())
	root.AddCommand(serveCmd())
	root.AddCommand(validateCmd())
	root.AddCommand(queryCmd())
	root.AddCommand(initCmd())
	root.AddCommand(versionCmd())
	if err := root.ExecuteContext(ctx); err != nil {
		return 1
	}
	return 0
}
