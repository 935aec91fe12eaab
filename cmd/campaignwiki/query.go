package main

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"
)

var (
	queryCampaign string
	queryJSON     bool
)

func queryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "query",
		Short: "Query the wiki from the CLI",
	}
	cmd.PersistentFlags().StringVar(&queryCampaign, "campaign", "", "Campaign id (defaults to the first configured campaign)")
	cmd.PersistentFlags().BoolVar(&queryJSON, "json", false, "Print JSON instead of formatted text")
	cmd.AddCommand(queryEntryCmd())
	cmd.AddCommand(queryListCmd())
	cmd.AddCommand(querySearchCmd())
	cmd.AddCommand(queryTooltipCmd())
	cmd.AddCommand(queryConnectionsCmd())
	cmd.AddCommand(queryDashboardCmd())
	cmd.AddCommand(queryCampaignsCmd())
	return cmd
}

// printJSON writes v indented to stdout.
func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
