package main

import (
	"os"
	"strings"

	"github.com/spf13/cobra"

	"campaignwiki/internal/render"
)

func querySearchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "search <text>",
		Short: "Search sessions and entities by name and description",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuerySearch(cmd, strings.Join(args, " "))
		},
	}
}

func runQuerySearch(cmd *cobra.Command, query string) error {
	ctx := cmd.Context()

	svc, cfg, closeDB, err := openWiki(ctx)
	if err != nil {
		return err
	}
	defer closeDB()

	campaign, err := campaignID(cfg, queryCampaign)
	if err != nil {
		return err
	}

	results, err := svc.Search(ctx, campaign, query)
	if err != nil {
		return err
	}

	if queryJSON {
		return printJSON(results)
	}
	render.Search(os.Stdout, results)
	return nil
}
