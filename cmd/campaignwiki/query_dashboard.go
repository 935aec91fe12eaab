package main

import (
	"os"

	"github.com/spf13/cobra"

	"campaignwiki/internal/render"
)

func queryDashboardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Summarize the campaign: threads, party, arcs and counts",
		Args:  cobra.NoArgs,
		RunE:  runQueryDashboard,
	}
}

func runQueryDashboard(cmd *cobra.Command, args []string) error {
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

	dash, err := svc.Dashboard(ctx, campaign)
	if err != nil {
		return err
	}

	if queryJSON {
		return printJSON(dash)
	}
	render.Dashboard(os.Stdout, dash)
	return nil
}
