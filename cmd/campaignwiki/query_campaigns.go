package main

import (
	"os"

	"github.com/spf13/cobra"

	"campaignwiki/internal/render"
)

func queryCampaignsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "campaigns",
		Short: "List ingested campaigns and their arcs",
		Args:  cobra.NoArgs,
		RunE:  runQueryCampaigns,
	}
}

func runQueryCampaigns(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	svc, _, closeDB, err := openWiki(ctx)
	if err != nil {
		return err
	}
	defer closeDB()

	campaigns, err := svc.Campaigns(ctx)
	if err != nil {
		return err
	}

	if queryJSON {
		return printJSON(campaigns)
	}
	render.Campaigns(os.Stdout, campaigns)
	return nil
}
