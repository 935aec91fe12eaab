package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"campaignwiki/internal/entity"
	"campaignwiki/internal/render"
)

func queryListCmd() *cobra.Command {
	var entityType string
	var filter string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List entities of one type as the wiki sidebar groups them",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQueryList(cmd, entityType, filter)
		},
	}
	cmd.Flags().StringVar(&entityType, "type", "", "Entity type to list")
	cmd.Flags().StringVar(&filter, "filter", "", "Case-insensitive name filter")
	_ = cmd.MarkFlagRequired("type")
	return cmd
}

func runQueryList(cmd *cobra.Command, entityType, filter string) error {
	if !entity.IsKnownType(entityType) {
		return fmt.Errorf("unknown entity type: %s", entityType)
	}

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

	groups, err := svc.Sidebar(ctx, campaign, entityType, filter)
	if err != nil {
		return err
	}

	if queryJSON {
		return printJSON(groups)
	}
	render.Sidebar(os.Stdout, groups)
	return nil
}
