package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"campaignwiki/internal/render"
	"campaignwiki/internal/wiki"
)

func queryTooltipCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tooltip <id-or-name>",
		Short: "Display the hover card of an entity",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQueryTooltip(cmd, args[0])
		},
	}
}

func runQueryTooltip(cmd *cobra.Command, key string) error {
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

	tip, err := svc.Tooltip(ctx, campaign, key)
	if errors.Is(err, wiki.ErrNotFound) {
		fmt.Fprintf(os.Stdout, "No entity found for %q.\n", key)
		return nil
	}
	if err != nil {
		return err
	}

	if queryJSON {
		return printJSON(tip)
	}
	render.Tooltip(os.Stdout, tip)
	return nil
}
