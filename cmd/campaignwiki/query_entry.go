package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"campaignwiki/internal/render"
	"campaignwiki/internal/wiki"
)

func queryEntryCmd() *cobra.Command {
	var entityType string
	cmd := &cobra.Command{
		Use:   "entry <id-or-name>",
		Short: "Display a wiki entry with its connections",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQueryEntry(cmd, args[0], entityType)
		},
	}
	cmd.Flags().StringVar(&entityType, "type", "", "Listing type used when the entity has none")
	return cmd
}

func runQueryEntry(cmd *cobra.Command, key, entityType string) error {
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

	entry, err := svc.Entry(ctx, campaign, key, entityType)
	if errors.Is(err, wiki.ErrNotFound) {
		fmt.Fprintf(os.Stdout, "No entity found for %q.\n", key)
		return nil
	}
	if err != nil {
		return err
	}

	if queryJSON {
		return printJSON(entry)
	}
	render.Entry(os.Stdout, entry)
	return nil
}
