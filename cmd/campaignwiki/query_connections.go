package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"campaignwiki/internal/render"
	"campaignwiki/internal/wiki"
)

func queryConnectionsCmd() *cobra.Command {
	var maxConnections int
	cmd := &cobra.Command{
		Use:   "connections <id-or-name>",
		Short: "List the entities connected to an entity",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQueryConnections(cmd, args[0], maxConnections)
		},
	}
	cmd.Flags().IntVar(&maxConnections, "max", 0, "Maximum connections (0 uses the configured bound)")
	return cmd
}

func runQueryConnections(cmd *cobra.Command, key string, maxConnections int) error {
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

	conns, err := svc.Connections(ctx, campaign, key, maxConnections)
	if errors.Is(err, wiki.ErrNotFound) {
		fmt.Fprintf(os.Stdout, "No entity found for %q.\n", key)
		return nil
	}
	if err != nil {
		return err
	}

	if queryJSON {
		return printJSON(conns)
	}
	render.Connections(os.Stdout, conns)
	return nil
}
