package main

import (
	"log"

	"github.com/spf13/cobra"

	"campaignwiki/internal/mcp"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"
)

func serveCmd() *cobra.Command {
	var campaign string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the MCP server over stdio",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, campaign)
		},
	}
	cmd.Flags().StringVar(&campaign, "campaign", "", "Default campaign for tools called without one")
	return cmd
}

func runServe(cmd *cobra.Command, campaign string) error {
	ctx := cmd.Context()

	svc, cfg, closeDB, err := openWiki(ctx)
	if err != nil {
		return err
	}
	defer closeDB()

	defaultCampaign, err := campaignID(cfg, campaign)
	if err != nil {
		return err
	}

	log.Printf("campaignwiki MCP server starting (campaign %s)", defaultCampaign)
	server := mcp.NewServer(svc, defaultCampaign, version)
	return server.Run(ctx, &sdk.StdioTransport{})
}
