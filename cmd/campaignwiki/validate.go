package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"campaignwiki/internal/entity"
	"campaignwiki/internal/render"
	"campaignwiki/internal/validate"
)

func validateCmd() *cobra.Command {
	var campaign string
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Run consistency checks against the ingested wiki",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd, campaign)
		},
	}
	cmd.Flags().StringVar(&campaign, "campaign", "", "Campaign id (all campaigns when empty)")
	return cmd
}

func runValidate(cmd *cobra.Command, campaign string) error {
	ctx := cmd.Context()

	cfg, schema, err := loadProject()
	if err != nil {
		return err
	}

	db, err := openDB(ctx, cfg)
	if err != nil {
		return err
	}
	defer db.Close(ctx)

	report, err := validate.Run(ctx, entity.NewRanks(schema), db, campaign)
	if err != nil {
		return err
	}

	render.Issues(os.Stdout, report)

	if errs, _ := report.Split(); len(errs) > 0 {
		return fmt.Errorf("validation found errors")
	}
	return nil
}
