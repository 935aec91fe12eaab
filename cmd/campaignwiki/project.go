package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"campaignwiki/internal/config"
	"campaignwiki/internal/store"
	"campaignwiki/internal/store/postgres"
	"campaignwiki/internal/store/sqlite"
	"campaignwiki/internal/viewmodel"
	"campaignwiki/internal/wiki"
)

// loadProject reads the project config and the schema. A missing schema
// file means built-in presentation.
func loadProject() (*config.ProjectConfig, *config.Schema, error) {
	cfg, err := config.LoadProjectConfig(configPath)
	if err != nil {
		return nil, nil, err
	}
	schema, err := config.LoadSchema(schemaPath)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil, nil
	}
	if err != nil {
		return nil, nil, err
	}
	return cfg, schema, nil
}

func openDB(ctx context.Context, cfg *config.ProjectConfig) (store.Store, error) {
	switch cfg.Database.Driver {
	case config.DriverSQLite:
		client, err := sqlite.New(ctx, cfg.Database.DSN)
		if err != nil {
			return nil, err
		}
		return client, nil
	case config.DriverPostgres:
		client, err := postgres.New(ctx, cfg.Database.DSN)
		if err != nil {
			return nil, err
		}
		return client, nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", cfg.Database.Driver)
	}
}

// openWiki loads the project and returns the read service over a retrying
// store. The returned close function releases the database.
func openWiki(ctx context.Context) (*wiki.Service, *config.ProjectConfig, func(), error) {
	cfg, schema, err := loadProject()
	if err != nil {
		return nil, nil, nil, err
	}
	mapper, err := viewmodel.NewFromConfig(cfg, schema)
	if err != nil {
		return nil, nil, nil, err
	}
	db, err := openDB(ctx, cfg)
	if err != nil {
		return nil, nil, nil, err
	}
	closeDB := func() { db.Close(ctx) }
	return wiki.New(store.NewRetrying(db), mapper), cfg, closeDB, nil
}

// campaignID resolves --campaign, defaulting to the first configured
// campaign.
func campaignID(cfg *config.ProjectConfig, flag string) (string, error) {
	campaign, ok := cfg.Campaign(flag)
	if !ok {
		return "", fmt.Errorf("unknown campaign: %s", flag)
	}
	return campaign.ID, nil
}
