package main

import (
	"context"
	"fmt"
	"os"

	"github.com/desertthunder/friendbook/internal/shared"
	"github.com/desertthunder/friendbook/internal/ui"
	"github.com/urfave/cli/v3"
)

// SetupConfig writes the default configuration file.
func (r *Runner) SetupConfig(ctx context.Context, cmd *cli.Command) error {
	configPath := r.resolveConfigPath(cmd)

	if err := shared.CreateConfigFile(configPath); err != nil {
		return err
	}

	r.logger.Info("config file created", "path", configPath)
	return r.writePlain("%s\n", ui.OK("Wrote "+configPath))
}

// SetupDatabase initializes the SQLite store and runs migrations.
func (r *Runner) SetupDatabase(ctx context.Context, cmd *cli.Command) error {
	configPath := r.resolveConfigPath(cmd)

	config := r.config
	if _, err := os.Stat(configPath); err == nil {
		if config, err = shared.LoadConfig(configPath); err != nil {
			r.logger.Warn("failed to load config, using current settings", "error", err)
			config = r.config
		}
	} else {
		r.logger.Info("config file not found, creating from template", "path", configPath)
		if err := shared.CreateConfigFile(configPath); err != nil {
			r.logger.Warn("failed to create config file", "error", err)
		}
	}

	if config.Storage.Backend != "sqlite" {
		return fmt.Errorf("%w: storage backend is %q, setup database only applies to sqlite", shared.ErrInvalidConfig, config.Storage.Backend)
	}

	r.logger.Info("initializing database", "path", config.Storage.Path)

	db, err := shared.NewDatabase(config.Storage.Path)
	if err != nil {
		return fmt.Errorf("failed to create database: %w", err)
	}
	defer db.Close()

	shared.ConfigureDatabase(db, config.Database.MaxOpenConns, config.Database.MaxIdleConns)

	if cmd.Bool("reset") {
		r.logger.Warn("resetting local store", "path", config.Storage.Path)
		if err := shared.RollbackMigration(db); err != nil {
			return fmt.Errorf("failed to roll back migrations: %w", err)
		}
		if err := shared.RunMigrations(db); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}
	}

	r.logger.Infof("setup complete for database: %v", config.Storage.Path)
	return r.writePlain("%s\n", ui.OK("Database ready at "+config.Storage.Path))
}

// resolveConfigPath prefers an explicit --config, then the path main loaded from.
func (r *Runner) resolveConfigPath(cmd *cli.Command) string {
	if !cmd.IsSet("config") && r.configPath != "" {
		return r.configPath
	}
	return cmd.String("config")
}
