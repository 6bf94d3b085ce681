package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/desertthunder/chapters/internal/shared"
	"github.com/desertthunder/chapters/internal/story"
)

// Setup creates the config file when missing, initializes the database and runs migrations.
func (r *Runner) Setup(ctx context.Context, cmd *cli.Command) error {
	configPath := cmd.String("config")

	var config *shared.Config
	if _, err := os.Stat(configPath); err == nil {
		if config, err = shared.LoadConfig(configPath); err != nil {
			r.logger.Warn("failed to load config, using defaults", "error", err)
			config = shared.DefaultConfig()
		}
	} else {
		r.logger.Info("config file not found, creating from template", "path", configPath)
		if err := shared.CreateConfigFile(configPath); err != nil {
			r.logger.Warn("failed to create config file, using defaults", "error", err)
			config = shared.DefaultConfig()
		} else {
			r.logger.Info("config file created", "path", configPath)
			if config, err = shared.LoadConfig(configPath); err != nil {
				r.logger.Warn("failed to load created config, using defaults", "error", err)
				config = shared.DefaultConfig()
			}
		}
	}

	if path := cmd.String("story-template"); path != "" {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%w: story file already exists at %s", shared.ErrInvalidArgument, path)
		}
		if err := os.WriteFile(path, story.Example(), 0644); err != nil {
			return fmt.Errorf("failed to write story template: %w", err)
		}
		r.logger.Info("story template written", "path", path)
	}

	if config.Database.Path == "" {
		r.logger.Info("database disabled, skipping migrations")
		return nil
	}

	r.logger.Info("initializing database", "path", config.Database.Path)

	db, err := shared.NewDatabase(config.Database.Path)
	if err != nil {
		return fmt.Errorf("failed to create database: %w", err)
	}
	defer db.Close()

	shared.ConfigureDatabase(db, config.Database.MaxOpenConns, config.Database.MaxIdleConns)

	if cmd.Bool("rollback") {
		r.logger.Info("rolling back latest migration")
		if err := shared.RollbackMigration(db); err != nil {
			return fmt.Errorf("failed to roll back migration: %w", err)
		}
		return nil
	}

	r.logger.Info("running database migrations")
	if err := shared.RunMigrations(db); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	r.logger.Infof("setup complete for database: %v", config.Database.Path)
	return nil
}
