package main

import (
	"context"
	"errors"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/desertthunder/chapters/internal/shared"
)

const defaultConfigPath = "config.toml"

func main() {
	logger := shared.NewLogger(nil)

	config := shared.DefaultConfig()
	configPath := ""
	if _, err := os.Stat(defaultConfigPath); err == nil {
		if loadedConfig, err := shared.LoadConfig(defaultConfigPath); err == nil {
			config = loadedConfig
			configPath = defaultConfigPath
		} else {
			logger.Warn("failed to load config, using defaults", "path", defaultConfigPath, "error", err)
		}
	}

	runner := NewRunner(RunnerOpts{
		Config:     config,
		ConfigPath: configPath,
		Logger:     logger,
	})

	app := &cli.Command{
		Name:     "chapters",
		Usage:    "Present scroll-driven stories in the terminal",
		Version:  "0.3.0",
		Commands: runner.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		if errors.Is(err, shared.ErrDatabaseDisabled) {
			logger.Warn("reading log is disabled, set database.path in the config to enable it")
			os.Exit(0)
		}
		logger.Fatalf("application error: %v", err)
	}
}
