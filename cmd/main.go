package main

import (
	"context"
	"errors"
	"os"

	"github.com/desertthunder/friendbook/internal/services"
	"github.com/desertthunder/friendbook/internal/shared"
	"github.com/desertthunder/friendbook/internal/storage"
	"github.com/urfave/cli/v3"
)

func main() {
	logger := shared.NewLogger(nil)

	configPath := os.Getenv("FRIENDBOOK_CONFIG")
	if configPath == "" {
		configPath = "config.toml"
	}

	config := shared.DefaultConfig()
	if _, err := os.Stat(configPath); err == nil {
		loaded, err := shared.LoadConfig(configPath)
		if err != nil {
			logger.Fatalf("invalid config %s: %v", configPath, err)
		}
		config = loaded
	}
	shared.SetLogLevel(logger, config.Log.Level)

	bridge, err := storage.Open(config.Storage, config.Database)
	if err != nil {
		logger.Fatalf("failed to open storage: %v", err)
	}

	runner := NewRunner(RunnerOpts{
		Config:     config,
		ConfigPath: configPath,
		Bridge:     bridge,
		Logger:     logger,
	})
	defer runner.Close()

	app := &cli.Command{
		Name:     "friendbook",
		Usage:    "Friend book client: sessions and favorites",
		Version:  "0.1.0",
		Commands: runner.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		var remote *services.RemoteError
		if errors.As(err, &remote) {
			logger.Error(remote.Message, "status", remote.StatusCode)
		} else {
			logger.Error("application error", "error", err)
		}
		runner.Close()
		os.Exit(1)
	}
}
