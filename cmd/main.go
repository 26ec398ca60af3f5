package main

import (
	"context"
	"os"

	"github.com/leessosso/ytpaste/internal/auth"
	"github.com/leessosso/ytpaste/internal/repositories"
	"github.com/leessosso/ytpaste/internal/services"
	"github.com/leessosso/ytpaste/internal/shared"
	"github.com/urfave/cli/v3"
)

func main() {
	logger := shared.NewLogger(nil)

	config := shared.DefaultConfig()
	if _, err := os.Stat("config.toml"); err == nil {
		if loadedConfig, err := shared.LoadConfig("config.toml"); err == nil {
			config = loadedConfig
		}
	}

	var authManager *auth.Manager
	var youtubeService services.PlaylistAPI

	db, err := shared.NewDatabase(config.Database.Path)
	if err != nil {
		logger.Warn("failed to open session database, run 'ytpaste setup'", "error", err)
	} else {
		defer db.Close()
		shared.ConfigureDatabase(db, config.Database.MaxOpenConns, config.Database.MaxIdleConns)

		if err := shared.RunMigrations(db); err != nil {
			logger.Warn("failed to run migrations", "error", err)
		}

		sessions := repositories.NewSessionRepository(db)
		if manager, err := auth.NewManager(config.Credentials.Google.Map(), sessions, logger); err == nil {
			authManager = manager
			youtubeService = services.NewYouTubeService("", manager, nil)
		} else {
			logger.Warn("Google credentials not configured, run 'ytpaste setup'", "error", err)
		}
	}

	runner := NewRunner(RunnerOpts{
		Config:  config,
		Auth:    authManager,
		YouTube: youtubeService,
		Logger:  logger,
	})

	app := &cli.Command{
		Name:     "ytpaste",
		Usage:    "Replace a YouTube playlist with links pasted from chat",
		Version:  "0.2.0",
		Commands: runner.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		logger.Fatalf("application error: %v", err)
	}
}
