// Package main implements the entry point for the WordTrail API server,
// which tracks vocabulary mastery, study streaks, and level entitlements
// for language learners.
package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"github.com/wordtrail/wordtrail-api/internal/config"
	"github.com/wordtrail/wordtrail-api/internal/platform/logger"
)

// main initializes configuration, logging, the database, and the service
// graph, then starts the HTTP server.
func main() {
	if err := run(); err != nil {
		log.Fatalf("Failed to start application: %v", err)
	}
}

func run() error {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	appLogger := logger.Setup(cfg.Server.LogLevel)
	slog.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel)

	db, err := setupAppDatabase(cfg, appLogger)
	if err != nil {
		return err
	}

	if err := runMigrations(db, appLogger); err != nil {
		return err
	}

	app, err := newApplication(ctx, cfg, appLogger, db)
	if err != nil {
		return err
	}

	if err := app.seedCorpus(ctx); err != nil {
		// First-run seeding is best effort; a bad corpus file should not
		// keep the server down.
		appLogger.Error("corpus seeding failed", "error", err)
	}

	if err := app.Run(ctx); err != nil {
		appLogger.Error("server exited with error", "error", err)
		os.Exit(1)
	}
	return nil
}
