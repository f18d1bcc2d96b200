package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/wordtrail/wordtrail-api/internal/config"
	"github.com/wordtrail/wordtrail-api/internal/importer"
	"github.com/wordtrail/wordtrail-api/internal/platform/postgres"
	"github.com/wordtrail/wordtrail-api/internal/service/clock"
	"github.com/wordtrail/wordtrail-api/internal/service/entitlement"
	"github.com/wordtrail/wordtrail-api/internal/service/review"
	"github.com/wordtrail/wordtrail-api/internal/store"
)

// application holds all the shared application dependencies to simplify
// management and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	// Stores (using interfaces for proper abstraction)
	transactor  store.Transactor
	itemStore   store.ItemStore
	recordStore store.StudyRecordStore
	statsStore  store.StatsStore
	unlockStore store.UnlockStore
	anchorStore store.AnchorStore

	// Services
	clockGuard         *clock.Guard
	reviewService      review.Service
	entitlementService entitlement.Service
	premiumVerifier    *entitlement.PremiumVerifier
}

// newApplication creates a new application instance with all dependencies
// initialized. It accepts core dependencies like configuration, logger, and
// database connection that must be established before application
// initialization.
func newApplication(
	ctx context.Context,
	cfg *config.Config,
	logger *slog.Logger,
	db *sql.DB,
) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	// Stores
	app.transactor = store.NewTransactor(db)
	app.itemStore = postgres.NewItemStore(db, logger)
	app.recordStore = postgres.NewStudyRecordStore(db, logger)
	app.statsStore = postgres.NewStatsStore(db, logger)
	app.unlockStore = postgres.NewUnlockStore(db, logger)
	app.anchorStore = postgres.NewAnchorStore(db, logger)

	// The trusted clock underpins streaks, quotas, and token expiry.
	app.clockGuard = clock.NewGuard(app.transactor, app.anchorStore, clock.SystemClock{}, logger)

	app.reviewService = review.NewService(
		app.transactor,
		app.itemStore,
		app.recordStore,
		app.statsStore,
		app.clockGuard,
		nil,
		rand.New(rand.NewSource(time.Now().UnixNano())),
		logger,
	)

	app.entitlementService = entitlement.NewService(
		app.transactor,
		app.unlockStore,
		app.clockGuard,
		cfg.Quota.DailyLimit,
		logger,
	)

	app.premiumVerifier = entitlement.NewPremiumVerifier(
		cfg.Quota.PremiumSecret,
		app.clockGuard,
		logger,
	)

	logger.Info("Application initialized successfully")
	return app, nil
}

// seedCorpus imports the configured corpus file when the item store is
// empty. Subsequent starts with a populated store skip the import.
func (app *application) seedCorpus(ctx context.Context) error {
	if app.config.Import.Path == "" {
		return nil
	}

	count, err := app.itemStore.Count(ctx)
	if err != nil {
		return fmt.Errorf("failed to count items: %w", err)
	}
	if count > 0 {
		app.logger.Debug("item store already populated, skipping corpus import",
			"count", count)
		return nil
	}

	imp := importer.New(app.transactor, app.itemStore, app.logger)
	importCfg := importer.DefaultConfig(app.config.Import.Path)
	if app.config.Import.Sheet != "" {
		importCfg.SheetName = app.config.Import.Sheet
	}

	result, err := imp.Import(ctx, importCfg)
	if err != nil {
		return err
	}

	app.logger.Info("corpus seeded",
		"created", result.Created,
		"skipped", result.Skipped,
		"errors", len(result.Errors))
	return nil
}

// Run starts the application server, handling lifecycle and cleanup.
// It returns an error if the server fails to start or encounters problems.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("Error closing database connection", "error", err)
		}
	}

	app.logger.Info("Application shutdown completed")
}
