// Package main implements the entry point for the recall API server,
// a box-based spaced-repetition flashcard service.
package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"

	"github.com/recallbox/recall-api/internal/config"
	"github.com/recallbox/recall-api/internal/platform/logger"
	"github.com/recallbox/recall-api/internal/platform/postgres"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}

// run initializes configuration, logging, the database and the
// application wiring, then serves HTTP until shutdown.
func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger, err := logger.Setup(cfg.Server)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}
	appLogger.Info("server configuration loaded",
		slog.Int("port", cfg.Server.Port),
		slog.String("log_level", cfg.Server.LogLevel))

	db, err := setupDatabase(cfg, appLogger)
	if err != nil {
		return err
	}

	if err := runMigrations(db, appLogger); err != nil {
		return err
	}

	ctx := context.Background()
	if err := seedDeck(ctx, postgres.NewPostgresCardStore(db, appLogger), appLogger); err != nil {
		return err
	}

	app, err := newApplication(ctx, cfg, appLogger, db)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	return app.startHTTPServer(ctx, app.setupRouter())
}
