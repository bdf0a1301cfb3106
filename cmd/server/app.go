package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/recallbox/recall-api/internal/catalog"
	"github.com/recallbox/recall-api/internal/config"
	"github.com/recallbox/recall-api/internal/domain/leitner"
	"github.com/recallbox/recall-api/internal/platform/postgres"
	"github.com/recallbox/recall-api/internal/service"
	"github.com/recallbox/recall-api/internal/service/auth"
)

// application holds the wired dependencies of the running server.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	catalog   *catalog.Catalog
	jwtService auth.JWTService

	userService   service.UserService
	reviewService service.ReviewService
	deckService   service.DeckService
}

// newApplication builds the full dependency graph on top of an open
// database connection: stores, the card catalog, the scheduler and the
// services. Migrations and seeding must have run first so the catalog
// load sees the deck.
func newApplication(
	ctx context.Context,
	cfg *config.Config,
	logger *slog.Logger,
	db *sql.DB,
) (*application, error) {
	userStore := postgres.NewPostgresUserStore(db, cfg.Auth.BcryptCost, logger)
	profileStore := postgres.NewPostgresProfileStore(db, logger)
	cardStore := postgres.NewPostgresCardStore(db, logger)

	// The durable card table backs the in-memory catalog, loaded once at
	// startup and appended to on import.
	cards, err := cardStore.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load card deck: %w", err)
	}
	deck := catalog.New(cards)
	logger.Info("card deck loaded", slog.Int("card_count", deck.Len()))

	scheduler := leitner.NewScheduler(leitner.NewParams(leitner.ParamsConfig{
		MaxBox:             cfg.Scheduler.MaxBox,
		BoxIntervalSeconds: cfg.Scheduler.BoxIntervalSeconds,
	}), nil)

	jwtService, err := auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to create JWT service: %w", err)
	}
	passwordVerifier := auth.NewBcryptVerifier()

	userService, err := service.NewUserService(
		db, userStore, profileStore, deck, scheduler, jwtService, passwordVerifier, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create user service: %w", err)
	}
	reviewService, err := service.NewReviewService(db, profileStore, deck, scheduler, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create review service: %w", err)
	}
	deckService, err := service.NewDeckService(db, cardStore, deck, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create deck service: %w", err)
	}

	return &application{
		config:        cfg,
		logger:        logger,
		db:            db,
		catalog:       deck,
		jwtService:    jwtService,
		userService:   userService,
		reviewService: reviewService,
		deckService:   deckService,
	}, nil
}

// cleanup releases resources held by the application.
func (app *application) cleanup() {
	if err := app.db.Close(); err != nil {
		app.logger.Error("failed to close database connection", "error", err)
	}
}
