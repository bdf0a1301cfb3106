package service

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/recallbox/recall-api/internal/catalog"
	"github.com/recallbox/recall-api/internal/domain"
	"github.com/recallbox/recall-api/internal/store"
)

// ImportResult reports what happened to an imported batch.
type ImportResult struct {
	// Added is the number of cards actually appended to the deck.
	Added int `json:"added"`
	// Skipped counts candidates dropped as malformed or duplicate.
	Skipped int `json:"skipped"`
	// Total is the deck size after the import.
	Total int `json:"total"`
}

// DeckService manages the shared card deck: importing new cards and
// exporting the full set.
type DeckService interface {
	// Import appends well-formed, previously unseen cards to the deck
	// and persists them. Malformed entries and duplicate questions are
	// skipped individually; the rest of the batch still lands.
	// Profiles created before the import are not retrofitted.
	Import(ctx context.Context, cards []domain.Card) (*ImportResult, error)

	// Export returns the full deck in insertion order.
	Export(ctx context.Context) ([]domain.Card, error)
}

// deckServiceImpl implements the DeckService interface.
type deckServiceImpl struct {
	db       *sql.DB
	cards    store.CardStore
	catalog  *catalog.Catalog
	txRunner func(ctx context.Context, db *sql.DB, fn store.TxFn) error
	logger   *slog.Logger
}

// NewDeckService creates a new DeckService.
// It returns an error if any of the required dependencies are nil.
func NewDeckService(
	db *sql.DB,
	cards store.CardStore,
	cat *catalog.Catalog,
	logger *slog.Logger,
) (DeckService, error) {
	if db == nil {
		return nil, &ServiceError{Operation: "create_service", Message: "db cannot be nil"}
	}
	if cards == nil {
		return nil, &ServiceError{Operation: "create_service", Message: "cards cannot be nil"}
	}
	if cat == nil {
		return nil, &ServiceError{Operation: "create_service", Message: "catalog cannot be nil"}
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &deckServiceImpl{
		db:       db,
		cards:    cards,
		catalog:  cat,
		txRunner: store.RunInTransaction,
		logger:   logger.With(slog.String("component", "deck_service")),
	}, nil
}

// Import implements DeckService.Import. Candidates are filtered against
// the in-memory catalog first, persisted, then appended to the catalog.
// AppendIfNew re-checks for duplicates, so a concurrent import of the
// same batch cannot double-append.
func (s *deckServiceImpl) Import(
	ctx context.Context,
	candidates []domain.Card,
) (*ImportResult, error) {
	fresh := s.catalog.SelectNew(candidates)

	if len(fresh) > 0 {
		err := s.txRunner(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
			return s.cards.WithTx(tx).CreateMultiple(ctx, fresh)
		})
		if err != nil {
			return nil, NewServiceError("import_cards", "failed to persist cards", err)
		}
	}

	added := s.catalog.AppendIfNew(fresh)
	result := &ImportResult{
		Added:   added,
		Skipped: len(candidates) - added,
		Total:   s.catalog.Len(),
	}

	s.logger.Info("deck import finished",
		slog.Int("candidates", len(candidates)),
		slog.Int("added", result.Added),
		slog.Int("skipped", result.Skipped),
		slog.Int("deck_size", result.Total))
	return result, nil
}

// Export implements DeckService.Export.
func (s *deckServiceImpl) Export(ctx context.Context) ([]domain.Card, error) {
	return s.catalog.Snapshot(), nil
}
