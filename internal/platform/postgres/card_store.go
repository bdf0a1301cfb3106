package postgres

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/recallbox/recall-api/internal/domain"
	"github.com/recallbox/recall-api/internal/platform/logger"
	"github.com/recallbox/recall-api/internal/store"
)

// PostgresCardStore implements the store.CardStore interface using a
// PostgreSQL database as the storage backend.
type PostgresCardStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresCardStore creates a new PostgreSQL implementation of the
// CardStore interface.
func NewPostgresCardStore(db store.DBTX, log *slog.Logger) *PostgresCardStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}
	return &PostgresCardStore{
		db:     db,
		logger: log.With(slog.String("component", "card_store")),
	}
}

// Ensure PostgresCardStore implements store.CardStore
var _ store.CardStore = (*PostgresCardStore)(nil)

// GetAll implements store.CardStore.GetAll, returning cards in insertion
// order.
func (s *PostgresCardStore) GetAll(ctx context.Context) ([]domain.Card, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT question, answer, hint, explanation, image_ref, audio_ref
		FROM cards
		ORDER BY position
	`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		log.Error("failed to query cards", slog.String("error", err.Error()))
		return nil, store.NewStoreError("card", "get_all", "query failed", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	var cards []domain.Card
	for rows.Next() {
		var card domain.Card
		if err := rows.Scan(
			&card.Question,
			&card.Answer,
			&card.Hint,
			&card.Explanation,
			&card.ImageRef,
			&card.AudioRef,
		); err != nil {
			log.Error("failed to scan card row", slog.String("error", err.Error()))
			return nil, store.NewStoreError("card", "get_all", "scan failed", err)
		}
		cards = append(cards, card)
	}
	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows", slog.String("error", err.Error()))
		return nil, store.NewStoreError("card", "get_all", "iteration failed", err)
	}

	if cards == nil {
		cards = []domain.Card{}
	}
	log.Debug("loaded cards", slog.Int("count", len(cards)))
	return cards, nil
}

// CreateMultiple implements store.CardStore.CreateMultiple. Conflicting
// questions are skipped at the database level so a concurrent import of
// the same card is harmless.
func (s *PostgresCardStore) CreateMultiple(ctx context.Context, cards []domain.Card) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		INSERT INTO cards (question, answer, hint, explanation, image_ref, audio_ref)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (question) DO NOTHING
	`
	for _, card := range cards {
		if err := card.Validate(); err != nil {
			log.Warn("skipping invalid card during insert",
				slog.String("error", err.Error()))
			continue
		}
		if _, err := s.db.ExecContext(ctx, query,
			card.Question, card.Answer, card.Hint,
			card.Explanation, card.ImageRef, card.AudioRef); err != nil {
			log.Error("failed to insert card", slog.String("error", err.Error()))
			return store.NewStoreError("card", "create_multiple", "insert failed", err)
		}
	}

	log.Info("cards persisted", slog.Int("count", len(cards)))
	return nil
}

// WithTx implements store.CardStore.WithTx.
func (s *PostgresCardStore) WithTx(tx *sql.Tx) store.CardStore {
	return &PostgresCardStore{
		db:     tx,
		logger: s.logger,
	}
}
