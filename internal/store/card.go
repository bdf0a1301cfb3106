package store

import (
	"context"
	"database/sql"

	"github.com/recallbox/recall-api/internal/domain"
)

// CardStore defines the interface for flashcard definition persistence.
// The durable card table backs the in-memory catalog, which is loaded once
// at startup and appended to on import.
type CardStore interface {
	// GetAll returns every stored card in insertion order.
	GetAll(ctx context.Context) ([]domain.Card, error)

	// CreateMultiple inserts the given cards. Cards whose question
	// already exists are left untouched rather than treated as an error,
	// matching catalog append semantics.
	CreateMultiple(ctx context.Context, cards []domain.Card) error

	// WithTx returns a CardStore bound to the given transaction.
	WithTx(tx *sql.Tx) CardStore
}
