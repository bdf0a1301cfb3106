package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/recallbox/recall-api/internal/domain"
)

// ProfileStore defines the interface for review profile persistence. The
// scheduler itself is stateless; everything it needs between calls lives
// in a Profile loaded and saved through this interface.
type ProfileStore interface {
	// Create saves a newly initialized profile, including one review
	// state row per scheduled card.
	// Returns ErrProfileExists if the user already has a profile.
	Create(ctx context.Context, profile *domain.Profile) error

	// Get retrieves a user's profile without locking it. Suitable for
	// read-only paths such as due-card computation and statistics.
	// Returns ErrProfileNotFound if no profile exists for the user.
	Get(ctx context.Context, userID uuid.UUID) (*domain.Profile, error)

	// GetForUpdate retrieves a user's profile with a row-level lock.
	// Must be called inside a transaction; it serializes concurrent
	// writers of the same profile while leaving other users' profiles
	// untouched. Returns ErrProfileNotFound if no profile exists.
	GetForUpdate(ctx context.Context, userID uuid.UUID) (*domain.Profile, error)

	// Update persists the profile counters and every review state.
	// Returns ErrProfileNotFound if the profile does not exist.
	Update(ctx context.Context, profile *domain.Profile) error

	// WithTx returns a ProfileStore bound to the given transaction.
	WithTx(tx *sql.Tx) ProfileStore
}
