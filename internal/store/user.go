package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/recallbox/recall-api/internal/domain"
)

// UserStore defines the interface for user account persistence.
type UserStore interface {
	// Create saves a new user, hashing the plaintext password before
	// storage. Returns ErrEmailExists if the email is already taken and
	// validation errors from the domain User if data is invalid.
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by unique ID.
	// Returns ErrUserNotFound if the user does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)

	// GetByEmail retrieves a user by email address.
	// Returns ErrUserNotFound if the user does not exist.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// WithTx returns a UserStore bound to the given transaction so user
	// writes can be combined with other stores' writes atomically.
	WithTx(tx *sql.Tx) UserStore
}
