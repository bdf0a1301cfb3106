package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"github.com/recallbox/recall-api/internal/domain"
	"github.com/recallbox/recall-api/internal/platform/logger"
	"github.com/recallbox/recall-api/internal/store"
)

// PostgresProfileStore implements the store.ProfileStore interface using
// a PostgreSQL database as the storage backend. A profile is persisted
// as one row in profiles plus one row per scheduled card in
// review_states.
type PostgresProfileStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresProfileStore creates a new PostgreSQL implementation of the
// ProfileStore interface.
func NewPostgresProfileStore(db store.DBTX, log *slog.Logger) *PostgresProfileStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}
	return &PostgresProfileStore{
		db:     db,
		logger: log.With(slog.String("component", "profile_store")),
	}
}

// Ensure PostgresProfileStore implements store.ProfileStore
var _ store.ProfileStore = (*PostgresProfileStore)(nil)

// Create implements store.ProfileStore.Create. It inserts the profile
// row and one review_states row per scheduled card. Callers that need
// atomicity with other writes should run it inside a transaction via
// WithTx.
func (s *PostgresProfileStore) Create(ctx context.Context, profile *domain.Profile) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := profile.Validate(); err != nil {
		log.Warn("profile validation failed during create",
			slog.String("error", err.Error()),
			slog.String("user_id", profile.UserID.String()))
		return err
	}

	query := `
		INSERT INTO profiles (user_id, score, reviewed_count, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := s.db.ExecContext(ctx, query,
		profile.UserID, profile.Score, profile.ReviewedCount,
		profile.CreatedAt, profile.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			log.Debug("duplicate profile during creation",
				slog.String("user_id", profile.UserID.String()))
			return store.ErrProfileExists
		}
		if isForeignKeyViolation(err) {
			log.Warn("profile references unknown user",
				slog.String("user_id", profile.UserID.String()))
			return store.ErrUserNotFound
		}
		log.Error("failed to create profile",
			slog.String("error", err.Error()),
			slog.String("user_id", profile.UserID.String()))
		return store.NewStoreError("profile", "create", "insert failed", err)
	}

	if err := s.insertStates(ctx, profile.UserID, profile.Cards); err != nil {
		return err
	}

	log.Info("profile created successfully",
		slog.String("user_id", profile.UserID.String()),
		slog.Int("card_count", len(profile.Cards)))
	return nil
}

// Get implements store.ProfileStore.Get.
func (s *PostgresProfileStore) Get(ctx context.Context, userID uuid.UUID) (*domain.Profile, error) {
	query := `
		SELECT user_id, score, reviewed_count, created_at, updated_at
		FROM profiles
		WHERE user_id = $1
	`
	return s.getProfile(ctx, query, userID)
}

// GetForUpdate implements store.ProfileStore.GetForUpdate. It acquires a
// row-level lock on the profile so concurrent review submissions for the
// same user serialize. Must be called inside a transaction.
func (s *PostgresProfileStore) GetForUpdate(ctx context.Context, userID uuid.UUID) (*domain.Profile, error) {
	query := `
		SELECT user_id, score, reviewed_count, created_at, updated_at
		FROM profiles
		WHERE user_id = $1
		FOR UPDATE
	`
	return s.getProfile(ctx, query, userID)
}

// Update implements store.ProfileStore.Update. Counter columns are
// rewritten and every review state is upserted, so applying a scheduler
// result persists both the moved card and any newly scheduled cards.
func (s *PostgresProfileStore) Update(ctx context.Context, profile *domain.Profile) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := profile.Validate(); err != nil {
		log.Warn("profile validation failed during update",
			slog.String("error", err.Error()),
			slog.String("user_id", profile.UserID.String()))
		return err
	}

	query := `
		UPDATE profiles
		SET score = $2, reviewed_count = $3, updated_at = $4
		WHERE user_id = $1
	`
	result, err := s.db.ExecContext(ctx, query,
		profile.UserID, profile.Score, profile.ReviewedCount, profile.UpdatedAt)
	if err != nil {
		log.Error("failed to update profile",
			slog.String("error", err.Error()),
			slog.String("user_id", profile.UserID.String()))
		return store.NewStoreError("profile", "update", "update failed", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Error("failed to get rows affected",
			slog.String("error", err.Error()),
			slog.String("user_id", profile.UserID.String()))
		return store.NewStoreError("profile", "update", "rows affected failed", err)
	}
	if rowsAffected == 0 {
		return store.ErrProfileNotFound
	}

	if err := s.upsertStates(ctx, profile.UserID, profile.Cards); err != nil {
		return err
	}

	log.Debug("profile updated",
		slog.String("user_id", profile.UserID.String()),
		slog.Int("score", profile.Score),
		slog.Int("reviewed_count", profile.ReviewedCount))
	return nil
}

// WithTx implements store.ProfileStore.WithTx.
func (s *PostgresProfileStore) WithTx(tx *sql.Tx) store.ProfileStore {
	return &PostgresProfileStore{
		db:     tx,
		logger: s.logger,
	}
}

func (s *PostgresProfileStore) getProfile(ctx context.Context, query string, userID uuid.UUID) (*domain.Profile, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	profile := domain.Profile{
		Cards: make(map[string]domain.ReviewState),
	}
	err := s.db.QueryRowContext(ctx, query, userID).Scan(
		&profile.UserID,
		&profile.Score,
		&profile.ReviewedCount,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrProfileNotFound
		}
		log.Error("failed to get profile",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, store.NewStoreError("profile", "get", "query failed", err)
	}

	statesQuery := `
		SELECT question, box, next_review_at
		FROM review_states
		WHERE user_id = $1
	`
	rows, err := s.db.QueryContext(ctx, statesQuery, userID)
	if err != nil {
		log.Error("failed to query review states",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, store.NewStoreError("profile", "get", "state query failed", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	for rows.Next() {
		var question string
		var state domain.ReviewState
		if err := rows.Scan(&question, &state.Box, &state.NextReviewAt); err != nil {
			log.Error("failed to scan review state",
				slog.String("error", err.Error()),
				slog.String("user_id", userID.String()))
			return nil, store.NewStoreError("profile", "get", "state scan failed", err)
		}
		profile.Cards[question] = state
	}
	if err := rows.Err(); err != nil {
		log.Error("error after scanning review states",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, store.NewStoreError("profile", "get", "state iteration failed", err)
	}

	return &profile, nil
}

func (s *PostgresProfileStore) insertStates(ctx context.Context, userID uuid.UUID, cards map[string]domain.ReviewState) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		INSERT INTO review_states (user_id, question, box, next_review_at)
		VALUES ($1, $2, $3, $4)
	`
	for question, state := range cards {
		if _, err := s.db.ExecContext(ctx, query,
			userID, question, state.Box, state.NextReviewAt); err != nil {
			log.Error("failed to insert review state",
				slog.String("error", err.Error()),
				slog.String("user_id", userID.String()))
			return store.NewStoreError("profile", "create", "state insert failed", err)
		}
	}
	return nil
}

func (s *PostgresProfileStore) upsertStates(ctx context.Context, userID uuid.UUID, cards map[string]domain.ReviewState) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		INSERT INTO review_states (user_id, question, box, next_review_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, question)
		DO UPDATE SET box = EXCLUDED.box, next_review_at = EXCLUDED.next_review_at
	`
	for question, state := range cards {
		if _, err := s.db.ExecContext(ctx, query,
			userID, question, state.Box, state.NextReviewAt); err != nil {
			log.Error("failed to upsert review state",
				slog.String("error", err.Error()),
				slog.String("user_id", userID.String()))
			return store.NewStoreError("profile", "update", "state upsert failed", err)
		}
	}
	return nil
}
