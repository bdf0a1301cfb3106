package service

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/recallbox/recall-api/internal/catalog"
	"github.com/recallbox/recall-api/internal/domain"
	"github.com/recallbox/recall-api/internal/domain/leitner"
	"github.com/recallbox/recall-api/internal/store"
)

// ReviewStats summarizes a user's review history.
type ReviewStats struct {
	Score         int     `json:"score"`
	ReviewedCount int     `json:"reviewed_count"`
	Accuracy      float64 `json:"accuracy"`
	TotalCards    int     `json:"total_cards"`
	DueCount      int     `json:"due_count"`
}

// ReviewService provides the review workflow: listing due cards,
// serving the next card, recording outcomes and reporting statistics.
type ReviewService interface {
	// DueCards returns every card currently due for the user, shuffled.
	// Returns ErrProfileNotFound if the user has no profile.
	DueCards(ctx context.Context, userID uuid.UUID) ([]leitner.CardWithProgress, error)

	// NextCard returns one due card for the user.
	// Returns ErrNoCardsDue when nothing is due right now.
	NextCard(ctx context.Context, userID uuid.UUID) (*leitner.CardWithProgress, error)

	// SubmitReview records an outcome for a card and returns the
	// updated profile. The read-modify-write runs in a transaction with
	// the profile row locked, so concurrent submissions for the same
	// user serialize instead of losing updates.
	SubmitReview(
		ctx context.Context,
		userID uuid.UUID,
		question string,
		outcome domain.ReviewOutcome,
	) (*domain.Profile, error)

	// Stats reports score, reviewed count and accuracy for the user.
	Stats(ctx context.Context, userID uuid.UUID) (*ReviewStats, error)
}

// reviewServiceImpl implements the ReviewService interface.
type reviewServiceImpl struct {
	db        *sql.DB
	profiles  store.ProfileStore
	catalog   *catalog.Catalog
	scheduler leitner.Scheduler
	timeFunc  func() time.Time
	txRunner  func(ctx context.Context, db *sql.DB, fn store.TxFn) error
	logger    *slog.Logger
}

// NewReviewService creates a new ReviewService.
// It returns an error if any of the required dependencies are nil.
func NewReviewService(
	db *sql.DB,
	profiles store.ProfileStore,
	cat *catalog.Catalog,
	scheduler leitner.Scheduler,
	logger *slog.Logger,
) (ReviewService, error) {
	if db == nil {
		return nil, &ServiceError{Operation: "create_service", Message: "db cannot be nil"}
	}
	if profiles == nil {
		return nil, &ServiceError{Operation: "create_service", Message: "profiles cannot be nil"}
	}
	if cat == nil {
		return nil, &ServiceError{Operation: "create_service", Message: "catalog cannot be nil"}
	}
	if scheduler == nil {
		return nil, &ServiceError{Operation: "create_service", Message: "scheduler cannot be nil"}
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &reviewServiceImpl{
		db:        db,
		profiles:  profiles,
		catalog:   cat,
		scheduler: scheduler,
		timeFunc:  time.Now,
		txRunner:  store.RunInTransaction,
		logger:    logger.With(slog.String("component", "review_service")),
	}, nil
}

// DueCards implements ReviewService.DueCards.
func (s *reviewServiceImpl) DueCards(
	ctx context.Context,
	userID uuid.UUID,
) ([]leitner.CardWithProgress, error) {
	profile, err := s.profiles.Get(ctx, userID)
	if err != nil {
		return nil, NewServiceError("due_cards", "failed to load profile", err)
	}

	due, err := s.scheduler.DueCards(s.catalog.Snapshot(), profile, s.timeFunc())
	if err != nil {
		return nil, NewServiceError("due_cards", "failed to compute due cards", err)
	}
	return due, nil
}

// NextCard implements ReviewService.NextCard.
func (s *reviewServiceImpl) NextCard(
	ctx context.Context,
	userID uuid.UUID,
) (*leitner.CardWithProgress, error) {
	due, err := s.DueCards(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(due) == 0 {
		return nil, ErrNoCardsDue
	}
	return &due[0], nil
}

// SubmitReview implements ReviewService.SubmitReview.
func (s *reviewServiceImpl) SubmitReview(
	ctx context.Context,
	userID uuid.UUID,
	question string,
	outcome domain.ReviewOutcome,
) (*domain.Profile, error) {
	if !outcome.IsValid() {
		return nil, ErrInvalidOutcome
	}

	var updated *domain.Profile
	err := s.txRunner(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txProfiles := s.profiles.WithTx(tx)

		profile, err := txProfiles.GetForUpdate(ctx, userID)
		if err != nil {
			return NewServiceError("submit_review", "failed to lock profile", err)
		}

		updated, err = s.scheduler.ApplyOutcome(profile, question, outcome, s.timeFunc())
		if err != nil {
			if errors.Is(err, leitner.ErrUnknownCard) {
				return ErrUnknownCard
			}
			return NewServiceError("submit_review", "failed to apply outcome", err)
		}

		if err := txProfiles.Update(ctx, updated); err != nil {
			return NewServiceError("submit_review", "failed to persist profile", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Debug("review recorded",
		slog.String("user_id", userID.String()),
		slog.String("outcome", string(outcome)),
		slog.Int("score", updated.Score),
		slog.Int("reviewed_count", updated.ReviewedCount))
	return updated, nil
}

// Stats implements ReviewService.Stats. Accuracy is the percentage of
// reviews that were correct, rounded to two decimals; zero reviews yield
// zero accuracy rather than a division error.
func (s *reviewServiceImpl) Stats(ctx context.Context, userID uuid.UUID) (*ReviewStats, error) {
	profile, err := s.profiles.Get(ctx, userID)
	if err != nil {
		return nil, NewServiceError("stats", "failed to load profile", err)
	}

	due, err := s.scheduler.DueCards(s.catalog.Snapshot(), profile, s.timeFunc())
	if err != nil {
		return nil, NewServiceError("stats", "failed to compute due cards", err)
	}

	accuracy := 0.0
	if profile.ReviewedCount > 0 {
		accuracy = float64(profile.Score) / float64(profile.ReviewedCount) * 100
		accuracy = math.Round(accuracy*100) / 100
	}

	return &ReviewStats{
		Score:         profile.Score,
		ReviewedCount: profile.ReviewedCount,
		Accuracy:      accuracy,
		TotalCards:    s.catalog.Len(),
		DueCount:      len(due),
	}, nil
}
