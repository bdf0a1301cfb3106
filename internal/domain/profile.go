package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// ReviewOutcome is the binary result of a single review attempt.
type ReviewOutcome string

// Possible review outcome values
const (
	ReviewOutcomeCorrect   ReviewOutcome = "correct"
	ReviewOutcomeIncorrect ReviewOutcome = "incorrect"
)

// IsValid reports whether the outcome is one of the two known values.
func (o ReviewOutcome) IsValid() bool {
	return o == ReviewOutcomeCorrect || o == ReviewOutcomeIncorrect
}

// Common validation errors for Profile and ReviewState
var (
	ErrEmptyProfileUserID = errors.New("profile user ID cannot be empty")
	ErrNegativeScore      = errors.New("profile score cannot be negative")
	ErrNegativeReviewed   = errors.New("profile reviewed count cannot be negative")
	ErrInvalidBox         = errors.New("box level must be at least 1")
)

// ReviewState is a user's scheduling state for one card: the card's box
// level and the instant after which it becomes due again. NextReviewAt is
// written exactly once per review event, including profile initialization.
type ReviewState struct {
	Box          int       `json:"box"`
	NextReviewAt time.Time `json:"next_review"`
}

// Validate checks the ReviewState invariants. The upper box bound is
// enforced by the scheduler parameters, not here.
func (s ReviewState) Validate() error {
	if s.Box < 1 {
		return ErrInvalidBox
	}
	return nil
}

// Profile aggregates a user's review progress: lifetime score, total
// reviewed count, and the per-card scheduling states. Cards holds an entry
// for every catalog card that existed when the profile was created; cards
// imported later are not retrofitted.
type Profile struct {
	UserID        uuid.UUID              `json:"user_id"`
	Score         int                    `json:"score"`
	ReviewedCount int                    `json:"reviewed_count"`
	Cards         map[string]ReviewState `json:"cards"`
	CreatedAt     time.Time              `json:"created_at"`
	UpdatedAt     time.Time              `json:"updated_at"`
}

// Validate checks if the Profile has valid data.
// Returns an error if any field fails validation.
func (p *Profile) Validate() error {
	if p.UserID == uuid.Nil {
		return ErrEmptyProfileUserID
	}
	if p.Score < 0 {
		return ErrNegativeScore
	}
	if p.ReviewedCount < 0 {
		return ErrNegativeReviewed
	}
	for _, state := range p.Cards {
		if err := state.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Clone returns a deep copy of the profile. The scheduler mutates copies
// and returns them for the caller to persist; the stored value is never
// modified in place.
func (p *Profile) Clone() *Profile {
	cards := make(map[string]ReviewState, len(p.Cards))
	for q, state := range p.Cards {
		cards[q] = state
	}
	return &Profile{
		UserID:        p.UserID,
		Score:         p.Score,
		ReviewedCount: p.ReviewedCount,
		Cards:         cards,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}
