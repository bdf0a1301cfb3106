package leitner

import (
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/recallbox/recall-api/internal/domain"
)

// CardWithProgress pairs a card definition with a read-only snapshot of
// the reviewing user's scheduling state for it.
type CardWithProgress struct {
	Card         domain.Card `json:"card"`
	Box          int         `json:"box"`
	NextReviewAt time.Time   `json:"next_review"`
}

// Scheduler defines the box-based spaced-repetition operations. It holds
// no per-user state: every call receives the profile it operates on and
// returns updated copies for the caller to persist.
type Scheduler interface {
	// DueCards returns the subset of cards due for the profile at the
	// given instant, in freshly shuffled order. Cards without a review
	// state in the profile are skipped. The profile is not mutated and
	// repeated calls with the same inputs yield the same set.
	DueCards(cards []domain.Card, profile *domain.Profile, now time.Time) ([]CardWithProgress, error)

	// ApplyOutcome applies a review outcome to one card and returns the
	// updated profile. Returns ErrUnknownCard if the question has no
	// review state in the profile.
	ApplyOutcome(
		profile *domain.Profile,
		question string,
		outcome domain.ReviewOutcome,
		now time.Time,
	) (*domain.Profile, error)

	// InitProfile builds a fresh profile for a user, scheduling every
	// given card in box 1 and due immediately.
	InitProfile(userID uuid.UUID, cards []domain.Card, now time.Time) *domain.Profile
}

// defaultScheduler is the standard implementation of the Scheduler
// interface.
type defaultScheduler struct {
	params *Params

	// rng drives the due-list shuffle. rand.Rand is not safe for
	// concurrent use, so the mutex serializes shuffles.
	mu  sync.Mutex
	rng *rand.Rand
}

// NewScheduler creates a Scheduler with the given parameters and random
// source. A nil params uses the default four-box schedule; a nil rng uses
// a time-seeded source. Tests inject a seeded rng for reproducibility.
func NewScheduler(params *Params, rng *rand.Rand) Scheduler {
	if params == nil {
		params = NewDefaultParams()
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &defaultScheduler{
		params: params,
		rng:    rng,
	}
}

// DueCards implements Scheduler.DueCards.
func (s *defaultScheduler) DueCards(
	cards []domain.Card,
	profile *domain.Profile,
	now time.Time,
) ([]CardWithProgress, error) {
	if profile == nil {
		return nil, ErrNilProfile
	}

	due := make([]CardWithProgress, 0, len(cards))
	for _, card := range cards {
		state, ok := profile.Cards[card.Question]
		if !ok {
			// Imported after this profile was created; not scheduled.
			continue
		}
		if now.Before(state.NextReviewAt) {
			continue
		}
		due = append(due, CardWithProgress{
			Card:         card,
			Box:          state.Box,
			NextReviewAt: state.NextReviewAt,
		})
	}

	s.shuffle(due)
	return due, nil
}

// ApplyOutcome implements Scheduler.ApplyOutcome.
func (s *defaultScheduler) ApplyOutcome(
	profile *domain.Profile,
	question string,
	outcome domain.ReviewOutcome,
	now time.Time,
) (*domain.Profile, error) {
	if profile == nil {
		return nil, ErrNilProfile
	}
	if !outcome.IsValid() {
		return nil, ErrInvalidOutcome
	}
	return applyOutcome(profile, question, outcome, now, s.params)
}

// InitProfile implements Scheduler.InitProfile.
func (s *defaultScheduler) InitProfile(
	userID uuid.UUID,
	cards []domain.Card,
	now time.Time,
) *domain.Profile {
	states := make(map[string]domain.ReviewState, len(cards))
	for _, card := range cards {
		states[card.Question] = domain.ReviewState{
			Box:          1,
			NextReviewAt: now,
		}
	}
	return &domain.Profile{
		UserID:    userID,
		Cards:     states,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// shuffle applies a uniform Fisher-Yates permutation so users cannot learn
// the presentation order. Ordering carries no correctness requirement.
func (s *defaultScheduler) shuffle(due []CardWithProgress) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rng.Shuffle(len(due), func(i, j int) {
		due[i], due[j] = due[j], due[i]
	})
}
