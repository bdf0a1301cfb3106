package leitner

import (
	"time"

	"github.com/recallbox/recall-api/internal/domain"
)

// nextBox determines the box a card moves to after a review.
//
// A correct answer promotes the card one box, capped at params.MaxBox; an
// incorrect answer demotes it all the way back to box 1 regardless of how
// far it had climbed. The hard reset is what gives the schedule its
// self-correcting property: a forgotten card re-earns every level.
func nextBox(currentBox int, outcome domain.ReviewOutcome, params *Params) int {
	if outcome == domain.ReviewOutcomeIncorrect {
		return 1
	}
	if currentBox < params.MaxBox {
		return currentBox + 1
	}
	return params.MaxBox
}

// nextReviewState computes a card's new scheduling state after a review.
// The next review instant is always now plus the interval of the box the
// card lands in, for both outcomes.
func nextReviewState(
	state domain.ReviewState,
	outcome domain.ReviewOutcome,
	now time.Time,
	params *Params,
) domain.ReviewState {
	box := nextBox(state.Box, outcome, params)
	return domain.ReviewState{
		Box:          box,
		NextReviewAt: now.Add(params.Interval(box)),
	}
}

// applyOutcome creates a new Profile with the review applied, leaving the
// input untouched.
//
// Counter rules: ReviewedCount increments on every review; Score
// increments only on a correct answer. No other profile fields change.
func applyOutcome(
	profile *domain.Profile,
	question string,
	outcome domain.ReviewOutcome,
	now time.Time,
	params *Params,
) (*domain.Profile, error) {
	state, ok := profile.Cards[question]
	if !ok {
		return nil, ErrUnknownCard
	}

	updated := profile.Clone()
	updated.Cards[question] = nextReviewState(state, outcome, now, params)
	updated.ReviewedCount++
	if outcome == domain.ReviewOutcomeCorrect {
		updated.Score++
	}
	updated.UpdatedAt = now

	return updated, nil
}
