package leitner

import (
	"math/rand"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/recallbox/recall-api/internal/domain"
)

func testCards(questions ...string) []domain.Card {
	cards := make([]domain.Card, 0, len(questions))
	for _, q := range questions {
		cards = append(cards, domain.Card{Question: q, Answer: "a"})
	}
	return cards
}

func questionSet(due []CardWithProgress) map[string]bool {
	set := make(map[string]bool, len(due))
	for _, c := range due {
		set[c.Card.Question] = true
	}
	return set
}

func TestDueCardsBoundary(t *testing.T) {
	t.Parallel()
	s := NewScheduler(nil, rand.New(rand.NewSource(1)))
	t0 := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	profile := &domain.Profile{
		UserID: uuid.New(),
		Cards: map[string]domain.ReviewState{
			"q1": {Box: 1, NextReviewAt: t0},
		},
	}
	cards := testCards("q1")

	// One second early: not due.
	due, err := s.DueCards(cards, profile, t0.Add(-time.Second))
	require.NoError(t, err)
	assert.Empty(t, due)

	// Exactly at the review instant: due.
	due, err = s.DueCards(cards, profile, t0)
	require.NoError(t, err)
	require.Len(t, due, 1)
	assert.Equal(t, "q1", due[0].Card.Question)
	assert.Equal(t, 1, due[0].Box)
	assert.Equal(t, t0, due[0].NextReviewAt)
}

func TestDueCardsSkipsUnscheduled(t *testing.T) {
	t.Parallel()
	s := NewScheduler(nil, rand.New(rand.NewSource(1)))
	now := time.Now().UTC()

	profile := &domain.Profile{
		UserID: uuid.New(),
		Cards: map[string]domain.ReviewState{
			"known": {Box: 2, NextReviewAt: now.Add(-time.Minute)},
		},
	}

	// "imported-later" has no review state: silently skipped.
	due, err := s.DueCards(testCards("known", "imported-later"), profile, now)
	require.NoError(t, err)
	require.Len(t, due, 1)
	assert.Equal(t, "known", due[0].Card.Question)
}

func TestDueCardsIdempotentRead(t *testing.T) {
	t.Parallel()
	s := NewScheduler(nil, rand.New(rand.NewSource(7)))
	now := time.Now().UTC()

	cards := testCards("a", "b", "c", "d", "e")
	profile := &domain.Profile{UserID: uuid.New(), Cards: map[string]domain.ReviewState{}}
	for _, c := range cards {
		profile.Cards[c.Question] = domain.ReviewState{Box: 1, NextReviewAt: now.Add(-time.Second)}
	}

	first, err := s.DueCards(cards, profile, now)
	require.NoError(t, err)
	second, err := s.DueCards(cards, profile, now)
	require.NoError(t, err)

	// Same set on every call; order may differ, state never changes.
	assert.Equal(t, questionSet(first), questionSet(second))
	for _, c := range cards {
		assert.Equal(t, 1, profile.Cards[c.Question].Box)
	}
	assert.Equal(t, 0, profile.Score)
}

func TestDueCardsShuffles(t *testing.T) {
	t.Parallel()
	s := NewScheduler(nil, rand.New(rand.NewSource(42)))
	now := time.Now().UTC()

	questions := []string{"a", "b", "c", "d", "e", "f", "g", "h"}
	cards := testCards(questions...)
	profile := &domain.Profile{UserID: uuid.New(), Cards: map[string]domain.ReviewState{}}
	for _, q := range questions {
		profile.Cards[q] = domain.ReviewState{Box: 1, NextReviewAt: now}
	}

	// With 8 cards the odds of 20 consecutive identity permutations are
	// negligible for any seed.
	varied := false
	for i := 0; i < 20 && !varied; i++ {
		due, err := s.DueCards(cards, profile, now)
		require.NoError(t, err)
		require.Len(t, due, len(questions))
		for j, q := range questions {
			if due[j].Card.Question != q {
				varied = true
				break
			}
		}
	}
	assert.True(t, varied, "expected at least one non-identity permutation")
}

func TestDueCardsNilProfile(t *testing.T) {
	t.Parallel()
	s := NewScheduler(nil, nil)
	_, err := s.DueCards(testCards("q"), nil, time.Now())
	assert.ErrorIs(t, err, ErrNilProfile)
}

func TestApplyOutcomeInvalidOutcome(t *testing.T) {
	t.Parallel()
	s := NewScheduler(nil, nil)
	now := time.Now().UTC()
	profile := testProfile(now, map[string]int{"q1": 1})

	_, err := s.ApplyOutcome(profile, "q1", domain.ReviewOutcome("maybe"), now)
	assert.ErrorIs(t, err, ErrInvalidOutcome)
}

func TestInitProfile(t *testing.T) {
	t.Parallel()
	s := NewScheduler(nil, nil)
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	userID := uuid.New()
	cards := testCards("q1", "q2", "q3")

	profile := s.InitProfile(userID, cards, now)

	assert.Equal(t, userID, profile.UserID)
	assert.Equal(t, 0, profile.Score)
	assert.Equal(t, 0, profile.ReviewedCount)
	require.Len(t, profile.Cards, 3)
	for _, c := range cards {
		state := profile.Cards[c.Question]
		assert.Equal(t, 1, state.Box)
		assert.Equal(t, now, state.NextReviewAt)
	}
	require.NoError(t, profile.Validate())
}
