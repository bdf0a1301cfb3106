package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestReviewOutcomeIsValid(t *testing.T) {
	if !ReviewOutcomeCorrect.IsValid() {
		t.Error("Expected 'correct' to be valid")
	}
	if !ReviewOutcomeIncorrect.IsValid() {
		t.Error("Expected 'incorrect' to be valid")
	}
	if ReviewOutcome("maybe").IsValid() {
		t.Error("Expected 'maybe' to be invalid")
	}
	if ReviewOutcome("").IsValid() {
		t.Error("Expected empty outcome to be invalid")
	}
}

func TestProfileValidate(t *testing.T) {
	now := time.Now().UTC()
	valid := Profile{
		UserID: uuid.New(),
		Cards: map[string]ReviewState{
			"What is 2 + 2?": {Box: 1, NextReviewAt: now},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	noUser := valid
	noUser.UserID = uuid.Nil
	if err := noUser.Validate(); !errors.Is(err, ErrEmptyProfileUserID) {
		t.Errorf("Expected ErrEmptyProfileUserID, got %v", err)
	}

	negativeScore := valid
	negativeScore.Score = -1
	if err := negativeScore.Validate(); !errors.Is(err, ErrNegativeScore) {
		t.Errorf("Expected ErrNegativeScore, got %v", err)
	}

	negativeReviewed := valid
	negativeReviewed.ReviewedCount = -1
	if err := negativeReviewed.Validate(); !errors.Is(err, ErrNegativeReviewed) {
		t.Errorf("Expected ErrNegativeReviewed, got %v", err)
	}

	badBox := valid
	badBox.Cards = map[string]ReviewState{
		"What is 2 + 2?": {Box: 0, NextReviewAt: now},
	}
	if err := badBox.Validate(); !errors.Is(err, ErrInvalidBox) {
		t.Errorf("Expected ErrInvalidBox, got %v", err)
	}
}

func TestProfileClone(t *testing.T) {
	now := time.Now().UTC()
	original := &Profile{
		UserID:        uuid.New(),
		Score:         3,
		ReviewedCount: 5,
		Cards: map[string]ReviewState{
			"What is 2 + 2?": {Box: 2, NextReviewAt: now},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}

	clone := original.Clone()
	clone.Score = 99
	clone.Cards["What is 2 + 2?"] = ReviewState{Box: 4, NextReviewAt: now.Add(time.Hour)}
	clone.Cards["new question"] = ReviewState{Box: 1, NextReviewAt: now}

	if original.Score != 3 {
		t.Errorf("Expected original score unchanged, got %d", original.Score)
	}
	if original.Cards["What is 2 + 2?"].Box != 2 {
		t.Errorf("Expected original card state unchanged, got box %d",
			original.Cards["What is 2 + 2?"].Box)
	}
	if len(original.Cards) != 1 {
		t.Errorf("Expected original card map unchanged, got %d entries", len(original.Cards))
	}
}
