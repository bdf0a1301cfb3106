package api

import (
	"time"

	"github.com/google/uuid"

	"github.com/recallbox/recall-api/internal/domain"
)

// Common request/response structures

// RegisterRequest defines the payload for the user registration endpoint.
type RegisterRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=12,max=72"`
}

// LoginRequest defines the payload for the user login endpoint.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=1"`
}

// RefreshTokenRequest defines the payload for the token refresh endpoint.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// AuthResponse defines the successful response for authentication endpoints.
type AuthResponse struct {
	UserID       uuid.UUID `json:"user_id"`
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
}

// CardResponse is one card together with the requesting user's
// scheduling state for it.
type CardResponse struct {
	Question     string    `json:"question"`
	Answer       string    `json:"answer"`
	Hint         string    `json:"hint,omitempty"`
	Explanation  string    `json:"explanation,omitempty"`
	ImageRef     string    `json:"image,omitempty"`
	AudioRef     string    `json:"audio,omitempty"`
	Box          int       `json:"box"`
	NextReviewAt time.Time `json:"next_review"`
}

// ReviewRequest defines the payload for submitting a review outcome.
type ReviewRequest struct {
	Question string `json:"question" validate:"required"`
	Outcome  string `json:"outcome"  validate:"required,oneof=correct incorrect"`
}

// ReviewResponse reports the card's state after a review was recorded.
type ReviewResponse struct {
	Question      string    `json:"question"`
	Box           int       `json:"box"`
	NextReviewAt  time.Time `json:"next_review"`
	Score         int       `json:"score"`
	ReviewedCount int       `json:"reviewed_count"`
}

// ImportRequest defines the payload for the card import endpoint.
type ImportRequest struct {
	Cards []domain.Card `json:"cards" validate:"required"`
}
