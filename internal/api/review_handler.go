package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/recallbox/recall-api/internal/api/shared"
	"github.com/recallbox/recall-api/internal/domain"
	"github.com/recallbox/recall-api/internal/domain/leitner"
	"github.com/recallbox/recall-api/internal/platform/logger"
	"github.com/recallbox/recall-api/internal/service"
)

// ReviewHandler handles review-related HTTP requests.
type ReviewHandler struct {
	reviewService service.ReviewService
	validator     *validator.Validate
	logger        *slog.Logger
}

// NewReviewHandler creates a new ReviewHandler.
func NewReviewHandler(reviewService service.ReviewService, logger *slog.Logger) *ReviewHandler {
	if reviewService == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("reviewService cannot be nil for ReviewHandler")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &ReviewHandler{
		reviewService: reviewService,
		validator:     validator.New(),
		logger:        logger.With(slog.String("component", "review_handler")),
	}
}

// GetNextCard handles GET /cards/next requests. It returns one due card
// for the authenticated user, or 204 when nothing is due.
func (h *ReviewHandler) GetNextCard(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := authenticatedUserID(r)
	if !ok {
		log.Warn("user ID not found or invalid in request context")
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	card, err := h.reviewService.NextCard(r.Context(), userID)
	if errors.Is(err, service.ErrNoCardsDue) {
		log.Debug("no cards due for review", slog.String("user_id", userID.String()))
		w.WriteHeader(http.StatusNoContent)
		return
	}
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, cardToResponse(*card))
}

// GetDueCards handles GET /cards/due requests, returning every card
// currently due for the authenticated user in shuffled order.
func (h *ReviewHandler) GetDueCards(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := authenticatedUserID(r)
	if !ok {
		log.Warn("user ID not found or invalid in request context")
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	due, err := h.reviewService.DueCards(r.Context(), userID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	responses := make([]CardResponse, 0, len(due))
	for _, card := range due {
		responses = append(responses, cardToResponse(card))
	}
	shared.RespondWithJSON(w, r, http.StatusOK, responses)
}

// SubmitReview handles POST /reviews requests, recording an outcome for
// one card and returning the updated scheduling state.
func (h *ReviewHandler) SubmitReview(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := authenticatedUserID(r)
	if !ok {
		log.Warn("user ID not found or invalid in request context")
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	var req ReviewRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	profile, err := h.reviewService.SubmitReview(
		r.Context(), userID, req.Question, domain.ReviewOutcome(req.Outcome))
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	state := profile.Cards[req.Question]
	log.Debug("review submitted",
		slog.String("user_id", userID.String()),
		slog.String("outcome", req.Outcome),
		slog.Int("box", state.Box))
	shared.RespondWithJSON(w, r, http.StatusOK, ReviewResponse{
		Question:      req.Question,
		Box:           state.Box,
		NextReviewAt:  state.NextReviewAt,
		Score:         profile.Score,
		ReviewedCount: profile.ReviewedCount,
	})
}

// GetStats handles GET /stats requests.
func (h *ReviewHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := authenticatedUserID(r)
	if !ok {
		log.Warn("user ID not found or invalid in request context")
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	stats, err := h.reviewService.Stats(r.Context(), userID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, stats)
}

// authenticatedUserID extracts the user ID set by the auth middleware.
func authenticatedUserID(r *http.Request) (uuid.UUID, bool) {
	userID, ok := r.Context().Value(shared.UserIDContextKey).(uuid.UUID)
	if !ok || userID == uuid.Nil {
		return uuid.Nil, false
	}
	return userID, true
}

// cardToResponse flattens a card and its scheduling state for the wire.
func cardToResponse(card leitner.CardWithProgress) CardResponse {
	return CardResponse{
		Question:     card.Card.Question,
		Answer:       card.Card.Answer,
		Hint:         card.Card.Hint,
		Explanation:  card.Card.Explanation,
		ImageRef:     card.Card.ImageRef,
		AudioRef:     card.Card.AudioRef,
		Box:          card.Box,
		NextReviewAt: card.NextReviewAt,
	}
}
