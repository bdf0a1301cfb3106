package api

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/recallbox/recall-api/internal/api/shared"
	"github.com/recallbox/recall-api/internal/platform/logger"
	"github.com/recallbox/recall-api/internal/service"
)

// DeckHandler handles deck import and export HTTP requests.
type DeckHandler struct {
	deckService service.DeckService
	validator   *validator.Validate
	logger      *slog.Logger
}

// NewDeckHandler creates a new DeckHandler.
func NewDeckHandler(deckService service.DeckService, logger *slog.Logger) *DeckHandler {
	if deckService == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("deckService cannot be nil for DeckHandler")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &DeckHandler{
		deckService: deckService,
		validator:   validator.New(),
		logger:      logger.With(slog.String("component", "deck_handler")),
	}
}

// ImportCards handles POST /cards/import requests. Well-formed new cards
// are appended to the shared deck; malformed entries and duplicates are
// skipped and counted rather than failing the batch.
func (h *DeckHandler) ImportCards(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req ImportRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	result, err := h.deckService.Import(r.Context(), req.Cards)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), "Failed to import cards", err)
		return
	}

	log.Info("cards imported",
		slog.Int("added", result.Added),
		slog.Int("skipped", result.Skipped))
	shared.RespondWithJSON(w, r, http.StatusOK, result)
}

// ExportCards handles GET /cards/export requests, returning the full
// deck as a JSON attachment.
func (h *DeckHandler) ExportCards(w http.ResponseWriter, r *http.Request) {
	deck, err := h.deckService.Export(r.Context())
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), "Failed to export cards", err)
		return
	}

	w.Header().Set("Content-Disposition", `attachment; filename="flashcards_export.json"`)
	shared.RespondWithJSON(w, r, http.StatusOK, deck)
}
