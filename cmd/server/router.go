package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/recallbox/recall-api/internal/api"
	apiMiddleware "github.com/recallbox/recall-api/internal/api/middleware"
)

// setupRouter creates and configures the application router with all
// routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware)

	authHandler := api.NewAuthHandler(app.userService, app.logger)
	reviewHandler := api.NewReviewHandler(app.reviewService, app.logger)
	deckHandler := api.NewDeckHandler(app.deckService, app.logger)
	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService)

	r.Route("/api", func(r chi.Router) {
		// Authentication endpoints (public)
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)
		r.Post("/auth/refresh", authHandler.RefreshToken)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			// Review endpoints
			r.Get("/cards/next", reviewHandler.GetNextCard)
			r.Get("/cards/due", reviewHandler.GetDueCards)
			r.Post("/reviews", reviewHandler.SubmitReview)
			r.Get("/stats", reviewHandler.GetStats)

			// Deck endpoints
			r.Post("/cards/import", deckHandler.ImportCards)
			r.Get("/cards/export", deckHandler.ExportCards)
		})
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("failed to write health check response", "error", err)
		}
	})

	return r
}
