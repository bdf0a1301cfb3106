package api

import (
	"context"

	"github.com/google/uuid"

	"github.com/recallbox/recall-api/internal/domain"
	"github.com/recallbox/recall-api/internal/domain/leitner"
	"github.com/recallbox/recall-api/internal/service"
)

// Function-field stubs for the service interfaces, configured per test.

type stubUserService struct {
	registerFn func(ctx context.Context, email, password string) (*service.AuthResult, error)
	loginFn    func(ctx context.Context, email, password string) (*service.AuthResult, error)
	refreshFn  func(ctx context.Context, refreshToken string) (*service.AuthResult, error)
}

func (s *stubUserService) Register(ctx context.Context, email, password string) (*service.AuthResult, error) {
	return s.registerFn(ctx, email, password)
}

func (s *stubUserService) Login(ctx context.Context, email, password string) (*service.AuthResult, error) {
	return s.loginFn(ctx, email, password)
}

func (s *stubUserService) Refresh(ctx context.Context, refreshToken string) (*service.AuthResult, error) {
	return s.refreshFn(ctx, refreshToken)
}

type stubReviewService struct {
	dueCardsFn     func(ctx context.Context, userID uuid.UUID) ([]leitner.CardWithProgress, error)
	nextCardFn     func(ctx context.Context, userID uuid.UUID) (*leitner.CardWithProgress, error)
	submitReviewFn func(ctx context.Context, userID uuid.UUID, question string, outcome domain.ReviewOutcome) (*domain.Profile, error)
	statsFn        func(ctx context.Context, userID uuid.UUID) (*service.ReviewStats, error)
}

func (s *stubReviewService) DueCards(ctx context.Context, userID uuid.UUID) ([]leitner.CardWithProgress, error) {
	return s.dueCardsFn(ctx, userID)
}

func (s *stubReviewService) NextCard(ctx context.Context, userID uuid.UUID) (*leitner.CardWithProgress, error) {
	return s.nextCardFn(ctx, userID)
}

func (s *stubReviewService) SubmitReview(
	ctx context.Context,
	userID uuid.UUID,
	question string,
	outcome domain.ReviewOutcome,
) (*domain.Profile, error) {
	return s.submitReviewFn(ctx, userID, question, outcome)
}

func (s *stubReviewService) Stats(ctx context.Context, userID uuid.UUID) (*service.ReviewStats, error) {
	return s.statsFn(ctx, userID)
}

type stubDeckService struct {
	importFn func(ctx context.Context, cards []domain.Card) (*service.ImportResult, error)
	exportFn func(ctx context.Context) ([]domain.Card, error)
}

func (s *stubDeckService) Import(ctx context.Context, cards []domain.Card) (*service.ImportResult, error) {
	return s.importFn(ctx, cards)
}

func (s *stubDeckService) Export(ctx context.Context) ([]domain.Card, error) {
	return s.exportFn(ctx)
}
