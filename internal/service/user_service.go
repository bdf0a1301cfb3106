package service

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/recallbox/recall-api/internal/catalog"
	"github.com/recallbox/recall-api/internal/domain"
	"github.com/recallbox/recall-api/internal/domain/leitner"
	"github.com/recallbox/recall-api/internal/service/auth"
	"github.com/recallbox/recall-api/internal/store"
)

// AuthResult carries the outcome of a successful registration, login or
// token refresh.
type AuthResult struct {
	UserID       uuid.UUID `json:"user_id"`
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
}

// UserService provides account registration, login and token refresh.
type UserService interface {
	// Register creates a user account and its review profile in one
	// transaction. The profile schedules every card currently in the
	// deck, box 1, due immediately. Returns ErrEmailTaken if the email
	// is already registered.
	Register(ctx context.Context, email, password string) (*AuthResult, error)

	// Login verifies credentials and issues a fresh token pair.
	// Returns ErrInvalidCredentials on unknown email or wrong password.
	Login(ctx context.Context, email, password string) (*AuthResult, error)

	// Refresh validates a refresh token and issues a new token pair.
	Refresh(ctx context.Context, refreshToken string) (*AuthResult, error)
}

// userServiceImpl implements the UserService interface.
type userServiceImpl struct {
	db        *sql.DB
	users     store.UserStore
	profiles  store.ProfileStore
	catalog   *catalog.Catalog
	scheduler leitner.Scheduler
	jwt       auth.JWTService
	verifier  auth.PasswordVerifier
	timeFunc  func() time.Time
	txRunner  func(ctx context.Context, db *sql.DB, fn store.TxFn) error
	logger    *slog.Logger
}

// NewUserService creates a new UserService.
// It returns an error if any of the required dependencies are nil.
func NewUserService(
	db *sql.DB,
	users store.UserStore,
	profiles store.ProfileStore,
	cat *catalog.Catalog,
	scheduler leitner.Scheduler,
	jwtService auth.JWTService,
	verifier auth.PasswordVerifier,
	logger *slog.Logger,
) (UserService, error) {
	if db == nil {
		return nil, &ServiceError{Operation: "create_service", Message: "db cannot be nil"}
	}
	if users == nil {
		return nil, &ServiceError{Operation: "create_service", Message: "users cannot be nil"}
	}
	if profiles == nil {
		return nil, &ServiceError{Operation: "create_service", Message: "profiles cannot be nil"}
	}
	if cat == nil {
		return nil, &ServiceError{Operation: "create_service", Message: "catalog cannot be nil"}
	}
	if scheduler == nil {
		return nil, &ServiceError{Operation: "create_service", Message: "scheduler cannot be nil"}
	}
	if jwtService == nil {
		return nil, &ServiceError{Operation: "create_service", Message: "jwtService cannot be nil"}
	}
	if verifier == nil {
		return nil, &ServiceError{Operation: "create_service", Message: "verifier cannot be nil"}
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &userServiceImpl{
		db:        db,
		users:     users,
		profiles:  profiles,
		catalog:   cat,
		scheduler: scheduler,
		jwt:       jwtService,
		verifier:  verifier,
		timeFunc:  time.Now,
		txRunner:  store.RunInTransaction,
		logger:    logger.With(slog.String("component", "user_service")),
	}, nil
}

// Register implements UserService.Register.
func (s *userServiceImpl) Register(ctx context.Context, email, password string) (*AuthResult, error) {
	user, err := domain.NewUser(email, password)
	if err != nil {
		return nil, NewServiceError("register", "invalid user data", err)
	}

	err = s.txRunner(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		if err := s.users.WithTx(tx).Create(ctx, user); err != nil {
			if errors.Is(err, store.ErrEmailExists) {
				return ErrEmailTaken
			}
			return NewServiceError("register", "failed to create user", err)
		}

		// Schedule the full deck as it exists right now. Cards imported
		// later will not appear in this profile.
		profile := s.scheduler.InitProfile(user.ID, s.catalog.Snapshot(), s.timeFunc())
		if err := s.profiles.WithTx(tx).Create(ctx, profile); err != nil {
			return NewServiceError("register", "failed to create profile", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("user registered",
		slog.String("user_id", user.ID.String()),
		slog.Int("scheduled_cards", s.catalog.Len()))
	return s.issueTokens(ctx, user.ID)
}

// Login implements UserService.Login.
func (s *userServiceImpl) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, NewServiceError("login", "failed to load user", err)
	}

	if err := s.verifier.Compare(user.HashedPassword, password); err != nil {
		s.logger.Debug("password mismatch", slog.String("user_id", user.ID.String()))
		return nil, ErrInvalidCredentials
	}

	return s.issueTokens(ctx, user.ID)
}

// Refresh implements UserService.Refresh.
func (s *userServiceImpl) Refresh(ctx context.Context, refreshToken string) (*AuthResult, error) {
	claims, err := s.jwt.ValidateRefreshToken(ctx, refreshToken)
	if err != nil {
		return nil, err
	}

	// The user may have been deleted since the token was issued.
	if _, err := s.users.GetByID(ctx, claims.UserID); err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return nil, auth.ErrInvalidRefreshToken
		}
		return nil, NewServiceError("refresh", "failed to load user", err)
	}

	return s.issueTokens(ctx, claims.UserID)
}

func (s *userServiceImpl) issueTokens(ctx context.Context, userID uuid.UUID) (*AuthResult, error) {
	accessToken, err := s.jwt.GenerateToken(ctx, userID)
	if err != nil {
		return nil, NewServiceError("issue_tokens", "failed to generate access token", err)
	}
	refreshToken, err := s.jwt.GenerateRefreshToken(ctx, userID)
	if err != nil {
		return nil, NewServiceError("issue_tokens", "failed to generate refresh token", err)
	}
	return &AuthResult{
		UserID:       userID,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}
