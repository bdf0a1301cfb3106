// Package service provides application-level services for reviewing
// cards, managing the shared deck, and user accounts.
package service

import (
	"errors"
	"fmt"

	"github.com/recallbox/recall-api/internal/store"
)

// Common sentinel errors used across service implementations. Callers
// check for these with errors.Is; the API layer maps them to HTTP status
// codes.
var (
	// ErrNoCardsDue indicates that the user has no cards due for review.
	ErrNoCardsDue = errors.New("no cards due for review")

	// ErrUnknownCard indicates the submitted question is not scheduled
	// in the user's profile.
	ErrUnknownCard = errors.New("card is not scheduled for this profile")

	// ErrProfileNotFound indicates the user has no review profile.
	ErrProfileNotFound = errors.New("review profile not found")

	// ErrInvalidOutcome indicates a review outcome other than "correct"
	// or "incorrect" was submitted.
	ErrInvalidOutcome = errors.New("invalid review outcome")

	// ErrInvalidCredentials indicates an unknown email or a wrong
	// password. The two cases are deliberately indistinguishable.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrEmailTaken indicates the email address is already registered.
	ErrEmailTaken = errors.New("email address is already registered")
)

// ServiceError wraps unexpected errors from the service layer with
// context, so consumers can differentiate failures with errors.As
// instead of string matching.
type ServiceError struct {
	// Operation is the operation that failed (e.g., "submit_review")
	Operation string
	// Message is a human-readable description of the error
	Message string
	// Err is the underlying error that caused the failure
	Err error
}

// Error implements the error interface for ServiceError.
func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("%s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// NewServiceError wraps err with operation context. Known sentinel
// errors pass through unwrapped so errors.Is keeps working at the call
// site; store-level sentinels are mapped to their service-level
// equivalents.
func NewServiceError(operation, message string, err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, ErrNoCardsDue),
		errors.Is(err, ErrUnknownCard),
		errors.Is(err, ErrProfileNotFound),
		errors.Is(err, ErrInvalidOutcome),
		errors.Is(err, ErrInvalidCredentials),
		errors.Is(err, ErrEmailTaken):
		return err
	case errors.Is(err, store.ErrProfileNotFound):
		return ErrProfileNotFound
	case errors.Is(err, store.ErrEmailExists):
		return ErrEmailTaken
	}

	return &ServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
