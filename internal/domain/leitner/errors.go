package leitner

import "errors"

// Common scheduler errors
var (
	// ErrNilProfile is returned when a nil profile is passed to an
	// operation that requires one.
	ErrNilProfile = errors.New("profile cannot be nil")

	// ErrInvalidOutcome is returned for an outcome other than correct
	// or incorrect.
	ErrInvalidOutcome = errors.New("invalid review outcome")

	// ErrUnknownCard is returned when an outcome is applied to a
	// question that has no review state in the profile. The profile is
	// left unmodified; the caller decides how to surface this.
	ErrUnknownCard = errors.New("card is not scheduled for this profile")
)
