package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Common validation errors
var (
	ErrEmptyUserID      = errors.New("user ID cannot be empty")
	ErrEmptyEmail       = errors.New("email cannot be empty")
	ErrInvalidEmail     = errors.New("invalid email format")
	ErrEmptyPassword    = errors.New("password cannot be empty")
	ErrPasswordTooShort = errors.New("password must be at least 12 characters long")
	ErrPasswordTooLong  = errors.New("password must be at most 72 characters long")
)

// User represents a registered account. The plaintext Password field is
// only populated transiently during registration; the store hashes it and
// persists HashedPassword.
type User struct {
	ID             uuid.UUID `json:"id"`
	Email          string    `json:"email"`
	Password       string    `json:"-"`
	HashedPassword string    `json:"-"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// NewUser creates a new User with the given email and password.
// The caller is responsible for hashing the password before storage.
func NewUser(email, password string) (*User, error) {
	user := &User{
		ID:        uuid.New(),
		Email:     email,
		Password:  password,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}
	if err := user.Validate(); err != nil {
		return nil, err
	}
	return user, nil
}

// Validate checks if the User has valid data.
func (u *User) Validate() error {
	if u.ID == uuid.Nil {
		return ErrEmptyUserID
	}
	if u.Email == "" {
		return ErrEmptyEmail
	}
	at := strings.Index(u.Email, "@")
	if at <= 0 || at == len(u.Email)-1 || !strings.Contains(u.Email[at+1:], ".") {
		return ErrInvalidEmail
	}

	if u.Password == "" {
		// Existing users loaded from storage carry only the hash.
		if u.HashedPassword == "" {
			return ErrEmptyPassword
		}
		return nil
	}
	// 72 bytes is bcrypt's practical input limit.
	if len(u.Password) < 12 {
		return ErrPasswordTooShort
	}
	if len(u.Password) > 72 {
		return ErrPasswordTooLong
	}
	return nil
}
