package service

import (
	"context"
	"database/sql"
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/recallbox/recall-api/internal/domain"
	"github.com/recallbox/recall-api/internal/store"
)

// passthroughTxRunner replaces store.RunInTransaction in unit tests. The
// fakes ignore the nil transaction handle.
func passthroughTxRunner(ctx context.Context, _ *sql.DB, fn store.TxFn) error {
	return fn(ctx, nil)
}

// fakeProfileStore is an in-memory store.ProfileStore for unit tests.
type fakeProfileStore struct {
	mu       sync.Mutex
	profiles map[uuid.UUID]*domain.Profile

	getErr    error
	updateErr error
}

func newFakeProfileStore() *fakeProfileStore {
	return &fakeProfileStore{profiles: make(map[uuid.UUID]*domain.Profile)}
}

func (f *fakeProfileStore) Create(_ context.Context, profile *domain.Profile) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, exists := f.profiles[profile.UserID]; exists {
		return store.ErrProfileExists
	}
	f.profiles[profile.UserID] = profile.Clone()
	return nil
}

func (f *fakeProfileStore) Get(_ context.Context, userID uuid.UUID) (*domain.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	profile, ok := f.profiles[userID]
	if !ok {
		return nil, store.ErrProfileNotFound
	}
	return profile.Clone(), nil
}

func (f *fakeProfileStore) GetForUpdate(ctx context.Context, userID uuid.UUID) (*domain.Profile, error) {
	return f.Get(ctx, userID)
}

func (f *fakeProfileStore) Update(_ context.Context, profile *domain.Profile) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.updateErr != nil {
		return f.updateErr
	}
	if _, ok := f.profiles[profile.UserID]; !ok {
		return store.ErrProfileNotFound
	}
	f.profiles[profile.UserID] = profile.Clone()
	return nil
}

func (f *fakeProfileStore) WithTx(_ *sql.Tx) store.ProfileStore {
	return f
}

// fakeUserStore is an in-memory store.UserStore for unit tests. It fakes
// password hashing with a reversible prefix; pair it with fakeVerifier.
type fakeUserStore struct {
	mu      sync.Mutex
	byEmail map[string]*domain.User
	byID    map[uuid.UUID]*domain.User

	createErr error
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{
		byEmail: make(map[string]*domain.User),
		byID:    make(map[uuid.UUID]*domain.User),
	}
}

func (f *fakeUserStore) Create(_ context.Context, user *domain.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	if _, exists := f.byEmail[user.Email]; exists {
		return store.ErrEmailExists
	}
	user.HashedPassword = "hashed:" + user.Password
	user.Password = ""
	stored := *user
	f.byEmail[user.Email] = &stored
	f.byID[user.ID] = &stored
	return nil
}

func (f *fakeUserStore) GetByID(_ context.Context, id uuid.UUID) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.byID[id]
	if !ok {
		return nil, store.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

func (f *fakeUserStore) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.byEmail[email]
	if !ok {
		return nil, store.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

func (f *fakeUserStore) WithTx(_ *sql.Tx) store.UserStore {
	return f
}

// fakeVerifier matches the fakeUserStore hashing scheme.
type fakeVerifier struct{}

func (fakeVerifier) Compare(hashedPassword, password string) error {
	if hashedPassword == "hashed:"+password {
		return nil
	}
	return errInvalidFakeHash
}

var errInvalidFakeHash = errors.New("fake hash mismatch")

// fakeCardStore records persisted cards for assertions.
type fakeCardStore struct {
	mu        sync.Mutex
	persisted []domain.Card

	createErr error
}

func (f *fakeCardStore) GetAll(_ context.Context) ([]domain.Card, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]domain.Card, len(f.persisted))
	copy(out, f.persisted)
	return out, nil
}

func (f *fakeCardStore) CreateMultiple(_ context.Context, cards []domain.Card) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	f.persisted = append(f.persisted, cards...)
	return nil
}

func (f *fakeCardStore) WithTx(_ *sql.Tx) store.CardStore {
	return f
}
