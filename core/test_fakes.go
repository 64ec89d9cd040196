package core

import (
	"context"
	"sync"
	"time"
)

// FakeAuthStorage is a test-only fake implementing AuthStorage. It stores
// rows in maps and exposes error fields for behavior injection. Shared by
// the core, oauth, and adapter tests.
type FakeAuthStorage struct {
	mu       sync.RWMutex
	users    map[string]*User    // key: user ID
	sessions map[string]*Session // key: session ID (token hash)

	CreateUserErr    error
	GetUserErr       error
	CreateSessionErr error
	GetSessionErr    error
	UpdateExpiryErr  error
	DeleteSessionErr error
	LinkErr          error
}

var _ AuthStorage = (*FakeAuthStorage)(nil)

func NewFakeAuthStorage() *FakeAuthStorage {
	return &FakeAuthStorage{
		users:    make(map[string]*User),
		sessions: make(map[string]*Session),
	}
}

func (f *FakeAuthStorage) CreateUser(ctx context.Context, u *User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.CreateUserErr != nil {
		return f.CreateUserErr
	}
	for _, existing := range f.users {
		if existing.Username == u.Username {
			return ErrUserExists
		}
	}
	clone := *u
	f.users[u.ID] = &clone
	return nil
}

func (f *FakeAuthStorage) GetUserByID(ctx context.Context, id string) (*User, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if f.GetUserErr != nil {
		return nil, f.GetUserErr
	}
	u, ok := f.users[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (f *FakeAuthStorage) GetUserByUsername(ctx context.Context, username string) (*User, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if f.GetUserErr != nil {
		return nil, f.GetUserErr
	}
	for _, u := range f.users {
		if u.Username == username {
			clone := *u
			return &clone, nil
		}
	}
	return nil, ErrUserNotFound
}

func (f *FakeAuthStorage) GetUserByProviderID(ctx context.Context, provider, providerUserID string) (*User, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if f.GetUserErr != nil {
		return nil, f.GetUserErr
	}
	for _, u := range f.users {
		var linked *string
		switch provider {
		case "google":
			linked = u.GoogleID
		case "microsoft":
			linked = u.MicrosoftID
		}
		if linked != nil && *linked == providerUserID {
			clone := *u
			return &clone, nil
		}
	}
	return nil, ErrUserNotFound
}

func (f *FakeAuthStorage) LinkProviderID(ctx context.Context, userID, provider, providerUserID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.LinkErr != nil {
		return f.LinkErr
	}
	u, ok := f.users[userID]
	if !ok {
		return ErrUserNotFound
	}
	switch provider {
	case "google":
		u.GoogleID = &providerUserID
	case "microsoft":
		u.MicrosoftID = &providerUserID
	}
	return nil
}

func (f *FakeAuthStorage) CreateSession(ctx context.Context, s *Session) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.CreateSessionErr != nil {
		return f.CreateSessionErr
	}
	clone := *s
	f.sessions[s.ID] = &clone
	return nil
}

func (f *FakeAuthStorage) GetSessionByID(ctx context.Context, id string) (*Session, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if f.GetSessionErr != nil {
		return nil, f.GetSessionErr
	}
	s, ok := f.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	clone := *s
	return &clone, nil
}

func (f *FakeAuthStorage) UpdateSessionExpiry(ctx context.Context, id string, expiresAt time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.UpdateExpiryErr != nil {
		return f.UpdateExpiryErr
	}
	s, ok := f.sessions[id]
	if !ok {
		return ErrSessionNotFound
	}
	s.ExpiresAt = expiresAt
	return nil
}

func (f *FakeAuthStorage) DeleteSession(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.DeleteSessionErr != nil {
		return f.DeleteSessionErr
	}
	delete(f.sessions, id)
	return nil
}

func (f *FakeAuthStorage) DeleteUserSessions(ctx context.Context, userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for id, s := range f.sessions {
		if s.UserID == userID {
			delete(f.sessions, id)
		}
	}
	return nil
}

func (f *FakeAuthStorage) DeleteExpiredSessions(ctx context.Context) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	count := 0
	now := time.Now()
	for id, s := range f.sessions {
		if now.After(s.ExpiresAt) {
			delete(f.sessions, id)
			count++
		}
	}
	return count, nil
}

// SessionCount reports how many rows the fake holds, for test assertions.
func (f *FakeAuthStorage) SessionCount() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.sessions)
}

// UserCount reports how many users the fake holds, for test assertions.
func (f *FakeAuthStorage) UserCount() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.users)
}
