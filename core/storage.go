package core

import (
	"context"
	"time"
)

// Ports define interfaces for external dependencies

// UserStorage defines user-related database operations.
//
// Not-found is reported as ErrUserNotFound, never as a nil user with a nil
// error. Anything else is a storage failure and propagates to the caller.
type UserStorage interface {
	CreateUser(ctx context.Context, u *User) error
	GetUserByID(ctx context.Context, id string) (*User, error)
	GetUserByUsername(ctx context.Context, username string) (*User, error)

	// GetUserByProviderID looks up a user by an OAuth provider identity.
	// provider is a provider name such as "google" or "microsoft".
	GetUserByProviderID(ctx context.Context, provider, providerUserID string) (*User, error)

	// LinkProviderID sets the provider identity column on an existing user.
	// Whether an existing link may be replaced is the caller's policy.
	LinkProviderID(ctx context.Context, userID, provider, providerUserID string) error
}

// SessionStorage defines session-related database operations.
// Session rows are keyed by the token hash (Session.ID).
type SessionStorage interface {
	CreateSession(ctx context.Context, session *Session) error
	GetSessionByID(ctx context.Context, id string) (*Session, error)
	UpdateSessionExpiry(ctx context.Context, id string, expiresAt time.Time) error

	// DeleteSession is idempotent: deleting an absent row is not an error.
	DeleteSession(ctx context.Context, id string) error
	DeleteUserSessions(ctx context.Context, userID string) error
	DeleteExpiredSessions(ctx context.Context) (int, error)
}

// AuthStorage is the full storage surface consumed by the core.
type AuthStorage interface {
	UserStorage
	SessionStorage
}
