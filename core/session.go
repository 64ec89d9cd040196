package core

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/fennig/latch/pkg/crypto"
)

type SessionConfig struct {
	// MaxAge is the lifetime of a newly created or renewed session.
	MaxAge time.Duration

	// RenewWithin is the sliding-renewal window: a validated session with
	// less than this much lifetime remaining is extended to MaxAge again.
	RenewWithin time.Duration
}

func DefaultSessionConfig() SessionConfig {
	return SessionConfig{
		MaxAge:      30 * 24 * time.Hour,
		RenewWithin: 15 * 24 * time.Hour,
	}
}

type SessionManager struct {
	config  SessionConfig
	storage SessionStorage
	logger  *slog.Logger
}

func NewSessionManager(config SessionConfig, storage SessionStorage, logger *slog.Logger) *SessionManager {
	if config.MaxAge == 0 {
		config = DefaultSessionConfig()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &SessionManager{config: config, storage: storage, logger: logger}
}

// GenerateToken produces the opaque value placed in the client cookie:
// 32 bytes of cryptographic randomness, URL-safe base64.
func (sm *SessionManager) GenerateToken() (string, error) {
	return crypto.GenerateToken()
}

// Create inserts a session row for the given raw token. The row is keyed by
// the token hash; the raw token itself never reaches storage.
func (sm *SessionManager) Create(ctx context.Context, token, userID string) (*Session, error) {
	session := &Session{
		ID:        crypto.HashToken(token),
		UserID:    userID,
		ExpiresAt: time.Now().Add(sm.config.MaxAge),
	}

	if err := sm.storage.CreateSession(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	return session, nil
}

// Validate resolves a raw token to its session and owning user.
//
// Absent, expired, or tampered tokens all collapse to (nil, nil); an expired
// row is deleted as a side effect. A session inside the renewal window has
// its expiry extended; if that write fails the extension is logged and
// validation proceeds with the original expiry. Only storage failures return
// a non-nil error.
func (sm *SessionManager) Validate(ctx context.Context, token string) (*Session, error) {
	if token == "" {
		return nil, nil
	}

	session, err := sm.storage.GetSessionByID(ctx, crypto.HashToken(token))
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	now := time.Now()
	if !now.Before(session.ExpiresAt) {
		if err := sm.storage.DeleteSession(ctx, session.ID); err != nil {
			sm.logger.Warn("failed to delete expired session", "sessionId", session.ID, "error", err)
		}
		return nil, nil
	}

	if session.ExpiresAt.Sub(now) < sm.config.RenewWithin {
		renewed := now.Add(sm.config.MaxAge)
		if err := sm.storage.UpdateSessionExpiry(ctx, session.ID, renewed); err != nil {
			// Renewal is best effort; the session stays valid either way.
			sm.logger.Warn("failed to extend session expiry", "sessionId", session.ID, "error", err)
		} else {
			session.ExpiresAt = renewed
		}
	}

	return session, nil
}

// Invalidate deletes a session row by ID. Idempotent.
func (sm *SessionManager) Invalidate(ctx context.Context, sessionID string) error {
	return sm.storage.DeleteSession(ctx, sessionID)
}

// InvalidateUserSessions deletes every session owned by a user.
func (sm *SessionManager) InvalidateUserSessions(ctx context.Context, userID string) error {
	return sm.storage.DeleteUserSessions(ctx, userID)
}

// DeleteExpired sweeps expired rows, returning how many were removed.
// Intended for a periodic cleanup job.
func (sm *SessionManager) DeleteExpired(ctx context.Context) (int, error) {
	return sm.storage.DeleteExpiredSessions(ctx)
}
