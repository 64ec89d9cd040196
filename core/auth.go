package core

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"

	"github.com/fennig/latch/pkg/crypto"
)

var usernamePattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// AuthService implements password registration and login, logout, and the
// collaborator contract every protected route authorizes through.
type AuthService struct {
	storage   AuthStorage
	passwords PasswordHandler
	sessions  *SessionManager
	ids       *crypto.IDGenerator
	logger    *slog.Logger
}

func NewAuthService(storage AuthStorage, passwords PasswordHandler, sessions *SessionManager, logger *slog.Logger) *AuthService {
	ids, _ := crypto.NewIDGenerator("")
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthService{
		storage:   storage,
		passwords: passwords,
		sessions:  sessions,
		ids:       ids,
		logger:    logger,
	}
}

// Sessions exposes the session manager for collaborators that need direct
// access, such as an expiry sweep job.
func (s *AuthService) Sessions() *SessionManager {
	return s.sessions
}

// Register creates a password account and issues its first session.
func (s *AuthService) Register(ctx context.Context, username, password string) (*AuthResult, error) {
	if err := validateUsername(username); err != nil {
		return nil, err
	}
	if err := validatePassword(password); err != nil {
		return nil, err
	}

	existing, err := s.storage.GetUserByUsername(ctx, username)
	if err != nil && !errors.Is(err, ErrUserNotFound) {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if existing != nil {
		return nil, ErrUserExists
	}

	hashed, err := s.passwords.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	id, err := s.ids.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate user id: %w", err)
	}

	user := &User{
		ID:           id,
		Username:     username,
		PasswordHash: &hashed,
	}

	if err := s.storage.CreateUser(ctx, user); err != nil {
		// A concurrent registration can still trip the unique constraint.
		if errors.Is(err, ErrUserExists) {
			return nil, ErrUserExists
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return s.IssueSession(ctx, user)
}

// Login authenticates a user with username and password and issues a fresh
// session. Unknown username and wrong password collapse to the same error;
// an OAuth-only account gets the distinct ErrNoPasswordSet.
func (s *AuthService) Login(ctx context.Context, username, password string) (*AuthResult, error) {
	if err := validateUsername(username); err != nil {
		return nil, err
	}
	if err := validatePassword(password); err != nil {
		return nil, err
	}

	user, err := s.storage.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if user.PasswordHash == nil {
		return nil, ErrNoPasswordSet
	}

	valid, err := s.passwords.Verify(password, *user.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("failed to verify password: %w", err)
	}
	if !valid {
		return nil, ErrInvalidCredentials
	}

	return s.IssueSession(ctx, user)
}

// Logout invalidates the session belonging to the raw token. Idempotent.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := s.sessions.Invalidate(ctx, crypto.HashToken(token)); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// Authenticate resolves a raw cookie token to {session, user}.
//
// This is the canonical contract consumed by CRUD handlers: both fields are
// nil for an absent, expired, or tampered token, and only storage failures
// surface as errors.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*SessionData, error) {
	session, err := s.sessions.Validate(ctx, token)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return &SessionData{}, nil
	}

	user, err := s.storage.GetUserByID(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			// Orphaned session; treat as unauthenticated and drop the row.
			if derr := s.sessions.Invalidate(ctx, session.ID); derr != nil {
				s.logger.Warn("failed to delete orphaned session", "sessionId", session.ID, "error", derr)
			}
			return &SessionData{}, nil
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return &SessionData{Session: session, User: user}, nil
}

// IssueSession generates a token and persists a session for the user. Used
// by password login, registration, and OAuth resolution.
func (s *AuthService) IssueSession(ctx context.Context, user *User) (*AuthResult, error) {
	token, err := s.sessions.GenerateToken()
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	session, err := s.sessions.Create(ctx, token, user.ID)
	if err != nil {
		return nil, err
	}

	return &AuthResult{User: user, Session: session, Token: token}, nil
}

func validateUsername(username string) error {
	if username == "" {
		return ErrUsernameRequired
	}
	if len(username) < 3 || len(username) > 31 || !usernamePattern.MatchString(username) {
		return ErrInvalidUsername
	}
	return nil
}

func validatePassword(password string) error {
	if password == "" {
		return ErrPasswordRequired
	}
	if len(password) < 6 {
		return ErrPasswordTooShort
	}
	if len(password) > 255 {
		return ErrPasswordTooLong
	}
	return nil
}
