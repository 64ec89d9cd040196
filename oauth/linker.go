package oauth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/oauth2"

	"github.com/fennig/latch/core"
	"github.com/fennig/latch/pkg/crypto"
)

var (
	ErrUnknownProvider = errors.New("unknown oauth provider")     // 404
	ErrStateMismatch   = errors.New("invalid oauth state")        // 400
	ErrExchangeFailed  = errors.New("oauth code exchange failed") // redirect with error
	ErrProfileFailed   = errors.New("oauth profile fetch failed") // redirect with error
)

// StateTTL bounds how long the state and verifier cookies stay valid. A
// callback arriving later fails closed because the cookies are gone.
const StateTTL = 600 // seconds

// Linker drives the authorization-code/PKCE exchange for the registered
// providers and resolves the result into a local user identity.
type Linker struct {
	providers map[string]Provider
	storage   core.AuthStorage
	auth      *core.AuthService
	ids       *crypto.IDGenerator
	logger    *slog.Logger
}

// BeginResult carries the material the HTTP layer stores in short-lived
// cookies before redirecting to the provider.
type BeginResult struct {
	State    string
	Verifier string
	URL      string
}

// CallbackInput is everything the callback handler gathered: query params
// plus the cookie-stored state and verifier.
type CallbackInput struct {
	Code        string
	State       string
	StoredState string
	Verifier    string
}

func NewLinker(auth *core.AuthService, storage core.AuthStorage, logger *slog.Logger, providers ...Provider) *Linker {
	byName := make(map[string]Provider, len(providers))
	for _, p := range providers {
		byName[p.Name()] = p
	}
	ids, _ := crypto.NewIDGenerator("")
	if logger == nil {
		logger = slog.Default()
	}
	return &Linker{
		providers: byName,
		storage:   storage,
		auth:      auth,
		ids:       ids,
		logger:    logger,
	}
}

// Provider returns a registered provider by name.
func (l *Linker) Provider(name string) (Provider, bool) {
	p, ok := l.providers[name]
	return p, ok
}

// Begin generates the CSRF state and PKCE verifier and builds the provider's
// authorization URL.
func (l *Linker) Begin(providerName string) (*BeginResult, error) {
	provider, ok := l.providers[providerName]
	if !ok {
		return nil, ErrUnknownProvider
	}

	state, err := crypto.GenerateToken()
	if err != nil {
		return nil, fmt.Errorf("failed to generate state: %w", err)
	}
	verifier := oauth2.GenerateVerifier()

	return &BeginResult{
		State:    state,
		Verifier: verifier,
		URL:      provider.AuthorizationURL(state, verifier),
	}, nil
}

// Complete validates the callback, exchanges the code, fetches the profile,
// resolves the identity to a local user, and issues a session.
//
// A missing code, missing or mismatched state, or missing verifier rejects
// the callback before any network or storage activity, defending against
// CSRF and authorization-code injection. Exchange and profile errors leave
// no partial user or session state behind.
func (l *Linker) Complete(ctx context.Context, providerName string, in CallbackInput) (*core.AuthResult, error) {
	if in.Code == "" || in.State == "" || in.StoredState == "" || in.State != in.StoredState || in.Verifier == "" {
		return nil, ErrStateMismatch
	}

	provider, ok := l.providers[providerName]
	if !ok {
		return nil, ErrUnknownProvider
	}

	token, err := provider.Exchange(ctx, in.Code, in.Verifier)
	if err != nil {
		l.logger.Warn("oauth code exchange failed", "provider", providerName, "error", err)
		return nil, fmt.Errorf("%w: %v", ErrExchangeFailed, err)
	}

	identity, err := provider.FetchIdentity(ctx, token)
	if err != nil {
		l.logger.Warn("oauth profile fetch failed", "provider", providerName, "error", err)
		return nil, fmt.Errorf("%w: %v", ErrProfileFailed, err)
	}

	user, err := l.resolve(ctx, providerName, identity)
	if err != nil {
		return nil, err
	}

	return l.auth.IssueSession(ctx, user)
}

// resolve maps a provider identity onto a local user. Deterministic and
// idempotent: repeated logins with the same provider id land on the same
// user.
func (l *Linker) resolve(ctx context.Context, providerName string, identity *Identity) (*core.User, error) {
	user, err := l.storage.GetUserByProviderID(ctx, providerName, identity.ProviderUserID)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, core.ErrUserNotFound) {
		return nil, fmt.Errorf("failed to look up provider identity: %w", err)
	}

	username := DeriveUsername(identity)

	user, err = l.storage.GetUserByUsername(ctx, username)
	if err == nil {
		// First-writer backfill: link the existing account to this identity.
		// An account already linked to a different provider id still wins;
		// the collision does not block login.
		if linkedID(user, providerName) == nil {
			if err := l.storage.LinkProviderID(ctx, user.ID, providerName, identity.ProviderUserID); err != nil {
				return nil, fmt.Errorf("failed to link provider identity: %w", err)
			}
		}
		return user, nil
	}
	if !errors.Is(err, core.ErrUserNotFound) {
		return nil, fmt.Errorf("failed to look up username: %w", err)
	}

	id, err := l.ids.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate user id: %w", err)
	}

	user = &core.User{
		ID:       id,
		Username: username,
	}
	setLinkedID(user, providerName, identity.ProviderUserID)

	if err := l.storage.CreateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

// DeriveUsername picks the candidate username for a fresh identity: the
// email local-part, else the sanitized display name, else "user".
func DeriveUsername(identity *Identity) string {
	if identity.Email != "" {
		if at := strings.Index(identity.Email, "@"); at > 0 {
			return identity.Email[:at]
		}
		return identity.Email
	}
	if identity.DisplayName != "" {
		return strings.Join(strings.Fields(strings.ToLower(identity.DisplayName)), "_")
	}
	return "user"
}

func linkedID(u *core.User, provider string) *string {
	switch provider {
	case ProviderGoogle:
		return u.GoogleID
	case ProviderMicrosoft:
		return u.MicrosoftID
	}
	return nil
}

func setLinkedID(u *core.User, provider, providerUserID string) {
	switch provider {
	case ProviderGoogle:
		u.GoogleID = &providerUserID
	case ProviderMicrosoft:
		u.MicrosoftID = &providerUserID
	}
}
