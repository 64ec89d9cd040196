// Package latch is the identity and session core of a hierarchical project
// tracker: password and OAuth sign-in, opaque cookie sessions with sliding
// renewal, and the client-side field encryption that keeps sensitive task
// content opaque to the server.
package latch

import (
	"log/slog"

	"github.com/fennig/latch/core"
	"github.com/fennig/latch/oauth"
)

// interfaces
type (
	AuthStorage    = core.AuthStorage
	UserStorage    = core.UserStorage
	SessionStorage = core.SessionStorage

	PasswordHandler = core.PasswordHandler

	Provider = oauth.Provider
)

// structs
type (
	SessionConfig = core.SessionConfig

	User        = core.User
	Session     = core.Session
	SessionData = core.SessionData
	AuthResult  = core.AuthResult

	Identity       = oauth.Identity
	ProviderConfig = oauth.Config
)

const defaultBasePath = "/auth"

// Constructors & helpers (convenience re-exports)
var (
	NewPBKDF2            = core.NewPBKDF2
	DefaultSessionConfig = core.DefaultSessionConfig
	NewGoogle            = oauth.NewGoogle
	NewMicrosoft         = oauth.NewMicrosoft
)

var (
	ErrUserExists         = core.ErrUserExists
	ErrUserNotFound       = core.ErrUserNotFound
	ErrInvalidCredentials = core.ErrInvalidCredentials
	ErrNoPasswordSet      = core.ErrNoPasswordSet
)

var (
	ErrUsernameRequired = core.ErrUsernameRequired
	ErrInvalidUsername  = core.ErrInvalidUsername
	ErrPasswordRequired = core.ErrPasswordRequired
	ErrPasswordTooShort = core.ErrPasswordTooShort
	ErrPasswordTooLong  = core.ErrPasswordTooLong
)

var (
	ErrInvalidToken    = core.ErrInvalidToken
	ErrSessionNotFound = core.ErrSessionNotFound
)

var (
	ErrStorageRequired = core.ErrStorageRequired
	ErrUnknownProvider = oauth.ErrUnknownProvider
	ErrStateMismatch   = oauth.ErrStateMismatch
)

// Options wires the core together. Storage is the only required piece;
// everything else has a working default.
type Options struct {
	Storage core.AuthStorage

	// Optional config
	Providers      []oauth.Provider
	SessionConfig  *core.SessionConfig
	PasswordHasher core.PasswordHandler
	Logger         *slog.Logger
	BasePath       string

	// SuccessRedirect is where the browser lands after a completed OAuth
	// sign-in. Defaults to "/".
	SuccessRedirect string
}

// Latch bundles the wired services handed to HTTP adapters and other
// collaborators.
type Latch struct {
	Auth            *core.AuthService
	Sessions        *core.SessionManager
	Linker          *oauth.Linker
	Logger          *slog.Logger
	BasePath        string
	SuccessRedirect string
}

// HTTPAdapter mounts the auth surface onto a web framework.
type HTTPAdapter interface {
	RegisterRoutes(l *Latch) error
}

func New(opts Options) (*Latch, error) {
	if opts.Storage == nil {
		return nil, ErrStorageRequired
	}

	// Set defaults

	sessionConfig := opts.SessionConfig
	if sessionConfig == nil {
		cfg := core.DefaultSessionConfig()
		sessionConfig = &cfg
	}

	passwordHasher := opts.PasswordHasher
	if passwordHasher == nil {
		passwordHasher = core.NewPBKDF2()
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	basePath := opts.BasePath
	if basePath == "" {
		basePath = defaultBasePath
	}

	successRedirect := opts.SuccessRedirect
	if successRedirect == "" {
		successRedirect = "/"
	}

	sessions := core.NewSessionManager(*sessionConfig, opts.Storage, logger)
	auth := core.NewAuthService(opts.Storage, passwordHasher, sessions, logger)
	linker := oauth.NewLinker(auth, opts.Storage, logger, opts.Providers...)

	return &Latch{
		Auth:            auth,
		Sessions:        sessions,
		Linker:          linker,
		Logger:          logger,
		BasePath:        basePath,
		SuccessRedirect: successRedirect,
	}, nil
}
