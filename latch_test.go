package latch

import (
	"context"
	"testing"
	"time"

	"github.com/fennig/latch/core"
	"github.com/fennig/latch/oauth"
)

func TestNewRequiresStorage(t *testing.T) {
	_, err := New(Options{})
	if err != ErrStorageRequired {
		t.Fatalf("New() error = %v, want ErrStorageRequired", err)
	}
}

func TestNewWiresDefaults(t *testing.T) {
	// Arrange
	storage := core.NewFakeAuthStorage()

	// Act
	l, err := New(Options{Storage: storage})

	// Assert
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if l.Auth == nil || l.Sessions == nil || l.Linker == nil {
		t.Fatal("New() should wire auth, sessions, and linker")
	}
	if l.BasePath != "/auth" {
		t.Errorf("BasePath = %q, want /auth", l.BasePath)
	}
	if l.SuccessRedirect != "/" {
		t.Errorf("SuccessRedirect = %q, want /", l.SuccessRedirect)
	}
	if l.Logger == nil {
		t.Error("New() should default the logger")
	}
}

func TestNewEndToEndRegisterAuthenticate(t *testing.T) {
	// Arrange
	storage := core.NewFakeAuthStorage()
	l, err := New(Options{
		Storage:       storage,
		SessionConfig: &SessionConfig{MaxAge: 30 * 24 * time.Hour, RenewWithin: 15 * 24 * time.Hour},
		Providers:     []oauth.Provider{NewGoogle(ProviderConfig{ClientID: "id"})},
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	ctx := context.Background()

	// Act
	result, err := l.Auth.Register(ctx, "alice", "secret1")
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	data, err := l.Auth.Authenticate(ctx, result.Token)

	// Assert
	if err != nil {
		t.Fatalf("Authenticate() error = %v", err)
	}
	if data.User == nil || data.User.Username != "alice" {
		t.Errorf("Authenticate() user = %+v, want alice", data.User)
	}
	if _, ok := l.Linker.Provider("google"); !ok {
		t.Error("google provider should be registered")
	}
}
