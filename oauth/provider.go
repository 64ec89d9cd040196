package oauth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"golang.org/x/oauth2"
)

// Provider names, matching the identity columns on the user row.
const (
	ProviderGoogle    = "google"
	ProviderMicrosoft = "microsoft"
)

// Identity is what a provider knows about the authenticated user, reduced to
// the fields the resolution algorithm consumes.
type Identity struct {
	ProviderUserID string
	Email          string
	DisplayName    string
}

// Provider drives one OAuth authorization-code flow with PKCE.
// Both supported providers implement the same four capabilities instead of
// duplicating flow logic.
type Provider interface {
	Name() string

	// AuthorizationURL builds the redirect target for the user agent, binding
	// the request to the CSRF state and the S256 challenge of the verifier.
	AuthorizationURL(state, verifier string) string

	// Exchange trades the callback code and PKCE verifier for a token.
	Exchange(ctx context.Context, code, verifier string) (*oauth2.Token, error)

	// FetchIdentity queries the provider's profile endpoint with the token.
	FetchIdentity(ctx context.Context, token *oauth2.Token) (*Identity, error)
}

// Config holds the credentials for one provider registration.
type Config struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
}

// fetchJSON performs an authorized GET against a profile endpoint and decodes
// the response into out.
func fetchJSON(ctx context.Context, client *http.Client, url string, token *oauth2.Token, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+token.AccessToken)

	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("profile request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("profile endpoint returned %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode profile response: %w", err)
	}
	return nil
}
