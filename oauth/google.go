package oauth

import (
	"context"
	"errors"
	"net/http"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const googleUserInfoURL = "https://openidconnect.googleapis.com/v1/userinfo"

// Google implements Provider against Google's OpenID Connect surface.
type Google struct {
	config      *oauth2.Config
	userInfoURL string
	httpClient  *http.Client
}

var _ Provider = (*Google)(nil)

func NewGoogle(cfg Config) *Google {
	return &Google{
		config: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Endpoint:     google.Endpoint,
			Scopes:       []string{"openid", "profile", "email"},
		},
		userInfoURL: googleUserInfoURL,
	}
}

func (g *Google) Name() string {
	return ProviderGoogle
}

func (g *Google) AuthorizationURL(state, verifier string) string {
	return g.config.AuthCodeURL(state, oauth2.S256ChallengeOption(verifier))
}

func (g *Google) Exchange(ctx context.Context, code, verifier string) (*oauth2.Token, error) {
	return g.config.Exchange(ctx, code, oauth2.VerifierOption(verifier))
}

func (g *Google) FetchIdentity(ctx context.Context, token *oauth2.Token) (*Identity, error) {
	var profile struct {
		Sub           string `json:"sub"`
		Name          string `json:"name"`
		Email         string `json:"email"`
		Picture       string `json:"picture"`
		EmailVerified bool   `json:"email_verified"`
	}
	if err := fetchJSON(ctx, g.httpClient, g.userInfoURL, token, &profile); err != nil {
		return nil, err
	}
	if profile.Sub == "" {
		return nil, errors.New("userinfo response missing subject")
	}

	return &Identity{
		ProviderUserID: profile.Sub,
		Email:          profile.Email,
		DisplayName:    profile.Name,
	}, nil
}
