package oauth

import (
	"context"
	"errors"
	"net/http"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/microsoft"
)

const microsoftGraphMeURL = "https://graph.microsoft.com/v1.0/me"

// Microsoft implements Provider against Entra ID with the "common" tenant,
// so any Microsoft account can sign in.
type Microsoft struct {
	config     *oauth2.Config
	profileURL string
	httpClient *http.Client
}

var _ Provider = (*Microsoft)(nil)

func NewMicrosoft(cfg Config) *Microsoft {
	return &Microsoft{
		config: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Endpoint:     microsoft.AzureADEndpoint("common"),
			Scopes:       []string{"openid", "profile", "email", "User.Read"},
		},
		profileURL: microsoftGraphMeURL,
	}
}

func (m *Microsoft) Name() string {
	return ProviderMicrosoft
}

func (m *Microsoft) AuthorizationURL(state, verifier string) string {
	return m.config.AuthCodeURL(state, oauth2.S256ChallengeOption(verifier))
}

func (m *Microsoft) Exchange(ctx context.Context, code, verifier string) (*oauth2.Token, error) {
	return m.config.Exchange(ctx, code, oauth2.VerifierOption(verifier))
}

func (m *Microsoft) FetchIdentity(ctx context.Context, token *oauth2.Token) (*Identity, error) {
	var profile struct {
		ID                string `json:"id"`
		DisplayName       string `json:"displayName"`
		GivenName         string `json:"givenName"`
		Surname           string `json:"surname"`
		UserPrincipalName string `json:"userPrincipalName"`
		Mail              string `json:"mail"`
	}
	if err := fetchJSON(ctx, m.httpClient, m.profileURL, token, &profile); err != nil {
		return nil, err
	}
	if profile.ID == "" {
		return nil, errors.New("graph response missing id")
	}

	// Graph reports personal accounts without a mail attribute; the UPN is
	// the usable address in that case.
	email := profile.Mail
	if email == "" {
		email = profile.UserPrincipalName
	}

	displayName := profile.DisplayName
	if displayName == "" {
		displayName = profile.GivenName
	}

	return &Identity{
		ProviderUserID: profile.ID,
		Email:          email,
		DisplayName:    displayName,
	}, nil
}
