package fiber

import (
	"time"

	"github.com/gofiber/fiber/v3"

	"github.com/fennig/latch/oauth"
)

const sessionCookieName = "auth-session"

// setSessionCookie writes the raw session token. The cookie lifetime tracks
// the session row's expiry so the browser drops it at the same time the
// server would reject it.
func setSessionCookie(c fiber.Ctx, token string, expiresAt time.Time) {
	c.Cookie(&fiber.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Expires:  expiresAt,
	})
}

func clearSessionCookie(c fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		MaxAge:   -1,
	})
}

func stateCookieName(provider string) string {
	return provider + "_oauth_state"
}

func verifierCookieName(provider string) string {
	return provider + "_code_verifier"
}

// setFlowCookies stashes the state and PKCE verifier for the duration of
// one round trip to the provider.
func setFlowCookies(c fiber.Ctx, provider string, begin *oauth.BeginResult) {
	for name, value := range map[string]string{
		stateCookieName(provider):    begin.State,
		verifierCookieName(provider): begin.Verifier,
	} {
		c.Cookie(&fiber.Cookie{
			Name:     name,
			Value:    value,
			Path:     "/",
			HTTPOnly: true,
			SameSite: fiber.CookieSameSiteLaxMode,
			MaxAge:   oauth.StateTTL,
		})
	}
}

func clearFlowCookies(c fiber.Ctx, provider string) {
	for _, name := range []string{stateCookieName(provider), verifierCookieName(provider)} {
		c.Cookie(&fiber.Cookie{
			Name:     name,
			Value:    "",
			Path:     "/",
			HTTPOnly: true,
			SameSite: fiber.CookieSameSiteLaxMode,
			MaxAge:   -1,
		})
	}
}
