package fiber

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v3"

	"github.com/fennig/latch/oauth"
)

// oauthBegin starts the authorization flow: generate state and PKCE
// material, stash them in short-lived cookies, and send the browser to the
// provider's consent screen.
func (a *Adapter) oauthBegin(c fiber.Ctx) error {
	provider := c.Params("provider")

	begin, err := a.latch.Linker.Begin(provider)
	if err != nil {
		if errors.Is(err, oauth.ErrUnknownProvider) {
			return c.Status(http.StatusNotFound).JSON(fiber.Map{
				"error": "unknown provider",
			})
		}
		a.latch.Logger.Error("failed to start oauth flow", "provider", provider, "error", err)
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{
			"error": "internal server error",
		})
	}

	setFlowCookies(c, provider, begin)
	return c.Redirect().To(begin.URL)
}

// oauthCallback finishes the flow. State or cookie problems are the
// caller's fault and get a 400; upstream provider failures send the browser
// back to the login page with an error flag.
func (a *Adapter) oauthCallback(c fiber.Ctx) error {
	provider := c.Params("provider")

	in := oauth.CallbackInput{
		Code:        c.Query("code"),
		State:       c.Query("state"),
		StoredState: c.Cookies(stateCookieName(provider)),
		Verifier:    c.Cookies(verifierCookieName(provider)),
	}

	result, err := a.latch.Linker.Complete(c.Context(), provider, in)
	clearFlowCookies(c, provider)
	if err != nil {
		switch {
		case errors.Is(err, oauth.ErrUnknownProvider):
			return c.Status(http.StatusNotFound).JSON(fiber.Map{
				"error": "unknown provider",
			})
		case errors.Is(err, oauth.ErrStateMismatch):
			return c.Status(http.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid state",
			})
		default:
			return c.Redirect().To("/login?error=oauth_failed")
		}
	}

	setSessionCookie(c, result.Token, result.Session.ExpiresAt)
	return c.Redirect().To(a.latch.SuccessRedirect)
}
