package fiber

import (
	"github.com/gofiber/fiber/v3"
)

// RequireAuth validates the session cookie on every request and stores the
// resolved user and session in the context for downstream handlers. Requests
// without a valid session get a 401 and the stale cookie is cleared.
func (a *Adapter) RequireAuth() fiber.Handler {
	return func(c fiber.Ctx) error {
		token := c.Cookies(sessionCookieName)

		data, err := a.latch.Auth.Authenticate(c.Context(), token)
		if err != nil {
			return a.handleAuthError(c, err)
		}
		if data.User == nil {
			if token != "" {
				clearSessionCookie(c)
			}
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "not authenticated",
			})
		}

		setSessionCookie(c, token, data.Session.ExpiresAt)
		c.Locals("user", data.User)
		c.Locals("session", data.Session)

		return c.Next()
	}
}
