package fiber

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v3"

	"github.com/fennig/latch"
)

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (a *Adapter) register(c fiber.Ctx) error {
	var input credentials
	if err := c.Bind().Body(&input); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	result, err := a.latch.Auth.Register(c.Context(), input.Username, input.Password)
	if err != nil {
		return a.handleAuthError(c, err)
	}

	setSessionCookie(c, result.Token, result.Session.ExpiresAt)
	return c.Status(http.StatusCreated).JSON(result.User)
}

func (a *Adapter) login(c fiber.Ctx) error {
	var input credentials
	if err := c.Bind().Body(&input); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	result, err := a.latch.Auth.Login(c.Context(), input.Username, input.Password)
	if err != nil {
		return a.handleAuthError(c, err)
	}

	setSessionCookie(c, result.Token, result.Session.ExpiresAt)
	return c.Status(http.StatusOK).JSON(result.User)
}

func (a *Adapter) logout(c fiber.Ctx) error {
	token := c.Cookies(sessionCookieName)
	if token != "" {
		if err := a.latch.Auth.Logout(c.Context(), token); err != nil {
			return a.handleAuthError(c, err)
		}
	}

	clearSessionCookie(c)
	return c.Status(http.StatusOK).JSON(fiber.Map{
		"message": "logged out",
	})
}

func (a *Adapter) session(c fiber.Ctx) error {
	token := c.Cookies(sessionCookieName)

	data, err := a.latch.Auth.Authenticate(c.Context(), token)
	if err != nil {
		return a.handleAuthError(c, err)
	}
	if data.User == nil {
		clearSessionCookie(c)
		return c.Status(http.StatusUnauthorized).JSON(fiber.Map{
			"error": "not authenticated",
		})
	}

	// The session may have been extended; keep the cookie lifetime in step.
	setSessionCookie(c, token, data.Session.ExpiresAt)
	return c.Status(http.StatusOK).JSON(data)
}

// handleAuthError maps service errors to HTTP responses. Unrecognized
// errors mean something broke server-side: the cause goes to the log and
// the client gets a fixed generic body, never the internal error string.
func (a *Adapter) handleAuthError(c fiber.Ctx, err error) error {
	status := mapErrorToStatus(err)
	if status == http.StatusInternalServerError {
		a.latch.Logger.Error("request failed",
			"method", c.Method(),
			"path", c.Path(),
			"error", err,
		)
		return c.Status(status).JSON(fiber.Map{
			"error": "internal server error",
		})
	}
	return c.Status(status).JSON(fiber.Map{
		"error": err.Error(),
	})
}

// mapErrorToStatus maps latch error types to HTTP status codes. Credential
// failures stay 400 with a generic message so the response does not reveal
// whether the username exists.
func mapErrorToStatus(err error) int {
	switch {
	case errors.Is(err, latch.ErrUserExists):
		return http.StatusConflict

	case errors.Is(err, latch.ErrInvalidCredentials),
		errors.Is(err, latch.ErrNoPasswordSet),
		errors.Is(err, latch.ErrUsernameRequired),
		errors.Is(err, latch.ErrInvalidUsername),
		errors.Is(err, latch.ErrPasswordRequired),
		errors.Is(err, latch.ErrPasswordTooShort),
		errors.Is(err, latch.ErrPasswordTooLong):
		return http.StatusBadRequest

	case errors.Is(err, latch.ErrInvalidToken),
		errors.Is(err, latch.ErrSessionNotFound):
		return http.StatusUnauthorized

	default:
		return http.StatusInternalServerError
	}
}
