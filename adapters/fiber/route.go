// Package fiber mounts the latch auth surface onto a Fiber v3 application:
// password endpoints, session lookup, and the OAuth redirect and callback
// pair for each registered provider.
package fiber

import (
	"github.com/gofiber/fiber/v3"

	"github.com/fennig/latch"
)

type Adapter struct {
	app   *fiber.App
	latch *latch.Latch
}

var _ latch.HTTPAdapter = (*Adapter)(nil)

func New(app *fiber.App) *Adapter {
	return &Adapter{app: app}
}

func (a *Adapter) RegisterRoutes(l *latch.Latch) error {
	a.latch = l
	api := a.app.Group(l.BasePath)

	// Public routes
	api.Post("/register", a.register)
	api.Post("/login", a.login)
	api.Post("/logout", a.logout)
	api.Get("/session", a.session)

	// OAuth redirect and callback
	api.Get("/login/:provider", a.oauthBegin)
	api.Get("/login/:provider/callback", a.oauthCallback)

	return nil
}
