package handlers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"estateadmin/internal/apiclient"
	"estateadmin/internal/domain"
	applog "estateadmin/internal/log"
	"estateadmin/internal/services"
	"estateadmin/internal/session"
)

const sidCookie = "sid"

// RequireAdmin restores the session before any protected handler runs. No
// protected screen renders until the restore has finished; without a usable
// session the browser is sent to the login form.
func RequireAdmin(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sid := c.Cookies(sidCookie)
		s, err := auth.Current(sid)
		if err != nil {
			if !session.IsNoSession(err) {
				applog.Error(c, "session.restore.fail", err, nil)
			} else if sid != "" {
				applog.Info(c, "session.restore.none", map[string]any{"reason": err.Error()})
			}
			return c.Redirect("/login")
		}
		c.Locals("session", s)
		c.Locals("principal", s.Principal)
		return c.Next()
	}
}

// RedirectIfSignedIn keeps signed-in admins off the login form.
func RedirectIfSignedIn(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if sid := c.Cookies(sidCookie); sid != "" {
			if _, err := auth.Current(sid); err == nil {
				return c.Redirect("/")
			}
		}
		return c.Next()
	}
}

func currentSession(c *fiber.Ctx) *session.Session {
	s, _ := c.Locals("session").(*session.Session)
	return s
}

// client returns the API client acting for the signed-in admin.
func client(c *fiber.Ctx, api *apiclient.Client) *apiclient.Client {
	if s := currentSession(c); s != nil {
		return api.WithToken(s.Token)
	}
	return api
}

func adminID(c *fiber.Ctx) string {
	if s := currentSession(c); s != nil {
		return s.Principal.ID
	}
	return ""
}

// expired handles an API rejection of the admin's token by ending the local
// session too.
func expired(c *fiber.Ctx, auth *services.AuthService, err error) (bool, error) {
	if !errors.Is(err, domain.ErrUnauthorized) {
		return false, nil
	}
	applog.Security(c, "session.rejected", map[string]any{"err": err.Error()})
	_ = auth.Logout(c.Cookies(sidCookie))
	clearSID(c)
	setFlash(c, "err", "Your session has expired. Please sign in again.")
	return true, c.Redirect("/login")
}

func clearSID(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     sidCookie,
		Value:    "",
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Expires:  time.Now().Add(-1 * time.Hour),
	})
}
