package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"estateadmin/internal/apiclient"
	"estateadmin/internal/log"
	"estateadmin/internal/services"
	"estateadmin/internal/validate"
)

type AuthHandler struct {
	Auth         *services.AuthService
	CookieSecure bool
}

func (h *AuthHandler) newSID(c *fiber.Ctx) string {
	sid := uuid.NewString()
	c.Cookie(&fiber.Cookie{
		Name:     sidCookie,
		Value:    sid,
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Secure:   h.CookieSecure,
	})
	return sid
}

func (h *AuthHandler) LoginForm(c *fiber.Ctx) error {
	return render(c, "login", fiber.Map{"Err": ""})
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	email := c.FormValue("email")
	pass := c.FormValue("password")
	fail := func(status int, msg string) error {
		return render(c.Status(status), "login", fiber.Map{"Err": msg, "Email": email})
	}
	if _, ok := validate.Email(email); !ok {
		log.Security(c, "auth.login.fail", map[string]any{"email": email, "reason": "bad_format"})
		return fail(fiber.StatusUnauthorized, "Invalid email or password")
	}
	if !validate.Password(pass) {
		log.Security(c, "auth.login.fail", map[string]any{"email": email, "reason": "bad_password_format"})
		return fail(fiber.StatusUnauthorized, "Invalid email or password")
	}

	// a fresh sid on every sign-in so a pre-login cookie is never promoted
	prev := c.Cookies(sidCookie)
	sid := h.newSID(c)
	s, err := h.Auth.Login(sid, email, pass)
	switch {
	case errors.Is(err, services.ErrBadCreds):
		log.Security(c, "auth.login.fail", map[string]any{"email": email})
		return fail(fiber.StatusUnauthorized, "Invalid email or password")
	case err != nil:
		log.Error(c, "auth.login.error", err, map[string]any{"email": email})
		return fail(fiber.StatusBadGateway, apiclient.UserMessage(err, "Sign-in is unavailable right now. Please retry."))
	}

	if prev != "" {
		// the replaced session and anything it staged are unreachable now
		_ = h.Auth.Logout(prev)
	}
	c.Locals("principal", s.Principal)
	log.Audit(c, "auth.login.success", map[string]any{"email": email})
	return c.Redirect("/")
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	sid := c.Cookies(sidCookie)
	_ = h.Auth.Logout(sid)
	clearSID(c)
	log.Audit(c, "auth.logout", nil)
	return c.Redirect("/login")
}
