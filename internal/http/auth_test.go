package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	"github.com/stretchr/testify/require"
)

// No protected screen renders, and no listing data is requested, before a
// session is restored.
func TestProtectedRoutesRedirectWithoutSession(t *testing.T) {
	h := newHarness(t)
	for _, path := range []string{"/", "/properties", "/properties/new", "/properties/p1", "/users", "/taxonomy"} {
		resp, _ := h.get(path)
		require.Equal(t, fiber.StatusFound, resp.StatusCode, path)
		require.Equal(t, "/login", resp.Header.Get("Location"), path)
	}
	require.Zero(t, h.srv.TotalHits())
}

func TestUnknownSidIsTreatedAsSignedOut(t *testing.T) {
	h := newHarness(t)
	h.sid = "not-a-session"
	resp, _ := h.get("/")
	require.Equal(t, "/login", resp.Header.Get("Location"))
}

func TestLoginSuccessAndFailure(t *testing.T) {
	h := newHarness(t)

	resp, body := h.postForm("/login", url.Values{"email": {adminEmail}, "password": {"wrong-pass"}})
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	require.Contains(t, body, "Invalid email or password")

	// malformed email never reaches the API
	before := h.srv.Hits("POST /admin/login")
	resp, _ = h.postForm("/login", url.Values{"email": {"not-an-email"}, "password": {"x"}})
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	require.Equal(t, before, h.srv.Hits("POST /admin/login"))

	h.login()
	resp, body = h.get("/")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Contains(t, body, "Asha")

	// signed-in admins skip the form
	resp, _ = h.get("/login")
	require.Equal(t, fiber.StatusFound, resp.StatusCode)
	require.Equal(t, "/", resp.Header.Get("Location"))
}

func TestLoginIssuesFreshSid(t *testing.T) {
	h := newHarness(t)
	h.sid = "attacker-chosen"
	resp, _ := h.postForm("/login", url.Values{"email": {adminEmail}, "password": {h.srv.Password}})
	require.Equal(t, fiber.StatusFound, resp.StatusCode)
	sid := cookie(resp, "sid")
	require.NotEmpty(t, sid)
	require.NotEqual(t, "attacker-chosen", sid)
}

// Signing in again abandons the previous sid along with its staged images.
func TestReloginReleasesPreviousSession(t *testing.T) {
	h := newHarness(t)
	h.login()
	old := h.sid
	h.postMultipart("/staging/new", nil, image("a"))
	require.Equal(t, 1, h.reg.Live())

	h.login()
	require.NotEqual(t, old, h.sid)
	require.Zero(t, h.reg.Live())

	h.sid = old
	resp, _ := h.get("/")
	require.Equal(t, "/login", resp.Header.Get("Location"))
}

func TestLoginUnavailableIsBadGateway(t *testing.T) {
	h := newHarness(t)
	h.srv.Fail("POST /admin/login", http.StatusInternalServerError, "boom")
	resp, body := h.postForm("/login", url.Values{"email": {adminEmail}, "password": {h.srv.Password}})
	require.Equal(t, fiber.StatusBadGateway, resp.StatusCode)
	require.NotContains(t, body, "boom")
}

func TestLoginExpiredTokenRejected(t *testing.T) {
	h := newHarness(t)
	h.srv.Token = adminToken(t, time.Now().Add(-time.Hour))
	resp, _ := h.postForm("/login", url.Values{"email": {adminEmail}, "password": {h.srv.Password}})
	require.Equal(t, fiber.StatusBadGateway, resp.StatusCode)

	resp, _ = h.get("/")
	require.Equal(t, "/login", resp.Header.Get("Location"))
}

func TestLoginThrottled(t *testing.T) {
	h := newHarness(t)
	for i := 0; i < 5; i++ {
		resp, _ := h.postForm("/login", url.Values{"email": {adminEmail}, "password": {"wrong-pass"}})
		require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	}
	resp, _ := h.postForm("/login", url.Values{"email": {adminEmail}, "password": {h.srv.Password}})
	require.Equal(t, fiber.StatusTooManyRequests, resp.StatusCode)
}

func TestLogoutEndsSessionAndStaging(t *testing.T) {
	h := newHarness(t)
	h.login()
	h.postMultipart("/staging/new", nil, image("a"))
	require.Equal(t, 1, h.reg.Live())

	resp, _ := h.postForm("/logout", nil)
	require.Equal(t, fiber.StatusFound, resp.StatusCode)
	require.Equal(t, "/login", resp.Header.Get("Location"))
	require.Zero(t, h.reg.Live())

	resp, _ = h.get("/")
	require.Equal(t, "/login", resp.Header.Get("Location"))
}

// An API 401 mid-session signs the admin out locally too.
func TestAPIRejectionSignsOut(t *testing.T) {
	h := newHarness(t)
	h.login()
	h.srv.Fail("GET /post/viewallpost", http.StatusUnauthorized, "jwt expired")

	resp, _ := h.get("/properties")
	require.Equal(t, fiber.StatusFound, resp.StatusCode)
	require.Equal(t, "/login", resp.Header.Get("Location"))
	require.Contains(t, flash(t, resp), "session has expired")

	h.srv.Recover("GET /post/viewallpost")
	resp, _ = h.get("/properties")
	require.Equal(t, "/login", resp.Header.Get("Location"))
}

func TestCSRFRequiredOnPost(t *testing.T) {
	h := newHarness(t, csrf.New(csrf.Config{KeyLookup: "form:csrf", ContextKey: "csrf", CookieName: "csrf_", CookieSameSite: "Lax"}))

	resp, _ := h.postForm("/login", url.Values{"email": {adminEmail}, "password": {h.srv.Password}})
	require.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	require.Zero(t, h.srv.TotalHits())

	resp, body := h.get("/login")
	tok := cookie(resp, "csrf_")
	require.NotEmpty(t, tok)
	require.Contains(t, body, `name="csrf" value="`+tok+`"`)

	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(url.Values{
		"csrf": {tok}, "email": {adminEmail}, "password": {h.srv.Password},
	}.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.AddCookie(&http.Cookie{Name: "csrf_", Value: tok})
	resp = h.do(req)
	require.Equal(t, fiber.StatusFound, resp.StatusCode)
}

func TestHealthAndNotFound(t *testing.T) {
	h := newHarness(t)
	resp, _ := h.get("/healthz")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	h.login()
	resp, body := h.get("/no-such-page")
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	require.Contains(t, body, "Page not found")
}
