package handlers_test

import (
	"bytes"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"estateadmin/internal/apiclient"
	"estateadmin/internal/apiclient/apitest"
	"estateadmin/internal/http/handlers"
	"estateadmin/internal/repos"
	"estateadmin/internal/services"
	"estateadmin/internal/session"
	"estateadmin/internal/staging"
)

const adminEmail = "asha@example.test"

var pngBytes = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

// harness is the full route table mounted over a fake listing API.
type harness struct {
	t   *testing.T
	srv *apitest.Server
	app *fiber.App
	reg *staging.Registry
	sid string
}

func adminToken(t *testing.T, exp time.Time) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id": "admin-1", "name": "Asha", "email": adminEmail, "exp": exp.Unix(),
	}).SignedString([]byte("api-secret"))
	require.NoError(t, err)
	return tok
}

// newHarness mounts every route; mw runs first, as the global middleware
// does in main.
func newHarness(t *testing.T, mw ...fiber.Handler) *harness {
	t.Helper()
	srv := apitest.New(t)
	srv.Token = adminToken(t, time.Now().Add(time.Hour))

	db, err := repos.OpenDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	sealer, err := session.NewSealer("test-secret")
	require.NoError(t, err)
	reg, err := staging.NewRegistry(t.TempDir(), 5, 1<<20)
	require.NoError(t, err)

	api := apiclient.New(srv.BaseURL(), 5*time.Second)
	auth := services.NewAuthService(api, session.NewManager(repos.NewSessionRepo(db), sealer), reg)

	app := fiber.New(fiber.Config{Views: handlers.NewEngine("../../web/templates")})
	for _, m := range mw {
		app.Use(m)
	}
	handlers.NewDeps(api, auth, reg, false).Mount(app)
	return &harness{t: t, srv: srv, app: app, reg: reg}
}

func (h *harness) do(req *http.Request) *http.Response {
	h.t.Helper()
	if h.sid != "" {
		req.AddCookie(&http.Cookie{Name: "sid", Value: h.sid})
	}
	resp, err := h.app.Test(req, -1)
	require.NoError(h.t, err)
	return resp
}

func (h *harness) get(path string) (*http.Response, string) {
	h.t.Helper()
	resp := h.do(httptest.NewRequest(http.MethodGet, path, nil))
	body, _ := io.ReadAll(resp.Body)
	return resp, string(body)
}

func (h *harness) postForm(path string, v url.Values) (*http.Response, string) {
	h.t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(v.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	resp := h.do(req)
	body, _ := io.ReadAll(resp.Body)
	return resp, string(body)
}

type upload struct {
	name string
	data []byte
}

func (h *harness) postMultipart(path string, v url.Values, files ...upload) (*http.Response, string) {
	h.t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, vals := range v {
		for _, val := range vals {
			require.NoError(h.t, w.WriteField(k, val))
		}
	}
	for _, f := range files {
		part, err := w.CreateFormFile("images", f.name)
		require.NoError(h.t, err)
		_, err = part.Write(f.data)
		require.NoError(h.t, err)
	}
	require.NoError(h.t, w.Close())
	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	resp := h.do(req)
	body, _ := io.ReadAll(resp.Body)
	return resp, string(body)
}

// login signs in through the real handler and keeps the issued sid.
func (h *harness) login() {
	h.t.Helper()
	resp, _ := h.postForm("/login", url.Values{"email": {adminEmail}, "password": {h.srv.Password}})
	require.Equal(h.t, fiber.StatusFound, resp.StatusCode)
	h.sid = cookie(resp, "sid")
	require.NotEmpty(h.t, h.sid)
}

func cookie(resp *http.Response, name string) string {
	for _, c := range resp.Cookies() {
		if c.Name == name {
			return c.Value
		}
	}
	return ""
}

func flash(t *testing.T, resp *http.Response) string {
	t.Helper()
	v, err := url.QueryUnescape(cookie(resp, "flash"))
	require.NoError(t, err)
	return v
}

func image(tag string) upload {
	return upload{name: tag + ".png", data: append(append([]byte{}, pngBytes...), tag...)}
}

// propertyForm is a complete, valid create/edit submission.
func propertyForm() url.Values {
	return url.Values{
		"title":       {"Seaview Cottage"},
		"price":       {"450000"},
		"location":    {"Candolim"},
		"description": {"Two storey cottage near the beach."},
		"bedroom":     {"3"},
		"bathroom":    {"2"},
		"category":    {"House"},
		"district":    {"North Goa"},
		"area":        {"1450"},
		"type":        {"sale"},
	}
}
