package handlers

import (
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gofiber/fiber/v2"
	html "github.com/gofiber/template/html/v2"

	"estateadmin/internal/viewmodel"
)

const flashCookie = "flash"

// Flash is a one-shot notification carried across a redirect.
type Flash struct {
	Kind    string // ok | err
	Message string
}

func setFlash(c *fiber.Ctx, kind, msg string) {
	c.Cookie(&fiber.Cookie{
		Name:     flashCookie,
		Value:    url.QueryEscape(kind + ":" + msg),
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

func takeFlash(c *fiber.Ctx) *Flash {
	raw := c.Cookies(flashCookie)
	if raw == "" {
		return nil
	}
	c.ClearCookie(flashCookie)
	v, err := url.QueryUnescape(raw)
	if err != nil {
		return nil
	}
	kind, msg, ok := strings.Cut(v, ":")
	if !ok || msg == "" {
		return nil
	}
	return &Flash{Kind: kind, Message: msg}
}

func render(c *fiber.Ctx, tmpl string, data fiber.Map) error {
	if data == nil {
		data = fiber.Map{}
	}
	if s := currentSession(c); s != nil {
		data["Principal"] = s.Principal
	}
	// the csrf middleware stores its token under ContextKey "csrf"
	tok, _ := c.Locals("csrf").(string)
	if tok == "" {
		tok = c.Cookies("csrf_")
	}
	data["CSRFToken"] = tok
	if _, ok := data["Flash"]; !ok {
		if f := takeFlash(c); f != nil {
			data["Flash"] = f
		}
	}
	data["Path"] = c.Path()
	return c.Render(tmpl, data)
}

// notFound renders the shared message page.
func notFound(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusNotFound).Render("notfound", fiber.Map{"Message": msg})
}

// TemplateFuncs are the helpers every screen template may call.
func TemplateFuncs() map[string]any {
	return map[string]any{
		"money":    func(v float64) string { return humanize.CommafWithDigits(v, 2) },
		"amount":   func(v int64) string { return humanize.Comma(v) },
		"num":      func(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) },
		"ago":      ago,
		"lastSeen": lastSeen,
		"date":     func(t time.Time) string { return t.Format("02 Jan 2006") },
		"title":    viewmodel.TitleCase,
		"bytes":    func(n int64) string { return humanize.Bytes(uint64(n)) },
		"month":    func(i int) string { return viewmodel.MonthNames[i] },
		"add":      func(a, b int) int { return a + b },
		"has":      contains,
		"errOf":    func(errs map[string]string, field string) string { return errs[field] },
		"bucketOf": bucketLabel,
	}
}

func ago(t time.Time) string {
	if t.IsZero() {
		return "never"
	}
	return humanize.Time(t)
}

func lastSeen(t *time.Time) string {
	if t == nil {
		return "never"
	}
	return ago(*t)
}

func bucketLabel(price float64) string {
	b, _ := viewmodel.BucketOf(price)
	return b.Label
}

// NewEngine loads the templates under dir with TemplateFuncs registered.
func NewEngine(dir string) *html.Engine {
	engine := html.New(dir, ".html")
	for name, fn := range TemplateFuncs() {
		engine.AddFunc(name, fn)
	}
	return engine
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
