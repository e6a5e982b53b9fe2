package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"estateadmin/internal/apiclient"
	applog "estateadmin/internal/log"
	"estateadmin/internal/services"
	"estateadmin/internal/staging"
)

type Deps struct {
	Auth *services.AuthService

	AuthHandler     *AuthHandler
	AdminHandler    *AdminHandler
	PropertyHandler *PropertyHandler
	CategoryHandler *CategoryHandler
	StagingHandler  *StagingHandler
}

func NewDeps(api *apiclient.Client, auth *services.AuthService, reg *staging.Registry, cookieSecure bool) *Deps {
	return &Deps{
		Auth:            auth,
		AuthHandler:     &AuthHandler{Auth: auth, CookieSecure: cookieSecure},
		AdminHandler:    &AdminHandler{API: api, Auth: auth},
		PropertyHandler: &PropertyHandler{API: api, Auth: auth, Staging: reg},
		CategoryHandler: &CategoryHandler{API: api, Auth: auth},
		StagingHandler:  &StagingHandler{Staging: reg},
	}
}

// Mount registers every route. Global middleware (request id, logging,
// headers, csrf) is the caller's business.
func (d *Deps) Mount(app *fiber.App) {
	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })

	// Auth routes (login throttled)
	app.Get("/login", RedirectIfSignedIn(d.Auth), d.AuthHandler.LoginForm)
	app.Post("/login", limiter.New(limiter.Config{
		Max:        5,
		Expiration: 10 * time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.login.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).Render("login", fiber.Map{"Err": "Too many attempts. Please try again later."})
		},
	}), d.AuthHandler.Login)
	app.Post("/logout", d.AuthHandler.Logout)

	admin := app.Group("", RequireAdmin(d.Auth))
	admin.Get("/", d.AdminHandler.Dashboard)
	admin.Get("/users", d.AdminHandler.Users)

	admin.Get("/properties", d.PropertyHandler.List)
	admin.Get("/properties/new", d.PropertyHandler.New)
	admin.Post("/properties", d.PropertyHandler.Create)
	admin.Get("/properties/:id", d.PropertyHandler.Detail)
	admin.Get("/properties/:id/edit", d.PropertyHandler.Edit)
	admin.Post("/properties/:id", d.PropertyHandler.Update)
	admin.Post("/properties/:id/delete", d.PropertyHandler.Delete)

	admin.Post("/staging/:form", d.StagingHandler.Add)
	admin.Post("/staging/:form/:index/delete", d.StagingHandler.Remove)
	admin.Get("/staging/preview/:id", d.StagingHandler.Preview)

	admin.Get("/taxonomy", d.CategoryHandler.Page)
	admin.Post("/categories", d.CategoryHandler.AddCategory)
	admin.Post("/districts", d.CategoryHandler.AddDistrict)

	app.Use(func(c *fiber.Ctx) error {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "Page not found"})
	})
}
