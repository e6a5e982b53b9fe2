package main

import (
	"io"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	flag "github.com/spf13/pflag"

	"estateadmin/internal/apiclient"
	"estateadmin/internal/config"
	"estateadmin/internal/http/handlers"
	applog "estateadmin/internal/log"
	"estateadmin/internal/repos"
	"estateadmin/internal/services"
	"estateadmin/internal/session"
	"estateadmin/internal/staging"
)

func main() {
	envFile := flag.String("env-file", "", "env file to load before reading the environment (default .env)")
	addr := flag.String("addr", "", "listen address, overrides PORT")
	dev := flag.Bool("dev", false, "reload templates on every request")
	flag.Parse()

	cfg := config.Load(*envFile)
	if *addr == "" {
		*addr = ":" + cfg.Port
	}

	// Optional file logging
	out := io.Writer(os.Stdout)
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			log.Printf("[warn] could not open log file %s: %v", cfg.LogFile, err)
		} else {
			defer f.Close()
			out = io.MultiWriter(os.Stdout, f)
		}
	}
	applog.Setup(cfg.LogLevel, out)
	lg := applog.Logger()

	db, err := repos.OpenDB(cfg.Session.DBDSN)
	if err != nil {
		lg.WithError(err).Fatal("db.open.fail")
	}
	defer db.Close()

	sealer, err := session.NewSealer(cfg.Session.Secret)
	if err != nil {
		lg.WithError(err).Fatal("session.sealer.fail")
	}
	manager := session.NewManager(repos.NewSessionRepo(db), sealer)

	reg, err := staging.NewRegistry(cfg.Staging.Dir, cfg.Staging.MaxFiles, int64(cfg.Staging.MaxFileBytes))
	if err != nil {
		lg.WithError(err).Fatal("staging.init.fail")
	}

	sweeper, err := session.NewSweeper(manager, cfg.Session.SweepInterval, reg.DiscardSession, lg)
	if err != nil {
		lg.WithError(err).Fatal("session.sweeper.fail")
	}
	sweeper.Start()
	defer sweeper.Stop()

	api := apiclient.New(cfg.API.BaseURL, cfg.API.Timeout)
	authSvc := services.NewAuthService(api, manager, reg)

	// Templates & app
	engine := handlers.NewEngine(cfg.TemplatesDir)
	engine.Reload(*dev)

	app := fiber.New(fiber.Config{
		Views:       engine,
		JSONEncoder: json.Marshal,
		JSONDecoder: json.Unmarshal,
		// every staged image plus the text fields
		BodyLimit: cfg.Staging.MaxFiles*cfg.Staging.MaxFileBytes + 1<<20,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			applog.Error(c, "server.error", err, map[string]any{"code": code})
			// Avoid leaking internals; best-effort render
			if rerr := c.Status(code).Render("notfound", fiber.Map{
				"Message": "Something went wrong. Please try again.",
			}); rerr != nil {
				return c.Status(code).SendString("Something went wrong. Please try again.")
			}
			return nil
		},
	})

	// ---------- Middlewares ----------
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(logger.New(logger.Config{Output: out}))
	app.Use(helmet.New())
	app.Use(limiter.New(limiter.Config{
		Max:        120,
		Expiration: time.Minute,
		Next: func(c *fiber.Ctx) bool {
			p := string(c.Request().URI().Path())
			return strings.HasPrefix(p, "/static/") || strings.HasPrefix(p, "/staging/preview/")
		},
	}))
	app.Use(csrf.New(csrf.Config{
		KeyLookup:      "form:csrf",
		ContextKey:     "csrf",
		CookieName:     "csrf_",
		CookieSameSite: "Lax",
		CookieSecure:   cfg.Session.CookieSecure,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			applog.Security(c, "csrf.fail", map[string]any{"err": err.Error()})
			return c.Status(fiber.StatusForbidden).Render("notfound", fiber.Map{"Message": "Security check failed. Please refresh and try again."})
		},
	}))

	app.Static("/static", cfg.StaticDir)

	deps := handlers.NewDeps(api, authSvc, reg, cfg.Session.CookieSecure)
	deps.Mount(app)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		lg.Info("server.shutdown")
		_ = app.ShutdownWithTimeout(10 * time.Second)
	}()

	lg.WithField("addr", *addr).WithField("api", cfg.API.BaseURL).Info("server.start")
	if err := app.Listen(*addr); err != nil {
		lg.WithError(err).Error("server.listen.fail")
	}
}
