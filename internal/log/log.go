package log

import (
	"io"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"estateadmin/internal/domain"
)

var logger = newLogger(os.Stdout)

func newLogger(w io.Writer) *logrus.Logger {
	l := logrus.New()
	l.SetFormatter(&logrus.JSONFormatter{
		TimestampFormat: "2006-01-02T15:04:05Z07:00",
		FieldMap: logrus.FieldMap{
			logrus.FieldKeyTime: "ts",
			logrus.FieldKeyMsg:  "action",
		},
	})
	l.SetOutput(w)
	l.SetLevel(logrus.InfoLevel)
	return l
}

// Setup points the logger at w and sets its level. Unknown levels keep info.
func Setup(level string, w io.Writer) {
	logger.SetOutput(w)
	if lvl, err := logrus.ParseLevel(level); err == nil {
		logger.SetLevel(lvl)
	}
}

// Logger exposes the underlying logger for components without a request
// context (cron jobs, startup).
func Logger() *logrus.Logger { return logger }

func entry(c *fiber.Ctx, fields map[string]any) *logrus.Entry {
	e := logrus.NewEntry(logger)
	if len(fields) > 0 {
		e = e.WithField("fields", fields)
	}
	if c == nil {
		return e
	}
	f := logrus.Fields{
		"ip":     c.IP(),
		"method": c.Method(),
		"path":   c.Path(),
	}
	if st := c.Response().StatusCode(); st != 0 {
		f["status"] = st
	}
	if rid, ok := c.Locals("requestid").(string); ok && rid != "" {
		f["req_id"] = rid
	}
	if p, ok := c.Locals("principal").(*domain.Principal); ok && p != nil {
		f["admin_id"] = p.ID
	}
	return e.WithFields(f)
}

func Info(c *fiber.Ctx, action string, fields map[string]any) { entry(c, fields).Info(action) }

func Audit(c *fiber.Ctx, action string, fields map[string]any) {
	entry(c, fields).WithField("audit", true).Info(action)
}

func Security(c *fiber.Ctx, action string, fields map[string]any) {
	entry(c, fields).Warn(action)
}

func Error(c *fiber.Ctx, action string, err error, fields map[string]any) {
	e := entry(c, fields)
	if err != nil {
		e = e.WithField("err", err.Error())
	}
	e.Error(action)
}
