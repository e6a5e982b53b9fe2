package handlers

import (
	"errors"
	"io"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"estateadmin/internal/domain"
	"estateadmin/internal/log"
	"estateadmin/internal/staging"
	"estateadmin/internal/validate"
)

// StagingHandler lets an admin pick images for a property form, preview them
// and drop some before the form is saved.
type StagingHandler struct {
	Staging *staging.Registry
}

// POST /staging/:form
func (h *StagingHandler) Add(c *fiber.Ctx) error {
	key, ok := validate.FormKey(c.Params("form"))
	if !ok {
		log.Security(c, "validation.fail", map[string]any{"field": "staging_form"})
		return notFound(c, "Page not found")
	}
	stage := h.Staging.Stage(c.Cookies(sidCookie), key)
	if err := stageUploads(c, stage); err != nil {
		log.Security(c, "staging.append.fail", map[string]any{"form": key, "err": err.Error()})
		setFlash(c, "err", stagingMessage(err))
	} else {
		log.Info(c, "staging.append", map[string]any{"form": key, "staged": stage.Len()})
	}
	return c.Redirect(formURL(key))
}

// POST /staging/:form/:index/delete
func (h *StagingHandler) Remove(c *fiber.Ctx) error {
	key, ok := validate.FormKey(c.Params("form"))
	if !ok {
		log.Security(c, "validation.fail", map[string]any{"field": "staging_form"})
		return notFound(c, "Page not found")
	}
	i, err := strconv.Atoi(c.Params("index"))
	if err == nil {
		err = h.Staging.Stage(c.Cookies(sidCookie), key).Remove(i)
	}
	if err != nil {
		log.Security(c, "staging.remove.fail", map[string]any{"form": key, "index": c.Params("index")})
		setFlash(c, "err", "That image is no longer staged.")
	}
	return c.Redirect(formURL(key))
}

// GET /staging/preview/:id
func (h *StagingHandler) Preview(c *fiber.Ctx) error {
	f, ok := h.Staging.Preview(c.Params("id"))
	if !ok {
		return c.SendStatus(fiber.StatusNotFound)
	}
	c.Set(fiber.HeaderContentType, f.MIME)
	c.Set(fiber.HeaderCacheControl, "no-store")
	return c.SendFile(f.Path)
}

// stageUploads appends the files posted in the "images" field, if any.
func stageUploads(c *fiber.Ctx, stage *staging.Stage) error {
	form, err := c.MultipartForm()
	if err != nil {
		// not a multipart post, so nothing to stage
		return nil
	}
	headers := form.File["images"]
	in := make([]staging.Incoming, 0, len(headers))
	var closers []io.Closer
	defer func() {
		for _, cl := range closers {
			_ = cl.Close()
		}
	}()
	for _, fh := range headers {
		if fh.Size == 0 && fh.Filename == "" {
			continue
		}
		f, err := fh.Open()
		if err != nil {
			return err
		}
		closers = append(closers, f)
		in = append(in, staging.Incoming{Name: fh.Filename, Data: f})
	}
	if len(in) == 0 {
		return nil
	}
	return stage.Append(in...)
}

func stagingMessage(err error) string {
	switch {
	case errors.Is(err, domain.ErrNotImage):
		return "Only image files can be attached."
	case errors.Is(err, domain.ErrTooLarge):
		return "One of the images is too large."
	case errors.Is(err, domain.ErrStageFull):
		return "Too many images are staged. Remove some first."
	}
	return "Could not attach the images. Please retry."
}

// formValues returns every value posted under key, for multipart and
// urlencoded bodies alike.
func formValues(c *fiber.Ctx, key string) []string {
	if form, err := c.MultipartForm(); err == nil {
		return form.Value[key]
	}
	var out []string
	for _, v := range c.Request().PostArgs().PeekMulti(key) {
		out = append(out, string(v))
	}
	return out
}

// formGetter adapts c.FormValue to a plain lookup.
func formGetter(c *fiber.Ctx) func(string) string {
	return func(key string) string { return c.FormValue(key) }
}
