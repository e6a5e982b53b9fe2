package handlers_test

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
)

func TestStagingPreviewServesStagedFile(t *testing.T) {
	h := newHarness(t)
	h.login()
	h.postMultipart("/staging/new", nil, image("front"))

	previews := h.reg.Stage(h.sid, "new").Previews()
	require.Len(t, previews, 1)

	resp, _ := h.get(previews[0])
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Equal(t, "image/png", resp.Header.Get("Content-Type"))

	resp, _ = h.get("/staging/preview/unknown")
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestStagingRejectsNonImages(t *testing.T) {
	h := newHarness(t)
	h.login()

	resp, _ := h.postMultipart("/staging/new", nil, image("front"), upload{name: "notes.txt", data: []byte("plain text notes")})
	require.Equal(t, fiber.StatusFound, resp.StatusCode)
	require.Equal(t, "err:Only image files can be attached.", flash(t, resp))
	require.Zero(t, h.reg.Live())
}

func TestStagingLimit(t *testing.T) {
	h := newHarness(t)
	h.login()

	h.postMultipart("/staging/new", nil, image("1"), image("2"), image("3"), image("4"), image("5"))
	require.Equal(t, 5, h.reg.Live())
	resp, _ := h.postMultipart("/staging/new", nil, image("6"))
	require.Contains(t, flash(t, resp), "Too many images")
	require.Equal(t, 5, h.reg.Live())
}

func TestStagingRemoveKeepsOthersInOrder(t *testing.T) {
	h := newHarness(t)
	h.login()
	h.postMultipart("/staging/edit-p-9", nil, image("a"), image("b"), image("c"))

	resp, _ := h.postForm("/staging/edit-p-9/1/delete", nil)
	require.Equal(t, fiber.StatusFound, resp.StatusCode)
	require.Equal(t, "/properties/p-9/edit", resp.Header.Get("Location"))

	files := h.reg.Stage(h.sid, "edit-p-9").Files()
	require.Len(t, files, 2)
	require.Equal(t, "a.png", files[0].Name)
	require.Equal(t, "c.png", files[1].Name)

	resp, _ = h.postForm("/staging/edit-p-9/7/delete", nil)
	require.Contains(t, flash(t, resp), "no longer staged")
	require.Equal(t, 2, h.reg.Live())
}

func TestStagingFormsAreSeparate(t *testing.T) {
	h := newHarness(t)
	h.login()
	h.postMultipart("/staging/new", nil, image("a"))
	h.postMultipart("/staging/edit-p-9", nil, image("b"))

	require.Equal(t, 1, h.reg.Stage(h.sid, "new").Len())
	require.Equal(t, 1, h.reg.Stage(h.sid, "edit-p-9").Len())
	require.Zero(t, h.reg.Stage("someone-else", "new").Len())
}

func TestStagingRejectsUnknownFormKey(t *testing.T) {
	h := newHarness(t)
	h.login()
	resp, body := h.postMultipart("/staging/bogus", nil, image("a"))
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	require.Contains(t, body, "Page not found")
	require.Zero(t, h.reg.Live())
}
