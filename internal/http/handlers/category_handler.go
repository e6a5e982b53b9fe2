package handlers

import (
	"github.com/gofiber/fiber/v2"

	"estateadmin/internal/apiclient"
	"estateadmin/internal/log"
	"estateadmin/internal/services"
	"estateadmin/internal/validate"
	"estateadmin/internal/viewmodel"
)

// CategoryHandler manages the categories and districts properties are filed
// under.
type CategoryHandler struct {
	API  *apiclient.Client
	Auth *services.AuthService
}

// GET /taxonomy
func (h *CategoryHandler) Page(c *fiber.Ctx) error {
	t, err := services.NewCatalogService(client(c, h.API)).Overview()
	if err != nil {
		if done, rerr := expired(c, h.Auth, err); done {
			return rerr
		}
		log.Error(c, "taxonomy.load.fail", err, nil)
		return render(c.Status(fiber.StatusBadGateway), "taxonomy", fiber.Map{
			"Err": apiclient.UserMessage(err, "Could not load categories and districts."),
		})
	}
	return render(c, "taxonomy", fiber.Map{
		"Categories":     t.Categories,
		"Districts":      t.Districts,
		"CategoryShares": viewmodel.Shares(t.CategoryCounts),
		"DistrictShares": viewmodel.Shares(t.DistrictCounts),
	})
}

// POST /categories
func (h *CategoryHandler) AddCategory(c *fiber.Ctx) error {
	name, ok := validate.Name(c.FormValue("name"))
	desc, okDesc := validate.Description(c.FormValue("description"), 500)
	if !ok || !okDesc {
		log.Security(c, "validation.fail", map[string]any{"field": "category"})
		setFlash(c, "err", "Enter a category name using letters, digits and spaces.")
		return c.Redirect("/taxonomy")
	}
	if err := services.NewCatalogService(client(c, h.API)).AddCategory(adminID(c), name, desc); err != nil {
		if done, rerr := expired(c, h.Auth, err); done {
			return rerr
		}
		log.Error(c, "taxonomy.category.add.fail", err, map[string]any{"name": name})
		setFlash(c, "err", apiclient.UserMessage(err, "Failed to add category"))
		return c.Redirect("/taxonomy")
	}
	log.Audit(c, "taxonomy.category.add", map[string]any{"name": name})
	setFlash(c, "ok", "Category added")
	return c.Redirect("/taxonomy")
}

// POST /districts
func (h *CategoryHandler) AddDistrict(c *fiber.Ctx) error {
	name, ok := validate.Name(c.FormValue("name"))
	if !ok {
		log.Security(c, "validation.fail", map[string]any{"field": "district"})
		setFlash(c, "err", "Enter a district name using letters, digits and spaces.")
		return c.Redirect("/taxonomy")
	}
	if err := services.NewCatalogService(client(c, h.API)).AddDistrict(adminID(c), name); err != nil {
		if done, rerr := expired(c, h.Auth, err); done {
			return rerr
		}
		log.Error(c, "taxonomy.district.add.fail", err, map[string]any{"name": name})
		setFlash(c, "err", apiclient.UserMessage(err, "Failed to add district"))
		return c.Redirect("/taxonomy")
	}
	log.Audit(c, "taxonomy.district.add", map[string]any{"name": name})
	setFlash(c, "ok", "District added")
	return c.Redirect("/taxonomy")
}
