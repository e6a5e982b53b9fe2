package handlers

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"estateadmin/internal/apiclient"
	"estateadmin/internal/domain"
	"estateadmin/internal/log"
	"estateadmin/internal/services"
	"estateadmin/internal/staging"
	"estateadmin/internal/validate"
	"estateadmin/internal/viewmodel"
)

type PropertyHandler struct {
	API     *apiclient.Client
	Auth    *services.AuthService
	Staging *staging.Registry
}

// formView is everything the create/edit template needs.
type formView struct {
	Editing    bool
	ID         string
	Action     string
	FormKey    string
	Input      domain.PropertyInput
	Kept       []string
	Staged     []stagedView
	Commission string
	Notes      string
	Errors     validate.Errors
	Taxonomy   services.Taxonomy
	Err        string
}

type stagedView struct {
	Index   int
	Preview string
	Name    string
	Size    int64
}

func stagedViews(s *staging.Stage) []stagedView {
	files, previews := s.Files(), s.Previews()
	out := make([]stagedView, len(files))
	for i, f := range files {
		out[i] = stagedView{Index: i, Preview: previews[i], Name: f.Name, Size: f.Size}
	}
	return out
}

func formKey(id string) string {
	if id == "" {
		return "new"
	}
	return "edit-" + id
}

// formURL is the page a staging form key belongs to.
func formURL(key string) string {
	if id, ok := strings.CutPrefix(key, "edit-"); ok {
		return "/properties/" + id + "/edit"
	}
	return "/properties/new"
}

// GET /properties
func (h *PropertyHandler) List(c *fiber.Ctx) error {
	f := viewmodel.ParseFilter(func(k string) string { return c.Query(k) })
	props, err := services.NewPropertyService(client(c, h.API)).List()
	if err != nil {
		if done, rerr := expired(c, h.Auth, err); done {
			return rerr
		}
		log.Error(c, "properties.list.fail", err, nil)
		return render(c.Status(fiber.StatusBadGateway), "properties", fiber.Map{
			"Filter":  f,
			"Buckets": viewmodel.Buckets(),
			"Options": viewmodel.Options{},
			"Err":     "Failed to fetch properties. Please check your internet connection.",
		})
	}
	visible := viewmodel.Apply(props, f)
	return render(c, "properties", fiber.Map{
		"Filter":     f,
		"Buckets":    viewmodel.Buckets(),
		"Options":    viewmodel.OptionsOf(props),
		"Properties": visible,
		"Summary":    viewmodel.Summarize(visible),
		"Total":      len(props),
		"Empty":      len(props) == 0,
	})
}

// GET /properties/:id
func (h *PropertyHandler) Detail(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		log.Security(c, "validation.fail", map[string]any{"field": "property"})
		return notFound(c, "This property is no longer available")
	}
	p, cm, err := services.NewPropertyService(client(c, h.API)).Detail(id)
	if err != nil {
		return h.loadFailed(c, "properties.detail.fail", id, err)
	}
	return render(c, "property", fiber.Map{"P": p, "Commission": cm})
}

func (h *PropertyHandler) loadFailed(c *fiber.Ctx, action, id string, err error) error {
	if done, rerr := expired(c, h.Auth, err); done {
		return rerr
	}
	if errors.Is(err, domain.ErrNotFound) {
		return notFound(c, "This property is no longer available")
	}
	log.Error(c, action, err, map[string]any{"property_id": id})
	return c.Status(fiber.StatusBadGateway).Render("notfound", fiber.Map{
		"Message": "Failed to load property data. Please try again later.",
	})
}

// GET /properties/new
func (h *PropertyHandler) New(c *fiber.Ctx) error {
	key := formKey("")
	return h.renderForm(c, fiber.StatusOK, formView{
		Action:  "/properties",
		FormKey: key,
		Input:   domain.PropertyInput{Type: domain.TypeSale},
		Staged:  stagedViews(h.Staging.Stage(c.Cookies(sidCookie), key)),
	})
}

// POST /properties
func (h *PropertyHandler) Create(c *fiber.Ctx) error {
	key := formKey("")
	stage := h.Staging.Stage(c.Cookies(sidCookie), key)
	v := formView{Action: "/properties", FormKey: key}

	if err := stageUploads(c, stage); err != nil {
		log.Security(c, "staging.append.fail", map[string]any{"err": err.Error()})
		v.Err = stagingMessage(err)
	}
	in, amount, errs := validate.Property(formGetter(c), stage.Len())
	v.Input, v.Errors = in, errs
	v.Commission, v.Notes = c.FormValue("commission"), c.FormValue("commissionNotes")
	if len(errs) > 0 || v.Err != "" {
		log.Info(c, "properties.create.invalid", map[string]any{"fields": fieldNames(errs)})
		v.Staged = stagedViews(stage)
		return h.renderForm(c, fiber.StatusUnprocessableEntity, v)
	}

	res, err := services.NewPropertyService(client(c, h.API)).Save(services.SaveRequest{
		AdminID:    adminID(c),
		Input:      in,
		Stage:      stage,
		Commission: services.CommissionForm{Amount: amount, Notes: strings.TrimSpace(v.Notes)},
	})
	if err != nil {
		if done, rerr := expired(c, h.Auth, err); done {
			return rerr
		}
		log.Error(c, "properties.create.fail", err, nil)
		v.Err = services.Describe(err)
		v.Staged = stagedViews(stage)
		return h.renderForm(c, fiber.StatusBadGateway, v)
	}

	h.Staging.Discard(c.Cookies(sidCookie), key)
	log.Audit(c, "properties.create", map[string]any{"property_id": res.Property.ID, "sold": in.IsSold})
	flashSaved(c, "Property added successfully!", res.Warnings)
	if res.Property.ID == "" {
		return c.Redirect("/properties")
	}
	return c.Redirect("/properties/" + res.Property.ID)
}

// GET /properties/:id/edit
func (h *PropertyHandler) Edit(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		log.Security(c, "validation.fail", map[string]any{"field": "property"})
		return notFound(c, "This property is no longer available")
	}
	p, cm, err := services.NewPropertyService(client(c, h.API)).Detail(id)
	if err != nil {
		return h.loadFailed(c, "properties.edit.load.fail", id, err)
	}
	key := formKey(id)
	v := formView{
		Editing: true,
		ID:      id,
		Action:  "/properties/" + id,
		FormKey: key,
		Input:   domain.InputFrom(p),
		Kept:    p.Images,
		Staged:  stagedViews(h.Staging.Stage(c.Cookies(sidCookie), key)),
	}
	if cm != nil {
		v.Commission = strconv.FormatInt(cm.Amount, 10)
		v.Notes = cm.Notes
	}
	return h.renderForm(c, fiber.StatusOK, v)
}

// POST /properties/:id
func (h *PropertyHandler) Update(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		log.Security(c, "validation.fail", map[string]any{"field": "property"})
		return notFound(c, "This property is no longer available")
	}
	svc := services.NewPropertyService(client(c, h.API))
	prev, err := svc.API.GetProperty(id)
	if err != nil {
		return h.loadFailed(c, "properties.update.load.fail", id, err)
	}

	key := formKey(id)
	stage := h.Staging.Stage(c.Cookies(sidCookie), key)
	v := formView{Editing: true, ID: id, Action: "/properties/" + id, FormKey: key}
	if err := stageUploads(c, stage); err != nil {
		log.Security(c, "staging.append.fail", map[string]any{"err": err.Error()})
		v.Err = stagingMessage(err)
	}

	keep, removed := splitImages(prev.Images, formValues(c, "keep"))
	in, amount, errs := validate.Property(formGetter(c), len(keep)+stage.Len())
	in.Images = keep
	v.Input, v.Kept, v.Errors = in, keep, errs
	v.Commission, v.Notes = c.FormValue("commission"), c.FormValue("commissionNotes")
	if len(errs) > 0 || v.Err != "" {
		log.Info(c, "properties.update.invalid", map[string]any{"property_id": id, "fields": fieldNames(errs)})
		v.Staged = stagedViews(stage)
		return h.renderForm(c, fiber.StatusUnprocessableEntity, v)
	}

	res, err := svc.Save(services.SaveRequest{
		AdminID:    adminID(c),
		Previous:   &prev,
		Input:      in,
		Removed:    removed,
		Stage:      stage,
		Commission: services.CommissionForm{Amount: amount, Notes: strings.TrimSpace(v.Notes)},
	})
	if err != nil {
		if done, rerr := expired(c, h.Auth, err); done {
			return rerr
		}
		log.Error(c, "properties.update.fail", err, map[string]any{"property_id": id})
		v.Err = services.Describe(err)
		v.Staged = stagedViews(stage)
		return h.renderForm(c, fiber.StatusBadGateway, v)
	}

	h.Staging.Discard(c.Cookies(sidCookie), key)
	log.Audit(c, "properties.update", map[string]any{
		"property_id": id, "sold": in.IsSold, "was_sold": prev.IsSold, "images_removed": len(removed),
	})
	flashSaved(c, "Property updated successfully!", res.Warnings)
	return c.Redirect("/properties/" + id)
}

// POST /properties/:id/delete
func (h *PropertyHandler) Delete(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		log.Security(c, "validation.fail", map[string]any{"field": "property"})
		return notFound(c, "This property is no longer available")
	}
	if err := services.NewPropertyService(client(c, h.API)).Delete(id); err != nil {
		if done, rerr := expired(c, h.Auth, err); done {
			return rerr
		}
		log.Error(c, "properties.delete.fail", err, map[string]any{"property_id": id})
		setFlash(c, "err", apiclient.UserMessage(err, "Could not delete the property."))
		return c.Redirect("/properties/" + id)
	}
	h.Staging.Discard(c.Cookies(sidCookie), formKey(id))
	log.Audit(c, "properties.delete", map[string]any{"property_id": id})
	setFlash(c, "ok", "Property deleted")
	return c.Redirect("/properties")
}

func (h *PropertyHandler) renderForm(c *fiber.Ctx, status int, v formView) error {
	t, err := services.NewCatalogService(client(c, h.API)).Selectors()
	if err != nil {
		if done, rerr := expired(c, h.Auth, err); done {
			return rerr
		}
		log.Error(c, "properties.form.selectors.fail", err, nil)
		if v.Err == "" {
			v.Err = "Could not load categories and districts. Please refresh."
		}
	}
	v.Taxonomy = t
	if v.Errors == nil {
		v.Errors = validate.Errors{}
	}
	return render(c.Status(status), "property_form", fiber.Map{"F": v})
}

func flashSaved(c *fiber.Ctx, msg string, warnings []string) {
	if len(warnings) > 0 {
		setFlash(c, "err", msg+" "+strings.Join(warnings, " "))
		return
	}
	setFlash(c, "ok", msg)
}

// splitImages keeps the persisted images the form still lists, in their
// original order, and returns the rest as removed. Unknown values are ignored.
func splitImages(persisted, listed []string) (keep, removed []string) {
	keep = []string{}
	for _, img := range persisted {
		if contains(listed, img) {
			keep = append(keep, img)
		} else {
			removed = append(removed, img)
		}
	}
	return keep, removed
}

func fieldNames(errs validate.Errors) []string {
	out := make([]string, 0, len(errs))
	for k := range errs {
		out = append(out, k)
	}
	return out
}
