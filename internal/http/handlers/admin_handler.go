package handlers

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"estateadmin/internal/apiclient"
	applog "estateadmin/internal/log"
	"estateadmin/internal/services"
	"estateadmin/internal/viewmodel"
)

type AdminHandler struct {
	API  *apiclient.Client
	Auth *services.AuthService
}

// GET /
func (h *AdminHandler) Dashboard(c *fiber.Ctx) error {
	d, err := services.NewDashboardService(client(c, h.API)).Load()
	if err != nil {
		if done, rerr := expired(c, h.Auth, err); done {
			return rerr
		}
		applog.Error(c, "dashboard.load.fail", err, nil)
		return render(c.Status(fiber.StatusBadGateway), "dashboard", fiber.Map{
			"Err": apiclient.UserMessage(err, "Could not load the dashboard. Please refresh."),
		})
	}

	times := append(viewmodel.StatTimes(d.Stats), viewmodel.UserTimes(d.Users)...)
	years := viewmodel.Years(times)
	year := pickYear(c.Query("year"), years)

	sold, available := viewmodel.SoldCounts(d.Stats)
	f := viewmodel.DefaultFilter()
	f.Query = c.Query("q")
	listing := viewmodel.Apply(d.Properties, f)

	return render(c, "dashboard", fiber.Map{
		"TotalProperties": len(d.Stats),
		"TotalUsers":      len(d.Users),
		"Sold":            sold,
		"Available":       available,
		"Year":            year,
		"Years":           years,
		"Users":           viewmodel.NewSeries("New users", viewmodel.UserTimes(d.Users), year),
		"Listings":        viewmodel.NewSeries("New properties", viewmodel.StatTimes(d.Stats), year),
		"Categories":      viewmodel.Shares(d.CategoryCounts),
		"Districts":       viewmodel.Shares(d.DistrictCounts),
		"Properties":      listing,
		"Query":           f.Query,
	})
}

// pickYear honours a requested year, else the current year when it has data,
// else the newest year with data.
func pickYear(raw string, years []int) int {
	if y, err := strconv.Atoi(raw); err == nil && y > 1900 && y < 3000 {
		return y
	}
	now := time.Now().Year()
	for _, y := range years {
		if y == now {
			return now
		}
	}
	if len(years) > 0 {
		return years[0]
	}
	return now
}

// GET /users
func (h *AdminHandler) Users(c *fiber.Ctx) error {
	users, err := services.NewDashboardService(client(c, h.API)).Users()
	if err != nil {
		if done, rerr := expired(c, h.Auth, err); done {
			return rerr
		}
		applog.Error(c, "users.list.fail", err, nil)
		return render(c.Status(fiber.StatusBadGateway), "users", fiber.Map{
			"Err": apiclient.UserMessage(err, "Failed to fetch user data. Please try again."),
		})
	}
	return render(c, "users", fiber.Map{"Users": users})
}
