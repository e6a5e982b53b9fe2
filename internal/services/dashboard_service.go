package services

import (
	"golang.org/x/sync/errgroup"

	"estateadmin/internal/domain"
)

// Dashboard is the raw data behind the overview screen.
type Dashboard struct {
	Properties     []domain.Property
	Users          []domain.User
	Stats          []domain.PropertyStat
	CategoryCounts []domain.TaxonomyCount
	DistrictCounts []domain.TaxonomyCount
}

type DashboardService struct {
	API ListingAPI
}

func NewDashboardService(api ListingAPI) *DashboardService {
	return &DashboardService{API: api}
}

// Load fetches the five datasets concurrently and fails if any of them does.
func (s *DashboardService) Load() (Dashboard, error) {
	var d Dashboard
	var g errgroup.Group
	g.Go(func() (err error) {
		d.Properties, err = s.API.ListProperties()
		return err
	})
	g.Go(func() (err error) {
		d.Users, err = s.API.ListUsers()
		return err
	})
	g.Go(func() (err error) {
		d.Stats, err = s.API.PropertyStats()
		return err
	})
	g.Go(func() (err error) {
		d.CategoryCounts, err = s.API.PropertiesPerCategory()
		return err
	})
	g.Go(func() (err error) {
		d.DistrictCounts, err = s.API.PropertiesPerDistrict()
		return err
	})
	if err := g.Wait(); err != nil {
		return Dashboard{}, err
	}
	return d, nil
}

func (s *DashboardService) Users() ([]domain.User, error) {
	return s.API.ListUsers()
}
