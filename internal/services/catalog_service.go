package services

import (
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"estateadmin/internal/domain"
)

// CatalogService serves the categories and districts properties are filed
// under.
type CatalogService struct {
	API ListingAPI
}

func NewCatalogService(api ListingAPI) *CatalogService {
	return &CatalogService{API: api}
}

// Taxonomy is everything the category/district screen and the property form
// selectors show.
type Taxonomy struct {
	Categories     []domain.Category
	Districts      []domain.District
	CategoryCounts []domain.TaxonomyCount
	DistrictCounts []domain.TaxonomyCount
}

// Selectors loads the category and district lists concurrently.
func (s *CatalogService) Selectors() (Taxonomy, error) {
	var t Taxonomy
	var g errgroup.Group
	g.Go(func() (err error) {
		t.Categories, err = s.API.ListCategories()
		return err
	})
	g.Go(func() (err error) {
		t.Districts, err = s.API.ListDistricts()
		return err
	})
	if err := g.Wait(); err != nil {
		return Taxonomy{}, err
	}
	sortTaxonomy(&t)
	return t, nil
}

// Overview is Selectors plus per-category and per-district property counts.
func (s *CatalogService) Overview() (Taxonomy, error) {
	var t Taxonomy
	var g errgroup.Group
	g.Go(func() (err error) {
		t.Categories, err = s.API.ListCategories()
		return err
	})
	g.Go(func() (err error) {
		t.Districts, err = s.API.ListDistricts()
		return err
	})
	g.Go(func() (err error) {
		t.CategoryCounts, err = s.API.PropertiesPerCategory()
		return err
	})
	g.Go(func() (err error) {
		t.DistrictCounts, err = s.API.PropertiesPerDistrict()
		return err
	})
	if err := g.Wait(); err != nil {
		return Taxonomy{}, err
	}
	sortTaxonomy(&t)
	return t, nil
}

func sortTaxonomy(t *Taxonomy) {
	sort.SliceStable(t.Categories, func(i, j int) bool { return t.Categories[i].Name < t.Categories[j].Name })
	sort.SliceStable(t.Districts, func(i, j int) bool { return t.Districts[i].Name < t.Districts[j].Name })
}

// AddCategory stores name lowercased, as the listing API matches on it.
func (s *CatalogService) AddCategory(adminID, name, description string) error {
	return s.API.CreateCategory(adminID, strings.ToLower(strings.TrimSpace(name)), strings.TrimSpace(description))
}

func (s *CatalogService) AddDistrict(adminID, name string) error {
	return s.API.CreateDistrict(adminID, strings.ToLower(strings.TrimSpace(name)))
}
