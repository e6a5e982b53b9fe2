package services

import (
	"estateadmin/internal/apiclient"
	"estateadmin/internal/domain"
)

//go:generate mockgen -destination=mocks/listing_api.go -package=mocks estateadmin/internal/services ListingAPI

// ListingAPI is the part of the remote listing API the services drive.
// *apiclient.Client satisfies it.
type ListingAPI interface {
	ListProperties() ([]domain.Property, error)
	GetProperty(id string) (domain.Property, error)
	CreateProperty(adminID string, in domain.PropertyInput) (domain.Property, error)
	UpdateProperty(id string, in domain.PropertyInput) (domain.Property, error)
	DeleteProperty(id string) error

	UploadImages(files []apiclient.Upload) ([]string, error)
	DeleteImages(urls []string) error

	ListCategories() ([]domain.Category, error)
	CreateCategory(adminID, name, description string) error
	ListDistricts() ([]domain.District, error)
	CreateDistrict(adminID, name string) error
	ListUsers() ([]domain.User, error)

	PropertiesPerCategory() ([]domain.TaxonomyCount, error)
	PropertiesPerDistrict() ([]domain.TaxonomyCount, error)
	PropertyStats() ([]domain.PropertyStat, error)

	CommissionByProperty(propertyID string) (*domain.Commission, error)
	CreateCommission(in domain.CommissionInput) (domain.Commission, error)
	UpdateCommission(id string, in domain.CommissionInput) (domain.Commission, error)
	DeleteCommission(id string) error
}

var _ ListingAPI = (*apiclient.Client)(nil)
