package services

import (
	"fmt"

	"estateadmin/internal/domain"
)

// CommissionForm is what the edit form carries for the commission of a sold
// property.
type CommissionForm struct {
	Amount int64
	Notes  string
}

type CommissionService struct {
	API ListingAPI
}

func NewCommissionService(api ListingAPI) *CommissionService {
	return &CommissionService{API: api}
}

// For returns the commission recorded for a property, or nil.
func (s *CommissionService) For(propertyID string) (*domain.Commission, error) {
	return s.API.CommissionByProperty(propertyID)
}

// Clear deletes the commission of propertyID and returns what was removed so
// it can be restored. Nothing to delete is not an error.
func (s *CommissionService) Clear(propertyID string) (*domain.Commission, error) {
	c, err := s.API.CommissionByProperty(propertyID)
	if err != nil || c == nil {
		return nil, err
	}
	if err := s.API.DeleteCommission(c.ID); err != nil {
		return nil, err
	}
	return c, nil
}

// Upsert creates the commission of propertyID, or updates the one already
// recorded.
func (s *CommissionService) Upsert(propertyID string, f CommissionForm) (domain.Commission, error) {
	in := domain.CommissionInput{PostID: propertyID, Amount: f.Amount, Notes: f.Notes}
	existing, err := s.API.CommissionByProperty(propertyID)
	if err != nil {
		return domain.Commission{}, err
	}
	if existing == nil {
		return s.API.CreateCommission(in)
	}
	return s.API.UpdateCommission(existing.ID, in)
}

// Restore recreates a commission removed by Clear.
func (s *CommissionService) Restore(c *domain.Commission) error {
	if c == nil {
		return nil
	}
	_, err := s.API.CreateCommission(domain.CommissionInput{PostID: c.PostID, Amount: c.Amount, Notes: c.Notes})
	if err != nil {
		return fmt.Errorf("restore commission %s: %w", c.ID, err)
	}
	return nil
}
