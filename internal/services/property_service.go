package services

import (
	"errors"
	"fmt"

	"estateadmin/internal/apiclient"
	"estateadmin/internal/domain"
	"estateadmin/internal/staging"
)

// Steps of a property save, as reported in StepError.
const (
	StepUpload     = "upload images"
	StepSave       = "save property"
	StepCommission = "update commission"
	StepCleanup    = "remove images"
)

// StepError reports the write that failed during a multi-step save and, if
// undoing the earlier writes also failed, why.
type StepError struct {
	Step     string
	Err      error
	Rollback error

	// written is set when a property write stands because its rollback failed.
	written bool
}

func (e *StepError) Error() string {
	if e.Rollback != nil {
		return fmt.Sprintf("%s: %v (rollback failed: %v)", e.Step, e.Err, e.Rollback)
	}
	return fmt.Sprintf("%s: %v", e.Step, e.Err)
}

func (e *StepError) Unwrap() error { return e.Err }

// Describe turns a save error into a notification for the admin.
func Describe(err error) string {
	var se *StepError
	if !errors.As(err, &se) {
		return apiclient.UserMessage(err, "Something went wrong. Please retry.")
	}
	msg := apiclient.UserMessage(se.Err, "Could not "+se.Step+".")
	if se.Rollback != nil {
		msg += " Undoing the earlier changes also failed; please review this property."
	}
	return msg
}

// SaveRequest is one submit of the create or edit form.
type SaveRequest struct {
	AdminID string
	// Previous is the property as loaded for editing; nil on create.
	Previous *domain.Property
	// Input.Images holds the already persisted images the admin kept.
	Input      domain.PropertyInput
	Removed    []string
	Stage      *staging.Stage
	Commission CommissionForm
}

type SaveResult struct {
	Property domain.Property
	Warnings []string
}

type PropertyService struct {
	API         ListingAPI
	Commissions *CommissionService
}

func NewPropertyService(api ListingAPI) *PropertyService {
	return &PropertyService{API: api, Commissions: NewCommissionService(api)}
}

func (s *PropertyService) List() ([]domain.Property, error) {
	return s.API.ListProperties()
}

// Detail loads a property with its commission. The commission is only looked
// up for sold properties.
func (s *PropertyService) Detail(id string) (domain.Property, *domain.Commission, error) {
	p, err := s.API.GetProperty(id)
	if err != nil {
		return domain.Property{}, nil, err
	}
	if !p.IsSold {
		return p, nil, nil
	}
	c, err := s.Commissions.For(id)
	if err != nil {
		return p, nil, err
	}
	return p, c, nil
}

func (s *PropertyService) Delete(id string) error {
	return s.API.DeleteProperty(id)
}

// Save uploads staged images, writes the property and keeps its commission in
// step with the sold flag. Every write that succeeded before a failure is
// undone: uploaded images are deleted, a deleted commission is recreated, an
// updated property is reverted. Staged files stay staged on failure.
func (s *PropertyService) Save(req SaveRequest) (SaveResult, error) {
	var res SaveResult
	persist := func(uploaded []string) error {
		in := req.Input
		in.Images = append(append([]string(nil), req.Input.Images...), uploaded...)
		p, err := s.persist(req, in)
		if err != nil {
			var se *StepError
			if errors.As(err, &se) && se.written {
				// the saved listing still points at the uploads
				return err
			}
			if len(uploaded) > 0 {
				if derr := s.API.DeleteImages(uploaded); derr != nil {
					if se != nil && se.Rollback == nil {
						se.Rollback = derr
					}
				}
			}
			return err
		}
		res.Property = p
		return nil
	}

	if req.Stage == nil || req.Stage.Len() == 0 {
		if err := persist(nil); err != nil {
			return res, err
		}
	} else {
		_, err := req.Stage.Flush(func(files []apiclient.Upload) ([]string, error) {
			urls, err := s.API.UploadImages(files)
			if err != nil {
				return nil, &StepError{Step: StepUpload, Err: err}
			}
			if err := persist(urls); err != nil {
				return nil, err
			}
			return urls, nil
		})
		if err != nil {
			return res, err
		}
	}

	if len(req.Removed) == 0 {
		return res, nil
	}
	if err := s.API.DeleteImages(req.Removed); err != nil {
		res.Warnings = append(res.Warnings, Describe(&StepError{Step: StepCleanup, Err: err}))
	}
	return res, nil
}

func (s *PropertyService) persist(req SaveRequest, in domain.PropertyInput) (domain.Property, error) {
	prev := req.Previous
	if prev == nil {
		p, err := s.API.CreateProperty(req.AdminID, in)
		if err != nil {
			return domain.Property{}, &StepError{Step: StepSave, Err: err}
		}
		if !in.IsSold {
			return p, nil
		}
		if p.ID == "" {
			return p, &StepError{Step: StepCommission, Err: errors.New("created property has no id")}
		}
		if _, err := s.Commissions.Upsert(p.ID, req.Commission); err != nil {
			rerr := s.API.DeleteProperty(p.ID)
			return domain.Property{}, &StepError{Step: StepCommission, Err: err, Rollback: rerr, written: rerr != nil}
		}
		return p, nil
	}

	switch {
	case prev.IsSold && !in.IsSold:
		removed, err := s.Commissions.Clear(prev.ID)
		if err != nil {
			return domain.Property{}, &StepError{Step: StepCommission, Err: err}
		}
		p, err := s.update(prev.ID, in)
		if err != nil {
			return domain.Property{}, &StepError{Step: StepSave, Err: err, Rollback: s.Commissions.Restore(removed)}
		}
		return p, nil

	case in.IsSold:
		p, err := s.update(prev.ID, in)
		if err != nil {
			return domain.Property{}, &StepError{Step: StepSave, Err: err}
		}
		if _, err := s.Commissions.Upsert(prev.ID, req.Commission); err != nil {
			_, rerr := s.update(prev.ID, domain.InputFrom(*prev))
			return domain.Property{}, &StepError{Step: StepCommission, Err: err, Rollback: rerr, written: rerr != nil}
		}
		return p, nil

	default:
		p, err := s.update(prev.ID, in)
		if err != nil {
			return domain.Property{}, &StepError{Step: StepSave, Err: err}
		}
		return p, nil
	}
}

func (s *PropertyService) update(id string, in domain.PropertyInput) (domain.Property, error) {
	p, err := s.API.UpdateProperty(id, in)
	if err != nil {
		return p, err
	}
	if p.ID == "" {
		p.ID = id
	}
	return p, nil
}
