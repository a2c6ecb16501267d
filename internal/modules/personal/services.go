package personal

import (
	"errors"

	"github.com/ahmetcoskunkizilkaya/hr-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/hr-backend/internal/modules"
	"github.com/ahmetcoskunkizilkaya/hr-backend/internal/store"
	"github.com/ahmetcoskunkizilkaya/hr-backend/internal/validation"
	"gorm.io/gorm"
)

var (
	ErrDetailsExist    = errors.New("personal details already exist for this user")
	ErrDetailsNotFound = errors.New("personal details not found")
)

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

func (s *Service) Create(userID string, req *CreateRequest) (*Details, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	if err := modules.RequireUser(s.db, userID); err != nil {
		return nil, err
	}

	d := Details{
		UserID:       userID,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Phone:        req.Phone,
		Gender:       req.Gender,
		Address:      req.Address,
		City:         req.City,
		Country:      req.Country,
		ProfileImage: req.ProfileImage,
	}
	if req.DateOfBirth != "" {
		d.DateOfBirth = parseDate(req.DateOfBirth)
	}

	if err := store.Create(s.db, &d); err != nil {
		if store.IsDuplicate(err) {
			return nil, ErrDetailsExist
		}
		return nil, err
	}
	return &d, nil
}

func (s *Service) Get(userID string) (*Details, error) {
	var d Details
	if err := store.First(s.db, &d, "user_id = ?", userID); err != nil {
		if store.IsNotFound(err) {
			return nil, ErrDetailsNotFound
		}
		return nil, err
	}
	return &d, nil
}

func (s *Service) Update(userID string, req *UpdateRequest) (*Details, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	patch := map[string]any{}
	set := func(col string, v *string) {
		if v != nil {
			patch[col] = *v
		}
	}
	set("first_name", req.FirstName)
	set("last_name", req.LastName)
	set("phone", req.Phone)
	set("gender", req.Gender)
	set("address", req.Address)
	set("city", req.City)
	set("country", req.Country)
	set("profile_image", req.ProfileImage)
	if req.DateOfBirth != nil {
		patch["date_of_birth"] = parseDate(*req.DateOfBirth)
	}

	if err := store.Updates(s.db, &Details{}, patch, "user_id = ?", userID); err != nil {
		if store.IsNotFound(err) {
			return nil, ErrDetailsNotFound
		}
		return nil, err
	}
	return s.Get(userID)
}

func (s *Service) Delete(userID string) error {
	if err := store.Delete(s.db, &Details{}, "user_id = ?", userID); err != nil {
		if store.IsNotFound(err) {
			return ErrDetailsNotFound
		}
		return err
	}
	return nil
}

func parseDate(s string) *models.Date {
	t, err := validation.ParseDate(s)
	if err != nil {
		return nil
	}
	d := models.Date(t)
	return &d
}
