package education

import (
	"errors"
	"strings"

	"github.com/ahmetcoskunkizilkaya/hr-backend/internal/modules"
	"github.com/ahmetcoskunkizilkaya/hr-backend/internal/store"
	"github.com/ahmetcoskunkizilkaya/hr-backend/internal/validation"
	"gorm.io/gorm"
)

var (
	ErrRecordNotFound = errors.New("education record not found")
	ErrYearOrder      = errors.New("endYear must not be before startYear")
)

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

func (s *Service) Create(req *CreateRequest) (*Record, error) {
	req.UserID = strings.TrimSpace(req.UserID)
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	if err := modules.RequireUser(s.db, req.UserID); err != nil {
		return nil, err
	}

	r := Record{
		UserID:       req.UserID,
		Degree:       req.Degree,
		Institution:  req.Institution,
		FieldOfStudy: req.FieldOfStudy,
		StartYear:    req.StartYear,
		EndYear:      req.EndYear,
		Grade:        req.Grade,
	}
	if err := store.Create(s.db, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

// ListByUser returns the user's records, most recent first.
func (s *Service) ListByUser(userID string) ([]Record, error) {
	var records []Record
	err := s.db.Scopes(store.ForUser(userID)).
		Order("end_year DESC").
		Order("id DESC").
		Find(&records).Error
	return records, err
}

func (s *Service) Get(id uint) (*Record, error) {
	var r Record
	if err := store.First(s.db, &r, "id = ?", id); err != nil {
		if store.IsNotFound(err) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	return &r, nil
}

func (s *Service) Update(id uint, req *UpdateRequest) (*Record, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	current, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	patch := map[string]any{}
	if req.Degree != nil {
		patch["degree"] = *req.Degree
	}
	if req.Institution != nil {
		patch["institution"] = *req.Institution
	}
	if req.FieldOfStudy != nil {
		patch["field_of_study"] = *req.FieldOfStudy
	}
	if req.Grade != nil {
		patch["grade"] = *req.Grade
	}

	start, end := current.StartYear, current.EndYear
	if req.StartYear != nil {
		start = *req.StartYear
		patch["start_year"] = start
	}
	if req.EndYear != nil {
		end = *req.EndYear
		patch["end_year"] = end
	}
	if start != 0 && end != 0 && end < start {
		return nil, ErrYearOrder
	}

	if err := store.Updates(s.db, &Record{}, patch, "id = ?", id); err != nil {
		if store.IsNotFound(err) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	return s.Get(id)
}

func (s *Service) Delete(id uint) error {
	if err := store.Delete(s.db, &Record{}, "id = ?", id); err != nil {
		if store.IsNotFound(err) {
			return ErrRecordNotFound
		}
		return err
	}
	return nil
}
