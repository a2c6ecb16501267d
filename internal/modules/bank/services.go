package bank

import (
	"errors"
	"strings"

	"github.com/ahmetcoskunkizilkaya/hr-backend/internal/modules"
	"github.com/ahmetcoskunkizilkaya/hr-backend/internal/store"
	"github.com/ahmetcoskunkizilkaya/hr-backend/internal/validation"
	"gorm.io/gorm"
)

var (
	ErrDetailsExist    = errors.New("bank details already exist for this user")
	ErrDetailsNotFound = errors.New("bank details not found")
)

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

func (s *Service) Create(req *CreateRequest) (*Details, error) {
	req.UserID = strings.TrimSpace(req.UserID)
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	if err := modules.RequireUser(s.db, req.UserID); err != nil {
		return nil, err
	}

	d := Details{
		UserID:        req.UserID,
		BankName:      req.BankName,
		AccountHolder: req.AccountHolder,
		AccountNumber: req.AccountNumber,
		IFSCCode:      strings.ToUpper(req.IFSCCode),
		Branch:        req.Branch,
	}
	if err := store.Create(s.db, &d); err != nil {
		if store.IsDuplicate(err) {
			return nil, ErrDetailsExist
		}
		return nil, err
	}
	return &d, nil
}

func (s *Service) List() ([]Details, error) {
	var all []Details
	err := s.db.Order("user_id ASC").Find(&all).Error
	return all, err
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
	if req.BankName != nil {
		patch["bank_name"] = *req.BankName
	}
	if req.AccountHolder != nil {
		patch["account_holder"] = *req.AccountHolder
	}
	if req.AccountNumber != nil {
		patch["account_number"] = *req.AccountNumber
	}
	if req.IFSCCode != nil {
		patch["ifsc_code"] = strings.ToUpper(*req.IFSCCode)
	}
	if req.Branch != nil {
		patch["branch"] = *req.Branch
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
