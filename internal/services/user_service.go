package services

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/ahmetcoskunkizilkaya/hr-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/hr-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/hr-backend/internal/store"
	"github.com/ahmetcoskunkizilkaya/hr-backend/internal/validation"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrUserExists   = errors.New("a user with this userId or email already exists")
)

const entityUser = "user"

type UserService struct {
	db    *gorm.DB
	audit *AuditService
	owned []interface{}
}

// NewUserService returns a service whose Delete also removes every row of
// the owned models that carries the user's user_id.
func NewUserService(db *gorm.DB, audit *AuditService, owned ...interface{}) *UserService {
	base := []interface{}{&models.LeaveRequest{}, &models.RefreshToken{}}
	return &UserService{db: db, audit: audit, owned: append(base, owned...)}
}

func (s *UserService) Create(actorID string, req *dto.CreateUserRequest) (*models.User, error) {
	req.UserID = strings.TrimSpace(req.UserID)
	req.Email = strings.TrimSpace(req.Email)
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	joined := time.Now().UTC()
	if req.JoinDate != "" {
		joined, _ = validation.ParseDate(req.JoinDate)
	}

	user := models.User{
		UserID:   req.UserID,
		Email:    req.Email,
		Password: string(hash),
		Role:     models.Role(req.Role),
		JoinDate: models.Date(joined),
	}

	if err := store.Create(s.db, &user); err != nil {
		if store.IsDuplicate(err) {
			return nil, ErrUserExists
		}
		return nil, err
	}

	s.audit.Record(AuditEntry{
		ActorID:     actorID,
		EntityType:  entityUser,
		EntityID:    user.UserID,
		Action:      models.AuditCreate,
		Description: "user created with role " + string(user.Role),
		After:       user.Public(),
	})
	return &user, nil
}

func (s *UserService) List() ([]models.User, error) {
	var users []models.User
	err := s.db.Order("user_id ASC").Find(&users).Error
	return users, err
}

func (s *UserService) Get(userID string) (*models.User, error) {
	var user models.User
	if err := store.First(s.db, &user, "user_id = ?", userID); err != nil {
		if store.IsNotFound(err) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// Update applies a partial patch. Role is included, so this is also the only
// way a role changes after creation.
func (s *UserService) Update(actorID, userID string, req *dto.UpdateUserRequest) (*models.User, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	before, err := s.Get(userID)
	if err != nil {
		return nil, err
	}

	patch := map[string]any{}
	if req.Email != nil {
		patch["email"] = strings.TrimSpace(*req.Email)
	}
	if req.Role != nil {
		patch["role"] = models.Role(*req.Role)
	}
	if req.JoinDate != nil {
		joined, _ := validation.ParseDate(*req.JoinDate)
		patch["join_date"] = models.Date(joined)
	}
	if req.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		patch["password"] = string(hash)
	}

	if err := store.Updates(s.db, &models.User{}, patch, "user_id = ?", userID); err != nil {
		switch {
		case store.IsNotFound(err):
			return nil, ErrUserNotFound
		case store.IsDuplicate(err):
			return nil, ErrUserExists
		}
		return nil, err
	}

	after, err := s.Get(userID)
	if err != nil {
		return nil, err
	}

	s.audit.Record(AuditEntry{
		ActorID:    actorID,
		EntityType: entityUser,
		EntityID:   userID,
		Action:     models.AuditUpdate,
		Before:     before.Public(),
		After:      after.Public(),
	})
	return after, nil
}

// Delete removes the user and every owned record in one transaction.
// Assignments that reference the user are left alone.
func (s *UserService) Delete(actorID, userID string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := store.First(tx, &user, "user_id = ?", userID); err != nil {
			if store.IsNotFound(err) {
				return ErrUserNotFound
			}
			return err
		}

		for _, m := range s.owned {
			if err := tx.Scopes(store.ForUser(userID)).Delete(m).Error; err != nil {
				return store.Translate(err)
			}
		}
		if err := tx.Delete(&user).Error; err != nil {
			return store.Translate(err)
		}

		return s.audit.WriteTx(tx, AuditEntry{
			ActorID:     actorID,
			EntityType:  entityUser,
			EntityID:    userID,
			Action:      models.AuditDelete,
			Description: "user and owned records deleted",
			Before:      user.Public(),
		})
	})
}

// EnsureAdmin creates an ADMIN account for email unless a user with that
// email already exists.
func (s *UserService) EnsureAdmin(email, password string) error {
	exists, err := store.Exists(s.db, &models.User{}, "email = ?", email)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	_, err = s.Create("system", &dto.CreateUserRequest{
		UserID:   "ADMIN",
		Email:    email,
		Password: password,
		Role:     string(models.RoleAdmin),
	})
	if err != nil {
		return fmt.Errorf("failed to seed admin: %w", err)
	}
	slog.Info("admin user seeded", "email", email)
	return nil
}
