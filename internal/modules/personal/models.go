package personal

import (
	"time"

	"github.com/ahmetcoskunkizilkaya/hr-backend/internal/models"
)

// Details is the one personal-details row a user may have.
type Details struct {
	ID           uint         `gorm:"primaryKey" json:"id"`
	UserID       string       `gorm:"size:50;not null;uniqueIndex" json:"userId"`
	FirstName    string       `gorm:"size:100;not null" json:"firstName"`
	LastName     string       `gorm:"size:100;not null" json:"lastName"`
	Phone        string       `gorm:"size:30" json:"phone"`
	DateOfBirth  *models.Date `json:"dateOfBirth"`
	Gender       string       `gorm:"size:20" json:"gender"`
	Address      string       `gorm:"type:text" json:"address"`
	City         string       `gorm:"size:100" json:"city"`
	Country      string       `gorm:"size:100" json:"country"`
	ProfileImage string       `gorm:"type:text" json:"profileImage"`
	CreatedAt    time.Time    `json:"createdAt"`
	UpdatedAt    time.Time    `json:"updatedAt"`
}

func (Details) TableName() string { return "personal_details" }

// --- DTOs ---

type CreateRequest struct {
	FirstName    string `json:"firstName" validate:"required,max=100"`
	LastName     string `json:"lastName" validate:"required,max=100"`
	Phone        string `json:"phone" validate:"max=30"`
	DateOfBirth  string `json:"dateOfBirth" validate:"omitempty,date"`
	Gender       string `json:"gender" validate:"max=20"`
	Address      string `json:"address"`
	City         string `json:"city" validate:"max=100"`
	Country      string `json:"country" validate:"max=100"`
	ProfileImage string `json:"profileImage"`
}

type UpdateRequest struct {
	FirstName    *string `json:"firstName" validate:"omitempty,min=1,max=100"`
	LastName     *string `json:"lastName" validate:"omitempty,min=1,max=100"`
	Phone        *string `json:"phone" validate:"omitempty,max=30"`
	DateOfBirth  *string `json:"dateOfBirth" validate:"omitempty,date"`
	Gender       *string `json:"gender" validate:"omitempty,max=20"`
	Address      *string `json:"address"`
	City         *string `json:"city" validate:"omitempty,max=100"`
	Country      *string `json:"country" validate:"omitempty,max=100"`
	ProfileImage *string `json:"profileImage"`
}
