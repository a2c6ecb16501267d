package bank

import "time"

// Details holds a user's salary account. A user has at most one.
type Details struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	UserID        string    `gorm:"size:50;not null;uniqueIndex" json:"userId"`
	BankName      string    `gorm:"size:150;not null" json:"bankName"`
	AccountHolder string    `gorm:"size:150;not null" json:"accountHolder"`
	AccountNumber string    `gorm:"size:50;not null" json:"accountNumber"`
	IFSCCode      string    `gorm:"size:20" json:"ifscCode"`
	Branch        string    `gorm:"size:150" json:"branch"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

func (Details) TableName() string { return "bank_details" }

// --- DTOs ---

type CreateRequest struct {
	UserID        string `json:"userId" validate:"required"`
	BankName      string `json:"bankName" validate:"required,max=150"`
	AccountHolder string `json:"accountHolder" validate:"required,max=150"`
	AccountNumber string `json:"accountNumber" validate:"required,max=50"`
	IFSCCode      string `json:"ifscCode" validate:"max=20"`
	Branch        string `json:"branch" validate:"max=150"`
}

type UpdateRequest struct {
	BankName      *string `json:"bankName" validate:"omitempty,min=1,max=150"`
	AccountHolder *string `json:"accountHolder" validate:"omitempty,min=1,max=150"`
	AccountNumber *string `json:"accountNumber" validate:"omitempty,min=1,max=50"`
	IFSCCode      *string `json:"ifscCode" validate:"omitempty,max=20"`
	Branch        *string `json:"branch" validate:"omitempty,max=150"`
}
