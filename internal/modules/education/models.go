package education

import "time"

// Record is one degree or course. A user may have any number.
type Record struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	UserID       string    `gorm:"size:50;not null;index" json:"userId"`
	Degree       string    `gorm:"size:150;not null" json:"degree"`
	Institution  string    `gorm:"size:200;not null" json:"institution"`
	FieldOfStudy string    `gorm:"size:150" json:"fieldOfStudy"`
	StartYear    int       `json:"startYear"`
	EndYear      int       `json:"endYear"`
	Grade        string    `gorm:"size:20" json:"grade"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func (Record) TableName() string { return "education_records" }

// --- DTOs ---

type CreateRequest struct {
	UserID       string `json:"userId" validate:"required"`
	Degree       string `json:"degree" validate:"required,max=150"`
	Institution  string `json:"institution" validate:"required,max=200"`
	FieldOfStudy string `json:"fieldOfStudy" validate:"max=150"`
	StartYear    int    `json:"startYear" validate:"omitempty,gte=1900,lte=2100"`
	EndYear      int    `json:"endYear" validate:"omitempty,gte=1900,lte=2100,gtefield=StartYear"`
	Grade        string `json:"grade" validate:"max=20"`
}

type UpdateRequest struct {
	Degree       *string `json:"degree" validate:"omitempty,min=1,max=150"`
	Institution  *string `json:"institution" validate:"omitempty,min=1,max=200"`
	FieldOfStudy *string `json:"fieldOfStudy" validate:"omitempty,max=150"`
	StartYear    *int    `json:"startYear" validate:"omitempty,gte=1900,lte=2100"`
	EndYear      *int    `json:"endYear" validate:"omitempty,gte=1900,lte=2100"`
	Grade        *string `json:"grade" validate:"omitempty,max=20"`
}
