package models

import "time"

type Role string

const (
	RoleAdmin  Role = "ADMIN"
	RoleEditor Role = "EDITOR"
	RoleViewer Role = "VIEWER"
)

func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleEditor, RoleViewer:
		return true
	default:
		return false
	}
}

// User is an employee account. UserID is assigned by the admin who creates it
// (e.g. "U010") and is the key every detail record hangs off.
type User struct {
	UserID    string    `gorm:"primaryKey;size:50" json:"userId"`
	Email     string    `gorm:"not null;size:255;uniqueIndex" json:"email"`
	Password  string    `gorm:"not null" json:"-"`
	Role      Role      `gorm:"size:20;not null;default:'VIEWER';index" json:"role"`
	JoinDate  Date      `json:"joinDate"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// PublicProfile is the subset of User that is safe to join into other views.
type PublicProfile struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	Role   Role   `json:"role"`
}

func (u *User) Public() PublicProfile {
	return PublicProfile{UserID: u.UserID, Email: u.Email, Role: u.Role}
}
