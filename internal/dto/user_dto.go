package dto

type CreateUserRequest struct {
	UserID   string `json:"userId" validate:"required,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role" validate:"required,oneof=ADMIN EDITOR VIEWER"`
	JoinDate string `json:"joinDate" validate:"omitempty,date"`
}

// UpdateUserRequest is a generic patch; nil fields are left untouched. Role is
// patchable here even though there is no dedicated role-change endpoint.
type UpdateUserRequest struct {
	Email    *string `json:"email" validate:"omitempty,email"`
	Password *string `json:"password" validate:"omitempty,min=8"`
	Role     *string `json:"role" validate:"omitempty,oneof=ADMIN EDITOR VIEWER"`
	JoinDate *string `json:"joinDate" validate:"omitempty,date"`
}
