package dto

import "github.com/ahmetcoskunkizilkaya/hr-backend/internal/models"

type AssignRequest struct {
	EditorID string `json:"editorId" validate:"required"`
	ViewerID string `json:"viewerId" validate:"required"`
}

type ReassignRequest struct {
	EditorID *string `json:"editorId" validate:"omitempty,min=1"`
	ViewerID *string `json:"viewerId" validate:"omitempty,min=1"`
}

// AssignmentView is an assignment joined with the viewer's public profile.
type AssignmentView struct {
	models.Assignment
	Viewer *models.PublicProfile `json:"viewer"`
}
