package services

import (
	"errors"
	"strings"

	"github.com/ahmetcoskunkizilkaya/hr-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/hr-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/hr-backend/internal/store"
	"github.com/ahmetcoskunkizilkaya/hr-backend/internal/validation"
	"gorm.io/gorm"
)

var (
	ErrDuplicateAssignment = errors.New("viewer is already assigned to an editor")
	ErrAssignmentNotFound  = errors.New("assignment not found")
)

const entityAssignment = "assignment"

// AssignmentService keeps the editor to viewer mapping. The one assignment
// per viewer rule lives in the unique index on viewer_id; this service only
// translates its violation.
type AssignmentService struct {
	db    *gorm.DB
	audit *AuditService
}

func NewAssignmentService(db *gorm.DB, audit *AuditService) *AssignmentService {
	return &AssignmentService{db: db, audit: audit}
}

func (s *AssignmentService) Assign(actorID string, req *dto.AssignRequest) (*models.Assignment, error) {
	req.EditorID = strings.TrimSpace(req.EditorID)
	req.ViewerID = strings.TrimSpace(req.ViewerID)
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	a := models.Assignment{EditorID: req.EditorID, ViewerID: req.ViewerID}
	if err := store.Create(s.db, &a); err != nil {
		if store.IsDuplicate(err) {
			return nil, ErrDuplicateAssignment
		}
		return nil, err
	}

	s.audit.Record(AuditEntry{
		ActorID:    actorID,
		EntityType: entityAssignment,
		EntityID:   formatID(a.ID),
		Action:     models.AuditCreate,
		After:      a,
	})
	return &a, nil
}

// Reassign patches the editor, the viewer, or both. A field that is present
// but blank is rejected rather than stored as "".
func (s *AssignmentService) Reassign(actorID string, id uint, req *dto.ReassignRequest) (*models.Assignment, error) {
	if err := trimPresent("editorId", req.EditorID); err != nil {
		return nil, err
	}
	if err := trimPresent("viewerId", req.ViewerID); err != nil {
		return nil, err
	}
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	before, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	patch := map[string]any{}
	if req.EditorID != nil {
		patch["editor_id"] = *req.EditorID
	}
	if req.ViewerID != nil {
		patch["viewer_id"] = *req.ViewerID
	}

	if err := store.Updates(s.db, &models.Assignment{}, patch, "id = ?", id); err != nil {
		switch {
		case store.IsNotFound(err):
			return nil, ErrAssignmentNotFound
		case store.IsDuplicate(err):
			return nil, ErrDuplicateAssignment
		}
		return nil, err
	}

	after, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	s.audit.Record(AuditEntry{
		ActorID:    actorID,
		EntityType: entityAssignment,
		EntityID:   formatID(id),
		Action:     models.AuditUpdate,
		Before:     before,
		After:      after,
	})
	return after, nil
}

func (s *AssignmentService) Get(id uint) (*models.Assignment, error) {
	var a models.Assignment
	if err := store.First(s.db, &a, "id = ?", id); err != nil {
		if store.IsNotFound(err) {
			return nil, ErrAssignmentNotFound
		}
		return nil, err
	}
	return &a, nil
}

// List returns every assignment, or only editorID's when it is non-empty,
// each joined with the viewer's public profile. Viewer is nil when the
// referenced user no longer exists.
func (s *AssignmentService) List(editorID string) ([]dto.AssignmentView, error) {
	var assignments []models.Assignment
	if err := s.db.Scopes(store.ForEditor(editorID)).Order("id ASC").Find(&assignments).Error; err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(assignments))
	for _, a := range assignments {
		ids = append(ids, a.ViewerID)
	}
	profiles, err := publicProfiles(s.db, ids)
	if err != nil {
		return nil, err
	}

	views := make([]dto.AssignmentView, 0, len(assignments))
	for _, a := range assignments {
		view := dto.AssignmentView{Assignment: a}
		if p, ok := profiles[a.ViewerID]; ok {
			view.Viewer = &p
		}
		views = append(views, view)
	}
	return views, nil
}

func (s *AssignmentService) Remove(actorID string, id uint) error {
	if err := store.Delete(s.db, &models.Assignment{}, "id = ?", id); err != nil {
		if store.IsNotFound(err) {
			return ErrAssignmentNotFound
		}
		return err
	}

	s.audit.Record(AuditEntry{
		ActorID:    actorID,
		EntityType: entityAssignment,
		EntityID:   formatID(id),
		Action:     models.AuditDelete,
	})
	return nil
}

// publicProfiles loads the public fields of the given users keyed by userId.
// The password column is never selected.
func publicProfiles(db *gorm.DB, userIDs []string) (map[string]models.PublicProfile, error) {
	out := make(map[string]models.PublicProfile, len(userIDs))
	if len(userIDs) == 0 {
		return out, nil
	}

	var rows []models.PublicProfile
	err := db.Model(&models.User{}).
		Select("user_id", "email", "role").
		Where("user_id IN ?", userIDs).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, p := range rows {
		out[p.UserID] = p
	}
	return out, nil
}

// trimPresent trims *v in place and reports a blank value as a missing field.
func trimPresent(field string, v *string) error {
	if v == nil {
		return nil
	}
	*v = strings.TrimSpace(*v)
	if *v == "" {
		return &validation.FieldError{Field: field, Tag: "required"}
	}
	return nil
}
