package services

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/ahmetcoskunkizilkaya/hr-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/hr-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/hr-backend/internal/store"
	"github.com/ahmetcoskunkizilkaya/hr-backend/internal/validation"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

var (
	ErrInvalidID     = errors.New("id must be numeric")
	ErrMissingActor  = errors.New("acting user id is required")
	ErrActorNotFound = errors.New("acting user not found")
	ErrInvalidStatus = errors.New("status must be one of: PENDING, APPROVED, REJECTED, CANCELLED")
	ErrLeaveNotFound = errors.New("leave request not found")
)

const entityLeave = "leave_request"

// Notifier tells a requester that their leave request was decided.
type Notifier interface {
	LeaveDecided(to string, leave *models.LeaveRequest) error
}

type LeaveService struct {
	db       *gorm.DB
	audit    *AuditService
	notifier Notifier
}

// NewLeaveService returns a leave service. notifier may be nil, in which case
// decisions are not announced.
func NewLeaveService(db *gorm.DB, audit *AuditService, notifier Notifier) *LeaveService {
	return &LeaveService{db: db, audit: audit, notifier: notifier}
}

// Apply files a new request in PENDING state for an existing user.
func (s *LeaveService) Apply(req *dto.ApplyLeaveRequest) (*models.LeaveRequest, error) {
	req.UserID = strings.TrimSpace(req.UserID)
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	exists, err := store.Exists(s.db, &models.User{}, "user_id = ?", req.UserID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrUserNotFound
	}

	start, _ := validation.ParseDate(req.StartDate)
	end, _ := validation.ParseDate(req.EndDate)

	leave := models.LeaveRequest{
		UserID:    req.UserID,
		LeaveType: models.LeaveType(req.LeaveType),
		StartDate: models.Date(start),
		EndDate:   models.Date(end),
		TotalDays: req.TotalDays,
		Reason:    req.Reason,
		Status:    models.LeavePending,
	}
	if err := store.Create(s.db, &leave); err != nil {
		return nil, err
	}

	s.audit.Record(AuditEntry{
		ActorID:    leave.UserID,
		EntityType: entityLeave,
		EntityID:   formatID(leave.ID),
		Action:     models.AuditCreate,
		After:      leave,
	})
	return &leave, nil
}

// Decide sets the status of a request on behalf of req.ApprovedBy, who must
// be an existing user. Any status may overwrite any other.
func (s *LeaveService) Decide(leaveID string, req *dto.LeaveStatusRequest) (*models.LeaveRequest, error) {
	id, err := parseID(leaveID)
	if err != nil {
		return nil, err
	}

	actor := strings.TrimSpace(req.ApprovedBy)
	if actor == "" {
		return nil, ErrMissingActor
	}
	exists, err := store.Exists(s.db, &models.User{}, "user_id = ?", actor)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrActorNotFound
	}

	status, ok := models.ParseLeaveStatus(req.Status)
	if !ok {
		return nil, ErrInvalidStatus
	}

	patch := map[string]any{"status": status}
	if status == models.LeaveApproved {
		patch["approved_by"] = actor
	}
	if rejectedBy := strings.TrimSpace(req.RejectedBy); rejectedBy != "" {
		patch["rejected_by"] = rejectedBy
	}

	return s.transition(id, actor, patch)
}

// Reject marks a request REJECTED. rejectedBy is stored as given and is not
// checked against the user table.
func (s *LeaveService) Reject(leaveID, rejectedBy string) (*models.LeaveRequest, error) {
	id, err := parseID(leaveID)
	if err != nil {
		return nil, err
	}

	rejectedBy = strings.TrimSpace(rejectedBy)
	if rejectedBy == "" {
		return nil, ErrMissingActor
	}

	return s.transition(id, rejectedBy, map[string]any{
		"status":      models.LeaveRejected,
		"rejected_by": rejectedBy,
	})
}

func (s *LeaveService) transition(id uint, actorID string, patch map[string]any) (*models.LeaveRequest, error) {
	before, err := s.get(id)
	if err != nil {
		return nil, err
	}

	if err := store.Updates(s.db, &models.LeaveRequest{}, patch, "id = ?", id); err != nil {
		if store.IsNotFound(err) {
			return nil, ErrLeaveNotFound
		}
		return nil, err
	}

	after, err := s.get(id)
	if err != nil {
		return nil, err
	}

	s.audit.Record(AuditEntry{
		ActorID:     actorID,
		EntityType:  entityLeave,
		EntityID:    formatID(id),
		Action:      models.AuditStatusChange,
		Description: fmt.Sprintf("%s -> %s", before.Status, after.Status),
		Before:      before,
		After:       after,
	})
	s.notify(after)
	return after, nil
}

func (s *LeaveService) notify(leave *models.LeaveRequest) {
	if s.notifier == nil {
		return
	}

	var user models.User
	if err := store.First(s.db, &user, "user_id = ?", leave.UserID); err != nil {
		slog.Warn("leave notification skipped", "leave_id", leave.ID, "user_id", leave.UserID, "error", err)
		return
	}
	if err := s.notifier.LeaveDecided(user.Email, leave); err != nil {
		slog.Error("leave notification failed", "leave_id", leave.ID, "user_id", leave.UserID, "error", err)
	}
}

// Get loads one request by its path id.
func (s *LeaveService) Get(leaveID string) (*models.LeaveRequest, error) {
	id, err := parseID(leaveID)
	if err != nil {
		return nil, err
	}
	return s.get(id)
}

func (s *LeaveService) get(id uint) (*models.LeaveRequest, error) {
	var leave models.LeaveRequest
	if err := store.First(s.db, &leave, "id = ?", id); err != nil {
		if store.IsNotFound(err) {
			return nil, ErrLeaveNotFound
		}
		return nil, err
	}
	return &leave, nil
}

// Remove deletes a request regardless of its status.
func (s *LeaveService) Remove(actorID, leaveID string) error {
	id, err := parseID(leaveID)
	if err != nil {
		return err
	}

	if err := store.Delete(s.db, &models.LeaveRequest{}, "id = ?", id); err != nil {
		if store.IsNotFound(err) {
			return ErrLeaveNotFound
		}
		return err
	}

	s.audit.Record(AuditEntry{
		ActorID:    actorID,
		EntityType: entityLeave,
		EntityID:   formatID(id),
		Action:     models.AuditDelete,
	})
	return nil
}

func (s *LeaveService) ListByUser(userID string) ([]models.LeaveRequest, error) {
	var leaves []models.LeaveRequest
	err := s.db.Scopes(store.ForUser(userID)).Order("id ASC").Find(&leaves).Error
	return leaves, err
}

// ListAll returns every request joined with the requester and, once
// approved, the approver.
func (s *LeaveService) ListAll() ([]dto.LeaveView, error) {
	var leaves []models.LeaveRequest
	if err := s.db.Order("id ASC").Find(&leaves).Error; err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(leaves)*2)
	for _, l := range leaves {
		ids = append(ids, l.UserID)
		if l.ApprovedBy != nil {
			ids = append(ids, *l.ApprovedBy)
		}
	}
	profiles, err := publicProfiles(s.db, ids)
	if err != nil {
		return nil, err
	}

	views := make([]dto.LeaveView, 0, len(leaves))
	for _, l := range leaves {
		view := dto.LeaveView{LeaveRequest: l}
		if p, ok := profiles[l.UserID]; ok {
			view.User = &p
		}
		if l.ApprovedBy != nil {
			if p, ok := profiles[*l.ApprovedBy]; ok {
				view.Approver = &p
			}
		}
		views = append(views, view)
	}
	return views, nil
}

var exportHeaders = []string{
	"ID", "User ID", "Email", "Leave Type", "Start Date", "End Date",
	"Total Days", "Reason", "Status", "Approved By", "Rejected By", "Applied At",
}

const exportSheet = "Leaves"

// ExportXLSX writes every leave request as a single-sheet workbook.
func (s *LeaveService) ExportXLSX(w io.Writer) error {
	views, err := s.ListAll()
	if err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return err
	}
	if err := f.SetSheetRow(exportSheet, "A1", &exportHeaders); err != nil {
		return err
	}

	for i, v := range views {
		email := ""
		if v.User != nil {
			email = v.User.Email
		}
		row := []interface{}{
			v.ID,
			v.UserID,
			email,
			string(v.LeaveType),
			formatDate(v.StartDate),
			formatDate(v.EndDate),
			v.TotalDays,
			v.Reason,
			string(v.Status),
			deref(v.ApprovedBy),
			deref(v.RejectedBy),
			v.CreatedAt.UTC().Format(time.RFC3339),
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(exportSheet, cell, &row); err != nil {
			return err
		}
	}

	return f.Write(w)
}

func parseID(raw string) (uint, error) {
	id, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0, ErrInvalidID
	}
	return uint(id), nil
}

func formatID(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

func formatDate(d models.Date) string {
	return d.String()
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
