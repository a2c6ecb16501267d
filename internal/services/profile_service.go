package services

import (
	"errors"

	"github.com/ahmetcoskunkizilkaya/hr-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/hr-backend/internal/modules/bank"
	"github.com/ahmetcoskunkizilkaya/hr-backend/internal/modules/education"
	"github.com/ahmetcoskunkizilkaya/hr-backend/internal/modules/personal"
	"gorm.io/gorm"
)

// Profile is everything known about one user. Missing detail records are
// nil rather than errors.
type Profile struct {
	User            models.PublicProfile `json:"user"`
	JoinDate        string               `json:"joinDate,omitempty"`
	PersonalDetails *personal.Details    `json:"personalDetails"`
	BankDetails     *bank.Details        `json:"bankDetails"`
	Education       []education.Record   `json:"education"`
}

// DashboardEntry is one assignment with the viewer's profile, which is nil
// when the viewer's user row is gone.
type DashboardEntry struct {
	AssignmentID uint     `json:"assignmentId"`
	ViewerID     string   `json:"viewerId"`
	Profile      *Profile `json:"profile"`
}

type EditorDashboard struct {
	EditorID string           `json:"editorId"`
	Viewers  []DashboardEntry `json:"viewers"`
}

// ProfileService composes read-only views across users, assignments and the
// detail modules.
type ProfileService struct {
	users       *UserService
	assignments *AssignmentService
	personal    *personal.Service
	bank        *bank.Service
	education   *education.Service
}

func NewProfileService(db *gorm.DB, users *UserService, assignments *AssignmentService) *ProfileService {
	return &ProfileService{
		users:       users,
		assignments: assignments,
		personal:    personal.NewService(db),
		bank:        bank.NewService(db),
		education:   education.NewService(db),
	}
}

func (s *ProfileService) Profile(userID string) (*Profile, error) {
	user, err := s.users.Get(userID)
	if err != nil {
		return nil, err
	}

	p := &Profile{User: user.Public()}
	if !user.JoinDate.Time().IsZero() {
		p.JoinDate = user.JoinDate.String()
	}

	pd, err := s.personal.Get(userID)
	switch {
	case err == nil:
		p.PersonalDetails = pd
	case !errors.Is(err, personal.ErrDetailsNotFound):
		return nil, err
	}

	bd, err := s.bank.Get(userID)
	switch {
	case err == nil:
		p.BankDetails = bd
	case !errors.Is(err, bank.ErrDetailsNotFound):
		return nil, err
	}

	p.Education, err = s.education.ListByUser(userID)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// EditorDashboard lists editorID's assignments with each viewer's profile.
// An editor with no assignments gets an empty list.
func (s *ProfileService) EditorDashboard(editorID string) (*EditorDashboard, error) {
	views, err := s.assignments.List(editorID)
	if err != nil {
		return nil, err
	}

	d := &EditorDashboard{EditorID: editorID, Viewers: make([]DashboardEntry, 0, len(views))}
	for _, v := range views {
		entry := DashboardEntry{AssignmentID: v.ID, ViewerID: v.ViewerID}
		if v.Viewer != nil {
			p, err := s.Profile(v.ViewerID)
			if err != nil && !errors.Is(err, ErrUserNotFound) {
				return nil, err
			}
			entry.Profile = p
		}
		d.Viewers = append(d.Viewers, entry)
	}
	return d, nil
}
