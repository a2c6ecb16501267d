package services_test

import (
	"testing"
	"time"

	"github.com/ahmetcoskunkizilkaya/hr-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/hr-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/hr-backend/internal/modules/bank"
	"github.com/ahmetcoskunkizilkaya/hr-backend/internal/modules/education"
	"github.com/ahmetcoskunkizilkaya/hr-backend/internal/modules/personal"
	"github.com/ahmetcoskunkizilkaya/hr-backend/internal/services"
	"github.com/ahmetcoskunkizilkaya/hr-backend/internal/testutil"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const testPassword = "password123"

func moduleModels() []interface{} {
	return []interface{}{&personal.Details{}, &bank.Details{}, &education.Record{}}
}

func newDB(t *testing.T) *gorm.DB {
	t.Helper()
	return testutil.NewDB(t, moduleModels()...)
}

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:        "test-secret",
		JWTAccessExpiry:  15 * time.Minute,
		JWTRefreshExpiry: time.Hour,
	}
}

func seedUser(t *testing.T, db *gorm.DB, userID string, role models.Role) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	u := models.User{
		UserID:   userID,
		Email:    userID + "@example.com",
		Password: string(hash),
		Role:     role,
	}
	if err := db.Create(&u).Error; err != nil {
		t.Fatalf("seed user %s: %v", userID, err)
	}
	return &u
}

type fakeNotifier struct {
	to     []string
	status []models.LeaveStatus
	err    error
}

func (f *fakeNotifier) LeaveDecided(to string, leave *models.LeaveRequest) error {
	f.to = append(f.to, to)
	f.status = append(f.status, leave.Status)
	return f.err
}

type fixture struct {
	db          *gorm.DB
	audit       *services.AuditService
	users       *services.UserService
	assignments *services.AssignmentService
	leaves      *services.LeaveService
	profiles    *services.ProfileService
	notifier    *fakeNotifier
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db := newDB(t)
	audit := services.NewAuditService(db)
	users := services.NewUserService(db, audit, moduleModels()...)
	assignments := services.NewAssignmentService(db, audit)
	notifier := &fakeNotifier{}

	return &fixture{
		db:          db,
		audit:       audit,
		users:       users,
		assignments: assignments,
		leaves:      services.NewLeaveService(db, audit, notifier),
		profiles:    services.NewProfileService(db, users, assignments),
		notifier:    notifier,
	}
}
