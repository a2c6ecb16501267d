package services_test

import (
	"errors"
	"testing"

	"github.com/ahmetcoskunkizilkaya/hr-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/hr-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/hr-backend/internal/modules/bank"
	"github.com/ahmetcoskunkizilkaya/hr-backend/internal/modules/education"
	"github.com/ahmetcoskunkizilkaya/hr-backend/internal/modules/personal"
	"github.com/ahmetcoskunkizilkaya/hr-backend/internal/services"
	"github.com/ahmetcoskunkizilkaya/hr-backend/internal/validation"
	"golang.org/x/crypto/bcrypt"
)

func TestUserCreate(t *testing.T) {
	f := newFixture(t)

	u, err := f.users.Create("ADMIN", &dto.CreateUserRequest{
		UserID:   "U010",
		Email:    "u010@example.com",
		Password: "longenough",
		Role:     "VIEWER",
		JoinDate: "2024-06-01",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if u.Password == "longenough" {
		t.Fatal("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte("longenough")); err != nil {
		t.Fatalf("stored hash does not match: %v", err)
	}

	_, err = f.users.Create("ADMIN", &dto.CreateUserRequest{UserID: "U010", Email: "other@example.com", Password: "longenough", Role: "VIEWER"})
	if !errors.Is(err, services.ErrUserExists) {
		t.Fatalf("expected ErrUserExists for duplicate id, got %v", err)
	}
	_, err = f.users.Create("ADMIN", &dto.CreateUserRequest{UserID: "U011", Email: "u010@example.com", Password: "longenough", Role: "VIEWER"})
	if !errors.Is(err, services.ErrUserExists) {
		t.Fatalf("expected ErrUserExists for duplicate email, got %v", err)
	}
	_, err = f.users.Create("ADMIN", &dto.CreateUserRequest{UserID: "U012", Email: "u012@example.com", Password: "longenough", Role: "OWNER"})
	if !errors.Is(err, validation.ErrInvalidField) {
		t.Fatalf("expected ErrInvalidField for role, got %v", err)
	}
}

func TestUserCreate_TrimsBeforeValidating(t *testing.T) {
	f := newFixture(t)

	_, err := f.users.Create("ADMIN", &dto.CreateUserRequest{UserID: "   ", Email: "blank@example.com", Password: "longenough", Role: "VIEWER"})
	if !errors.Is(err, validation.ErrMissingField) {
		t.Fatalf("expected ErrMissingField for blank userId, got %v", err)
	}
	_, err = f.users.Create("ADMIN", &dto.CreateUserRequest{UserID: "U020", Email: "  ", Password: "longenough", Role: "VIEWER"})
	if !errors.Is(err, validation.ErrMissingField) {
		t.Fatalf("expected ErrMissingField for blank email, got %v", err)
	}

	u, err := f.users.Create("ADMIN", &dto.CreateUserRequest{UserID: " U021 ", Email: " u021@example.com ", Password: "longenough", Role: "VIEWER"})
	if err != nil {
		t.Fatalf("create padded: %v", err)
	}
	if u.UserID != "U021" || u.Email != "u021@example.com" {
		t.Fatalf("expected trimmed identifiers, got %q %q", u.UserID, u.Email)
	}
}

func TestUserUpdate_ChangesRole(t *testing.T) {
	f := newFixture(t)
	seedUser(t, f.db, "U010", models.RoleViewer)

	role := "EDITOR"
	u, err := f.users.Update("ADMIN", "U010", &dto.UpdateUserRequest{Role: &role})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if u.Role != models.RoleEditor {
		t.Fatalf("expected EDITOR, got %s", u.Role)
	}
	if u.Email != "U010@example.com" {
		t.Fatalf("expected email untouched, got %q", u.Email)
	}

	if _, err := f.users.Update("ADMIN", "U404", &dto.UpdateUserRequest{Role: &role}); !errors.Is(err, services.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}

	seedUser(t, f.db, "U011", models.RoleViewer)
	taken := "U011@example.com"
	if _, err := f.users.Update("ADMIN", "U010", &dto.UpdateUserRequest{Email: &taken}); !errors.Is(err, services.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestUserDelete_RemovesOwnedRecords(t *testing.T) {
	f := newFixture(t)
	seedUser(t, f.db, "U010", models.RoleViewer)
	seedUser(t, f.db, "U011", models.RoleViewer)

	for _, uid := range []string{"U010", "U011"} {
		if err := f.db.Create(&personal.Details{UserID: uid, FirstName: "A", LastName: "B"}).Error; err != nil {
			t.Fatalf("seed personal: %v", err)
		}
		if err := f.db.Create(&bank.Details{UserID: uid, BankName: "X", AccountHolder: "A B", AccountNumber: "1"}).Error; err != nil {
			t.Fatalf("seed bank: %v", err)
		}
		if err := f.db.Create(&education.Record{UserID: uid, Degree: "BSc", Institution: "Uni"}).Error; err != nil {
			t.Fatalf("seed education: %v", err)
		}
		if _, err := f.leaves.Apply(fluLeave(uid)); err != nil {
			t.Fatalf("seed leave: %v", err)
		}
	}
	if _, err := f.assignments.Assign("ADMIN", &dto.AssignRequest{EditorID: "E01", ViewerID: "U010"}); err != nil {
		t.Fatalf("assign: %v", err)
	}

	if err := f.users.Delete("ADMIN", "U010"); err != nil {
		t.Fatalf("delete: %v", err)
	}

	if _, err := f.users.Get("U010"); !errors.Is(err, services.ErrUserNotFound) {
		t.Fatalf("expected user row gone, got %v", err)
	}
	for _, m := range []interface{}{&personal.Details{}, &bank.Details{}, &education.Record{}, &models.LeaveRequest{}} {
		var gone, kept int64
		f.db.Model(m).Where("user_id = ?", "U010").Count(&gone)
		f.db.Model(m).Where("user_id = ?", "U011").Count(&kept)
		if gone != 0 {
			t.Fatalf("%T: expected U010 rows removed, found %d", m, gone)
		}
		if kept != 1 {
			t.Fatalf("%T: expected U011 row kept, found %d", m, kept)
		}
	}

	// Assignments are not cascaded.
	views, err := f.assignments.List("E01")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(views) != 1 || views[0].Viewer != nil {
		t.Fatalf("expected dangling assignment without viewer profile, got %+v", views)
	}

	if err := f.users.Delete("ADMIN", "U010"); !errors.Is(err, services.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound on second delete, got %v", err)
	}
}

func TestEnsureAdmin(t *testing.T) {
	f := newFixture(t)

	if err := f.users.EnsureAdmin("admin@example.com", "changeme123"); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if err := f.users.EnsureAdmin("admin@example.com", "changeme123"); err != nil {
		t.Fatalf("second seed should be a no-op: %v", err)
	}

	u, err := f.users.Get("ADMIN")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if u.Role != models.RoleAdmin {
		t.Fatalf("expected ADMIN role, got %s", u.Role)
	}
}
