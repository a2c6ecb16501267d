package routes_test

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/ahmetcoskunkizilkaya/hr-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/hr-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/hr-backend/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/hr-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/hr-backend/internal/modules"
	"github.com/ahmetcoskunkizilkaya/hr-backend/internal/modules/bank"
	"github.com/ahmetcoskunkizilkaya/hr-backend/internal/modules/education"
	"github.com/ahmetcoskunkizilkaya/hr-backend/internal/modules/personal"
	"github.com/ahmetcoskunkizilkaya/hr-backend/internal/routes"
	"github.com/ahmetcoskunkizilkaya/hr-backend/internal/services"
	"github.com/ahmetcoskunkizilkaya/hr-backend/internal/storage"
	"github.com/ahmetcoskunkizilkaya/hr-backend/internal/testutil"
	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type server struct {
	app *fiber.App
	db  *gorm.DB
	cfg *config.Config
}

func newServer(t *testing.T) *server {
	t.Helper()

	mods := []modules.Module{personal.New(), bank.New(), education.New()}
	db := testutil.NewDB(t, modules.OwnedModels(mods)...)
	cfg := testutil.Config()

	uploads, err := storage.NewLocal(t.TempDir(), "http://files.test")
	if err != nil {
		t.Fatalf("local storage: %v", err)
	}

	audit := services.NewAuditService(db)
	users := services.NewUserService(db, audit, modules.OwnedModels(mods)...)
	assignments := services.NewAssignmentService(db, audit)
	leaves := services.NewLeaveService(db, audit, nil)

	app := fiber.New(fiber.Config{ErrorHandler: handlers.ErrorHandler})
	routes.Setup(app, cfg, db, routes.Handlers{
		Auth:       handlers.NewAuthHandler(services.NewAuthService(db, cfg)),
		Health:     handlers.NewHealthHandler(db),
		User:       handlers.NewUserHandler(users, db),
		Assignment: handlers.NewAssignmentHandler(assignments),
		Leave:      handlers.NewLeaveHandler(leaves, db),
		Profile:    handlers.NewProfileHandler(services.NewProfileService(db, users, assignments), db),
		Audit:      handlers.NewAuditHandler(audit),
		Upload:     handlers.NewUploadHandler(uploads),
	}, mods)

	s := &server{app: app, db: db, cfg: cfg}
	s.seed(t, "ADMIN", models.RoleAdmin)
	s.seed(t, "E01", models.RoleEditor)
	s.seed(t, "V01", models.RoleViewer)
	s.seed(t, "V02", models.RoleViewer)
	return s
}

func (s *server) seed(t *testing.T, userID string, role models.Role) {
	t.Helper()
	hash, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	u := models.User{UserID: userID, Email: userID + "@example.com", Password: string(hash), Role: role}
	if err := s.db.Create(&u).Error; err != nil {
		t.Fatalf("seed %s: %v", userID, err)
	}
}

func (s *server) token(t *testing.T, userID string, role models.Role) string {
	return testutil.Token(t, s.cfg, userID, role)
}

func (s *server) do(t *testing.T, method, path, token string, body any) (int, []byte) {
	t.Helper()
	return testutil.Do(t, s.app, method, path, token, body)
}

func TestHealth(t *testing.T) {
	s := newServer(t)

	status, body := s.do(t, http.MethodGet, "/api/health", "", nil)
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	var h dto.HealthResponse
	testutil.Decode(t, body, &h)
	if h.Status != "ok" || h.DB != "ok" {
		t.Fatalf("unexpected health %+v", h)
	}
}

func TestLoginFlow(t *testing.T) {
	s := newServer(t)

	status, body := s.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": "V01@example.com", "password": "password123",
	})
	if status != http.StatusOK {
		t.Fatalf("login: expected 200, got %d: %s", status, body)
	}
	var auth dto.AuthResponse
	testutil.Decode(t, body, &auth)

	status, _ = s.do(t, http.MethodGet, "/api/leaves/V01", auth.AccessToken, nil)
	if status != http.StatusOK {
		t.Fatalf("expected issued token to authenticate, got %d", status)
	}

	status, body = s.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": "V01@example.com", "password": "nope",
	})
	if status != http.StatusUnauthorized {
		t.Fatalf("bad password: expected 401, got %d", status)
	}
	var e dto.ErrorResponse
	testutil.Decode(t, body, &e)
	if !e.Error || e.Message == "" {
		t.Fatalf("expected error body, got %s", body)
	}
}

func TestRoleGating(t *testing.T) {
	s := newServer(t)
	viewer := s.token(t, "V01", models.RoleViewer)
	editor := s.token(t, "E01", models.RoleEditor)

	cases := []struct {
		name   string
		method string
		path   string
		token  string
		body   any
		status int
	}{
		{"no token", http.MethodGet, "/api/assignment", "", nil, http.StatusUnauthorized},
		{"garbage token", http.MethodGet, "/api/assignment", "not-a-jwt", nil, http.StatusUnauthorized},
		{"viewer assigns", http.MethodPost, "/api/assignment", viewer, map[string]string{"editorId": "E01", "viewerId": "V01"}, http.StatusForbidden},
		{"editor assigns", http.MethodPost, "/api/assignment", editor, map[string]string{"editorId": "E01", "viewerId": "V01"}, http.StatusForbidden},
		{"viewer decides", http.MethodPut, "/api/leaves/status/1", viewer, map[string]string{"status": "APPROVED"}, http.StatusForbidden},
		{"editor exports", http.MethodGet, "/api/leaves/export", editor, nil, http.StatusForbidden},
		{"viewer creates user", http.MethodPost, "/user", viewer, map[string]string{"userId": "X"}, http.StatusForbidden},
		{"viewer reads other leaves", http.MethodGet, "/api/leaves/V02", viewer, nil, http.StatusForbidden},
		{"viewer reads audit", http.MethodGet, "/api/audit", viewer, nil, http.StatusForbidden},
		{"editor reads other dashboard", http.MethodGet, "/api/dashboard/editor/E02", editor, nil, http.StatusForbidden},
		{"viewer lists users", http.MethodGet, "/user", viewer, nil, http.StatusForbidden},
		{"viewer reads other user", http.MethodGet, "/user/V02", viewer, nil, http.StatusForbidden},
		{"viewer reads self", http.MethodGet, "/user/V01", viewer, nil, http.StatusOK},
		{"editor lists users", http.MethodGet, "/user", editor, nil, http.StatusOK},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, body := s.do(t, tc.method, tc.path, tc.token, tc.body)
			if status != tc.status {
				t.Fatalf("expected %d, got %d: %s", tc.status, status, body)
			}
		})
	}
}

func TestAssignmentEndpoints(t *testing.T) {
	s := newServer(t)
	admin := s.token(t, "ADMIN", models.RoleAdmin)
	editor := s.token(t, "E01", models.RoleEditor)

	status, body := s.do(t, http.MethodPost, "/api/assignment", admin, map[string]string{"editorId": "E01", "viewerId": "V01"})
	if status != http.StatusCreated {
		t.Fatalf("assign: expected 201, got %d: %s", status, body)
	}
	var created models.Assignment
	testutil.Decode(t, body, &created)

	status, _ = s.do(t, http.MethodPost, "/api/assignment", admin, map[string]string{"editorId": "E02", "viewerId": "V01"})
	if status != http.StatusConflict {
		t.Fatalf("second assign: expected 409, got %d", status)
	}

	status, _ = s.do(t, http.MethodPost, "/api/assignment", admin, map[string]string{"editorId": "E01"})
	if status != http.StatusBadRequest {
		t.Fatalf("missing viewer: expected 400, got %d", status)
	}

	status, body = s.do(t, http.MethodGet, "/api/assignment?editorId=E01", editor, nil)
	if status != http.StatusOK {
		t.Fatalf("list: expected 200, got %d", status)
	}
	var views []dto.AssignmentView
	testutil.Decode(t, body, &views)
	if len(views) != 1 || views[0].Viewer == nil || views[0].Viewer.Email != "V01@example.com" {
		t.Fatalf("expected joined viewer profile, got %s", body)
	}
	if bytes.Contains(body, []byte("password")) {
		t.Fatalf("assignment list leaked a password field: %s", body)
	}

	path := "/api/assignment/" + strconv.FormatUint(uint64(created.ID), 10)
	if status, _ = s.do(t, http.MethodPut, path, admin, map[string]string{"editorId": "   "}); status != http.StatusBadRequest {
		t.Fatalf("blank editor: expected 400, got %d", status)
	}
	if status, _ = s.do(t, http.MethodPut, path, admin, map[string]string{"viewerId": "V02"}); status != http.StatusOK {
		t.Fatalf("reassign: expected 200, got %d", status)
	}
	if status, _ = s.do(t, http.MethodDelete, path, admin, nil); status != http.StatusOK {
		t.Fatalf("remove: expected 200, got %d", status)
	}
	if status, _ = s.do(t, http.MethodDelete, path, admin, nil); status != http.StatusNotFound {
		t.Fatalf("second remove: expected 404, got %d", status)
	}
}

func TestLeaveEndpoints(t *testing.T) {
	s := newServer(t)
	viewer := s.token(t, "V01", models.RoleViewer)
	editor := s.token(t, "E01", models.RoleEditor)
	admin := s.token(t, "ADMIN", models.RoleAdmin)

	status, body := s.do(t, http.MethodPost, "/api/leaves", viewer, map[string]any{
		"leaveType": "SICKLEAVE",
		"startDate": "2024-12-10",
		"endDate":   "2024-12-12",
		"totalDays": 3,
		"reason":    "Flu",
	})
	if status != http.StatusCreated {
		t.Fatalf("apply: expected 201, got %d: %s", status, body)
	}
	var leave struct {
		ID     uint   `json:"id"`
		UserID string `json:"userId"`
		Status string `json:"status"`
	}
	testutil.Decode(t, body, &leave)
	if leave.UserID != "V01" || leave.Status != "PENDING" {
		t.Fatalf("unexpected leave %s", body)
	}
	if !bytes.Contains(body, []byte(`"startDate":"2024-12-10"`)) || !bytes.Contains(body, []byte(`"endDate":"2024-12-12"`)) {
		t.Fatalf("expected dates echoed as YYYY-MM-DD, got %s", body)
	}
	id := strconv.FormatUint(uint64(leave.ID), 10)

	cases := []struct {
		name   string
		path   string
		body   map[string]string
		status int
	}{
		{"non numeric id", "/api/leaves/status/abc", map[string]string{"status": "APPROVED", "approvedBy": "E01"}, http.StatusBadRequest},
		{"missing actor", "/api/leaves/status/" + id, map[string]string{"status": "APPROVED"}, http.StatusBadRequest},
		{"unknown actor", "/api/leaves/status/" + id, map[string]string{"status": "APPROVED", "approvedBy": "E404"}, http.StatusNotFound},
		{"invalid status", "/api/leaves/status/" + id, map[string]string{"status": "MAYBE", "approvedBy": "E01"}, http.StatusBadRequest},
		{"unknown leave", "/api/leaves/status/9999", map[string]string{"status": "APPROVED", "approvedBy": "E01"}, http.StatusNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, body := s.do(t, http.MethodPut, tc.path, editor, tc.body)
			if status != tc.status {
				t.Fatalf("expected %d, got %d: %s", tc.status, status, body)
			}
		})
	}

	status, body = s.do(t, http.MethodPut, "/api/leaves/status/"+id, editor, map[string]string{"status": "approved", "approvedBy": "E01"})
	if status != http.StatusOK {
		t.Fatalf("decide: expected 200, got %d: %s", status, body)
	}
	testutil.Decode(t, body, &leave)
	if leave.Status != "APPROVED" {
		t.Fatalf("expected APPROVED, got %s", leave.Status)
	}

	status, _ = s.do(t, http.MethodGet, "/api/leaves/all", editor, nil)
	if status != http.StatusOK {
		t.Fatalf("list all: expected 200, got %d", status)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/leaves/export", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+admin)
	resp, err := s.app.Test(req, -1)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("export: expected 200, got %d", resp.StatusCode)
	}
	if ct := resp.Header.Get(fiber.HeaderContentType); ct != "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet" {
		t.Fatalf("unexpected export content type %q", ct)
	}

	other := s.token(t, "V02", models.RoleViewer)
	if status, _ = s.do(t, http.MethodDelete, "/api/leaves/"+id, other, nil); status != http.StatusForbidden {
		t.Fatalf("delete by other viewer: expected 403, got %d", status)
	}
	if status, _ = s.do(t, http.MethodDelete, "/api/leaves/"+id, viewer, nil); status != http.StatusOK {
		t.Fatalf("delete by owner: expected 200, got %d", status)
	}
	if status, _ = s.do(t, http.MethodDelete, "/api/leaves/"+id, admin, nil); status != http.StatusNotFound {
		t.Fatalf("second delete: expected 404, got %d", status)
	}
}

func TestUserEndpoints(t *testing.T) {
	s := newServer(t)
	admin := s.token(t, "ADMIN", models.RoleAdmin)

	status, body := s.do(t, http.MethodPost, "/user", admin, map[string]string{
		"userId": "U010", "email": "u010@example.com", "password": "longenough", "role": "VIEWER",
	})
	if status != http.StatusCreated {
		t.Fatalf("create: expected 201, got %d: %s", status, body)
	}
	if bytes.Contains(body, []byte("longenough")) || bytes.Contains(body, []byte(`"password"`)) {
		t.Fatalf("password serialized: %s", body)
	}

	status, _ = s.do(t, http.MethodPost, "/user", admin, map[string]string{
		"userId": "U010", "email": "x@example.com", "password": "longenough", "role": "VIEWER",
	})
	if status != http.StatusConflict {
		t.Fatalf("duplicate: expected 409, got %d", status)
	}

	if status, _ = s.do(t, http.MethodPut, "/user/U010", admin, map[string]string{"role": "EDITOR"}); status != http.StatusOK {
		t.Fatalf("update: expected 200, got %d", status)
	}
	if status, _ = s.do(t, http.MethodGet, "/user/U404", admin, nil); status != http.StatusNotFound {
		t.Fatalf("get unknown: expected 404, got %d", status)
	}
	if status, _ = s.do(t, http.MethodDelete, "/user/U010", admin, nil); status != http.StatusOK {
		t.Fatalf("delete: expected 200, got %d", status)
	}
	if status, _ = s.do(t, http.MethodDelete, "/user/U010", admin, nil); status != http.StatusNotFound {
		t.Fatalf("second delete: expected 404, got %d", status)
	}

	status, body = s.do(t, http.MethodGet, "/api/audit?entityType=user&entityId=U010", admin, nil)
	if status != http.StatusOK {
		t.Fatalf("audit: expected 200, got %d", status)
	}
	var entries []models.AuditLog
	testutil.Decode(t, body, &entries)
	if len(entries) != 3 {
		t.Fatalf("expected create, update and delete audit entries, got %d", len(entries))
	}
}

func TestProfileAndModules(t *testing.T) {
	s := newServer(t)
	viewer := s.token(t, "V01", models.RoleViewer)

	status, body := s.do(t, http.MethodPost, "/api/users/V01/personal-details", viewer, map[string]string{"firstName": "Ada", "lastName": "Lovelace"})
	if status != http.StatusCreated {
		t.Fatalf("personal details: expected 201, got %d: %s", status, body)
	}

	status, body = s.do(t, http.MethodGet, "/api/profile/V01", viewer, nil)
	if status != http.StatusOK {
		t.Fatalf("profile: expected 200, got %d", status)
	}
	var p services.Profile
	testutil.Decode(t, body, &p)
	if p.PersonalDetails == nil || p.PersonalDetails.FirstName != "Ada" || p.BankDetails != nil {
		t.Fatalf("unexpected profile %s", body)
	}

	other := s.token(t, "V02", models.RoleViewer)
	if status, _ = s.do(t, http.MethodGet, "/api/profile/V01", other, nil); status != http.StatusForbidden {
		t.Fatalf("other viewer profile: expected 403, got %d", status)
	}
}

func TestUpload(t *testing.T) {
	s := newServer(t)
	viewer := s.token(t, "V01", models.RoleViewer)

	send := func(filename string) int {
		var buf bytes.Buffer
		w := multipart.NewWriter(&buf)
		part, err := w.CreateFormFile("image", filename)
		if err != nil {
			t.Fatalf("form file: %v", err)
		}
		part.Write([]byte("\x89PNG\r\n\x1a\nfake"))
		w.Close()

		req := httptest.NewRequest(http.MethodPost, "/api/upload", &buf)
		req.Header.Set(fiber.HeaderContentType, w.FormDataContentType())
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+viewer)
		resp, err := s.app.Test(req, -1)
		if err != nil {
			t.Fatalf("upload: %v", err)
		}
		resp.Body.Close()
		return resp.StatusCode
	}

	if status := send("avatar.png"); status != http.StatusCreated {
		t.Fatalf("png: expected 201, got %d", status)
	}
	if status := send("script.sh"); status != http.StatusBadRequest {
		t.Fatalf("sh: expected 400, got %d", status)
	}
}

func TestEditorScope(t *testing.T) {
	s := newServer(t)
	admin := s.token(t, "ADMIN", models.RoleAdmin)
	editor := s.token(t, "E01", models.RoleEditor)

	bankBody := func(userID string) map[string]string {
		return map[string]string{
			"userId": userID, "bankName": "First Bank", "accountHolder": "Holder",
			"accountNumber": "000123", "ifscCode": "FBIN0001",
		}
	}
	leaveBody := func(userID string) map[string]any {
		return map[string]any{
			"userId": userID, "leaveType": "CASUALLEAVE",
			"startDate": "2025-01-06", "endDate": "2025-01-06", "totalDays": 1, "reason": "Errand",
		}
	}

	denied := []struct {
		name   string
		method string
		path   string
		body   any
	}{
		{"bank for admin", http.MethodPost, "/api/bank", bankBody("ADMIN")},
		{"bank for unassigned viewer", http.MethodPost, "/api/bank", bankBody("V02")},
		{"leave for unassigned viewer", http.MethodPost, "/api/leaves", leaveBody("V02")},
		{"leaves of unassigned viewer", http.MethodGet, "/api/leaves/V02", nil},
		{"profile of admin", http.MethodGet, "/api/profile/ADMIN", nil},
		{"personal details of unassigned viewer", http.MethodGet, "/api/users/V02/personal-details", nil},
		{"education of unassigned viewer", http.MethodGet, "/api/education/V02", nil},
		{"user record of unassigned viewer", http.MethodGet, "/user/V02", nil},
	}
	for _, tc := range denied {
		t.Run(tc.name, func(t *testing.T) {
			status, body := s.do(t, tc.method, tc.path, editor, tc.body)
			if status != http.StatusForbidden {
				t.Fatalf("expected 403, got %d: %s", status, body)
			}
		})
	}

	if status, body := s.do(t, http.MethodPost, "/api/assignment", admin, map[string]string{"editorId": "E01", "viewerId": "V02"}); status != http.StatusCreated {
		t.Fatalf("assign: expected 201, got %d: %s", status, body)
	}

	allowed := []struct {
		name   string
		method string
		path   string
		body   any
		status int
	}{
		{"bank for assigned viewer", http.MethodPost, "/api/bank", bankBody("V02"), http.StatusCreated},
		{"leave for assigned viewer", http.MethodPost, "/api/leaves", leaveBody("V02"), http.StatusCreated},
		{"leaves of assigned viewer", http.MethodGet, "/api/leaves/V02", nil, http.StatusOK},
		{"profile of assigned viewer", http.MethodGet, "/api/profile/V02", nil, http.StatusOK},
		{"user record of assigned viewer", http.MethodGet, "/user/V02", nil, http.StatusOK},
		{"own profile", http.MethodGet, "/api/profile/E01", nil, http.StatusOK},
	}
	for _, tc := range allowed {
		t.Run(tc.name, func(t *testing.T) {
			status, body := s.do(t, tc.method, tc.path, editor, tc.body)
			if status != tc.status {
				t.Fatalf("expected %d, got %d: %s", tc.status, status, body)
			}
		})
	}

	if status, _ := s.do(t, http.MethodGet, "/api/profile/ADMIN", editor, nil); status != http.StatusForbidden {
		t.Fatalf("admin profile after assignment: expected 403, got %d", status)
	}
}
