package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ahmetcoskunkizilkaya/hr-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/hr-backend/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/hr-backend/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/hr-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/hr-backend/internal/modules"
	"github.com/ahmetcoskunkizilkaya/hr-backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func Config() *config.Config {
	return &config.Config{
		JWTSecret:          "test-secret",
		JWTAccessExpiry:    15 * time.Minute,
		JWTRefreshExpiry:   time.Hour,
		RateLimitPerMinute: 1000,
		CORSOrigins:        "*",
	}
}

// Token signs an access token for userID. The user row does not have to
// exist.
func Token(t *testing.T, cfg *config.Config, userID string, role models.Role) string {
	t.Helper()

	token, err := services.SignAccessToken(cfg, &models.User{
		UserID: userID,
		Email:  userID + "@example.com",
		Role:   role,
	})
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

// ModuleApp mounts mod under /api behind the JWT middleware, the way the
// server does.
func ModuleApp(db *gorm.DB, cfg *config.Config, mod modules.Module) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: handlers.ErrorHandler})
	mod.RegisterRoutes(app.Group("/api", middleware.JWTProtected(cfg)), db, cfg)
	return app
}

// Do sends body as JSON and returns the status code and raw response body.
func Do(t *testing.T, app *fiber.App, method, path, token string, body any) (int, []byte) {
	t.Helper()

	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		r = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return resp.StatusCode, data
}

// Decode unmarshals a response body into v.
func Decode(t *testing.T, data []byte, v any) {
	t.Helper()
	if err := json.Unmarshal(data, v); err != nil {
		t.Fatalf("decode %s: %v", data, err)
	}
}
