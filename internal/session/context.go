// Package session exposes the authenticated caller to handlers as a typed
// value instead of raw JWT claims.
package session

import (
	"errors"

	"github.com/ahmetcoskunkizilkaya/hr-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/hr-backend/internal/store"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"
)

var ErrNoSession = errors.New("no authenticated session")

type Session struct {
	UserID string
	Email  string
	Role   models.Role
}

func (s *Session) HasRole(roles ...models.Role) bool {
	for _, r := range roles {
		if s.Role == r {
			return true
		}
	}
	return false
}

// CanManage reports whether the caller may read or write records owned by
// userID: the owner themselves, an admin, or an editor the user is assigned
// to.
func (s *Session) CanManage(db *gorm.DB, userID string) (bool, error) {
	if s.UserID == userID || s.HasRole(models.RoleAdmin) {
		return true, nil
	}
	if !s.HasRole(models.RoleEditor) {
		return false, nil
	}
	return store.Exists(db.Scopes(store.ForEditor(s.UserID)), &models.Assignment{}, "viewer_id = ?", userID)
}

// FromCtx extracts the session from the JWT stored by the auth middleware.
func FromCtx(c *fiber.Ctx) (*Session, error) {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok || token == nil {
		return nil, ErrNoSession
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("invalid claims")
	}

	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return nil, errors.New("missing sub claim")
	}

	email, _ := claims["email"].(string)
	role, _ := claims["role"].(string)

	return &Session{UserID: sub, Email: email, Role: models.Role(role)}, nil
}
