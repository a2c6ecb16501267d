// Package modules holds the per-user detail record types. Each one owns its
// models and routes and is mounted the same way.
package modules

import (
	"errors"
	"log/slog"

	"github.com/ahmetcoskunkizilkaya/hr-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/hr-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/hr-backend/internal/session"
	"github.com/ahmetcoskunkizilkaya/hr-backend/internal/store"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

var ErrUserNotFound = errors.New("user not found")

// Module defines the interface every detail module implements.
type Module interface {
	// ID returns a short unique name used in logs.
	ID() string

	// Models returns the GORM model pointers for AutoMigrate. Every model
	// must carry a user_id column; deleting a user removes matching rows.
	Models() []interface{}

	// RegisterRoutes mounts the module's routes on a group that is already
	// prefixed with /api and has JWT middleware applied.
	RegisterRoutes(router fiber.Router, db *gorm.DB, cfg *config.Config)
}

// RequireUser returns ErrUserNotFound unless userID names an existing user.
func RequireUser(db *gorm.DB, userID string) error {
	exists, err := store.Exists(db, &models.User{}, "user_id = ?", userID)
	if err != nil {
		return err
	}
	if !exists {
		return ErrUserNotFound
	}
	return nil
}

// Authorize checks that the caller may manage userID's records. Failures
// come back as a *fiber.Error; denied is the 403 message.
func Authorize(c *fiber.Ctx, db *gorm.DB, userID, denied string) error {
	sess, err := session.FromCtx(c)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized")
	}
	ok, err := sess.CanManage(db, userID)
	if err != nil {
		slog.Error("assignment lookup failed", "path", c.Path(), "error", err)
		return fiber.NewError(fiber.StatusInternalServerError, "Internal server error")
	}
	if !ok {
		return fiber.NewError(fiber.StatusForbidden, denied)
	}
	return nil
}

// OwnedModels flattens the models of mods.
func OwnedModels(mods []Module) []interface{} {
	var out []interface{}
	for _, m := range mods {
		out = append(out, m.Models()...)
	}
	return out
}
