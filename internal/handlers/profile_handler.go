package handlers

import (
	"github.com/ahmetcoskunkizilkaya/hr-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/hr-backend/internal/modules"
	"github.com/ahmetcoskunkizilkaya/hr-backend/internal/services"
	"github.com/ahmetcoskunkizilkaya/hr-backend/internal/session"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type ProfileHandler struct {
	profiles *services.ProfileService
	db       *gorm.DB
}

func NewProfileHandler(profiles *services.ProfileService, db *gorm.DB) *ProfileHandler {
	return &ProfileHandler{profiles: profiles, db: db}
}

func (h *ProfileHandler) Get(c *fiber.Ctx) error {
	userID := c.Params("userId")
	if err := modules.Authorize(c, h.db, userID, "You cannot view this profile"); err != nil {
		return err
	}

	p, err := h.profiles.Profile(userID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(p)
}

// EditorDashboard lets an editor see their own viewers; admins see anyone's.
func (h *ProfileHandler) EditorDashboard(c *fiber.Ctx) error {
	sess, err := session.FromCtx(c)
	if err != nil {
		return unauthorized(c)
	}

	editorID := c.Params("editorId")
	if sess.UserID != editorID && !sess.HasRole(models.RoleAdmin) {
		return forbidden(c, "You can only view your own dashboard")
	}

	d, err := h.profiles.EditorDashboard(editorID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(d)
}
