package handlers

import (
	"github.com/ahmetcoskunkizilkaya/hr-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/hr-backend/internal/modules"
	"github.com/ahmetcoskunkizilkaya/hr-backend/internal/services"
	"github.com/ahmetcoskunkizilkaya/hr-backend/internal/session"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type UserHandler struct {
	users *services.UserService
	db    *gorm.DB
}

func NewUserHandler(users *services.UserService, db *gorm.DB) *UserHandler {
	return &UserHandler{users: users, db: db}
}

func (h *UserHandler) Create(c *fiber.Ctx) error {
	sess, err := session.FromCtx(c)
	if err != nil {
		return unauthorized(c)
	}

	var req dto.CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	user, err := h.users.Create(sess.UserID, &req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(user)
}

func (h *UserHandler) List(c *fiber.Ctx) error {
	users, err := h.users.List()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(users)
}

// Get is open to the user themselves, admins and the user's editor.
func (h *UserHandler) Get(c *fiber.Ctx) error {
	userID := c.Params("userId")
	if err := modules.Authorize(c, h.db, userID, "You cannot view this user"); err != nil {
		return err
	}

	user, err := h.users.Get(userID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(user)
}

func (h *UserHandler) Update(c *fiber.Ctx) error {
	sess, err := session.FromCtx(c)
	if err != nil {
		return unauthorized(c)
	}

	var req dto.UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	user, err := h.users.Update(sess.UserID, c.Params("userId"), &req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(user)
}

func (h *UserHandler) Delete(c *fiber.Ctx) error {
	sess, err := session.FromCtx(c)
	if err != nil {
		return unauthorized(c)
	}

	if err := h.users.Delete(sess.UserID, c.Params("userId")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "User deleted successfully"})
}
