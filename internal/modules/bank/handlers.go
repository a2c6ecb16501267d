package bank

import (
	"errors"
	"log/slog"

	"github.com/ahmetcoskunkizilkaya/hr-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/hr-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/hr-backend/internal/modules"
	"github.com/ahmetcoskunkizilkaya/hr-backend/internal/session"
	"github.com/ahmetcoskunkizilkaya/hr-backend/internal/validation"
	"github.com/gofiber/fiber/v2"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Create(c *fiber.Ctx) error {
	if _, err := session.FromCtx(c); err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized")
	}

	var req CreateRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if req.UserID != "" {
		if err := modules.Authorize(c, h.service.db, req.UserID, "You cannot manage this user's bank details"); err != nil {
			return err
		}
	}

	d, err := h.service.Create(&req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(d)
}

// List is restricted to admins and editors; viewers read their own row.
func (h *Handler) List(c *fiber.Ctx) error {
	sess, err := session.FromCtx(c)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized")
	}
	if !sess.HasRole(models.RoleAdmin, models.RoleEditor) {
		return fiber.NewError(fiber.StatusForbidden, "Insufficient role for this action")
	}

	all, err := h.service.List()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(all)
}

func (h *Handler) Get(c *fiber.Ctx) error {
	userID, err := h.authorize(c)
	if err != nil {
		return err
	}

	d, err := h.service.Get(userID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(d)
}

func (h *Handler) Update(c *fiber.Ctx) error {
	userID, err := h.authorize(c)
	if err != nil {
		return err
	}

	var req UpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	d, err := h.service.Update(userID, &req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(d)
}

func (h *Handler) Delete(c *fiber.Ctx) error {
	userID, err := h.authorize(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(userID); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "Bank details deleted"})
}

func (h *Handler) authorize(c *fiber.Ctx) (string, error) {
	userID := c.Params("userId")
	if err := modules.Authorize(c, h.service.db, userID, "You cannot manage this user's bank details"); err != nil {
		return "", err
	}
	return userID, nil
}

func respondError(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	switch {
	case errors.Is(err, validation.ErrMissingField), errors.Is(err, validation.ErrInvalidField):
		status = fiber.StatusBadRequest
	case errors.Is(err, modules.ErrUserNotFound), errors.Is(err, ErrDetailsNotFound):
		status = fiber.StatusNotFound
	case errors.Is(err, ErrDetailsExist):
		status = fiber.StatusConflict
	default:
		slog.Error("bank details request failed", "path", c.Path(), "error", err)
		return c.Status(status).JSON(dto.ErrorResponse{Error: true, Message: "Internal server error"})
	}
	return c.Status(status).JSON(dto.ErrorResponse{Error: true, Message: err.Error()})
}
