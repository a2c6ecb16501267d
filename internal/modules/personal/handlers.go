package personal

import (
	"errors"
	"log/slog"

	"github.com/ahmetcoskunkizilkaya/hr-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/hr-backend/internal/modules"
	"github.com/ahmetcoskunkizilkaya/hr-backend/internal/validation"
	"github.com/gofiber/fiber/v2"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// authorize resolves the path user and checks the caller may manage it.
func (h *Handler) authorize(c *fiber.Ctx) (string, error) {
	userID := c.Params("userId")
	if err := modules.Authorize(c, h.service.db, userID, "You cannot manage this user's personal details"); err != nil {
		return "", err
	}
	return userID, nil
}

func (h *Handler) Create(c *fiber.Ctx) error {
	userID, err := h.authorize(c)
	if err != nil {
		return err
	}

	var req CreateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	d, err := h.service.Create(userID, &req)
	if err != nil {
		return h.fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(d)
}

func (h *Handler) Get(c *fiber.Ctx) error {
	userID, err := h.authorize(c)
	if err != nil {
		return err
	}

	d, err := h.service.Get(userID)
	if err != nil {
		return h.fail(c, err)
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
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	d, err := h.service.Update(userID, &req)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(d)
}

func (h *Handler) Delete(c *fiber.Ctx) error {
	userID, err := h.authorize(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(userID); err != nil {
		return h.fail(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "Personal details deleted"})
}

func (h *Handler) fail(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, validation.ErrMissingField), errors.Is(err, validation.ErrInvalidField):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: true, Message: err.Error()})
	case errors.Is(err, modules.ErrUserNotFound), errors.Is(err, ErrDetailsNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: true, Message: err.Error()})
	case errors.Is(err, ErrDetailsExist):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Error: true, Message: err.Error()})
	}
	slog.Error("personal details request failed", "path", c.Path(), "error", err)
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
		Error: true, Message: "Internal server error",
	})
}
