package education

import (
	"errors"
	"log/slog"
	"strconv"

	"github.com/ahmetcoskunkizilkaya/hr-backend/internal/dto"
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
		if err := modules.Authorize(c, h.service.db, req.UserID, "You cannot manage this user's education records"); err != nil {
			return err
		}
	}

	r, err := h.service.Create(&req)
	if err != nil {
		return h.respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(r)
}

func (h *Handler) List(c *fiber.Ctx) error {
	userID := c.Params("userId")
	if err := modules.Authorize(c, h.service.db, userID, "You cannot view this user's education records"); err != nil {
		return err
	}

	records, err := h.service.ListByUser(userID)
	if err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(records)
}

func (h *Handler) Update(c *fiber.Ctx) error {
	id, err := h.ownedRecord(c)
	if err != nil {
		return err
	}

	var req UpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	r, err := h.service.Update(id, &req)
	if err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(r)
}

func (h *Handler) Delete(c *fiber.Ctx) error {
	id, err := h.ownedRecord(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(id); err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "Education record deleted"})
}

// ownedRecord parses :id and checks the caller may manage the record's owner.
func (h *Handler) ownedRecord(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return 0, fiber.NewError(fiber.StatusBadRequest, "Invalid education record ID")
	}

	r, err := h.service.Get(uint(id))
	if err != nil {
		return 0, h.respondError(c, err)
	}
	if err := modules.Authorize(c, h.service.db, r.UserID, "You cannot manage this user's education records"); err != nil {
		return 0, err
	}
	return r.ID, nil
}

func (h *Handler) respondError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, validation.ErrMissingField),
		errors.Is(err, validation.ErrInvalidField),
		errors.Is(err, ErrYearOrder):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	case errors.Is(err, modules.ErrUserNotFound), errors.Is(err, ErrRecordNotFound):
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	}
	slog.Error("education request failed", "path", c.Path(), "error", err)
	return fiber.NewError(fiber.StatusInternalServerError, "Internal server error")
}
