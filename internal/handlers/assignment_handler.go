package handlers

import (
	"strconv"

	"github.com/ahmetcoskunkizilkaya/hr-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/hr-backend/internal/services"
	"github.com/ahmetcoskunkizilkaya/hr-backend/internal/session"
	"github.com/gofiber/fiber/v2"
)

type AssignmentHandler struct {
	assignments *services.AssignmentService
}

func NewAssignmentHandler(assignments *services.AssignmentService) *AssignmentHandler {
	return &AssignmentHandler{assignments: assignments}
}

func (h *AssignmentHandler) Create(c *fiber.Ctx) error {
	sess, err := session.FromCtx(c)
	if err != nil {
		return unauthorized(c)
	}

	var req dto.AssignRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	a, err := h.assignments.Assign(sess.UserID, &req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(a)
}

// List accepts an optional ?editorId= filter.
func (h *AssignmentHandler) List(c *fiber.Ctx) error {
	views, err := h.assignments.List(c.Query("editorId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(views)
}

func (h *AssignmentHandler) Update(c *fiber.Ctx) error {
	sess, err := session.FromCtx(c)
	if err != nil {
		return unauthorized(c)
	}

	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return badRequest(c, "Invalid assignment ID")
	}

	var req dto.ReassignRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	a, err := h.assignments.Reassign(sess.UserID, uint(id), &req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(a)
}

func (h *AssignmentHandler) Delete(c *fiber.Ctx) error {
	sess, err := session.FromCtx(c)
	if err != nil {
		return unauthorized(c)
	}

	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return badRequest(c, "Invalid assignment ID")
	}

	if err := h.assignments.Remove(sess.UserID, uint(id)); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "Assignment deleted successfully"})
}
