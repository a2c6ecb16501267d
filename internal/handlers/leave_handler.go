package handlers

import (
	"bytes"
	"fmt"
	"time"

	"github.com/ahmetcoskunkizilkaya/hr-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/hr-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/hr-backend/internal/modules"
	"github.com/ahmetcoskunkizilkaya/hr-backend/internal/services"
	"github.com/ahmetcoskunkizilkaya/hr-backend/internal/session"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type LeaveHandler struct {
	leaves *services.LeaveService
	db     *gorm.DB
}

func NewLeaveHandler(leaves *services.LeaveService, db *gorm.DB) *LeaveHandler {
	return &LeaveHandler{leaves: leaves, db: db}
}

// Apply files a request. Viewers may only apply for themselves; editors for
// themselves and their assigned viewers.
func (h *LeaveHandler) Apply(c *fiber.Ctx) error {
	sess, err := session.FromCtx(c)
	if err != nil {
		return unauthorized(c)
	}

	var req dto.ApplyLeaveRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if req.UserID == "" {
		req.UserID = sess.UserID
	}
	if err := modules.Authorize(c, h.db, req.UserID, "You cannot apply for leave for this user"); err != nil {
		return err
	}

	leave, err := h.leaves.Apply(&req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(leave)
}

func (h *LeaveHandler) Decide(c *fiber.Ctx) error {
	var req dto.LeaveStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	leave, err := h.leaves.Decide(c.Params("id"), &req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(leave)
}

func (h *LeaveHandler) Reject(c *fiber.Ctx) error {
	var req dto.RejectLeaveRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	leave, err := h.leaves.Reject(c.Params("id"), req.RejectedBy)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(leave)
}

func (h *LeaveHandler) ListAll(c *fiber.Ctx) error {
	views, err := h.leaves.ListAll()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(views)
}

func (h *LeaveHandler) ListByUser(c *fiber.Ctx) error {
	userID := c.Params("userId")
	if err := modules.Authorize(c, h.db, userID, "You cannot view this user's leave requests"); err != nil {
		return err
	}

	leaves, err := h.leaves.ListByUser(userID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(leaves)
}

// Delete is allowed for the request's owner and for admins.
func (h *LeaveHandler) Delete(c *fiber.Ctx) error {
	sess, err := session.FromCtx(c)
	if err != nil {
		return unauthorized(c)
	}

	leave, err := h.leaves.Get(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	if leave.UserID != sess.UserID && !sess.HasRole(models.RoleAdmin) {
		return forbidden(c, "Only the requester or an admin can delete a leave request")
	}

	if err := h.leaves.Remove(sess.UserID, c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "Leave request deleted successfully"})
}

func (h *LeaveHandler) Export(c *fiber.Ctx) error {
	var buf bytes.Buffer
	if err := h.leaves.ExportXLSX(&buf); err != nil {
		return respondError(c, err)
	}

	filename := fmt.Sprintf("leaves-%s.xlsx", time.Now().UTC().Format("20060102"))
	c.Set(fiber.HeaderContentType, xlsxContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Send(buf.Bytes())
}
