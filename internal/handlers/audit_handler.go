package handlers

import (
	"github.com/ahmetcoskunkizilkaya/hr-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type AuditHandler struct {
	audit *services.AuditService
}

func NewAuditHandler(audit *services.AuditService) *AuditHandler {
	return &AuditHandler{audit: audit}
}

// List handles GET /api/audit?entityType=leave_request&entityId=1&limit=50
func (h *AuditHandler) List(c *fiber.Ctx) error {
	logs, err := h.audit.List(c.Query("entityType"), c.Query("entityId"), c.QueryInt("limit", 100))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(logs)
}
