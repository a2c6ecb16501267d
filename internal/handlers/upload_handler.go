package handlers

import (
	"github.com/ahmetcoskunkizilkaya/hr-backend/internal/storage"
	"github.com/gofiber/fiber/v2"
)

type UploadHandler struct {
	storage storage.Storage
}

func NewUploadHandler(s storage.Storage) *UploadHandler {
	return &UploadHandler{storage: s}
}

// Upload stores the multipart field "image" and returns its name and URL.
func (h *UploadHandler) Upload(c *fiber.Ctx) error {
	fh, err := c.FormFile("image")
	if err != nil {
		return badRequest(c, "image is required")
	}

	stored, err := h.storage.Save(c.UserContext(), fh)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(stored)
}
