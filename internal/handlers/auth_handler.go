package handlers

import (
	"github.com/ahmetcoskunkizilkaya/hr-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/hr-backend/internal/services"
	"github.com/ahmetcoskunkizilkaya/hr-backend/internal/session"
	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	auth *services.AuthService
}

func NewAuthHandler(auth *services.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	resp, err := h.auth.Login(&req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	var req dto.RefreshRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	resp, err := h.auth.Refresh(&req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// Logout revokes the caller's refresh token. The access token stays valid
// until it expires.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	sess, err := session.FromCtx(c)
	if err != nil {
		return unauthorized(c)
	}

	var req dto.LogoutRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	if err := h.auth.Logout(sess.UserID, &req); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "Logged out successfully"})
}
