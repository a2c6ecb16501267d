package handlers

import (
	"errors"
	"log/slog"

	"github.com/ahmetcoskunkizilkaya/hr-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/hr-backend/internal/services"
	"github.com/ahmetcoskunkizilkaya/hr-backend/internal/storage"
	"github.com/ahmetcoskunkizilkaya/hr-backend/internal/store"
	"github.com/ahmetcoskunkizilkaya/hr-backend/internal/validation"
	"github.com/gofiber/fiber/v2"
)

var errorStatus = []struct {
	target error
	status int
}{
	{validation.ErrMissingField, fiber.StatusBadRequest},
	{validation.ErrInvalidField, fiber.StatusBadRequest},
	{services.ErrInvalidID, fiber.StatusBadRequest},
	{services.ErrMissingActor, fiber.StatusBadRequest},
	{services.ErrInvalidStatus, fiber.StatusBadRequest},
	{storage.ErrUnsupportedType, fiber.StatusBadRequest},
	{services.ErrInvalidCredentials, fiber.StatusUnauthorized},
	{services.ErrInvalidToken, fiber.StatusUnauthorized},
	{services.ErrUserNotFound, fiber.StatusNotFound},
	{services.ErrActorNotFound, fiber.StatusNotFound},
	{services.ErrLeaveNotFound, fiber.StatusNotFound},
	{services.ErrAssignmentNotFound, fiber.StatusNotFound},
	{store.ErrNotFound, fiber.StatusNotFound},
	{services.ErrUserExists, fiber.StatusConflict},
	{services.ErrDuplicateAssignment, fiber.StatusConflict},
	{store.ErrDuplicate, fiber.StatusConflict},
}

func statusFor(err error) int {
	for _, e := range errorStatus {
		if errors.Is(err, e.target) {
			return e.status
		}
	}
	return fiber.StatusInternalServerError
}

// respondError writes err with its mapped status. Server errors are logged
// and their message is not sent to the client.
func respondError(c *fiber.Ctx, err error) error {
	status := statusFor(err)
	message := err.Error()
	if status >= fiber.StatusInternalServerError {
		slog.Error("request failed",
			"method", c.Method(),
			"path", c.Path(),
			"request_id", c.GetRespHeader(fiber.HeaderXRequestID),
			"error", err.Error(),
		)
		message = "Internal server error"
	}
	return c.Status(status).JSON(dto.ErrorResponse{Error: true, Message: message})
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: true, Message: message})
}

func unauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: true, Message: "Unauthorized"})
}

func forbidden(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Error: true, Message: message})
}

// bind parses the JSON body into req and validates it. The returned error is
// a *fiber.Error for ErrorHandler to render.
func bind(c *fiber.Ctx, req any) error {
	if err := c.BodyParser(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validation.Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	return nil
}

// ErrorHandler is the Fiber fallback for errors returned by handlers and
// middleware, including *fiber.Error.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal server error"
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
		message = fe.Message
	}

	// Only expose error details for client errors (4xx), not server errors (5xx)
	if code >= fiber.StatusInternalServerError {
		slog.Error("unhandled server error", "method", c.Method(), "path", c.Path(), "error", err.Error())
		message = "Internal server error"
	}

	return c.Status(code).JSON(dto.ErrorResponse{Error: true, Message: message})
}
