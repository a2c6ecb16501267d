package middleware

import (
	"github.com/ahmetcoskunkizilkaya/hr-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/hr-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/hr-backend/internal/session"
	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
)

// JWTProtected verifies the bearer token and then the claims themselves: a
// token without a subject or with a role outside ADMIN/EDITOR/VIEWER is
// rejected here so handlers can trust session.FromCtx.
func JWTProtected(cfg *config.Config) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey: jwtware.SigningKey{JWTAlg: jwtware.HS256, Key: []byte(cfg.JWTSecret)},
		SuccessHandler: func(c *fiber.Ctx) error {
			sess, err := session.FromCtx(c)
			if err != nil || !sess.Role.IsValid() {
				return rejectToken(c)
			}
			return c.Next()
		},
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return rejectToken(c)
		},
	})
}

func rejectToken(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
		Error:   true,
		Message: "Unauthorized: invalid or expired token",
	})
}
