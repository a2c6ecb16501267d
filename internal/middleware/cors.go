package middleware

import (
	"github.com/ahmetcoskunkizilkaya/hr-backend/internal/config"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

// CORS allows the SPA origins from config. Content-Disposition is exposed so
// the browser can read the export filename.
func CORS(cfg *config.Config) fiber.Handler {
	return cors.New(cors.Config{
		AllowOrigins:  cfg.CORSOrigins,
		AllowHeaders:  "Origin, Content-Type, Authorization, Accept, X-Request-ID",
		AllowMethods:  "GET, POST, PUT, DELETE, OPTIONS",
		ExposeHeaders: "Content-Disposition, X-Request-ID",
		MaxAge:        600,
	})
}
