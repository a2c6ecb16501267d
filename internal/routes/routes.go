package routes

import (
	"time"

	"github.com/ahmetcoskunkizilkaya/hr-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/hr-backend/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/hr-backend/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/hr-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/hr-backend/internal/modules"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"gorm.io/gorm"
)

type Handlers struct {
	Auth       *handlers.AuthHandler
	Health     *handlers.HealthHandler
	User       *handlers.UserHandler
	Assignment *handlers.AssignmentHandler
	Leave      *handlers.LeaveHandler
	Profile    *handlers.ProfileHandler
	Audit      *handlers.AuditHandler
	Upload     *handlers.UploadHandler
}

func Setup(app *fiber.App, cfg *config.Config, db *gorm.DB, h Handlers, mods []modules.Module) {
	jwt := middleware.JWTProtected(cfg)
	adminOnly := middleware.RequireRole(models.RoleAdmin)
	approvers := middleware.RequireRole(models.RoleAdmin, models.RoleEditor)

	// Users (mounted outside /api)
	users := app.Group("/user", jwt)
	users.Post("/", adminOnly, h.User.Create)
	users.Get("/", approvers, h.User.List)
	users.Get("/:userId", h.User.Get)
	users.Put("/:userId", adminOnly, h.User.Update)
	users.Delete("/:userId", adminOnly, h.User.Delete)

	api := app.Group("/api")

	// General API rate limit per IP
	api.Use(limiter.New(limiter.Config{
		Max:               cfg.RateLimitPerMinute,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	api.Get("/health", h.Health.Check)

	// Auth: stricter limit of 10 req/min per IP
	auth := api.Group("/auth")
	auth.Use(limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	auth.Post("/login", h.Auth.Login)
	auth.Post("/refresh", h.Auth.Refresh)
	auth.Post("/logout", jwt, h.Auth.Logout)

	// Routes registered above match first; everything below requires a JWT.
	protected := api.Group("", jwt)

	// Assignments
	protected.Post("/assignment", adminOnly, h.Assignment.Create)
	protected.Get("/assignment", h.Assignment.List)
	protected.Put("/assignment/:id", adminOnly, h.Assignment.Update)
	protected.Delete("/assignment/:id", adminOnly, h.Assignment.Delete)

	// Leaves: fixed paths before /:userId
	protected.Post("/leaves", h.Leave.Apply)
	protected.Put("/leaves/status/:id", approvers, h.Leave.Decide)
	protected.Put("/leaves/reject/:id", approvers, h.Leave.Reject)
	protected.Get("/leaves/all", approvers, h.Leave.ListAll)
	protected.Get("/leaves/export", adminOnly, h.Leave.Export)
	protected.Get("/leaves/:userId", h.Leave.ListByUser)
	protected.Delete("/leaves/:id", h.Leave.Delete)

	// Read-side views
	protected.Get("/profile/:userId", h.Profile.Get)
	protected.Get("/dashboard/editor/:editorId", approvers, h.Profile.EditorDashboard)
	protected.Get("/audit", adminOnly, h.Audit.List)

	protected.Post("/upload", h.Upload.Upload)

	// Detail modules
	for _, m := range mods {
		m.RegisterRoutes(protected, db, cfg)
	}
}
