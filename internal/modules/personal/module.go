package personal

import (
	"github.com/ahmetcoskunkizilkaya/hr-backend/internal/config"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type Module struct{}

func New() *Module {
	return &Module{}
}

func (m *Module) ID() string { return "personal" }

func (m *Module) Models() []interface{} {
	return []interface{}{&Details{}}
}

func (m *Module) RegisterRoutes(router fiber.Router, db *gorm.DB, cfg *config.Config) {
	handler := NewHandler(NewService(db))

	details := router.Group("/users/:userId/personal-details")
	details.Post("/", handler.Create)
	details.Get("/", handler.Get)
	details.Put("/", handler.Update)
	details.Delete("/", handler.Delete)
}
