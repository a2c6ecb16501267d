package education

import (
	"github.com/ahmetcoskunkizilkaya/hr-backend/internal/config"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type Module struct{}

func New() *Module {
	return &Module{}
}

func (m *Module) ID() string { return "education" }

func (m *Module) Models() []interface{} {
	return []interface{}{&Record{}}
}

func (m *Module) RegisterRoutes(router fiber.Router, db *gorm.DB, cfg *config.Config) {
	handler := NewHandler(NewService(db))

	router.Post("/education", handler.Create)
	router.Get("/education/:userId", handler.List)
	router.Put("/education/:id", handler.Update)
	router.Delete("/education/:id", handler.Delete)
}
