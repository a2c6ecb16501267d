package bank

import (
	"github.com/ahmetcoskunkizilkaya/hr-backend/internal/config"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type Module struct{}

func New() *Module {
	return &Module{}
}

func (m *Module) ID() string { return "bank" }

func (m *Module) Models() []interface{} {
	return []interface{}{&Details{}}
}

func (m *Module) RegisterRoutes(router fiber.Router, db *gorm.DB, cfg *config.Config) {
	handler := NewHandler(NewService(db))

	router.Post("/bank", handler.Create)
	router.Get("/bank", handler.List)
	router.Get("/bank/:userId", handler.Get)
	router.Put("/bank/:userId", handler.Update)
	router.Delete("/bank/:userId", handler.Delete)
}
