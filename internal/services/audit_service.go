package services

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/ahmetcoskunkizilkaya/hr-backend/internal/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// AuditEntry describes one change. Before and After are marshalled as JSON
// snapshots; nil becomes a JSON null.
type AuditEntry struct {
	ActorID     string
	EntityType  string
	EntityID    string
	Action      models.AuditAction
	Description string
	Before      any
	After       any
}

type AuditService struct {
	db *gorm.DB
}

func NewAuditService(db *gorm.DB) *AuditService {
	return &AuditService{db: db}
}

// Write records e outside of any transaction.
func (s *AuditService) Write(e AuditEntry) error {
	return s.WriteTx(s.db, e)
}

// Record writes e best-effort: a failed write is logged and never fails the
// change it describes.
func (s *AuditService) Record(e AuditEntry) {
	if err := s.Write(e); err != nil {
		slog.Error("audit write failed", "error", err, "entity_type", e.EntityType, "entity_id", e.EntityID)
	}
}

// WriteTx records e on tx so the entry commits or rolls back with the change
// it describes.
func (s *AuditService) WriteTx(tx *gorm.DB, e AuditEntry) error {
	entry := models.AuditLog{
		ActorID:     e.ActorID,
		EntityType:  e.EntityType,
		EntityID:    e.EntityID,
		Action:      e.Action,
		Description: e.Description,
		BeforeData:  snapshot(e.Before),
		AfterData:   snapshot(e.After),
	}
	if err := tx.Create(&entry).Error; err != nil {
		return fmt.Errorf("failed to write audit log: %w", err)
	}
	return nil
}

// List returns the newest entries first, optionally narrowed to one entity
// type and id.
func (s *AuditService) List(entityType, entityID string, limit int) ([]models.AuditLog, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}

	q := s.db.Model(&models.AuditLog{})
	if entityType != "" {
		q = q.Where("entity_type = ?", entityType)
	}
	if entityID != "" {
		q = q.Where("entity_id = ?", entityID)
	}

	var logs []models.AuditLog
	err := q.Order("created_at DESC").Limit(limit).Find(&logs).Error
	return logs, err
}

func snapshot(v any) datatypes.JSON {
	if v == nil {
		return datatypes.JSON("null")
	}
	b, err := json.Marshal(v)
	if err != nil {
		return datatypes.JSON("null")
	}
	return datatypes.JSON(b)
}
