package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type AuditAction string

const (
	AuditCreate       AuditAction = "create"
	AuditUpdate       AuditAction = "update"
	AuditDelete       AuditAction = "delete"
	AuditStatusChange AuditAction = "status_change"
)

// AuditLog records who changed what, with the row before and after the change.
type AuditLog struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	ActorID     string         `gorm:"size:50;index" json:"actorId"`
	EntityType  string         `gorm:"size:50;not null;index:idx_audit_entity" json:"entityType"`
	EntityID    string         `gorm:"size:50;not null;index:idx_audit_entity" json:"entityId"`
	Action      AuditAction    `gorm:"size:20;not null" json:"action"`
	Description string         `gorm:"size:255" json:"description"`
	BeforeData  datatypes.JSON `json:"beforeData"`
	AfterData   datatypes.JSON `json:"afterData"`
	CreatedAt   time.Time      `gorm:"index" json:"createdAt"`
}

func (a *AuditLog) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
