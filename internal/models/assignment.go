package models

import "time"

// Assignment maps one viewer to the editor that manages it. A viewer has at
// most one assignment; the unique index on viewer_id is what enforces it.
type Assignment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	EditorID  string    `gorm:"size:50;not null;index" json:"editorId"`
	ViewerID  string    `gorm:"size:50;not null;uniqueIndex" json:"viewerId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
