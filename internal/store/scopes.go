package store

import "gorm.io/gorm"

// ForUser returns a GORM scope that filters by user_id.
func ForUser(userID string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("user_id = ?", userID)
	}
}

// ForEditor returns a GORM scope that filters assignments by editor_id; an
// empty id leaves the query unfiltered.
func ForEditor(editorID string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if editorID == "" {
			return db
		}
		return db.Where("editor_id = ?", editorID)
	}
}
