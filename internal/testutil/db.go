// Package testutil opens throwaway databases and HTTP apps for package tests.
package testutil

import (
	"testing"

	"github.com/ahmetcoskunkizilkaya/hr-backend/internal/database"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDB returns an in-memory SQLite database with the core schema and any
// extra models migrated. The pool is pinned to one connection because every
// new connection to ":memory:" would see an empty database.
func NewDB(t *testing.T, extra ...interface{}) *gorm.DB {
	t.Helper()

	db, err := database.Open(sqlite.Open("file::memory:?_foreign_keys=on"), logger.Silent)
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := database.Migrate(db, extra...); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}
