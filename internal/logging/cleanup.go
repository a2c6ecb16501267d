package logging

import (
	"context"
	"log/slog"
	"time"

	"github.com/ahmetcoskunkizilkaya/hr-backend/internal/models"
	"gorm.io/gorm"
)

const (
	retentionDays   = 30
	cleanupInterval = 24 * time.Hour
)

// RunCleanup purges system logs past retention once at start and then daily
// until ctx is cancelled. Run it in its own goroutine.
func RunCleanup(ctx context.Context, db *gorm.DB) {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for {
		sweep(db)
		select {
		case <-ticker.C:
		case <-ctx.Done():
			return
		}
	}
}

func sweep(db *gorm.DB) {
	deleted, err := PurgeBefore(db, time.Now().AddDate(0, 0, -retentionDays))
	if err != nil {
		slog.Error("log cleanup failed", "error", err)
		return
	}
	if deleted > 0 {
		slog.Info("log cleanup completed", "deleted", deleted)
	}
}

// PurgeBefore deletes system logs recorded before cutoff.
func PurgeBefore(db *gorm.DB, cutoff time.Time) (int64, error) {
	result := db.Where("timestamp < ?", cutoff).Delete(&models.SystemLog{})
	return result.RowsAffected, result.Error
}
