package database

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ahmetcoskunkizilkaya/hr-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/hr-backend/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// coreModels are the tables every deployment has. Detail modules migrate
// their own models on top.
var coreModels = []interface{}{
	&models.User{},
	&models.RefreshToken{},
	&models.Assignment{},
	&models.LeaveRequest{},
	&models.AuditLog{},
	&models.SystemLog{},
}

// Open wraps gorm.Open with the settings shared by the server and tests.
// Driver errors are translated so unique violations surface as
// gorm.ErrDuplicatedKey.
func Open(dialector gorm.Dialector, level logger.LogLevel) (*gorm.DB, error) {
	return gorm.Open(dialector, &gorm.Config{
		Logger:         logger.Default.LogMode(level),
		TranslateError: true,
	})
}

// Connect opens the Postgres pool described by cfg.
func Connect(cfg *config.Config) (*gorm.DB, error) {
	db, err := Open(postgres.Open(cfg.DSN()), logger.Warn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(5 * time.Minute)

	slog.Info("database connected", "host", cfg.DBHost, "name", cfg.DBName)
	return db, nil
}

// Migrate creates or updates the core tables and any extra module tables.
func Migrate(db *gorm.DB, extra ...interface{}) error {
	if err := db.AutoMigrate(coreModels...); err != nil {
		return fmt.Errorf("migrate core models: %w", err)
	}
	if len(extra) == 0 {
		return nil
	}
	if err := db.AutoMigrate(extra...); err != nil {
		return fmt.Errorf("migrate module models: %w", err)
	}
	return nil
}

func Ping(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
