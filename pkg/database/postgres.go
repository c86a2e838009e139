package database

import (
	"fmt"

	"github.com/miseventos/backend/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewPostgresDB connects, migrates the schema and installs the DB-level
// registration constraint.
func NewPostgresDB(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Event{},
		&models.Session{},
		&models.Attendance{},
	); err != nil {
		return nil, fmt.Errorf("auto-migrate: %w", err)
	}

	// Partial unique index: at most one non-cancelled attendance per
	// (session, user), even if the row lock discipline is bypassed.
	if err := db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS idx_attendance_active
		ON attendances (session_id, user_id)
		WHERE status <> 'cancelled' AND deleted_at IS NULL
	`).Error; err != nil {
		return nil, fmt.Errorf("create attendance index: %w", err)
	}

	return db, nil
}
