package repository

import (
	"context"

	"github.com/miseventos/backend/internal/models"
	"gorm.io/gorm"
)

type AttendanceRepository interface {
	Create(ctx context.Context, tx *gorm.DB, attendance *models.Attendance) error
	FindConfirmedByUserAndSession(ctx context.Context, tx *gorm.DB, userID, sessionID uint) (*models.Attendance, error)
	CountConfirmed(ctx context.Context, tx *gorm.DB, sessionID uint) (int64, error)
	UpdateStatus(ctx context.Context, tx *gorm.DB, attendanceID uint, status models.AttendanceStatus) error
	FindByUserID(ctx context.Context, userID uint) ([]models.Attendance, error)
	DeleteBySessionIDs(ctx context.Context, tx *gorm.DB, sessionIDs []uint) error
	Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type attendanceRepository struct {
	db *gorm.DB
}

func NewAttendanceRepository(db *gorm.DB) AttendanceRepository {
	return &attendanceRepository{db: db}
}

func (r *attendanceRepository) Create(ctx context.Context, tx *gorm.DB, attendance *models.Attendance) error {
	return tx.WithContext(ctx).Create(attendance).Error
}

// FindConfirmedByUserAndSession returns the user's confirmed row for the
// session, if any. Cancelled history rows never match.
func (r *attendanceRepository) FindConfirmedByUserAndSession(ctx context.Context, tx *gorm.DB, userID, sessionID uint) (*models.Attendance, error) {
	var attendance models.Attendance
	err := tx.WithContext(ctx).
		Where("user_id = ? AND session_id = ? AND status = ?", userID, sessionID, models.AttendanceConfirmed).
		First(&attendance).Error
	if err != nil {
		return nil, err
	}
	return &attendance, nil
}

func (r *attendanceRepository) CountConfirmed(ctx context.Context, tx *gorm.DB, sessionID uint) (int64, error) {
	var count int64
	err := tx.WithContext(ctx).
		Model(&models.Attendance{}).
		Where("session_id = ? AND status = ?", sessionID, models.AttendanceConfirmed).
		Count(&count).Error
	return count, err
}

func (r *attendanceRepository) UpdateStatus(ctx context.Context, tx *gorm.DB, attendanceID uint, status models.AttendanceStatus) error {
	return tx.WithContext(ctx).
		Model(&models.Attendance{}).
		Where("id = ?", attendanceID).
		Update("status", status).Error
}

func (r *attendanceRepository) FindByUserID(ctx context.Context, userID uint) ([]models.Attendance, error) {
	var attendances []models.Attendance
	err := r.db.WithContext(ctx).
		Preload("Session").
		Where("user_id = ?", userID).
		Order("registered_at DESC").
		Find(&attendances).Error
	if err != nil {
		return nil, err
	}
	return attendances, nil
}

func (r *attendanceRepository) DeleteBySessionIDs(ctx context.Context, tx *gorm.DB, sessionIDs []uint) error {
	if len(sessionIDs) == 0 {
		return nil
	}
	return tx.WithContext(ctx).
		Where("session_id IN ?", sessionIDs).
		Delete(&models.Attendance{}).Error
}

func (r *attendanceRepository) Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return r.db.WithContext(ctx).Transaction(fn)
}
