package repository

import (
	"context"

	"github.com/miseventos/backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SessionRepository interface {
	Create(ctx context.Context, tx *gorm.DB, session *models.Session) error
	FindByID(ctx context.Context, id uint) (*models.Session, error)
	FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uint) (*models.Session, error)
	FindByEventID(ctx context.Context, tx *gorm.DB, eventID uint) ([]models.Session, error)
	UpdateFields(ctx context.Context, tx *gorm.DB, id uint, fields map[string]any) error
	Delete(ctx context.Context, tx *gorm.DB, id uint) error
	DeleteByEventID(ctx context.Context, tx *gorm.DB, eventID uint) error
	Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type sessionRepository struct {
	db *gorm.DB
}

func NewSessionRepository(db *gorm.DB) SessionRepository {
	return &sessionRepository{db: db}
}

func (r *sessionRepository) Create(ctx context.Context, tx *gorm.DB, session *models.Session) error {
	return tx.WithContext(ctx).Create(session).Error
}

func (r *sessionRepository) FindByID(ctx context.Context, id uint) (*models.Session, error) {
	var session models.Session
	if err := r.db.WithContext(ctx).Preload("Event").First(&session, id).Error; err != nil {
		return nil, err
	}
	return &session, nil
}

// FindByIDForUpdate acquires a row-level lock on the session within the
// given transaction, serializing concurrent registrations per session.
func (r *sessionRepository) FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uint) (*models.Session, error) {
	var session models.Session
	if err := tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&session, id).Error; err != nil {
		return nil, err
	}
	return &session, nil
}

// FindByEventID returns the event's non-deleted sessions; soft-deleted rows
// are excluded by gorm automatically.
func (r *sessionRepository) FindByEventID(ctx context.Context, tx *gorm.DB, eventID uint) ([]models.Session, error) {
	var sessions []models.Session
	err := tx.WithContext(ctx).
		Where("event_id = ?", eventID).
		Order("session_time ASC").
		Find(&sessions).Error
	if err != nil {
		return nil, err
	}
	return sessions, nil
}

func (r *sessionRepository) UpdateFields(ctx context.Context, tx *gorm.DB, id uint, fields map[string]any) error {
	return tx.WithContext(ctx).
		Model(&models.Session{}).
		Where("id = ?", id).
		Updates(fields).Error
}

func (r *sessionRepository) Delete(ctx context.Context, tx *gorm.DB, id uint) error {
	return tx.WithContext(ctx).Delete(&models.Session{}, id).Error
}

func (r *sessionRepository) DeleteByEventID(ctx context.Context, tx *gorm.DB, eventID uint) error {
	return tx.WithContext(ctx).
		Where("event_id = ?", eventID).
		Delete(&models.Session{}).Error
}

func (r *sessionRepository) Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return r.db.WithContext(ctx).Transaction(fn)
}
