package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/miseventos/backend/internal/metrics"
	"github.com/miseventos/backend/internal/models"
	"github.com/miseventos/backend/internal/repository"
	"github.com/miseventos/backend/internal/scheduling"
	"github.com/miseventos/backend/pkg/rabbitmq"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SessionAvailability is the live capacity view of one session.
type SessionAvailability struct {
	SessionID      uint  `json:"session_id"`
	MaxCapacity    int   `json:"max_capacity"`
	Confirmed      int64 `json:"confirmed_count"`
	SeatsAvailable int   `json:"seats_available"`
}

type RegistrationService interface {
	Register(ctx context.Context, userID, sessionID uint) (*models.Attendance, error)
	Cancel(ctx context.Context, userID, sessionID uint) (*models.Attendance, error)
	ActiveCount(ctx context.Context, sessionID uint) (int64, error)
	Availability(ctx context.Context, sessionID uint) (*SessionAvailability, error)
	ListForUser(ctx context.Context, userID uint) ([]models.Attendance, error)
}

type registrationService struct {
	attendanceRepo repository.AttendanceRepository
	sessionRepo    repository.SessionRepository
	userRepo       repository.UserRepository
	publisher      *rabbitmq.Publisher
	logger         *zap.Logger
}

func NewRegistrationService(
	attendanceRepo repository.AttendanceRepository,
	sessionRepo repository.SessionRepository,
	userRepo repository.UserRepository,
	publisher *rabbitmq.Publisher,
	logger *zap.Logger,
) RegistrationService {
	return &registrationService{
		attendanceRepo: attendanceRepo,
		sessionRepo:    sessionRepo,
		userRepo:       userRepo,
		publisher:      publisher,
		logger:         logger,
	}
}

// Register confirms a seat for the user. Checks run in order: capacity,
// then duplicate registration. The session row is locked for the whole
// transaction so concurrent registrations on the same session serialize;
// the partial unique index on attendances is the second line of defense.
func (s *registrationService) Register(ctx context.Context, userID, sessionID uint) (*models.Attendance, error) {
	if _, err := s.userRepo.FindByID(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("load user: %w", err)
	}

	var result *models.Attendance

	err := s.attendanceRepo.Transaction(ctx, func(tx *gorm.DB) error {
		session, err := s.sessionRepo.FindByIDForUpdate(ctx, tx, sessionID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrSessionNotFound
			}
			return err
		}

		confirmed, err := s.attendanceRepo.CountConfirmed(ctx, tx, sessionID)
		if err != nil {
			return err
		}
		if scheduling.IsFull(session.MaxCapacity, int(confirmed)) {
			metrics.RegistrationsTotal.WithLabelValues(metrics.OutcomeRejectedFull).Inc()
			return ErrSessionFull
		}

		_, err = s.attendanceRepo.FindConfirmedByUserAndSession(ctx, tx, userID, sessionID)
		if err == nil {
			metrics.RegistrationsTotal.WithLabelValues(metrics.OutcomeRejectedDuplicate).Inc()
			return ErrAlreadyRegistered
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		// A prior cancelled row does not block; re-registration creates a
		// fresh record and the cancelled one stays as history.
		attendance := &models.Attendance{
			UserID:       userID,
			SessionID:    sessionID,
			Status:       models.AttendanceConfirmed,
			RegisteredAt: time.Now().UTC(),
		}
		if err := s.attendanceRepo.Create(ctx, tx, attendance); err != nil {
			return err
		}
		result = attendance
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.RegistrationsTotal.WithLabelValues(metrics.OutcomeConfirmed).Inc()
	s.logger.Info("registration confirmed",
		zap.Uint("user_id", userID),
		zap.Uint("session_id", sessionID))

	if s.publisher != nil {
		_ = s.publisher.Publish(rabbitmq.RouteRegistrationConfirmed, result)
	}
	return result, nil
}

// Cancel flips the user's confirmed attendance to cancelled; the row is
// retained. With no confirmed row (never registered, or already
// cancelled) the call fails with ErrNotRegistered.
func (s *registrationService) Cancel(ctx context.Context, userID, sessionID uint) (*models.Attendance, error) {
	var result *models.Attendance

	err := s.attendanceRepo.Transaction(ctx, func(tx *gorm.DB) error {
		if _, err := s.sessionRepo.FindByIDForUpdate(ctx, tx, sessionID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrSessionNotFound
			}
			return err
		}

		attendance, err := s.attendanceRepo.FindConfirmedByUserAndSession(ctx, tx, userID, sessionID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotRegistered
			}
			return err
		}

		if err := s.attendanceRepo.UpdateStatus(ctx, tx, attendance.ID, models.AttendanceCancelled); err != nil {
			return err
		}
		attendance.Status = models.AttendanceCancelled
		result = attendance
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.RegistrationsTotal.WithLabelValues(metrics.OutcomeCancelled).Inc()
	s.logger.Info("registration cancelled",
		zap.Uint("user_id", userID),
		zap.Uint("session_id", sessionID))

	if s.publisher != nil {
		_ = s.publisher.Publish(rabbitmq.RouteRegistrationCancelled, result)
	}
	return result, nil
}

// ActiveCount derives the confirmed-attendee count live from the
// attendances table; nothing is cached on the session row.
func (s *registrationService) ActiveCount(ctx context.Context, sessionID uint) (int64, error) {
	var count int64
	err := s.attendanceRepo.Transaction(ctx, func(tx *gorm.DB) error {
		var err error
		count, err = s.attendanceRepo.CountConfirmed(ctx, tx, sessionID)
		return err
	})
	return count, err
}

func (s *registrationService) Availability(ctx context.Context, sessionID uint) (*SessionAvailability, error) {
	session, err := s.sessionRepo.FindByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}

	confirmed, err := s.ActiveCount(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	return &SessionAvailability{
		SessionID:      session.ID,
		MaxCapacity:    session.MaxCapacity,
		Confirmed:      confirmed,
		SeatsAvailable: session.MaxCapacity - int(confirmed),
	}, nil
}

func (s *registrationService) ListForUser(ctx context.Context, userID uint) ([]models.Attendance, error) {
	if _, err := s.userRepo.FindByID(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return s.attendanceRepo.FindByUserID(ctx, userID)
}
