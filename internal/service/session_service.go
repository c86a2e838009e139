package service

import (
	"context"
	"errors"
	"time"

	"github.com/miseventos/backend/internal/metrics"
	"github.com/miseventos/backend/internal/models"
	"github.com/miseventos/backend/internal/repository"
	"github.com/miseventos/backend/internal/scheduling"
	"github.com/miseventos/backend/pkg/rabbitmq"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SessionUpdate carries the optional non-schedule fields of a session
// update; nil fields are left untouched. Time changes go through
// RescheduleSession so they are conflict-checked.
type SessionUpdate struct {
	Presenter        *string
	SpecificLocation *string
	MaxCapacity      *int
	Status           *models.SessionStatus
	Resources        *string
}

type SessionService interface {
	CreateSession(ctx context.Context, session *models.Session) error
	RescheduleSession(ctx context.Context, sessionID uint, newTime time.Time) (*models.Session, error)
	UpdateSession(ctx context.Context, sessionID uint, update SessionUpdate) (*models.Session, error)
	GetSession(ctx context.Context, id uint) (*models.Session, error)
	ListSessions(ctx context.Context, eventID uint) ([]models.Session, error)
	DeleteSession(ctx context.Context, id uint) error
}

type sessionService struct {
	sessionRepo    repository.SessionRepository
	eventRepo      repository.EventRepository
	attendanceRepo repository.AttendanceRepository
	publisher      *rabbitmq.Publisher
	logger         *zap.Logger
}

func NewSessionService(
	sessionRepo repository.SessionRepository,
	eventRepo repository.EventRepository,
	attendanceRepo repository.AttendanceRepository,
	publisher *rabbitmq.Publisher,
	logger *zap.Logger,
) SessionService {
	return &sessionService{
		sessionRepo:    sessionRepo,
		eventRepo:      eventRepo,
		attendanceRepo: attendanceRepo,
		publisher:      publisher,
		logger:         logger,
	}
}

// CreateSession validates the proposed time against the event's other
// sessions and persists it in the same transaction. The event row is
// locked first so two concurrent proposals on one event cannot both pass
// the overlap check.
func (s *sessionService) CreateSession(ctx context.Context, session *models.Session) error {
	err := s.sessionRepo.Transaction(ctx, func(tx *gorm.DB) error {
		event, err := s.eventRepo.FindByIDForUpdate(ctx, tx, session.EventID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrEventNotFound
			}
			return err
		}

		existing, err := s.sessionRepo.FindByEventID(ctx, tx, session.EventID)
		if err != nil {
			return err
		}
		if err := scheduling.CheckConflict(session.SessionTime, event.SessionDuration(), existing, 0); err != nil {
			metrics.ScheduleConflictsTotal.Inc()
			return err
		}

		if session.Status == "" {
			session.Status = models.SessionDraft
		}
		return s.sessionRepo.Create(ctx, tx, session)
	})
	if err != nil {
		return err
	}

	s.logger.Info("session created",
		zap.Uint("session_id", session.ID),
		zap.Uint("event_id", session.EventID),
		zap.Time("session_time", session.SessionTime))

	if s.publisher != nil {
		_ = s.publisher.Publish(rabbitmq.RouteSessionCreated, session)
	}
	return nil
}

// RescheduleSession moves a session to a new time. The session's own
// prior slot is excluded from the overlap check so it never collides
// with itself.
func (s *sessionService) RescheduleSession(ctx context.Context, sessionID uint, newTime time.Time) (*models.Session, error) {
	var result *models.Session

	err := s.sessionRepo.Transaction(ctx, func(tx *gorm.DB) error {
		session, err := s.sessionRepo.FindByIDForUpdate(ctx, tx, sessionID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrSessionNotFound
			}
			return err
		}

		event, err := s.eventRepo.FindByIDForUpdate(ctx, tx, session.EventID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrEventNotFound
			}
			return err
		}

		existing, err := s.sessionRepo.FindByEventID(ctx, tx, session.EventID)
		if err != nil {
			return err
		}
		if err := scheduling.CheckConflict(newTime, event.SessionDuration(), existing, session.ID); err != nil {
			metrics.ScheduleConflictsTotal.Inc()
			return err
		}

		if err := s.sessionRepo.UpdateFields(ctx, tx, sessionID, map[string]any{"session_time": newTime}); err != nil {
			return err
		}
		session.SessionTime = newTime
		result = session
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("session rescheduled",
		zap.Uint("session_id", sessionID),
		zap.Time("session_time", newTime))

	if s.publisher != nil {
		_ = s.publisher.Publish(rabbitmq.RouteSessionRescheduled, result)
	}
	return result, nil
}

func (s *sessionService) UpdateSession(ctx context.Context, sessionID uint, update SessionUpdate) (*models.Session, error) {
	fields := map[string]any{}
	if update.Presenter != nil {
		fields["presenter"] = *update.Presenter
	}
	if update.SpecificLocation != nil {
		fields["specific_location"] = *update.SpecificLocation
	}
	if update.MaxCapacity != nil {
		fields["max_capacity"] = *update.MaxCapacity
	}
	if update.Status != nil {
		fields["status"] = *update.Status
	}
	if update.Resources != nil {
		fields["resources"] = *update.Resources
	}

	err := s.sessionRepo.Transaction(ctx, func(tx *gorm.DB) error {
		if _, err := s.sessionRepo.FindByIDForUpdate(ctx, tx, sessionID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrSessionNotFound
			}
			return err
		}
		if len(fields) == 0 {
			return nil
		}
		return s.sessionRepo.UpdateFields(ctx, tx, sessionID, fields)
	})
	if err != nil {
		return nil, err
	}
	return s.GetSession(ctx, sessionID)
}

func (s *sessionService) GetSession(ctx context.Context, id uint) (*models.Session, error) {
	session, err := s.sessionRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	return session, nil
}

func (s *sessionService) ListSessions(ctx context.Context, eventID uint) ([]models.Session, error) {
	var sessions []models.Session
	err := s.sessionRepo.Transaction(ctx, func(tx *gorm.DB) error {
		var err error
		sessions, err = s.sessionRepo.FindByEventID(ctx, tx, eventID)
		return err
	})
	return sessions, err
}

// DeleteSession soft-deletes the session and its attendances together.
func (s *sessionService) DeleteSession(ctx context.Context, id uint) error {
	return s.sessionRepo.Transaction(ctx, func(tx *gorm.DB) error {
		if _, err := s.sessionRepo.FindByIDForUpdate(ctx, tx, id); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrSessionNotFound
			}
			return err
		}
		if err := s.attendanceRepo.DeleteBySessionIDs(ctx, tx, []uint{id}); err != nil {
			return err
		}
		return s.sessionRepo.Delete(ctx, tx, id)
	})
}
