package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/miseventos/backend/internal/models"
	"github.com/miseventos/backend/internal/repository"
	"github.com/miseventos/backend/pkg/rabbitmq"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// EventUpdate carries the optional detail fields of an event update; nil
// fields are left untouched. Status changes go through ChangeStatus.
type EventUpdate struct {
	Name            *string
	GeneralLocation *string
	DurationMinutes *int
	Category        *models.EventCategory
	Description     *string
	ImageURL        *string
	Resources       *string
	StartDate       *time.Time
	EndDate         *time.Time
}

type EventService interface {
	CreateEvent(ctx context.Context, event *models.Event) error
	GetEvent(ctx context.Context, id uint) (*models.Event, error)
	ListEvents(ctx context.Context) ([]models.Event, error)
	SearchEvents(ctx context.Context, query string) ([]models.Event, error)
	UpdateEvent(ctx context.Context, id uint, update EventUpdate) (*models.Event, error)
	PublishEvent(ctx context.Context, id uint) (*models.Event, error)
	ChangeStatus(ctx context.Context, id uint, next models.EventStatus) (*models.Event, error)
	DeleteEvent(ctx context.Context, id uint) error
}

type eventService struct {
	eventRepo      repository.EventRepository
	sessionRepo    repository.SessionRepository
	attendanceRepo repository.AttendanceRepository
	userRepo       repository.UserRepository
	publisher      *rabbitmq.Publisher
	logger         *zap.Logger
}

func NewEventService(
	eventRepo repository.EventRepository,
	sessionRepo repository.SessionRepository,
	attendanceRepo repository.AttendanceRepository,
	userRepo repository.UserRepository,
	publisher *rabbitmq.Publisher,
	logger *zap.Logger,
) EventService {
	return &eventService{
		eventRepo:      eventRepo,
		sessionRepo:    sessionRepo,
		attendanceRepo: attendanceRepo,
		userRepo:       userRepo,
		publisher:      publisher,
		logger:         logger,
	}
}

func (s *eventService) CreateEvent(ctx context.Context, event *models.Event) error {
	if _, err := s.userRepo.FindByID(ctx, event.CreatorID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("load creator: %w", err)
	}

	if event.Status == "" {
		event.Status = models.EventDraft
	}
	if err := s.eventRepo.Create(ctx, event); err != nil {
		return fmt.Errorf("create event: %w", err)
	}

	s.logger.Info("event created",
		zap.Uint("event_id", event.ID),
		zap.Uint("creator_id", event.CreatorID))
	return nil
}

func (s *eventService) GetEvent(ctx context.Context, id uint) (*models.Event, error) {
	event, err := s.eventRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}
	return event, nil
}

func (s *eventService) ListEvents(ctx context.Context) ([]models.Event, error) {
	return s.eventRepo.FindAll(ctx)
}

func (s *eventService) SearchEvents(ctx context.Context, query string) ([]models.Event, error) {
	return s.eventRepo.SearchByName(ctx, query)
}

func (s *eventService) UpdateEvent(ctx context.Context, id uint, update EventUpdate) (*models.Event, error) {
	fields := map[string]any{}
	if update.Name != nil {
		fields["name"] = *update.Name
	}
	if update.GeneralLocation != nil {
		fields["general_location"] = *update.GeneralLocation
	}
	if update.DurationMinutes != nil {
		fields["duration_minutes"] = *update.DurationMinutes
	}
	if update.Category != nil {
		fields["category"] = *update.Category
	}
	if update.Description != nil {
		fields["description"] = *update.Description
	}
	if update.ImageURL != nil {
		fields["image_url"] = *update.ImageURL
	}
	if update.Resources != nil {
		fields["resources"] = *update.Resources
	}
	if update.StartDate != nil {
		fields["start_date"] = *update.StartDate
	}
	if update.EndDate != nil {
		fields["end_date"] = *update.EndDate
	}

	err := s.eventRepo.Transaction(ctx, func(tx *gorm.DB) error {
		if _, err := s.eventRepo.FindByIDForUpdate(ctx, tx, id); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrEventNotFound
			}
			return err
		}
		if len(fields) == 0 {
			return nil
		}
		return s.eventRepo.UpdateFields(ctx, tx, id, fields)
	})
	if err != nil {
		return nil, err
	}
	return s.GetEvent(ctx, id)
}

// PublishEvent moves a draft event to published. An event without at
// least one session cannot be published.
func (s *eventService) PublishEvent(ctx context.Context, id uint) (*models.Event, error) {
	return s.ChangeStatus(ctx, id, models.EventPublished)
}

// ChangeStatus applies a lifecycle transition, validated against the
// closed transition table. The event row stays locked for the whole
// check-then-write.
func (s *eventService) ChangeStatus(ctx context.Context, id uint, next models.EventStatus) (*models.Event, error) {
	var result *models.Event

	err := s.eventRepo.Transaction(ctx, func(tx *gorm.DB) error {
		event, err := s.eventRepo.FindByIDForUpdate(ctx, tx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrEventNotFound
			}
			return err
		}

		if !event.Status.CanTransitionTo(next) {
			return ErrInvalidTransition
		}

		if next == models.EventPublished {
			sessions, err := s.sessionRepo.FindByEventID(ctx, tx, id)
			if err != nil {
				return err
			}
			if len(sessions) == 0 {
				return ErrEventHasNoSessions
			}
		}

		if err := s.eventRepo.UpdateFields(ctx, tx, id, map[string]any{"status": next}); err != nil {
			return err
		}
		event.Status = next
		result = event
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("event status changed",
		zap.Uint("event_id", id),
		zap.String("status", string(next)))

	if s.publisher != nil {
		switch next {
		case models.EventPublished:
			_ = s.publisher.Publish(rabbitmq.RouteEventPublished, result)
		case models.EventCancelled:
			_ = s.publisher.Publish(rabbitmq.RouteEventCancelled, result)
		}
	}
	return result, nil
}

// DeleteEvent soft-deletes the event, its sessions and their attendances
// in one transaction. The rows stay in the database; none of them appear
// in active queries afterwards.
func (s *eventService) DeleteEvent(ctx context.Context, id uint) error {
	return s.eventRepo.Transaction(ctx, func(tx *gorm.DB) error {
		if _, err := s.eventRepo.FindByIDForUpdate(ctx, tx, id); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrEventNotFound
			}
			return err
		}

		sessions, err := s.sessionRepo.FindByEventID(ctx, tx, id)
		if err != nil {
			return err
		}
		sessionIDs := make([]uint, 0, len(sessions))
		for _, session := range sessions {
			sessionIDs = append(sessionIDs, session.ID)
		}

		if err := s.attendanceRepo.DeleteBySessionIDs(ctx, tx, sessionIDs); err != nil {
			return err
		}
		if err := s.sessionRepo.DeleteByEventID(ctx, tx, id); err != nil {
			return err
		}
		return s.eventRepo.Delete(ctx, tx, id)
	})
}
