package models

type EventCategory string

const (
	CategoryConference EventCategory = "conference"
	CategoryWorkshop   EventCategory = "workshop"
	CategorySeminar    EventCategory = "seminar"
	CategoryMeetup     EventCategory = "meetup"
	CategoryWebinar    EventCategory = "webinar"
	CategoryTraining   EventCategory = "training"
	CategorySocial     EventCategory = "social"
	CategoryOther      EventCategory = "other"
)

type EventStatus string

const (
	EventDraft      EventStatus = "draft"
	EventPublished  EventStatus = "published"
	EventInProgress EventStatus = "in_progress"
	EventCompleted  EventStatus = "completed"
	EventCancelled  EventStatus = "cancelled"
	EventSuspended  EventStatus = "suspended"
)

// eventTransitions is the closed set of allowed status changes.
// Completed and cancelled are terminal.
var eventTransitions = map[EventStatus][]EventStatus{
	EventDraft:      {EventPublished, EventCancelled},
	EventPublished:  {EventInProgress, EventCancelled, EventSuspended},
	EventInProgress: {EventCompleted, EventCancelled, EventSuspended},
	EventSuspended:  {EventPublished, EventCancelled},
	EventCompleted:  {},
	EventCancelled:  {},
}

// CanTransitionTo reports whether the status change is allowed by the
// event lifecycle. Unknown statuses allow nothing.
func (s EventStatus) CanTransitionTo(next EventStatus) bool {
	for _, allowed := range eventTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

type SessionStatus string

const (
	SessionDraft      SessionStatus = "draft"
	SessionTeaser     SessionStatus = "teaser"
	SessionPresale    SessionStatus = "presale"
	SessionSale       SessionStatus = "sale"
	SessionInProgress SessionStatus = "in_progress"
	SessionCompleted  SessionStatus = "completed"
	SessionCancelled  SessionStatus = "cancelled"
	SessionSuspended  SessionStatus = "suspended"
)

type AttendanceStatus string

const (
	AttendanceConfirmed AttendanceStatus = "confirmed"
	AttendanceCancelled AttendanceStatus = "cancelled"
	AttendanceWaitlist  AttendanceStatus = "waitlist"
)

type UserRole string

const (
	RoleAdmin     UserRole = "admin"
	RoleOrganizer UserRole = "organizer"
	RoleAttendee  UserRole = "attendee"
)
