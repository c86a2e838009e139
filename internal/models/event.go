package models

import (
	"time"

	"gorm.io/gorm"
)

// DefaultSessionDurationMinutes applies when an event has no duration set.
const DefaultSessionDurationMinutes = 60

type Event struct {
	ID              uint           `gorm:"primaryKey" json:"id"`
	Name            string         `gorm:"size:255;not null;index" json:"name"`
	GeneralLocation string         `gorm:"size:500;not null" json:"general_location"`
	DurationMinutes *int           `json:"duration_minutes,omitempty"`
	Category        EventCategory  `gorm:"type:varchar(20);not null" json:"category"`
	Description     string         `gorm:"not null" json:"description"`
	ImageURL        string         `gorm:"size:500" json:"image_url,omitempty"`
	Status          EventStatus    `gorm:"type:varchar(20);not null;default:'draft'" json:"status"`
	StartDate       time.Time      `gorm:"not null" json:"start_date"`
	EndDate         time.Time      `gorm:"not null" json:"end_date"`
	Resources       string         `json:"resources,omitempty"`
	CreatorID       uint           `gorm:"not null;index" json:"creator_id"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`

	Creator  *User     `gorm:"foreignKey:CreatorID" json:"creator,omitempty"`
	Sessions []Session `gorm:"foreignKey:EventID" json:"sessions,omitempty"`
}

// SessionDuration is the window width applied to every session of this
// event, falling back to the 60 minute default when unset.
func (e *Event) SessionDuration() time.Duration {
	if e.DurationMinutes != nil && *e.DurationMinutes > 0 {
		return time.Duration(*e.DurationMinutes) * time.Minute
	}
	return DefaultSessionDurationMinutes * time.Minute
}

// TotalCapacity sums the capacity of the loaded sessions.
func (e *Event) TotalCapacity() int {
	total := 0
	for _, s := range e.Sessions {
		total += s.MaxCapacity
	}
	return total
}
