package models

import (
	"time"

	"gorm.io/gorm"
)

// Session is a time-boxed sub-occasion of an event. Attendee counts are
// always derived from the attendances table, never stored on the row.
type Session struct {
	ID               uint           `gorm:"primaryKey" json:"id"`
	EventID          uint           `gorm:"not null;index" json:"event_id"`
	Presenter        string         `gorm:"size:255;not null" json:"presenter"`
	Status           SessionStatus  `gorm:"type:varchar(20);not null;default:'draft'" json:"status"`
	SessionTime      time.Time      `gorm:"not null" json:"session_time"`
	SpecificLocation string         `gorm:"size:500;not null" json:"specific_location"`
	MaxCapacity      int            `gorm:"not null" json:"max_capacity"`
	Resources        string         `json:"resources,omitempty"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`

	Event       *Event       `gorm:"foreignKey:EventID" json:"event,omitempty"`
	Attendances []Attendance `gorm:"foreignKey:SessionID" json:"attendances,omitempty"`
}
