package models

import (
	"time"

	"gorm.io/gorm"
)

// Attendance records one user's registration status for one session.
// At most one non-cancelled row may exist per (user, session) pair; a
// partial unique index in pkg/database backs this at the DB level.
type Attendance struct {
	ID           uint             `gorm:"primaryKey" json:"id"`
	UserID       uint             `gorm:"not null;index" json:"user_id"`
	SessionID    uint             `gorm:"not null;index" json:"session_id"`
	Status       AttendanceStatus `gorm:"type:varchar(20);not null;default:'confirmed'" json:"status"`
	AttendeeRole string           `gorm:"size:100" json:"attendee_role,omitempty"`
	RegisteredAt time.Time        `gorm:"not null" json:"registered_at"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
	DeletedAt    gorm.DeletedAt   `gorm:"index" json:"-"`

	User    *User    `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Session *Session `gorm:"foreignKey:SessionID" json:"session,omitempty"`
}

// Active reports whether the row counts against capacity and blocks
// re-registration.
func (a *Attendance) Active() bool {
	return a.Status != AttendanceCancelled
}
