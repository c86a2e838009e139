package models

import (
	"time"

	"gorm.io/gorm"
)

// User carries no credentials; authentication lives outside this module.
type User struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	FullName  string         `gorm:"size:255;not null" json:"full_name"`
	Email     string         `gorm:"size:255;not null;uniqueIndex" json:"email"`
	Role      UserRole       `gorm:"type:varchar(20);not null;default:'attendee'" json:"role"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	CreatedEvents []Event      `gorm:"foreignKey:CreatorID" json:"created_events,omitempty"`
	Attendances   []Attendance `gorm:"foreignKey:UserID" json:"attendances,omitempty"`
}
