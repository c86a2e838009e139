package scheduling

import (
	"testing"

	"github.com/miseventos/backend/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestActiveCount_ConfirmedOnly(t *testing.T) {
	attendances := []models.Attendance{
		{ID: 1, Status: models.AttendanceConfirmed},
		{ID: 2, Status: models.AttendanceCancelled},
		{ID: 3, Status: models.AttendanceConfirmed},
		{ID: 4, Status: models.AttendanceWaitlist},
	}

	assert.Equal(t, 2, ActiveCount(attendances))
	assert.Equal(t, 0, ActiveCount(nil))
}

func TestIsFull_NonStrictComparison(t *testing.T) {
	// capacity N admits exactly N confirmed attendees
	assert.False(t, IsFull(3, 2))
	assert.True(t, IsFull(3, 3))
	assert.True(t, IsFull(3, 4))
	assert.True(t, IsFull(1, 1))
	assert.False(t, IsFull(1, 0))
}
