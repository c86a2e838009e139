package scheduling

import "github.com/miseventos/backend/internal/models"

// ActiveCount counts confirmed attendances. Waitlisted and cancelled rows
// do not hold a seat.
func ActiveCount(attendances []models.Attendance) int {
	n := 0
	for _, a := range attendances {
		if a.Status == models.AttendanceConfirmed {
			n++
		}
	}
	return n
}

// IsFull reports whether a session with the given capacity admits no more
// confirmed attendees. The comparison is non-strict: capacity N seats
// exactly N.
func IsFull(maxCapacity, activeCount int) bool {
	return activeCount >= maxCapacity
}
