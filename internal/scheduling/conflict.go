// Package scheduling holds the pure decision logic of the engine: the
// conflict detector and the capacity ledger. It never touches the database;
// callers load state inside their own transaction and pass it in.
package scheduling

import (
	"fmt"
	"time"

	"github.com/miseventos/backend/internal/models"
)

// ConflictError reports that a proposed session window overlaps an
// existing session of the same event.
type ConflictError struct {
	CollidingSessionID uint
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("session time overlaps existing session %d", e.CollidingSessionID)
}

// CheckConflict validates a proposed session start against the event's
// other sessions. Windows are half-open [start, start+duration); the same
// event-level duration is applied to every session, proposed and existing
// alike. excludeID skips the session being rescheduled so it cannot
// collide with its own prior slot; zero excludes nothing.
//
// A nil return guarantees the proposed window is disjoint from every
// session in existing (minus the excluded one).
func CheckConflict(proposedStart time.Time, duration time.Duration, existing []models.Session, excludeID uint) error {
	proposedEnd := proposedStart.Add(duration)
	for _, s := range existing {
		if excludeID != 0 && s.ID == excludeID {
			continue
		}
		existingEnd := s.SessionTime.Add(duration)
		latestStart := s.SessionTime
		if proposedStart.After(latestStart) {
			latestStart = proposedStart
		}
		earliestEnd := existingEnd
		if proposedEnd.Before(earliestEnd) {
			earliestEnd = proposedEnd
		}
		if latestStart.Before(earliestEnd) {
			return &ConflictError{CollidingSessionID: s.ID}
		}
	}
	return nil
}
