package appointment

import (
	"github.com/clinicware/practice-scheduler/internal/schedule"
)

// Candidate is a proposed appointment span for conflict checking.
type Candidate struct {
	Date            schedule.DateStamp
	Start           schedule.TimeOfDay
	DurationMinutes int
}

// HasConflict reports whether the candidate overlaps any existing
// non-cancelled appointment on the same date. excludeID skips one record,
// so moves and resizes do not collide with themselves; pass 0 when booking
// fresh. Overlap is the strict half-open test: touching spans, where one
// ends exactly when the other starts, do not conflict.
//
// The check is advisory. The store never calls it; the booking service does,
// inside its per-date critical section.
func HasConflict(c Candidate, existing []Appointment, excludeID int64) bool {
	candidateEnd := c.Start + schedule.TimeOfDay(c.DurationMinutes)
	for _, a := range existing {
		if a.Date != c.Date || a.Status == StatusCancelled || a.ID == excludeID {
			continue
		}
		if c.Start < a.End() && candidateEnd > a.Start {
			return true
		}
	}
	return false
}
