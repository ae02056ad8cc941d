package appointment

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/clinicware/practice-scheduler/internal/schedule"
)

func existing(id int64, date schedule.DateStamp, start string, minutes int, status Status) Appointment {
	return Appointment{
		ID:              id,
		PatientID:       id,
		Date:            date,
		Start:           schedule.MustTimeOfDay(start),
		DurationMinutes: minutes,
		Status:          status,
	}
}

func candidate(date schedule.DateStamp, start string, minutes int) Candidate {
	return Candidate{Date: date, Start: schedule.MustTimeOfDay(start), DurationMinutes: minutes}
}

func TestHasConflictOverlap(t *testing.T) {
	// Appointment A: 2025-02-03 09:00 for 60 minutes, scheduled.
	a := existing(1, "2025-02-03", "09:00", 60, StatusScheduled)

	tests := []struct {
		name string
		c    Candidate
		want bool
	}{
		{"inside", candidate("2025-02-03", "09:30", 30), true},
		{"spans across", candidate("2025-02-03", "08:30", 120), true},
		{"identical", candidate("2025-02-03", "09:00", 60), true},
		{"ends at its start", candidate("2025-02-03", "08:00", 60), false},
		{"starts at its end", candidate("2025-02-03", "10:00", 30), false},
		{"other date", candidate("2025-02-04", "09:30", 30), false},
		{"one minute overlap at tail", candidate("2025-02-03", "09:59", 30), true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, HasConflict(tc.c, []Appointment{a}, 0))
		})
	}
}

func TestHasConflictIgnoresCancelled(t *testing.T) {
	cancelled := existing(1, "2025-02-03", "09:00", 60, StatusCancelled)
	assert.False(t, HasConflict(candidate("2025-02-03", "09:30", 30), []Appointment{cancelled}, 0))

	blocked := existing(2, "2025-02-03", "09:00", 60, StatusBlocked)
	assert.True(t, HasConflict(candidate("2025-02-03", "09:30", 30), []Appointment{blocked}, 0),
		"blocked appointments still occupy their span")
}

func TestHasConflictExcludeID(t *testing.T) {
	a := existing(7, "2025-02-03", "09:00", 60, StatusScheduled)

	// A resize of appointment 7 itself must not collide with its own span.
	assert.False(t, HasConflict(candidate("2025-02-03", "09:00", 90), []Appointment{a}, 7))
	assert.True(t, HasConflict(candidate("2025-02-03", "09:00", 90), []Appointment{a}, 0))
}

func TestHasConflictSymmetric(t *testing.T) {
	a := existing(1, "2025-02-03", "09:00", 60, StatusScheduled)
	b := existing(2, "2025-02-03", "09:30", 60, StatusScheduled)

	asCandidate := func(x Appointment) Candidate {
		return Candidate{Date: x.Date, Start: x.Start, DurationMinutes: x.DurationMinutes}
	}
	assert.Equal(t,
		HasConflict(asCandidate(a), []Appointment{b}, 0),
		HasConflict(asCandidate(b), []Appointment{a}, 0))

	// Order of the existing slice does not matter either.
	c := candidate("2025-02-03", "09:45", 30)
	assert.Equal(t,
		HasConflict(c, []Appointment{a, b}, 0),
		HasConflict(c, []Appointment{b, a}, 0))
}
