package appointment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinicware/practice-scheduler/internal/schedule"
)

func appt(patientID int64, date schedule.DateStamp, start string, minutes int) Appointment {
	return Appointment{
		PatientID:       patientID,
		PatientName:     "Test Patient",
		Date:            date,
		Start:           schedule.MustTimeOfDay(start),
		DurationMinutes: minutes,
		Kind:            KindVisit,
		Status:          StatusScheduled,
		Location:        "clinic",
	}
}

func TestStoreAddAssignsSequentialIDs(t *testing.T) {
	s := NewStore()

	first := s.Add(appt(1, "2025-02-03", "09:00", 60))
	second := s.Add(appt(2, "2025-02-03", "10:00", 60))
	assert.Equal(t, int64(1), first.ID)
	assert.Equal(t, int64(2), second.ID)

	// Ids stay monotonic even after removing the max.
	s.Remove(second.ID)
	third := s.Add(appt(3, "2025-02-04", "09:00", 30))
	assert.Equal(t, int64(2), third.ID, "max remaining id is 1")
}

func TestStoreByDateStableOrder(t *testing.T) {
	s := NewStore()

	// Deliberately inserted out of chronological order.
	late := s.Add(appt(1, "2025-02-03", "15:00", 60))
	early := s.Add(appt(2, "2025-02-03", "09:00", 60))
	s.Add(appt(3, "2025-02-04", "10:00", 60))

	day := s.ByDate("2025-02-03")
	require.Len(t, day, 2)
	assert.Equal(t, late.ID, day[0].ID, "insertion order is preserved, not start order")
	assert.Equal(t, early.ID, day[1].ID)
}

func TestStoreUpdateStatus(t *testing.T) {
	s := NewStore()
	a := s.Add(appt(1, "2025-02-03", "09:00", 60))

	s.UpdateStatus(a.ID, StatusConfirmed)
	got, ok := s.Get(a.ID)
	require.True(t, ok)
	assert.Equal(t, StatusConfirmed, got.Status)

	// Unknown id is a silent no-op; the store is unchanged.
	before := s.All()
	s.UpdateStatus(999, StatusCancelled)
	assert.Equal(t, before, s.All())
}

func TestStoreReplace(t *testing.T) {
	s := NewStore()
	a := s.Add(appt(1, "2025-02-03", "09:00", 60))

	updated := a
	updated.Start = schedule.MustTimeOfDay("11:00")
	updated.Notes = "rescheduled by phone"
	s.Replace(updated)

	got, ok := s.Get(a.ID)
	require.True(t, ok)
	assert.Equal(t, "11:00", got.Start.String())
	assert.Equal(t, "rescheduled by phone", got.Notes)

	// Replace with an unknown id changes nothing.
	ghost := updated
	ghost.ID = 42
	s.Replace(ghost)
	assert.Len(t, s.All(), 1)
}

func TestStoreRemove(t *testing.T) {
	s := NewStore()
	a := s.Add(appt(1, "2025-02-03", "09:00", 60))

	s.Remove(999)
	assert.Len(t, s.All(), 1, "unknown id is a no-op")

	s.Remove(a.ID)
	assert.Empty(t, s.All())
}

func TestStoreDayStats(t *testing.T) {
	s := NewStore()
	s.Add(appt(1, "2025-02-03", "09:00", 60))
	confirmed := s.Add(appt(2, "2025-02-03", "10:00", 60))
	s.UpdateStatus(confirmed.ID, StatusConfirmed)
	s.Add(appt(3, "2025-02-04", "09:00", 60))

	total, confirmedCount := s.DayStats("2025-02-03")
	assert.Equal(t, 2, total)
	assert.Equal(t, 1, confirmedCount)
}

func TestAppointmentEnd(t *testing.T) {
	a := appt(1, "2025-02-03", "09:30", 45)
	assert.Equal(t, "10:15", a.End().String())
}
