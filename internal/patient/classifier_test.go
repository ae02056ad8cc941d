package patient

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinicware/practice-scheduler/internal/appointment"
	"github.com/clinicware/practice-scheduler/internal/schedule"
)

func days(n int) *int { return &n }

func TestClassifyStatus(t *testing.T) {
	cfg := Config{FlowMaxDays: 30, ActiveMaxDays: 90}

	tests := []struct {
		name string
		days *int
		want Status
	}{
		{"recent visit", days(12), StatusFlow},
		{"flow boundary", days(30), StatusFlow},
		{"active", days(36), StatusActive},
		{"active boundary", days(90), StatusActive},
		{"inactive", days(102), StatusInactive},
		{"no history", nil, StatusNew},
		{"sentinel", days(999), StatusNew},
		{"above sentinel", days(1400), StatusNew},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ClassifyStatus(tc.days, cfg))
		})
	}
}

func TestClassifyUrgency(t *testing.T) {
	const target, tolerance = 15, 5

	tests := []struct {
		name string
		days *int
		want Urgency
	}{
		{"well before window", days(5), UrgencySoon},
		{"window lower edge", days(10), UrgencyNow},
		{"on target", days(15), UrgencyNow},
		{"window upper edge", days(20), UrgencyNow},
		{"just past window", days(21), UrgencyLate},
		{"long overdue", days(60), UrgencyLate},
		{"no history", nil, UrgencySoon},
		{"sentinel", days(999), UrgencySoon},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ClassifyUrgency(tc.days, target, tolerance))
		})
	}
}

func TestFrequencyFor(t *testing.T) {
	cfg := DefaultConfig()
	cfg.FrequencyByLocation["clinic"] = 21

	assert.Equal(t, 21, cfg.FrequencyFor("clinic"))
	assert.Equal(t, 15, cfg.FrequencyFor("somewhere else"), "unknown locations fall back")
}

func TestBuildStatusViews(t *testing.T) {
	today := schedule.DateStamp("2025-02-03")
	patients := []Patient{
		{ID: 1, Name: "Recent", Location: "clinic"},
		{ID: 2, Name: "Overdue", Location: "clinic"},
		{ID: 3, Name: "Brand New", Location: "home"},
	}
	lastVisits := map[int64]schedule.DateStamp{
		1: "2025-01-22", // 12 days ago
		2: "2024-10-24", // 102 days ago
	}
	appts := []appointment.Appointment{
		{ID: 1, PatientID: 1, Date: "2025-02-10", Status: appointment.StatusScheduled},
		{ID: 2, PatientID: 2, Date: "2025-02-11", Status: appointment.StatusCancelled},
		{ID: 3, PatientID: 2, Date: "2025-01-20", Status: appointment.StatusConfirmed},
	}

	views := BuildStatusViews(patients, lastVisits, appts, DefaultConfig(), today)
	require.Len(t, views, 3)

	recent := views[0]
	assert.Equal(t, StatusFlow, recent.Status)
	assert.Equal(t, UrgencyNow, recent.Urgency, "12 days is inside the 15±5 window")
	assert.Equal(t, 12, recent.DaysSinceLastVisit)
	assert.True(t, recent.IsBooked)

	overdue := views[1]
	assert.Equal(t, StatusInactive, overdue.Status)
	assert.Equal(t, UrgencyLate, overdue.Urgency)
	assert.Equal(t, 102, overdue.DaysSinceLastVisit)
	assert.False(t, overdue.IsBooked, "cancelled and past appointments do not count as booked")

	brandNew := views[2]
	assert.Equal(t, StatusNew, brandNew.Status)
	assert.Equal(t, UrgencySoon, brandNew.Urgency)
	assert.Equal(t, NeverVisited, brandNew.DaysSinceLastVisit)
	assert.Empty(t, brandNew.LastVisit)
}

func TestFiltersApply(t *testing.T) {
	views := []StatusView{
		{Patient: Patient{ID: 1, Location: "clinic"}, Status: StatusFlow, Urgency: UrgencyNow, IsBooked: true},
		{Patient: Patient{ID: 2, Location: "clinic"}, Status: StatusInactive, Urgency: UrgencyLate},
		{Patient: Patient{ID: 3, Location: "home"}, Status: StatusFlow, Urgency: UrgencySoon},
	}

	got := Filters{Statuses: []Status{StatusFlow}}.Apply(views)
	require.Len(t, got, 2)
	assert.Equal(t, int64(1), got[0].ID)
	assert.Equal(t, int64(3), got[1].ID)

	got = Filters{Urgencies: []Urgency{UrgencyLate}}.Apply(views)
	require.Len(t, got, 1)
	assert.Equal(t, int64(2), got[0].ID)

	got = Filters{Locations: []string{"home"}}.Apply(views)
	require.Len(t, got, 1)
	assert.Equal(t, int64(3), got[0].ID)

	got = Filters{Booked: BookedNone}.Apply(views)
	assert.Len(t, got, 2)
	got = Filters{Booked: BookedOnly}.Apply(views)
	assert.Len(t, got, 1)

	assert.Len(t, Filters{}.Apply(views), 3, "empty filters pass everything")
}

func TestSummarize(t *testing.T) {
	views := []StatusView{
		{Status: StatusFlow, Urgency: UrgencyNow, IsBooked: true},
		{Status: StatusFlow, Urgency: UrgencySoon},
		{Status: StatusInactive, Urgency: UrgencyLate},
	}

	m := Summarize(views)
	assert.Equal(t, 3, m.TotalPatients)
	assert.Equal(t, 2, m.ByStatus[StatusFlow])
	assert.Equal(t, 1, m.ByStatus[StatusInactive])
	assert.Equal(t, 1, m.ByUrgency[UrgencyNow])
	assert.Equal(t, 1, m.BookedPatients)
	assert.Equal(t, 2, m.UnbookedPatients)
}

func TestRoster(t *testing.T) {
	r := NewRoster()
	p1 := r.Add(Patient{Name: "First"})
	p2 := r.Add(Patient{Name: "Second"})
	assert.Equal(t, int64(1), p1.ID)
	assert.Equal(t, int64(2), p2.ID)

	got, ok := r.Get(p1.ID)
	require.True(t, ok)
	assert.Equal(t, "First", got.Name)
	_, ok = r.Get(99)
	assert.False(t, ok)

	r.RecordVisit(p1.ID, "2025-01-10")
	r.RecordVisit(p1.ID, "2025-01-05")
	assert.Equal(t, schedule.DateStamp("2025-01-10"), r.LastVisits()[p1.ID], "earlier visit does not regress the latest")

	r.RecordVisit(p1.ID, "2025-02-01")
	assert.Equal(t, schedule.DateStamp("2025-02-01"), r.LastVisits()[p1.ID])
}
