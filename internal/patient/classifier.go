package patient

import (
	"github.com/clinicware/practice-scheduler/internal/appointment"
	"github.com/clinicware/practice-scheduler/internal/schedule"
)

// ClassifyStatus buckets days-since-last-visit into a status. A nil value or
// the NeverVisited sentinel means the patient has no visit history yet.
func ClassifyStatus(daysSinceLastVisit *int, cfg Config) Status {
	if daysSinceLastVisit == nil || *daysSinceLastVisit >= NeverVisited {
		return StatusNew
	}
	days := *daysSinceLastVisit
	if days <= cfg.FlowMaxDays {
		return StatusFlow
	}
	if days <= cfg.ActiveMaxDays {
		return StatusActive
	}
	return StatusInactive
}

// ClassifyUrgency places the patient relative to their visit-frequency
// target: inside the tolerance window is "Now", past it is "Late",
// everything earlier (including new patients) is "Soon".
func ClassifyUrgency(daysSinceLastVisit *int, targetFrequencyDays, toleranceDays int) Urgency {
	if daysSinceLastVisit == nil || *daysSinceLastVisit >= NeverVisited {
		return UrgencySoon
	}
	days := *daysSinceLastVisit
	if days >= targetFrequencyDays-toleranceDays && days <= targetFrequencyDays+toleranceDays {
		return UrgencyNow
	}
	if days > targetFrequencyDays+toleranceDays {
		return UrgencyLate
	}
	return UrgencySoon
}

// isBooked reports whether the patient holds a non-cancelled appointment
// today or later.
func isBooked(patientID int64, appts []appointment.Appointment, today schedule.DateStamp) bool {
	for _, a := range appts {
		if a.PatientID == patientID && a.Status != appointment.StatusCancelled && a.Date >= today {
			return true
		}
	}
	return false
}

// BuildStatusViews derives the outreach view for every patient from the
// roster, the last-visit lookup and current appointments. Recomputed in full
// on each call.
func BuildStatusViews(
	patients []Patient,
	lastVisits map[int64]schedule.DateStamp,
	appts []appointment.Appointment,
	cfg Config,
	today schedule.DateStamp,
) []StatusView {
	views := make([]StatusView, 0, len(patients))
	for _, p := range patients {
		var days *int
		var lastVisit schedule.DateStamp
		if visit, ok := lastVisits[p.ID]; ok {
			d := schedule.DaysBetween(visit, today)
			days = &d
			lastVisit = visit
		}

		freq := cfg.FrequencyFor(p.Location)
		view := StatusView{
			Patient:            p,
			Status:             ClassifyStatus(days, cfg),
			Urgency:            ClassifyUrgency(days, freq, cfg.NowWindowDays),
			LastVisit:          lastVisit,
			DaysSinceLastVisit: NeverVisited,
			IsBooked:           isBooked(p.ID, appts, today),
			VisitFrequencyDays: freq,
		}
		if days != nil {
			view.DaysSinceLastVisit = *days
		}
		views = append(views, view)
	}
	return views
}

// BookedFilter narrows an outreach query by booking state.
type BookedFilter string

const (
	BookedAny  BookedFilter = "all"
	BookedOnly BookedFilter = "booked"
	BookedNone BookedFilter = "unbooked"
)

// Filters selects outreach rows. Empty slices mean "no restriction" for
// that dimension.
type Filters struct {
	Statuses  []Status
	Urgencies []Urgency
	Locations []string
	Booked    BookedFilter
}

// Apply filters the views, preserving order.
func (f Filters) Apply(views []StatusView) []StatusView {
	var out []StatusView
	for _, v := range views {
		if len(f.Statuses) > 0 && !containsStatus(f.Statuses, v.Status) {
			continue
		}
		if len(f.Urgencies) > 0 && !containsUrgency(f.Urgencies, v.Urgency) {
			continue
		}
		if len(f.Locations) > 0 && !containsString(f.Locations, v.Location) {
			continue
		}
		if f.Booked == BookedOnly && !v.IsBooked {
			continue
		}
		if f.Booked == BookedNone && v.IsBooked {
			continue
		}
		out = append(out, v)
	}
	return out
}

func containsStatus(list []Status, s Status) bool {
	for _, x := range list {
		if x == s {
			return true
		}
	}
	return false
}

func containsUrgency(list []Urgency, u Urgency) bool {
	for _, x := range list {
		if x == u {
			return true
		}
	}
	return false
}

func containsString(list []string, s string) bool {
	for _, x := range list {
		if x == s {
			return true
		}
	}
	return false
}

// Metrics summarizes an outreach result set.
type Metrics struct {
	TotalPatients   int             `json:"total_patients"`
	ByStatus        map[Status]int  `json:"by_status"`
	ByUrgency       map[Urgency]int `json:"by_urgency"`
	BookedPatients  int             `json:"booked_patients"`
	UnbookedPatients int            `json:"unbooked_patients"`
}

// Summarize computes outreach metrics over a set of views.
func Summarize(views []StatusView) Metrics {
	m := Metrics{
		TotalPatients: len(views),
		ByStatus:      make(map[Status]int),
		ByUrgency:     make(map[Urgency]int),
	}
	for _, v := range views {
		m.ByStatus[v.Status]++
		m.ByUrgency[v.Urgency]++
		if v.IsBooked {
			m.BookedPatients++
		}
	}
	m.UnbookedPatients = m.TotalPatients - m.BookedPatients
	return m
}
