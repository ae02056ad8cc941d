package appointment

import (
	"github.com/clinicware/practice-scheduler/internal/schedule"
)

type Status string

const (
	StatusScheduled Status = "scheduled"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
	StatusBlocked   Status = "blocked"
)

// ValidStatus reports whether s is one of the four appointment statuses.
func ValidStatus(s Status) bool {
	switch s {
	case StatusScheduled, StatusConfirmed, StatusCancelled, StatusBlocked:
		return true
	}
	return false
}

type Kind string

const (
	KindVisit    Kind = "visit"
	KindFollowup Kind = "followup"
	KindOther    Kind = "other"
)

// Appointment is a booked calendar entry. IDs are numeric and assigned
// monotonically by the store.
type Appointment struct {
	ID              int64              `json:"id"`
	PatientID       int64              `json:"patient_id"`
	PatientName     string             `json:"patient_name"`
	Date            schedule.DateStamp `json:"date"`
	Start           schedule.TimeOfDay `json:"start"`
	DurationMinutes int                `json:"duration_minutes"`
	Kind            Kind               `json:"kind"`
	Status          Status             `json:"status"`
	Location        string             `json:"location"`
	Notes           string             `json:"notes,omitempty"`
	NotifyPatient   bool               `json:"notify_patient"`
	Billable        bool               `json:"billable"`
	IsRemote        bool               `json:"is_remote,omitempty"`
}

// End is the derived end time, start plus duration.
func (a Appointment) End() schedule.TimeOfDay {
	return a.Start + schedule.TimeOfDay(a.DurationMinutes)
}
