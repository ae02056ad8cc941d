// Package patient holds the roster and the outreach classifier: a small
// companion to the scheduling engine that buckets each patient by how
// overdue their next visit is.
package patient

import (
	"github.com/clinicware/practice-scheduler/internal/schedule"
)

// Status buckets a patient by recency of their last visit.
type Status string

const (
	StatusFlow     Status = "Flow"
	StatusActive   Status = "Active"
	StatusInactive Status = "Inactive"
	StatusNew      Status = "New"
)

// Urgency buckets a patient by how close they are to their visit-frequency
// target.
type Urgency string

const (
	UrgencyNow  Urgency = "Now"
	UrgencyLate Urgency = "Late"
	UrgencySoon Urgency = "Soon"
)

// NeverVisited is the sentinel days-since-last-visit for patients with no
// recorded visit; at or above it a patient classifies as New.
const NeverVisited = 999

type Patient struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Location string `json:"location"`
}

// StatusView is the derived outreach row for one patient. It is computed
// fresh on every query and never persisted.
type StatusView struct {
	Patient
	Status             Status             `json:"status"`
	Urgency            Urgency            `json:"urgency"`
	LastVisit          schedule.DateStamp `json:"last_visit,omitempty"`
	DaysSinceLastVisit int                `json:"days_since_last_visit"`
	IsBooked           bool               `json:"is_booked"`
	VisitFrequencyDays int                `json:"visit_frequency_days"`
}

// Config drives classification: the status thresholds, per-location visit
// frequency targets and the tolerance window around the target that counts
// as "Now".
type Config struct {
	FlowMaxDays        int            `json:"flow_max_days"`
	ActiveMaxDays      int            `json:"active_max_days"`
	FrequencyByLocation map[string]int `json:"frequency_by_location"`
	NowWindowDays      int            `json:"now_window_days"`
}

// DefaultConfig mirrors the practice's shipped defaults: Flow up to 30 days,
// Active up to 90, a 15-day fallback frequency and a 5-day "Now" window.
func DefaultConfig() Config {
	return Config{
		FlowMaxDays:   30,
		ActiveMaxDays: 90,
		FrequencyByLocation: map[string]int{},
		NowWindowDays: 5,
	}
}

const defaultFrequencyDays = 15

// FrequencyFor returns the visit-frequency target for a location, falling
// back to the practice-wide default for unknown locations.
func (c Config) FrequencyFor(location string) int {
	if f, ok := c.FrequencyByLocation[location]; ok && f > 0 {
		return f
	}
	return defaultFrequencyDays
}
