package patient

import (
	"sync"

	"github.com/clinicware/practice-scheduler/internal/schedule"
)

// Roster is the in-memory patient collection plus each patient's last
// recorded visit date. Same id discipline as the appointment store: numeric,
// max existing + 1.
type Roster struct {
	mu         sync.RWMutex
	patients   []Patient
	lastVisits map[int64]schedule.DateStamp
}

func NewRoster() *Roster {
	return &Roster{lastVisits: make(map[int64]schedule.DateStamp)}
}

// Add assigns the next id, appends and returns the stored patient.
func (r *Roster) Add(p Patient) Patient {
	r.mu.Lock()
	defer r.mu.Unlock()

	var maxID int64
	for _, existing := range r.patients {
		if existing.ID > maxID {
			maxID = existing.ID
		}
	}
	p.ID = maxID + 1
	r.patients = append(r.patients, p)
	return p
}

// Get returns the patient with the given id.
func (r *Roster) Get(id int64) (Patient, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.patients {
		if p.ID == id {
			return p, true
		}
	}
	return Patient{}, false
}

// All returns a copy of the roster in insertion order.
func (r *Roster) All() []Patient {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]Patient(nil), r.patients...)
}

// RecordVisit stores the patient's most recent visit date, keeping the later
// of the stored and given dates.
func (r *Roster) RecordVisit(id int64, date schedule.DateStamp) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if current, ok := r.lastVisits[id]; ok && current >= date {
		return
	}
	r.lastVisits[id] = date
}

// LastVisits returns a copy of the last-visit lookup.
func (r *Roster) LastVisits() map[int64]schedule.DateStamp {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[int64]schedule.DateStamp, len(r.lastVisits))
	for id, d := range r.lastVisits {
		out[id] = d
	}
	return out
}
