package appointment

import (
	"sync"

	"github.com/clinicware/practice-scheduler/internal/schedule"
)

// Store is the in-memory appointment collection. Mutations never run
// conflict checks themselves; HasConflict is advisory and the caller (the
// booking service) decides before committing.
type Store struct {
	mu    sync.RWMutex
	appts []Appointment
}

func NewStore() *Store {
	return &Store{}
}

// Add assigns id = max existing id + 1 (1 on an empty store), appends and
// returns the stored record.
func (s *Store) Add(a Appointment) Appointment {
	s.mu.Lock()
	defer s.mu.Unlock()

	var maxID int64
	for _, existing := range s.appts {
		if existing.ID > maxID {
			maxID = existing.ID
		}
	}
	a.ID = maxID + 1
	s.appts = append(s.appts, a)
	return a
}

// UpdateStatus replaces only the status of the matching record. Unknown ids
// are a silent no-op. Any status may transition to any other; there is no
// state machine.
func (s *Store) UpdateStatus(id int64, status Status) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.appts {
		if s.appts[i].ID == id {
			s.appts[i].Status = status
			return
		}
	}
}

// Replace swaps the whole record matching updated.ID. Unknown ids are a
// silent no-op.
func (s *Store) Replace(updated Appointment) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.appts {
		if s.appts[i].ID == updated.ID {
			s.appts[i] = updated
			return
		}
	}
}

// Remove deletes by id; absent ids are a silent no-op.
func (s *Store) Remove(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.appts[:0]
	for _, a := range s.appts {
		if a.ID != id {
			kept = append(kept, a)
		}
	}
	s.appts = kept
}

// Get returns the record with the given id.
func (s *Store) Get(id int64) (Appointment, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, a := range s.appts {
		if a.ID == id {
			return a, true
		}
	}
	return Appointment{}, false
}

// ByDate filters on date equality preserving insertion order. The result is
// NOT sorted by start time; callers that need chronological order sort
// explicitly.
func (s *Store) ByDate(date schedule.DateStamp) []Appointment {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []Appointment
	for _, a := range s.appts {
		if a.Date == date {
			out = append(out, a)
		}
	}
	return out
}

// All returns a copy of every appointment in insertion order.
func (s *Store) All() []Appointment {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return append([]Appointment(nil), s.appts...)
}

// DayStats counts the appointments on a date and how many are confirmed.
func (s *Store) DayStats(date schedule.DateStamp) (total, confirmed int) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, a := range s.appts {
		if a.Date != date {
			continue
		}
		total++
		if a.Status == StatusConfirmed {
			confirmed++
		}
	}
	return total, confirmed
}
