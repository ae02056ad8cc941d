package schedule

import (
	"fmt"

	"github.com/google/uuid"
)

// BlockKind distinguishes one-off blocks from recurring ones.
type BlockKind string

const (
	BlockSingle    BlockKind = "single"
	BlockRecurring BlockKind = "recurring"
)

// Recurrence is the repeat rule of a recurring block.
type Recurrence string

const (
	RecurWeekly  Recurrence = "weekly"
	RecurMonthly Recurrence = "monthly"
)

// BlockEntry declares a time range as unavailable. For single blocks Date is
// the literal day; for recurring blocks Date is the anchor the recurrence
// runs forward from, open-ended.
type BlockEntry struct {
	ID         string     `json:"id"`
	Date       DateStamp  `json:"date"`
	Start      TimeOfDay  `json:"start"`
	End        TimeOfDay  `json:"end"`
	Reason     string     `json:"reason"`
	Kind       BlockKind  `json:"kind"`
	Recurrence Recurrence `json:"recurrence,omitempty"`
}

// ValidateBlock checks the construction invariants of a block entry and
// names the failing field. Partial records are never stored.
func ValidateBlock(e BlockEntry) error {
	if !e.Date.Valid() {
		return &FieldError{Field: "date", Reason: "must be a valid YYYY-MM-DD date"}
	}
	if e.Start >= e.End {
		return &FieldError{Field: "start", Reason: "start must be before end"}
	}
	if e.Reason == "" {
		return &FieldError{Field: "reason", Reason: "reason is required"}
	}
	switch e.Kind {
	case BlockSingle:
		if e.Recurrence != "" {
			return &FieldError{Field: "recurrence", Reason: "single blocks must not carry a recurrence"}
		}
	case BlockRecurring:
		if e.Recurrence != RecurWeekly && e.Recurrence != RecurMonthly {
			return &FieldError{Field: "recurrence", Reason: `recurring blocks require "weekly" or "monthly"`}
		}
	default:
		return &FieldError{Field: "kind", Reason: fmt.Sprintf("unknown kind %q", e.Kind)}
	}
	return nil
}

// Matches reports whether a block entry applies on the given date.
// Single blocks match only their literal date. Weekly recurrence matches the
// anchor's weekday on or after the anchor; monthly recurrence matches the
// anchor's day-of-month on or after the anchor. Blocks never expire.
func Matches(e BlockEntry, date DateStamp) bool {
	if e.Kind != BlockRecurring {
		return e.Date == date
	}
	if date < e.Date {
		return false
	}
	switch e.Recurrence {
	case RecurWeekly:
		return WeekdayOf(date) == WeekdayOf(e.Date)
	case RecurMonthly:
		return date.DayOfMonth() == e.Date.DayOfMonth()
	}
	return false
}

// Registry is the ordered set of block entries. Entries are never merged or
// deduplicated; it is a value type like WeeklySchedule, with copy-returning
// mutation helpers.
type Registry struct {
	Entries []BlockEntry `json:"entries"`
}

// Add validates the entry, assigns a collision-free id and returns the
// registry copy plus the stored entry.
func (r Registry) Add(e BlockEntry) (Registry, BlockEntry, error) {
	if err := ValidateBlock(e); err != nil {
		return r, BlockEntry{}, err
	}
	e.ID = uuid.NewString()
	out := r.clone()
	out.Entries = append(out.Entries, e)
	return out, e, nil
}

// Remove drops the entry with the given id; absent ids are a silent no-op.
func (r Registry) Remove(id string) Registry {
	out := r.clone()
	kept := out.Entries[:0]
	for _, e := range out.Entries {
		if e.ID != id {
			kept = append(kept, e)
		}
	}
	out.Entries = kept
	return out
}

// Matching returns the entries that apply on a date.
func (r Registry) Matching(date DateStamp) []BlockEntry {
	var out []BlockEntry
	for _, e := range r.Entries {
		if Matches(e, date) {
			out = append(out, e)
		}
	}
	return out
}

// Clone returns a copy sharing no entry slice with the original.
func (r Registry) Clone() Registry {
	return r.clone()
}

func (r Registry) clone() Registry {
	return Registry{Entries: append([]BlockEntry(nil), r.Entries...)}
}
