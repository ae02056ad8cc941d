package schedule

import (
	"fmt"
	"strings"
)

// Weekday is a closed enum, Sunday through Saturday, matching time.Weekday
// numbering. Using a fixed enum instead of string-keyed maps removes the
// missing-key failure mode of the free-form configuration shape.
type Weekday int

const (
	Sunday Weekday = iota
	Monday
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
)

var weekdayNames = [7]string{
	"sunday", "monday", "tuesday", "wednesday", "thursday", "friday", "saturday",
}

func (w Weekday) String() string {
	if w < Sunday || w > Saturday {
		return fmt.Sprintf("weekday(%d)", int(w))
	}
	return weekdayNames[w]
}

// ParseWeekday maps a lowercase weekday name to the enum.
func ParseWeekday(s string) (Weekday, error) {
	name := strings.ToLower(s)
	for i, n := range weekdayNames {
		if n == name {
			return Weekday(i), nil
		}
	}
	return 0, fmt.Errorf("unknown weekday %q", s)
}

// Break is a pause interval inside a working day, half-open [Start, End).
type Break struct {
	ID    string    `json:"id"`
	Start TimeOfDay `json:"start"`
	End   TimeOfDay `json:"end"`
}

// DaySchedule is the working-hours definition for one weekday.
type DaySchedule struct {
	Active bool      `json:"active"`
	Open   TimeOfDay `json:"open"`
	Close  TimeOfDay `json:"close"`
	Breaks []Break   `json:"breaks"`
}

// WeeklySchedule holds one DaySchedule per weekday, indexed by the Weekday
// enum. It is a value type: mutation helpers return modified copies so a
// snapshot handed to a reader is never aliased by a later write.
type WeeklySchedule struct {
	Days [7]DaySchedule `json:"days"`
}

// DefaultWeeklySchedule returns the initial configuration: weekdays active
// 08:00-17:00, weekend inactive 08:00-12:00.
func DefaultWeeklySchedule() WeeklySchedule {
	var ws WeeklySchedule
	for w := Sunday; w <= Saturday; w++ {
		day := DaySchedule{Open: MustTimeOfDay("08:00"), Close: MustTimeOfDay("17:00")}
		switch w {
		case Sunday, Saturday:
			day.Active = false
			day.Close = MustTimeOfDay("12:00")
		default:
			day.Active = true
		}
		ws.Days[w] = day
	}
	return ws
}

// Day returns the schedule for a weekday.
func (ws WeeklySchedule) Day(w Weekday) DaySchedule {
	return ws.Days[w].clone()
}

func (d DaySchedule) clone() DaySchedule {
	out := d
	out.Breaks = append([]Break(nil), d.Breaks...)
	return out
}

// SetDayActive returns a copy with the weekday's active flag replaced.
func (ws WeeklySchedule) SetDayActive(w Weekday, active bool) WeeklySchedule {
	out := ws.cloneDays()
	out.Days[w].Active = active
	return out
}

// SetDayHours returns a copy with the weekday's open and close replaced.
func (ws WeeklySchedule) SetDayHours(w Weekday, open, close TimeOfDay) WeeklySchedule {
	out := ws.cloneDays()
	out.Days[w].Open = open
	out.Days[w].Close = close
	return out
}

// AddBreak returns a copy with the break appended to the weekday.
func (ws WeeklySchedule) AddBreak(w Weekday, b Break) WeeklySchedule {
	out := ws.cloneDays()
	out.Days[w].Breaks = append(out.Days[w].Breaks, b)
	return out
}

// RemoveBreak returns a copy with the identified break removed. Unknown
// break ids are a silent no-op.
func (ws WeeklySchedule) RemoveBreak(w Weekday, breakID string) WeeklySchedule {
	out := ws.cloneDays()
	kept := out.Days[w].Breaks[:0]
	for _, b := range out.Days[w].Breaks {
		if b.ID != breakID {
			kept = append(kept, b)
		}
	}
	out.Days[w].Breaks = kept
	return out
}

// UpdateBreak returns a copy with one endpoint of the identified break
// replaced. field is "start" or "end"; anything else is a no-op.
func (ws WeeklySchedule) UpdateBreak(w Weekday, breakID, field string, value TimeOfDay) WeeklySchedule {
	out := ws.cloneDays()
	for i, b := range out.Days[w].Breaks {
		if b.ID != breakID {
			continue
		}
		switch field {
		case "start":
			out.Days[w].Breaks[i].Start = value
		case "end":
			out.Days[w].Breaks[i].End = value
		}
	}
	return out
}

// Clone returns a deep copy sharing no break slices with the original.
func (ws WeeklySchedule) Clone() WeeklySchedule {
	var out WeeklySchedule
	for i := range ws.Days {
		out.Days[i] = ws.Days[i].clone()
	}
	return out
}

func (ws WeeklySchedule) cloneDays() WeeklySchedule {
	return ws.Clone()
}

// FieldError reports which configuration field failed validation.
type FieldError struct {
	Field  string
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// ValidateDay checks the invariants of an active day: open before close,
// every break inside [open, close), breaks mutually non-overlapping and
// well-formed. The mutation helpers stay loose on purpose; validation runs
// at commit points such as the configuration API.
func ValidateDay(d DaySchedule) error {
	if !d.Active {
		return nil
	}
	if d.Open >= d.Close {
		return &FieldError{Field: "open", Reason: "open must be before close"}
	}
	for i, b := range d.Breaks {
		if b.Start >= b.End {
			return &FieldError{Field: fmt.Sprintf("breaks[%d].start", i), Reason: "break start must be before break end"}
		}
		if b.Start < d.Open || b.End > d.Close {
			return &FieldError{Field: fmt.Sprintf("breaks[%d]", i), Reason: "break must lie within working hours"}
		}
		for j, other := range d.Breaks[:i] {
			if b.Start < other.End && b.End > other.Start {
				return &FieldError{Field: fmt.Sprintf("breaks[%d]", i), Reason: fmt.Sprintf("break overlaps breaks[%d]", j)}
			}
		}
	}
	return nil
}

// Validate runs ValidateDay over all seven weekdays.
func (ws WeeklySchedule) Validate() error {
	for w := Sunday; w <= Saturday; w++ {
		if err := ValidateDay(ws.Days[w]); err != nil {
			return fmt.Errorf("%s: %w", w, err)
		}
	}
	return nil
}
