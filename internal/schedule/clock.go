// Package schedule implements the availability engine of the practice
// scheduler: calendar math, the weekly working-hours model, time-off blocks,
// the availability resolver and the slot generator.
//
// All scheduling decisions operate on a DateStamp plus TimeOfDay pair, never
// on instants, so the engine is immune to DST and offset ambiguity.
package schedule

import (
	"fmt"
	"time"
)

const minutesPerDay = 24 * 60

// TimeOfDay is a wall-clock time at minute resolution, stored as minutes
// since midnight. Its text form is zero-padded "HH:MM".
type TimeOfDay int

// ParseTimeOfDay parses a "HH:MM" string.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	var h, m int
	if _, err := fmt.Sscanf(s, "%d:%d", &h, &m); err != nil {
		return 0, fmt.Errorf("parse time of day %q: %w", s, err)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, fmt.Errorf("time of day %q out of range", s)
	}
	return TimeOfDay(h*60 + m), nil
}

// MustTimeOfDay is ParseTimeOfDay for literals; it panics on malformed input.
func MustTimeOfDay(s string) TimeOfDay {
	t, err := ParseTimeOfDay(s)
	if err != nil {
		panic(err)
	}
	return t
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", int(t)/60, int(t)%60)
}

// Minutes returns the minutes-since-midnight value.
func (t TimeOfDay) Minutes() int { return int(t) }

// Valid reports whether t lies within a single day.
func (t TimeOfDay) Valid() bool { return t >= 0 && t < minutesPerDay }

func (t TimeOfDay) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *TimeOfDay) UnmarshalText(b []byte) error {
	parsed, err := ParseTimeOfDay(string(b))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// AddMinutes returns t shifted by m minutes, wrapping within the day.
// Negative shifts wrap correctly (true modulo, not truncation).
func AddMinutes(t TimeOfDay, m int) TimeOfDay {
	total := (int(t) + m) % minutesPerDay
	if total < 0 {
		total += minutesPerDay
	}
	return TimeOfDay(total)
}

// DateStamp is a timezone-naive calendar date in "YYYY-MM-DD" form.
// Zero-padded ISO dates order lexically, so DateStamp values compare
// chronologically with the built-in string operators.
type DateStamp string

// ParseDateStamp validates a "YYYY-MM-DD" string.
func ParseDateStamp(s string) (DateStamp, error) {
	if _, err := time.Parse("2006-01-02", s); err != nil {
		return "", fmt.Errorf("parse date %q: %w", s, err)
	}
	return DateStamp(s), nil
}

// Valid reports whether d is a well-formed calendar date.
func (d DateStamp) Valid() bool {
	_, err := time.Parse("2006-01-02", string(d))
	return err == nil
}

// Time returns the date at UTC midnight. Using UTC keeps day arithmetic
// exact: there are no DST-shifted midnights to round across.
func (d DateStamp) Time() time.Time {
	t, _ := time.Parse("2006-01-02", string(d))
	return t
}

// DayOfMonth returns the calendar day (1..31).
func (d DateStamp) DayOfMonth() int {
	return d.Time().Day()
}

// WeekdayOf returns the weekday of a calendar date.
func WeekdayOf(d DateStamp) Weekday {
	return Weekday(d.Time().Weekday())
}

// DaysBetween returns the absolute number of days between two calendar
// dates, ignoring time of day.
func DaysBetween(a, b DateStamp) int {
	diff := b.Time().Sub(a.Time())
	days := int(diff.Hours() / 24)
	if days < 0 {
		days = -days
	}
	return days
}

// Today returns the current local calendar date.
func Today() DateStamp {
	return DateStamp(time.Now().Format("2006-01-02"))
}
