package schedule

import "fmt"

// Rule identifies which availability rule rejected a time. Callers use it to
// revert an optimistic UI change and message the user.
type Rule string

const (
	RuleInactiveDay  Rule = "inactive_day"
	RuleOutsideHours Rule = "outside_hours"
	RuleInBreak      Rule = "in_break"
	RuleBlocked      Rule = "blocked"
)

// Rejection explains why a time is not bookable.
type Rejection struct {
	Rule   Rule
	Reason string
}

func (r *Rejection) Error() string {
	return fmt.Sprintf("%s: %s", r.Rule, r.Reason)
}

// AgendaSource supplies the resolver with consistent snapshots of the weekly
// schedule and the block registry. It is injected, never read from ambient
// globals, so the resolver is testable and the container can be swapped.
type AgendaSource interface {
	WeeklySchedule() WeeklySchedule
	Blocks() Registry
}

// Resolver decides whether a date/time slot is legally bookable by composing
// the weekly schedule with the block registry. All interval checks are
// half-open [start, end): a slot starting exactly at a break's or block's
// end is free.
type Resolver struct {
	source AgendaSource
}

func NewResolver(source AgendaSource) *Resolver {
	return &Resolver{source: source}
}

// IsBlocked reports whether any stored block applies to the date and covers
// the time.
func (r *Resolver) IsBlocked(date DateStamp, t TimeOfDay) bool {
	for _, e := range r.source.Blocks().Entries {
		if Matches(e, date) && t >= e.Start && t < e.End {
			return true
		}
	}
	return false
}

// IsWithinBusinessHours reports whether the time falls inside the weekday's
// active hours and outside every break.
func (r *Resolver) IsWithinBusinessHours(date DateStamp, t TimeOfDay) bool {
	return r.explainHours(date, t) == nil
}

// IsBookable is the single gate consulted before any booking intent:
// within business hours and not blocked.
func (r *Resolver) IsBookable(date DateStamp, t TimeOfDay) bool {
	return r.Explain(date, t) == nil
}

// Explain returns nil when the time is bookable, otherwise the first rule
// that rejects it.
func (r *Resolver) Explain(date DateStamp, t TimeOfDay) *Rejection {
	if rej := r.explainHours(date, t); rej != nil {
		return rej
	}
	for _, e := range r.source.Blocks().Entries {
		if Matches(e, date) && t >= e.Start && t < e.End {
			reason := e.Reason
			if reason == "" {
				reason = "time is blocked"
			}
			return &Rejection{Rule: RuleBlocked, Reason: reason}
		}
	}
	return nil
}

func (r *Resolver) explainHours(date DateStamp, t TimeOfDay) *Rejection {
	day := r.source.WeeklySchedule().Day(WeekdayOf(date))
	if !day.Active {
		return &Rejection{Rule: RuleInactiveDay, Reason: fmt.Sprintf("%s is not a working day", WeekdayOf(date))}
	}
	if t < day.Open || t >= day.Close {
		return &Rejection{Rule: RuleOutsideHours, Reason: fmt.Sprintf("outside working hours %s-%s", day.Open, day.Close)}
	}
	for _, b := range day.Breaks {
		if t >= b.Start && t < b.End {
			return &Rejection{Rule: RuleInBreak, Reason: fmt.Sprintf("falls in break %s-%s", b.Start, b.End)}
		}
	}
	return nil
}

// ExplainRange validates a whole appointment span: the start must be
// bookable and the projected end must stay within working hours without
// crossing a break or block. The end itself is exclusive, so an appointment
// may run exactly up to close, a break or a block.
func (r *Resolver) ExplainRange(date DateStamp, start TimeOfDay, durationMinutes int) *Rejection {
	if rej := r.Explain(date, start); rej != nil {
		return rej
	}
	end := start + TimeOfDay(durationMinutes)
	day := r.source.WeeklySchedule().Day(WeekdayOf(date))
	if end > day.Close {
		return &Rejection{Rule: RuleOutsideHours, Reason: fmt.Sprintf("would run past closing time %s", day.Close)}
	}
	for _, b := range day.Breaks {
		if start < b.End && end > b.Start {
			return &Rejection{Rule: RuleInBreak, Reason: fmt.Sprintf("would overlap break %s-%s", b.Start, b.End)}
		}
	}
	for _, e := range r.source.Blocks().Entries {
		if Matches(e, date) && start < e.End && end > e.Start {
			reason := e.Reason
			if reason == "" {
				reason = "time is blocked"
			}
			return &Rejection{Rule: RuleBlocked, Reason: reason}
		}
	}
	return nil
}
