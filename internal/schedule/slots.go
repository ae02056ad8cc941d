package schedule

// GenerateSlots enumerates candidate appointment start times for a date:
// from the weekday's open time, stepping by slotMinutes, stopping at close,
// emitting only times the resolver accepts. It is a pure function of the
// current schedule and block state; results are recomputed on every call,
// never cached, so a schedule or block change can not serve stale slots.
func GenerateSlots(r *Resolver, date DateStamp, slotMinutes int) []TimeOfDay {
	if slotMinutes <= 0 {
		return nil
	}
	day := r.source.WeeklySchedule().Day(WeekdayOf(date))
	if !day.Active {
		return nil
	}
	var slots []TimeOfDay
	for t := day.Open; t < day.Close; t += TimeOfDay(slotMinutes) {
		if r.IsBookable(date, t) {
			slots = append(slots, t)
		}
	}
	return slots
}
