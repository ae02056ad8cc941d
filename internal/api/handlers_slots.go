package api

import (
	"net/http"
	"strconv"

	"github.com/clinicware/practice-scheduler/internal/schedule"
)

func listSlotsHandler(resolver *schedule.Resolver, defaultSlotMinutes int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		date, err := schedule.ParseDateStamp(r.URL.Query().Get("date"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_date", err.Error())
			return
		}

		duration := defaultSlotMinutes
		if raw := r.URL.Query().Get("duration"); raw != "" {
			duration, err = strconv.Atoi(raw)
			if err != nil || duration <= 0 {
				writeError(w, http.StatusBadRequest, "invalid_duration", "duration must be a positive number of minutes")
				return
			}
		}

		slots := schedule.GenerateSlots(resolver, date, duration)
		out := make([]string, 0, len(slots))
		for _, s := range slots {
			out = append(out, s.String())
		}

		writeJSON(w, http.StatusOK, SlotsResponse{Date: date, DurationMinutes: duration, Slots: out})
	}
}

func availabilityHandler(resolver *schedule.Resolver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		date, err := schedule.ParseDateStamp(r.URL.Query().Get("date"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_date", err.Error())
			return
		}

		t, err := schedule.ParseTimeOfDay(r.URL.Query().Get("time"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_time", err.Error())
			return
		}

		// With a duration the whole span is checked, not just the start.
		var rej *schedule.Rejection
		if raw := r.URL.Query().Get("duration"); raw != "" {
			duration, convErr := strconv.Atoi(raw)
			if convErr != nil || duration <= 0 {
				writeError(w, http.StatusBadRequest, "invalid_duration", "duration must be a positive number of minutes")
				return
			}
			rej = resolver.ExplainRange(date, t, duration)
		} else {
			rej = resolver.Explain(date, t)
		}

		resp := AvailabilityResponse{Date: date, Time: t.String(), Bookable: rej == nil}
		if rej != nil {
			resp.Rule = string(rej.Rule)
			resp.Reason = rej.Reason
		}

		writeJSON(w, http.StatusOK, resp)
	}
}
