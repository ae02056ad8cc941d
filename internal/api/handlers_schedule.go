package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/clinicware/practice-scheduler/internal/schedule"
	"github.com/clinicware/practice-scheduler/internal/settings"
)

func getScheduleHandler(agenda *settings.Agenda) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, weekToDTO(agenda.WeeklySchedule()))
	}
}

func replaceScheduleHandler(agenda *settings.Agenda) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req WeekScheduleDTO
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
			return
		}

		week, err := weekFromDTO(agenda.WeeklySchedule(), req)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_schedule", err.Error())
			return
		}

		if err := agenda.ReplaceWeek(r.Context(), week); err != nil {
			writeDomainError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, weekToDTO(agenda.WeeklySchedule()))
	}
}

func updateDayHandler(agenda *settings.Agenda) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		weekday, err := schedule.ParseWeekday(chi.URLParam(r, "weekday"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_weekday", err.Error())
			return
		}

		var req UpdateDayRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
			return
		}

		if req.Active != nil {
			if err := agenda.SetDayActive(r.Context(), weekday, *req.Active); err != nil {
				writeDomainError(w, err)
				return
			}
		}

		if req.Open != nil || req.Close != nil {
			if req.Open == nil || req.Close == nil {
				writeError(w, http.StatusBadRequest, "invalid_hours", "open and close must be provided together")
				return
			}
			open, err := schedule.ParseTimeOfDay(*req.Open)
			if err != nil {
				writeError(w, http.StatusBadRequest, "invalid_hours", err.Error())
				return
			}
			close, err := schedule.ParseTimeOfDay(*req.Close)
			if err != nil {
				writeError(w, http.StatusBadRequest, "invalid_hours", err.Error())
				return
			}
			if err := agenda.SetDayHours(r.Context(), weekday, open, close); err != nil {
				writeDomainError(w, err)
				return
			}
		}

		writeJSON(w, http.StatusOK, weekToDTO(agenda.WeeklySchedule()).Days[weekday.String()])
	}
}

func createBreakHandler(agenda *settings.Agenda) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		weekday, err := schedule.ParseWeekday(chi.URLParam(r, "weekday"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_weekday", err.Error())
			return
		}

		var req CreateBreakRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
			return
		}

		start, err := schedule.ParseTimeOfDay(req.Start)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_break", err.Error())
			return
		}
		end, err := schedule.ParseTimeOfDay(req.End)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_break", err.Error())
			return
		}

		b, err := agenda.AddBreak(r.Context(), weekday, start, end)
		if err != nil {
			writeDomainError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, BreakDTO{ID: b.ID, Start: b.Start.String(), End: b.End.String()})
	}
}

func updateBreakHandler(agenda *settings.Agenda) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		weekday, err := schedule.ParseWeekday(chi.URLParam(r, "weekday"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_weekday", err.Error())
			return
		}
		breakID := chi.URLParam(r, "breakID")

		var req UpdateBreakRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
			return
		}

		apply := func(field string, raw *string) bool {
			if raw == nil {
				return true
			}
			value, err := schedule.ParseTimeOfDay(*raw)
			if err != nil {
				writeError(w, http.StatusBadRequest, "invalid_break", err.Error())
				return false
			}
			if err := agenda.UpdateBreak(r.Context(), weekday, breakID, field, value); err != nil {
				writeDomainError(w, err)
				return false
			}
			return true
		}

		if !apply("start", req.Start) || !apply("end", req.End) {
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func deleteBreakHandler(agenda *settings.Agenda) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		weekday, err := schedule.ParseWeekday(chi.URLParam(r, "weekday"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_weekday", err.Error())
			return
		}

		if err := agenda.RemoveBreak(r.Context(), weekday, chi.URLParam(r, "breakID")); err != nil {
			writeDomainError(w, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}
