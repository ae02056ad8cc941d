package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/clinicware/practice-scheduler/internal/appointment"
	"github.com/clinicware/practice-scheduler/internal/patient"
	"github.com/clinicware/practice-scheduler/internal/schedule"
)

func parseAppointmentID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	return id, err == nil && id > 0
}

func bookAppointmentHandler(svc *appointment.Service, roster *patient.Roster) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req appointment.Appointment
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
			return
		}
		req.ID = 0

		if !req.Date.Valid() {
			writeError(w, http.StatusBadRequest, "invalid_date", "date must be a valid YYYY-MM-DD date")
			return
		}

		if req.PatientID != 0 {
			p, ok := roster.Get(req.PatientID)
			if !ok {
				writeError(w, http.StatusNotFound, "patient_not_found", "no patient with that id")
				return
			}
			if req.PatientName == "" {
				req.PatientName = p.Name
			}
			if req.Location == "" {
				req.Location = p.Location
			}
		}

		booked, err := svc.Book(r.Context(), req)
		if err != nil {
			writeDomainError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, booked)
	}
}

func listAppointmentsHandler(store *appointment.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var appts []appointment.Appointment
		if raw := r.URL.Query().Get("date"); raw != "" {
			date, err := schedule.ParseDateStamp(raw)
			if err != nil {
				writeError(w, http.StatusBadRequest, "invalid_date", err.Error())
				return
			}
			appts = store.ByDate(date)
		} else {
			appts = store.All()
		}
		if appts == nil {
			appts = []appointment.Appointment{}
		}
		writeJSON(w, http.StatusOK, map[string][]appointment.Appointment{"appointments": appts})
	}
}

func getAppointmentHandler(store *appointment.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseAppointmentID(r)
		if !ok {
			writeError(w, http.StatusBadRequest, "invalid_appointment_id", "id must be a positive integer")
			return
		}

		appt, found := store.Get(id)
		if !found {
			writeError(w, http.StatusNotFound, "appointment_not_found", "no appointment with that id")
			return
		}

		writeJSON(w, http.StatusOK, appt)
	}
}

func dayStatsHandler(store *appointment.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		date, err := schedule.ParseDateStamp(r.URL.Query().Get("date"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_date", err.Error())
			return
		}

		total, confirmed := store.DayStats(date)
		writeJSON(w, http.StatusOK, DayStatsResponse{Date: date, Total: total, Confirmed: confirmed})
	}
}

func updateStatusHandler(svc *appointment.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseAppointmentID(r)
		if !ok {
			writeError(w, http.StatusBadRequest, "invalid_appointment_id", "id must be a positive integer")
			return
		}

		var req UpdateStatusRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
			return
		}

		// Unknown ids are a silent no-op, same as the store contract.
		if err := svc.SetStatus(id, appointment.Status(req.Status)); err != nil {
			writeDomainError(w, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func moveAppointmentHandler(svc *appointment.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseAppointmentID(r)
		if !ok {
			writeError(w, http.StatusBadRequest, "invalid_appointment_id", "id must be a positive integer")
			return
		}

		var req MoveAppointmentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
			return
		}

		if !req.Date.Valid() {
			writeError(w, http.StatusBadRequest, "invalid_date", "date must be a valid YYYY-MM-DD date")
			return
		}
		start, err := schedule.ParseTimeOfDay(req.Start)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_time", err.Error())
			return
		}

		moved, err := svc.Move(r.Context(), id, req.Date, start)
		if err != nil {
			writeDomainError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, moved)
	}
}

func resizeAppointmentHandler(svc *appointment.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseAppointmentID(r)
		if !ok {
			writeError(w, http.StatusBadRequest, "invalid_appointment_id", "id must be a positive integer")
			return
		}

		var req ResizeAppointmentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
			return
		}

		resized, err := svc.Resize(r.Context(), id, req.DurationMinutes)
		if err != nil {
			writeDomainError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, resized)
	}
}

// replaceAppointmentHandler is the unchecked escape hatch: it swaps the whole
// record without availability or conflict validation, matching the store's
// replace contract. Scheduling changes should go through move and resize.
func replaceAppointmentHandler(store *appointment.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseAppointmentID(r)
		if !ok {
			writeError(w, http.StatusBadRequest, "invalid_appointment_id", "id must be a positive integer")
			return
		}

		var req appointment.Appointment
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
			return
		}
		req.ID = id

		if !req.Date.Valid() {
			writeError(w, http.StatusBadRequest, "invalid_date", "date must be a valid YYYY-MM-DD date")
			return
		}
		if !appointment.ValidStatus(req.Status) {
			writeError(w, http.StatusUnprocessableEntity, "validation_failed", "unknown status")
			return
		}

		// Unknown ids are a silent no-op, same as the store contract.
		store.Replace(req)
		w.WriteHeader(http.StatusNoContent)
	}
}

func deleteAppointmentHandler(svc *appointment.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseAppointmentID(r)
		if !ok {
			writeError(w, http.StatusBadRequest, "invalid_appointment_id", "id must be a positive integer")
			return
		}

		svc.Remove(id)
		w.WriteHeader(http.StatusNoContent)
	}
}
