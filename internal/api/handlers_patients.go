package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/clinicware/practice-scheduler/internal/appointment"
	"github.com/clinicware/practice-scheduler/internal/patient"
	"github.com/clinicware/practice-scheduler/internal/schedule"
)

func createPatientHandler(roster *patient.Roster) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreatePatientRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
			return
		}

		if strings.TrimSpace(req.Name) == "" {
			writeError(w, http.StatusUnprocessableEntity, "validation_failed", "name is required")
			return
		}

		p := roster.Add(patient.Patient{Name: req.Name, Phone: req.Phone, Location: req.Location})
		writeJSON(w, http.StatusCreated, p)
	}
}

func listPatientsHandler(roster *patient.Roster) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		patients := roster.All()
		if patients == nil {
			patients = []patient.Patient{}
		}
		writeJSON(w, http.StatusOK, map[string][]patient.Patient{"patients": patients})
	}
}

func recordVisitHandler(roster *patient.Roster) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil || id <= 0 {
			writeError(w, http.StatusBadRequest, "invalid_patient_id", "id must be a positive integer")
			return
		}

		var req RecordVisitRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
			return
		}
		if !req.Date.Valid() {
			writeError(w, http.StatusBadRequest, "invalid_date", "date must be a valid YYYY-MM-DD date")
			return
		}

		if _, ok := roster.Get(id); !ok {
			writeError(w, http.StatusNotFound, "patient_not_found", "no patient with that id")
			return
		}

		roster.RecordVisit(id, req.Date)
		w.WriteHeader(http.StatusNoContent)
	}
}

// parseOutreachFilters reads the comma-separated filter dimensions from the
// query string. Unknown values pass through; they simply match nothing.
func parseOutreachFilters(r *http.Request) patient.Filters {
	q := r.URL.Query()
	f := patient.Filters{Booked: patient.BookedAny}

	if raw := q.Get("status"); raw != "" {
		for _, s := range strings.Split(raw, ",") {
			f.Statuses = append(f.Statuses, patient.Status(strings.TrimSpace(s)))
		}
	}
	if raw := q.Get("urgency"); raw != "" {
		for _, u := range strings.Split(raw, ",") {
			f.Urgencies = append(f.Urgencies, patient.Urgency(strings.TrimSpace(u)))
		}
	}
	if raw := q.Get("location"); raw != "" {
		for _, l := range strings.Split(raw, ",") {
			f.Locations = append(f.Locations, strings.TrimSpace(l))
		}
	}
	if raw := q.Get("booked"); raw != "" {
		f.Booked = patient.BookedFilter(raw)
	}

	return f
}

func buildOutreachViews(roster *patient.Roster, store *appointment.Store, cfg patient.Config, r *http.Request) []patient.StatusView {
	views := patient.BuildStatusViews(roster.All(), roster.LastVisits(), store.All(), cfg, schedule.Today())
	return parseOutreachFilters(r).Apply(views)
}

func outreachHandler(roster *patient.Roster, store *appointment.Store, cfg patient.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		views := buildOutreachViews(roster, store, cfg, r)
		if views == nil {
			views = []patient.StatusView{}
		}
		writeJSON(w, http.StatusOK, map[string][]patient.StatusView{"patients": views})
	}
}

func outreachMetricsHandler(roster *patient.Roster, store *appointment.Store, cfg patient.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		views := buildOutreachViews(roster, store, cfg, r)
		writeJSON(w, http.StatusOK, patient.Summarize(views))
	}
}
