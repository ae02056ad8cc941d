package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/clinicware/practice-scheduler/internal/appointment"
	"github.com/clinicware/practice-scheduler/internal/schedule"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Rule    string `json:"rule,omitempty"`
	Details string `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

func writeError(w http.ResponseWriter, status int, code, details string) {
	writeJSON(w, status, ErrorResponse{Error: code, Details: details})
}

// writeDomainError maps the service error taxonomy onto HTTP statuses:
// construction failures name the field (422), availability and overlap
// rejections name the failed rule (409) so the client can revert an
// optimistic change and message the user, lock contention asks for a retry.
func writeDomainError(w http.ResponseWriter, err error) {
	var fe *schedule.FieldError
	if errors.As(err, &fe) {
		writeJSON(w, http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation_failed",
			Details: fe.Error(),
		})
		return
	}

	var rej *schedule.Rejection
	if errors.As(err, &rej) {
		writeJSON(w, http.StatusConflict, ErrorResponse{
			Error:   "slot_unavailable",
			Rule:    string(rej.Rule),
			Details: rej.Reason,
		})
		return
	}

	switch {
	case errors.Is(err, appointment.ErrNotFound):
		writeError(w, http.StatusNotFound, "appointment_not_found", err.Error())
	case errors.Is(err, appointment.ErrDateBeingBooked):
		writeError(w, http.StatusConflict, "date_being_booked", err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
	}
}
