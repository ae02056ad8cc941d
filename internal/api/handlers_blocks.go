package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/clinicware/practice-scheduler/internal/schedule"
	"github.com/clinicware/practice-scheduler/internal/settings"
)

func listBlocksHandler(agenda *settings.Agenda) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entries := agenda.Blocks().Entries
		if entries == nil {
			entries = []schedule.BlockEntry{}
		}
		writeJSON(w, http.StatusOK, BlocksResponse{Blocks: entries})
	}
}

func createBlockHandler(agenda *settings.Agenda) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreateBlockRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
			return
		}

		start, err := schedule.ParseTimeOfDay(req.Start)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_block", err.Error())
			return
		}
		end, err := schedule.ParseTimeOfDay(req.End)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_block", err.Error())
			return
		}

		entry := schedule.BlockEntry{
			Date:       schedule.DateStamp(req.Date),
			Start:      start,
			End:        end,
			Reason:     req.Reason,
			Kind:       schedule.BlockKind(req.Kind),
			Recurrence: schedule.Recurrence(req.Recurrence),
		}

		stored, err := agenda.AddBlock(r.Context(), entry)
		if err != nil {
			writeDomainError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, stored)
	}
}

func deleteBlockHandler(agenda *settings.Agenda) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		agenda.RemoveBlock(r.Context(), chi.URLParam(r, "id"))
		w.WriteHeader(http.StatusNoContent)
	}
}
