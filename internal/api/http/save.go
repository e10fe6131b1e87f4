package http

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/lumilearn/lumilearn-authoring/internal/authoring"
)

// POST /sessions/{sessionID}/save
//
// Persists the whole item list in one batch. While a save is in flight
// further save requests get a 409; after a failure the author retries with
// the same list by calling this endpoint again.
func SaveSessionHandler(reg *Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h, ok := reg.Get(chi.URLParam(r, "sessionID"))
		if !ok {
			http.Error(w, "session not open", http.StatusNotFound)
			return
		}
		var (
			id    string
			items []authoring.Item
		)
		h.withLock(func(s *authoring.Session) {
			id = s.ID()
			items = s.Items()
		})

		err := h.saves.Save(r.Context(), id, items)
		if errors.Is(err, authoring.ErrSaveInFlight) {
			http.Error(w, "save already in flight", http.StatusConflict)
			return
		}
		state, lastErr := h.saves.State()
		resp := map[string]any{"state": state, "items": len(items)}
		if lastErr != nil {
			resp["error"] = lastErr.Error()
		}
		status := http.StatusOK
		if err != nil {
			status = http.StatusBadGateway
		}
		writeJSON(w, status, resp)
	}
}

// GET /sessions/{sessionID}/save/status
func SaveStatusHandler(reg *Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h, ok := reg.Get(chi.URLParam(r, "sessionID"))
		if !ok {
			http.Error(w, "session not open", http.StatusNotFound)
			return
		}
		state, lastErr := h.saves.State()
		resp := map[string]any{"state": state}
		if lastErr != nil {
			resp["error"] = lastErr.Error()
		}
		writeJSON(w, http.StatusOK, resp)
	}
}
