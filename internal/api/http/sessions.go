package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	authmw "github.com/lumilearn/lumilearn-authoring/internal/auth/middleware"
	"github.com/lumilearn/lumilearn-authoring/internal/authoring"
	"github.com/lumilearn/lumilearn-authoring/internal/storage"
)

// Handlers only — routes remain in main.go

var validate = validator.New()

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func decodeValid(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return err
	}
	return validate.Struct(dst)
}

type sessionState struct {
	ID    string           `json:"id"`
	Items []authoring.Item `json:"items"`
}

func stateOf(h *SessionHandle) sessionState {
	var st sessionState
	h.withLock(func(s *authoring.Session) {
		st = sessionState{ID: s.ID(), Items: s.Items()}
	})
	return st
}

type openSessionReq struct {
	ID       string `json:"id" validate:"omitempty,max=64"`
	CourseID string `json:"course_id" validate:"omitempty,max=64"`
	Title    string `json:"title" validate:"omitempty,max=200"`
}

// POST /sessions
func OpenSessionHandler(reg *Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req openSessionReq
		if err := decodeValid(r, &req); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		if req.ID == "" {
			req.ID = "s-" + uuid.NewString()
		}
		owner := authmw.SubjectFromContext(r.Context())
		h, err := reg.Open(r.Context(), req.ID, req.CourseID, req.Title, owner)
		if err != nil {
			http.Error(w, "open session: "+err.Error(), http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, stateOf(h))
	}
}

// GET /sessions/{sessionID}
func GetSessionHandler(reg *Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h, ok := reg.Get(chi.URLParam(r, "sessionID"))
		if !ok {
			http.Error(w, "session not open", http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, stateOf(h))
	}
}

// GET /sessions
func ListSessionsHandler(store storage.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
		offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
		out, err := store.ListSessions(r.Context(), r.URL.Query().Get("course_id"), limit, offset)
		if err != nil {
			http.Error(w, "db error", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// DELETE /sessions/{sessionID}
func DeleteSessionHandler(reg *Registry, store storage.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "sessionID")
		if err := store.DeleteSession(r.Context(), id); err != nil {
			if errors.Is(err, storage.ErrSessionNotFound) {
				http.Error(w, "session not found", http.StatusNotFound)
				return
			}
			http.Error(w, "db error", http.StatusInternalServerError)
			return
		}
		reg.Evict(id)
		w.WriteHeader(http.StatusNoContent)
	}
}

// GET /sessions/{sessionID}/preview?locale=es
func PreviewHandler(reg *Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h, ok := reg.Get(chi.URLParam(r, "sessionID"))
		if !ok {
			http.Error(w, "session not open", http.StatusNotFound)
			return
		}
		locale := r.URL.Query().Get("locale")
		if locale == "" {
			locale = authoring.DefaultLocale.String()
		}
		var out []authoring.PreviewItem
		h.withLock(func(s *authoring.Session) {
			out = authoring.Preview(s.Items(), locale)
		})
		writeJSON(w, http.StatusOK, out)
	}
}
