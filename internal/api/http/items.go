package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/lumilearn/lumilearn-authoring/internal/authoring"
)

type createItemReq struct {
	Type string `json:"type" validate:"required,max=32"`
}

// POST /sessions/{sessionID}/items
func CreateItemHandler(reg *Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h, ok := reg.Get(chi.URLParam(r, "sessionID"))
		if !ok {
			http.Error(w, "session not open", http.StatusNotFound)
			return
		}
		var req createItemReq
		if err := decodeValid(r, &req); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		if !knownType(authoring.ItemType(req.Type)) {
			http.Error(w, "unknown item type", http.StatusBadRequest)
			return
		}
		var it authoring.Item
		h.withLock(func(s *authoring.Session) {
			it = s.Create(authoring.ItemType(req.Type))
		})
		writeJSON(w, http.StatusCreated, it)
	}
}

// PUT /sessions/{sessionID}/items/{itemID}
//
// The commit step of an editing pass: the full edited item replaces the
// stored one, but only after validation. Validation failures come back as
// a 422 with the message list and leave the session untouched.
func UpdateItemHandler(reg *Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h, ok := reg.Get(chi.URLParam(r, "sessionID"))
		if !ok {
			http.Error(w, "session not open", http.StatusNotFound)
			return
		}
		var it authoring.Item
		if err := json.NewDecoder(r.Body).Decode(&it); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		itemID := chi.URLParam(r, "itemID")
		if it.ID.Value != itemID {
			http.Error(w, "item id mismatch", http.StatusBadRequest)
			return
		}
		if errs := authoring.Validate(it); len(errs) > 0 {
			writeJSON(w, http.StatusUnprocessableEntity, map[string]any{"errors": errs})
			return
		}
		h.withLock(func(s *authoring.Session) {
			s.Update(it)
			it, _ = s.ItemByID(it.ID)
		})
		writeJSON(w, http.StatusOK, it)
	}
}

// DELETE /sessions/{sessionID}/items/{itemID}
func DeleteItemHandler(reg *Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h, ok := reg.Get(chi.URLParam(r, "sessionID"))
		if !ok {
			http.Error(w, "session not open", http.StatusNotFound)
			return
		}
		id := authoring.Identity{Value: chi.URLParam(r, "itemID")}
		removed := false
		h.withLock(func(s *authoring.Session) {
			removed = s.Remove(id)
		})
		if !removed {
			http.Error(w, "item not found", http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// POST /sessions/{sessionID}/items/{itemID}/duplicate
func DuplicateItemHandler(reg *Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h, ok := reg.Get(chi.URLParam(r, "sessionID"))
		if !ok {
			http.Error(w, "session not open", http.StatusNotFound)
			return
		}
		id := authoring.Identity{Value: chi.URLParam(r, "itemID")}
		var (
			dup   authoring.Item
			found bool
		)
		h.withLock(func(s *authoring.Session) {
			var src authoring.Item
			if src, found = s.ItemByID(id); found {
				dup = s.Duplicate(src)
			}
		})
		if !found {
			http.Error(w, "item not found", http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusCreated, dup)
	}
}

type reorderReq struct {
	From int `json:"from" validate:"min=0"`
	To   int `json:"to" validate:"min=0"`
}

// POST /sessions/{sessionID}/reorder
func ReorderHandler(reg *Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h, ok := reg.Get(chi.URLParam(r, "sessionID"))
		if !ok {
			http.Error(w, "session not open", http.StatusNotFound)
			return
		}
		var req reorderReq
		if err := decodeValid(r, &req); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		var moveErr error
		h.withLock(func(s *authoring.Session) {
			moveErr = s.Reorder(req.From, req.To)
		})
		if moveErr != nil {
			http.Error(w, moveErr.Error(), http.StatusBadRequest)
			return
		}
		writeJSON(w, http.StatusOK, stateOf(h))
	}
}

func knownType(t authoring.ItemType) bool {
	for _, k := range authoring.KnownTypes {
		if k == t {
			return true
		}
	}
	return false
}
