package http

import (
	"bytes"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/lumilearn/lumilearn-authoring/internal/authoring"
	"github.com/lumilearn/lumilearn-authoring/internal/export"
	"github.com/lumilearn/lumilearn-authoring/internal/importer"
)

const maxImportBytes = 4 << 20

// POST /sessions/{sessionID}/import
func ImportItemsHandler(reg *Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h, ok := reg.Get(chi.URLParam(r, "sessionID"))
		if !ok {
			http.Error(w, "session not open", http.StatusNotFound)
			return
		}
		data, err := io.ReadAll(io.LimitReader(r.Body, maxImportBytes))
		if err != nil {
			http.Error(w, "read body", http.StatusBadRequest)
			return
		}
		var (
			n         int
			importErr error
		)
		h.withLock(func(s *authoring.Session) {
			n, importErr = importer.Import(s, data)
		})
		if importErr != nil {
			if errors.Is(importErr, importer.ErrSchema) {
				http.Error(w, importErr.Error(), http.StatusUnprocessableEntity)
				return
			}
			http.Error(w, importErr.Error(), http.StatusBadRequest)
			return
		}
		writeJSON(w, http.StatusOK, map[string]int{"imported": n})
	}
}

// GET /sessions/{sessionID}/export.xlsx?locale=es
func ExportXLSXHandler(reg *Registry) http.HandlerFunc {
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
		var items []authoring.Item
		h.withLock(func(s *authoring.Session) {
			items = s.Items()
		})

		var buf bytes.Buffer
		if err := export.WriteXLSX(&buf, items, locale); err != nil {
			http.Error(w, "export error: "+err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type",
			"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", `attachment; filename="questions.xlsx"`)
		_, _ = io.Copy(w, &buf)
	}
}
