package audit

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes mounts audit endpoints under /api/audit on the given router.
func RegisterRoutes(r chi.Router, store *Store) {
	r.Route("/api/audit", func(r chi.Router) {
		r.Get("/", handleQuery(store))
		r.Get("/{id}", handleGetByID(store))
	})
}

func handleQuery(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()

		filter := QueryFilter{
			ActorID: q.Get("actor"),
			ScopeID: q.Get("document"),
			Scope:   Scope(q.Get("scope")),
			Action:  Action(q.Get("action")),
		}
		if filter.ScopeID != "" && filter.Scope == "" {
			filter.Scope = ScopeDocument
		}
		if v := q.Get("since"); v != "" {
			if t, err := time.Parse(time.RFC3339, v); err == nil {
				filter.Since = &t
			}
		}
		if v := q.Get("until"); v != "" {
			if t, err := time.Parse(time.RFC3339, v); err == nil {
				filter.Until = &t
			}
		}
		if n, err := strconv.Atoi(q.Get("limit")); err == nil {
			filter.Limit = n
		}
		if n, err := strconv.Atoi(q.Get("offset")); err == nil {
			filter.Offset = n
		}

		entries, err := store.Query(r.Context(), filter)
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
			return
		}
		if entries == nil {
			entries = []Entry{}
		}

		writeJSON(w, http.StatusOK, entries)
	}
}

func handleGetByID(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entry, err := store.GetByID(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
			return
		}

		writeJSON(w, http.StatusOK, entry)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
