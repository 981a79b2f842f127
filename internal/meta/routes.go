package meta

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes mounts document management endpoints. Reading a single
// document is served by the editor, which adds indicator data.
func RegisterRoutes(r chi.Router, store *Store) {
	r.Get("/api/documents", listHandler(store))
	r.Put("/api/documents/{id}", putHandler(store))
	r.Delete("/api/documents/{id}", deleteHandler(store))
}

func listHandler(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		docs, err := store.ListDocuments(r.Context(), r.URL.Query().Get("type"))
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
			return
		}
		if docs == nil {
			docs = []Document{}
		}
		writeJSON(w, http.StatusOK, docs)
	}
}

func putHandler(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var doc Document
		if err := json.NewDecoder(r.Body).Decode(&doc); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body: " + err.Error()})
			return
		}
		doc.ID = chi.URLParam(r, "id")

		if err := store.PutDocument(r.Context(), doc); err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
			return
		}
		saved, err := store.GetDocument(r.Context(), doc.ID)
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
			return
		}
		writeJSON(w, http.StatusOK, saved)
	}
}

func deleteHandler(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := store.DeleteDocument(r.Context(), chi.URLParam(r, "id"))
		if errors.Is(err, ErrNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
			return
		}
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
