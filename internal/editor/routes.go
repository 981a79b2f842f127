package editor

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/ziadkadry99/credind/internal/audit"
	"github.com/ziadkadry99/credind/internal/indicator"
	"github.com/ziadkadry99/credind/internal/meta"
)

// ActorHeader names the request header that identifies who made a change.
const ActorHeader = "X-Credind-Actor"

// RegisterRoutes mounts the catalog, selection and live-editor endpoints.
func RegisterRoutes(r chi.Router, e *Editor) {
	r.Get("/api/indicators", listIndicatorsHandler(e))
	r.Get("/api/indicators/{slug}", getIndicatorHandler(e))
	r.Get("/api/schema/"+indicator.MetaKey, schemaHandler(e))

	r.Get("/api/documents/{id}", getDocumentHandler(e))
	r.Get("/api/documents/{id}/indicators", getStateHandler(e))
	r.Put("/api/documents/{id}/indicators", replaceHandler(e))
	r.Post("/api/documents/{id}/indicators/{slug}/toggle", toggleHandler(e))
	r.Get("/api/documents/{id}/panel", panelHandler(e))

	r.Get("/ws/editor/{id}", e.handleWebSocket)
}

// documentView is the REST representation of a document: the stored meta
// field as-is plus the full catalog.
type documentView struct {
	meta.Document
	Meta       map[string]any         `json:"meta"`
	Indicators []indicator.Definition `json:"credibility_indicators"`
}

// stateView is the resolved selection of a document.
type stateView struct {
	DocumentID string          `json:"document_id"`
	State      indicator.State `json:"state"`
	Selected   []string        `json:"selected"`
}

func listIndicatorsHandler(e *Editor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, e.catalog.Indicators())
	}
}

func getIndicatorHandler(e *Editor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		def, ok := e.catalog.Indicator(chi.URLParam(r, "slug"))
		if !ok {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
			return
		}
		writeJSON(w, http.StatusOK, def)
	}
}

func schemaHandler(e *Editor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, indicator.SchemaFor(e.catalog.Indicators()))
	}
}

func getDocumentHandler(e *Editor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		doc, err := e.store.GetDocument(r.Context(), id)
		if err != nil {
			writeError(w, err)
			return
		}
		stored, err := e.store.GetField(r.Context(), id, indicator.MetaKey)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, documentView{
			Document:   *doc,
			Meta:       map[string]any{indicator.MetaKey: stored},
			Indicators: e.catalog.Indicators(),
		})
	}
}

func getStateHandler(e *Editor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if _, err := e.store.GetDocument(r.Context(), id); err != nil {
			writeError(w, err)
			return
		}
		state, defs, err := e.State(r.Context(), id)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, newStateView(id, state, defs))
	}
}

func replaceHandler(e *Editor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var values map[string]any
		if err := json.NewDecoder(r.Body).Decode(&values); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body: " + err.Error()})
			return
		}

		id := chi.URLParam(r, "id")
		state, err := e.Replace(r.Context(), id, values, actorFrom(r))
		if err != nil {
			writeError(w, err)
			return
		}
		if state == nil {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		writeJSON(w, http.StatusOK, newStateView(id, state, e.catalog.Indicators()))
	}
}

func toggleHandler(e *Editor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		state, err := e.Toggle(r.Context(), id, chi.URLParam(r, "slug"), actorFrom(r))
		if err != nil {
			writeError(w, err)
			return
		}
		if state == nil {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		writeJSON(w, http.StatusOK, newStateView(id, state, e.catalog.Indicators()))
	}
}

func panelHandler(e *Editor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		panel, err := e.Panel(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, err)
			return
		}
		if panel == nil {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		writeJSON(w, http.StatusOK, panel)
	}
}

func newStateView(id string, state indicator.State, defs []indicator.Definition) stateView {
	selected := state.Selected(defs)
	if selected == nil {
		selected = []string{}
	}
	return stateView{DocumentID: id, State: state, Selected: selected}
}

func actorFrom(r *http.Request) audit.Actor {
	if v := strings.TrimSpace(r.Header.Get(ActorHeader)); v != "" {
		return audit.User(v)
	}
	return audit.User("anonymous")
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, meta.ErrNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
	case errors.Is(err, ErrUnknownIndicator):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
	default:
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
