package editor

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/ziadkadry99/credind/internal/indicator"
	"github.com/ziadkadry99/credind/internal/meta"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// wsRequest is the incoming WebSocket message format.
type wsRequest struct {
	Type string `json:"type"` // "toggle" or "refresh"
	Slug string `json:"slug,omitempty"`
}

// wsMessage is the outgoing WebSocket message format.
type wsMessage struct {
	Type       string          `json:"type"` // "panel", "state" or "error"
	DocumentID string          `json:"document_id"`
	Panel      *Panel          `json:"panel,omitempty"`
	State      indicator.State `json:"state,omitempty"`
	Error      string          `json:"error,omitempty"`
}

func stateMessage(docID string, state indicator.State) wsMessage {
	return wsMessage{Type: "state", DocumentID: docID, State: state}
}

// client serializes writes to one connection.
type client struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (c *client) send(msg wsMessage) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteJSON(msg)
}

// hub tracks the editors open on each document so every one of them sees
// state changes, whichever surface made them.
type hub struct {
	mu      sync.Mutex
	clients map[string]map[*client]struct{}
}

func newHub() *hub {
	return &hub{clients: make(map[string]map[*client]struct{})}
}

func (h *hub) add(docID string, c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.clients[docID] == nil {
		h.clients[docID] = make(map[*client]struct{})
	}
	h.clients[docID][c] = struct{}{}
}

func (h *hub) remove(docID string, c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.clients[docID], c)
	if len(h.clients[docID]) == 0 {
		delete(h.clients, docID)
	}
}

func (h *hub) broadcast(docID string, msg wsMessage) {
	h.mu.Lock()
	targets := make([]*client, 0, len(h.clients[docID]))
	for c := range h.clients[docID] {
		targets = append(targets, c)
	}
	h.mu.Unlock()

	for _, c := range targets {
		c.send(msg)
	}
}

func (e *Editor) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	docID := chi.URLParam(r, "id")
	ctx := r.Context()

	panel, err := e.Panel(ctx, docID)
	if errors.Is(err, meta.ErrNotFound) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "document not found"})
		return
	}
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if panel == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		e.logger.Warn().Err(err).Str("doc_id", docID).Msg("websocket upgrade")
		return
	}
	defer conn.Close()

	// The connection outlives the request timeout; it ends when the peer
	// goes away.
	ctx = context.WithoutCancel(ctx)

	c := &client{conn: conn}
	e.hub.add(docID, c)
	defer e.hub.remove(docID, c)

	actor := actorFrom(r)
	if err := c.send(wsMessage{Type: "panel", DocumentID: docID, Panel: panel}); err != nil {
		return
	}

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				e.logger.Warn().Err(err).Str("doc_id", docID).Msg("websocket read")
			}
			return
		}

		var req wsRequest
		if err := json.Unmarshal(raw, &req); err != nil {
			c.send(wsMessage{Type: "error", DocumentID: docID, Error: "invalid message format"})
			continue
		}

		switch req.Type {
		case "toggle":
			// Success is delivered through the hub broadcast.
			if _, err := e.Toggle(ctx, docID, req.Slug, actor); err != nil {
				c.send(wsMessage{Type: "error", DocumentID: docID, Error: err.Error()})
			}
		case "refresh":
			p, err := e.Panel(ctx, docID)
			if err != nil {
				c.send(wsMessage{Type: "error", DocumentID: docID, Error: err.Error()})
				continue
			}
			c.send(wsMessage{Type: "panel", DocumentID: docID, Panel: p})
		default:
			c.send(wsMessage{Type: "error", DocumentID: docID, Error: "unknown message type: " + req.Type})
		}
	}
}
