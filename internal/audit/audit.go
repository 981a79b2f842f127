// Package audit records who changed which indicator selections, and when.
package audit

import "time"

// ActorType identifies who performed an action.
type ActorType string

const (
	ActorUser   ActorType = "user"
	ActorSystem ActorType = "system"
	ActorAgent  ActorType = "agent"
)

// Actor identifies who made a change.
type Actor struct {
	Type ActorType
	ID   string
}

// User returns a user actor.
func User(id string) Actor { return Actor{Type: ActorUser, ID: id} }

// Agent returns an agent actor, such as an MCP client.
func Agent(id string) Actor { return Actor{Type: ActorAgent, ID: id} }

// Action describes what was done.
type Action string

const (
	ActionIndicatorToggled   Action = "indicator_toggled"
	ActionIndicatorsReplaced Action = "indicators_replaced"
	ActionDocumentImported   Action = "document_imported"
	ActionCatalogReloaded    Action = "catalog_reloaded"
)

// Scope describes what an action applies to.
type Scope string

const (
	ScopeDocument Scope = "document"
	ScopeCatalog  Scope = "catalog"
)

// Entry is a single audit trail record. PreviousValue and NewValue carry the
// JSON-encoded selection before and after the change.
type Entry struct {
	ID            string    `json:"id"`
	Timestamp     time.Time `json:"timestamp"`
	ActorType     ActorType `json:"actor_type"`
	ActorID       string    `json:"actor_id"`
	Action        Action    `json:"action"`
	Scope         Scope     `json:"scope"`
	ScopeID       string    `json:"scope_id,omitempty"`
	Summary       string    `json:"summary,omitempty"`
	PreviousValue string    `json:"previous_value,omitempty"`
	NewValue      string    `json:"new_value,omitempty"`
}
