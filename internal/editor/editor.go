// Package editor implements the selection editor: the per-document list of
// indicator toggles and the write path that persists a toggle.
package editor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/ziadkadry99/credind/internal/audit"
	"github.com/ziadkadry99/credind/internal/indicator"
	"github.com/ziadkadry99/credind/internal/meta"
	"github.com/ziadkadry99/credind/internal/metrics"
)

// ErrUnknownIndicator is returned when a slug is not in the catalog.
var ErrUnknownIndicator = errors.New("unknown indicator")

// DefaultEligibleType is the only document type that gets an editor unless
// configured otherwise.
const DefaultEligibleType = "post"

// Item is one toggle in the editor panel.
type Item struct {
	Slug    string `json:"slug"`
	Label   string `json:"label"`
	Checked bool   `json:"checked"`
}

// Panel is the editor shown for an eligible document: one item per catalog
// entry, in catalog order.
type Panel struct {
	DocumentID string `json:"document_id"`
	Items      []Item `json:"items"`
}

// Options configures an Editor. Zero values are valid.
type Options struct {
	EligibleType string
	Audit        *audit.Store
	Metrics      *metrics.Metrics
	Logger       zerolog.Logger
}

// Editor reads and writes indicator selections for documents.
type Editor struct {
	catalog      *indicator.Registry
	store        *meta.Store
	audit        *audit.Store
	metrics      *metrics.Metrics
	eligibleType string
	logger       zerolog.Logger
	hub          *hub

	// mu serializes read-modify-write cycles on the stored map.
	mu sync.Mutex
}

// New creates an Editor over the given catalog and document store.
func New(catalog *indicator.Registry, store *meta.Store, opts Options) *Editor {
	if opts.EligibleType == "" {
		opts.EligibleType = DefaultEligibleType
	}
	return &Editor{
		catalog:      catalog,
		store:        store,
		audit:        opts.Audit,
		metrics:      opts.Metrics,
		eligibleType: opts.EligibleType,
		logger:       opts.Logger.With().Str("component", "editor").Logger(),
		hub:          newHub(),
	}
}

// Catalog returns the indicator registry the editor works against.
func (e *Editor) Catalog() *indicator.Registry { return e.catalog }

// Store returns the underlying document store.
func (e *Editor) Store() *meta.Store { return e.store }

// Eligible reports whether doc may carry indicator selections.
func (e *Editor) Eligible(doc *meta.Document) bool {
	return doc != nil && doc.Type == e.eligibleType
}

// State returns the resolved selection for a document together with the
// catalog it was resolved against.
func (e *Editor) State(ctx context.Context, docID string) (indicator.State, []indicator.Definition, error) {
	defs := e.catalog.Indicators()
	stored, err := e.store.GetField(ctx, docID, indicator.MetaKey)
	if err != nil {
		return nil, nil, err
	}
	return indicator.Resolve(defs, stored), defs, nil
}

// Panel returns the editor panel for a document. It returns nil without an
// error when the document type is not eligible.
func (e *Editor) Panel(ctx context.Context, docID string) (*Panel, error) {
	doc, err := e.store.GetDocument(ctx, docID)
	if err != nil {
		return nil, err
	}
	if !e.Eligible(doc) {
		return nil, nil
	}

	state, defs, err := e.State(ctx, docID)
	if err != nil {
		return nil, err
	}
	p := &Panel{DocumentID: docID, Items: make([]Item, 0, len(defs))}
	for _, d := range defs {
		p.Items = append(p.Items, Item{Slug: d.Slug, Label: d.Label, Checked: state[d.Slug]})
	}
	return p, nil
}

// Toggle flips one indicator on a document and persists the whole map. It
// returns the new resolved state, or nil when the document type is not
// eligible. Stored flags outside the catalog are written back unchanged.
// actor is recorded in the audit trail.
func (e *Editor) Toggle(ctx context.Context, docID, slug string, actor audit.Actor) (indicator.State, error) {
	doc, err := e.store.GetDocument(ctx, docID)
	if err != nil {
		return nil, err
	}
	if !e.Eligible(doc) {
		e.logger.Debug().Str("doc_id", docID).Str("type", doc.Type).Msg("toggle ignored for ineligible document")
		return nil, nil
	}

	defs := e.catalog.Indicators()
	if !contains(defs, slug) {
		return nil, fmt.Errorf("%w: %s", ErrUnknownIndicator, slug)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	stored, err := e.store.GetField(ctx, docID, indicator.MetaKey)
	if err != nil {
		return nil, err
	}
	resolved := indicator.Resolve(defs, stored)

	next := resolved.Clone()
	next[slug] = !resolved[slug]

	if err := e.write(ctx, docID, stored, next); err != nil {
		return nil, err
	}

	e.metrics.IncrementToggle(slug, next[slug])
	e.record(ctx, audit.Entry{
		ActorType: actor.Type,
		ActorID:   actor.ID,
		Action:    audit.ActionIndicatorToggled,
		ScopeID:   docID,
		Summary:   fmt.Sprintf("%s set to %t", slug, next[slug]),
	}, resolved, next)
	e.logger.Info().Str("doc_id", docID).Str("slug", slug).Bool("value", next[slug]).Msg("indicator toggled")
	e.hub.broadcast(docID, stateMessage(docID, next))

	return next, nil
}

// Replace sets every catalog flag on a document at once. Flags missing from
// values become false. Unknown slugs are rejected.
func (e *Editor) Replace(ctx context.Context, docID string, values map[string]any, actor audit.Actor) (indicator.State, error) {
	doc, err := e.store.GetDocument(ctx, docID)
	if err != nil {
		return nil, err
	}
	if !e.Eligible(doc) {
		return nil, nil
	}

	defs := e.catalog.Indicators()
	for slug := range values {
		if !contains(defs, slug) {
			return nil, fmt.Errorf("%w: %s", ErrUnknownIndicator, slug)
		}
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	stored, err := e.store.GetField(ctx, docID, indicator.MetaKey)
	if err != nil {
		return nil, err
	}
	previous := indicator.Resolve(defs, stored)
	next := indicator.Resolve(defs, values)

	if err := e.write(ctx, docID, stored, next); err != nil {
		return nil, err
	}

	e.record(ctx, audit.Entry{
		ActorType: actor.Type,
		ActorID:   actor.ID,
		Action:    audit.ActionIndicatorsReplaced,
		ScopeID:   docID,
		Summary:   fmt.Sprintf("%d indicators selected", len(next.Selected(defs))),
	}, previous, next)
	e.logger.Info().Str("doc_id", docID).Strs("selected", next.Selected(defs)).Msg("indicators replaced")
	e.hub.broadcast(docID, stateMessage(docID, next))

	return next, nil
}

// write stores state over the previously stored map in a single full
// replace.
func (e *Editor) write(ctx context.Context, docID string, stored map[string]any, state indicator.State) error {
	out := make(map[string]any, len(stored)+len(state))
	for k, v := range stored {
		out[k] = v
	}
	for k, v := range state {
		out[k] = v
	}
	if err := e.store.SetField(ctx, docID, indicator.MetaKey, out); err != nil {
		return fmt.Errorf("saving indicators for %s: %w", docID, err)
	}
	return nil
}

func (e *Editor) record(ctx context.Context, entry audit.Entry, previous, next indicator.State) {
	if e.audit == nil {
		return
	}
	if entry.ActorType == "" {
		entry.ActorType = audit.ActorUser
	}
	if entry.ActorID == "" {
		entry.ActorID = "anonymous"
	}
	entry.Scope = audit.ScopeDocument
	prev, _ := json.Marshal(previous)
	cur, _ := json.Marshal(next)
	entry.PreviousValue = string(prev)
	entry.NewValue = string(cur)
	if err := e.audit.Log(ctx, entry); err != nil {
		e.logger.Warn().Err(err).Str("doc_id", entry.ScopeID).Msg("audit write failed")
	}
}

func contains(defs []indicator.Definition, slug string) bool {
	for _, d := range defs {
		if d.Slug == slug {
			return true
		}
	}
	return false
}
