package editor

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ziadkadry99/credind/internal/audit"
	"github.com/ziadkadry99/credind/internal/db"
	"github.com/ziadkadry99/credind/internal/indicator"
	"github.com/ziadkadry99/credind/internal/meta"
	"github.com/ziadkadry99/credind/internal/metrics"
)

type fixture struct {
	editor   *Editor
	store    *meta.Store
	audit    *audit.Store
	registry *indicator.Registry
}

func testDefs() []indicator.Definition {
	return []indicator.Definition{
		{Slug: "original_reporting", Label: "Original Reporting"},
		{Slug: "on_the_ground", Label: "On the Ground"},
		{Slug: "sources_cited", Label: "References"},
	}
}

func setupEditor(t *testing.T) *fixture {
	t.Helper()
	database, err := db.OpenMemory()
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })

	store := meta.NewStore(database)
	auditStore := audit.NewStore(database)
	registry := indicator.NewRegistry(testDefs())
	ed := New(registry, store, Options{
		Audit:   auditStore,
		Metrics: metrics.New(prometheus.NewRegistry()),
		Logger:  zerolog.Nop(),
	})

	ctx := context.Background()
	for _, d := range []meta.Document{{ID: "post-1", Type: "post"}, {ID: "page-1", Type: "page"}} {
		require.NoError(t, store.PutDocument(ctx, d))
	}
	return &fixture{editor: ed, store: store, audit: auditStore, registry: registry}
}

func TestPanelListsCatalogInOrder(t *testing.T) {
	f := setupEditor(t)
	ctx := context.Background()

	require.NoError(t, f.store.SetRawField(ctx, "post-1", indicator.MetaKey, `{"sources_cited":"1","legacy_slug":true}`))

	panel, err := f.editor.Panel(ctx, "post-1")
	require.NoError(t, err)
	require.NotNil(t, panel, "eligible document should have a panel")

	assert.Equal(t, []Item{
		{Slug: "original_reporting", Label: "Original Reporting", Checked: false},
		{Slug: "on_the_ground", Label: "On the Ground", Checked: false},
		{Slug: "sources_cited", Label: "References", Checked: true},
	}, panel.Items)
}

func TestPanelIneligibleType(t *testing.T) {
	f := setupEditor(t)

	panel, err := f.editor.Panel(context.Background(), "page-1")
	require.NoError(t, err)
	assert.Nil(t, panel)
}

func TestPanelMissingDocument(t *testing.T) {
	f := setupEditor(t)

	_, err := f.editor.Panel(context.Background(), "missing")
	assert.ErrorIs(t, err, meta.ErrNotFound)
}

func TestToggleFlipsAndPersists(t *testing.T) {
	f := setupEditor(t)
	ctx := context.Background()

	state, err := f.editor.Toggle(ctx, "post-1", "on_the_ground", audit.User("alice"))
	require.NoError(t, err)
	assert.Equal(t, indicator.State{"original_reporting": false, "on_the_ground": true, "sources_cited": false}, state)

	stored, err := f.store.GetField(ctx, "post-1", indicator.MetaKey)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"original_reporting": false, "on_the_ground": true, "sources_cited": false}, stored)

	state, err = f.editor.Toggle(ctx, "post-1", "on_the_ground", audit.User("alice"))
	require.NoError(t, err)
	assert.False(t, state["on_the_ground"], "second toggle clears on_the_ground")
}

func TestToggleKeepsObsoleteFlags(t *testing.T) {
	f := setupEditor(t)
	ctx := context.Background()

	require.NoError(t, f.store.SetRawField(ctx, "post-1", indicator.MetaKey, `{"legacy_slug":true}`))

	state, err := f.editor.Toggle(ctx, "post-1", "sources_cited", audit.User("alice"))
	require.NoError(t, err)
	assert.NotContains(t, state, "legacy_slug", "resolved state must not expose obsolete slugs")

	stored, err := f.store.GetField(ctx, "post-1", indicator.MetaKey)
	require.NoError(t, err)
	assert.Equal(t, true, stored["legacy_slug"])
	assert.Equal(t, true, stored["sources_cited"])
}

func TestToggleIneligibleIsNoop(t *testing.T) {
	f := setupEditor(t)
	ctx := context.Background()

	state, err := f.editor.Toggle(ctx, "page-1", "on_the_ground", audit.User("alice"))
	require.NoError(t, err)
	assert.Nil(t, state)

	stored, err := f.store.GetField(ctx, "page-1", indicator.MetaKey)
	require.NoError(t, err)
	assert.Empty(t, stored, "page should not be written")
}

func TestToggleUnknownSlug(t *testing.T) {
	f := setupEditor(t)

	_, err := f.editor.Toggle(context.Background(), "post-1", "made_up", audit.User("alice"))
	assert.ErrorIs(t, err, ErrUnknownIndicator)
}

func TestToggleConsultsCatalogOnce(t *testing.T) {
	f := setupEditor(t)
	calls := 0
	f.registry.AddFilter(func(defs []indicator.Definition) []indicator.Definition {
		calls++
		return defs
	})

	_, err := f.editor.Toggle(context.Background(), "post-1", "on_the_ground", audit.User("alice"))
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestToggleWritesAuditEntry(t *testing.T) {
	f := setupEditor(t)
	ctx := context.Background()

	_, err := f.editor.Toggle(ctx, "post-1", "original_reporting", audit.User("alice"))
	require.NoError(t, err)

	entries, err := f.audit.Query(ctx, audit.QueryFilter{Scope: audit.ScopeDocument, ScopeID: "post-1"})
	require.NoError(t, err)
	require.Len(t, entries, 1)

	e := entries[0]
	assert.Equal(t, audit.ActionIndicatorToggled, e.Action)
	assert.Equal(t, audit.ActorUser, e.ActorType)
	assert.Equal(t, "alice", e.ActorID)
	assert.NotEqual(t, e.PreviousValue, e.NewValue)
}

func TestToggleRecordsActorType(t *testing.T) {
	f := setupEditor(t)
	ctx := context.Background()

	_, err := f.editor.Toggle(ctx, "post-1", "on_the_ground", audit.Agent("assistant"))
	require.NoError(t, err)
	_, err = f.editor.Toggle(ctx, "post-1", "on_the_ground", audit.Actor{})
	require.NoError(t, err)

	entries, err := f.audit.Query(ctx, audit.QueryFilter{ScopeID: "post-1"})
	require.NoError(t, err)
	require.Len(t, entries, 2)

	// Newest first.
	assert.Equal(t, audit.ActorUser, entries[0].ActorType, "empty actor defaults to user")
	assert.Equal(t, "anonymous", entries[0].ActorID)
	assert.Equal(t, audit.ActorAgent, entries[1].ActorType)
	assert.Equal(t, "assistant", entries[1].ActorID)
}

func TestReplace(t *testing.T) {
	f := setupEditor(t)
	ctx := context.Background()

	_, err := f.editor.Toggle(ctx, "post-1", "original_reporting", audit.User("alice"))
	require.NoError(t, err)

	state, err := f.editor.Replace(ctx, "post-1", map[string]any{"sources_cited": "true"}, audit.User("bob"))
	require.NoError(t, err)
	assert.False(t, state["original_reporting"])
	assert.True(t, state["sources_cited"])

	entries, err := f.audit.Query(ctx, audit.QueryFilter{Action: audit.ActionIndicatorsReplaced})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "bob", entries[0].ActorID)

	_, err = f.editor.Replace(ctx, "post-1", map[string]any{"nope": true}, audit.User("bob"))
	assert.ErrorIs(t, err, ErrUnknownIndicator)

	state, err = f.editor.Replace(ctx, "page-1", map[string]any{"sources_cited": true}, audit.User("bob"))
	assert.NoError(t, err)
	assert.Nil(t, state)
}

func TestCustomEligibleType(t *testing.T) {
	f := setupEditor(t)
	ed := New(f.registry, f.store, Options{EligibleType: "page", Logger: zerolog.Nop()})

	panel, err := ed.Panel(context.Background(), "page-1")
	require.NoError(t, err)
	assert.NotNil(t, panel)

	panel, err = ed.Panel(context.Background(), "post-1")
	require.NoError(t, err)
	assert.Nil(t, panel, "post should be ineligible")
}
