package mcp

import (
	"context"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ziadkadry99/credind/internal/audit"
	"github.com/ziadkadry99/credind/internal/badge"
	"github.com/ziadkadry99/credind/internal/db"
	"github.com/ziadkadry99/credind/internal/editor"
	"github.com/ziadkadry99/credind/internal/indicator"
	"github.com/ziadkadry99/credind/internal/meta"
	"github.com/ziadkadry99/credind/internal/site"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	srv, _ := newAuditedServer(t)
	return srv
}

func newAuditedServer(t *testing.T) (*Server, *audit.Store) {
	t.Helper()
	database, err := db.OpenMemory()
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })

	store := meta.NewStore(database)
	ctx := context.Background()
	require.NoError(t, store.PutDocument(ctx, meta.Document{ID: "1", Type: "post"}))
	require.NoError(t, store.PutDocument(ctx, meta.Document{ID: "2", Type: "page"}))

	auditStore := audit.NewStore(database)
	ed := editor.New(indicator.NewRegistry(indicator.DefaultDefinitions(nil)), store, editor.Options{
		Audit:  auditStore,
		Logger: zerolog.Nop(),
	})
	rd := site.NewRenderer(ed, badge.NewComposer(badge.Options{Title: "THE TRUST PROJECT"}), site.Options{Logger: zerolog.Nop()})
	return NewServer(ed, rd), auditStore
}

func call(args map[string]any) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	return req
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, result.Content, "empty tool result")
	switch c := result.Content[0].(type) {
	case mcp.TextContent:
		return c.Text
	case *mcp.TextContent:
		return c.Text
	}
	require.Failf(t, "unexpected content type", "%T", result.Content[0])
	return ""
}

func TestToolDefinitions(t *testing.T) {
	tests := []struct {
		tool     mcp.Tool
		wantName string
	}{
		{listIndicatorsTool, "list_indicators"},
		{getDocumentIndicatorsTool, "get_document_indicators"},
		{toggleIndicatorTool, "toggle_indicator"},
		{renderBadgeTool, "render_badge"},
	}

	for _, tt := range tests {
		t.Run(tt.wantName, func(t *testing.T) {
			assert.Equal(t, tt.wantName, tt.tool.Name)
			assert.NotEmpty(t, tt.tool.Description)
		})
	}
}

func TestNewServer(t *testing.T) {
	srv := newTestServer(t)
	assert.NotNil(t, srv.mcp)
}

func TestHandleListIndicators(t *testing.T) {
	srv := newTestServer(t)

	result, err := srv.handleListIndicators(context.Background(), call(nil))
	require.NoError(t, err)
	text := resultText(t, result)
	assert.Regexp(t, `^4 indicator\(s\)`, text)
	assert.Contains(t, text, "(subject_specialist)")
}

func TestHandleToggleAndGet(t *testing.T) {
	srv := newTestServer(t)
	ctx := context.Background()

	result, err := srv.handleToggleIndicator(ctx, call(map[string]any{"document_id": "1", "slug": "on_the_ground"}))
	require.NoError(t, err)
	require.False(t, result.IsError, "unexpected tool error: %v", result.Content)

	result, err = srv.handleGetDocumentIndicators(ctx, call(map[string]any{"document_id": "1"}))
	require.NoError(t, err)
	text := resultText(t, result)
	assert.Contains(t, text, "[x] On the Ground (on_the_ground)")
	assert.Contains(t, text, "[ ] References (sources_cited)")
}

func TestHandleToggleErrors(t *testing.T) {
	srv := newTestServer(t)
	ctx := context.Background()

	t.Run("missing slug", func(t *testing.T) {
		result, _ := srv.handleToggleIndicator(ctx, call(map[string]any{"document_id": "1"}))
		assert.True(t, result.IsError)
	})

	t.Run("unknown slug", func(t *testing.T) {
		result, _ := srv.handleToggleIndicator(ctx, call(map[string]any{"document_id": "1", "slug": "nope"}))
		assert.True(t, result.IsError)
	})

	t.Run("missing document", func(t *testing.T) {
		result, _ := srv.handleToggleIndicator(ctx, call(map[string]any{"document_id": "404", "slug": "on_the_ground"}))
		assert.True(t, result.IsError)
	})

	t.Run("ineligible document", func(t *testing.T) {
		result, _ := srv.handleToggleIndicator(ctx, call(map[string]any{"document_id": "2", "slug": "on_the_ground"}))
		require.False(t, result.IsError, "ineligible document should not be an error: %v", result.Content)
		assert.Contains(t, resultText(t, result), "nothing changed")
	})
}

func TestHandleRenderBadge(t *testing.T) {
	srv := newTestServer(t)
	ctx := context.Background()

	result, err := srv.handleRenderBadge(ctx, call(map[string]any{"document_id": "1"}))
	require.NoError(t, err)
	assert.Contains(t, resultText(t, result), "not rendered")

	_, err = srv.handleToggleIndicator(ctx, call(map[string]any{"document_id": "1", "slug": "original_reporting"}))
	require.NoError(t, err)

	result, err = srv.handleRenderBadge(ctx, call(map[string]any{"document_id": "1"}))
	require.NoError(t, err)
	assert.Contains(t, resultText(t, result), `data-indicator="original_reporting"`)
}

func TestHandleToggleRecordsAgent(t *testing.T) {
	srv, auditStore := newAuditedServer(t)
	ctx := context.Background()

	result, err := srv.handleToggleIndicator(ctx, call(map[string]any{"document_id": "1", "slug": "sources_cited"}))
	require.NoError(t, err)
	require.False(t, result.IsError, "unexpected tool error: %v", result.Content)

	entries, err := auditStore.Query(ctx, audit.QueryFilter{Action: audit.ActionIndicatorToggled})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, audit.ActorAgent, entries[0].ActorType)
	assert.Equal(t, "mcp", entries[0].ActorID)
	assert.Equal(t, "1", entries[0].ScopeID)
}
