package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/ziadkadry99/credind/internal/audit"
	"github.com/ziadkadry99/credind/internal/indicator"
	"github.com/ziadkadry99/credind/internal/meta"
)

// agentActor is recorded in the audit trail for changes made through MCP.
var agentActor = audit.Agent("mcp")

// handleListIndicators returns the current catalog.
func (s *Server) handleListIndicators(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	defs := s.editor.Catalog().Indicators()
	if len(defs) == 0 {
		return mcp.NewToolResultText("The indicator catalog is empty."), nil
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d indicator(s):\n", len(defs)))
	for _, d := range defs {
		sb.WriteString(fmt.Sprintf("\n- %s (%s)\n", d.Label, d.Slug))
		if d.Description != "" {
			sb.WriteString("  " + d.Description + "\n")
		}
	}
	return mcp.NewToolResultText(sb.String()), nil
}

// handleGetDocumentIndicators reports the resolved selection of a document.
func (s *Server) handleGetDocumentIndicators(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	docID, err := request.RequireString("document_id")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: document_id"), nil
	}

	if _, err := s.editor.Store().GetDocument(ctx, docID); err != nil {
		return toolError(docID, err), nil
	}
	state, defs, err := s.editor.State(ctx, docID)
	if err != nil {
		return toolError(docID, err), nil
	}
	return mcp.NewToolResultText(formatState(docID, state, defs)), nil
}

// handleToggleIndicator flips one indicator on a document.
func (s *Server) handleToggleIndicator(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	docID, err := request.RequireString("document_id")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: document_id"), nil
	}
	slug, err := request.RequireString("slug")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: slug"), nil
	}

	state, err := s.editor.Toggle(ctx, docID, slug, agentActor)
	if err != nil {
		return toolError(docID, err), nil
	}
	if state == nil {
		return mcp.NewToolResultText(fmt.Sprintf("Document %s does not carry credibility indicators; nothing changed.", docID)), nil
	}
	return mcp.NewToolResultText(formatState(docID, state, s.editor.Catalog().Indicators())), nil
}

// handleRenderBadge returns the badge markup for a document.
func (s *Server) handleRenderBadge(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	docID, err := request.RequireString("document_id")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: document_id"), nil
	}

	if _, err := s.editor.Store().GetDocument(ctx, docID); err != nil {
		return toolError(docID, err), nil
	}
	out, err := s.renderer.Badge(ctx, docID)
	if err != nil {
		return toolError(docID, err), nil
	}
	if out == "" {
		return mcp.NewToolResultText("No indicators are selected for this document; the badge is not rendered."), nil
	}
	return mcp.NewToolResultText(string(out)), nil
}

// formatState lists selected and unselected indicators for agent consumption.
func formatState(docID string, state indicator.State, defs []indicator.Definition) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Document %s\n", docID))
	for _, d := range defs {
		mark := " "
		if state[d.Slug] {
			mark = "x"
		}
		sb.WriteString(fmt.Sprintf("[%s] %s (%s)\n", mark, d.Label, d.Slug))
	}
	return sb.String()
}

func toolError(docID string, err error) *mcp.CallToolResult {
	if errors.Is(err, meta.ErrNotFound) {
		return mcp.NewToolResultError(fmt.Sprintf("document %q not found", docID))
	}
	return mcp.NewToolResultError(err.Error())
}
