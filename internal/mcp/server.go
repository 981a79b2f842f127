package mcp

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/ziadkadry99/credind/internal/editor"
	"github.com/ziadkadry99/credind/internal/site"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Server wraps an MCP server that exposes indicator tools to agents.
type Server struct {
	editor   *editor.Editor
	renderer *site.Renderer
	mcp      *server.MCPServer
}

// NewServer creates a new MCP server with the given dependencies.
func NewServer(ed *editor.Editor, rd *site.Renderer) *Server {
	s := &Server{
		editor:   ed,
		renderer: rd,
	}

	s.mcp = server.NewMCPServer(
		"credind",
		Version,
		server.WithToolCapabilities(false),
	)

	s.registerTools()

	return s
}

// registerTools adds all tool definitions and their handlers to the MCP server.
func (s *Server) registerTools() {
	s.mcp.AddTool(listIndicatorsTool, s.handleListIndicators)
	s.mcp.AddTool(getDocumentIndicatorsTool, s.handleGetDocumentIndicators)
	s.mcp.AddTool(toggleIndicatorTool, s.handleToggleIndicator)
	s.mcp.AddTool(renderBadgeTool, s.handleRenderBadge)
}

// Serve starts the MCP server on stdio. Stdout is used for MCP protocol
// messages; all logging must go to stderr.
func (s *Server) Serve() error {
	return server.ServeStdio(s.mcp)
}
