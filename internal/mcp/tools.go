package mcp

import "github.com/mark3labs/mcp-go/mcp"

// listIndicatorsTool defines the list_indicators MCP tool.
var listIndicatorsTool = mcp.NewTool("list_indicators",
	mcp.WithDescription("List the credibility indicators an editor can assert on a document, in display order."),
)

// getDocumentIndicatorsTool defines the get_document_indicators MCP tool.
var getDocumentIndicatorsTool = mcp.NewTool("get_document_indicators",
	mcp.WithDescription("Get which credibility indicators are selected for a document."),
	mcp.WithString("document_id",
		mcp.Required(),
		mcp.Description("Document identifier"),
	),
)

// toggleIndicatorTool defines the toggle_indicator MCP tool.
var toggleIndicatorTool = mcp.NewTool("toggle_indicator",
	mcp.WithDescription("Flip one credibility indicator on a document and save the result."),
	mcp.WithString("document_id",
		mcp.Required(),
		mcp.Description("Document identifier"),
	),
	mcp.WithString("slug",
		mcp.Required(),
		mcp.Description("Indicator slug, e.g. on_the_ground"),
	),
)

// renderBadgeTool defines the render_badge MCP tool.
var renderBadgeTool = mcp.NewTool("render_badge",
	mcp.WithDescription("Render the credibility badge HTML for a document."),
	mcp.WithString("document_id",
		mcp.Required(),
		mcp.Description("Document identifier"),
	),
)
