// Package mcp exposes daoforge project state over the Model Context Protocol
// so AI agents can inspect and validate a provisioning workflow.
package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewServer creates a new MCP server with daoforge tools registered.
func NewServer(version string) *server.MCPServer {
	s := server.NewMCPServer(
		"daoforge",
		version,
		server.WithToolCapabilities(true),
	)

	s.AddTool(
		mcp.NewTool("daoforge/status",
			mcp.WithDescription("Report step completion and acquired resources for a daoforge project"),
			mcp.WithString("dir", mcp.Description("Project directory (defaults to the working directory)")),
		),
		HandleStatus,
	)

	s.AddTool(
		mcp.NewTool("daoforge/next",
			mcp.WithDescription("Return the next incomplete provisioning step for a daoforge project"),
			mcp.WithString("dir", mcp.Description("Project directory (defaults to the working directory)")),
		),
		HandleNext,
	)

	s.AddTool(
		mcp.NewTool("daoforge/validate",
			mcp.WithDescription("Validate a daoforge deployment record (structural, semantic, configuration)"),
			mcp.WithString("dir", mcp.Description("Project directory (defaults to the working directory)")),
		),
		HandleValidate,
	)

	s.AddTool(
		mcp.NewTool("daoforge/suggest",
			mcp.WithDescription("Map recorded step errors to remediation suggestions"),
			mcp.WithString("dir", mcp.Description("Project directory (defaults to the working directory)")),
		),
		HandleSuggest,
	)

	return s
}
