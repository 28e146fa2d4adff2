package mcp

import (
	"github.com/mark3labs/mcp-go/server"
)

// NewArchScopeMCPServer creates an MCP server with all archscope tools and
// resources registered. The projectPath is the root directory of the source
// tree to analyze.
func NewArchScopeMCPServer(projectPath string) *server.MCPServer {
	s := server.NewMCPServer(
		"archscope",
		"0.1.0",
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(true, false),
	)

	registerTools(s, projectPath)
	registerResources(s, projectPath)

	return s
}
