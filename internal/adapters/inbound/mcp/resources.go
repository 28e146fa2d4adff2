package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// registerResources registers all archscope MCP resources on the given server.
func registerResources(s *server.MCPServer, projectPath string) {
	// archscope://score - composite score summary
	s.AddResource(
		mcplib.NewResource(
			"archscope://score",
			"Architecture Score",
			mcplib.WithResourceDescription("Current architecture maturity score for the project"),
			mcplib.WithMIMEType("application/json"),
		),
		handleScoreResource(projectPath),
	)
}

func handleScoreResource(projectPath string) server.ResourceHandlerFunc {
	return func(_ context.Context, _ mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
		result, err := newService().Analyze(projectPath)
		if err != nil {
			return nil, fmt.Errorf("analysis failed: %w", err)
		}

		summary := struct {
			Composite     float64 `json:"composite"`
			Level         string  `json:"level"`
			Layering      int     `json:"layering"`
			Encapsulation int     `json:"encapsulation"`
			Abstraction   int     `json:"abstraction"`
			Cycles        int     `json:"cycles"`
			TotalFiles    int     `json:"total_files"`
		}{
			result.Composite, result.Level,
			result.Layering.Score, result.Encapsulation.Score,
			result.Abstraction.Score, result.Cycles.Score,
			result.TotalFiles,
		}

		data, err := json.MarshalIndent(summary, "", "  ")
		if err != nil {
			return nil, err
		}
		return []mcplib.ResourceContents{
			mcplib.TextResourceContents{
				URI:      "archscope://score",
				MIMEType: "application/json",
				Text:     string(data),
			},
		}, nil
	}
}
