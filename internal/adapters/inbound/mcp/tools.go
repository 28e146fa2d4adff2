package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	cacheAdapter "github.com/archscope/archscope/internal/adapters/outbound/cache"
	"github.com/archscope/archscope/internal/adapters/outbound/config"
	"github.com/archscope/archscope/internal/adapters/outbound/parser"
	"github.com/archscope/archscope/internal/adapters/outbound/scanner"
	"github.com/archscope/archscope/internal/application"
	"github.com/archscope/archscope/internal/domain"
)

// registerTools registers all archscope MCP tools on the given server.
func registerTools(s *server.MCPServer, projectPath string) {
	// 1. archscope_analyze
	s.AddTool(
		mcplib.NewTool("archscope_analyze",
			mcplib.WithDescription("Run the full architecture maturity analysis and return the structured result as JSON"),
			mcplib.WithString("path", mcplib.Description("Directory to analyze (defaults to the configured project path)")),
		),
		handleAnalyze(projectPath),
	)

	// 2. archscope_dimension
	s.AddTool(
		mcplib.NewTool("archscope_dimension",
			mcplib.WithDescription("Return the result of a single quality dimension with its full finding list"),
			mcplib.WithString("dimension",
				mcplib.Required(),
				mcplib.Description("One of: layering, encapsulation, abstraction, cycles"),
			),
		),
		handleDimension(projectPath),
	)

	// 3. archscope_cycles
	s.AddTool(
		mcplib.NewTool("archscope_cycles",
			mcplib.WithDescription("Return the dependency cycles found in the source tree"),
		),
		handleCycles(projectPath),
	)

	// 4. archscope_changed
	s.AddTool(
		mcplib.NewTool("archscope_changed",
			mcplib.WithDescription("Return the files whose content changed since the last analysis, by content hash"),
		),
		handleChanged(projectPath),
	)
}

// newService creates the standard analyze service with all outbound adapters.
func newService() *application.AnalyzeService {
	return application.NewAnalyzeService(
		scanner.New(),
		parser.New(),
		config.New(),
		cacheAdapter.New(),
	)
}

func handleAnalyze(projectPath string) server.ToolHandlerFunc {
	return func(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		path := request.GetString("path", projectPath)
		result, err := newService().Analyze(path)
		if err != nil {
			return errorResult(fmt.Sprintf("analysis failed: %v", err)), nil
		}
		return jsonResult(result)
	}
}

func handleDimension(projectPath string) server.ToolHandlerFunc {
	return func(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		name, err := request.RequireString("dimension")
		if err != nil {
			return errorResult(err.Error()), nil
		}

		result, err := newService().Analyze(projectPath)
		if err != nil {
			return errorResult(fmt.Sprintf("analysis failed: %v", err)), nil
		}

		for _, d := range result.Dimensions() {
			if string(d.Dimension) == name {
				return jsonResult(d)
			}
		}
		return errorResult(fmt.Sprintf("unknown dimension %q", name)), nil
	}
}

func handleCycles(projectPath string) server.ToolHandlerFunc {
	return func(_ context.Context, _ mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		result, err := newService().Analyze(projectPath)
		if err != nil {
			return errorResult(fmt.Sprintf("analysis failed: %v", err)), nil
		}
		return jsonResult(struct {
			Cycles        []domain.Cycle `json:"cycles"`
			FilesInCycles int            `json:"files_in_cycles"`
			Score         int            `json:"score"`
		}{result.Cycles.Cycles, result.FilesInCycles, result.Cycles.Score})
	}
}

func handleChanged(projectPath string) server.ToolHandlerFunc {
	return func(_ context.Context, _ mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		changed, err := newService().ChangedFiles(projectPath)
		if err != nil {
			return errorResult(fmt.Sprintf("change detection failed: %v", err)), nil
		}
		return jsonResult(struct {
			Changed []string `json:"changed"`
			Count   int      `json:"count"`
		}{changed, len(changed)})
	}
}

// jsonResult marshals v to JSON and returns it as a text content result.
func jsonResult(v interface{}) (*mcplib.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling result: %w", err)
	}
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(string(data))},
	}, nil
}

// errorResult returns a tool result that indicates an error occurred.
func errorResult(msg string) *mcplib.CallToolResult {
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(msg)},
		IsError: true,
	}
}
