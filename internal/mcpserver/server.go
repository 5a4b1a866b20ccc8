// Package mcpserver exposes the paladin operations as MCP tools over
// stdio. This is the composition root: it wires the paladin service
// into tool handlers and registers them; no business logic lives here.
package mcpserver

import (
	"log/slog"

	"github.com/mark3labs/mcp-go/server"

	"github.com/leefowlercu/prompt-paladin/internal/config"
	"github.com/leefowlercu/prompt-paladin/internal/paladin"
)

// New creates the MCP server with all paladin tools registered
func New(svc *paladin.Service, cfg *config.Config, logger *slog.Logger, version string) *server.MCPServer {
	s := server.NewMCPServer(
		"prompt-paladin",
		version,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
		server.WithInstructions("Prompt Paladin evaluates prompt quality before submission. "+
			"Use pp_guard for a verdict, pp_heal to rewrite, pp_suggestions for alternatives, "+
			"pp_discuss for clarifying questions, and pp_proceed to bypass evaluation."),
	)

	tools := []tool{
		newGuardTool(svc),
		newHealTool(svc),
		newSuggestionsTool(svc),
		newDiscussTool(svc),
		newProceedTool(svc),
	}

	for _, t := range tools {
		s.AddTool(t.Definition(), t.Handle)
		logger.Debug("registered tool", "name", t.Definition().Name)
	}

	return s
}

// Serve runs the server on stdio until the client disconnects
func Serve(s *server.MCPServer) error {
	return server.ServeStdio(s)
}
