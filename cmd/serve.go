package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/leefowlercu/prompt-paladin/internal/config"
	"github.com/leefowlercu/prompt-paladin/internal/mcpserver"
	"github.com/leefowlercu/prompt-paladin/internal/paladin"
	"github.com/leefowlercu/prompt-paladin/internal/processor"
	"github.com/leefowlercu/prompt-paladin/internal/provider"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the MCP server on stdio",
	Long: "Run an MCP server exposing the paladin operations (pp_guard, pp_heal, " +
		"pp_suggestions, pp_discuss, pp_proceed) as tools over stdio.",
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.GetConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration; %w", err)
	}

	logger := processor.SetupLogger(cfg)

	providers, err := provider.FromConfig(context.Background(), cfg)
	if err != nil {
		return fmt.Errorf("failed to build provider registry; %w", err)
	}

	svc := paladin.NewService(providers, cfg, logger)
	s := mcpserver.New(svc, cfg, logger, version)

	logger.Info("starting MCP server", "version", version)

	return mcpserver.Serve(s)
}
