// Package paladin implements the prompt-quality operations: guard
// classification, healing, suggestion generation, and clarifying
// dialogue. Every operation fails open; a provider or parse failure
// degrades to a harmless result and never escalates to intervention.
package paladin

import (
	"log/slog"

	"github.com/leefowlercu/prompt-paladin/internal/config"
	"github.com/leefowlercu/prompt-paladin/internal/prompts"
	"github.com/leefowlercu/prompt-paladin/internal/provider"
	"github.com/leefowlercu/prompt-paladin/pkg/types"
)

// FallbackReason is the verdict reason attached when an evaluation
// could not be completed
const FallbackReason = "evaluation unavailable"

// Service executes paladin operations against the configured providers
type Service struct {
	providers *provider.Registry
	cfg       *config.Config
	logger    *slog.Logger
	limits    prompts.Limits
}

// NewService creates a paladin service
func NewService(providers *provider.Registry, cfg *config.Config, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}

	return &Service{
		providers: providers,
		cfg:       cfg,
		logger:    logger,
		limits: prompts.Limits{
			MaxHistoryTurns: cfg.Limits.MaxHistoryTurns,
			MaxActiveFiles:  cfg.Limits.MaxActiveFiles,
		},
	}
}

// Proceed returns the fixed override verdict. It performs no evaluation
// and is the user's explicit escape hatch.
func (s *Service) Proceed() types.Verdict {
	return types.Verdict{
		Kind:   types.VerdictProceed,
		Reason: "user override",
	}
}
