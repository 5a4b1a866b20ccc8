package paladin

import (
	"context"
	"fmt"

	"github.com/leefowlercu/prompt-paladin/internal/config"
	"github.com/leefowlercu/prompt-paladin/internal/prompts"
	"github.com/leefowlercu/prompt-paladin/internal/provider"
	"github.com/leefowlercu/prompt-paladin/pkg/types"
)

type guardResponse struct {
	Verdict     string   `json:"verdict"`
	Reason      string   `json:"reason"`
	Confidence  float64  `json:"confidence"`
	Issues      []string `json:"issues"`
	Suggestions []string `json:"suggestions"`
}

// Guard classifies a prompt into proceed, heal, or intervene. Any
// failure along the way (provider, timeout, unparseable or out-of-enum
// answer) yields a proceed verdict with the fallback reason; a failed
// evaluation must never hold up the user's prompt.
func (s *Service) Guard(ctx context.Context, prompt string, pctx types.PromptContext) types.Verdict {
	verdict, err := s.guard(ctx, prompt, pctx)
	if err != nil {
		s.logger.Warn("prompt evaluation failed, proceeding without verdict", "error", err)
		return types.Verdict{
			Kind:   types.VerdictProceed,
			Reason: FallbackReason,
		}
	}

	return verdict
}

func (s *Service) guard(ctx context.Context, prompt string, pctx types.PromptContext) (types.Verdict, error) {
	p, model, err := s.providers.ForTool(config.ToolGuard)
	if err != nil {
		return types.Verdict{}, err
	}

	resp, err := p.Complete(ctx, &provider.Request{
		System:    prompts.GuardSystem,
		Prompt:    prompts.FormatGuardPrompt(prompt, pctx, s.limits),
		Model:     model,
		MaxTokens: provider.DefaultMaxTokens,
	})
	if err != nil {
		return types.Verdict{}, fmt.Errorf("guard completion failed; %w", err)
	}

	var parsed guardResponse
	if err := decodeResponse(resp.Content, &parsed); err != nil {
		return types.Verdict{}, fmt.Errorf("guard response unparseable; %w", err)
	}

	kind := types.VerdictKind(parsed.Verdict)
	if !kind.Valid() {
		return types.Verdict{}, fmt.Errorf("guard returned unknown verdict %q", parsed.Verdict)
	}

	s.logger.Debug("prompt classified",
		"verdict", string(kind),
		"confidence", parsed.Confidence,
		"provider", resp.Provider,
		"model", resp.Model,
	)

	return types.Verdict{
		Kind:        kind,
		Reason:      parsed.Reason,
		Suggestions: parsed.Suggestions,
		Confidence:  parsed.Confidence,
		Issues:      parsed.Issues,
	}, nil
}
