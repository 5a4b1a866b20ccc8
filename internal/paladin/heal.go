package paladin

import (
	"context"
	"fmt"

	"github.com/leefowlercu/prompt-paladin/internal/config"
	"github.com/leefowlercu/prompt-paladin/internal/prompts"
	"github.com/leefowlercu/prompt-paladin/internal/provider"
	"github.com/leefowlercu/prompt-paladin/pkg/types"
)

type healResponse struct {
	HealedPrompt   string   `json:"healed_prompt"`
	ChangesMade    []string `json:"changes_made"`
	OriginalIntent string   `json:"original_intent"`
}

// Heal rewrites a prompt. Mode "auto" resolves locally: hostile-looking
// prompts get the anger translation (when the feature is on), everything
// else gets the clarity rewrite. On any failure the original prompt is
// returned unmodified with no changes listed.
func (s *Service) Heal(ctx context.Context, prompt string, pctx types.PromptContext, mode types.HealMode) types.HealResult {
	resolved := s.resolveHealMode(prompt, mode)

	result, err := s.heal(ctx, prompt, pctx, resolved)
	if err != nil {
		s.logger.Warn("heal failed, keeping original prompt", "mode", string(resolved), "error", err)
		return types.HealResult{
			HealedPrompt: prompt,
			Mode:         resolved,
		}
	}

	return result
}

// resolveHealMode maps "auto" to a concrete mode. The anger translator
// is only chosen when its feature toggle is enabled.
func (s *Service) resolveHealMode(prompt string, mode types.HealMode) types.HealMode {
	if mode != types.HealModeAuto {
		return mode
	}

	if s.cfg.Features.AngerTranslator && looksHostile(prompt) {
		return types.HealModeAnger
	}

	return types.HealModeClarity
}

func (s *Service) heal(ctx context.Context, prompt string, pctx types.PromptContext, mode types.HealMode) (types.HealResult, error) {
	system := prompts.HealClaritySystem
	if mode == types.HealModeAnger {
		system = prompts.HealAngerSystem
	}

	p, model, err := s.providers.ForTool(config.ToolHeal)
	if err != nil {
		return types.HealResult{}, err
	}

	resp, err := p.Complete(ctx, &provider.Request{
		System:    system,
		Prompt:    prompts.FormatHealPrompt(prompt, pctx, s.limits),
		Model:     model,
		MaxTokens: provider.DefaultMaxTokens,
	})
	if err != nil {
		return types.HealResult{}, fmt.Errorf("heal completion failed; %w", err)
	}

	var parsed healResponse
	if err := decodeResponse(resp.Content, &parsed); err != nil {
		return types.HealResult{}, fmt.Errorf("heal response unparseable; %w", err)
	}

	if parsed.HealedPrompt == "" {
		return types.HealResult{}, fmt.Errorf("heal response missing healed prompt")
	}

	s.logger.Debug("prompt healed", "mode", string(mode), "changes", len(parsed.ChangesMade))

	return types.HealResult{
		HealedPrompt: parsed.HealedPrompt,
		Mode:         mode,
		ChangesMade:  parsed.ChangesMade,
	}, nil
}
