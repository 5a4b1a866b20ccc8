package paladin

import (
	"context"
	"fmt"

	"github.com/leefowlercu/prompt-paladin/internal/config"
	"github.com/leefowlercu/prompt-paladin/internal/prompts"
	"github.com/leefowlercu/prompt-paladin/internal/provider"
	"github.com/leefowlercu/prompt-paladin/pkg/types"
)

type suggestionsResponse struct {
	Suggestions []types.Suggestion `json:"suggestions"`
}

// Suggestions generates improved alternatives to a prompt. On failure it
// returns a single suggestion echoing the original verbatim, so callers
// always have something to present.
func (s *Service) Suggestions(ctx context.Context, prompt string, pctx types.PromptContext) []types.Suggestion {
	suggestions, err := s.suggestions(ctx, prompt, pctx)
	if err != nil {
		s.logger.Warn("suggestion generation failed", "error", err)
		return []types.Suggestion{{
			Prompt:    prompt,
			Rationale: "original prompt (suggestions unavailable)",
		}}
	}

	return suggestions
}

func (s *Service) suggestions(ctx context.Context, prompt string, pctx types.PromptContext) ([]types.Suggestion, error) {
	p, model, err := s.providers.ForTool(config.ToolSuggestions)
	if err != nil {
		return nil, err
	}

	resp, err := p.Complete(ctx, &provider.Request{
		System:    prompts.SuggestionsSystem,
		Prompt:    prompts.FormatSuggestionsPrompt(prompt, pctx, s.limits),
		Model:     model,
		MaxTokens: provider.DefaultMaxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("suggestions completion failed; %w", err)
	}

	var parsed suggestionsResponse
	if err := decodeResponse(resp.Content, &parsed); err != nil {
		return nil, fmt.Errorf("suggestions response unparseable; %w", err)
	}

	if len(parsed.Suggestions) == 0 {
		return nil, fmt.Errorf("suggestions response contained no alternatives")
	}

	return parsed.Suggestions, nil
}
