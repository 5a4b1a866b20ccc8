package paladin

import (
	"context"
	"fmt"

	"github.com/leefowlercu/prompt-paladin/internal/config"
	"github.com/leefowlercu/prompt-paladin/internal/prompts"
	"github.com/leefowlercu/prompt-paladin/internal/provider"
	"github.com/leefowlercu/prompt-paladin/pkg/types"
)

type discussResponse struct {
	Questions []string `json:"questions"`
	Context   string   `json:"context"`
}

// Discuss generates clarifying questions for a vague prompt. A failed
// generation returns an empty slice; the caller decides how to present
// having no questions.
func (s *Service) Discuss(ctx context.Context, prompt string, pctx types.PromptContext) []string {
	questions, err := s.discuss(ctx, prompt, pctx)
	if err != nil {
		s.logger.Warn("question generation failed", "error", err)
		return []string{}
	}

	return questions
}

func (s *Service) discuss(ctx context.Context, prompt string, pctx types.PromptContext) ([]string, error) {
	p, model, err := s.providers.ForTool(config.ToolDiscuss)
	if err != nil {
		return nil, err
	}

	resp, err := p.Complete(ctx, &provider.Request{
		System:    prompts.DiscussSystem,
		Prompt:    prompts.FormatDiscussPrompt(prompt, pctx, s.limits),
		Model:     model,
		MaxTokens: provider.DefaultMaxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("discuss completion failed; %w", err)
	}

	var parsed discussResponse
	if err := decodeResponse(resp.Content, &parsed); err != nil {
		return nil, fmt.Errorf("discuss response unparseable; %w", err)
	}

	return parsed.Questions, nil
}
