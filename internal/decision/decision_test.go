package decision

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/leefowlercu/prompt-paladin/internal/config"
	"github.com/leefowlercu/prompt-paladin/pkg/types"
)

type fixedHealer struct {
	result types.HealResult
}

func (h *fixedHealer) Heal(_ context.Context, prompt string, _ types.PromptContext, _ types.HealMode) types.HealResult {
	if h.result.HealedPrompt == "" {
		// simulate a failed heal: original comes back untouched
		return types.HealResult{HealedPrompt: prompt, Mode: types.HealModeClarity}
	}
	return h.result
}

func TestEvaluateProceed(t *testing.T) {
	cfg := config.DefaultConfig
	engine := NewEngine(&cfg, nil)

	decision := engine.Evaluate(context.Background(), types.Verdict{
		Kind:   types.VerdictProceed,
		Reason: "clear and actionable",
	}, "refactor the login function", types.PromptContext{})

	if !decision.Continue {
		t.Error("expected proceed decision to continue")
	}
	if decision.Prompt != nil {
		t.Errorf("expected no prompt override, got %q", *decision.Prompt)
	}
	if decision.UserMessage != "" {
		t.Errorf("expected no user message, got %q", decision.UserMessage)
	}
}

func TestEvaluateHealAutoCast(t *testing.T) {
	cfg := config.DefaultConfig
	cfg.Features.AutoCastHeal = true

	healer := &fixedHealer{result: types.HealResult{
		HealedPrompt: "please refactor the login function in auth.go",
		Mode:         types.HealModeClarity,
		ChangesMade:  []string{"named the file"},
	}}
	engine := NewEngine(&cfg, healer)

	decision := engine.Evaluate(context.Background(), types.Verdict{
		Kind:   types.VerdictHeal,
		Reason: "vague wording",
	}, "fix this", types.PromptContext{})

	if !decision.Continue {
		t.Error("expected heal decision to continue")
	}
	if decision.Prompt == nil {
		t.Fatal("expected prompt override")
	}
	if *decision.Prompt != "please refactor the login function in auth.go" {
		t.Errorf("unexpected healed prompt: %q", *decision.Prompt)
	}
	if !strings.Contains(decision.UserMessage, "rewrote") {
		t.Errorf("expected rewrite notice in user message, got %q", decision.UserMessage)
	}
	if !strings.Contains(decision.UserMessage, "named the file") {
		t.Errorf("expected changes in user message, got %q", decision.UserMessage)
	}
}

func TestEvaluateHealFallsBackToAnnotation(t *testing.T) {
	tests := []struct {
		name   string
		cfg    func() config.Config
		healer Healer
	}{
		{
			name: "auto cast disabled",
			cfg: func() config.Config {
				cfg := config.DefaultConfig
				cfg.Features.AutoCastHeal = false
				return cfg
			},
			healer: &fixedHealer{result: types.HealResult{HealedPrompt: "never used"}},
		},
		{
			name: "heal returned original",
			cfg: func() config.Config {
				cfg := config.DefaultConfig
				cfg.Features.AutoCastHeal = true
				return cfg
			},
			healer: &fixedHealer{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := tt.cfg()
			engine := NewEngine(&cfg, tt.healer)

			original := "fix this"
			decision := engine.Evaluate(context.Background(), types.Verdict{
				Kind:        types.VerdictHeal,
				Reason:      "vague wording",
				Suggestions: []string{"name the file"},
			}, original, types.PromptContext{})

			if !decision.Continue {
				t.Error("expected decision to continue")
			}
			if decision.Prompt == nil {
				t.Fatal("expected annotated prompt override")
			}
			if !strings.HasSuffix(*decision.Prompt, original) {
				t.Errorf("expected original prompt preserved at end, got %q", *decision.Prompt)
			}
			if !strings.Contains(*decision.Prompt, "vague wording") {
				t.Errorf("expected reason in annotation, got %q", *decision.Prompt)
			}
			if !strings.Contains(*decision.Prompt, "1. name the file") {
				t.Errorf("expected numbered suggestion in annotation, got %q", *decision.Prompt)
			}
		})
	}
}

func TestEvaluateInterveneAnnotatesAndContinues(t *testing.T) {
	cfg := config.DefaultConfig
	engine := NewEngine(&cfg, nil)

	original := "fix this"
	decision := engine.Evaluate(context.Background(), types.Verdict{
		Kind:        types.VerdictIntervene,
		Reason:      "too vague to act on",
		Issues:      []string{"no target named"},
		Suggestions: []string{"name the file", "describe the failure"},
	}, original, types.PromptContext{})

	if !decision.Continue {
		t.Error("intervene must still continue")
	}
	if decision.Prompt == nil {
		t.Fatal("expected annotated prompt override")
	}
	for _, expected := range []string{
		"too vague to act on",
		"no target named",
		"1. name the file",
		"2. describe the failure",
		"ask the user for clarification",
	} {
		if !strings.Contains(*decision.Prompt, expected) {
			t.Errorf("expected annotation to contain %q, got: %s", expected, *decision.Prompt)
		}
	}
	if !strings.HasSuffix(*decision.Prompt, original) {
		t.Errorf("expected original prompt preserved at end, got %q", *decision.Prompt)
	}
	if decision.UserMessage != "too vague to act on" {
		t.Errorf("unexpected user message: %q", decision.UserMessage)
	}
}

func TestEnrichWithAudit(t *testing.T) {
	tests := []struct {
		name             string
		initialMessage   string
		results          types.AuditResults
		expectEnrichment bool
		expectContains   []string
	}{
		{
			name:           "successful audit",
			initialMessage: "too vague to act on",
			results: types.AuditResults{
				Executed: true,
				Results: []types.AuditResult{
					{
						StrategyType: "log",
						Success:      true,
						Message:      "Logged verdict to paladin.log",
						Duration:     15 * time.Millisecond,
					},
				},
				TotalDuration: 15 * time.Millisecond,
				ProtocolName:  "default",
			},
			expectEnrichment: true,
			expectContains: []string{
				"too vague to act on",
				"Audit actions taken",
				"✓ Logged verdict",
				"15ms",
			},
		},
		{
			name:           "not executed",
			initialMessage: "too vague to act on",
			results: types.AuditResults{
				Executed: false,
			},
			expectEnrichment: false,
			expectContains:   []string{"too vague to act on"},
		},
		{
			name:           "no results",
			initialMessage: "too vague to act on",
			results: types.AuditResults{
				Executed: true,
				Results:  []types.AuditResult{},
			},
			expectEnrichment: false,
			expectContains:   []string{"too vague to act on"},
		},
		{
			name:           "empty initial message",
			initialMessage: "",
			results: types.AuditResults{
				Executed: true,
				Results: []types.AuditResult{
					{
						StrategyType: "log",
						Success:      true,
						Message:      "Logged verdict",
						Duration:     10 * time.Millisecond,
					},
				},
				TotalDuration: 10 * time.Millisecond,
			},
			expectEnrichment: true,
			expectContains:   []string{"Audit actions taken"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decision := &types.HookDecision{
				Continue:    true,
				UserMessage: tt.initialMessage,
			}

			EnrichWithAudit(decision, tt.results)

			for _, expected := range tt.expectContains {
				if !strings.Contains(decision.UserMessage, expected) {
					t.Errorf("expected user message to contain %q, got: %s", expected, decision.UserMessage)
				}
			}

			if tt.expectEnrichment {
				if !strings.Contains(decision.UserMessage, "Audit actions taken") {
					t.Error("expected enrichment but none found")
				}
			} else {
				if strings.Contains(decision.UserMessage, "Audit actions taken") {
					t.Error("unexpected enrichment found")
				}
			}
		})
	}
}

func TestBuildAuditSummaryFailure(t *testing.T) {
	results := types.AuditResults{
		Executed: true,
		Results: []types.AuditResult{
			{
				StrategyType: "log",
				Success:      false,
				Message:      "Failed to open audit log",
				Duration:     2 * time.Millisecond,
			},
		},
		TotalDuration: 2 * time.Millisecond,
	}

	summary := buildAuditSummary(results)

	if !strings.Contains(summary, "✗ Failed to open audit log") {
		t.Errorf("expected failure marker in summary, got: %s", summary)
	}
	if !strings.Contains(summary, "1 strategy, ") {
		t.Errorf("expected singular strategy count, got: %s", summary)
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		name     string
		duration time.Duration
		expected string
	}{
		{"milliseconds", 250 * time.Millisecond, "250ms"},
		{"zero", 0, "0ms"},
		{"seconds", 1500 * time.Millisecond, "1.5s"},
		{"whole seconds", 3 * time.Second, "3.0s"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatDuration(tt.duration); got != tt.expected {
				t.Errorf("formatDuration(%v) = %q, want %q", tt.duration, got, tt.expected)
			}
		})
	}
}
