// Package decision routes a verdict to the decision returned to the
// host. Every decision continues the submission; intervention and
// unhealed feedback ride along as an annotation block prepended to the
// prompt, since the host has no supported block-with-reason display.
package decision

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/leefowlercu/prompt-paladin/internal/config"
	"github.com/leefowlercu/prompt-paladin/pkg/types"
)

// Healer rewrites a prompt; the paladin service satisfies this
type Healer interface {
	Heal(ctx context.Context, prompt string, pctx types.PromptContext, mode types.HealMode) types.HealResult
}

// Engine turns verdicts into hook decisions
type Engine struct {
	cfg    *config.Config
	healer Healer
}

// NewEngine creates a new decision engine
func NewEngine(cfg *config.Config, healer Healer) *Engine {
	return &Engine{
		cfg:    cfg,
		healer: healer,
	}
}

// Evaluate maps a verdict onto the decision sent back to the host.
// Continue is true on every path.
func (e *Engine) Evaluate(ctx context.Context, verdict types.Verdict, prompt string, pctx types.PromptContext) types.HookDecision {
	decision := types.HookDecision{
		Continue: true,
	}

	switch verdict.Kind {
	case types.VerdictProceed:
		return decision

	case types.VerdictHeal:
		if e.cfg.Features.AutoCastHeal && e.healer != nil {
			result := e.healer.Heal(ctx, prompt, pctx, types.HealModeAuto)
			if result.HealedPrompt != prompt {
				decision.Prompt = &result.HealedPrompt
				decision.UserMessage = buildHealMessage(result)
				return decision
			}
			// heal failed or changed nothing; fall back to annotation
		}
		annotated := buildFeedbackBlock(verdict) + "\n\n" + prompt
		decision.Prompt = &annotated
		decision.UserMessage = verdict.Reason
		return decision

	case types.VerdictIntervene:
		annotated := buildFeedbackBlock(verdict) + "\n\n" + prompt
		decision.Prompt = &annotated
		decision.UserMessage = verdict.Reason
		return decision
	}

	// Unknown kinds never intervene
	return decision
}

// buildFeedbackBlock creates the annotation prepended to a flagged prompt
func buildFeedbackBlock(verdict types.Verdict) string {
	var sb strings.Builder

	sb.WriteString("[Prompt Paladin] Before acting on the prompt below, note this quality feedback:\n")

	if verdict.Reason != "" {
		sb.WriteString("Reason: ")
		sb.WriteString(verdict.Reason)
		sb.WriteString("\n")
	}

	for i, issue := range verdict.Issues {
		if i == 0 {
			sb.WriteString("Issues:\n")
		}
		sb.WriteString("  - ")
		sb.WriteString(issue)
		sb.WriteString("\n")
	}

	for i, suggestion := range verdict.Suggestions {
		if i == 0 {
			sb.WriteString("Suggestions:\n")
		}
		sb.WriteString("  ")
		sb.WriteString(strconv.Itoa(i + 1))
		sb.WriteString(". ")
		sb.WriteString(suggestion)
		sb.WriteString("\n")
	}

	sb.WriteString("If the request is too vague to act on, ask the user for clarification first.")

	return sb.String()
}

// buildHealMessage summarizes an automatic rewrite for the user toast
func buildHealMessage(result types.HealResult) string {
	var sb strings.Builder

	sb.WriteString("Prompt Paladin rewrote your prompt (")
	sb.WriteString(string(result.Mode))
	sb.WriteString(" healing)")

	if len(result.ChangesMade) > 0 {
		sb.WriteString(": ")
		sb.WriteString(strings.Join(result.ChangesMade, "; "))
	}

	return sb.String()
}

// EnrichWithAudit appends audit results to the decision's user message
func EnrichWithAudit(decision *types.HookDecision, results types.AuditResults) {
	if !results.Executed || len(results.Results) == 0 {
		return
	}

	summary := buildAuditSummary(results)
	if decision.UserMessage != "" {
		decision.UserMessage += "\n\n" + summary
	} else {
		decision.UserMessage = summary
	}
}

// buildAuditSummary creates a formatted summary of audit results
func buildAuditSummary(results types.AuditResults) string {
	var sb strings.Builder

	sb.WriteString("Audit actions taken (")
	sb.WriteString(strconv.Itoa(len(results.Results)))
	if len(results.Results) == 1 {
		sb.WriteString(" strategy, ")
	} else {
		sb.WriteString(" strategies, ")
	}
	sb.WriteString(formatDuration(results.TotalDuration))
	sb.WriteString(" total):")

	for _, result := range results.Results {
		sb.WriteString("\n  ")

		if result.Success {
			sb.WriteString("✓ ") // U+2713 check mark
		} else {
			sb.WriteString("✗ ") // U+2717 ballot x
		}

		sb.WriteString(result.Message)

		sb.WriteString(" (")
		sb.WriteString(formatDuration(result.Duration))
		sb.WriteString(")")
	}

	return sb.String()
}

// formatDuration formats a duration in a human-readable way
func formatDuration(d time.Duration) string {
	ms := d.Milliseconds()

	if ms < 1000 {
		return fmt.Sprintf("%dms", ms)
	}

	seconds := float64(ms) / 1000.0
	return fmt.Sprintf("%.1fs", seconds)
}
