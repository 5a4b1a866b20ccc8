package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/leefowlercu/prompt-paladin/internal/config"
	"github.com/leefowlercu/prompt-paladin/internal/paladin"
	"github.com/leefowlercu/prompt-paladin/pkg/types"
)

// tool pairs an MCP tool definition with its handler
type tool interface {
	Definition() mcp.Tool
	Handle(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error)
}

// promptContextFromRequest reads the optional context arguments shared
// by all evaluation tools
func promptContextFromRequest(request mcp.CallToolRequest) types.PromptContext {
	pctx := types.PromptContext{
		SelectedCode: request.GetString("selected_code", ""),
	}

	pctx.ConversationHistory = request.GetStringSlice("conversation_history", nil)
	pctx.ActiveFiles = request.GetStringSlice("active_files", nil)

	return pctx
}

// jsonResult marshals a handler result as a JSON text content block
func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result; %w", err)
	}
	return mcp.NewToolResultText(string(data)), nil
}

type guardTool struct {
	svc *paladin.Service
}

func newGuardTool(svc *paladin.Service) *guardTool { return &guardTool{svc: svc} }

func (t *guardTool) Definition() mcp.Tool {
	return mcp.NewTool(config.ToolGuard,
		mcp.WithDescription("Evaluate a prompt for clarity, completeness, tone, and actionability. Returns a proceed, heal, or intervene verdict."),
		mcp.WithString("prompt", mcp.Required(), mcp.Description("The prompt to evaluate")),
		mcp.WithArray("conversation_history", mcp.Description("Recent conversation turns, oldest first")),
		mcp.WithArray("active_files", mcp.Description("Files open in the editor")),
		mcp.WithString("selected_code", mcp.Description("Currently selected code")),
	)
}

func (t *guardTool) Handle(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	prompt, err := request.RequireString("prompt")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	verdict := t.svc.Guard(ctx, prompt, promptContextFromRequest(request))

	return jsonResult(map[string]any{
		"verdict":     string(verdict.Kind),
		"reason":      verdict.Reason,
		"confidence":  verdict.Confidence,
		"issues":      verdict.Issues,
		"suggestions": verdict.Suggestions,
	})
}

type healTool struct {
	svc *paladin.Service
}

func newHealTool(svc *paladin.Service) *healTool { return &healTool{svc: svc} }

func (t *healTool) Definition() mcp.Tool {
	return mcp.NewTool(config.ToolHeal,
		mcp.WithDescription("Rewrite a prompt for clarity or translate hostile tone into a constructive request. Mode auto picks based on the prompt's tone."),
		mcp.WithString("prompt", mcp.Required(), mcp.Description("The prompt to heal")),
		mcp.WithString("mode", mcp.Description("Healing mode: clarity, anger, or auto (default auto)"),
			mcp.Enum("clarity", "anger", "auto")),
		mcp.WithArray("conversation_history", mcp.Description("Recent conversation turns, oldest first")),
		mcp.WithArray("active_files", mcp.Description("Files open in the editor")),
		mcp.WithString("selected_code", mcp.Description("Currently selected code")),
	)
}

func (t *healTool) Handle(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	prompt, err := request.RequireString("prompt")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	mode := types.HealMode(request.GetString("mode", string(types.HealModeAuto)))
	switch mode {
	case types.HealModeClarity, types.HealModeAnger, types.HealModeAuto:
	default:
		return mcp.NewToolResultError(fmt.Sprintf("unknown heal mode %q", mode)), nil
	}

	result := t.svc.Heal(ctx, prompt, promptContextFromRequest(request), mode)

	return jsonResult(map[string]any{
		"healed_prompt": result.HealedPrompt,
		"mode":          string(result.Mode),
		"changes_made":  result.ChangesMade,
	})
}

type suggestionsTool struct {
	svc *paladin.Service
}

func newSuggestionsTool(svc *paladin.Service) *suggestionsTool { return &suggestionsTool{svc: svc} }

func (t *suggestionsTool) Definition() mcp.Tool {
	return mcp.NewTool(config.ToolSuggestions,
		mcp.WithDescription("Generate improved alternatives to a prompt, each with a rationale."),
		mcp.WithString("prompt", mcp.Required(), mcp.Description("The original prompt")),
		mcp.WithArray("conversation_history", mcp.Description("Recent conversation turns, oldest first")),
		mcp.WithArray("active_files", mcp.Description("Files open in the editor")),
		mcp.WithString("selected_code", mcp.Description("Currently selected code")),
	)
}

func (t *suggestionsTool) Handle(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	prompt, err := request.RequireString("prompt")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	suggestions := t.svc.Suggestions(ctx, prompt, promptContextFromRequest(request))

	return jsonResult(map[string]any{
		"suggestions": suggestions,
	})
}

type discussTool struct {
	svc *paladin.Service
}

func newDiscussTool(svc *paladin.Service) *discussTool { return &discussTool{svc: svc} }

func (t *discussTool) Definition() mcp.Tool {
	return mcp.NewTool(config.ToolDiscuss,
		mcp.WithDescription("Generate focused clarifying questions for a vague prompt."),
		mcp.WithString("prompt", mcp.Required(), mcp.Description("The unclear prompt")),
		mcp.WithArray("conversation_history", mcp.Description("Recent conversation turns, oldest first")),
		mcp.WithArray("active_files", mcp.Description("Files open in the editor")),
		mcp.WithString("selected_code", mcp.Description("Currently selected code")),
	)
}

func (t *discussTool) Handle(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	prompt, err := request.RequireString("prompt")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	questions := t.svc.Discuss(ctx, prompt, promptContextFromRequest(request))

	return jsonResult(map[string]any{
		"questions": questions,
	})
}

type proceedTool struct {
	svc *paladin.Service
}

func newProceedTool(svc *paladin.Service) *proceedTool { return &proceedTool{svc: svc} }

func (t *proceedTool) Definition() mcp.Tool {
	return mcp.NewTool(config.ToolProceed,
		mcp.WithDescription("Bypass evaluation and let the prompt through unchanged. No LLM call is made."),
		mcp.WithString("prompt", mcp.Description("The prompt being submitted, echoed back unchanged")),
	)
}

func (t *proceedTool) Handle(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	verdict := t.svc.Proceed()

	return jsonResult(map[string]any{
		"verdict": string(verdict.Kind),
		"reason":  verdict.Reason,
		"prompt":  request.GetString("prompt", ""),
	})
}
