package cursor

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/leefowlercu/prompt-paladin/internal/framework"
	"github.com/leefowlercu/prompt-paladin/pkg/types"
)

const beforeSubmitPromptType = "beforeSubmitPrompt"

// BeforeSubmitPromptHandler handles the beforeSubmitPrompt hook
type BeforeSubmitPromptHandler struct{}

// Force compile-time check for interface implementation
var _ framework.HookHandler = (*BeforeSubmitPromptHandler)(nil)

// NewBeforeSubmitPromptHandler creates a new beforeSubmitPrompt handler
func NewBeforeSubmitPromptHandler() *BeforeSubmitPromptHandler {
	return &BeforeSubmitPromptHandler{}
}

// ExtractPrompt extracts the prompt text and its surrounding context.
// A payload without a prompt field is malformed and returns an error;
// callers pass the submission through untouched in that case.
func (h *BeforeSubmitPromptHandler) ExtractPrompt(ctx context.Context, input types.HookInput) (string, types.PromptContext, error) {
	var promptInput BeforeSubmitPromptInput

	// Marshal and unmarshal to convert map to struct
	data, err := json.Marshal(input.RawData)
	if err != nil {
		return "", types.PromptContext{}, fmt.Errorf("failed to marshal input data; %w", err)
	}

	if err := json.Unmarshal(data, &promptInput); err != nil {
		return "", types.PromptContext{}, fmt.Errorf("failed to unmarshal beforeSubmitPrompt input; %w", err)
	}

	if _, ok := input.RawData["prompt"]; !ok {
		return "", types.PromptContext{}, fmt.Errorf("missing prompt field in beforeSubmitPrompt input")
	}

	pctx := types.PromptContext{
		ConversationHistory: promptInput.ConversationHistory,
		ActiveFiles:         promptInput.ActiveFiles,
		SelectedCode:        promptInput.SelectedCode,
	}

	// Attachments fold into the context fields the templates render
	for _, att := range promptInput.Attachments {
		switch {
		case att.FilePath != "":
			pctx.ActiveFiles = append(pctx.ActiveFiles, att.FilePath)
		case att.Content != "" && pctx.SelectedCode == "":
			pctx.SelectedCode = att.Content
		}
	}

	return promptInput.Prompt, pctx, nil
}

// GetType returns the hook type name
func (h *BeforeSubmitPromptHandler) GetType() string {
	return beforeSubmitPromptType
}

// CanHandle returns true if this handler can process the given hook input
func (h *BeforeSubmitPromptHandler) CanHandle(input types.HookInput) bool {
	return input.Framework == frameworkName && input.HookType == beforeSubmitPromptType
}
