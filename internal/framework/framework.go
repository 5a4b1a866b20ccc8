package framework

import (
	"context"
	"io"

	"github.com/leefowlercu/prompt-paladin/pkg/types"
)

// HookFramework defines the interface for hook framework implementations
type HookFramework interface {
	// ParseInput reads and parses hook data from stdin
	ParseInput(reader io.Reader) (types.HookInput, error)

	// FormatOutput formats a decision as JSON for the framework
	FormatOutput(decision types.HookDecision, input types.HookInput) ([]byte, error)

	// GetExitCode returns the appropriate exit code for the framework based on the decision
	GetExitCode(decision types.HookDecision) int

	// GetName returns the framework name
	GetName() string
}

// HookHandler defines the interface for specific hook type handlers
type HookHandler interface {
	// ExtractPrompt extracts the prompt text and its context from hook input
	ExtractPrompt(ctx context.Context, input types.HookInput) (string, types.PromptContext, error)

	// GetType returns the hook type name
	GetType() string

	// CanHandle returns true if this handler can process the given hook input
	CanHandle(input types.HookInput) bool
}
