// Package cursor adapts Cursor's hook protocol: one JSON object on
// stdin, one decision object on stdout, exit code always zero. Cursor
// treats a non-zero exit as a hook crash and drops the output, so
// errors are reported through the decision body instead.
package cursor

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/leefowlercu/prompt-paladin/internal/framework"
	"github.com/leefowlercu/prompt-paladin/pkg/types"
)

const frameworkName = "cursor"

// Framework implements the HookFramework interface for Cursor
type Framework struct {
	handlers []framework.HookHandler
}

// Force compile-time check for interface implementation
var _ framework.HookFramework = (*Framework)(nil)

// NewFramework creates a new Cursor framework instance
func NewFramework() *Framework {
	f := &Framework{
		handlers: []framework.HookHandler{},
	}

	// Register default handlers
	f.RegisterHandler(NewBeforeSubmitPromptHandler())

	return f
}

// RegisterHandler registers a hook handler with the framework
func (f *Framework) RegisterHandler(handler framework.HookHandler) {
	f.handlers = append(f.handlers, handler)
}

// GetHandler returns the appropriate handler for the given input
func (f *Framework) GetHandler(input types.HookInput) (framework.HookHandler, error) {
	for _, handler := range f.handlers {
		if handler.CanHandle(input) {
			return handler, nil
		}
	}
	return nil, fmt.Errorf("no handler found for hook type %q", input.HookType)
}

// ParseInput reads and parses Cursor hook data from stdin
func (f *Framework) ParseInput(reader io.Reader) (types.HookInput, error) {
	var rawData map[string]any

	decoder := json.NewDecoder(reader)
	if err := decoder.Decode(&rawData); err != nil {
		return types.HookInput{}, fmt.Errorf("failed to decode JSON input; %w", err)
	}

	// Cursor does not always label its payloads; default to the one
	// hook this tool registers for
	hookType := beforeSubmitPromptType
	if name, ok := rawData["hook_event_name"].(string); ok && name != "" {
		hookType = name
	}

	return types.HookInput{
		Framework: frameworkName,
		HookType:  hookType,
		RawData:   rawData,
	}, nil
}

// FormatOutput formats a decision as JSON for Cursor
func (f *Framework) FormatOutput(decision types.HookDecision, input types.HookInput) ([]byte, error) {
	output := HookOutput{
		Continue: decision.Continue,
	}

	if decision.Prompt != nil {
		output.Prompt = *decision.Prompt
	}
	if decision.UserMessage != "" {
		output.UserMessage = decision.UserMessage
	}

	data, err := json.Marshal(output)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal output; %w", err)
	}

	return data, nil
}

// GetExitCode always returns zero; Cursor reads the verdict from the
// output body, not the exit status
func (f *Framework) GetExitCode(decision types.HookDecision) int {
	return 0
}

// GetName returns the framework name
func (f *Framework) GetName() string {
	return frameworkName
}
