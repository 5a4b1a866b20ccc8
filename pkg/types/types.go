package types

import "time"

// PromptContext carries optional conversation context alongside a prompt.
// It is built fresh from the hook input for each invocation and never persisted.
type PromptContext struct {
	ConversationHistory []string // most recent turns, oldest first
	ActiveFiles         []string
	SelectedCode        string
}

// IsEmpty reports whether the context carries nothing worth rendering.
func (c PromptContext) IsEmpty() bool {
	return len(c.ConversationHistory) == 0 && len(c.ActiveFiles) == 0 && c.SelectedCode == ""
}

// VerdictKind is the three-way classification outcome of a prompt-quality check.
type VerdictKind string

const (
	VerdictProceed   VerdictKind = "proceed"
	VerdictHeal      VerdictKind = "heal"
	VerdictIntervene VerdictKind = "intervene"
)

// Valid reports whether the kind is one of the three enumerated values.
func (k VerdictKind) Valid() bool {
	switch k {
	case VerdictProceed, VerdictHeal, VerdictIntervene:
		return true
	}
	return false
}

// Verdict is the result of classifying a prompt.
// Failed or unparseable evaluations always coerce to VerdictProceed
// (fail-open), never to VerdictIntervene.
type Verdict struct {
	Kind        VerdictKind
	Reason      string
	Suggestions []string
	Confidence  float64
	Issues      []string
}

// HealMode selects the healing system prompt.
type HealMode string

const (
	HealModeClarity HealMode = "clarity"
	HealModeAnger   HealMode = "anger"
	HealModeAuto    HealMode = "auto"
)

// HealResult is the outcome of a heal operation.
// HealedPrompt is never empty; on failure it equals the original input unmodified.
type HealResult struct {
	HealedPrompt string
	Mode         HealMode // resolved mode, never "auto"
	ChangesMade  []string
}

// Suggestion is one improved alternative to an original prompt.
type Suggestion struct {
	Prompt    string `json:"prompt"`
	Rationale string `json:"rationale"`
}

// HookDecision is the only entity crossing the boundary back to the IDE.
// Continue is true in every case in the current design: the host's
// block-with-reason display is unsupported upstream, so feedback is
// prepended to the prompt text instead of blocking outright.
type HookDecision struct {
	Continue    bool
	Prompt      *string // non-nil to override the submitted prompt
	UserMessage string  // informational toast, host may ignore it
}

// HookInput represents parsed input from a hook framework
type HookInput struct {
	Framework string         // Framework name (e.g., "cursor")
	HookType  string         // Hook type (e.g., "beforeSubmitPrompt")
	RawData   map[string]any // Raw JSON data from stdin
}

// AuditInput contains all context needed for audit strategies
type AuditInput struct {
	Prompt    string       // The prompt that was evaluated
	Verdict   Verdict      // Classification outcome
	Decision  HookDecision // Decision emitted to the host
	HookInput HookInput    // Original hook input
	Timestamp time.Time    // When the audit is being executed
	Framework string       // Framework name for context
}

// AuditResult represents the result of executing a single audit strategy
type AuditResult struct {
	StrategyType string         // Type of strategy that executed (e.g., "log")
	Success      bool           // Whether the strategy executed successfully
	Message      string         // User-facing summary message
	Duration     time.Duration  // How long the strategy took to execute
	Metadata     map[string]any // Additional metadata from the strategy
	Error        error          // Error if the strategy failed
}

// AuditResults represents the aggregate results from executing an audit protocol
type AuditResults struct {
	Executed      bool          // Whether auditing was executed
	Results       []AuditResult // Individual strategy results
	TotalDuration time.Duration // Total time for all strategies
	ProtocolName  string        // Name of the protocol that was executed
}
