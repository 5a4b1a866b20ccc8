package cursor

// BeforeSubmitPromptInput represents the input structure for the
// beforeSubmitPrompt hook. Only Prompt is required; the context fields
// are best-effort and absent in older Cursor builds.
type BeforeSubmitPromptInput struct {
	ConversationID      string       `json:"conversation_id"`
	GenerationID        string       `json:"generation_id"`
	HookEventName       string       `json:"hook_event_name"`
	Prompt              string       `json:"prompt"`
	ConversationHistory []string     `json:"conversation_history"`
	ActiveFiles         []string     `json:"active_files"`
	SelectedCode        string       `json:"selected_code"`
	Attachments         []Attachment `json:"attachments"`
	WorkspaceRoots      []string     `json:"workspace_roots"`
}

// Attachment is a file or selection attached to the prompt
type Attachment struct {
	Type     string `json:"type"`
	FilePath string `json:"file_path,omitempty"`
	Content  string `json:"content,omitempty"`
}

// HookOutput represents the decision structure Cursor expects back.
// Prompt, when present, replaces the text the user submitted.
type HookOutput struct {
	Continue    bool   `json:"continue"`
	Prompt      string `json:"prompt,omitempty"`
	UserMessage string `json:"userMessage,omitempty"`
}
