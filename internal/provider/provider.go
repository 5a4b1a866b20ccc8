// Package provider wraps remote LLM completion APIs behind a uniform
// interface. Each adapter performs a single blocking attempt with no
// retry; callers own the fail-open policy.
package provider

import "context"

// Request is a single completion request: a system prompt plus user text.
type Request struct {
	System      string
	Prompt      string
	Model       string // overrides the adapter's configured model when set
	MaxTokens   int
	Temperature *float64
}

// Response is the provider-neutral completion result
type Response struct {
	Content  string
	Model    string
	Provider string
}

// Provider is the uniform completion interface all backends implement
type Provider interface {
	// Name returns the provider identifier (e.g., "anthropic")
	Name() string

	// Complete performs a single non-streaming completion request
	Complete(ctx context.Context, req *Request) (*Response, error)

	// ValidateConfig checks if the provider configuration is valid
	ValidateConfig() error
}

// DefaultMaxTokens bounds completions when the request does not set a limit
const DefaultMaxTokens = 2048
