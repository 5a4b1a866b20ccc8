package provider

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

const googleDefaultModel = "gemini-2.0-flash"

// GoogleProvider implements Provider for Google's Gemini models
type GoogleProvider struct {
	client *genai.Client
	apiKey string
	model  string
}

// Force compile-time check for interface implementation
var _ Provider = (*GoogleProvider)(nil)

// NewGoogleProvider creates a new Google Gemini provider
func NewGoogleProvider(ctx context.Context, apiKey, model string) (*GoogleProvider, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("google api key is required")
	}
	if model == "" {
		model = googleDefaultModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client; %w", err)
	}

	return &GoogleProvider{
		client: client,
		apiKey: apiKey,
		model:  model,
	}, nil
}

// Name returns the provider identifier
func (p *GoogleProvider) Name() string {
	return "google"
}

// Complete performs a single non-streaming completion request
func (p *GoogleProvider) Complete(ctx context.Context, req *Request) (*Response, error) {
	model := req.Model
	if model == "" {
		model = p.model
	}

	maxTokens := req.MaxTokens
	if maxTokens == 0 {
		maxTokens = DefaultMaxTokens
	}

	cfg := &genai.GenerateContentConfig{
		MaxOutputTokens: int32(maxTokens),
	}

	if req.System != "" {
		cfg.SystemInstruction = genai.NewContentFromText(req.System, genai.RoleUser)
	}

	if req.Temperature != nil {
		t := float32(*req.Temperature)
		cfg.Temperature = &t
	}

	result, err := p.client.Models.GenerateContent(ctx, model, genai.Text(req.Prompt), cfg)
	if err != nil {
		return nil, fmt.Errorf("google complete; %w", err)
	}

	return &Response{
		Content:  result.Text(),
		Model:    model,
		Provider: p.Name(),
	}, nil
}

// ValidateConfig checks if the provider configuration is valid
func (p *GoogleProvider) ValidateConfig() error {
	if p.apiKey == "" {
		return fmt.Errorf("google api key is required")
	}
	return nil
}
