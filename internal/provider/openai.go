package provider

import (
	"context"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"
)

const (
	openaiDefaultModel = "gpt-4o-mini"
	groqDefaultModel   = "llama-3.3-70b-versatile"
	groqBaseURL        = "https://api.groq.com/openai/v1"
)

// OpenAIProvider implements Provider for OpenAI-compatible chat APIs.
// Groq exposes the same wire protocol, so it reuses this adapter with a
// different base URL.
type OpenAIProvider struct {
	client *openai.Client
	name   string
	apiKey string
	model  string
}

// Force compile-time check for interface implementation
var _ Provider = (*OpenAIProvider)(nil)

// NewOpenAIProvider creates a new OpenAI provider
func NewOpenAIProvider(apiKey, model string) (*OpenAIProvider, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("openai api key is required")
	}
	if model == "" {
		model = openaiDefaultModel
	}

	client := openai.NewClient(option.WithAPIKey(apiKey))

	return &OpenAIProvider{
		client: &client,
		name:   "openai",
		apiKey: apiKey,
		model:  model,
	}, nil
}

// NewGroqProvider creates an OpenAI-compatible provider pointed at Groq
func NewGroqProvider(apiKey, model string) (*OpenAIProvider, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("groq api key is required")
	}
	if model == "" {
		model = groqDefaultModel
	}

	client := openai.NewClient(
		option.WithAPIKey(apiKey),
		option.WithBaseURL(groqBaseURL),
	)

	return &OpenAIProvider{
		client: &client,
		name:   "groq",
		apiKey: apiKey,
		model:  model,
	}, nil
}

// Name returns the provider identifier
func (p *OpenAIProvider) Name() string {
	return p.name
}

// Complete performs a single non-streaming completion request
func (p *OpenAIProvider) Complete(ctx context.Context, req *Request) (*Response, error) {
	model := req.Model
	if model == "" {
		model = p.model
	}

	maxTokens := req.MaxTokens
	if maxTokens == 0 {
		maxTokens = DefaultMaxTokens
	}

	messages := make([]openai.ChatCompletionMessageParamUnion, 0, 2)
	if req.System != "" {
		messages = append(messages, openai.SystemMessage(req.System))
	}
	messages = append(messages, openai.UserMessage(req.Prompt))

	params := openai.ChatCompletionNewParams{
		Model:     shared.ChatModel(model),
		Messages:  messages,
		MaxTokens: openai.Int(int64(maxTokens)),
	}

	if req.Temperature != nil {
		params.Temperature = openai.Float(*req.Temperature)
	}

	completion, err := p.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("%s complete; %w", p.name, err)
	}

	if len(completion.Choices) == 0 {
		return nil, fmt.Errorf("%s complete; empty choices", p.name)
	}

	return &Response{
		Content:  completion.Choices[0].Message.Content,
		Model:    completion.Model,
		Provider: p.name,
	}, nil
}

// ValidateConfig checks if the provider configuration is valid
func (p *OpenAIProvider) ValidateConfig() error {
	if p.apiKey == "" {
		return fmt.Errorf("%s api key is required", p.name)
	}
	return nil
}
