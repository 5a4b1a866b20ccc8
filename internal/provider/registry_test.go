package provider

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leefowlercu/prompt-paladin/internal/config"
)

type namedProvider struct {
	name string
}

func (p *namedProvider) Name() string { return p.name }

func (p *namedProvider) Complete(_ context.Context, _ *Request) (*Response, error) {
	return &Response{Provider: p.name}, nil
}

func (p *namedProvider) ValidateConfig() error { return nil }

func TestRegistryRegisterAndGet(t *testing.T) {
	r := NewRegistry()
	r.Register(&namedProvider{name: "anthropic"})
	r.Register(&namedProvider{name: "openai"})

	p, err := r.Get("openai")
	require.NoError(t, err)
	assert.Equal(t, "openai", p.Name())

	_, err = r.Get("google")
	assert.Error(t, err)

	assert.ElementsMatch(t, []string{"anthropic", "openai"}, r.Available())
}

func TestRegistryFirstRegisteredIsDefault(t *testing.T) {
	r := NewRegistry()
	r.Register(&namedProvider{name: "groq"})
	r.Register(&namedProvider{name: "openai"})

	p, err := r.Default()
	require.NoError(t, err)
	assert.Equal(t, "groq", p.Name())
}

func TestForToolUsesDefault(t *testing.T) {
	cfg := config.DefaultConfig
	cfg.Providers.GroqAPIKey = "test-key"
	cfg.Providers.Default = "groq"
	cfg.Providers.DefaultModel = "llama-3.3-70b-versatile"

	r, err := FromConfig(context.Background(), &cfg)
	require.NoError(t, err)

	p, model, err := r.ForTool(config.ToolGuard)
	require.NoError(t, err)
	assert.Equal(t, "groq", p.Name())
	assert.Equal(t, "llama-3.3-70b-versatile", model)
}

func TestForToolAppliesOverride(t *testing.T) {
	cfg := config.DefaultConfig
	cfg.Providers.GroqAPIKey = "test-key"
	cfg.Providers.OpenAIAPIKey = "test-key"
	cfg.Providers.Default = "groq"
	cfg.Tools.Heal = config.ToolConfig{Provider: "openai", Model: "gpt-4o"}
	cfg.Tools.Discuss = config.ToolConfig{Model: "llama-3.1-8b-instant"}

	r, err := FromConfig(context.Background(), &cfg)
	require.NoError(t, err)

	p, model, err := r.ForTool(config.ToolHeal)
	require.NoError(t, err)
	assert.Equal(t, "openai", p.Name())
	assert.Equal(t, "gpt-4o", model)

	// model-only override keeps the default provider
	p, model, err = r.ForTool(config.ToolDiscuss)
	require.NoError(t, err)
	assert.Equal(t, "groq", p.Name())
	assert.Equal(t, "llama-3.1-8b-instant", model)
}

func TestForToolOverrideToUnconfiguredProvider(t *testing.T) {
	cfg := config.DefaultConfig
	cfg.Providers.GroqAPIKey = "test-key"
	cfg.Providers.Default = "groq"
	cfg.Tools.Guard = config.ToolConfig{Provider: "openai"}

	r, err := FromConfig(context.Background(), &cfg)
	require.NoError(t, err)

	_, _, err = r.ForTool(config.ToolGuard)
	assert.Error(t, err, "override naming a provider without credentials must fail resolution")
}

func TestFromConfigRequiresCredentials(t *testing.T) {
	cfg := config.DefaultConfig

	_, err := FromConfig(context.Background(), &cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no provider credentials")
}
