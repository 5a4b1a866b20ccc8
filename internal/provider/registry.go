package provider

import (
	"context"
	"fmt"
	"sync"

	"github.com/leefowlercu/prompt-paladin/internal/config"
)

// Registry manages the configured provider instances and resolves which
// backend and model each tool should use
type Registry struct {
	mu sync.RWMutex

	providers    map[string]Provider
	defaultName  string
	defaultModel string
	overrides    map[string]config.ToolConfig
}

// NewRegistry creates an empty provider registry
func NewRegistry() *Registry {
	return &Registry{
		providers: make(map[string]Provider),
		overrides: make(map[string]config.ToolConfig),
	}
}

// FromConfig builds a registry containing an adapter for every provider
// with a configured credential. Providers that fail to initialize are
// skipped; at least one must succeed.
func FromConfig(ctx context.Context, cfg *config.Config) (*Registry, error) {
	r := NewRegistry()
	r.defaultName = cfg.Providers.Default
	r.defaultModel = cfg.Providers.DefaultModel

	for _, tool := range []string{config.ToolGuard, config.ToolHeal, config.ToolSuggestions, config.ToolDiscuss} {
		if override := cfg.ToolOverride(tool); override != (config.ToolConfig{}) {
			r.overrides[tool] = override
		}
	}

	// The global default model only applies to the default provider;
	// every other adapter keeps its own default
	modelFor := func(name string) string {
		if name == cfg.Providers.Default {
			return cfg.Providers.DefaultModel
		}
		return ""
	}

	if key := cfg.Providers.AnthropicAPIKey; key != "" {
		p, err := NewAnthropicProvider(key, modelFor("anthropic"))
		if err != nil {
			return nil, fmt.Errorf("failed to create anthropic provider; %w", err)
		}
		r.Register(p)
	}

	if key := cfg.Providers.OpenAIAPIKey; key != "" {
		p, err := NewOpenAIProvider(key, modelFor("openai"))
		if err != nil {
			return nil, fmt.Errorf("failed to create openai provider; %w", err)
		}
		r.Register(p)
	}

	if key := cfg.Providers.GroqAPIKey; key != "" {
		p, err := NewGroqProvider(key, modelFor("groq"))
		if err != nil {
			return nil, fmt.Errorf("failed to create groq provider; %w", err)
		}
		r.Register(p)
	}

	if key := cfg.Providers.GoogleAPIKey; key != "" {
		p, err := NewGoogleProvider(ctx, key, modelFor("google"))
		if err != nil {
			return nil, fmt.Errorf("failed to create google provider; %w", err)
		}
		r.Register(p)
	}

	if len(r.Available()) == 0 {
		return nil, fmt.Errorf("no provider credentials configured; set at least one of " +
			"ANTHROPIC_API_KEY, OPENAI_API_KEY, GROQ_API_KEY, GOOGLE_API_KEY")
	}

	return r, nil
}

// Register adds a provider to the registry. The first registered provider
// becomes the default when no default name is configured.
func (r *Registry) Register(p Provider) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.providers[p.Name()] = p
	if r.defaultName == "" {
		r.defaultName = p.Name()
	}
}

// Get retrieves a registered provider by name
func (r *Registry) Get(name string) (Provider, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.providers[name]
	if !ok {
		return nil, fmt.Errorf("provider %q not registered", name)
	}

	return p, nil
}

// Default returns the default provider
func (r *Registry) Default() (Provider, error) {
	r.mu.RLock()
	name := r.defaultName
	r.mu.RUnlock()

	return r.Get(name)
}

// ForTool resolves the provider and model for a tool name, applying the
// per-tool override when present and falling back to the default
// provider/model otherwise
func (r *Registry) ForTool(tool string) (Provider, string, error) {
	r.mu.RLock()
	override, hasOverride := r.overrides[tool]
	defaultName := r.defaultName
	defaultModel := r.defaultModel
	r.mu.RUnlock()

	name := defaultName
	model := defaultModel

	if hasOverride {
		if override.Provider != "" {
			name = override.Provider
			// A provider switch without an explicit model uses the
			// adapter's own default rather than the global one
			model = ""
		}
		if override.Model != "" {
			model = override.Model
		}
	}

	p, err := r.Get(name)
	if err != nil {
		return nil, "", fmt.Errorf("failed to resolve provider for %s; %w", tool, err)
	}

	return p, model, nil
}

// Available returns all registered provider names
func (r *Registry) Available() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.providers))
	for name := range r.providers {
		names = append(names, name)
	}

	return names
}
