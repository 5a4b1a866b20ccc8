package paladin

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leefowlercu/prompt-paladin/internal/config"
	"github.com/leefowlercu/prompt-paladin/internal/provider"
	"github.com/leefowlercu/prompt-paladin/pkg/types"
)

type fakeProvider struct {
	content string
	err     error
	lastReq *provider.Request
}

func (f *fakeProvider) Name() string { return "fake" }

func (f *fakeProvider) Complete(_ context.Context, req *provider.Request) (*provider.Response, error) {
	f.lastReq = req
	if f.err != nil {
		return nil, f.err
	}
	return &provider.Response{Content: f.content, Model: "fake-model", Provider: "fake"}, nil
}

func (f *fakeProvider) ValidateConfig() error { return nil }

func newTestService(t *testing.T, fake *fakeProvider) *Service {
	t.Helper()

	registry := provider.NewRegistry()
	registry.Register(fake)

	cfg := config.DefaultConfig
	cfg.Providers.Default = "fake"

	return NewService(registry, &cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestGuardClassifiesVerdicts(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		wantKind types.VerdictKind
	}{
		{
			name:     "proceed verdict",
			content:  `{"verdict": "proceed", "reason": "clear and actionable", "confidence": 0.95}`,
			wantKind: types.VerdictProceed,
		},
		{
			name:     "heal verdict",
			content:  `{"verdict": "heal", "reason": "vague wording", "confidence": 0.8, "suggestions": ["name the file"]}`,
			wantKind: types.VerdictHeal,
		},
		{
			name:     "intervene verdict",
			content:  `{"verdict": "intervene", "reason": "too vague", "issues": ["no target named"]}`,
			wantKind: types.VerdictIntervene,
		},
		{
			name:     "code fenced response",
			content:  "```json\n{\"verdict\": \"proceed\", \"reason\": \"fine\"}\n```",
			wantKind: types.VerdictProceed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestService(t, &fakeProvider{content: tt.content})

			verdict := svc.Guard(context.Background(), "refactor the login function", types.PromptContext{})
			assert.Equal(t, tt.wantKind, verdict.Kind)
			assert.NotEqual(t, FallbackReason, verdict.Reason)
		})
	}
}

func TestGuardFailsOpen(t *testing.T) {
	tests := []struct {
		name string
		fake *fakeProvider
	}{
		{name: "provider error", fake: &fakeProvider{err: errors.New("connection refused")}},
		{name: "malformed json", fake: &fakeProvider{content: "sorry, I cannot answer that"}},
		{name: "unknown verdict", fake: &fakeProvider{content: `{"verdict": "escalate", "reason": "x"}`}},
		{name: "empty response", fake: &fakeProvider{content: ""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestService(t, tt.fake)

			verdict := svc.Guard(context.Background(), "fix this", types.PromptContext{})
			assert.Equal(t, types.VerdictProceed, verdict.Kind)
			assert.Equal(t, FallbackReason, verdict.Reason)
		})
	}
}

func TestGuardClassifiesEmptyPromptNormally(t *testing.T) {
	fake := &fakeProvider{content: `{"verdict": "intervene", "reason": "prompt is empty"}`}
	svc := newTestService(t, fake)

	verdict := svc.Guard(context.Background(), "", types.PromptContext{})
	require.NotNil(t, fake.lastReq)
	assert.Equal(t, types.VerdictIntervene, verdict.Kind)
}

func TestHealModes(t *testing.T) {
	content := `{"healed_prompt": "please refactor the auth module", "changes_made": ["removed hostility"]}`

	tests := []struct {
		name            string
		prompt          string
		mode            types.HealMode
		angerTranslator bool
		wantMode        types.HealMode
	}{
		{
			name:            "explicit clarity",
			prompt:          "fix this",
			mode:            types.HealModeClarity,
			angerTranslator: true,
			wantMode:        types.HealModeClarity,
		},
		{
			name:            "explicit anger",
			prompt:          "fix this",
			mode:            types.HealModeAnger,
			angerTranslator: true,
			wantMode:        types.HealModeAnger,
		},
		{
			name:            "auto resolves hostile to anger",
			prompt:          "this stupid code is garbage",
			mode:            types.HealModeAuto,
			angerTranslator: true,
			wantMode:        types.HealModeAnger,
		},
		{
			name:            "auto resolves calm to clarity",
			prompt:          "make it better",
			mode:            types.HealModeAuto,
			angerTranslator: true,
			wantMode:        types.HealModeClarity,
		},
		{
			name:            "auto ignores hostility when translator disabled",
			prompt:          "this stupid code is garbage",
			mode:            types.HealModeAuto,
			angerTranslator: false,
			wantMode:        types.HealModeClarity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestService(t, &fakeProvider{content: content})
			svc.cfg.Features.AngerTranslator = tt.angerTranslator

			result := svc.Heal(context.Background(), tt.prompt, types.PromptContext{}, tt.mode)
			assert.Equal(t, tt.wantMode, result.Mode)
			assert.Equal(t, "please refactor the auth module", result.HealedPrompt)
			assert.NotEqual(t, types.HealModeAuto, result.Mode)
		})
	}
}

func TestHealFailureKeepsOriginal(t *testing.T) {
	tests := []struct {
		name string
		fake *fakeProvider
	}{
		{name: "provider error", fake: &fakeProvider{err: errors.New("timeout")}},
		{name: "malformed json", fake: &fakeProvider{content: "not json"}},
		{name: "missing healed prompt", fake: &fakeProvider{content: `{"changes_made": ["x"]}`}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestService(t, tt.fake)

			original := "fix this broken mess"
			result := svc.Heal(context.Background(), original, types.PromptContext{}, types.HealModeClarity)
			assert.Equal(t, original, result.HealedPrompt)
			assert.Empty(t, result.ChangesMade)
		})
	}
}

func TestSuggestionsFallsBackToOriginal(t *testing.T) {
	svc := newTestService(t, &fakeProvider{err: errors.New("unreachable")})

	original := "add a button"
	suggestions := svc.Suggestions(context.Background(), original, types.PromptContext{})
	require.Len(t, suggestions, 1)
	assert.Equal(t, original, suggestions[0].Prompt)
}

func TestSuggestionsParsesAlternatives(t *testing.T) {
	content := `{"suggestions": [
		{"prompt": "add a submit button to the contact form", "rationale": "names the target"},
		{"prompt": "add a blue submit button that validates email", "rationale": "adds behavior"}
	]}`
	svc := newTestService(t, &fakeProvider{content: content})

	suggestions := svc.Suggestions(context.Background(), "add a button", types.PromptContext{})
	require.Len(t, suggestions, 2)
	assert.Equal(t, "add a submit button to the contact form", suggestions[0].Prompt)
	assert.NotEmpty(t, suggestions[1].Rationale)
}

func TestDiscussFailureReturnsEmpty(t *testing.T) {
	svc := newTestService(t, &fakeProvider{content: "no json here"})

	questions := svc.Discuss(context.Background(), "help", types.PromptContext{})
	assert.NotNil(t, questions)
	assert.Empty(t, questions)
}

func TestDiscussParsesQuestions(t *testing.T) {
	content := `{"questions": ["Which file needs the change?", "What should happen instead?"], "context": "missing target"}`
	svc := newTestService(t, &fakeProvider{content: content})

	questions := svc.Discuss(context.Background(), "help", types.PromptContext{})
	require.Len(t, questions, 2)
	assert.Equal(t, "Which file needs the change?", questions[0])
}

func TestProceedIsPure(t *testing.T) {
	svc := newTestService(t, &fakeProvider{err: errors.New("must not be called")})

	verdict := svc.Proceed()
	assert.Equal(t, types.VerdictProceed, verdict.Kind)
	assert.Equal(t, "user override", verdict.Reason)
	assert.Nil(t, verdict.Suggestions)
}

func TestLooksHostile(t *testing.T) {
	assert.True(t, looksHostile("this STUPID code"))
	assert.True(t, looksHostile("I hate this bug"))
	assert.False(t, looksHostile("please refactor the login flow"))
	assert.False(t, looksHostile(""))
}
