package processor

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leefowlercu/prompt-paladin/internal/audit"
	"github.com/leefowlercu/prompt-paladin/internal/config"
	"github.com/leefowlercu/prompt-paladin/internal/decision"
	"github.com/leefowlercu/prompt-paladin/internal/paladin"
	"github.com/leefowlercu/prompt-paladin/internal/provider"
)

// queueProvider replays canned responses in order, one per completion
type queueProvider struct {
	responses []string
	err       error
}

func (q *queueProvider) Name() string { return "fake" }

func (q *queueProvider) Complete(_ context.Context, _ *provider.Request) (*provider.Response, error) {
	if q.err != nil {
		return nil, q.err
	}
	if len(q.responses) == 0 {
		return nil, errors.New("no canned response left")
	}
	content := q.responses[0]
	q.responses = q.responses[1:]
	return &provider.Response{Content: content, Model: "fake-model", Provider: "fake"}, nil
}

func (q *queueProvider) ValidateConfig() error { return nil }

func newTestProcessor(t *testing.T, cfg config.Config, p provider.Provider) *Processor {
	t.Helper()

	registry := provider.NewRegistry()
	registry.Register(p)
	cfg.Providers.Default = "fake"

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := paladin.NewService(registry, &cfg, logger)

	return &Processor{
		cfg:            &cfg,
		logger:         logger,
		paladin:        svc,
		decisionEngine: decision.NewEngine(&cfg, svc),
		auditEngine:    audit.NewEngine(&cfg, logger),
	}
}

func runHook(t *testing.T, proc *Processor, input string) map[string]any {
	t.Helper()

	var stdout bytes.Buffer
	err := proc.ProcessHook(context.Background(), strings.NewReader(input), &stdout, "cursor")
	require.NoError(t, err)

	var out map[string]any
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &out), "stdout must carry exactly one JSON object: %s", stdout.String())
	return out
}

func TestProcessHookProceedPassesThrough(t *testing.T) {
	proc := newTestProcessor(t, config.DefaultConfig, &queueProvider{
		responses: []string{`{"verdict": "proceed", "reason": "clear and actionable", "confidence": 0.95}`},
	})

	out := runHook(t, proc, `{"prompt": "refactor the login function in auth.go to use context"}`)

	assert.Equal(t, true, out["continue"])
	assert.NotContains(t, out, "prompt")
	assert.NotContains(t, out, "userMessage")
}

func TestProcessHookInterveneAnnotatesPrompt(t *testing.T) {
	proc := newTestProcessor(t, config.DefaultConfig, &queueProvider{
		responses: []string{`{"verdict": "intervene", "reason": "too vague to act on", "suggestions": ["name the file", "describe the failure"]}`},
	})

	out := runHook(t, proc, `{"prompt": "fix this"}`)

	assert.Equal(t, true, out["continue"])
	require.Contains(t, out, "prompt")

	annotated := out["prompt"].(string)
	assert.Contains(t, annotated, "too vague to act on")
	assert.Contains(t, annotated, "1. name the file")
	assert.True(t, strings.HasSuffix(annotated, "fix this"), "original prompt must survive at the end: %s", annotated)
	assert.Equal(t, "too vague to act on", out["userMessage"])
}

func TestProcessHookHealAutoCast(t *testing.T) {
	cfg := config.DefaultConfig
	cfg.Features.AutoCastHeal = true

	proc := newTestProcessor(t, cfg, &queueProvider{
		responses: []string{
			`{"verdict": "heal", "reason": "vague wording", "confidence": 0.8}`,
			`{"healed_prompt": "please refactor the login function in auth.go", "changes_made": ["named the file"]}`,
		},
	})

	out := runHook(t, proc, `{"prompt": "fix this"}`)

	assert.Equal(t, true, out["continue"])
	assert.Equal(t, "please refactor the login function in auth.go", out["prompt"])
	assert.Contains(t, out["userMessage"], "rewrote")
}

func TestProcessHookProviderFailurePassesThrough(t *testing.T) {
	proc := newTestProcessor(t, config.DefaultConfig, &queueProvider{err: errors.New("connection refused")})

	out := runHook(t, proc, `{"prompt": "fix this"}`)

	assert.Equal(t, true, out["continue"])
	assert.NotContains(t, out, "prompt", "failed evaluation must never touch the prompt")
}

func TestProcessHookMalformedStdinPassesThrough(t *testing.T) {
	proc := newTestProcessor(t, config.DefaultConfig, &queueProvider{})

	out := runHook(t, proc, `{not json`)

	assert.Equal(t, true, out["continue"])
	assert.NotContains(t, out, "prompt")
}

func TestProcessHookMissingPromptFieldPassesThrough(t *testing.T) {
	proc := newTestProcessor(t, config.DefaultConfig, &queueProvider{})

	out := runHook(t, proc, `{"conversation_id": "abc"}`)

	assert.Equal(t, true, out["continue"])
	assert.NotContains(t, out, "prompt")
}

func TestProcessHookUnknownFrameworkPassesThrough(t *testing.T) {
	proc := newTestProcessor(t, config.DefaultConfig, &queueProvider{})

	var stdout bytes.Buffer
	err := proc.ProcessHook(context.Background(), strings.NewReader(`{"prompt": "x"}`), &stdout, "emacs")
	require.NoError(t, err)
	assert.JSONEq(t, `{"continue": true}`, stdout.String())
}

func TestProcessHookAuditEnrichesMessage(t *testing.T) {
	logFile := t.TempDir() + "/audit.log"

	cfg := config.DefaultConfig
	cfg.Audit.Enabled = true
	cfg.Audit.TimeoutSeconds = 5
	cfg.Audit.Protocols = []config.ProtocolConfig{
		{
			Name:     "default",
			Triggers: config.TriggerConfig{OnIntervene: true},
			Strategies: []config.StrategyConfig{
				{Type: "log", Config: map[string]any{"log_file": logFile, "format": "json"}},
			},
		},
	}

	proc := newTestProcessor(t, cfg, &queueProvider{
		responses: []string{`{"verdict": "intervene", "reason": "too vague to act on"}`},
	})
	registerAuditStrategies(proc.auditEngine, proc.cfg, proc.logger)

	out := runHook(t, proc, `{"prompt": "fix this"}`)

	require.Contains(t, out, "userMessage")
	assert.Contains(t, out["userMessage"], "Audit actions taken")
}

func TestSetupLoggerDiscardsWithoutFile(t *testing.T) {
	cfg := config.DefaultConfig
	cfg.Logging.LogFile = ""

	logger := SetupLogger(&cfg)
	require.NotNil(t, logger)
	// must not panic and must not write to stdout
	logger.Info("probe")
}
