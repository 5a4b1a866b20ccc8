// Package processor orchestrates a single hook invocation: parse stdin,
// classify the prompt, route the verdict, audit, and write the decision
// to stdout. Stdout carries exactly one JSON object; every internal
// failure degrades to a pass-through decision instead of an error exit.
package processor

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/leefowlercu/prompt-paladin/internal/audit"
	"github.com/leefowlercu/prompt-paladin/internal/audit/strategies"
	"github.com/leefowlercu/prompt-paladin/internal/config"
	"github.com/leefowlercu/prompt-paladin/internal/decision"
	"github.com/leefowlercu/prompt-paladin/internal/framework"
	"github.com/leefowlercu/prompt-paladin/internal/framework/cursor"
	"github.com/leefowlercu/prompt-paladin/internal/paladin"
	"github.com/leefowlercu/prompt-paladin/internal/provider"
	"github.com/leefowlercu/prompt-paladin/pkg/types"
)

// Processor orchestrates the entire hook processing flow
type Processor struct {
	cfg            *config.Config
	logger         *slog.Logger
	paladin        *paladin.Service
	decisionEngine *decision.Engine
	auditEngine    *audit.Engine
}

// NewProcessor creates a new processor instance. Provider construction
// can fail when no credentials are configured; callers on the hook path
// must treat that as a pass-through, not a fatal error.
func NewProcessor(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Processor, error) {
	providers, err := provider.FromConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to build provider registry; %w", err)
	}

	svc := paladin.NewService(providers, cfg, logger)

	auditEngine := audit.NewEngine(cfg, logger)
	registerAuditStrategies(auditEngine, cfg, logger)

	return &Processor{
		cfg:            cfg,
		logger:         logger,
		paladin:        svc,
		decisionEngine: decision.NewEngine(cfg, svc),
		auditEngine:    auditEngine,
	}, nil
}

// registerAuditStrategies registers all strategies the configured
// protocols reference
func registerAuditStrategies(engine *audit.Engine, cfg *config.Config, logger *slog.Logger) {
	for _, protocol := range cfg.Audit.Protocols {
		for _, strategyCfg := range protocol.Strategies {
			switch strategyCfg.Type {
			case "log":
				logStrategy, err := strategies.NewLogStrategy(strategyCfg)
				if err != nil {
					logger.Warn("failed to create log strategy", "error", err)
					continue
				}
				if err := engine.RegisterStrategy(logStrategy); err != nil {
					logger.Warn("failed to register log strategy", "error", err)
				}
			default:
				logger.Warn("unknown strategy type", "type", strategyCfg.Type)
			}
		}
	}
}

// Process is the main entry point that reads from stdin and writes to stdout
func Process(stdin io.Reader, stdout io.Writer, frameworkName string) error {
	cfg, err := config.GetConfig()
	if err != nil {
		// Without config there is no logger either; pass through silently
		return writePassThrough(stdout)
	}

	logger := SetupLogger(cfg)

	ctx := context.Background()
	proc, err := NewProcessor(ctx, cfg, logger)
	if err != nil {
		logger.Error("processor setup failed, passing prompt through", "error", err)
		return writePassThrough(stdout)
	}

	return proc.ProcessHook(ctx, stdin, stdout, frameworkName)
}

// ProcessHook processes a single hook invocation
func (p *Processor) ProcessHook(ctx context.Context, stdin io.Reader, stdout io.Writer, frameworkName string) error {
	p.logger.Info("processing hook request", "framework", frameworkName)

	// Register frameworks
	framework.RegisterFramework("cursor", cursor.NewFramework())

	fw, err := framework.GetFramework(frameworkName)
	if err != nil {
		p.logger.Error("unknown framework, passing prompt through",
			"framework", frameworkName,
			"available", framework.ListFrameworks())
		return writePassThrough(stdout)
	}

	// Read stdin into buffer so we can still parse it
	rawInput, err := io.ReadAll(stdin)
	if err != nil {
		p.logger.Error("failed to read stdin", "error", err)
		return writePassThrough(stdout)
	}

	hookInput, err := fw.ParseInput(bytes.NewReader(rawInput))
	if err != nil {
		p.logger.Error("failed to parse input, passing prompt through", "error", err)
		return writePassThrough(stdout)
	}

	p.logger.Info("parsed hook input",
		"framework", hookInput.Framework,
		"hook_type", hookInput.HookType)

	// Get the appropriate handler - use a type-safe approach
	var handler framework.HookHandler

	switch f := fw.(type) {
	case *cursor.Framework:
		handler, err = f.GetHandler(hookInput)
		if err != nil {
			p.logger.Error("no handler for hook, passing prompt through", "error", err)
			return writePassThrough(stdout)
		}
	default:
		p.logger.Error("unsupported framework type, passing prompt through", "type", fmt.Sprintf("%T", fw))
		return writePassThrough(stdout)
	}

	p.logger.Debug("using handler", "type", handler.GetType())

	prompt, pctx, err := handler.ExtractPrompt(ctx, hookInput)
	if err != nil {
		p.logger.Error("failed to extract prompt, passing through", "error", err)
		return writePassThrough(stdout)
	}

	// Bound the whole evaluation; a slow provider must not stall the IDE
	timeout := time.Duration(p.cfg.TimeoutSeconds) * time.Second
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	verdict := p.paladin.Guard(ctx, prompt, pctx)

	p.logger.Info("prompt classified",
		"verdict", string(verdict.Kind),
		"confidence", verdict.Confidence)

	finalDecision := p.decisionEngine.Evaluate(ctx, verdict, prompt, pctx)

	p.logger.Info("decision made",
		"continue", finalDecision.Continue,
		"rewritten", finalDecision.Prompt != nil)

	auditInput := types.AuditInput{
		Prompt:    prompt,
		Verdict:   verdict,
		Decision:  finalDecision,
		HookInput: hookInput,
		Timestamp: time.Now(),
		Framework: frameworkName,
	}

	auditResults := p.auditEngine.Execute(ctx, auditInput)
	if auditResults.Executed {
		p.logger.Info("audit executed",
			"protocol", auditResults.ProtocolName,
			"strategies", len(auditResults.Results),
			"duration", auditResults.TotalDuration)

		decision.EnrichWithAudit(&finalDecision, auditResults)
	}

	output, err := fw.FormatOutput(finalDecision, hookInput)
	if err != nil {
		p.logger.Error("failed to format output, passing through", "error", err)
		return writePassThrough(stdout)
	}

	if _, err := stdout.Write(output); err != nil {
		return fmt.Errorf("failed to write output; %w", err)
	}

	// Add newline for cleaner output
	if _, err := stdout.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline; %w", err)
	}

	p.logger.Info("hook processing completed successfully")

	return nil
}

// writePassThrough emits the neutral decision that lets the submission
// continue untouched
func writePassThrough(stdout io.Writer) error {
	if _, err := stdout.Write([]byte(`{"continue":true}` + "\n")); err != nil {
		return fmt.Errorf("failed to write output; %w", err)
	}
	return nil
}

// SetupLogger creates and configures the logger based on configuration.
// Logs are written to file only (not stderr) to avoid interfering with
// hook framework IO.
func SetupLogger(cfg *config.Config) *slog.Logger {
	var level slog.Level
	switch cfg.Logging.Level {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	// Determine output writer - file only, no stderr
	var output io.Writer

	if cfg.Logging.LogFile != "" {
		logFile, err := openLogFile(cfg.Logging.LogFile)
		if err != nil {
			// Critical error during startup - write to stderr and use discard
			fmt.Fprintf(os.Stderr, "Failed to open log file %s: %v\n", cfg.Logging.LogFile, err)
			output = io.Discard
		} else {
			output = logFile
		}
	} else {
		// No log file configured - disable logging
		output = io.Discard
	}

	var handler slog.Handler
	if cfg.Logging.Format == "json" {
		handler = slog.NewJSONHandler(output, opts)
	} else {
		handler = slog.NewTextHandler(output, opts)
	}

	return slog.New(handler)
}

// openLogFile opens or creates a log file for writing
func openLogFile(path string) (*os.File, error) {
	// Expand ~ to home directory if present
	if len(path) > 0 && path[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory; %w", err)
		}
		path = filepath.Join(home, path[1:])
	}

	// Create parent directory if it doesn't exist
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory; %w", err)
	}

	// Open file in append mode, create if doesn't exist
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file; %w", err)
	}

	return file, nil
}
