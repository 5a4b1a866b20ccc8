// Package audit records evaluation outcomes through configurable
// protocols. A protocol fires on chosen verdict kinds and runs its
// strategies concurrently; auditing is strictly best-effort and never
// alters the decision already made.
package audit

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/leefowlercu/prompt-paladin/internal/config"
	"github.com/leefowlercu/prompt-paladin/pkg/types"
)

// AuditStrategy defines the interface that all audit strategies must implement
type AuditStrategy interface {
	// Execute performs the audit action and returns the result
	Execute(ctx context.Context, input types.AuditInput) types.AuditResult

	// GetType returns the type identifier for this strategy (e.g., "log")
	GetType() string

	// Validate checks if the strategy configuration is valid
	Validate() error
}

// Engine orchestrates the execution of audit protocols
type Engine struct {
	cfg      *config.Config
	logger   *slog.Logger
	registry *Registry
}

// NewEngine creates a new audit engine
func NewEngine(cfg *config.Config, logger *slog.Logger) *Engine {
	return &Engine{
		cfg:      cfg,
		logger:   logger,
		registry: NewRegistry(),
	}
}

// RegisterStrategy registers a strategy with the engine
func (e *Engine) RegisterStrategy(strategy AuditStrategy) error {
	return e.registry.RegisterStrategy(strategy)
}

// Execute runs the first audit protocol whose triggers match the verdict
func (e *Engine) Execute(ctx context.Context, input types.AuditInput) types.AuditResults {
	if !e.cfg.Audit.Enabled {
		e.logger.Debug("audit disabled, skipping")
		return types.AuditResults{Executed: false}
	}

	var protocol *Protocol
	for _, protocolCfg := range e.cfg.Audit.Protocols {
		p := NewProtocol(protocolCfg)
		if p.ShouldExecute(input) {
			protocol = p
			e.logger.Info("matched audit protocol", "protocol", p.Name)
			break
		}
	}

	if protocol == nil {
		e.logger.Debug("no audit protocol matched triggers")
		return types.AuditResults{Executed: false}
	}

	return e.executeProtocol(ctx, protocol, input)
}

// executeProtocol executes a single protocol with concurrent strategy execution
func (e *Engine) executeProtocol(ctx context.Context, protocol *Protocol, input types.AuditInput) types.AuditResults {
	startTime := time.Now()

	// Apply timeout if configured
	timeout := time.Duration(e.cfg.Audit.TimeoutSeconds) * time.Second
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	strategies := protocol.Strategies
	if len(strategies) == 0 {
		e.logger.Warn("protocol has no strategies", "protocol", protocol.Name)
		return types.AuditResults{
			Executed:     true,
			Results:      []types.AuditResult{},
			ProtocolName: protocol.Name,
		}
	}

	// Channel to collect results
	resultChan := make(chan types.AuditResult, len(strategies))
	var wg sync.WaitGroup

	// Launch all strategies concurrently
	for _, strategyCfg := range strategies {
		strategy, err := e.registry.GetStrategy(strategyCfg.Type)
		if err != nil {
			e.logger.Warn("unknown strategy type", "type", strategyCfg.Type, "error", err)
			resultChan <- types.AuditResult{
				StrategyType: strategyCfg.Type,
				Success:      false,
				Message:      fmt.Sprintf("Unknown strategy type: %s", strategyCfg.Type),
				Error:        err,
			}
			continue
		}

		wg.Add(1)
		go e.executeStrategy(ctx, &wg, strategy, input, resultChan)
	}

	// Wait for all strategies to complete
	go func() {
		wg.Wait()
		close(resultChan)
	}()

	results := e.collectResults(resultChan)
	totalDuration := time.Since(startTime)

	e.logger.Info("audit protocol completed",
		"protocol", protocol.Name,
		"strategies", len(results),
		"duration", totalDuration)

	return types.AuditResults{
		Executed:      true,
		Results:       results,
		TotalDuration: totalDuration,
		ProtocolName:  protocol.Name,
	}
}

// executeStrategy runs a single strategy in a goroutine with panic recovery
func (e *Engine) executeStrategy(ctx context.Context, wg *sync.WaitGroup, strategy AuditStrategy, input types.AuditInput, resultChan chan<- types.AuditResult) {
	defer wg.Done()

	// Recover from panics to prevent bringing down the entire audit
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("strategy panicked", "type", strategy.GetType(), "panic", r)
			resultChan <- types.AuditResult{
				StrategyType: strategy.GetType(),
				Success:      false,
				Message:      "Strategy panicked during execution",
				Error:        fmt.Errorf("panic: %v", r),
			}
		}
	}()

	strategyType := strategy.GetType()
	e.logger.Debug("executing strategy", "type", strategyType)

	startTime := time.Now()
	result := strategy.Execute(ctx, input)
	result.Duration = time.Since(startTime)
	result.StrategyType = strategyType

	e.logger.Debug("strategy completed",
		"type", strategyType,
		"success", result.Success,
		"duration", result.Duration)

	// Try to send result, but don't block if context is cancelled
	select {
	case resultChan <- result:
	case <-ctx.Done():
		e.logger.Warn("context cancelled while sending result", "type", strategyType)
	}
}

// collectResults gathers all results from the channel
func (e *Engine) collectResults(resultChan <-chan types.AuditResult) []types.AuditResult {
	results := make([]types.AuditResult, 0)
	for result := range resultChan {
		results = append(results, result)
	}
	return results
}
