package audit

import (
	"github.com/leefowlercu/prompt-paladin/internal/config"
	"github.com/leefowlercu/prompt-paladin/pkg/types"
)

// Protocol represents an audit protocol with triggers and strategies
type Protocol struct {
	Name       string
	Triggers   config.TriggerConfig
	Strategies []config.StrategyConfig
}

// NewProtocol creates a new protocol from configuration
func NewProtocol(cfg config.ProtocolConfig) *Protocol {
	return &Protocol{
		Name:       cfg.Name,
		Triggers:   cfg.Triggers,
		Strategies: cfg.Strategies,
	}
}

// ShouldExecute determines if this protocol's triggers match the verdict.
// A protocol with no enabled triggers never executes.
func (p *Protocol) ShouldExecute(input types.AuditInput) bool {
	switch input.Verdict.Kind {
	case types.VerdictProceed:
		return p.Triggers.OnProceed
	case types.VerdictHeal:
		return p.Triggers.OnHeal
	case types.VerdictIntervene:
		return p.Triggers.OnIntervene
	}

	return false
}
