package config

import (
	"os"
	"path/filepath"
)

// Tool names used for per-tool provider overrides and audit records
const (
	ToolGuard       = "pp_guard"
	ToolHeal        = "pp_heal"
	ToolSuggestions = "pp_suggestions"
	ToolDiscuss     = "pp_discuss"
	ToolProceed     = "pp_proceed"
)

// DefaultConfig provides default configuration values
var DefaultConfig = Config{
	Framework: "cursor",
	Providers: ProvidersConfig{
		Default:      "anthropic",
		DefaultModel: "claude-3-5-sonnet-20241022",
	},
	Features: FeaturesConfig{
		AutoCastHeal:    true,
		AngerTranslator: true,
	},
	TimeoutSeconds: 30,
	Limits: LimitsConfig{
		MaxHistoryTurns: 10,
		MaxActiveFiles:  20,
	},
	Logging: LoggingConfig{
		Level:   "info",
		Format:  "json",
		LogFile: "", // Empty = logging disabled, set path to enable file logging
	},
	Audit: AuditConfig{
		Enabled:        false,
		TimeoutSeconds: 5,
		Protocols:      []ProtocolConfig{},
	},
}

// GetDefaultConfigDir returns the default configuration directory
func GetDefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".agent-hooks/prompt-paladin"
	}
	return filepath.Join(home, ".agent-hooks/prompt-paladin")
}

// GetDefaultConfigPath returns the default configuration file path
func GetDefaultConfigPath() string {
	return filepath.Join(GetDefaultConfigDir(), "config.yaml")
}
