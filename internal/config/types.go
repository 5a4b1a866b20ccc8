package config

// Config represents the application configuration
type Config struct {
	Framework      string          `mapstructure:"framework" yaml:"framework"`
	Providers      ProvidersConfig `mapstructure:"providers" yaml:"providers"`
	Tools          ToolsConfig     `mapstructure:"tools" yaml:"tools"`
	Features       FeaturesConfig  `mapstructure:"features" yaml:"features"`
	TimeoutSeconds int             `mapstructure:"timeout_seconds" yaml:"timeout_seconds"`
	Limits         LimitsConfig    `mapstructure:"limits" yaml:"limits"`
	Logging        LoggingConfig   `mapstructure:"logging" yaml:"logging"`
	Audit          AuditConfig     `mapstructure:"audit" yaml:"audit"`
}

// ProvidersConfig contains LLM provider selection and credentials.
// API keys are environment-only and never written to the config file.
type ProvidersConfig struct {
	Default      string `mapstructure:"default" yaml:"default"`
	DefaultModel string `mapstructure:"default_model" yaml:"default_model"`

	AnthropicAPIKey string `mapstructure:"anthropic_api_key" yaml:"-"`
	OpenAIAPIKey    string `mapstructure:"openai_api_key" yaml:"-"`
	GroqAPIKey      string `mapstructure:"groq_api_key" yaml:"-"`
	GoogleAPIKey    string `mapstructure:"google_api_key" yaml:"-"`
}

// ToolConfig is a per-tool provider/model override
type ToolConfig struct {
	Provider string `mapstructure:"provider" yaml:"provider"`
	Model    string `mapstructure:"model" yaml:"model"`
}

// ToolsConfig contains per-tool overrides for the paladin operations
type ToolsConfig struct {
	Guard       ToolConfig `mapstructure:"pp_guard" yaml:"pp_guard"`
	Heal        ToolConfig `mapstructure:"pp_heal" yaml:"pp_heal"`
	Suggestions ToolConfig `mapstructure:"pp_suggestions" yaml:"pp_suggestions"`
	Discuss     ToolConfig `mapstructure:"pp_discuss" yaml:"pp_discuss"`
}

// FeaturesConfig contains feature toggles
type FeaturesConfig struct {
	// AutoCastHeal rewrites "heal" prompts automatically instead of
	// annotating them with feedback
	AutoCastHeal bool `mapstructure:"auto_cast_heal" yaml:"auto_cast_heal"`

	// AngerTranslator enables the anger healing mode for hostile prompts
	AngerTranslator bool `mapstructure:"anger_translator" yaml:"anger_translator"`
}

// LimitsConfig bounds the context rendered into LLM templates
type LimitsConfig struct {
	MaxHistoryTurns int `mapstructure:"max_history_turns" yaml:"max_history_turns"`
	MaxActiveFiles  int `mapstructure:"max_active_files" yaml:"max_active_files"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level   string `mapstructure:"level" yaml:"level"`
	Format  string `mapstructure:"format" yaml:"format"`
	LogFile string `mapstructure:"log_file" yaml:"log_file"`
}

// AuditConfig contains configuration for the evaluation audit trail
type AuditConfig struct {
	Enabled        bool             `mapstructure:"enabled" yaml:"enabled"`
	TimeoutSeconds int              `mapstructure:"timeout_seconds" yaml:"timeout_seconds"`
	Protocols      []ProtocolConfig `mapstructure:"protocols" yaml:"protocols"`
}

// ProtocolConfig defines an audit protocol: which verdicts trigger it and
// which strategies it runs
type ProtocolConfig struct {
	Name       string           `mapstructure:"name" yaml:"name"`
	Triggers   TriggerConfig    `mapstructure:"triggers" yaml:"triggers"`
	Strategies []StrategyConfig `mapstructure:"strategies" yaml:"strategies"`
}

// TriggerConfig selects which verdict kinds a protocol fires on
type TriggerConfig struct {
	OnProceed   bool `mapstructure:"on_proceed" yaml:"on_proceed"`
	OnHeal      bool `mapstructure:"on_heal" yaml:"on_heal"`
	OnIntervene bool `mapstructure:"on_intervene" yaml:"on_intervene"`
}

// StrategyConfig defines a single audit strategy instance
type StrategyConfig struct {
	Type   string         `mapstructure:"type" yaml:"type"`
	Config map[string]any `mapstructure:"config" yaml:"config"`
}
