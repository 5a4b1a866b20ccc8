package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// InitConfig initializes the configuration using Viper
func InitConfig(configPath string) error {
	// Load .env file if it exists (fail silently if not found)
	loadEnvFiles()

	if configPath != "" {
		viper.SetConfigFile(configPath)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(GetDefaultConfigDir())
		viper.AddConfigPath(".")
	}

	// Set defaults
	viper.SetDefault("framework", DefaultConfig.Framework)
	viper.SetDefault("providers.default", DefaultConfig.Providers.Default)
	viper.SetDefault("providers.default_model", DefaultConfig.Providers.DefaultModel)
	viper.SetDefault("features.auto_cast_heal", DefaultConfig.Features.AutoCastHeal)
	viper.SetDefault("features.anger_translator", DefaultConfig.Features.AngerTranslator)
	viper.SetDefault("timeout_seconds", DefaultConfig.TimeoutSeconds)
	viper.SetDefault("limits.max_history_turns", DefaultConfig.Limits.MaxHistoryTurns)
	viper.SetDefault("limits.max_active_files", DefaultConfig.Limits.MaxActiveFiles)
	viper.SetDefault("logging.level", DefaultConfig.Logging.Level)
	viper.SetDefault("logging.format", DefaultConfig.Logging.Format)
	viper.SetDefault("logging.log_file", DefaultConfig.Logging.LogFile)
	viper.SetDefault("audit.enabled", DefaultConfig.Audit.Enabled)
	viper.SetDefault("audit.timeout_seconds", DefaultConfig.Audit.TimeoutSeconds)

	// Enable environment variable overrides
	viper.SetEnvPrefix("PROMPT_PALADIN")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Provider credentials use their conventional unprefixed names
	viper.BindEnv("providers.anthropic_api_key", "ANTHROPIC_API_KEY")
	viper.BindEnv("providers.openai_api_key", "OPENAI_API_KEY")
	viper.BindEnv("providers.groq_api_key", "GROQ_API_KEY")
	viper.BindEnv("providers.google_api_key", "GOOGLE_API_KEY")

	// Feature toggles and per-tool overrides keep their short legacy names
	// alongside the prefixed form
	viper.BindEnv("features.auto_cast_heal", "PROMPT_PALADIN_FEATURES_AUTO_CAST_HEAL", "AUTO_CAST_HEAL")
	viper.BindEnv("features.anger_translator", "PROMPT_PALADIN_FEATURES_ANGER_TRANSLATOR", "ANGER_TRANSLATOR")
	viper.BindEnv("timeout_seconds", "PROMPT_PALADIN_TIMEOUT_SECONDS", "HOOK_TIMEOUT_SECS")
	for _, tool := range []string{ToolGuard, ToolHeal, ToolSuggestions, ToolDiscuss} {
		upper := strings.ToUpper(tool)
		viper.BindEnv("tools."+tool+".provider", "PROMPT_PALADIN_TOOLS_"+upper+"_PROVIDER", upper+"_PROVIDER")
		viper.BindEnv("tools."+tool+".model", "PROMPT_PALADIN_TOOLS_"+upper+"_MODEL", upper+"_MODEL")
	}

	// Read config file (it's okay if it doesn't exist)
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("failed to read config; %w", err)
		}
	}

	return nil
}

// GetConfig returns the current configuration
func GetConfig() (*Config, error) {
	var cfg Config

	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config; %w", err)
	}

	return &cfg, nil
}

// ToolOverride returns the per-tool provider/model override for a tool name,
// or the zero value when none is configured
func (c *Config) ToolOverride(tool string) ToolConfig {
	switch tool {
	case ToolGuard:
		return c.Tools.Guard
	case ToolHeal:
		return c.Tools.Heal
	case ToolSuggestions:
		return c.Tools.Suggestions
	case ToolDiscuss:
		return c.Tools.Discuss
	}
	return ToolConfig{}
}

// HasAnyAPIKey reports whether at least one provider credential is configured
func (c *Config) HasAnyAPIKey() bool {
	p := c.Providers
	return p.AnthropicAPIKey != "" || p.OpenAIAPIKey != "" || p.GroqAPIKey != "" || p.GoogleAPIKey != ""
}

// loadEnvFiles loads environment variables from .env files
// It tries multiple locations and fails silently if files don't exist
func loadEnvFiles() {
	locations := []string{
		".env", // Current directory
		filepath.Join(GetDefaultConfigDir(), ".env"),
	}

	// Also try .env.local for local overrides
	localLocations := []string{
		".env.local",
		filepath.Join(GetDefaultConfigDir(), ".env.local"),
	}

	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			_ = godotenv.Load(location) // Fail silently
		}
	}

	for _, location := range localLocations {
		if _, err := os.Stat(location); err == nil {
			_ = godotenv.Load(location)
		}
	}
}
