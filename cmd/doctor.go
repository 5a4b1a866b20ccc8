package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/leefowlercu/prompt-paladin/internal/config"
	"github.com/leefowlercu/prompt-paladin/internal/hookcfg"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check configuration and installation health",
	RunE:  runDoctor,
}

func runDoctor(cmd *cobra.Command, args []string) error {
	cfg, err := config.GetConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration; %w", err)
	}

	healthy := true
	report := func(ok bool, label, detail string) {
		mark := "✓"
		if !ok {
			mark = "✗"
			healthy = false
		}
		fmt.Printf("%s %s", mark, label)
		if detail != "" {
			fmt.Printf(": %s", detail)
		}
		fmt.Println()
	}

	report(true, "Configuration loaded", fmt.Sprintf("framework %s, default provider %s", cfg.Framework, cfg.Providers.Default))

	keys := map[string]string{
		"anthropic": cfg.Providers.AnthropicAPIKey,
		"openai":    cfg.Providers.OpenAIAPIKey,
		"groq":      cfg.Providers.GroqAPIKey,
		"google":    cfg.Providers.GoogleAPIKey,
	}

	report(cfg.HasAnyAPIKey(), "Provider credentials",
		fmt.Sprintf("%d of %d providers configured", countConfigured(keys), len(keys)))
	report(keys[cfg.Providers.Default] != "", "Default provider credential",
		fmt.Sprintf("%s key %s", cfg.Providers.Default, presence(keys[cfg.Providers.Default])))

	if cfg.Logging.LogFile != "" {
		report(true, "Logging", fmt.Sprintf("%s (%s)", cfg.Logging.LogFile, cfg.Logging.Format))
	} else {
		report(true, "Logging", "disabled (no log_file configured)")
	}

	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to determine current directory; %w", err)
	}

	installed, err := hookcfg.Installed("", cwd)
	if err != nil {
		report(false, "Hook installation", err.Error())
	} else if installed {
		report(true, "Hook installation", fmt.Sprintf("registered for %s", cwd))
	} else {
		report(false, "Hook installation", "not installed for this project (run 'prompt-paladin install')")
	}

	if !healthy {
		return fmt.Errorf("one or more checks failed")
	}

	fmt.Println("\nAll checks passed.")
	return nil
}

func countConfigured(keys map[string]string) int {
	n := 0
	for _, v := range keys {
		if v != "" {
			n++
		}
	}
	return n
}

func presence(key string) string {
	if key != "" {
		return "present"
	}
	return "missing"
}
