package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/leefowlercu/prompt-paladin/internal/config"
	"github.com/leefowlercu/prompt-paladin/internal/processor"
)

var rootCmd = &cobra.Command{
	Use:   "prompt-paladin",
	Short: "Prompt quality gatekeeper for AI coding agents",
	Long: "\nprompt-paladin intercepts prompts before they reach an AI coding agent, " +
		"evaluates them for clarity, completeness, and tone, and heals or annotates " +
		"the ones that need work.\n\n" +
		"It reads hook data from stdin as JSON and outputs decisions to stdout as JSON. " +
		"Logging goes to a file only, keeping stdout clean for hook framework communication.",
	PersistentPreRunE: runInit,
	RunE:              runHook,
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Path to configuration file (default: ~/.agent-hooks/prompt-paladin/config.yaml)")
	rootCmd.Flags().String("framework", config.DefaultConfig.Framework, "Hook framework to use (e.g., 'cursor')")
	rootCmd.Flags().String("log-level", config.DefaultConfig.Logging.Level, "Logging level (debug, info, warn, error)")
	rootCmd.Flags().String("log-format", config.DefaultConfig.Logging.Format, "Logging format (json, text)")

	// Bind flags to viper
	viper.BindPFlag("framework", rootCmd.Flags().Lookup("framework"))
	viper.BindPFlag("logging.level", rootCmd.Flags().Lookup("log-level"))
	viper.BindPFlag("logging.format", rootCmd.Flags().Lookup("log-format"))

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(installCmd)
	rootCmd.AddCommand(uninstallCmd)
	rootCmd.AddCommand(doctorCmd)

	// Enable --version flag on root command
	rootCmd.Version = version
	rootCmd.SetVersionTemplate("prompt-paladin version {{.Version}}\n")
}

func runInit(cmd *cobra.Command, args []string) error {
	// Get custom config path if provided
	configPath, _ := cmd.Flags().GetString("config")

	err := config.InitConfig(configPath)
	if err != nil {
		return fmt.Errorf("failed to initialize configuration; %w", err)
	}

	return nil
}

func runHook(cmd *cobra.Command, args []string) error {
	framework := viper.GetString("framework")

	return processor.Process(os.Stdin, os.Stdout, framework)
}

func Execute() error {
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true

	err := rootCmd.Execute()

	if err != nil {
		cmd, _, _ := rootCmd.Find(os.Args[1:])
		if cmd == nil {
			cmd = rootCmd
		}

		fmt.Printf("Error: %v\n", err)
		if !cmd.SilenceUsage {
			fmt.Printf("\n")
			cmd.SetOut(os.Stdout)
			cmd.Usage()
		}

		return err
	}

	return nil
}
