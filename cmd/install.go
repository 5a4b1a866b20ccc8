package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/leefowlercu/prompt-paladin/internal/hookcfg"
)

var installCmd = &cobra.Command{
	Use:   "install",
	Short: "Register the hook for the current project in Cursor's hooks.json",
	Long: "Merge a beforeSubmitPrompt entry for the current project into " +
		"~/.cursor/hooks.json. The merge is idempotent and preserves entries " +
		"belonging to other tools and projects.",
	RunE: runInstall,
}

func init() {
	installCmd.Flags().Bool("dry-run", false, "Show what would change without writing")
	installCmd.Flags().Bool("force", false, "Rewrite the entry even when already installed")
	installCmd.Flags().String("project", "", "Project directory to scope the hook to (default: current directory)")
	installCmd.Flags().String("hooks-file", "", "Path to hooks.json (default: ~/.cursor/hooks.json)")
}

func runInstall(cmd *cobra.Command, args []string) error {
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	force, _ := cmd.Flags().GetBool("force")
	project, _ := cmd.Flags().GetString("project")
	hooksFile, _ := cmd.Flags().GetString("hooks-file")

	if project == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("failed to determine current directory; %w", err)
		}
		project = cwd
	}

	executable, err := os.Executable()
	if err != nil {
		return fmt.Errorf("failed to determine executable path; %w", err)
	}

	result, err := hookcfg.Install(hookcfg.InstallOptions{
		HooksPath:  hooksFile,
		ProjectDir: project,
		Command:    executable,
		Args:       []string{"--framework", "cursor"},
		DryRun:     dryRun,
		Force:      force,
	})
	if err != nil {
		return fmt.Errorf("install failed; %w", err)
	}

	prefix := ""
	if dryRun {
		prefix = "[dry-run] "
	}

	switch result.Status {
	case hookcfg.StatusAlreadyInstalled:
		fmt.Printf("%sHook already installed for %s\n", prefix, result.Entry.CWD)
	case hookcfg.StatusUpdated:
		fmt.Printf("%sHook entry updated for %s\n", prefix, result.Entry.CWD)
	case hookcfg.StatusInstalled:
		fmt.Printf("%sHook installed for %s\n", prefix, result.Entry.CWD)
	}

	if result.BackupPath != "" {
		fmt.Printf("Previous hooks.json backed up to %s\n", result.BackupPath)
	}

	return nil
}
