package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/leefowlercu/prompt-paladin/internal/hookcfg"
)

var uninstallCmd = &cobra.Command{
	Use:   "uninstall",
	Short: "Remove the hook for the current project from Cursor's hooks.json",
	RunE:  runUninstall,
}

func init() {
	uninstallCmd.Flags().Bool("dry-run", false, "Show what would change without writing")
	uninstallCmd.Flags().Bool("keep-empty", false, "Keep empty hook lists instead of pruning them")
	uninstallCmd.Flags().String("project", "", "Project directory the hook is scoped to (default: current directory)")
	uninstallCmd.Flags().String("hooks-file", "", "Path to hooks.json (default: ~/.cursor/hooks.json)")
}

func runUninstall(cmd *cobra.Command, args []string) error {
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	keepEmpty, _ := cmd.Flags().GetBool("keep-empty")
	project, _ := cmd.Flags().GetString("project")
	hooksFile, _ := cmd.Flags().GetString("hooks-file")

	if project == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("failed to determine current directory; %w", err)
		}
		project = cwd
	}

	result, err := hookcfg.Uninstall(hookcfg.UninstallOptions{
		HooksPath:  hooksFile,
		ProjectDir: project,
		DryRun:     dryRun,
		KeepEmpty:  keepEmpty,
	})
	if err != nil {
		return fmt.Errorf("uninstall failed; %w", err)
	}

	prefix := ""
	if dryRun {
		prefix = "[dry-run] "
	}

	switch result.Status {
	case hookcfg.StatusNotInstalled:
		fmt.Printf("%sNo hook installed for %s\n", prefix, project)
	case hookcfg.StatusUninstalled:
		fmt.Printf("%sHook removed for %s\n", prefix, project)
	}

	if result.BackupPath != "" {
		fmt.Printf("Previous hooks.json backed up to %s\n", result.BackupPath)
	}

	return nil
}
