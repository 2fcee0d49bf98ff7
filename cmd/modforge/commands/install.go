package commands

import (
	"github.com/modforge/modforge/internal/app"
	"github.com/spf13/cobra"
)

func (c *CLI) newInstallCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "install",
		Short: "Install the selected components onto the destination tree",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			manifestPath, _ := cmd.Flags().GetString("manifest")
			source, _ := cmd.Flags().GetString("source")
			dest, _ := cmd.Flags().GetString("dest")
			sessionName, _ := cmd.Flags().GetString("session-name")
			keep, _ := cmd.Flags().GetBool("keep-checkpoints")
			ignoreErrors, _ := cmd.Flags().GetBool("ignore-errors")
			attemptFixes, _ := cmd.Flags().GetBool("attempt-fixes")
			rollbackOnError, _ := cmd.Flags().GetBool("rollback-on-error")
			yes, _ := cmd.Flags().GetBool("yes")
			outputMode, _ := cmd.Flags().GetString("output-mode")

			return c.app.Install(cmd.Context(), app.InstallOptions{
				ManifestPath:       manifestPath,
				Source:             source,
				Destination:        dest,
				SessionName:        sessionName,
				KeepCheckpoints:    keep,
				IgnoreErrors:       ignoreErrors,
				AttemptFixes:       attemptFixes,
				RollbackOnError:    rollbackOnError,
				AcknowledgeNotices: yes,
				OutputMode:         outputMode,
			})
		},
	}

	cmd.Flags().StringP("manifest", "m", "", "Path to the component manifest (discovered upward from cwd when empty)")
	cmd.Flags().StringP("source", "s", ".", "Root of the component payload files")
	cmd.Flags().StringP("dest", "d", "", "Destination game file tree")
	cmd.Flags().String("session-name", "", "Optional name recorded on the installation session")
	cmd.Flags().Bool("keep-checkpoints", false, "Keep filesystem snapshots after a successful run")
	cmd.Flags().Bool("ignore-errors", false, "Best-effort mode: collect resolution errors instead of stopping")
	cmd.Flags().Bool("attempt-fixes", false, "Regenerate ids of duplicate components instead of failing")
	cmd.Flags().Bool("rollback-on-error", false, "Restore the baseline checkpoint when a component fails")
	cmd.Flags().BoolP("yes", "y", false, "Acknowledge component notices without prompting")
	cmd.Flags().StringP("output-mode", "o", "linear", "Progress output: linear or rich")

	_ = cmd.MarkFlagRequired("dest")

	return cmd
}
