package commands

import (
	"github.com/modforge/modforge/internal/app"
	"github.com/spf13/cobra"
)

func (c *CLI) newSessionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sessions",
		Short: "Inspect and roll back installation sessions",
	}

	cmd.AddCommand(c.newSessionsListCmd())
	cmd.AddCommand(c.newSessionsRollbackCmd())

	return cmd
}

func (c *CLI) newSessionsListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List installation sessions recorded for a destination",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			dest, _ := cmd.Flags().GetString("dest")

			return c.app.Sessions(cmd.Context(), app.SessionsOptions{
				Destination: dest,
			})
		},
	}

	cmd.Flags().StringP("dest", "d", "", "Destination game file tree")
	_ = cmd.MarkFlagRequired("dest")

	return cmd
}

func (c *CLI) newSessionsRollbackCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rollback <session-id>",
		Short: "Restore a destination to a session checkpoint",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dest, _ := cmd.Flags().GetString("dest")
			checkpointID, _ := cmd.Flags().GetString("checkpoint")
			latest, _ := cmd.Flags().GetBool("latest")

			return c.app.Rollback(cmd.Context(), app.RollbackOptions{
				Destination:  dest,
				SessionID:    args[0],
				CheckpointID: checkpointID,
				Latest:       latest,
			})
		},
	}

	cmd.Flags().StringP("dest", "d", "", "Destination game file tree")
	cmd.Flags().String("checkpoint", "", "Checkpoint id to restore (session baseline when empty)")
	cmd.Flags().Bool("latest", false, "Restore the most recent checkpoint of the session")
	cmd.MarkFlagsMutuallyExclusive("checkpoint", "latest")
	_ = cmd.MarkFlagRequired("dest")

	return cmd
}
