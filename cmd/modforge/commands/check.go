package commands

import (
	"github.com/modforge/modforge/internal/app"
	"github.com/spf13/cobra"
)

func (c *CLI) newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Diagnose circular dependencies and restriction clashes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			manifestPath, _ := cmd.Flags().GetString("manifest")

			return c.app.Check(cmd.Context(), app.CheckOptions{
				ManifestPath: manifestPath,
			})
		},
	}

	cmd.Flags().StringP("manifest", "m", "", "Path to the component manifest (discovered upward from cwd when empty)")

	return cmd
}
