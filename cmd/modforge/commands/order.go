package commands

import (
	"github.com/modforge/modforge/internal/app"
	"github.com/spf13/cobra"
)

func (c *CLI) newOrderCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "order",
		Short: "Resolve and print the installation order without installing",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			manifestPath, _ := cmd.Flags().GetString("manifest")
			ignoreErrors, _ := cmd.Flags().GetBool("ignore-errors")
			bake, _ := cmd.Flags().GetBool("bake")
			clear, _ := cmd.Flags().GetBool("clear")

			return c.app.Order(cmd.Context(), app.OrderOptions{
				ManifestPath: manifestPath,
				IgnoreErrors: ignoreErrors,
				Bake:         bake,
				Clear:        clear,
			})
		},
	}

	cmd.Flags().StringP("manifest", "m", "", "Path to the component manifest (discovered upward from cwd when empty)")
	cmd.Flags().Bool("ignore-errors", false, "Best-effort mode: collect resolution errors instead of stopping")
	cmd.Flags().Bool("bake", false, "Bake the resolved order into explicit constraints and verify the round trip")
	cmd.Flags().Bool("clear", false, "Drop all ordering constraints before resolving")

	cmd.MarkFlagsMutuallyExclusive("bake", "clear")

	return cmd
}
