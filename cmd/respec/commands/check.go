package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Validate the configuration, rule catalog and override table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			workspace, _ := cmd.Flags().GetString("workspace")
			return c.app.Check(cmd.Context(), workspace)
		},
	}
	cmd.Flags().StringP("workspace", "w", ".", "Workspace root holding the configuration")
	return cmd
}
