package commands

import (
	"time"

	"github.com/spf13/cobra"

	"go.trai.ch/respec/internal/app"
)

func (c *CLI) newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [packages...]",
		Short: "Sanitize the workspace descriptors",
		Long: "Run corrects every descriptor listed in the workspace manifest. " +
			"Naming packages restricts the batch to those manifest entries.",
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			workspace, _ := cmd.Flags().GetString("workspace")
			osRelease, _ := cmd.Flags().GetString("os-release")
			arch, _ := cmd.Flags().GetString("arch")
			jobs, _ := cmd.Flags().GetInt("jobs")
			timeout, _ := cmd.Flags().GetDuration("timeout")
			dryRun, _ := cmd.Flags().GetBool("dry-run")
			keepTemplate, _ := cmd.Flags().GetBool("keep-template")
			archive, _ := cmd.Flags().GetBool("archive")
			watch, _ := cmd.Flags().GetBool("watch")
			outputMode, _ := cmd.Flags().GetString("output")

			return c.app.Run(cmd.Context(), app.RunOptions{
				Workspace:    workspace,
				OSRelease:    osRelease,
				Arch:         arch,
				Jobs:         jobs,
				Timeout:      timeout,
				Packages:     args,
				Output:       outputMode,
				DryRun:       dryRun,
				KeepTemplate: keepTemplate,
				Archive:      archive,
				Watch:        watch,
			})
		},
	}
	cmd.Flags().StringP("workspace", "w", ".", "Workspace root holding the manifest and repos/ tree")
	cmd.Flags().String("os-release", "", "Target OS release string, e.g. rhel9")
	cmd.Flags().String("arch", "", "Target architecture, e.g. x86_64")
	cmd.Flags().IntP("jobs", "j", 0, "Worker limit (defaults to the CPU count)")
	cmd.Flags().Duration("timeout", 0*time.Second, "Per-package correction timeout")
	cmd.Flags().BoolP("dry-run", "n", false, "Run the pipeline but write nothing")
	cmd.Flags().Bool("keep-template", false, "Keep the template descriptor after emission")
	cmd.Flags().Bool("archive", false, "Emit .orig.tar.gz source archives")
	cmd.Flags().Bool("watch", false, "Keep running and re-sanitize descriptors as they change")
	cmd.Flags().String("output", "auto", "Output mode: auto, interactive, plain or ci")
	return cmd
}
