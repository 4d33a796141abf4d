package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/embark/internal/app"
)

func (c *CLI) newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [flags] [-- native build args]",
		Short: "Build the project, launch it and attach for hot reload",
		Args:  cobra.ArbitraryArgs,
	}
	flags := addBuildFlags(cmd)
	noAttach := cmd.Flags().Bool("no-attach", false, "Launch without attaching flutter")
	drive := cmd.Flags().Bool("drive", false, "Run the flutter integration driver against the launched app")
	cmd.MarkFlagsMutuallyExclusive("no-attach", "drive")
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		opts, err := flags.options(cmd, args)
		if err != nil {
			return err
		}
		return c.app.Run(cmd.Context(), app.RunOptions{BuildOptions: opts, NoAttach: *noAttach, Drive: *drive})
	}
	return cmd
}
