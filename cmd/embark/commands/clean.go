package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/embark/internal/app"
	"go.trai.ch/embark/internal/core/domain"
)

func (c *CLI) newCleanCmd() *cobra.Command {
	var opts app.CleanOptions
	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Remove cached engine builds",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.app.Clean(cmd.Context(), opts)
		},
	}
	cmd.Flags().StringVarP(&opts.Manifest, "manifest", "m", domain.ManifestFileName, "Path to the project manifest")
	cmd.Flags().BoolVar(&opts.All, "all", false, "Also remove the project's target directory")
	return cmd
}
