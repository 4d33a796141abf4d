package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newBuildCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build [flags] [-- native build args]",
		Short: "Build the project and optionally package it",
		Args:  cobra.ArbitraryArgs,
	}
	flags := addBuildFlags(cmd)
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		opts, err := flags.options(cmd, args)
		if err != nil {
			return err
		}
		_, err = c.app.Build(cmd.Context(), opts)
		return err
	}
	return cmd
}
