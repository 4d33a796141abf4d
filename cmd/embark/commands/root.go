// Package commands implements the CLI commands for embark.
package commands

import (
	"context"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.trai.ch/embark/internal/app"
	"go.trai.ch/embark/internal/build"
)

// CLI represents the command line interface for embark.
type CLI struct {
	app     *app.App
	rootCmd *cobra.Command
	args    []string
}

// New creates a new CLI instance with the given app.
func New(a *app.App) *CLI {
	rootCmd := &cobra.Command{
		Use:   "embark [command]",
		Short: "Build, run and package applications embedding the flutter engine",
		Long: "embark builds rust applications that embed a prebuilt flutter engine.\n" +
			"Commands it does not know are passed to cargo unchanged.",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	c := &CLI{
		app:     a,
		rootCmd: rootCmd,
		args:    os.Args[1:],
	}

	rootCmd.AddCommand(c.newBuildCmd())
	rootCmd.AddCommand(c.newRunCmd())
	rootCmd.AddCommand(c.newCleanCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// Execute runs the root command with the given context. Unknown commands
// are handed to cargo.
func (c *CLI) Execute(ctx context.Context) error {
	if len(c.args) > 0 && c.isPassthrough(c.args[0]) {
		return c.app.Passthrough(ctx, c.args)
	}
	c.rootCmd.SetArgs(c.args)
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.args = args
}

func (c *CLI) isPassthrough(name string) bool {
	if strings.HasPrefix(name, "-") {
		return false
	}
	switch name {
	case "help", "completion", cobra.ShellCompRequestCmd, cobra.ShellCompNoDescRequestCmd:
		return false
	}
	for _, cmd := range c.rootCmd.Commands() {
		if cmd.Name() == name || cmd.HasAlias(name) {
			return false
		}
	}
	return true
}
