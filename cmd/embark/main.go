// Package main is the entry point for the embark CLI.
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/grindlemire/graft"
	"go.trai.ch/embark/cmd/embark/commands"
	"go.trai.ch/embark/internal/app"
	"go.trai.ch/embark/internal/core/domain"
	_ "go.trai.ch/embark/internal/wiring"
)

func main() {
	os.Exit(run())
}

func run(opts ...func(*app.App)) int {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	components, _, err := graft.ExecuteFor[*app.Components](ctx)
	if err != nil {
		// Logger is not available yet if initialization failed
		_, _ = os.Stderr.WriteString("Error: " + err.Error() + "\n")
		return domain.ExitFailure
	}

	for _, opt := range opts {
		opt(components.App)
	}

	cli := commands.New(components.App)
	if err := cli.Execute(ctx); err != nil {
		// cargo already reported its own failure.
		var procErr *domain.ProcessError
		if !errors.As(err, &procErr) || procErr.Stage != domain.StagePassthrough {
			components.Logger.Error(err)
		}
		return domain.ExitCode(err)
	}
	return domain.ExitOK
}
