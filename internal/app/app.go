// Package app implements the application layer for embark.
package app

import (
	"context"
	"io"
	"log/slog"
	"math/rand/v2"
	"os"
	"time"

	"github.com/google/uuid"
	"go.trai.ch/embark/internal/core/domain"
	"go.trai.ch/embark/internal/core/ports"
)

// BuildOptions configure a build invocation.
type BuildOptions struct {
	// Manifest is the manifest file or the directory holding it.
	Manifest string
	// Package selects a workspace member by name.
	Package string
	// Target is an explicit target triple. Empty means the host.
	Target  string
	Profile domain.BuildProfile
	Format  string
	// Sign overrides the default of signing release builds only.
	Sign       *bool
	NoBundle   bool
	NoAOT      bool
	Entrypoint string
	Quiet      bool
	// DownloadTimeout bounds engine resolution. Zero means no limit.
	DownloadTimeout time.Duration
	StageTimeout    time.Duration
	NativeArgs      []string
}

// RunOptions configure a run invocation.
type RunOptions struct {
	BuildOptions
	NoAttach bool
	// Drive runs the integration driver against the app instead of attaching.
	Drive bool
}

// CleanOptions configure a clean invocation.
type CleanOptions struct {
	Manifest string
	// All also removes the project's build output.
	All bool
}

// App represents the main application logic.
type App struct {
	loader    ports.ManifestLoader
	toolchain domain.Toolchain
	resolver  ports.PlatformResolver
	cache     ports.RuntimeCache
	pipeline  ports.BuildPipeline
	packager  ports.Packager
	runner    ports.ProcessRunner
	tracer    ports.Tracer
	logger    ports.Logger
	table     domain.PlatformTable

	getenv func(string) string
	port   func() int
	stdout io.Writer
	stderr io.Writer
}

// New creates a new App instance.
func New(
	loader ports.ManifestLoader,
	tc domain.Toolchain,
	resolver ports.PlatformResolver,
	cache ports.RuntimeCache,
	pipeline ports.BuildPipeline,
	packager ports.Packager,
	runner ports.ProcessRunner,
	tracer ports.Tracer,
	logger ports.Logger,
) *App {
	return &App{
		loader:    loader,
		toolchain: tc,
		resolver:  resolver,
		cache:     cache,
		pipeline:  pipeline,
		packager:  packager,
		runner:    runner,
		tracer:    tracer,
		logger:    logger,
		table:     domain.DefaultPlatforms(),
		getenv:    os.Getenv,
		port:      randomPort,
		stdout:    os.Stdout,
		stderr:    os.Stderr,
	}
}

// WithEnv replaces the environment lookup used for engine overrides.
func (a *App) WithEnv(getenv func(string) string) *App {
	a.getenv = getenv
	return a
}

// WithOutput sets the writers passthrough commands inherit.
func (a *App) WithOutput(stdout, stderr io.Writer) *App {
	a.stdout = stdout
	a.stderr = stderr
	return a
}

// WithTable replaces the platform table.
func (a *App) WithTable(table domain.PlatformTable) *App {
	a.table = table
	return a
}

// WithPort replaces the observatory port source.
func (a *App) WithPort(port func() int) *App {
	a.port = port
	return a
}

func randomPort() int {
	return domain.AttachPortMin + rand.IntN(domain.AttachPortMax-domain.AttachPortMin) //nolint:gosec // not security sensitive
}

// begin opens the root span of an invocation and tags it with a fresh id.
func (a *App) begin(ctx context.Context, command string, quiet bool) (context.Context, ports.Span) {
	if quiet {
		a.logger.SetLevel(slog.LevelWarn)
	}
	id := uuid.NewString()
	a.logger.Debug("invocation " + id)
	return a.tracer.Start(ctx, command,
		ports.WithAttribute("invocation_id", id),
		ports.WithAttribute("command", command),
	)
}

// finish records err on span and ends it.
func finish(span ports.Span, err error) {
	if err != nil {
		span.RecordError(err)
	}
	span.End()
}
