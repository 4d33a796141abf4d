package app

import (
	"context"
	"os"
	"path/filepath"

	"go.trai.ch/embark/internal/core/domain"
	"go.trai.ch/zerr"
)

// Clean removes the engine cache and, with All, the project's build output.
func (a *App) Clean(ctx context.Context, opts CleanOptions) (err error) {
	_, span := a.begin(ctx, "clean", false)
	defer func() { finish(span, err) }()

	if err := a.cache.Clean(); err != nil {
		return err
	}
	a.logger.Info("removed engine cache")

	if !opts.All {
		return nil
	}
	manifest, err := a.loadManifest(opts.Manifest, "")
	if err != nil {
		return err
	}
	target := filepath.Join(manifest.Root(), domain.TargetDirName)
	if err := os.RemoveAll(target); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to remove build output"), "path", target)
	}
	a.logger.Info("removed " + target)
	return nil
}

// Passthrough hands args to cargo unchanged. The tool's exit code surfaces
// through the returned *domain.ProcessError.
func (a *App) Passthrough(ctx context.Context, args []string) (err error) {
	ctx, span := a.begin(ctx, "cargo", false)
	defer func() { finish(span, err) }()

	cargo := a.toolchain.Cargo
	if cargo == "" {
		cargo = "cargo"
	}
	return a.runner.Run(ctx, domain.Command{
		Stage:  domain.StagePassthrough,
		Name:   cargo,
		Args:   args,
		Stdout: a.stdout,
		Stderr: a.stderr,
	})
}
