package app

import (
	"context"
	"os"
	"path/filepath"
	"strconv"

	"go.trai.ch/embark/internal/core/domain"
	"go.trai.ch/zerr"
)

// Run builds the project, launches the binary with an observatory port and
// attaches the SDK's hot-reload client to it. With Drive the integration
// driver runs instead and the application is stopped once it finishes.
func (a *App) Run(ctx context.Context, opts RunOptions) (err error) {
	ctx, span := a.begin(ctx, "run", opts.Quiet)
	defer func() { finish(span, err) }()

	set, req, err := a.build(ctx, opts.BuildOptions)
	if err != nil {
		return err
	}

	entry, err := a.table.Lookup(set.Platform)
	if err != nil {
		return err
	}
	if entry.Family == domain.FamilyAndroid {
		a.logger.Warn("running on android devices is not supported, the build output is in " + set.OutDir)
		return nil
	}
	bins := set.Bins()
	if len(bins) == 0 {
		return zerr.With(zerr.Wrap(domain.ErrBuildOutputMissing, "nothing to run"), "platform", set.Platform.String())
	}

	port := a.port()
	span.SetAttribute("observatory_port", port)
	env := map[string]string{
		domain.EnvAssetDir:        filepath.Join(set.OutDir, domain.AssetDirName),
		domain.EnvAOTSnapshot:     filepath.Join(set.OutDir, domain.SnapshotFileName),
		domain.EnvObservatoryPort: strconv.Itoa(port),
	}
	if v := entry.Family.LibraryPathVar(); v != "" {
		env[v] = set.OutDir
		if existing := a.getenv(v); existing != "" {
			env[v] += string(os.PathListSeparator) + existing
		}
	}

	appCtx, stop := context.WithCancel(ctx)
	defer stop()

	proc, err := a.runner.Start(appCtx, domain.Command{
		Stage: domain.StageRun,
		Name:  bins[0].Path,
		Dir:   set.RootDir,
		Env:   env,
	})
	if err != nil {
		return err
	}

	if opts.Drive {
		driveErr := a.drive(ctx, set.RootDir, req.Entrypoint, port)
		stop()
		if waitErr := proc.Wait(); waitErr != nil {
			a.logger.Debug("application stopped: " + waitErr.Error())
		}
		return driveErr
	}

	if !opts.NoAttach {
		if err := a.attach(ctx, set.RootDir, port); err != nil {
			a.logger.Error(err)
		}
	}

	return proc.Wait()
}

func (a *App) attach(ctx context.Context, root string, port int) error {
	if a.toolchain.Flutter == "" {
		return zerr.With(zerr.Wrap(domain.ErrToolNotFound, "cannot attach to the running application"), "tool", "flutter")
	}
	return a.runner.Run(ctx, domain.Command{
		Stage: domain.StageAttach,
		Name:  a.toolchain.Flutter,
		Args: []string{
			"attach",
			"--device-id=flutter-tester",
			"--debug-uri=http://127.0.0.1:" + strconv.Itoa(port),
		},
		Dir: root,
	})
}

func (a *App) drive(ctx context.Context, root, entrypoint string, port int) error {
	if a.toolchain.Flutter == "" {
		return zerr.With(zerr.Wrap(domain.ErrToolNotFound, "cannot drive the running application"), "tool", "flutter")
	}
	return a.runner.Run(ctx, domain.Command{
		Stage: domain.StageDrive,
		Name:  a.toolchain.Flutter,
		Args: []string{
			"drive",
			"--use-existing-app=http://127.0.0.1:" + strconv.Itoa(port) + "/",
			"--target=" + entrypoint,
		},
		Dir: root,
	})
}
