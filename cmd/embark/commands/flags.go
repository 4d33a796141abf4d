package commands

import (
	"time"

	"github.com/spf13/cobra"
	"go.trai.ch/embark/internal/app"
	"go.trai.ch/embark/internal/core/domain"
	"go.trai.ch/zerr"
)

// buildFlags are shared by build and run.
type buildFlags struct {
	manifest        string
	target          string
	pkg             string
	release         bool
	profile         bool
	format          string
	sign            bool
	noSign          bool
	noBundle        bool
	noAOT           bool
	entrypoint      string
	quiet           bool
	downloadTimeout time.Duration
	stageTimeout    time.Duration
}

func addBuildFlags(cmd *cobra.Command) *buildFlags {
	f := &buildFlags{}
	flags := cmd.Flags()
	flags.StringVarP(&f.manifest, "manifest", "m", domain.ManifestFileName, "Path to the project manifest")
	flags.StringVar(&f.target, "target", "", "Target triple to build for (default: host)")
	flags.StringVarP(&f.pkg, "package", "p", "", "Workspace member to build")
	flags.BoolVar(&f.release, "release", false, "Build optimized artifacts with an AOT snapshot")
	flags.BoolVar(&f.profile, "profile", false, "Build optimized artifacts with profiling enabled")
	flags.StringVar(&f.format, "format", "", "Package the build (appimage, apk, archive, dmg, lipo, nsis)")
	flags.BoolVar(&f.sign, "sign", false, "Sign the package (default: release builds only)")
	flags.BoolVar(&f.noSign, "no-sign", false, "Do not sign the package")
	flags.BoolVar(&f.noBundle, "no-bundle", false, "Skip building the asset bundle")
	flags.BoolVar(&f.noAOT, "no-aot", false, "Skip the kernel compile and snapshot stages")
	flags.StringVar(&f.entrypoint, "entrypoint", "", "Dart entrypoint (default from manifest)")
	flags.BoolVarP(&f.quiet, "quiet", "q", false, "Only print warnings and errors")
	flags.DurationVar(&f.downloadTimeout, "download-timeout", 0, "Limit engine downloads (0 means no limit)")
	flags.DurationVar(&f.stageTimeout, "stage-timeout", 0, "Limit each build stage (0 means no limit)")
	cmd.MarkFlagsMutuallyExclusive("release", "profile")
	cmd.MarkFlagsMutuallyExclusive("sign", "no-sign")
	return f
}

// options converts parsed flags into build options. Positional arguments
// are only accepted after "--" and go to the native build.
func (f *buildFlags) options(cmd *cobra.Command, args []string) (app.BuildOptions, error) {
	dash := cmd.ArgsLenAtDash()
	if dash < 0 {
		dash = len(args)
	}
	if dash > 0 {
		return app.BuildOptions{}, zerr.With(zerr.New("unexpected argument, pass native build arguments after --"), "argument", args[0])
	}

	opts := app.BuildOptions{
		Manifest:        f.manifest,
		Package:         f.pkg,
		Target:          f.target,
		Profile:         domain.Debug,
		Format:          f.format,
		NoBundle:        f.noBundle,
		NoAOT:           f.noAOT,
		Entrypoint:      f.entrypoint,
		Quiet:           f.quiet,
		DownloadTimeout: f.downloadTimeout,
		StageTimeout:    f.stageTimeout,
		NativeArgs:      args[dash:],
	}
	switch {
	case f.release:
		opts.Profile = domain.Release
	case f.profile:
		opts.Profile = domain.Profile
	}
	switch {
	case f.sign:
		opts.Sign = &f.sign
	case f.noSign:
		sign := false
		opts.Sign = &sign
	}
	return opts, nil
}
