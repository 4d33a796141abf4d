package app

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"go.trai.ch/embark/internal/core/domain"
	"go.trai.ch/embark/internal/core/ports"
	"go.trai.ch/zerr"
)

// Build loads the manifest, resolves the engines, runs the build pipeline
// and packages the result when a format is requested.
func (a *App) Build(ctx context.Context, opts BuildOptions) (set *domain.ArtifactSet, err error) {
	ctx, span := a.begin(ctx, "build", opts.Quiet)
	defer func() { finish(span, err) }()

	set, _, err = a.build(ctx, opts)
	return set, err
}

func (a *App) build(ctx context.Context, opts BuildOptions) (*domain.ArtifactSet, domain.BuildRequest, error) {
	manifest, err := a.loadManifest(opts.Manifest, opts.Package)
	if err != nil {
		return nil, domain.BuildRequest{}, err
	}

	var format domain.Format
	if opts.Format != "" {
		if format, err = domain.ParseFormat(opts.Format); err != nil {
			return nil, domain.BuildRequest{}, err
		}
	}

	req, err := a.request(ctx, manifest, opts)
	if err != nil {
		return nil, domain.BuildRequest{}, err
	}

	set, err := a.pipeline.Run(ctx, req)
	if err != nil {
		return nil, req, err
	}

	if format == "" {
		return set, req, nil
	}

	sign := opts.Profile == domain.Release
	if opts.Sign != nil {
		sign = *opts.Sign
	}
	spec := domain.PackageSpec{
		Format: format,
		Sign:   sign,
		Config: manifest.FormatConfig(format),
	}
	if err := a.packager.Package(ctx, set, spec); err != nil {
		return nil, req, err
	}
	return set, req, nil
}

// loadManifest loads the manifest at path, or the manifest of the named
// workspace member when pkg is set.
func (a *App) loadManifest(path, pkg string) (*domain.Manifest, error) {
	if path == "" {
		path = domain.ManifestFileName
	}
	manifest, err := a.loader.Load(path)
	if err != nil {
		return nil, err
	}
	if pkg == "" || pkg == manifest.Name {
		return manifest, nil
	}
	if !manifest.HasMember(pkg) {
		return nil, zerr.With(zerr.Wrap(domain.ErrPackageNotMember, "cannot select package"), "package", pkg)
	}
	return a.loader.Load(filepath.Join(manifest.Root(), pkg))
}

// request resolves everything a pipeline run needs.
func (a *App) request(ctx context.Context, manifest *domain.Manifest, opts BuildOptions) (domain.BuildRequest, error) {
	host, err := a.resolver.Host(ctx)
	if err != nil {
		return domain.BuildRequest{}, err
	}
	target, err := a.resolver.Target(ctx, opts.Target)
	if err != nil {
		return domain.BuildRequest{}, err
	}

	version, err := a.engineVersion(manifest)
	if err != nil {
		return domain.BuildRequest{}, err
	}

	entrypoint := manifest.Entrypoint
	if opts.Entrypoint != "" {
		entrypoint = opts.Entrypoint
	}

	req := domain.BuildRequest{
		Name:         manifest.Name,
		Version:      manifest.Version,
		RootDir:      manifest.Root(),
		Entrypoint:   entrypoint,
		Host:         host,
		Target:       target,
		Profile:      opts.Profile,
		Toolchain:    a.toolchain,
		NoBundle:     opts.NoBundle,
		NoAOT:        opts.NoAOT,
		Quiet:        opts.Quiet,
		NativeArgs:   append(append([]string{}, manifest.NativeArgs...), opts.NativeArgs...),
		StageTimeout: opts.StageTimeout,
	}

	dctx := ctx
	if opts.DownloadTimeout > 0 {
		var cancel context.CancelFunc
		dctx, cancel = context.WithTimeout(ctx, opts.DownloadTimeout)
		defer cancel()
	}

	resolveOpts := ports.ResolveOptions{Mirror: manifest.EngineMirror}
	targetHandle := domain.RuntimeHandle{Version: version, Platform: target, Profile: opts.Profile}
	resolveOpts.Observer = a.progress(targetHandle)
	if req.TargetEngine, err = a.cache.Resolve(dctx, targetHandle, resolveOpts); err != nil {
		return domain.BuildRequest{}, err
	}

	// The host engine provides dart for the kernel compiler.
	if req.RunsAOT() {
		if host == target {
			req.HostEngine = req.TargetEngine
		} else {
			hostHandle := domain.RuntimeHandle{Version: version, Platform: host, Profile: opts.Profile}
			resolveOpts.Observer = a.progress(hostHandle)
			if req.HostEngine, err = a.cache.Resolve(dctx, hostHandle, resolveOpts); err != nil {
				return domain.BuildRequest{}, err
			}
		}
	}

	return req, nil
}

// engineVersion picks the engine revision: environment, then manifest pin,
// then the revision the SDK was built against.
func (a *App) engineVersion(manifest *domain.Manifest) (string, error) {
	if v := strings.TrimSpace(a.getenv(domain.EnvEngineVersion)); v != "" {
		return v, nil
	}
	if manifest.EngineVersion != "" {
		return manifest.EngineVersion, nil
	}
	if a.toolchain.EngineVersion != "" {
		return a.toolchain.EngineVersion, nil
	}
	return "", zerr.With(zerr.Wrap(domain.ErrEngineVersionUnknown, "pin engine.version in the manifest or install the flutter SDK"), "env", domain.EnvEngineVersion)
}

// progress logs download progress in quarter steps.
func (a *App) progress(h domain.RuntimeHandle) func(domain.Progress) {
	next := int64(0)
	return func(p domain.Progress) {
		if p.Total <= 0 {
			return
		}
		percent := p.Done * 100 / p.Total
		if percent < next {
			return
		}
		a.logger.Info("downloading engine " + h.String() + ": " +
			humanize.Bytes(uint64(p.Done)) + " / " + humanize.Bytes(uint64(p.Total)))
		next = percent - percent%25 + 25
	}
}
