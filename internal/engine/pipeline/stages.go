package pipeline

import (
	"context"
	"errors"
	"io/fs"
	"maps"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"go.trai.ch/embark/internal/core/domain"
	"go.trai.ch/zerr"
)

// bundle packs the application assets with the SDK's asset bundler.
func (p *Pipeline) bundle(ctx context.Context, state *runState) error {
	tc := state.req.Toolchain
	if tc.Flutter == "" {
		return toolNotFound("flutter", domain.StageBundle)
	}

	args := []string{
		"build", "bundle",
		"--" + state.req.Profile.Name(),
		"--track-widget-creation",
		"--asset-dir", filepath.Join(state.outDir, domain.AssetDirName),
		"--depfile", filepath.Join(state.outDir, domain.DepFileName),
		"--target", state.req.Entrypoint,
	}
	if err := p.runner.Run(ctx, state.command(domain.StageBundle, tc.Flutter, args...)); err != nil {
		return err
	}

	state.bundled = true
	return nil
}

// intermediateCompile runs the frontend server with the host engine's dart
// to produce the kernel file consumed by the snapshot generator.
func (p *Pipeline) intermediateCompile(ctx context.Context, state *runState) error {
	sdk := state.req.Toolchain.FlutterRoot
	if sdk == "" {
		return toolNotFound("flutter", domain.StageIntermediateCompile)
	}

	engineDir := filepath.Dir(state.req.HostEngine)
	dart, ok := probe(engineDir, domain.DartCandidates)
	if !ok {
		return zerr.With(toolNotFound("dart", domain.StageIntermediateCompile), "engine_dir", engineDir)
	}

	artifacts := filepath.Join(sdk, "bin", "cache", "artifacts", "engine")
	patchedSDK := "flutter_patched_sdk_product"
	if state.req.Profile == domain.Profile {
		patchedSDK = "flutter_patched_sdk"
	}

	args := []string{
		filepath.Join(artifacts, state.host.Family.SDKArtifactDir(), "frontend_server.dart.snapshot"),
		"--sdk-root", filepath.Join(artifacts, "common", patchedSDK) + string(filepath.Separator),
		"--target=flutter",
		"--aot",
		"--tfa",
		"-Ddart.vm.product=" + strconv.FormatBool(state.req.Profile == domain.Release),
		"--packages", ".packages",
		"--output-dill", filepath.Join(state.outDir, domain.KernelFileName),
		state.req.Entrypoint,
	}
	return p.runner.Run(ctx, state.command(domain.StageIntermediateCompile, dart, args...))
}

// snapshot compiles the kernel file into an AOT ELF snapshot for the target.
func (p *Pipeline) snapshot(ctx context.Context, state *runState) error {
	kernel := filepath.Join(state.outDir, domain.KernelFileName)
	if _, err := os.Stat(kernel); err != nil {
		return zerr.With(zerr.Wrap(domain.ErrKernelMissing, "cannot generate snapshot"), "path", kernel)
	}

	engineDir := filepath.Dir(state.req.TargetEngine)
	candidates := state.target.Family.SnapshotCandidates()
	for i, c := range candidates {
		candidates[i] = filepath.FromSlash(c)
	}
	genSnapshot, ok := probe(engineDir, candidates)
	if !ok {
		err := zerr.With(zerr.Wrap(domain.ErrSnapshotToolNotFound, "cannot generate snapshot"), "engine_dir", engineDir)
		return zerr.With(err, "candidates", strings.Join(candidates, ", "))
	}

	snapshotPath := filepath.Join(state.outDir, domain.SnapshotFileName)
	args := []string{
		"--causal_async_stacks",
		"--deterministic",
		"--snapshot_kind=app-aot-elf",
		"--elf=" + snapshotPath,
		"--strip",
		kernel,
	}
	if err := p.runner.Run(ctx, state.command(domain.StageSnapshot, genSnapshot, args...)); err != nil {
		return err
	}

	state.snapshot = true
	return nil
}

// nativeBuild compiles the crate for the target, linking against the engine directory.
func (p *Pipeline) nativeBuild(ctx context.Context, state *runState) error {
	tc := state.req.Toolchain
	if tc.Cargo == "" {
		return toolNotFound("cargo", domain.StageNativeBuild)
	}

	args := []string{"build"}
	if state.req.Profile.Optimized() {
		args = append(args, "--release")
	}
	args = append(args,
		"--target", state.req.Target.String(),
		"--target-dir", filepath.Join(state.req.RootDir, domain.TargetDirName),
	)
	args = append(args, state.req.NativeArgs...)

	engineDir := filepath.Dir(state.req.TargetEngine)
	rustflags := "-Clink-arg=-L" + engineDir
	if state.req.Profile == domain.Debug && state.target.Family.IsHost() && state.target.Family != domain.FamilyWindows {
		rustflags += " -Clink-arg=-Wl,-rpath," + engineDir
	}

	cmd := state.command(domain.StageNativeBuild, tc.Cargo, args...)
	cmd.Env = map[string]string{domain.EnvRustFlags: rustflags}
	if state.target.Family == domain.FamilyAndroid {
		if tc.AndroidNDK == "" {
			return zerr.With(toolNotFound("android-ndk", domain.StageNativeBuild), "env", domain.EnvAndroidNDK)
		}
		maps.Copy(cmd.Env, domain.NDKEnv(tc.AndroidNDK, state.host.Family, state.req.Target))
	}
	return p.runner.Run(ctx, cmd)
}

// assemble collects the build outputs into an artifact set. The engine
// libraries are copied next to the binary so the output directory is self-contained.
func (p *Pipeline) assemble(_ context.Context, state *runState) error {
	req := state.req
	set := domain.NewArtifactSet(req.Name, req.Version, req.Target, req.Profile, req.RootDir, state.outDir)

	if state.target.Family == domain.FamilyAndroid {
		lib := "lib" + strings.ReplaceAll(req.Name, "-", "_") + ".so"
		if err := addOutput(set.AddLib, state.outDir, lib); err != nil {
			return err
		}
	} else {
		if err := addOutput(set.AddBin, state.outDir, state.target.Family.BinaryName(req.Name)); err != nil {
			return err
		}
	}

	engineDir := filepath.Dir(req.TargetEngine)
	for _, lib := range state.target.Libraries() {
		src := filepath.Join(engineDir, lib)
		dst := filepath.Join(state.outDir, lib)
		if _, err := os.Stat(src); err != nil {
			if lib == state.target.Library {
				return zerr.With(zerr.Wrap(err, "engine library is missing"), "path", src)
			}
			continue
		}
		if filepath.Clean(src) != filepath.Clean(dst) {
			if err := p.copier.CopyFile(src, dst); err != nil {
				return err
			}
		}
		if err := set.AddLib(lib, dst); err != nil {
			return err
		}
	}

	if state.snapshot {
		if err := set.AddLib(domain.SnapshotFileName, filepath.Join(state.outDir, domain.SnapshotFileName)); err != nil {
			return err
		}
	}

	assets := filepath.Join(state.outDir, domain.AssetDirName)
	if info, err := os.Stat(assets); err == nil && info.IsDir() {
		if !state.bundled {
			p.logger.Debug("reusing asset bundle from an earlier build: " + assets)
		}
		if err := set.AddAsset(domain.AssetDirName, assets); err != nil {
			return err
		}
	} else if state.bundled {
		return zerr.With(zerr.Wrap(domain.ErrBuildOutputMissing, "asset bundle was not written"), "path", assets)
	}

	p.logger.Debug("assembled " + strconv.Itoa(len(set.Bins())) + " binaries, " +
		strconv.Itoa(len(set.Libs())) + " libraries, " + strconv.Itoa(len(set.Assets())) + " assets")
	state.set = set
	return nil
}

func addOutput(add func(name, path string) error, outDir, name string) error {
	path := filepath.Join(outDir, name)
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return zerr.With(zerr.Wrap(domain.ErrBuildOutputMissing, "native build did not produce its output"), "path", path)
		}
		return zerr.With(zerr.Wrap(err, "cannot inspect build output"), "path", path)
	}
	return add(name, path)
}

// probe returns the first candidate that exists as a regular file in dir.
func probe(dir string, candidates []string) (string, bool) {
	for _, c := range candidates {
		path := filepath.Join(dir, c)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path, true
		}
	}
	return "", false
}
