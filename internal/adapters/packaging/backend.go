// Package packaging turns assembled build outputs into distributable formats.
package packaging

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"

	"go.trai.ch/embark/internal/core/domain"
	"go.trai.ch/embark/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Packager = (*Backend)(nil)

// Backend implements ports.Packager for every known format.
// Each format validates its inputs before touching the filesystem, then
// recreates its staging directory under the output directory.
type Backend struct {
	toolchain domain.Toolchain
	runner    ports.ProcessRunner
	copier    ports.Copier
	archiver  ports.Archiver
	logger    ports.Logger
	table     domain.PlatformTable
	goos      string
}

// NewBackend creates a Backend using the given toolchain.
func NewBackend(
	tc domain.Toolchain,
	runner ports.ProcessRunner,
	copier ports.Copier,
	archiver ports.Archiver,
	logger ports.Logger,
	table domain.PlatformTable,
) *Backend {
	return &Backend{
		toolchain: tc,
		runner:    runner,
		copier:    copier,
		archiver:  archiver,
		logger:    logger,
		table:     table,
		goos:      runtime.GOOS,
	}
}

// Package builds the distributable described by spec from set.
func (b *Backend) Package(ctx context.Context, set *domain.ArtifactSet, spec domain.PackageSpec) error {
	if set == nil {
		return zerr.Wrap(domain.ErrPackagingValidation, "nothing to package")
	}
	if implemented(spec.Format) && !set.HasBinaries() {
		return invalid(spec.Format, "build produced no binaries or libraries")
	}

	var err error
	switch spec.Format {
	case domain.FormatAppImage:
		err = b.appImage(ctx, set, spec)
	case domain.FormatAPK:
		err = b.apk(ctx, set, spec)
	case domain.FormatArchive:
		err = b.archive(set)
	case domain.FormatDMG, domain.FormatLipo, domain.FormatNSIS:
		err = zerr.With(zerr.Wrap(domain.ErrUnsupportedFormat, "package format is not implemented yet"), "format", string(spec.Format))
	default:
		err = zerr.With(zerr.Wrap(domain.ErrUnsupportedFormat, "unknown package format"), "format", string(spec.Format))
	}
	if err != nil {
		return err
	}

	b.logger.Info("packaged " + string(spec.Format))
	return nil
}

func implemented(format domain.Format) bool {
	switch format {
	case domain.FormatAppImage, domain.FormatAPK, domain.FormatArchive:
		return true
	}
	return false
}

func invalid(format domain.Format, msg string) error {
	return zerr.With(zerr.Wrap(domain.ErrPackagingValidation, msg), "format", string(format))
}

// stage removes and recreates the staging directory for a format.
func stage(dir string) error {
	if err := os.RemoveAll(dir); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to clear staging directory"), "path", dir)
	}
	if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to create staging directory"), "path", dir)
	}
	return nil
}

// copyItems copies each item into dir under its artifact name.
func (b *Backend) copyItems(items []domain.ArtifactItem, dir string) error {
	if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to create directory"), "path", dir)
	}
	for _, item := range items {
		info, err := os.Stat(item.Path)
		if err != nil {
			return zerr.With(zerr.Wrap(err, "artifact is missing"), "path", item.Path)
		}
		dst := filepath.Join(dir, item.Name)
		if info.IsDir() {
			err = b.copier.CopyDir(item.Path, dst)
		} else {
			err = b.copier.CopyFile(item.Path, dst)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func writeFile(path string, data []byte, perm os.FileMode) error {
	if err := os.WriteFile(path, data, perm); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to write file"), "path", path)
	}
	// WriteFile does not change the mode of an existing file.
	if err := os.Chmod(path, perm); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to set file mode"), "path", path)
	}
	return nil
}

// packageCommand runs a packaging tool, tagging failures with the package stage.
func (b *Backend) packageCommand(ctx context.Context, dir, name string, args ...string) error {
	err := b.runner.Run(ctx, domain.Command{
		Stage: domain.StagePackage,
		Name:  name,
		Args:  args,
		Dir:   dir,
	})
	if err == nil {
		return nil
	}
	stageErr := &domain.StageError{Stage: domain.StagePackage, Err: err}
	var procErr *domain.ProcessError
	if errors.As(err, &procErr) {
		stageErr.ExitCode = procErr.ExitCode
	}
	return stageErr
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func hasSnapshot(set *domain.ArtifactSet) bool {
	for _, lib := range set.Libs() {
		if lib.Name == domain.SnapshotFileName {
			return true
		}
	}
	return false
}

func hasAssets(set *domain.ArtifactSet) bool {
	for _, asset := range set.Assets() {
		if asset.Name == domain.AssetDirName {
			return true
		}
	}
	return false
}
