// Package archive extracts engine archives and builds distribution tarballs.
package archive

import (
	"errors"
	"os"

	"github.com/mholt/archiver/v3"
	"go.trai.ch/embark/internal/core/domain"
	"go.trai.ch/embark/internal/core/ports"
	"go.trai.ch/zerr"
)

var (
	_ ports.Extractor = (*ZipExtractor)(nil)
	_ ports.Archiver  = (*TarballArchiver)(nil)
)

// ZipExtractor unpacks zip archives.
type ZipExtractor struct{}

// NewExtractor creates a new ZipExtractor.
func NewExtractor() *ZipExtractor {
	return &ZipExtractor{}
}

// Extract unpacks the zip file src into dst, creating dst when needed.
func (e *ZipExtractor) Extract(src, dst string) error {
	if err := os.MkdirAll(dst, domain.DirPerm); err != nil {
		return zerr.With(zerr.Wrap(errors.Join(domain.ErrExtractionFailure, err), "failed to create directory"), "path", dst)
	}

	z := archiver.NewZip()
	z.OverwriteExisting = true

	if err := z.Unarchive(src, dst); err != nil {
		return zerr.With(zerr.Wrap(errors.Join(domain.ErrExtractionFailure, err), "failed to unpack archive"), "archive", src)
	}
	return nil
}

// TarballArchiver writes gzip-compressed tarballs.
type TarballArchiver struct{}

// NewArchiver creates a new TarballArchiver.
func NewArchiver() *TarballArchiver {
	return &TarballArchiver{}
}

// Archive packs sources into the tarball dst, replacing an existing file.
// Directories are stored under their base name.
func (a *TarballArchiver) Archive(sources []string, dst string) error {
	tgz := archiver.NewTarGz()
	tgz.OverwriteExisting = true

	if err := tgz.Archive(sources, dst); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to write tarball"), "path", dst)
	}
	return nil
}
