package fs

import (
	"io"
	"os"
	"path/filepath"

	"go.trai.ch/embark/internal/core/domain"
	"go.trai.ch/embark/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Copier = (*Copier)(nil)

// Copier copies files and directory trees, keeping file modes.
type Copier struct {
	walker *Walker
}

// NewCopier creates a new Copier.
func NewCopier(walker *Walker) *Copier {
	return &Copier{walker: walker}
}

// CopyFile copies src to dst, creating parent directories. An existing dst is replaced.
func (c *Copier) CopyFile(src, dst string) error {
	in, err := os.Open(src) //nolint:gosec // Path is controlled by caller
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to open source"), "path", src)
	}
	defer in.Close() //nolint:errcheck // Best effort close in defer

	info, err := in.Stat()
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to stat source"), "path", src)
	}

	if err := os.MkdirAll(filepath.Dir(dst), domain.DirPerm); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to create directory"), "path", filepath.Dir(dst))
	}

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, info.Mode().Perm()) //nolint:gosec // Path is controlled by caller
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to create destination"), "path", dst)
	}

	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return zerr.With(zerr.Wrap(err, "failed to copy file"), "path", dst)
	}
	if err := out.Close(); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to close destination"), "path", dst)
	}

	// OpenFile does not change the mode of an existing file.
	if err := os.Chmod(dst, info.Mode().Perm()); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to set file mode"), "path", dst)
	}
	return nil
}

// CopyDir copies every file below src into dst, preserving the relative layout.
func (c *Copier) CopyDir(src, dst string) error {
	info, err := os.Stat(src)
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to stat source"), "path", src)
	}
	if !info.IsDir() {
		return zerr.With(zerr.New("source is not a directory"), "path", src)
	}

	if err := os.MkdirAll(dst, domain.DirPerm); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to create directory"), "path", dst)
	}

	for path := range c.walker.WalkFiles(src, nil) {
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return zerr.With(zerr.Wrap(err, "failed to relativize path"), "path", path)
		}
		if err := c.CopyFile(path, filepath.Join(dst, rel)); err != nil {
			return err
		}
	}
	return nil
}
