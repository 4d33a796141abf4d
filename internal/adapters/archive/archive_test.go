package archive_test

import (
	"archive/tar"
	"archive/zip"
	"compress/gzip"
	"errors"
	"io"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/embark/internal/adapters/archive"
	"go.trai.ch/embark/internal/core/domain"
)

func writeZip(t *testing.T, path string, files map[string]string) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	zw := zip.NewWriter(f)
	for name, content := range files {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = io.WriteString(w, content)
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
}

func TestExtract_Zip(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "engine.zip")
	writeZip(t, src, map[string]string{
		"libflutter_engine.so": "engine",
		"gen_snapshot":         "snapshot tool",
		"include/flutter.h":    "header",
	})

	dst := filepath.Join(dir, "out")
	require.NoError(t, archive.NewExtractor().Extract(src, dst))

	data, err := os.ReadFile(filepath.Join(dst, "libflutter_engine.so"))
	require.NoError(t, err)
	assert.Equal(t, "engine", string(data))
	assert.FileExists(t, filepath.Join(dst, "include", "flutter.h"))
}

func TestExtract_CorruptArchive(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "engine.zip")
	require.NoError(t, os.WriteFile(src, []byte("this is not a zip file"), domain.FilePerm))

	err := archive.NewExtractor().Extract(src, filepath.Join(dir, "out"))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrExtractionFailure)
}

func TestExtract_MissingArchive(t *testing.T) {
	dir := t.TempDir()

	err := archive.NewExtractor().Extract(filepath.Join(dir, "missing.zip"), filepath.Join(dir, "out"))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrExtractionFailure)
}

func readTarGz(t *testing.T, path string) []string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	gz, err := gzip.NewReader(f)
	require.NoError(t, err)
	tr := tar.NewReader(gz)

	var names []string
	for {
		hdr, err := tr.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		require.NoError(t, err)
		if hdr.Typeflag == tar.TypeReg {
			names = append(names, hdr.Name)
		}
	}
	slices.Sort(names)
	return names
}

func TestArchive_TarGz(t *testing.T) {
	dir := t.TempDir()
	root := filepath.Join(dir, "demo-1.0.0")
	require.NoError(t, os.MkdirAll(filepath.Join(root, "bin"), domain.DirPerm))
	require.NoError(t, os.WriteFile(filepath.Join(root, "bin", "demo"), []byte("bin"), domain.FilePerm))
	require.NoError(t, os.WriteFile(filepath.Join(root, "run.sh"), []byte("#!/bin/sh"), domain.FilePerm))

	dst := filepath.Join(dir, "demo.tar.gz")
	a := archive.NewArchiver()
	require.NoError(t, a.Archive([]string{root}, dst))
	assert.Equal(t, []string{"demo-1.0.0/bin/demo", "demo-1.0.0/run.sh"}, readTarGz(t, dst))

	// A second run replaces the tarball.
	require.NoError(t, a.Archive([]string{root}, dst))
}
