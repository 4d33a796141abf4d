package fs_test

import (
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/cespare/xxhash/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/embark/internal/adapters/fs"
	"go.trai.ch/embark/internal/core/domain"
)

func writeFile(t *testing.T, path, content string, perm os.FileMode) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), domain.DirPerm))
	require.NoError(t, os.WriteFile(path, []byte(content), perm))
}

func TestHasher_ComputeFileHash(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "libflutter_engine.so")
	writeFile(t, path, "engine bytes", domain.FilePerm)

	h := fs.NewHasher()
	got, err := h.ComputeFileHash(path)
	require.NoError(t, err)
	assert.Equal(t, xxhash.Sum64String("engine bytes"), got)

	writeFile(t, path, "engine bytes!", domain.FilePerm)
	changed, err := h.ComputeFileHash(path)
	require.NoError(t, err)
	assert.NotEqual(t, got, changed)

	_, err = h.ComputeFileHash(filepath.Join(dir, "missing"))
	require.Error(t, err)
}

func TestWalker_WalkFiles(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.txt"), "a", domain.FilePerm)
	writeFile(t, filepath.Join(root, "sub", "b.txt"), "b", domain.FilePerm)
	writeFile(t, filepath.Join(root, ".git", "HEAD"), "ref", domain.FilePerm)
	writeFile(t, filepath.Join(root, "skip.log"), "log", domain.FilePerm)

	var got []string
	for path := range fs.NewWalker().WalkFiles(root, []string{"*.log"}) {
		rel, err := filepath.Rel(root, path)
		require.NoError(t, err)
		got = append(got, rel)
	}
	slices.Sort(got)

	assert.Equal(t, []string{"a.txt", filepath.Join("sub", "b.txt")}, got)
}

func TestWalker_WalkFiles_StopsEarly(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a"), "a", domain.FilePerm)
	writeFile(t, filepath.Join(root, "b"), "b", domain.FilePerm)

	count := 0
	for range fs.NewWalker().WalkFiles(root, nil) {
		count++
		break
	}
	assert.Equal(t, 1, count)
}

func TestCopier_CopyFile_PreservesMode(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "app")
	dst := filepath.Join(dir, "out", "nested", "app")
	writeFile(t, src, "#!/bin/sh\n", domain.ExecPerm)

	c := fs.NewCopier(fs.NewWalker())
	require.NoError(t, c.CopyFile(src, dst))

	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "#!/bin/sh\n", string(data))

	info, err := os.Stat(dst)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(domain.ExecPerm), info.Mode().Perm())
}

func TestCopier_CopyFile_Overwrites(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src")
	dst := filepath.Join(dir, "dst")
	writeFile(t, src, "new", domain.FilePerm)
	writeFile(t, dst, "old content", domain.FilePerm)

	require.NoError(t, fs.NewCopier(fs.NewWalker()).CopyFile(src, dst))

	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "new", string(data))
}

func TestCopier_CopyDir(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "flutter_assets")
	writeFile(t, filepath.Join(src, "AssetManifest.json"), "{}", domain.FilePerm)
	writeFile(t, filepath.Join(src, "fonts", "MaterialIcons.otf"), "font", domain.FilePerm)

	dst := filepath.Join(dir, "share", "flutter_assets")
	require.NoError(t, fs.NewCopier(fs.NewWalker()).CopyDir(src, dst))

	data, err := os.ReadFile(filepath.Join(dst, "fonts", "MaterialIcons.otf"))
	require.NoError(t, err)
	assert.Equal(t, "font", string(data))
	assert.FileExists(t, filepath.Join(dst, "AssetManifest.json"))
}

func TestCopier_CopyDir_NotADirectory(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "file")
	writeFile(t, src, "x", domain.FilePerm)

	err := fs.NewCopier(fs.NewWalker()).CopyDir(src, filepath.Join(dir, "dst"))
	require.Error(t, err)
}
