package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/embark/internal/adapters/config"
	"go.trai.ch/embark/internal/core/domain"
	"go.trai.ch/embark/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func newLoader(t *testing.T) *config.Loader {
	t.Helper()
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Debug(gomock.Any()).AnyTimes()
	return config.NewLoader(log)
}

func writeManifest(t *testing.T, name, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), domain.FilePerm))
	return path
}

func TestLoad_YAML(t *testing.T) {
	path := writeManifest(t, domain.ManifestFileName, `
name: demo
version: 1.2.3
engine:
  version: abc123
  mirror: https://mirror.example.com/engine/
build:
  entrypoint: lib/app.dart
  args: --features "a b" -j 4
members:
  - demo
  - demo-plugin
package:
  appimage:
    name: Demo
    icon: assets/demo.svg
  apk:
    label: Demo App
    package_id: com.example.demo
    api_level: 33
`)

	m, err := newLoader(t).Load(path)
	require.NoError(t, err)

	assert.Equal(t, "demo", m.Name)
	assert.Equal(t, "1.2.3", m.Version)
	assert.Equal(t, "abc123", m.EngineVersion)
	assert.Equal(t, "https://mirror.example.com/engine", m.EngineMirror)
	assert.Equal(t, "lib/app.dart", m.Entrypoint)
	assert.Equal(t, []string{"--features", "a b", "-j", "4"}, m.NativeArgs)
	assert.True(t, m.HasMember("demo-plugin"))
	assert.False(t, m.HasMember("other"))
	assert.Equal(t, filepath.Dir(path), m.Root())

	assert.Equal(t, "Demo", m.FormatConfig(domain.FormatAppImage).Name)
	assert.Equal(t, "assets/demo.svg", m.FormatConfig(domain.FormatAppImage).Icon)
	apk := m.FormatConfig(domain.FormatAPK)
	assert.Equal(t, "Demo App", apk.Label)
	assert.Equal(t, "com.example.demo", apk.PackageID)
	assert.Equal(t, 33, apk.APILevel)
	assert.Empty(t, m.FormatConfig(domain.FormatArchive))
}

func TestLoad_TOML(t *testing.T) {
	path := writeManifest(t, "embark.toml", `
name = "demo"

[engine]
version = "deadbeef"

[build]
args = "--locked"

[package.archive]
name = "demo-dist"
`)

	m, err := newLoader(t).Load(path)
	require.NoError(t, err)

	assert.Equal(t, "demo", m.Name)
	assert.Equal(t, config.DefaultVersion, m.Version)
	assert.Equal(t, "deadbeef", m.EngineVersion)
	assert.Equal(t, domain.DefaultEntrypoint, m.Entrypoint)
	assert.Equal(t, []string{"--locked"}, m.NativeArgs)
	assert.Equal(t, "demo-dist", m.FormatConfig(domain.FormatArchive).Name)
}

func TestLoad_Directory(t *testing.T) {
	path := writeManifest(t, domain.ManifestFileName, "name: demo\n")

	m, err := newLoader(t).Load(filepath.Dir(path))
	require.NoError(t, err)
	assert.Equal(t, path, m.Path)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    error
	}{
		{name: "bad yaml", content: "name: [unterminated", want: domain.ErrConfigParseFailed},
		{name: "missing name", content: "version: 1.0.0\n", want: domain.ErrMissingProjectName},
		{name: "invalid name", content: "name: my app\n", want: domain.ErrInvalidProjectName},
		{name: "unbalanced quotes in args", content: "name: demo\nbuild:\n  args: --x \"open\n", want: domain.ErrConfigParseFailed},
		{name: "unknown package format", content: "name: demo\npackage:\n  flatpak: {}\n", want: domain.ErrUnsupportedFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeManifest(t, domain.ManifestFileName, tt.content)

			_, err := newLoader(t).Load(path)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestLoad_NotFound(t *testing.T) {
	_, err := newLoader(t).Load(filepath.Join(t.TempDir(), domain.ManifestFileName))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrConfigNotFound)
	assert.Equal(t, domain.ExitConfig, domain.ExitCode(err))
}
