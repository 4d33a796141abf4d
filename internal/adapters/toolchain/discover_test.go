package toolchain_test

import (
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/embark/internal/adapters/toolchain"
	"go.trai.ch/embark/internal/core/domain"
)

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), domain.DirPerm))
	require.NoError(t, os.WriteFile(path, nil, domain.FilePerm))
}

func envOf(vars map[string]string) func(string) string {
	return func(k string) string { return vars[k] }
}

func lookIn(found map[string]string) toolchain.LookPathFunc {
	return func(file string) (string, error) {
		if p, ok := found[file]; ok {
			return p, nil
		}
		return "", exec.ErrNotFound
	}
}

func TestDiscover_FlutterRootFromEnv(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("unix layout")
	}
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "bin", "internal"), domain.DirPerm))
	require.NoError(t, os.WriteFile(filepath.Join(root, "bin", "internal", "engine.version"), []byte("abc123\n"), domain.FilePerm))

	tc := toolchain.Discover(
		envOf(map[string]string{domain.EnvFlutterRoot: root}),
		lookIn(map[string]string{"cargo": "/opt/cargo/bin/cargo", "rustc": "/opt/cargo/bin/rustc"}),
	)

	assert.Equal(t, root, tc.FlutterRoot)
	assert.Equal(t, filepath.Join(root, "bin", "flutter"), tc.Flutter)
	assert.Equal(t, "abc123", tc.EngineVersion)
	assert.Equal(t, "/opt/cargo/bin/cargo", tc.Cargo)
	assert.Equal(t, "/opt/cargo/bin/rustc", tc.Rustc)
	assert.Empty(t, tc.AppImageTool)
	assert.Empty(t, tc.AAPT)
}

func TestDiscover_FlutterRootFromPath(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("unix layout")
	}
	root := t.TempDir()
	flutter := filepath.Join(root, "bin", "flutter")
	touch(t, flutter)

	tc := toolchain.Discover(envOf(nil), lookIn(map[string]string{"flutter": flutter}))

	want, err := filepath.EvalSymlinks(root)
	require.NoError(t, err)
	assert.Equal(t, want, tc.FlutterRoot)
	assert.Empty(t, tc.EngineVersion)
}

func TestDiscover_AndroidSDK(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("unix layout")
	}
	home := t.TempDir()
	touch(t, filepath.Join(home, "build-tools", "9.0.0", "aapt"))
	touch(t, filepath.Join(home, "build-tools", "30.0.3", "aapt"))
	touch(t, filepath.Join(home, "build-tools", "30.0.3", "apksigner"))
	touch(t, filepath.Join(home, "platforms", "android-28", "android.jar"))
	touch(t, filepath.Join(home, "platforms", "android-33", "android.jar"))

	tc := toolchain.Discover(envOf(map[string]string{domain.EnvAndroidHome: home}), lookIn(nil))

	assert.Equal(t, home, tc.AndroidHome)
	assert.Equal(t, filepath.Join(home, "build-tools", "30.0.3", "aapt"), tc.AAPT)
	assert.Equal(t, filepath.Join(home, "build-tools", "30.0.3", "apksigner"), tc.APKSigner)
	assert.Equal(t, filepath.Join(home, "platforms", "android-33", "android.jar"), tc.AndroidJar)

	assert.Equal(t, filepath.Join(home, "platforms", "android-28", "android.jar"), toolchain.AndroidJar(home, 28))
	assert.Empty(t, toolchain.AndroidJar(home, 21))
	assert.Empty(t, toolchain.AndroidJar("", 28))
}

func TestDiscover_AndroidNDK(t *testing.T) {
	home := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(home, "ndk", "23.1.7779620"), domain.DirPerm))
	require.NoError(t, os.MkdirAll(filepath.Join(home, "ndk", "25.2.9519653"), domain.DirPerm))
	explicit := t.TempDir()

	tests := []struct {
		name string
		env  map[string]string
		want string
	}{
		{"side by side", map[string]string{domain.EnvAndroidHome: home}, filepath.Join(home, "ndk", "25.2.9519653")},
		{"env wins", map[string]string{domain.EnvAndroidHome: home, domain.EnvAndroidNDK: explicit}, explicit},
		{"env points nowhere", map[string]string{domain.EnvAndroidNDK: filepath.Join(explicit, "missing")}, ""},
		{"no sdk", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tc := toolchain.Discover(envOf(tt.env), lookIn(nil))
			assert.Equal(t, tt.want, tc.AndroidNDK)
		})
	}
}

func TestDiscover_AndroidNDKBundle(t *testing.T) {
	home := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(home, "ndk-bundle"), domain.DirPerm))
	require.NoError(t, os.MkdirAll(filepath.Join(home, "ndk", "25.2.9519653"), domain.DirPerm))

	tc := toolchain.Discover(envOf(map[string]string{domain.EnvAndroidHome: home}), lookIn(nil))
	assert.Equal(t, filepath.Join(home, "ndk-bundle"), tc.AndroidNDK)
}

func TestDiscover_AndroidToolsFromPath(t *testing.T) {
	tc := toolchain.Discover(envOf(nil), lookIn(map[string]string{
		"aapt":      "/usr/bin/aapt",
		"apksigner": "/usr/bin/apksigner",
	}))
	if runtime.GOOS == "windows" {
		t.Skip("unix tool names")
	}

	assert.Equal(t, "/usr/bin/aapt", tc.AAPT)
	assert.Equal(t, "/usr/bin/apksigner", tc.APKSigner)
	assert.Empty(t, tc.AndroidJar)
}

func TestCompareVersions(t *testing.T) {
	assert.Positive(t, toolchain.CompareVersions("30.0.3", "9.0.0"))
	assert.Negative(t, toolchain.CompareVersions("30.0.2", "30.0.3"))
	assert.Zero(t, toolchain.CompareVersions("33", "33"))
	assert.Positive(t, toolchain.CompareVersions("1.1", "1"))
}
