package domain_test

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/embark/internal/core/domain"
	"go.trai.ch/zerr"
)

func TestParsePlatformID(t *testing.T) {
	id, err := domain.ParsePlatformID("x86_64-unknown-linux-gnu")
	require.NoError(t, err)
	assert.Equal(t, domain.PlatformID("x86_64-unknown-linux-gnu"), id)

	_, err = domain.ParsePlatformID("unknown-triple")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrUnsupportedPlatform))

	var zErr *zerr.Error
	require.True(t, errors.As(err, &zErr))
	assert.Equal(t, "unknown-triple", zErr.Metadata()["platform"])
}

func TestPlatformEntry_Variant(t *testing.T) {
	table := domain.DefaultPlatforms()

	tests := []struct {
		platform domain.PlatformID
		profile  domain.BuildProfile
		want     string
	}{
		{"x86_64-unknown-linux-gnu", domain.Debug, "linux_x64-host_debug_unopt"},
		{"x86_64-unknown-linux-gnu", domain.Release, "linux_x64-host_release"},
		{"aarch64-linux-android", domain.Profile, "linux_x64-android_profile_arm64"},
		{"x86_64-apple-darwin", domain.Debug, "macosx_x64-host_debug_unopt"},
		{"x86_64-pc-windows-msvc", domain.Release, "windows_x64-host_release"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			e, err := table.Lookup(tt.platform)
			require.NoError(t, err)
			assert.Equal(t, tt.want, e.Variant(tt.profile))
		})
	}
}

func TestPlatformTable_With(t *testing.T) {
	base := domain.DefaultPlatforms()
	extended := base.With(domain.PlatformEntry{
		ID:              "x64-linux-host",
		Family:          domain.FamilyLinux,
		VariantTemplate: "linux_x64-host_{profile}",
		Library:         "libflutter_engine.so",
	})

	_, err := extended.Lookup("x64-linux-host")
	require.NoError(t, err)

	_, err = base.Lookup("x64-linux-host")
	assert.ErrorIs(t, err, domain.ErrUnsupportedPlatform, "With must not mutate the original table")
	assert.Len(t, extended.IDs(), len(base.IDs())+1)
}

func TestPlatformEntry_Libraries(t *testing.T) {
	e, err := domain.DefaultPlatforms().Lookup("x86_64-pc-windows-msvc")
	require.NoError(t, err)
	assert.Equal(t, []string{"flutter_engine.dll", "flutter_engine.lib"}, e.Libraries())
}

func TestFamily_SnapshotCandidates(t *testing.T) {
	c := domain.FamilyIOS.SnapshotCandidates()
	assert.Equal(t, "gen_snapshot_arm64", c[0])

	c[0] = "mutated"
	assert.Equal(t, "gen_snapshot_arm64", domain.FamilyIOS.SnapshotCandidates()[0])
}

func TestHostTriple(t *testing.T) {
	id, ok := domain.HostTriple("linux", "amd64")
	assert.True(t, ok)
	assert.Equal(t, domain.PlatformID("x86_64-unknown-linux-gnu"), id)

	_, ok = domain.HostTriple("plan9", "386")
	assert.False(t, ok)
}

func TestBuildProfile(t *testing.T) {
	tests := []struct {
		in       string
		want     domain.BuildProfile
		dist     string
		cargoDir string
		aot      bool
	}{
		{"debug", domain.Debug, "debug_unopt", "debug", false},
		{"profile", domain.Profile, "profile", "release", true},
		{"release", domain.Release, "release", "release", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			p, err := domain.ParseProfile(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, p)
			assert.Equal(t, tt.in, p.Name())
			assert.Equal(t, tt.dist, p.DistName())
			assert.Equal(t, tt.cargoDir, p.CargoDir())
			assert.Equal(t, tt.aot, p.RequiresAOT())
			assert.Equal(t, tt.aot, p.Optimized())
		})
	}

	_, err := domain.ParseProfile("fast")
	assert.ErrorIs(t, err, domain.ErrUnknownProfile)
}

func TestRuntimeHandle_Validate(t *testing.T) {
	table := domain.DefaultPlatforms()

	_, err := domain.RuntimeHandle{Version: "1.0.0", Platform: "unknown-triple"}.Validate(table)
	assert.ErrorIs(t, err, domain.ErrUnsupportedPlatform)

	_, err = domain.RuntimeHandle{Platform: "x86_64-unknown-linux-gnu"}.Validate(table)
	assert.ErrorIs(t, err, domain.ErrInvalidRuntimeHandle)

	_, err = domain.RuntimeHandle{Version: "1", Platform: "x86_64-unknown-linux-gnu", Profile: 7}.Validate(table)
	assert.ErrorIs(t, err, domain.ErrInvalidRuntimeHandle)

	e, err := domain.RuntimeHandle{Version: "1", Platform: "x86_64-apple-darwin", Profile: domain.Release}.Validate(table)
	require.NoError(t, err)
	assert.Equal(t, "libflutter_engine.dylib", e.Library)
}

func TestCacheMarker_Matches(t *testing.T) {
	h := domain.RuntimeHandle{Version: "1.2.3", Platform: "x86_64-unknown-linux-gnu", Profile: domain.Debug}
	m := domain.CacheMarker{Version: "1.2.3", Platform: "x86_64-unknown-linux-gnu", Profile: "debug", Library: "libflutter_engine.so"}

	assert.True(t, m.Matches(h, "libflutter_engine.so"))
	assert.False(t, m.Matches(h, "flutter_engine.dll"))

	h.Profile = domain.Release
	assert.False(t, m.Matches(h, "libflutter_engine.so"))
}

func TestArtifactSet(t *testing.T) {
	set := domain.NewArtifactSet("hello", "0.1.0", "x86_64-unknown-linux-gnu", domain.Debug, "/p", "/p/target")
	assert.False(t, set.HasBinaries())

	require.NoError(t, set.AddAsset("flutter_assets", "/p/target/flutter_assets"))
	assert.False(t, set.HasBinaries(), "assets alone are not binaries")

	require.NoError(t, set.AddBin("hello", "/p/target/hello"))
	assert.True(t, set.HasBinaries())

	err := set.AddBin("hello", "/elsewhere/hello")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrDuplicateArtifact)

	require.NoError(t, set.AddLib("hello", "/p/target/libhello.so"), "names are unique per category only")
	assert.Len(t, set.Bins(), 1)
	assert.Len(t, set.Libs(), 1)
	assert.Len(t, set.Assets(), 1)
}

func TestParseFormat(t *testing.T) {
	for _, f := range domain.Formats {
		got, err := domain.ParseFormat(string(f))
		require.NoError(t, err)
		assert.Equal(t, f, got)
	}

	_, err := domain.ParseFormat("msi")
	assert.ErrorIs(t, err, domain.ErrUnsupportedFormat)
}

func TestOutputDir(t *testing.T) {
	assert.Equal(t,
		filepath.Join("/p", "target", "x86_64-unknown-linux-gnu", "debug"),
		domain.OutputDir("/p", "x86_64-unknown-linux-gnu", domain.Debug))
	assert.Equal(t,
		filepath.Join("/p", "target", "aarch64-linux-android", "release"),
		domain.OutputDir("/p", "aarch64-linux-android", domain.Profile))
}

func TestRuntimeNotFoundError(t *testing.T) {
	err := zerr.Wrap(&domain.RuntimeNotFoundError{Version: "abc", URL: "https://mirror/f-abc/x.zip"}, "resolve engine")

	assert.ErrorIs(t, err, domain.ErrRuntimeNotFound)
	assert.Contains(t, err.Error(), "engine.version")
	assert.Contains(t, err.Error(), domain.EnvEngineVersion)
}

func TestExitCode(t *testing.T) {
	procErr := &domain.ProcessError{Stage: domain.StageNativeBuild, Name: "cargo", ExitCode: 101, Err: errors.New("exit status 101")}

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, domain.ExitOK},
		{"process error", procErr, 101},
		{
			"stage wrapping process error",
			&domain.StageError{Stage: domain.StageNativeBuild, ExitCode: 101, Err: procErr},
			101,
		},
		{
			"process error without code",
			&domain.ProcessError{Name: "x", ExitCode: -1},
			domain.ExitFailure,
		},
		{"config", zerr.Wrap(domain.ErrConfigNotFound, "load"), domain.ExitConfig},
		{"package member", zerr.Wrap(domain.ErrPackageNotMember, "select"), domain.ExitConfig},
		{"platform", zerr.Wrap(domain.ErrUnsupportedPlatform, "resolve"), domain.ExitResolution},
		{"runtime not found", &domain.RuntimeNotFoundError{Version: "v"}, domain.ExitResolution},
		{
			"tool inside stage",
			&domain.StageError{Stage: domain.StageBundle, Err: zerr.Wrap(domain.ErrToolNotFound, "flutter")},
			domain.ExitResolution,
		},
		{"format", zerr.Wrap(domain.ErrUnsupportedFormat, "pkg"), domain.ExitUnsupportedFormat},
		{"validation", zerr.Wrap(domain.ErrPackagingValidation, "pkg"), domain.ExitPackagingValidation},
		{"other", errors.New("boom"), domain.ExitFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, domain.ExitCode(tt.err))
		})
	}
}

func TestStageError(t *testing.T) {
	procErr := &domain.ProcessError{Stage: domain.StageNativeBuild, Name: "cargo", ExitCode: 101}
	err := &domain.StageError{Stage: domain.StageNativeBuild, ExitCode: 101, Err: procErr}

	assert.Equal(t, "stage native-build failed with exit code 101", err.Error())
	assert.ErrorIs(t, err, domain.ErrExternalProcessFailure)
	assert.Equal(t, "stage bundle failed", (&domain.StageError{Stage: domain.StageBundle}).Error())
}

func TestNDKEnv(t *testing.T) {
	bin := filepath.Join("/ndk", "toolchains", "llvm", "prebuilt", "linux-x86_64", "bin")
	env := domain.NDKEnv("/ndk", domain.FamilyLinux, "armv7-linux-androideabi")
	assert.Equal(t, map[string]string{
		"CARGO_TARGET_ARMV7_LINUX_ANDROIDEABI_LINKER": filepath.Join(bin, "armv7a-linux-androideabi21-clang"),
		"CC_armv7_linux_androideabi":                  filepath.Join(bin, "armv7a-linux-androideabi21-clang"),
		"AR_armv7_linux_androideabi":                  filepath.Join(bin, "llvm-ar"),
	}, env)

	win := domain.NDKEnv("/ndk", domain.FamilyWindows, "x86_64-linux-android")
	winBin := filepath.Join("/ndk", "toolchains", "llvm", "prebuilt", "windows-x86_64", "bin")
	assert.Equal(t, filepath.Join(winBin, "x86_64-linux-android21-clang.cmd"), win["CC_x86_64_linux_android"])
	assert.Equal(t, filepath.Join(winBin, "llvm-ar.exe"), win["AR_x86_64_linux_android"])

	assert.Equal(t,
		filepath.Join("/ndk", "toolchains", "llvm", "prebuilt", "darwin-x86_64", "bin"),
		domain.NDKToolchainDir("/ndk", domain.FamilyDarwin))
}
