package domain

import "path/filepath"

const (
	// ManifestFileName is the default project manifest.
	ManifestFileName = "embark.yaml"

	// EngineComponentName is the directory under the cache root that holds engine builds.
	EngineComponentName = "embark-engine"

	// CacheMarkerFileName marks a cache entry as completely extracted.
	CacheMarkerFileName = ".embark-complete.json"

	// DefaultEngineMirror is the base URL engine archives are downloaded from.
	DefaultEngineMirror = "https://github.com/flutter-rs/engine-builds/releases/download"

	// EngineVersionFile is the SDK file holding the engine revision, relative to the SDK root.
	EngineVersionFile = "bin/internal/engine.version"

	// AssetDirName is the asset bundle directory inside the output directory.
	AssetDirName = "flutter_assets"

	// KernelFileName is the intermediate kernel produced by the frontend server.
	KernelFileName = "app.dill"

	// SnapshotFileName is the AOT snapshot produced by the snapshot generator.
	SnapshotFileName = "app.so"

	// DepFileName is the dependency file written by the asset bundler.
	DepFileName = "snapshot_blob.bin.d"

	// TargetDirName is the native build output root inside the project.
	TargetDirName = "target"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644

	// ExecPerm is the permission for generated launchers (rwxr-xr-x).
	ExecPerm = 0o755

	// PrivateFilePerm is the default permission for private files (rw-------).
	PrivateFilePerm = 0o600
)

// Environment variables read by embark or exported to launched applications.
const (
	EnvEnginePath    = "EMBARK_ENGINE_PATH"
	EnvEngineVersion = "EMBARK_ENGINE_VERSION"
	EnvEngineMirror  = "EMBARK_ENGINE_MIRROR"
	EnvCacheDir      = "EMBARK_CACHE_DIR"
	EnvFlutterRoot   = "FLUTTER_ROOT"
	EnvAndroidHome   = "ANDROID_HOME"
	EnvAndroidNDK    = "ANDROID_NDK_HOME"

	EnvAOTSnapshot      = "FLUTTER_AOT_SNAPSHOT"
	EnvAssetDir         = "FLUTTER_ASSET_DIR"
	EnvObservatoryPort  = "DART_OBSERVATORY_PORT"
	EnvRustFlags        = "RUSTFLAGS"
	EnvLibraryPath      = "LD_LIBRARY_PATH"
	EnvDarwinLibraryDir = "DYLD_LIBRARY_PATH"
)

// Observatory ports are drawn from [AttachPortMin, AttachPortMax).
const (
	AttachPortMin = 1024
	AttachPortMax = 49152
)

// EngineCachePath returns the directory that holds every cached engine build under root.
func EngineCachePath(root string) string {
	return filepath.Join(root, EngineComponentName)
}

// OutputDir returns the native build output directory for a project.
// Profile and Release share cargo's release directory.
func OutputDir(root string, target PlatformID, profile BuildProfile) string {
	return filepath.Join(root, TargetDirName, target.String(), profile.CargoDir())
}
