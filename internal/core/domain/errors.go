package domain

import (
	"fmt"

	"go.trai.ch/zerr"
)

var (
	// ErrUnsupportedPlatform is returned when a platform triple has no entry in the platform table.
	ErrUnsupportedPlatform = zerr.New("unsupported platform")

	// ErrInvalidRuntimeHandle is returned when a runtime handle is missing its version or profile.
	ErrInvalidRuntimeHandle = zerr.New("invalid runtime handle")

	// ErrUnknownProfile is returned when a build profile name is not debug, profile or release.
	ErrUnknownProfile = zerr.New("unknown build profile")

	// ErrRuntimeNotFound is returned when the mirror has no engine build for the requested handle.
	ErrRuntimeNotFound = zerr.New("engine build not found")

	// ErrNetworkFailure is returned when an engine download fails for any reason other than a missing build.
	ErrNetworkFailure = zerr.New("engine download failed")

	// ErrExtractionFailure is returned when a downloaded engine archive cannot be unpacked or is incomplete.
	ErrExtractionFailure = zerr.New("engine extraction failed")

	// ErrCacheLockFailed is returned when the advisory lock on a cache entry cannot be acquired.
	ErrCacheLockFailed = zerr.New("failed to lock engine cache entry")

	// ErrCacheWriteFailed is returned when a cache entry cannot be published.
	ErrCacheWriteFailed = zerr.New("failed to write engine cache entry")

	// ErrEngineVersionUnknown is returned when no engine version is pinned and the SDK does not report one.
	ErrEngineVersionUnknown = zerr.New("engine version could not be determined")

	// ErrToolNotFound is returned when a required external tool is not installed.
	ErrToolNotFound = zerr.New("required tool not found")

	// ErrSnapshotToolNotFound is returned when no snapshot generator exists in the engine directory.
	ErrSnapshotToolNotFound = zerr.New("snapshot generator not found in engine directory")

	// ErrKernelMissing is returned when snapshot generation starts without an intermediate kernel file.
	ErrKernelMissing = zerr.New("intermediate kernel file is missing")

	// ErrExternalProcessFailure is returned when an external tool exits with a non-zero status.
	ErrExternalProcessFailure = zerr.New("external process failed")

	// ErrBuildOutputMissing is returned when the native build succeeds without producing the expected file.
	ErrBuildOutputMissing = zerr.New("native build output not found")

	// ErrUnsupportedFormat is returned when a packaging format is unknown or not implemented.
	ErrUnsupportedFormat = zerr.New("unsupported package format")

	// ErrPackagingValidation is returned when packaging preconditions are not met.
	ErrPackagingValidation = zerr.New("packaging validation failed")

	// ErrDuplicateArtifact is returned when an artifact name is added twice to the same category.
	ErrDuplicateArtifact = zerr.New("duplicate artifact name")

	// ErrConfigNotFound is returned when the manifest file does not exist.
	ErrConfigNotFound = zerr.New("manifest not found")

	// ErrConfigReadFailed is returned when the manifest file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read manifest")

	// ErrConfigParseFailed is returned when the manifest file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse manifest")

	// ErrMissingProjectName is returned when the manifest does not declare a project name.
	ErrMissingProjectName = zerr.New("missing project name")

	// ErrInvalidProjectName is returned when a project name contains characters cargo does not accept.
	ErrInvalidProjectName = zerr.New("project name can only contain alphanumeric characters, hyphens and underscores")

	// ErrPackageNotMember is returned when --package names a crate that is not a workspace member.
	ErrPackageNotMember = zerr.New("package is not a workspace member")
)

// RuntimeNotFoundError reports a missing engine build together with the ways to fix it.
type RuntimeNotFoundError struct {
	Version string
	URL     string
}

// Error implements the error interface.
func (e *RuntimeNotFoundError) Error() string {
	return fmt.Sprintf(
		"engine build %s not found at %s\n"+
			"pin a published engine version in the manifest (engine.version)\n"+
			"or set %s to a version that exists on the mirror",
		e.Version, e.URL, EnvEngineVersion,
	)
}

// Is reports whether target is ErrRuntimeNotFound.
func (e *RuntimeNotFoundError) Is(target error) bool {
	return target == ErrRuntimeNotFound
}
