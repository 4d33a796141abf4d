package domain

import "errors"

// Process exit codes.
const (
	ExitOK                  = 0
	ExitFailure             = 1
	ExitConfig              = 2
	ExitResolution          = 3
	ExitUnsupportedFormat   = 4
	ExitPackagingValidation = 5
)

var (
	configErrors = []error{
		ErrConfigNotFound,
		ErrConfigReadFailed,
		ErrConfigParseFailed,
		ErrMissingProjectName,
		ErrInvalidProjectName,
		ErrPackageNotMember,
		ErrUnknownProfile,
	}
	resolutionErrors = []error{
		ErrUnsupportedPlatform,
		ErrInvalidRuntimeHandle,
		ErrRuntimeNotFound,
		ErrNetworkFailure,
		ErrExtractionFailure,
		ErrCacheLockFailed,
		ErrEngineVersionUnknown,
		ErrToolNotFound,
		ErrSnapshotToolNotFound,
	}
)

// ExitCode maps an error to the process exit code. External tool failures
// propagate the tool's own code.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}

	var procErr *ProcessError
	if errors.As(err, &procErr) {
		if procErr.ExitCode > 0 {
			return procErr.ExitCode
		}
		return ExitFailure
	}

	var stageErr *StageError
	if errors.As(err, &stageErr) && stageErr.ExitCode > 0 {
		return stageErr.ExitCode
	}

	switch {
	case isAny(err, configErrors):
		return ExitConfig
	case isAny(err, resolutionErrors):
		return ExitResolution
	case errors.Is(err, ErrUnsupportedFormat):
		return ExitUnsupportedFormat
	case errors.Is(err, ErrPackagingValidation):
		return ExitPackagingValidation
	default:
		return ExitFailure
	}
}

func isAny(err error, targets []error) bool {
	for _, t := range targets {
		if errors.Is(err, t) {
			return true
		}
	}
	return false
}
