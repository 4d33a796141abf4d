package domain

import (
	"fmt"
	"io"
	"time"
)

// Stage names a step of the build pipeline.
type Stage string

// Pipeline stages in execution order, followed by the stages that run outside it.
const (
	StageBundle              Stage = "bundle"
	StageIntermediateCompile Stage = "intermediate-compile"
	StageSnapshot            Stage = "snapshot"
	StageNativeBuild         Stage = "native-build"
	StageAssemble            Stage = "assemble"
	StagePackage             Stage = "package"
	StageRun                 Stage = "run"
	StageAttach              Stage = "attach"
	StageDrive               Stage = "drive"
	StagePassthrough         Stage = "cargo"
)

// StageStatus is the lifecycle state of a pipeline stage.
type StageStatus string

// Stage statuses.
const (
	StatusRunning   StageStatus = "running"
	StatusCompleted StageStatus = "completed"
	StatusSkipped   StageStatus = "skipped"
	StatusFailed    StageStatus = "failed"
)

// StageState is one entry of the pipeline state history.
type StageState struct {
	Stage  Stage
	Status StageStatus
}

// Command describes one external tool invocation.
type Command struct {
	Stage Stage
	Name  string
	Args  []string
	Dir   string
	// Env overlays the current process environment.
	Env map[string]string
	// Stdout and Stderr replace line logging when set.
	Stdout  io.Writer
	Stderr  io.Writer
	Timeout time.Duration
}

// ProcessError is returned when an external tool exits with a non-zero status.
type ProcessError struct {
	Stage    Stage
	Name     string
	ExitCode int
	Err      error
}

// Error implements the error interface.
func (e *ProcessError) Error() string {
	return fmt.Sprintf("%s exited with code %d", e.Name, e.ExitCode)
}

// Message returns the failure without the underlying exec error.
func (e *ProcessError) Message() string {
	return e.Error()
}

// Unwrap returns the underlying exec error.
func (e *ProcessError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrExternalProcessFailure.
func (e *ProcessError) Is(target error) bool {
	return target == ErrExternalProcessFailure
}

// StageError is returned when a pipeline stage fails. ExitCode is 0 when the
// failure did not come from an external tool.
type StageError struct {
	Stage    Stage
	ExitCode int
	Err      error
}

// Error implements the error interface.
func (e *StageError) Error() string {
	if e.ExitCode != 0 {
		return fmt.Sprintf("stage %s failed with exit code %d", e.Stage, e.ExitCode)
	}
	return fmt.Sprintf("stage %s failed", e.Stage)
}

// Message returns the stage failure without its cause.
func (e *StageError) Message() string {
	return e.Error()
}

// Unwrap returns the cause.
func (e *StageError) Unwrap() error {
	return e.Err
}
