package domain

import "time"

// BuildRequest is the immutable input of one pipeline run.
type BuildRequest struct {
	Name       string
	Version    string
	RootDir    string
	Entrypoint string

	Host    PlatformID
	Target  PlatformID
	Profile BuildProfile

	Toolchain Toolchain
	// HostEngine and TargetEngine are paths to resolved engine libraries.
	HostEngine   string
	TargetEngine string

	NoBundle bool
	NoAOT    bool
	// Quiet discards tool output instead of logging it.
	Quiet bool
	// NativeArgs are appended to the native build command line.
	NativeArgs   []string
	StageTimeout time.Duration
}

// OutDir returns the native build output directory for the request.
func (r BuildRequest) OutDir() string {
	return OutputDir(r.RootDir, r.Target, r.Profile)
}

// RunsAOT reports whether the intermediate-compile and snapshot stages run.
func (r BuildRequest) RunsAOT() bool {
	return r.Profile.RequiresAOT() && !r.NoAOT
}
