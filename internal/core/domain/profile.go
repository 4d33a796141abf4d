package domain

import "go.trai.ch/zerr"

// BuildProfile selects compiler optimization and the engine variant that is fetched.
type BuildProfile int

const (
	// Debug is an unoptimized build running the engine in JIT mode.
	Debug BuildProfile = iota
	// Profile is an optimized build with profiling hooks and an AOT snapshot.
	Profile
	// Release is an optimized, stripped build with an AOT snapshot.
	Release
)

// ParseProfile converts a profile name into a BuildProfile.
func ParseProfile(name string) (BuildProfile, error) {
	switch name {
	case "debug", "":
		return Debug, nil
	case "profile":
		return Profile, nil
	case "release":
		return Release, nil
	default:
		return Debug, zerr.With(zerr.Wrap(ErrUnknownProfile, "cannot parse build profile"), "profile", name)
	}
}

// Name returns the profile name used for cache directories and tool flags.
func (p BuildProfile) Name() string {
	switch p {
	case Profile:
		return "profile"
	case Release:
		return "release"
	default:
		return "debug"
	}
}

// String implements fmt.Stringer.
func (p BuildProfile) String() string {
	return p.Name()
}

// DistName returns the profile name used in engine distribution file names.
func (p BuildProfile) DistName() string {
	switch p {
	case Profile:
		return "profile"
	case Release:
		return "release"
	default:
		return "debug_unopt"
	}
}

// CargoDir returns the cargo output directory for the profile.
func (p BuildProfile) CargoDir() string {
	if p.Optimized() {
		return "release"
	}
	return "debug"
}

// RequiresAOT reports whether the profile forbids JIT execution.
func (p BuildProfile) RequiresAOT() bool {
	return p == Profile || p == Release
}

// Optimized reports whether the native build runs with optimizations.
func (p BuildProfile) Optimized() bool {
	return p == Profile || p == Release
}

// Valid reports whether p is one of the three known profiles.
func (p BuildProfile) Valid() bool {
	return p >= Debug && p <= Release
}
