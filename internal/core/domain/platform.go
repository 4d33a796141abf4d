package domain

import (
	"slices"
	"strings"

	"go.trai.ch/zerr"
)

// PlatformID is a target triple naming CPU architecture, vendor, OS and ABI.
type PlatformID string

// String implements fmt.Stringer.
func (p PlatformID) String() string {
	return string(p)
}

// Family groups platforms that share engine packaging and tooling conventions.
type Family string

// Known platform families.
const (
	FamilyLinux   Family = "linux"
	FamilyDarwin  Family = "darwin"
	FamilyWindows Family = "windows"
	FamilyAndroid Family = "android"
	FamilyIOS     Family = "ios"
)

// snapshotCandidates lists snapshot generator file names per family, in probe order.
var snapshotCandidates = map[Family][]string{
	FamilyLinux:   {"gen_snapshot"},
	FamilyDarwin:  {"gen_snapshot"},
	FamilyWindows: {"gen_snapshot.exe", "gen_snapshot"},
	FamilyAndroid: {"gen_snapshot", "linux-x64/gen_snapshot", "gen_snapshot_x64"},
	FamilyIOS:     {"gen_snapshot_arm64", "gen_snapshot_armv7", "gen_snapshot"},
}

// DartCandidates lists the dart executable names probed in a host engine directory.
var DartCandidates = []string{"dart", "dart.exe"}

// SnapshotCandidates returns the snapshot generator names to probe for the family.
func (f Family) SnapshotCandidates() []string {
	return slices.Clone(snapshotCandidates[f])
}

// IsHost reports whether binaries built for the family run on a development machine.
func (f Family) IsHost() bool {
	return f == FamilyLinux || f == FamilyDarwin || f == FamilyWindows
}

// SDKArtifactDir returns the SDK artifact directory holding host tools for the family.
func (f Family) SDKArtifactDir() string {
	switch f {
	case FamilyDarwin:
		return "darwin-x64"
	case FamilyWindows:
		return "windows-x64"
	default:
		return "linux-x64"
	}
}

// BinaryName returns the executable file name for a crate on this family.
func (f Family) BinaryName(name string) string {
	if f == FamilyWindows {
		return name + ".exe"
	}
	return name
}

// LibraryPathVar returns the loader search path variable, or "" when the loader
// already searches the executable's directory.
func (f Family) LibraryPathVar() string {
	switch f {
	case FamilyLinux:
		return EnvLibraryPath
	case FamilyDarwin:
		return EnvDarwinLibraryDir
	default:
		return ""
	}
}

// PlatformEntry describes how engine builds are published for one triple.
type PlatformEntry struct {
	ID     PlatformID
	Family Family
	// VariantTemplate is the distribution archive name with a {profile} placeholder.
	VariantTemplate string
	Library         string
	// ExtraLibraries ship next to Library and are needed at link time.
	ExtraLibraries []string
	AndroidABI     string
}

// Variant returns the distribution archive name for the profile.
func (e PlatformEntry) Variant(p BuildProfile) string {
	return strings.ReplaceAll(e.VariantTemplate, "{profile}", p.DistName())
}

// Libraries returns the primary engine library followed by any extra libraries.
func (e PlatformEntry) Libraries() []string {
	return append([]string{e.Library}, e.ExtraLibraries...)
}

// PlatformTable is the static compatibility table. It is a value: With returns a copy.
type PlatformTable struct {
	entries map[PlatformID]PlatformEntry
}

// NewPlatformTable builds a table from entries.
func NewPlatformTable(entries ...PlatformEntry) PlatformTable {
	t := PlatformTable{entries: make(map[PlatformID]PlatformEntry, len(entries))}
	for _, e := range entries {
		t.entries[e.ID] = e
	}
	return t
}

// DefaultPlatforms returns the table of platforms with published engine builds.
func DefaultPlatforms() PlatformTable {
	return NewPlatformTable(
		PlatformEntry{
			ID:              "x86_64-unknown-linux-gnu",
			Family:          FamilyLinux,
			VariantTemplate: "linux_x64-host_{profile}",
			Library:         "libflutter_engine.so",
		},
		PlatformEntry{
			ID:              "armv7-linux-androideabi",
			Family:          FamilyAndroid,
			VariantTemplate: "linux_x64-android_{profile}",
			Library:         "libflutter_engine.so",
			AndroidABI:      "armeabi-v7a",
		},
		PlatformEntry{
			ID:              "aarch64-linux-android",
			Family:          FamilyAndroid,
			VariantTemplate: "linux_x64-android_{profile}_arm64",
			Library:         "libflutter_engine.so",
			AndroidABI:      "arm64-v8a",
		},
		PlatformEntry{
			ID:              "i686-linux-android",
			Family:          FamilyAndroid,
			VariantTemplate: "linux_x64-android_{profile}_x64",
			Library:         "libflutter_engine.so",
			AndroidABI:      "x86",
		},
		PlatformEntry{
			ID:              "x86_64-linux-android",
			Family:          FamilyAndroid,
			VariantTemplate: "linux_x64-android_{profile}_x86",
			Library:         "libflutter_engine.so",
			AndroidABI:      "x86_64",
		},
		PlatformEntry{
			ID:              "x86_64-apple-darwin",
			Family:          FamilyDarwin,
			VariantTemplate: "macosx_x64-host_{profile}",
			Library:         "libflutter_engine.dylib",
		},
		PlatformEntry{
			ID:              "armv7-apple-ios",
			Family:          FamilyIOS,
			VariantTemplate: "macosx_x64-ios_{profile}_arm",
			Library:         "libflutter_engine.dylib",
		},
		PlatformEntry{
			ID:              "aarch64-apple-ios",
			Family:          FamilyIOS,
			VariantTemplate: "macosx_x64-ios_{profile}",
			Library:         "libflutter_engine.dylib",
		},
		PlatformEntry{
			ID:              "x86_64-pc-windows-msvc",
			Family:          FamilyWindows,
			VariantTemplate: "windows_x64-host_{profile}",
			Library:         "flutter_engine.dll",
			ExtraLibraries:  []string{"flutter_engine.lib"},
		},
	)
}

// With returns a copy of the table with e added or replaced.
func (t PlatformTable) With(e PlatformEntry) PlatformTable {
	entries := make(map[PlatformID]PlatformEntry, len(t.entries)+1)
	for k, v := range t.entries {
		entries[k] = v
	}
	entries[e.ID] = e
	return PlatformTable{entries: entries}
}

// Lookup returns the entry for id.
func (t PlatformTable) Lookup(id PlatformID) (PlatformEntry, error) {
	e, ok := t.entries[id]
	if !ok {
		return PlatformEntry{}, zerr.With(zerr.Wrap(ErrUnsupportedPlatform, "no engine builds for platform"), "platform", id.String())
	}
	return e, nil
}

// Parse validates s against the table and returns it as a PlatformID.
func (t PlatformTable) Parse(s string) (PlatformID, error) {
	id := PlatformID(strings.TrimSpace(s))
	if _, err := t.Lookup(id); err != nil {
		return "", err
	}
	return id, nil
}

// IDs returns every known triple in sorted order.
func (t PlatformTable) IDs() []PlatformID {
	ids := make([]PlatformID, 0, len(t.entries))
	for id := range t.entries {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// ParsePlatformID validates s against the default platform table.
func ParsePlatformID(s string) (PlatformID, error) {
	return DefaultPlatforms().Parse(s)
}

// hostTriples maps GOOS/GOARCH pairs to the triple rustc would report.
var hostTriples = map[string]PlatformID{
	"linux/amd64":   "x86_64-unknown-linux-gnu",
	"darwin/amd64":  "x86_64-apple-darwin",
	"windows/amd64": "x86_64-pc-windows-msvc",
}

// HostTriple maps a Go OS/architecture pair to a platform triple.
func HostTriple(goos, goarch string) (PlatformID, bool) {
	id, ok := hostTriples[goos+"/"+goarch]
	return id, ok
}
