package domain

import (
	"path/filepath"
	"slices"
)

// Manifest is the read-only project metadata embark consumes.
type Manifest struct {
	// Path is the file the manifest was loaded from.
	Path          string
	Name          string
	Version       string
	EngineVersion string
	EngineMirror  string
	Entrypoint    string
	NativeArgs    []string
	Members       []string
	Formats       map[Format]FormatConfig
}

// Root returns the directory containing the manifest.
func (m *Manifest) Root() string {
	return filepath.Dir(m.Path)
}

// HasMember reports whether name is a workspace member.
func (m *Manifest) HasMember(name string) bool {
	return slices.Contains(m.Members, name)
}

// FormatConfig returns the packaging block for f, or the zero value.
func (m *Manifest) FormatConfig(f Format) FormatConfig {
	if m.Formats == nil {
		return FormatConfig{}
	}
	return m.Formats[f]
}

// DefaultEntrypoint is used when the manifest does not name one.
const DefaultEntrypoint = "lib/main.dart"

// Toolchain holds the external tool locations resolved once at startup.
// Empty fields mean the tool was not found.
type Toolchain struct {
	FlutterRoot  string
	Flutter      string
	Cargo        string
	Rustc        string
	AppImageTool string
	AAPT         string
	APKSigner    string
	AndroidHome  string
	AndroidJar   string
	AndroidNDK   string
	// EngineVersion is the engine revision the SDK was built against.
	EngineVersion string
}
