package domain

import "go.trai.ch/zerr"

// Format is the closed set of packaging formats.
type Format string

// Known formats. DMG, Lipo and NSIS are reserved and not yet implemented.
const (
	FormatAppImage Format = "appimage"
	FormatAPK      Format = "apk"
	FormatArchive  Format = "archive"
	FormatDMG      Format = "dmg"
	FormatLipo     Format = "lipo"
	FormatNSIS     Format = "nsis"
)

// Formats lists every known format.
var Formats = []Format{FormatAppImage, FormatAPK, FormatArchive, FormatDMG, FormatLipo, FormatNSIS}

// ParseFormat converts a format name into a Format.
func ParseFormat(name string) (Format, error) {
	for _, f := range Formats {
		if string(f) == name {
			return f, nil
		}
	}
	return "", zerr.With(zerr.Wrap(ErrUnsupportedFormat, "unknown package format"), "format", name)
}

// FormatConfig holds the manifest options for one format. Fields a format
// does not use are ignored.
type FormatConfig struct {
	Name      string
	Icon      string
	Label     string
	PackageID string
	Keystore  string
	APILevel  int
}

// PackageSpec selects the format and options for a single packaging run.
type PackageSpec struct {
	Format Format
	Sign   bool
	Config FormatConfig
}
