package toolchain

// ParseHostLine exposes parseHostLine for testing.
var ParseHostLine = parseHostLine

// CompareVersions exposes compareVersions for testing.
var CompareVersions = compareVersions

// SetHost overrides the Go OS and architecture used for the fallback mapping.
func (r *Resolver) SetHost(goos, goarch string) {
	r.goos = goos
	r.goarch = goarch
}
