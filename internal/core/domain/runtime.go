package domain

import (
	"time"

	"go.trai.ch/zerr"
)

// RuntimeHandle identifies one engine build.
type RuntimeHandle struct {
	Version  string
	Platform PlatformID
	Profile  BuildProfile
}

// Validate checks the handle against the platform table and returns the matching entry.
func (h RuntimeHandle) Validate(table PlatformTable) (PlatformEntry, error) {
	if h.Version == "" {
		return PlatformEntry{}, zerr.Wrap(ErrInvalidRuntimeHandle, "engine version is empty")
	}
	if !h.Profile.Valid() {
		return PlatformEntry{}, zerr.With(zerr.Wrap(ErrInvalidRuntimeHandle, "build profile is invalid"), "profile", int(h.Profile))
	}
	return table.Lookup(h.Platform)
}

// String returns version/platform/profile.
func (h RuntimeHandle) String() string {
	return h.Version + "/" + h.Platform.String() + "/" + h.Profile.Name()
}

// Progress reports bytes transferred for a download. Total is -1 when unknown.
type Progress struct {
	Total int64
	Done  int64
}

// CacheMarker is written into a cache entry once it is completely extracted.
type CacheMarker struct {
	Version       string    `json:"version"`
	Platform      string    `json:"platform"`
	Profile       string    `json:"profile"`
	URL           string    `json:"url"`
	Library       string    `json:"library"`
	LibraryHash   uint64    `json:"library_xxhash"`
	ArchiveSHA256 string    `json:"archive_sha256"`
	CompletedAt   time.Time `json:"completed_at"`
}

// Matches reports whether the marker was written for h.
func (m CacheMarker) Matches(h RuntimeHandle, library string) bool {
	return m.Version == h.Version &&
		m.Platform == h.Platform.String() &&
		m.Profile == h.Profile.Name() &&
		m.Library == library
}
