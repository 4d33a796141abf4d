package domain

import "go.trai.ch/zerr"

// ArtifactKind names one of the three artifact categories.
type ArtifactKind string

// Artifact categories.
const (
	KindBin   ArtifactKind = "bin"
	KindLib   ArtifactKind = "lib"
	KindAsset ArtifactKind = "asset"
)

// ArtifactItem is a named file or directory produced by the build.
type ArtifactItem struct {
	Name string
	Path string
}

// ArtifactSet is the collection of build outputs handed to packaging.
type ArtifactSet struct {
	Name     string
	Version  string
	Platform PlatformID
	Profile  BuildProfile
	RootDir  string
	OutDir   string

	bins   []ArtifactItem
	libs   []ArtifactItem
	assets []ArtifactItem
}

// NewArtifactSet creates an empty set for a project build.
func NewArtifactSet(name, version string, platform PlatformID, profile BuildProfile, rootDir, outDir string) *ArtifactSet {
	return &ArtifactSet{
		Name:     name,
		Version:  version,
		Platform: platform,
		Profile:  profile,
		RootDir:  rootDir,
		OutDir:   outDir,
	}
}

// AddBin adds an executable.
func (s *ArtifactSet) AddBin(name, path string) error {
	return add(&s.bins, KindBin, name, path)
}

// AddLib adds a shared library.
func (s *ArtifactSet) AddLib(name, path string) error {
	return add(&s.libs, KindLib, name, path)
}

// AddAsset adds an asset directory bundle.
func (s *ArtifactSet) AddAsset(name, path string) error {
	return add(&s.assets, KindAsset, name, path)
}

func add(items *[]ArtifactItem, kind ArtifactKind, name, path string) error {
	for _, it := range *items {
		if it.Name == name {
			err := zerr.Wrap(ErrDuplicateArtifact, "artifact already registered")
			err = zerr.With(err, "kind", string(kind))
			return zerr.With(err, "name", name)
		}
	}
	*items = append(*items, ArtifactItem{Name: name, Path: path})
	return nil
}

// Bins returns the executables in insertion order.
func (s *ArtifactSet) Bins() []ArtifactItem {
	return append([]ArtifactItem(nil), s.bins...)
}

// Libs returns the shared libraries in insertion order.
func (s *ArtifactSet) Libs() []ArtifactItem {
	return append([]ArtifactItem(nil), s.libs...)
}

// Assets returns the asset bundles in insertion order.
func (s *ArtifactSet) Assets() []ArtifactItem {
	return append([]ArtifactItem(nil), s.assets...)
}

// HasBinaries reports whether the set holds at least one bin or lib.
func (s *ArtifactSet) HasBinaries() bool {
	return len(s.bins) > 0 || len(s.libs) > 0
}
