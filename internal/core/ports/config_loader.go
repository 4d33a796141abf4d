package ports

import "go.trai.ch/embark/internal/core/domain"

// ManifestLoader defines the interface for loading project manifests.
//
//go:generate go run go.uber.org/mock/mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ManifestLoader interface {
	// Load reads the manifest at path. The format is chosen by file extension.
	Load(path string) (*domain.Manifest, error)
}
