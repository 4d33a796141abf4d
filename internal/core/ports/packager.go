package ports

import (
	"context"

	"go.trai.ch/embark/internal/core/domain"
)

// Packager turns an artifact set into a distributable.
//
//go:generate go run go.uber.org/mock/mockgen -source=packager.go -destination=mocks/mock_packager.go -package=mocks
type Packager interface {
	// Package builds the distributable described by spec.
	Package(ctx context.Context, set *domain.ArtifactSet, spec domain.PackageSpec) error
}
