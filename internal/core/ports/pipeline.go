package ports

import (
	"context"

	"go.trai.ch/embark/internal/core/domain"
)

// BuildPipeline runs the build stages for one request.
//
//go:generate go run go.uber.org/mock/mockgen -source=pipeline.go -destination=mocks/mock_pipeline.go -package=mocks
type BuildPipeline interface {
	Run(ctx context.Context, req domain.BuildRequest) (*domain.ArtifactSet, error)
}
