package ports

import (
	"context"

	"go.trai.ch/embark/internal/core/domain"
)

// ResolveOptions tune a single engine resolution.
type ResolveOptions struct {
	// Mirror overrides the configured download base URL when non-empty.
	Mirror string
	// Observer receives download progress with non-decreasing Done values.
	Observer func(domain.Progress)
}

// RuntimeCache maps engine handles to local library paths.
//
//go:generate go run go.uber.org/mock/mockgen -source=runtime_cache.go -destination=mocks/mock_runtime_cache.go -package=mocks
type RuntimeCache interface {
	// Resolve returns the path of the engine library for h, downloading it on a cache miss.
	Resolve(ctx context.Context, h domain.RuntimeHandle, opts ResolveOptions) (string, error)
	// Clean removes every cached engine build.
	Clean() error
}
