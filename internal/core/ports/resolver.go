package ports

import (
	"context"

	"go.trai.ch/embark/internal/core/domain"
)

// PlatformResolver derives host and target triples.
//
//go:generate go run go.uber.org/mock/mockgen -source=resolver.go -destination=mocks/mock_resolver.go -package=mocks
type PlatformResolver interface {
	// Host returns the triple of the machine running the build.
	Host(ctx context.Context) (domain.PlatformID, error)
	// Target returns explicit when set, otherwise the host triple.
	Target(ctx context.Context, explicit string) (domain.PlatformID, error)
}
