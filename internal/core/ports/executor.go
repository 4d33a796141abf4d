package ports

import (
	"context"

	"go.trai.ch/embark/internal/core/domain"
)

// ProcessRunner executes external tools.
//
//go:generate go run go.uber.org/mock/mockgen -source=executor.go -destination=mocks/mock_executor.go -package=mocks
type ProcessRunner interface {
	// Run executes cmd and waits for it to exit. A non-zero exit status is
	// returned as *domain.ProcessError.
	Run(ctx context.Context, cmd domain.Command) error

	// Start launches cmd without waiting for it.
	Start(ctx context.Context, cmd domain.Command) (Process, error)
}

// Process is a running external tool.
type Process interface {
	// Wait blocks until the process exits and reports failures like ProcessRunner.Run.
	Wait() error
}
