// Package ports defines the core interfaces for the application.
package ports

import (
	"context"

	"github.com/modforge/modforge/internal/core/domain"
)

// InstructionExecutor runs a single component's instructions against the
// destination file tree.
//
// The full selected-component list is passed for cross-component
// lookups (e.g. Choose-instruction resolution); the orchestrator treats
// the executor as opaque and only interprets the exit code.
//
//go:generate mockgen -source=executor.go -destination=mocks/mock_executor.go -package=mocks
type InstructionExecutor interface {
	// Execute runs the component's instructions. Cancellation is honored
	// through ctx; the returned error carries detail for logging while the
	// exit code drives orchestration.
	Execute(
		ctx context.Context,
		component *domain.Component,
		selected []*domain.Component,
		fsp FileSystemProvider,
	) (domain.ExitCode, error)
}
