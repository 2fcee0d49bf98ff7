package ports

import (
	"context"

	"github.com/modforge/modforge/internal/core/domain"
)

// Renderer is the abstraction for progress output. It decouples the
// orchestrator's progress channel from presentation, so the same run
// can drive plain CI logs or a rich terminal tape.
//
//go:generate mockgen -source=renderer.go -destination=mocks/mock_renderer.go -package=mocks
type Renderer interface {
	// Start initializes the renderer. Asynchronous renderers may launch
	// background goroutines here.
	Start(ctx context.Context) error

	// Stop signals the renderer to flush and prepare for shutdown.
	Stop() error

	// Wait blocks until the renderer has fully terminated.
	Wait() error

	// OnPlan is called once with the resolved installation order.
	OnPlan(componentNames []string)

	// OnProgress is called for every progress update.
	OnProgress(update domain.ProgressUpdate)

	// OnComponentStart is called when a component begins installing.
	OnComponentStart(name string, index, total int)

	// OnComponentComplete is called when a component finishes.
	// err is nil on success.
	OnComponentComplete(name string, err error)
}
