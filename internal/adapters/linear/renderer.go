// Package linear provides a synchronous, line-oriented renderer for CI
// and non-interactive environments.
package linear

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/modforge/modforge/internal/core/domain"
	"github.com/modforge/modforge/internal/ui/output"
	"github.com/modforge/modforge/internal/ui/style"
	"github.com/muesli/termenv"
)

// Renderer implements ports.Renderer with chronological, prefixed lines.
// It is fully synchronous; Start and Wait are no-ops.
type Renderer struct {
	stdout io.Writer
	stderr io.Writer
	out    *termenv.Output

	mu     sync.Mutex
	starts map[string]time.Time // component name -> start time
}

// NewRenderer creates a new linear renderer. Nil writers default to the
// process streams.
func NewRenderer(stdout, stderr io.Writer) *Renderer {
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}

	return &Renderer{
		stdout: stdout,
		stderr: stderr,
		out:    termenv.NewOutput(stderr, termenv.WithProfile(output.ColorProfileANSI())),
		starts: make(map[string]time.Time),
	}
}

// Start is a no-op for the linear renderer.
func (r *Renderer) Start(_ context.Context) error {
	return nil
}

// Stop is a no-op for the linear renderer.
func (r *Renderer) Stop() error {
	return nil
}

// Wait is a no-op for the linear renderer.
func (r *Renderer) Wait() error {
	return nil
}

// OnPlan prints the resolved installation order.
func (r *Renderer) OnPlan(componentNames []string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, _ = fmt.Fprintf(r.stderr, "Installing %d component(s): %s\n",
		len(componentNames), strings.Join(componentNames, ", "))
}

// OnProgress prints phase transitions and rollback progress. Per-file
// rollback updates are collapsed to one line per phase change.
func (r *Renderer) OnProgress(update domain.ProgressUpdate) {
	r.mu.Lock()
	defer r.mu.Unlock()

	switch update.Phase {
	case domain.PhaseInitializing:
		_, _ = fmt.Fprintln(r.stderr, "Preparing installation session...")
	case domain.PhaseRollingBack:
		if update.Current == 1 || update.Current == update.Total {
			_, _ = fmt.Fprintf(r.stderr, "Rolling back... (%d/%d)\n", update.Current, update.Total)
		}
	case domain.PhaseCompleted:
		_, _ = fmt.Fprintln(r.stderr, "Installation finished.")
	case domain.PhaseInstallingComponent, domain.PhaseCreatingCheckpoint:
		// Covered by OnComponentStart / OnComponentComplete.
	}
}

// OnComponentStart prints a component start line.
func (r *Renderer) OnComponentStart(name string, index, total int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.starts[name] = time.Now()

	prefix := r.out.String(fmt.Sprintf("[%d/%d]", index, total)).Faint().String()
	_, _ = fmt.Fprintf(r.stderr, "%s %s\n", prefix, name)
}

// OnComponentComplete prints the completion status with duration.
func (r *Renderer) OnComponentComplete(name string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var duration time.Duration
	if start, ok := r.starts[name]; ok {
		duration = time.Since(start).Round(time.Millisecond)
		delete(r.starts, name)
	}

	if err != nil {
		symbol := r.out.String(style.Cross).Foreground(termenv.ANSIRed).String()
		_, _ = fmt.Fprintf(r.stderr, "%s %s failed after %v: %v\n", symbol, name, duration, err)
		return
	}

	symbol := r.out.String(style.Check).Foreground(termenv.ANSIGreen).String()
	_, _ = fmt.Fprintf(r.stderr, "%s %s installed in %v\n", symbol, name, duration)
}
