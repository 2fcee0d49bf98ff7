// Package progrock provides a rich progress renderer backed by the
// progrock vertex tape.
package progrock

import (
	"context"
	"fmt"
	"sync"

	"github.com/modforge/modforge/internal/core/domain"
	"github.com/opencontainers/go-digest"
	"github.com/vito/progrock"
)

// Renderer implements ports.Renderer by recording one vertex per
// component on a progrock tape. Phase updates are streamed to the
// active vertex's output.
type Renderer struct {
	w   progrock.Writer
	rec *progrock.Recorder

	mu       sync.Mutex
	vertices map[string]*progrock.VertexRecorder // component name -> vertex
	session  *progrock.VertexRecorder            // catch-all for phase updates
}

// New creates a renderer with a default tape.
func New() *Renderer {
	return NewRenderer(progrock.NewTape())
}

// NewRenderer creates a renderer recording to the given writer.
func NewRenderer(w progrock.Writer) *Renderer {
	return &Renderer{
		w:        w,
		rec:      progrock.NewRecorder(w),
		vertices: make(map[string]*progrock.VertexRecorder),
	}
}

// Start is a no-op; the recorder is ready after construction.
func (r *Renderer) Start(_ context.Context) error {
	return nil
}

// Stop completes any vertices left open and closes the tape.
func (r *Renderer) Stop() error {
	r.mu.Lock()
	for name, v := range r.vertices {
		v.Done(nil)
		delete(r.vertices, name)
	}
	if r.session != nil {
		r.session.Done(nil)
		r.session = nil
	}
	r.mu.Unlock()

	if c, ok := r.w.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}

// Wait is a no-op; recording is synchronous.
func (r *Renderer) Wait() error {
	return nil
}

// OnPlan records a completed vertex describing the installation order.
func (r *Renderer) OnPlan(componentNames []string) {
	name := fmt.Sprintf("plan: %d component(s)", len(componentNames))
	v := r.rec.Vertex(digest.FromString(name), name)
	for _, c := range componentNames {
		_, _ = fmt.Fprintln(v.Stdout(), c)
	}
	v.Done(nil)
}

// OnProgress streams phase updates to the active component vertex, or
// records them as top-level debug output when no vertex is open.
func (r *Renderer) OnProgress(update domain.ProgressUpdate) {
	r.mu.Lock()
	defer r.mu.Unlock()

	msg := string(update.Phase)
	if update.Message != "" {
		msg += ": " + update.Message
	}

	if v, ok := r.vertices[update.ComponentName]; ok {
		_, _ = fmt.Fprintln(v.Stdout(), msg)
		return
	}

	if r.session == nil {
		r.session = r.rec.Vertex(digest.FromString("session"), "session")
	}
	_, _ = fmt.Fprintln(r.session.Stdout(), msg)
}

// OnComponentStart opens a vertex for the component.
func (r *Renderer) OnComponentStart(name string, index, total int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	label := fmt.Sprintf("[%d/%d] %s", index, total, name)
	r.vertices[name] = r.rec.Vertex(digest.FromString(name), label)
}

// OnComponentComplete closes the component's vertex.
func (r *Renderer) OnComponentComplete(name string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	v, ok := r.vertices[name]
	if !ok {
		return
	}
	v.Done(err)
	delete(r.vertices, name)
}
