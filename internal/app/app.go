// Package app implements the application layer for modforge.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/modforge/modforge/internal/adapters/checkpoint"
	"github.com/modforge/modforge/internal/adapters/instructions"
	"github.com/modforge/modforge/internal/adapters/linear"
	"github.com/modforge/modforge/internal/adapters/progrock"
	"github.com/modforge/modforge/internal/core/domain"
	"github.com/modforge/modforge/internal/core/ports"
	"github.com/modforge/modforge/internal/engine/detector"
	"github.com/modforge/modforge/internal/engine/orchestrator"
	"github.com/modforge/modforge/internal/engine/resolver"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// App represents the main application logic.
type App struct {
	manifests ports.ManifestLoader
	fsp       ports.FileSystemProvider
	logger    ports.Logger
	stdout    io.Writer
}

// New creates a new App instance.
func New(manifests ports.ManifestLoader, fsp ports.FileSystemProvider, log ports.Logger) *App {
	return &App{
		manifests: manifests,
		fsp:       fsp,
		logger:    log,
		stdout:    os.Stdout,
	}
}

// WithOutput redirects the app's plain output stream.
// This is primarily used for testing.
func (a *App) WithOutput(w io.Writer) *App {
	a.stdout = w
	return a
}

// InstallOptions configuration for the Install method.
type InstallOptions struct {
	ManifestPath string
	Source       string
	Destination  string
	SessionName  string

	KeepCheckpoints    bool
	IgnoreErrors       bool
	AttemptFixes       bool
	RollbackOnError    bool
	AcknowledgeNotices bool
	OutputMode         string
}

// Install loads the manifest, resolves an installation order and runs
// the orchestrator with a progress renderer.
func (a *App) Install(ctx context.Context, opts InstallOptions) error {
	components, err := a.loadComponents(opts.ManifestPath)
	if err != nil {
		return err
	}

	selected := domain.SelectedComponents(components)
	if len(selected) == 0 {
		return domain.ErrNoComponentsSelected
	}

	res := resolver.Resolve(selected, resolver.Options{
		IgnoreErrors: opts.IgnoreErrors,
		AttemptFixes: opts.AttemptFixes,
	})
	if err := a.reportResolution(res, opts.IgnoreErrors); err != nil {
		return err
	}

	if opts.Destination == "" {
		return zerr.New("destination path is required")
	}
	if err := os.MkdirAll(opts.Destination, domain.DirPerm); err != nil {
		return zerr.Wrap(err, "failed to create destination")
	}

	renderer := a.buildRenderer(opts.OutputMode)
	executor := instructions.NewExecutor(opts.Source, opts.Destination, a.logger)
	checkpoints := checkpoint.NewService(opts.Destination, a.logger)
	events := newPolicyHandler(a.logger, opts)

	orch := orchestrator.New(executor, checkpoints, events, renderer, a.logger)

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := renderer.Start(ctx); err != nil {
			return err
		}
		return renderer.Wait()
	})

	var code domain.ExitCode
	g.Go(func() error {
		defer func() { _ = renderer.Stop() }()

		var runErr error
		code, runErr = orch.Run(ctx, res.Ordered, a.fsp, orchestrator.RunOptions{
			DestinationPath: opts.Destination,
			SessionName:     opts.SessionName,
			KeepCheckpoints: opts.KeepCheckpoints,
		})
		if runErr != nil && !code.Success() {
			return runErr
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return zerr.With(err, "exit_code", string(code))
	}
	return nil
}

// OrderOptions configuration for the Order method.
type OrderOptions struct {
	ManifestPath string

	// IgnoreErrors prints the best-effort order even when resolution
	// collected errors, as long as every component could be placed.
	IgnoreErrors bool

	// Bake rewrites the in-memory ordering constraints to mirror the
	// resolved order before printing, verifying the round trip.
	Bake bool

	// Clear drops all ordering constraints before resolving, leaving only
	// declaration order.
	Clear bool
}

// Order resolves and prints the installation order without installing.
func (a *App) Order(_ context.Context, opts OrderOptions) error {
	components, err := a.loadComponents(opts.ManifestPath)
	if err != nil {
		return err
	}

	selected := domain.SelectedComponents(components)
	if opts.Clear {
		resolver.ClearAllOrdering(selected)
	}

	res := resolver.Resolve(selected, resolver.Options{IgnoreErrors: opts.IgnoreErrors})
	if err := a.reportResolution(res, opts.IgnoreErrors); err != nil {
		return err
	}

	if opts.Bake {
		resolver.GenerateOrderingFromSequence(res.Ordered)

		verify := resolver.Resolve(res.Ordered, resolver.Options{})
		if !verify.Success {
			return zerr.Wrap(errors.Join(verify.Errors...), "baked ordering does not resolve")
		}
		res = verify
	}

	for i, c := range res.Ordered {
		_, _ = fmt.Fprintf(a.stdout, "%d. %s\n", i+1, c.Name)
	}
	return nil
}

// CheckOptions configuration for the Check method.
type CheckOptions struct {
	ManifestPath string
}

// Check runs the cycle detector and restriction checks over the whole
// component set and prints the diagnostic report. It returns an error
// when cycles exist so scripts can gate on the exit status.
func (a *App) Check(_ context.Context, opts CheckOptions) error {
	components, err := a.loadComponents(opts.ManifestPath)
	if err != nil {
		return err
	}

	result := detector.Detect(components)
	_, _ = fmt.Fprintln(a.stdout, result.Detail)

	res := resolver.Resolve(domain.SelectedComponents(components), resolver.Options{IgnoreErrors: true})
	for _, warning := range res.Warnings {
		a.logger.Warn(warning)
	}

	if !result.HasCycles {
		return nil
	}

	suggestions := detector.SuggestRemovals(components, result)
	if len(suggestions) > 0 {
		names := make([]string, len(suggestions))
		for i, c := range suggestions {
			names[i] = c.Name
		}
		_, _ = fmt.Fprintf(a.stdout, "Consider removing: %s\n", strings.Join(names, ", "))
	}

	return zerr.With(zerr.Wrap(domain.ErrCircularDependency, "dependency check failed"),
		"cycles", len(result.Cycles))
}

// SessionsOptions configuration for the Sessions method.
type SessionsOptions struct {
	Destination string
}

// Sessions lists persisted installation sessions for a destination.
func (a *App) Sessions(_ context.Context, opts SessionsOptions) error {
	service := checkpoint.NewService(opts.Destination, a.logger)

	sessions, err := service.ListSessions()
	if err != nil {
		return err
	}
	if len(sessions) == 0 {
		_, _ = fmt.Fprintln(a.stdout, "no sessions found")
		return nil
	}

	for _, s := range sessions {
		status := "in progress"
		if s.Completed {
			status = "completed"
		}
		_, _ = fmt.Fprintf(a.stdout, "%s  %s  %s  %d checkpoint(s)  %s\n",
			s.ID, s.StartedAt.Format("2006-01-02 15:04:05"), status, len(s.Checkpoints), s.Name)
	}
	return nil
}

// RollbackOptions configuration for the Rollback method.
type RollbackOptions struct {
	Destination  string
	SessionID    string
	CheckpointID string

	// Latest restores the most recent checkpoint instead of the session
	// baseline when no explicit checkpoint id is given.
	Latest bool
}

// Rollback restores a destination to a session checkpoint, defaulting
// to the session baseline.
func (a *App) Rollback(ctx context.Context, opts RollbackOptions) error {
	service := checkpoint.NewService(opts.Destination, a.logger)

	sessions, err := service.ListSessions()
	if err != nil {
		return err
	}

	var session *domain.Session
	for _, s := range sessions {
		if s.ID == opts.SessionID {
			session = s
			break
		}
	}
	if session == nil {
		return zerr.With(zerr.Wrap(domain.ErrSessionNotFound, opts.SessionID),
			"session_id", opts.SessionID)
	}

	checkpointID := opts.CheckpointID
	if checkpointID == "" {
		target := session.Baseline()
		if opts.Latest {
			target = session.Latest()
		}
		if target == nil {
			return zerr.With(zerr.Wrap(domain.ErrCheckpointNotFound, "session has no checkpoints"),
				"session_id", opts.SessionID)
		}
		checkpointID = target.ID
	}

	progress := func(update domain.ProgressUpdate) {
		if update.Current == update.Total {
			a.logger.Info(fmt.Sprintf("restored %d file(s)", update.Total))
		}
	}

	if err := service.RollbackToCheckpoint(ctx, session, checkpointID, progress); err != nil {
		return err
	}

	a.logger.Info(fmt.Sprintf("rolled back session %s to checkpoint %s", session.ID, checkpointID))
	return nil
}

// reportResolution surfaces warnings and decides whether a resolution
// outcome stops the command. In best-effort mode a complete order wins
// over the collected errors: they are logged and the run proceeds.
func (a *App) reportResolution(res resolver.Resolution, ignoreErrors bool) error {
	for _, warning := range res.Warnings {
		a.logger.Warn(warning)
	}
	if res.Success {
		return nil
	}
	if ignoreErrors && len(res.Ordered) > 0 {
		for _, err := range res.Errors {
			a.logger.Warn(fmt.Sprintf("ignoring resolution error: %s", err))
		}
		return nil
	}
	return zerr.Wrap(errors.Join(res.Errors...), "could not resolve installation order")
}

// loadComponents loads the manifest at path, discovering one from the
// working directory when path is empty.
func (a *App) loadComponents(path string) ([]*domain.Component, error) {
	if path == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, zerr.Wrap(err, "failed to determine working directory")
		}
		path, err = a.manifests.Discover(cwd)
		if err != nil {
			return nil, err
		}
	}

	return a.manifests.Load(path)
}

// buildRenderer picks the progress renderer for the run. Rich output is
// opt-in; everything else gets CI-safe linear lines.
func (a *App) buildRenderer(mode string) ports.Renderer {
	if mode == "rich" {
		return progrock.New()
	}
	return linear.NewRenderer(os.Stdout, os.Stderr)
}
