// Package orchestrator drives the sequential installation of resolved
// components with checkpointing, rollback and dependency-aware skip
// propagation.
package orchestrator

import (
	"context"
	"fmt"

	"github.com/modforge/modforge/internal/core/domain"
	"github.com/modforge/modforge/internal/core/ports"
	"go.trai.ch/zerr"
)

// Orchestrator executes one installation run. Components install
// strictly sequentially: later components may depend on filesystem
// state left by earlier ones, and checkpoints must reflect a
// linearizable sequence.
type Orchestrator struct {
	executor    ports.InstructionExecutor
	checkpoints ports.CheckpointService
	events      ports.EventHandler
	renderer    ports.Renderer
	logger      ports.Logger
}

// New creates an Orchestrator with the given collaborators.
func New(
	executor ports.InstructionExecutor,
	checkpoints ports.CheckpointService,
	events ports.EventHandler,
	renderer ports.Renderer,
	logger ports.Logger,
) *Orchestrator {
	return &Orchestrator{
		executor:    executor,
		checkpoints: checkpoints,
		events:      events,
		renderer:    renderer,
		logger:      logger,
	}
}

// RunOptions configures a single installation run.
type RunOptions struct {
	DestinationPath string
	SessionName     string
	KeepCheckpoints bool
}

// runState carries the per-run mutable state of the install loop.
type runState struct {
	ordered     []*domain.Component
	session     *domain.Session
	fsp         ports.FileSystemProvider
	dependents  map[string][]string
	noticeShown bool
	total       int
}

// Run installs the ordered, selected components. The returned exit code
// always reflects the outcome; the error carries detail for logging.
//
// Components already carrying a terminal state from a resumed run are
// persisted again and skipped, not re-executed. Cancellation is
// cooperative and checked once per component boundary.
func (o *Orchestrator) Run(
	ctx context.Context,
	ordered []*domain.Component,
	fsp ports.FileSystemProvider,
	opts RunOptions,
) (domain.ExitCode, error) {
	if len(ordered) == 0 {
		return domain.ExitInvalidOperation, domain.ErrNoComponentsSelected
	}

	o.progress(domain.ProgressUpdate{
		Phase:   domain.PhaseInitializing,
		Total:   len(ordered),
		Message: "starting installation session",
	})

	session, err := o.checkpoints.StartSession(ctx, opts.SessionName)
	if err != nil {
		return domain.ExitUnknownError, zerr.Wrap(err, domain.ErrSessionCreateFailed.Error())
	}

	names := make([]string, len(ordered))
	for i, c := range ordered {
		names[i] = c.Name
	}
	o.renderer.OnPlan(names)

	state := &runState{
		ordered:    ordered,
		session:    session,
		fsp:        fsp,
		dependents: directDependents(ordered),
		total:      len(ordered),
	}

	for i, component := range ordered {
		if ctx.Err() != nil {
			// The session is preserved for inspection or resume, never
			// rolled back on plain cancellation.
			o.saveStates(state)
			return domain.ExitUserCancelledInstall, ctx.Err()
		}

		if component.Attempted() {
			state.session.RecordState(component.ID, component.InstallState)
			o.saveStates(state)
			continue
		}

		if code, stop := o.installOne(ctx, state, component, i); stop {
			err := zerr.Wrap(domain.ErrInstallFailed, component.Name)
			return code, zerr.With(err, "exit_code", string(code))
		}
	}

	o.progress(domain.ProgressUpdate{
		Phase:   domain.PhaseCompleted,
		Current: state.total,
		Total:   state.total,
		Message: "installation finished",
	})

	if err := o.checkpoints.CompleteSession(session, opts.KeepCheckpoints); err != nil {
		o.logger.Error(zerr.Wrap(err, "failed to complete session"))
	}
	return domain.ExitSuccess, nil
}

// installOne runs a single component through the state machine. The
// returned stop flag terminates the whole run with the returned code.
func (o *Orchestrator) installOne(
	ctx context.Context,
	state *runState,
	component *domain.Component,
	index int,
) (domain.ExitCode, bool) {
	if component.Notice != "" && !state.noticeShown {
		state.noticeShown = true
		decision := o.events.OnNotification(ports.NotificationRequest{
			ComponentName: component.Name,
			Message:       component.Notice,
		})
		if decision.Cancelled {
			o.saveStates(state)
			return domain.ExitUserCancelledInstall, true
		}
	}

	o.events.OnComponentStarted(component.Name, index+1, state.total)
	o.renderer.OnComponentStart(component.Name, index+1, state.total)
	o.progress(domain.ProgressUpdate{
		Phase:         domain.PhaseInstallingComponent,
		Current:       index + 1,
		Total:         state.total,
		ComponentName: component.Name,
		Message:       fmt.Sprintf("installing %s", component.Name),
	})

	code, execErr, panicked := o.execute(ctx, state, component)

	if code.Success() {
		return o.completeComponent(ctx, state, component, index)
	}
	return o.failComponent(ctx, state, component, code, execErr, panicked)
}

// execute invokes the instruction executor, converting a panic into a
// synthetic unknown-error outcome instead of crashing the run.
func (o *Orchestrator) execute(
	ctx context.Context,
	state *runState,
	component *domain.Component,
) (code domain.ExitCode, err error, panicked bool) {
	defer func() {
		if r := recover(); r != nil {
			code = domain.ExitUnknownError
			err = zerr.New(fmt.Sprintf("component %s panicked: %v", component.Name, r))
			panicked = true
			o.logger.Error(err)
		}
	}()

	code, err = o.executor.Execute(ctx, component, state.ordered, state.fsp)
	return code, err, false
}

// completeComponent checkpoints a successful install and persists it.
func (o *Orchestrator) completeComponent(
	ctx context.Context,
	state *runState,
	component *domain.Component,
	index int,
) (domain.ExitCode, bool) {
	o.progress(domain.ProgressUpdate{
		Phase:         domain.PhaseCreatingCheckpoint,
		Current:       index + 1,
		Total:         state.total,
		ComponentName: component.Name,
		Message:       fmt.Sprintf("creating checkpoint after %s", component.Name),
	})

	checkpoint, err := o.checkpoints.CreateCheckpoint(ctx, state.session, component.Name, component.ID)
	if err != nil {
		wrapped := zerr.Wrap(err, domain.ErrCheckpointFailed.Error())
		o.logger.Error(wrapped)
		return o.failComponent(ctx, state, component, domain.ExitFileSystemError, wrapped, false)
	}

	component.InstallState = domain.StateCompleted
	state.session.RecordState(component.ID, domain.StateCompleted)
	o.saveStates(state)

	o.events.OnComponentCompleted(component.Name, checkpoint.ID)
	o.renderer.OnComponentComplete(component.Name, nil)
	return domain.ExitSuccess, false
}

// failComponent handles every non-success outcome: it consults the
// error handler, rolls back on request, marks the component Failed,
// blocks its not-yet-attempted descendants and decides whether the run
// continues.
func (o *Orchestrator) failComponent(
	ctx context.Context,
	state *runState,
	component *domain.Component,
	code domain.ExitCode,
	execErr error,
	panicked bool,
) (domain.ExitCode, bool) {
	if execErr != nil {
		o.logger.Error(zerr.With(execErr, "component", component.Name))
	}

	decision := o.events.OnInstallError(ports.InstallErrorRequest{
		ComponentName: component.Name,
		Code:          code,
		Err:           execErr,
		CanRollback:   state.session.Baseline() != nil,
	})

	if decision.Rollback {
		if baseline := state.session.Baseline(); baseline != nil {
			return o.rollback(ctx, state, component, baseline)
		}
		// The handler asked for a rollback the session cannot honor;
		// treat the component as a plain failure.
		o.logger.Warn(fmt.Sprintf(
			"rollback requested for %s but the session has no baseline checkpoint", component.Name))
	}

	component.InstallState = domain.StateFailed
	state.session.RecordState(component.ID, domain.StateFailed)
	o.events.OnComponentFailed(component.Name, code)
	o.renderer.OnComponentComplete(component.Name,
		zerr.With(domain.ErrInstallFailed, "exit_code", string(code)))

	o.blockDescendants(state, component)
	o.saveStates(state)

	if panicked {
		// A recovered panic carries no taxonomy; the handler chooses
		// between continuing and aborting.
		if decision.Continue {
			return code, false
		}
		return domain.ExitUnknownError, true
	}
	if code.Fatal() {
		return code, true
	}
	// A failing optional component does not halt installation of
	// independent components.
	return code, false
}

// rollback restores the session baseline and terminates the run.
func (o *Orchestrator) rollback(
	ctx context.Context,
	state *runState,
	component *domain.Component,
	baseline *domain.Checkpoint,
) (domain.ExitCode, bool) {
	o.progress(domain.ProgressUpdate{
		Phase:         domain.PhaseRollingBack,
		Total:         state.total,
		ComponentName: component.Name,
		Message:       "rolling back to baseline checkpoint",
	})

	err := o.checkpoints.RollbackToCheckpoint(ctx, state.session, baseline.ID, o.progress)
	if err != nil {
		o.logger.Error(zerr.Wrap(err, domain.ErrRollbackFailed.Error()))
	}

	component.InstallState = domain.StateFailed
	state.session.RecordState(component.ID, domain.StateFailed)
	o.saveStates(state)
	return domain.ExitUserCancelledInstall, true
}

// blockDescendants marks every not-yet-attempted component that depends
// on the failed one, directly or transitively, as Blocked so nothing
// installs on top of a missing prerequisite.
func (o *Orchestrator) blockDescendants(state *runState, failed *domain.Component) {
	byID := domain.ComponentsByID(state.ordered)

	queue := []string{failed.ID}
	seen := map[string]bool{failed.ID: true}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		for _, dependent := range state.dependents[current] {
			if seen[dependent] {
				continue
			}
			seen[dependent] = true
			queue = append(queue, dependent)

			c, ok := byID[dependent]
			if !ok || c.Attempted() {
				continue
			}
			c.InstallState = domain.StateBlocked
			state.session.RecordState(c.ID, domain.StateBlocked)
			o.logger.Warn(fmt.Sprintf("blocking %s: prerequisite %s failed", c.Name, failed.Name))
		}
	}
}

// directDependents inverts the Dependencies relation over the run's
// component set.
func directDependents(components []*domain.Component) map[string][]string {
	dependents := make(map[string][]string)
	for _, c := range components {
		for _, dep := range c.Dependencies {
			dependents[dep] = append(dependents[dep], c.ID)
		}
	}
	return dependents
}

// saveStates persists the session; persistence failures are logged but
// never abort the run.
func (o *Orchestrator) saveStates(state *runState) {
	if err := o.checkpoints.SaveSession(state.session); err != nil {
		o.logger.Error(zerr.Wrap(err, domain.ErrSessionWriteFailed.Error()))
	}
}

// progress forwards an update to the renderer. Used directly and as the
// ports.ProgressFunc for rollback.
func (o *Orchestrator) progress(update domain.ProgressUpdate) {
	o.renderer.OnProgress(update)
}
