package orchestrator_test

import (
	"context"
	"testing"

	"github.com/modforge/modforge/internal/core/domain"
	"github.com/modforge/modforge/internal/core/ports"
	"github.com/modforge/modforge/internal/core/ports/mocks"
	"github.com/modforge/modforge/internal/engine/orchestrator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type orchestratorTestMocks struct {
	executor    *mocks.MockInstructionExecutor
	checkpoints *mocks.MockCheckpointService
	events      *mocks.MockEventHandler
	renderer    *mocks.MockRenderer
	logger      *mocks.MockLogger
	fsp         *mocks.MockFileSystemProvider
}

// setupOrchestratorTest creates an orchestrator and common mocks with
// permissive expectations for the chatty collaborators.
func setupOrchestratorTest(t *testing.T) (*orchestrator.Orchestrator, orchestratorTestMocks) {
	t.Helper()
	ctrl := gomock.NewController(t)
	m := orchestratorTestMocks{
		executor:    mocks.NewMockInstructionExecutor(ctrl),
		checkpoints: mocks.NewMockCheckpointService(ctrl),
		events:      mocks.NewMockEventHandler(ctrl),
		renderer:    mocks.NewMockRenderer(ctrl),
		logger:      mocks.NewMockLogger(ctrl),
		fsp:         mocks.NewMockFileSystemProvider(ctrl),
	}

	m.renderer.EXPECT().OnPlan(gomock.Any()).AnyTimes()
	m.renderer.EXPECT().OnProgress(gomock.Any()).AnyTimes()
	m.renderer.EXPECT().OnComponentStart(gomock.Any(), gomock.Any(), gomock.Any()).AnyTimes()
	m.renderer.EXPECT().OnComponentComplete(gomock.Any(), gomock.Any()).AnyTimes()

	m.events.EXPECT().OnComponentStarted(gomock.Any(), gomock.Any(), gomock.Any()).AnyTimes()
	m.events.EXPECT().OnComponentCompleted(gomock.Any(), gomock.Any()).AnyTimes()
	m.events.EXPECT().OnComponentFailed(gomock.Any(), gomock.Any()).AnyTimes()

	m.logger.EXPECT().Info(gomock.Any()).AnyTimes()
	m.logger.EXPECT().Warn(gomock.Any()).AnyTimes()
	m.logger.EXPECT().Error(gomock.Any()).AnyTimes()

	o := orchestrator.New(m.executor, m.checkpoints, m.events, m.renderer, m.logger)
	return o, m
}

// expectSession wires the happy-path session lifecycle: a started
// session with a baseline checkpoint and tolerant persistence.
func expectSession(m orchestratorTestMocks) *domain.Session {
	session := &domain.Session{
		ID:          "sess-1",
		Checkpoints: []domain.Checkpoint{{ID: "baseline"}},
		States:      make(map[string]domain.InstallState),
	}
	m.checkpoints.EXPECT().StartSession(gomock.Any(), gomock.Any()).Return(session, nil)
	m.checkpoints.EXPECT().SaveSession(gomock.Any()).Return(nil).AnyTimes()
	return session
}

// component builds a selected component whose id equals its name.
func component(name string, deps ...string) *domain.Component {
	return &domain.Component{
		ID:           name,
		Name:         name,
		Dependencies: deps,
		IsSelected:   true,
		InstallState: domain.StateNotStarted,
	}
}

func TestRun_NoComponents(t *testing.T) {
	o, m := setupOrchestratorTest(t)

	code, err := o.Run(context.Background(), nil, m.fsp, orchestrator.RunOptions{})

	assert.Equal(t, domain.ExitInvalidOperation, code)
	require.ErrorIs(t, err, domain.ErrNoComponentsSelected)
}

func TestRun_AllSucceed(t *testing.T) {
	o, m := setupOrchestratorTest(t)
	session := expectSession(m)

	ordered := []*domain.Component{component("a"), component("b"), component("c")}

	m.executor.EXPECT().
		Execute(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(domain.ExitSuccess, nil).
		Times(3)
	m.checkpoints.EXPECT().
		CreateCheckpoint(gomock.Any(), session, gomock.Any(), gomock.Any()).
		Return(&domain.Checkpoint{ID: "cp"}, nil).
		Times(3)
	m.checkpoints.EXPECT().CompleteSession(session, false).Return(nil)

	code, err := o.Run(context.Background(), ordered, m.fsp, orchestrator.RunOptions{})

	require.NoError(t, err)
	assert.Equal(t, domain.ExitSuccess, code)
	for _, c := range ordered {
		assert.Equal(t, domain.StateCompleted, c.InstallState, c.Name)
		assert.Equal(t, domain.StateCompleted, session.States[c.ID], c.Name)
	}
}

func TestRun_NonFatalFailure_IndependentComponentsStillInstall(t *testing.T) {
	o, m := setupOrchestratorTest(t)
	expectSession(m)

	a := component("a")
	b := component("b")
	c := component("c")
	ordered := []*domain.Component{a, b, c}

	m.executor.EXPECT().
		Execute(gomock.Any(), a, gomock.Any(), gomock.Any()).
		Return(domain.ExitSuccess, nil)
	m.executor.EXPECT().
		Execute(gomock.Any(), b, gomock.Any(), gomock.Any()).
		Return(domain.ExitInstructionFailed, nil)
	m.executor.EXPECT().
		Execute(gomock.Any(), c, gomock.Any(), gomock.Any()).
		Return(domain.ExitSuccess, nil)

	m.checkpoints.EXPECT().
		CreateCheckpoint(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(&domain.Checkpoint{ID: "cp"}, nil).
		Times(2)
	m.checkpoints.EXPECT().CompleteSession(gomock.Any(), gomock.Any()).Return(nil)

	m.events.EXPECT().
		OnInstallError(gomock.Any()).
		Return(ports.InstallErrorDecision{})

	code, err := o.Run(context.Background(), ordered, m.fsp, orchestrator.RunOptions{})

	require.NoError(t, err)
	assert.Equal(t, domain.ExitSuccess, code)
	assert.Equal(t, domain.StateCompleted, a.InstallState)
	assert.Equal(t, domain.StateFailed, b.InstallState)
	assert.Equal(t, domain.StateCompleted, c.InstallState)
}

func TestRun_NonFatalFailure_BlocksDependents(t *testing.T) {
	o, m := setupOrchestratorTest(t)
	expectSession(m)

	a := component("a")
	b := component("b", "a")
	c := component("c", "b")
	d := component("d")
	ordered := []*domain.Component{a, b, c, d}

	m.executor.EXPECT().
		Execute(gomock.Any(), a, gomock.Any(), gomock.Any()).
		Return(domain.ExitFileSystemError, nil)
	m.executor.EXPECT().
		Execute(gomock.Any(), d, gomock.Any(), gomock.Any()).
		Return(domain.ExitSuccess, nil)

	m.checkpoints.EXPECT().
		CreateCheckpoint(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(&domain.Checkpoint{ID: "cp"}, nil)
	m.checkpoints.EXPECT().CompleteSession(gomock.Any(), gomock.Any()).Return(nil)

	m.events.EXPECT().
		OnInstallError(gomock.Any()).
		Return(ports.InstallErrorDecision{})

	code, err := o.Run(context.Background(), ordered, m.fsp, orchestrator.RunOptions{})

	require.NoError(t, err)
	assert.Equal(t, domain.ExitSuccess, code)
	assert.Equal(t, domain.StateFailed, a.InstallState)
	assert.Equal(t, domain.StateBlocked, b.InstallState, "direct dependent")
	assert.Equal(t, domain.StateBlocked, c.InstallState, "transitive dependent")
	assert.Equal(t, domain.StateCompleted, d.InstallState, "independent component")
}

func TestRun_FatalFailure_StopsRun(t *testing.T) {
	o, m := setupOrchestratorTest(t)
	session := expectSession(m)

	a := component("a")
	b := component("b", "a")
	c := component("c")
	ordered := []*domain.Component{a, b, c}

	m.executor.EXPECT().
		Execute(gomock.Any(), a, gomock.Any(), gomock.Any()).
		Return(domain.ExitUnknownError, nil)

	m.events.EXPECT().
		OnInstallError(gomock.Any()).
		Return(ports.InstallErrorDecision{})

	code, err := o.Run(context.Background(), ordered, m.fsp, orchestrator.RunOptions{})

	require.ErrorIs(t, err, domain.ErrInstallFailed)
	assert.Equal(t, domain.ExitUnknownError, code)
	assert.Equal(t, domain.StateFailed, a.InstallState)
	assert.Equal(t, domain.StateBlocked, b.InstallState)
	assert.Equal(t, domain.StateNotStarted, c.InstallState, "run stopped before c")
	assert.Equal(t, domain.StateBlocked, session.States[b.ID], "blocked state is persisted")
}

func TestRun_RollbackRestoresBaseline(t *testing.T) {
	o, m := setupOrchestratorTest(t)
	session := expectSession(m)

	a := component("a")
	ordered := []*domain.Component{a}

	m.executor.EXPECT().
		Execute(gomock.Any(), a, gomock.Any(), gomock.Any()).
		Return(domain.ExitInstructionFailed, nil)

	m.events.EXPECT().
		OnInstallError(gomock.Any()).
		DoAndReturn(func(req ports.InstallErrorRequest) ports.InstallErrorDecision {
			assert.True(t, req.CanRollback)
			assert.Equal(t, domain.ExitInstructionFailed, req.Code)
			return ports.InstallErrorDecision{Rollback: true}
		})

	m.checkpoints.EXPECT().
		RollbackToCheckpoint(gomock.Any(), session, "baseline", gomock.Any()).
		Return(nil)

	code, err := o.Run(context.Background(), ordered, m.fsp, orchestrator.RunOptions{})

	require.ErrorIs(t, err, domain.ErrInstallFailed)
	assert.Equal(t, domain.ExitUserCancelledInstall, code)
	assert.Equal(t, domain.StateFailed, a.InstallState)
}

func TestRun_RollbackWithoutBaselineFailsComponent(t *testing.T) {
	o, m := setupOrchestratorTest(t)

	// A session without any checkpoint: there is no baseline to restore.
	session := &domain.Session{
		ID:     "sess-1",
		States: make(map[string]domain.InstallState),
	}
	m.checkpoints.EXPECT().StartSession(gomock.Any(), gomock.Any()).Return(session, nil)
	m.checkpoints.EXPECT().SaveSession(gomock.Any()).Return(nil).AnyTimes()

	a := component("a")
	b := component("b")
	ordered := []*domain.Component{a, b}

	m.executor.EXPECT().
		Execute(gomock.Any(), a, gomock.Any(), gomock.Any()).
		Return(domain.ExitInstructionFailed, nil)
	m.executor.EXPECT().
		Execute(gomock.Any(), b, gomock.Any(), gomock.Any()).
		Return(domain.ExitSuccess, nil)

	// The handler demands a rollback the session cannot honor; no
	// RollbackToCheckpoint expectation is set, so any attempt fails the
	// test.
	m.events.EXPECT().
		OnInstallError(gomock.Any()).
		DoAndReturn(func(req ports.InstallErrorRequest) ports.InstallErrorDecision {
			assert.False(t, req.CanRollback)
			return ports.InstallErrorDecision{Rollback: true}
		})

	m.checkpoints.EXPECT().
		CreateCheckpoint(gomock.Any(), gomock.Any(), "b", "b").
		Return(&domain.Checkpoint{ID: "cp"}, nil)
	m.checkpoints.EXPECT().CompleteSession(gomock.Any(), gomock.Any()).Return(nil)

	code, err := o.Run(context.Background(), ordered, m.fsp, orchestrator.RunOptions{})

	require.NoError(t, err)
	assert.Equal(t, domain.ExitSuccess, code)
	assert.Equal(t, domain.StateFailed, a.InstallState)
	assert.Equal(t, domain.StateCompleted, b.InstallState)
}

func TestRun_CancelledBeforeFirstComponent(t *testing.T) {
	o, m := setupOrchestratorTest(t)
	expectSession(m)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	ordered := []*domain.Component{component("a")}

	code, err := o.Run(ctx, ordered, m.fsp, orchestrator.RunOptions{})

	assert.Equal(t, domain.ExitUserCancelledInstall, code)
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, domain.StateNotStarted, ordered[0].InstallState)
}

func TestRun_NoticeCancelled(t *testing.T) {
	o, m := setupOrchestratorTest(t)
	expectSession(m)

	a := component("a")
	a.Notice = "this component overwrites save files"

	m.events.EXPECT().
		OnNotification(ports.NotificationRequest{
			ComponentName: "a",
			Message:       "this component overwrites save files",
		}).
		Return(ports.NotificationDecision{Cancelled: true})

	code, err := o.Run(context.Background(), []*domain.Component{a}, m.fsp, orchestrator.RunOptions{})

	require.ErrorIs(t, err, domain.ErrInstallFailed)
	assert.Equal(t, domain.ExitUserCancelledInstall, code)
	assert.Equal(t, domain.StateNotStarted, a.InstallState)
}

func TestRun_NoticeShownOnlyOnce(t *testing.T) {
	o, m := setupOrchestratorTest(t)
	expectSession(m)

	a := component("a")
	a.Notice = "first notice"
	b := component("b")
	b.Notice = "second notice"
	ordered := []*domain.Component{a, b}

	m.events.EXPECT().
		OnNotification(gomock.Any()).
		Return(ports.NotificationDecision{}).
		Times(1)

	m.executor.EXPECT().
		Execute(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(domain.ExitSuccess, nil).
		Times(2)
	m.checkpoints.EXPECT().
		CreateCheckpoint(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(&domain.Checkpoint{ID: "cp"}, nil).
		Times(2)
	m.checkpoints.EXPECT().CompleteSession(gomock.Any(), gomock.Any()).Return(nil)

	code, err := o.Run(context.Background(), ordered, m.fsp, orchestrator.RunOptions{})

	require.NoError(t, err)
	assert.Equal(t, domain.ExitSuccess, code)
}

func TestRun_ResumedRunSkipsAttemptedComponents(t *testing.T) {
	o, m := setupOrchestratorTest(t)
	session := expectSession(m)

	a := component("a")
	a.InstallState = domain.StateCompleted
	b := component("b")
	ordered := []*domain.Component{a, b}

	// Only b executes.
	m.executor.EXPECT().
		Execute(gomock.Any(), b, gomock.Any(), gomock.Any()).
		Return(domain.ExitSuccess, nil)
	m.checkpoints.EXPECT().
		CreateCheckpoint(gomock.Any(), gomock.Any(), "b", "b").
		Return(&domain.Checkpoint{ID: "cp"}, nil)
	m.checkpoints.EXPECT().CompleteSession(gomock.Any(), gomock.Any()).Return(nil)

	code, err := o.Run(context.Background(), ordered, m.fsp, orchestrator.RunOptions{})

	require.NoError(t, err)
	assert.Equal(t, domain.ExitSuccess, code)
	assert.Equal(t, domain.StateCompleted, session.States[a.ID], "prior state is persisted")
}

func TestRun_PanicIsRecovered(t *testing.T) {
	t.Run("continue decision keeps the run alive", func(t *testing.T) {
		o, m := setupOrchestratorTest(t)
		expectSession(m)

		a := component("a")
		b := component("b")
		ordered := []*domain.Component{a, b}

		m.executor.EXPECT().
			Execute(gomock.Any(), a, gomock.Any(), gomock.Any()).
			DoAndReturn(func(context.Context, *domain.Component, []*domain.Component, ports.FileSystemProvider) (domain.ExitCode, error) {
				panic("instruction engine blew up")
			})
		m.executor.EXPECT().
			Execute(gomock.Any(), b, gomock.Any(), gomock.Any()).
			Return(domain.ExitSuccess, nil)

		m.events.EXPECT().
			OnInstallError(gomock.Any()).
			Return(ports.InstallErrorDecision{Continue: true})

		m.checkpoints.EXPECT().
			CreateCheckpoint(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(&domain.Checkpoint{ID: "cp"}, nil)
		m.checkpoints.EXPECT().CompleteSession(gomock.Any(), gomock.Any()).Return(nil)

		code, err := o.Run(context.Background(), ordered, m.fsp, orchestrator.RunOptions{})

		require.NoError(t, err)
		assert.Equal(t, domain.ExitSuccess, code)
		assert.Equal(t, domain.StateFailed, a.InstallState)
		assert.Equal(t, domain.StateCompleted, b.InstallState)
	})

	t.Run("default decision aborts with unknown error", func(t *testing.T) {
		o, m := setupOrchestratorTest(t)
		expectSession(m)

		a := component("a")
		b := component("b")
		ordered := []*domain.Component{a, b}

		m.executor.EXPECT().
			Execute(gomock.Any(), a, gomock.Any(), gomock.Any()).
			DoAndReturn(func(context.Context, *domain.Component, []*domain.Component, ports.FileSystemProvider) (domain.ExitCode, error) {
				panic("instruction engine blew up")
			})

		m.events.EXPECT().
			OnInstallError(gomock.Any()).
			Return(ports.InstallErrorDecision{})

		code, err := o.Run(context.Background(), ordered, m.fsp, orchestrator.RunOptions{})

		require.ErrorIs(t, err, domain.ErrInstallFailed)
		assert.Equal(t, domain.ExitUnknownError, code)
		assert.Equal(t, domain.StateFailed, a.InstallState)
		assert.Equal(t, domain.StateNotStarted, b.InstallState)
	})
}

func TestRun_CheckpointFailureFailsComponent(t *testing.T) {
	o, m := setupOrchestratorTest(t)
	expectSession(m)

	a := component("a")
	b := component("b")
	ordered := []*domain.Component{a, b}

	m.executor.EXPECT().
		Execute(gomock.Any(), a, gomock.Any(), gomock.Any()).
		Return(domain.ExitSuccess, nil)
	m.checkpoints.EXPECT().
		CreateCheckpoint(gomock.Any(), gomock.Any(), "a", "a").
		Return(nil, domain.ErrCheckpointFailed)

	m.events.EXPECT().
		OnInstallError(gomock.Any()).
		DoAndReturn(func(req ports.InstallErrorRequest) ports.InstallErrorDecision {
			assert.Equal(t, domain.ExitFileSystemError, req.Code)
			return ports.InstallErrorDecision{}
		})

	m.executor.EXPECT().
		Execute(gomock.Any(), b, gomock.Any(), gomock.Any()).
		Return(domain.ExitSuccess, nil)
	m.checkpoints.EXPECT().
		CreateCheckpoint(gomock.Any(), gomock.Any(), "b", "b").
		Return(&domain.Checkpoint{ID: "cp"}, nil)
	m.checkpoints.EXPECT().CompleteSession(gomock.Any(), gomock.Any()).Return(nil)

	code, err := o.Run(context.Background(), ordered, m.fsp, orchestrator.RunOptions{})

	require.NoError(t, err)
	assert.Equal(t, domain.ExitSuccess, code)
	assert.Equal(t, domain.StateFailed, a.InstallState)
	assert.Equal(t, domain.StateCompleted, b.InstallState)
}
