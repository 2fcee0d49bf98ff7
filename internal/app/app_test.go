package app_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/modforge/modforge/internal/adapters/checkpoint"
	"github.com/modforge/modforge/internal/adapters/fs"
	"github.com/modforge/modforge/internal/app"
	"github.com/modforge/modforge/internal/core/domain"
	"github.com/modforge/modforge/internal/core/ports/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type appTestMocks struct {
	manifests *mocks.MockManifestLoader
	logger    *mocks.MockLogger
}

func setupAppTest(t *testing.T) (*app.App, appTestMocks, *bytes.Buffer) {
	t.Helper()
	ctrl := gomock.NewController(t)
	m := appTestMocks{
		manifests: mocks.NewMockManifestLoader(ctrl),
		logger:    mocks.NewMockLogger(ctrl),
	}
	m.logger.EXPECT().Info(gomock.Any()).AnyTimes()
	m.logger.EXPECT().Warn(gomock.Any()).AnyTimes()
	m.logger.EXPECT().Error(gomock.Any()).AnyTimes()

	var stdout bytes.Buffer
	a := app.New(m.manifests, fs.NewProvider(), m.logger).WithOutput(&stdout)
	return a, m, &stdout
}

func component(name string) *domain.Component {
	return &domain.Component{
		ID:         name,
		Name:       name,
		IsSelected: true,
	}
}

func TestOrder(t *testing.T) {
	a, m, stdout := setupAppTest(t)

	b := component("b")
	b.InstallBefore = []string{"a"}
	m.manifests.EXPECT().
		Load("modforge.toml").
		Return([]*domain.Component{b, component("a")}, nil)

	err := a.Order(context.Background(), app.OrderOptions{ManifestPath: "modforge.toml"})

	require.NoError(t, err)
	assert.Equal(t, "1. a\n2. b\n", stdout.String())
}

func TestOrder_DiscoversManifest(t *testing.T) {
	a, m, _ := setupAppTest(t)

	cwd, err := os.Getwd()
	require.NoError(t, err)

	m.manifests.EXPECT().Discover(cwd).Return("/found/modforge.toml", nil)
	m.manifests.EXPECT().Load("/found/modforge.toml").Return([]*domain.Component{component("a")}, nil)

	require.NoError(t, a.Order(context.Background(), app.OrderOptions{}))
}

func TestOrder_Clear(t *testing.T) {
	a, m, stdout := setupAppTest(t)

	b := component("b")
	b.InstallBefore = []string{"a"}
	m.manifests.EXPECT().
		Load("modforge.toml").
		Return([]*domain.Component{b, component("a")}, nil)

	err := a.Order(context.Background(), app.OrderOptions{ManifestPath: "modforge.toml", Clear: true})

	require.NoError(t, err)
	assert.Equal(t, "1. b\n2. a\n", stdout.String(), "cleared constraints leave declaration order")
}

func TestOrder_Bake(t *testing.T) {
	a, m, stdout := setupAppTest(t)

	first := component("first")
	second := component("second")
	second.InstallBefore = []string{"first"}
	m.manifests.EXPECT().
		Load("modforge.toml").
		Return([]*domain.Component{second, first}, nil)

	err := a.Order(context.Background(), app.OrderOptions{ManifestPath: "modforge.toml", Bake: true})

	require.NoError(t, err)
	assert.Equal(t, "1. first\n2. second\n", stdout.String())
	assert.Equal(t, []string{"second"}, first.InstallAfter, "bake writes explicit constraints")
}

func TestOrder_IgnoreErrors_PrintsBestEffortOrder(t *testing.T) {
	a, m, stdout := setupAppTest(t)

	withGhost := component("a")
	withGhost.InstallBefore = []string{"ghost"}
	m.manifests.EXPECT().
		Load("modforge.toml").
		Return([]*domain.Component{withGhost, component("b")}, nil)

	err := a.Order(context.Background(), app.OrderOptions{
		ManifestPath: "modforge.toml",
		IgnoreErrors: true,
	})

	require.NoError(t, err, "a complete best-effort order is printed, not rejected")
	assert.Equal(t, "1. a\n2. b\n", stdout.String())
}

func TestOrder_UnresolvableCycle(t *testing.T) {
	a, m, _ := setupAppTest(t)

	x := component("x")
	y := component("y")
	x.InstallBefore = []string{"y"}
	y.InstallBefore = []string{"x"}
	m.manifests.EXPECT().
		Load("modforge.toml").
		Return([]*domain.Component{x, y}, nil)

	err := a.Order(context.Background(), app.OrderOptions{ManifestPath: "modforge.toml"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "could not resolve installation order")
}

func TestCheck_NoCycles(t *testing.T) {
	a, m, stdout := setupAppTest(t)

	m.manifests.EXPECT().
		Load("modforge.toml").
		Return([]*domain.Component{component("a")}, nil)

	err := a.Check(context.Background(), app.CheckOptions{ManifestPath: "modforge.toml"})

	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "No circular dependencies found.")
}

func TestCheck_ReportsCycles(t *testing.T) {
	a, m, stdout := setupAppTest(t)

	x := component("x")
	y := component("y")
	x.Dependencies = []string{"y"}
	y.Dependencies = []string{"x"}
	m.manifests.EXPECT().
		Load("modforge.toml").
		Return([]*domain.Component{x, y}, nil)

	err := a.Check(context.Background(), app.CheckOptions{ManifestPath: "modforge.toml"})

	require.ErrorIs(t, err, domain.ErrCircularDependency)
	out := stdout.String()
	assert.Contains(t, out, "Found 1 circular dependency chain(s):")
	assert.Contains(t, out, "Consider removing: x, y")
}

func TestSessions_Empty(t *testing.T) {
	a, _, stdout := setupAppTest(t)

	err := a.Sessions(context.Background(), app.SessionsOptions{Destination: t.TempDir()})

	require.NoError(t, err)
	assert.Equal(t, "no sessions found\n", stdout.String())
}

func TestRollback_UnknownSession(t *testing.T) {
	a, _, _ := setupAppTest(t)

	err := a.Rollback(context.Background(), app.RollbackOptions{
		Destination: t.TempDir(),
		SessionID:   "no-such-session",
	})

	require.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestInstall_NoSelectedComponents(t *testing.T) {
	a, m, _ := setupAppTest(t)

	unselected := component("a")
	unselected.IsSelected = false
	m.manifests.EXPECT().
		Load("modforge.toml").
		Return([]*domain.Component{unselected}, nil)

	err := a.Install(context.Background(), app.InstallOptions{ManifestPath: "modforge.toml"})

	require.ErrorIs(t, err, domain.ErrNoComponentsSelected)
}

func TestInstall_RequiresDestination(t *testing.T) {
	a, m, _ := setupAppTest(t)

	m.manifests.EXPECT().
		Load("modforge.toml").
		Return([]*domain.Component{component("a")}, nil)

	err := a.Install(context.Background(), app.InstallOptions{ManifestPath: "modforge.toml"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "destination path is required")
}

func TestInstall_EndToEnd(t *testing.T) {
	a, m, _ := setupAppTest(t)

	source := t.TempDir()
	dest := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(source, "plugin.esp"), []byte("payload"), 0o644))

	c := component("Plugin")
	c.Instructions = []domain.Instruction{
		{Kind: domain.InstructionCopy, Source: "plugin.esp", Destination: "Data/plugin.esp"},
	}
	m.manifests.EXPECT().
		Load("modforge.toml").
		Return([]*domain.Component{c}, nil)

	err := a.Install(context.Background(), app.InstallOptions{
		ManifestPath: "modforge.toml",
		Source:       source,
		Destination:  dest,
	})

	require.NoError(t, err)
	assert.Equal(t, domain.StateCompleted, c.InstallState)

	data, err := os.ReadFile(filepath.Join(dest, "Data", "plugin.esp"))
	require.NoError(t, err)
	assert.Equal(t, "payload", string(data))

	// A completed run leaves a session record behind.
	entries, err := os.ReadDir(domain.SessionsPath(dest))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestInstall_IgnoreErrors_ProceedsWithBestEffortOrder(t *testing.T) {
	a, m, _ := setupAppTest(t)

	source := t.TempDir()
	dest := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(source, "plugin.esp"), []byte("payload"), 0o644))

	c := component("Plugin")
	c.Dependencies = []string{"ghost"}
	c.Instructions = []domain.Instruction{
		{Kind: domain.InstructionCopy, Source: "plugin.esp", Destination: "Data/plugin.esp"},
	}
	m.manifests.EXPECT().
		Load("modforge.toml").
		Return([]*domain.Component{c}, nil)

	err := a.Install(context.Background(), app.InstallOptions{
		ManifestPath: "modforge.toml",
		Source:       source,
		Destination:  dest,
		IgnoreErrors: true,
	})

	require.NoError(t, err, "the dangling dependency is logged, not fatal")
	assert.Equal(t, domain.StateCompleted, c.InstallState)
	assert.FileExists(t, filepath.Join(dest, "Data", "plugin.esp"))
}

func TestRollback_LatestCheckpoint(t *testing.T) {
	a, m, _ := setupAppTest(t)

	dest := t.TempDir()
	configPath := filepath.Join(dest, "config.ini")
	require.NoError(t, os.WriteFile(configPath, []byte("v1"), 0o644))

	// Build a session with one checkpoint beyond the baseline, then dirty
	// the tree again.
	svc := checkpoint.NewService(dest, m.logger)
	session, err := svc.StartSession(context.Background(), "")
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(configPath, []byte("v2"), 0o644))
	_, err = svc.CreateCheckpoint(context.Background(), session, "a", "a")
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(configPath, []byte("v3"), 0o644))

	err = a.Rollback(context.Background(), app.RollbackOptions{
		Destination: dest,
		SessionID:   session.ID,
		Latest:      true,
	})

	require.NoError(t, err)
	data, err := os.ReadFile(configPath)
	require.NoError(t, err)
	assert.Equal(t, "v2", string(data), "the most recent checkpoint wins over the baseline")
}
