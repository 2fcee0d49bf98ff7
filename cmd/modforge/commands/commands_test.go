package commands_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/modforge/modforge/cmd/modforge/commands"
	"github.com/modforge/modforge/internal/app"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockApp records the options each command hands to the application
// layer so flag wiring can be asserted.
type mockApp struct {
	installOpts  *app.InstallOptions
	orderOpts    *app.OrderOptions
	checkOpts    *app.CheckOptions
	sessionsOpts *app.SessionsOptions
	rollbackOpts *app.RollbackOptions

	err error
}

func (m *mockApp) Install(_ context.Context, opts app.InstallOptions) error {
	m.installOpts = &opts
	return m.err
}

func (m *mockApp) Order(_ context.Context, opts app.OrderOptions) error {
	m.orderOpts = &opts
	return m.err
}

func (m *mockApp) Check(_ context.Context, opts app.CheckOptions) error {
	m.checkOpts = &opts
	return m.err
}

func (m *mockApp) Sessions(_ context.Context, opts app.SessionsOptions) error {
	m.sessionsOpts = &opts
	return m.err
}

func (m *mockApp) Rollback(_ context.Context, opts app.RollbackOptions) error {
	m.rollbackOpts = &opts
	return m.err
}

func execute(t *testing.T, a *mockApp, args ...string) (string, string, error) {
	t.Helper()
	cli := commands.New(a)

	var out, errOut bytes.Buffer
	cli.SetOutput(&out, &errOut)
	cli.SetArgs(args)

	err := cli.Execute(context.Background())
	return out.String(), errOut.String(), err
}

func TestInstallCommand(t *testing.T) {
	a := &mockApp{}

	_, _, err := execute(t, a, "install",
		"-m", "pack/modforge.toml",
		"-s", "payload",
		"-d", "game",
		"--session-name", "first run",
		"--keep-checkpoints",
		"--ignore-errors",
		"--attempt-fixes",
		"--rollback-on-error",
		"-y",
		"-o", "rich",
	)

	require.NoError(t, err)
	require.NotNil(t, a.installOpts)
	assert.Equal(t, app.InstallOptions{
		ManifestPath:       "pack/modforge.toml",
		Source:             "payload",
		Destination:        "game",
		SessionName:        "first run",
		KeepCheckpoints:    true,
		IgnoreErrors:       true,
		AttemptFixes:       true,
		RollbackOnError:    true,
		AcknowledgeNotices: true,
		OutputMode:         "rich",
	}, *a.installOpts)
}

func TestInstallCommand_Defaults(t *testing.T) {
	a := &mockApp{}

	_, _, err := execute(t, a, "install", "-d", "game")

	require.NoError(t, err)
	require.NotNil(t, a.installOpts)
	assert.Equal(t, ".", a.installOpts.Source)
	assert.Equal(t, "linear", a.installOpts.OutputMode)
	assert.False(t, a.installOpts.AcknowledgeNotices)
}

func TestInstallCommand_RequiresDest(t *testing.T) {
	a := &mockApp{}

	_, _, err := execute(t, a, "install")

	require.Error(t, err)
	assert.Nil(t, a.installOpts)
}

func TestOrderCommand(t *testing.T) {
	a := &mockApp{}

	_, _, err := execute(t, a, "order", "-m", "modforge.yaml", "--bake", "--ignore-errors")

	require.NoError(t, err)
	require.NotNil(t, a.orderOpts)
	assert.Equal(t, app.OrderOptions{
		ManifestPath: "modforge.yaml",
		IgnoreErrors: true,
		Bake:         true,
	}, *a.orderOpts)
}

func TestOrderCommand_BakeAndClearAreExclusive(t *testing.T) {
	a := &mockApp{}

	_, _, err := execute(t, a, "order", "--bake", "--clear")

	require.Error(t, err)
	assert.Nil(t, a.orderOpts)
}

func TestCheckCommand(t *testing.T) {
	a := &mockApp{}

	_, _, err := execute(t, a, "check", "-m", "modforge.toml")

	require.NoError(t, err)
	require.NotNil(t, a.checkOpts)
	assert.Equal(t, "modforge.toml", a.checkOpts.ManifestPath)
}

func TestSessionsListCommand(t *testing.T) {
	a := &mockApp{}

	_, _, err := execute(t, a, "sessions", "list", "-d", "game")

	require.NoError(t, err)
	require.NotNil(t, a.sessionsOpts)
	assert.Equal(t, "game", a.sessionsOpts.Destination)
}

func TestSessionsRollbackCommand(t *testing.T) {
	a := &mockApp{}

	_, _, err := execute(t, a, "sessions", "rollback", "sess-42", "-d", "game", "--checkpoint", "cp-7")

	require.NoError(t, err)
	require.NotNil(t, a.rollbackOpts)
	assert.Equal(t, app.RollbackOptions{
		Destination:  "game",
		SessionID:    "sess-42",
		CheckpointID: "cp-7",
	}, *a.rollbackOpts)
}

func TestSessionsRollbackCommand_Latest(t *testing.T) {
	a := &mockApp{}

	_, _, err := execute(t, a, "sessions", "rollback", "sess-42", "-d", "game", "--latest")

	require.NoError(t, err)
	require.NotNil(t, a.rollbackOpts)
	assert.Equal(t, app.RollbackOptions{
		Destination: "game",
		SessionID:   "sess-42",
		Latest:      true,
	}, *a.rollbackOpts)
}

func TestSessionsRollbackCommand_LatestAndCheckpointAreExclusive(t *testing.T) {
	a := &mockApp{}

	_, _, err := execute(t, a, "sessions", "rollback", "sess-42", "-d", "game",
		"--checkpoint", "cp-7", "--latest")

	require.Error(t, err)
	assert.Nil(t, a.rollbackOpts)
}

func TestSessionsRollbackCommand_RequiresSessionID(t *testing.T) {
	a := &mockApp{}

	_, _, err := execute(t, a, "sessions", "rollback", "-d", "game")

	require.Error(t, err)
	assert.Nil(t, a.rollbackOpts)
}

func TestCommandErrorsPropagate(t *testing.T) {
	a := &mockApp{err: errors.New("resolve failed")}

	_, _, err := execute(t, a, "check")

	require.EqualError(t, err, "resolve failed")
}

func TestVersionCommand(t *testing.T) {
	a := &mockApp{}

	out, _, err := execute(t, a, "version")

	require.NoError(t, err)
	assert.Contains(t, out, "modforge version")
	assert.Contains(t, out, "commit:")
}
