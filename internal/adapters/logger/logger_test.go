package logger_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/modforge/modforge/internal/adapters/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/zerr"
)

func setupLoggerTest(t *testing.T) (*logger.Logger, *bytes.Buffer) {
	t.Helper()
	t.Setenv("NO_COLOR", "1")

	l, ok := logger.New().(*logger.Logger)
	require.True(t, ok)

	var buf bytes.Buffer
	l.SetOutput(&buf)
	return l, &buf
}

func TestLogger_InfoAndWarn(t *testing.T) {
	l, buf := setupLoggerTest(t)

	l.Info("loading manifest")
	l.Warn("manifest has no top-level name")

	out := buf.String()
	assert.Contains(t, out, "loading manifest")
	assert.Contains(t, out, "manifest has no top-level name")
}

func TestLogger_Error_FormatsCauseChain(t *testing.T) {
	l, buf := setupLoggerTest(t)

	err := zerr.New("permission denied")
	err = zerr.Wrap(err, "failed to write copy destination")
	err = zerr.Wrap(err, "installation failed")

	l.Error(err)

	out := buf.String()
	assert.Contains(t, out, "Error: installation failed")
	assert.Contains(t, out, "Caused by:")
	assert.Contains(t, out, "→ failed to write copy destination")
	assert.Contains(t, out, "→ permission denied")
}

func TestLogger_Error_PlainError(t *testing.T) {
	l, buf := setupLoggerTest(t)

	l.Error(errors.New("disk full"))

	out := buf.String()
	assert.Contains(t, out, "Error: disk full")
	assert.NotContains(t, out, "Caused by:")
}

func TestLogger_Error_Nil(t *testing.T) {
	l, buf := setupLoggerTest(t)

	l.Error(nil)

	assert.Empty(t, buf.String())
}

func TestLogger_JSONMode(t *testing.T) {
	l, buf := setupLoggerTest(t)
	l.SetJSON(true)

	l.Error(zerr.New("snapshot failed"))

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "ERROR", record["level"])
	assert.Equal(t, "operation failed", record["msg"])
	assert.Contains(t, record["error"], "snapshot failed")
}

func TestLogger_SetOutput_NilFallsBackToStderr(t *testing.T) {
	l, buf := setupLoggerTest(t)

	l.SetOutput(nil)
	l.Info("goes to stderr, not the buffer")

	assert.Empty(t, buf.String())
}
