package linear_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/modforge/modforge/internal/adapters/linear"
	"github.com/modforge/modforge/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderer_Lifecycle(t *testing.T) {
	r := linear.NewRenderer(&bytes.Buffer{}, &bytes.Buffer{})

	require.NoError(t, r.Start(t.Context()))
	require.NoError(t, r.Wait())
	require.NoError(t, r.Stop())
}

func TestRenderer_OnPlan(t *testing.T) {
	var stderr bytes.Buffer
	r := linear.NewRenderer(&bytes.Buffer{}, &stderr)

	r.OnPlan([]string{"Better Textures", "UI Overhaul"})

	assert.Equal(t, "Installing 2 component(s): Better Textures, UI Overhaul\n", stderr.String())
}

func TestRenderer_OnProgress(t *testing.T) {
	var stderr bytes.Buffer
	r := linear.NewRenderer(&bytes.Buffer{}, &stderr)

	r.OnProgress(domain.ProgressUpdate{Phase: domain.PhaseInitializing})
	r.OnProgress(domain.ProgressUpdate{Phase: domain.PhaseInstallingComponent, ComponentName: "a"})
	r.OnProgress(domain.ProgressUpdate{Phase: domain.PhaseCompleted})

	out := stderr.String()
	assert.Contains(t, out, "Preparing installation session...")
	assert.Contains(t, out, "Installation finished.")
	assert.NotContains(t, out, "a", "per-component phases are covered by the component hooks")
}

func TestRenderer_OnProgress_CollapsesRollbackUpdates(t *testing.T) {
	var stderr bytes.Buffer
	r := linear.NewRenderer(&bytes.Buffer{}, &stderr)

	for i := 1; i <= 5; i++ {
		r.OnProgress(domain.ProgressUpdate{
			Phase:   domain.PhaseRollingBack,
			Current: i,
			Total:   5,
		})
	}

	out := stderr.String()
	assert.Contains(t, out, "Rolling back... (1/5)")
	assert.Contains(t, out, "Rolling back... (5/5)")
	assert.NotContains(t, out, "(3/5)", "intermediate updates are collapsed")
}

func TestRenderer_ComponentLines(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	var stderr bytes.Buffer
	r := linear.NewRenderer(&bytes.Buffer{}, &stderr)

	r.OnComponentStart("Better Textures", 1, 2)
	r.OnComponentComplete("Better Textures", nil)
	r.OnComponentStart("UI Overhaul", 2, 2)
	r.OnComponentComplete("UI Overhaul", errors.New("instruction failed"))

	out := stderr.String()
	assert.Contains(t, out, "[1/2] Better Textures")
	assert.Contains(t, out, "Better Textures installed in")
	assert.Contains(t, out, "[2/2] UI Overhaul")
	assert.Contains(t, out, "UI Overhaul failed after")
	assert.Contains(t, out, "instruction failed")
}
