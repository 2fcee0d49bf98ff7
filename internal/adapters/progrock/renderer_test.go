package progrock_test

import (
	"errors"
	"testing"

	"github.com/modforge/modforge/internal/adapters/progrock"
	"github.com/modforge/modforge/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	prog "github.com/vito/progrock"
)

func TestRenderer_Lifecycle(t *testing.T) {
	r := progrock.NewRenderer(prog.NewTape())

	require.NoError(t, r.Start(t.Context()))

	r.OnPlan([]string{"a", "b"})
	r.OnProgress(domain.ProgressUpdate{Phase: domain.PhaseInitializing, Message: "starting"})

	r.OnComponentStart("a", 1, 2)
	r.OnProgress(domain.ProgressUpdate{
		Phase:         domain.PhaseInstallingComponent,
		ComponentName: "a",
		Message:       "installing a",
	})
	r.OnComponentComplete("a", nil)

	r.OnComponentStart("b", 2, 2)
	r.OnComponentComplete("b", errors.New("instruction failed"))

	// Completing an unknown component is a no-op.
	r.OnComponentComplete("ghost", nil)

	require.NoError(t, r.Wait())
	require.NoError(t, r.Stop())
}

func TestRenderer_StopClosesOpenVertices(t *testing.T) {
	tape := prog.NewTape()
	r := progrock.NewRenderer(tape)

	r.OnComponentStart("left open", 1, 1)
	r.OnProgress(domain.ProgressUpdate{Phase: domain.PhaseRollingBack, Message: "file.txt"})

	assert.NoError(t, r.Stop())
}
