package domain

// ProgressPhase identifies the stage of an installation run a progress
// update belongs to.
type ProgressPhase string

const (
	// PhaseInitializing covers session setup before the first component.
	PhaseInitializing ProgressPhase = "Initializing"
	// PhaseInstallingComponent covers instruction execution.
	PhaseInstallingComponent ProgressPhase = "InstallingComponent"
	// PhaseCreatingCheckpoint covers snapshot creation.
	PhaseCreatingCheckpoint ProgressPhase = "CreatingCheckpoint"
	// PhaseRollingBack covers checkpoint restoration.
	PhaseRollingBack ProgressPhase = "RollingBack"
	// PhaseCompleted is emitted once when the run finishes.
	PhaseCompleted ProgressPhase = "Completed"
)

// ProgressUpdate is one message on the progress channel.
type ProgressUpdate struct {
	Phase         ProgressPhase
	Current       int
	Total         int
	ComponentName string
	Message       string
}
