package ports

import (
	"context"

	"github.com/modforge/modforge/internal/core/domain"
)

// ProgressFunc receives progress updates from long-running operations.
// A nil ProgressFunc is always legal.
type ProgressFunc func(update domain.ProgressUpdate)

// CheckpointService owns installation sessions and filesystem snapshots.
// The orchestrator creates one checkpoint per successfully installed
// component and rolls back to the baseline checkpoint on request.
//
//go:generate mockgen -source=checkpoints.go -destination=mocks/mock_checkpoints.go -package=mocks
type CheckpointService interface {
	// StartSession opens a new session and takes the baseline checkpoint.
	StartSession(ctx context.Context, name string) (*domain.Session, error)

	// CreateCheckpoint snapshots the destination tree and appends a
	// checkpoint tagged with the component to the session.
	CreateCheckpoint(
		ctx context.Context,
		session *domain.Session,
		componentName, componentID string,
	) (*domain.Checkpoint, error)

	// RollbackToCheckpoint restores the destination tree to the state
	// captured by the given checkpoint.
	RollbackToCheckpoint(
		ctx context.Context,
		session *domain.Session,
		checkpointID string,
		progress ProgressFunc,
	) error

	// SaveSession persists the session, including component states.
	SaveSession(session *domain.Session) error

	// CompleteSession marks the session finished and optionally discards
	// its snapshots.
	CompleteSession(session *domain.Session, keepCheckpoints bool) error

	// ListSessions returns all persisted sessions, oldest first.
	ListSessions() ([]*domain.Session, error)
}
