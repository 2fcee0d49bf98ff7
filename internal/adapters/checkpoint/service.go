// Package checkpoint implements session persistence and filesystem
// snapshots for installation runs.
package checkpoint

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/modforge/modforge/internal/core/domain"
	"github.com/modforge/modforge/internal/core/ports"
	"go.trai.ch/zerr"
)

// Service implements ports.CheckpointService using a file-per-session
// strategy under the destination's metadata directory. Snapshots are
// plain file copies, so a broken run can always be repaired by hand.
type Service struct {
	dest   string
	logger ports.Logger
}

// NewService creates a checkpoint service rooted at the destination tree.
func NewService(dest string, logger ports.Logger) *Service {
	return &Service{
		dest:   dest,
		logger: logger,
	}
}

// StartSession opens a new session and takes the baseline checkpoint.
func (s *Service) StartSession(ctx context.Context, name string) (*domain.Session, error) {
	session := &domain.Session{
		ID:        uuid.NewString(),
		Name:      name,
		StartedAt: time.Now().UTC(),
		States:    make(map[string]domain.InstallState),
	}

	// The baseline carries empty component fields; it is what a full
	// rollback restores.
	if _, err := s.CreateCheckpoint(ctx, session, "", ""); err != nil {
		return nil, zerr.Wrap(err, domain.ErrSessionCreateFailed.Error())
	}

	return session, nil
}

// CreateCheckpoint snapshots the destination tree and appends a
// checkpoint tagged with the component to the session.
func (s *Service) CreateCheckpoint(
	ctx context.Context,
	session *domain.Session,
	componentName, componentID string,
) (*domain.Checkpoint, error) {
	cp := domain.Checkpoint{
		ID:            uuid.NewString(),
		ComponentID:   componentID,
		ComponentName: componentName,
		CreatedAt:     time.Now().UTC(),
	}
	cp.SnapshotRef = filepath.Join(domain.ModforgeDirName, domain.SnapshotsDirName, cp.ID)

	snapDir := filepath.Join(domain.SnapshotsPath(s.dest), cp.ID)
	if err := s.writeSnapshot(ctx, snapDir); err != nil {
		return nil, zerr.Wrap(err, domain.ErrCheckpointFailed.Error())
	}

	session.Checkpoints = append(session.Checkpoints, cp)
	if err := s.SaveSession(session); err != nil {
		return nil, err
	}

	return &session.Checkpoints[len(session.Checkpoints)-1], nil
}

// RollbackToCheckpoint restores the destination tree to the state
// captured by the given checkpoint. Checkpoints taken after it are
// discarded together with their snapshots.
func (s *Service) RollbackToCheckpoint(
	ctx context.Context,
	session *domain.Session,
	checkpointID string,
	progress ports.ProgressFunc,
) error {
	cp := session.FindCheckpoint(checkpointID)
	if cp == nil {
		return zerr.With(zerr.Wrap(domain.ErrCheckpointNotFound, checkpointID),
			"checkpoint_id", checkpointID)
	}

	snapDir := filepath.Join(domain.SnapshotsPath(s.dest), cp.ID)
	if err := s.restoreSnapshot(ctx, snapDir, progress); err != nil {
		return zerr.Wrap(err, domain.ErrRollbackFailed.Error())
	}

	// Everything after the restored checkpoint is stale.
	idx := indexOfCheckpoint(session, cp.ID)
	for _, stale := range session.Checkpoints[idx+1:] {
		staleDir := filepath.Join(domain.SnapshotsPath(s.dest), stale.ID)
		if err := os.RemoveAll(staleDir); err != nil {
			s.logger.Warn(fmt.Sprintf("could not remove stale snapshot %s: %v", stale.ID, err))
		}
	}
	session.Checkpoints = session.Checkpoints[:idx+1]

	return s.SaveSession(session)
}

// SaveSession persists the session, including component states.
func (s *Service) SaveSession(session *domain.Session) error {
	data, err := json.MarshalIndent(session, "", "  ")
	if err != nil {
		return zerr.Wrap(err, domain.ErrSessionMarshalFailed.Error())
	}

	dir := domain.SessionsPath(s.dest)
	if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
		return zerr.Wrap(err, domain.ErrSessionCreateFailed.Error())
	}

	filename := filepath.Join(dir, session.ID+".json")
	//nolint:gosec // Path is constructed from the trusted sessions directory and a uuid
	if err := os.WriteFile(filename, data, domain.FilePerm); err != nil {
		return zerr.Wrap(err, domain.ErrSessionWriteFailed.Error())
	}

	return nil
}

// CompleteSession marks the session finished and optionally discards its
// snapshots. The session file itself is always kept for inspection.
func (s *Service) CompleteSession(session *domain.Session, keepCheckpoints bool) error {
	session.Completed = true
	if err := s.SaveSession(session); err != nil {
		return err
	}

	if keepCheckpoints {
		return nil
	}

	for _, cp := range session.Checkpoints {
		snapDir := filepath.Join(domain.SnapshotsPath(s.dest), cp.ID)
		if err := os.RemoveAll(snapDir); err != nil {
			s.logger.Warn(fmt.Sprintf("could not remove snapshot %s: %v", cp.ID, err))
		}
	}

	return nil
}

// ListSessions returns all persisted sessions, oldest first.
func (s *Service) ListSessions() ([]*domain.Session, error) {
	dir := domain.SessionsPath(s.dest)

	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, zerr.Wrap(err, domain.ErrSessionReadFailed.Error())
	}

	sessions := make([]*domain.Session, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}

		//nolint:gosec // Path is constructed from the trusted sessions directory listing
		data, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, zerr.Wrap(err, domain.ErrSessionReadFailed.Error())
		}

		var session domain.Session
		if err := json.Unmarshal(data, &session); err != nil {
			return nil, zerr.Wrap(err, domain.ErrSessionUnmarshalFailed.Error())
		}
		sessions = append(sessions, &session)
	}

	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].StartedAt.Before(sessions[j].StartedAt)
	})

	return sessions, nil
}

func indexOfCheckpoint(session *domain.Session, id string) int {
	for i := range session.Checkpoints {
		if session.Checkpoints[i].ID == id {
			return i
		}
	}
	return -1
}
