package domain

import "time"

// Checkpoint is a recoverable snapshot taken after a component installed
// successfully. The baseline checkpoint of a session carries empty
// component fields.
type Checkpoint struct {
	ID            string    `json:"id"`
	ComponentID   string    `json:"componentId"`
	ComponentName string    `json:"componentName"`
	SnapshotRef   string    `json:"snapshotRef"`
	CreatedAt     time.Time `json:"createdAt"`
}

// Session is an ordered sequence of checkpoints for one installation
// run, plus the persisted install state of every component the run has
// touched.
type Session struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	StartedAt time.Time `json:"startedAt"`
	Completed bool      `json:"completed"`

	Checkpoints []Checkpoint            `json:"checkpoints"`
	States      map[string]InstallState `json:"states"`
}

// Baseline returns the first checkpoint of the session, or nil if none
// was taken.
func (s *Session) Baseline() *Checkpoint {
	if len(s.Checkpoints) == 0 {
		return nil
	}
	return &s.Checkpoints[0]
}

// Latest returns the most recent checkpoint, or nil if none was taken.
func (s *Session) Latest() *Checkpoint {
	if len(s.Checkpoints) == 0 {
		return nil
	}
	return &s.Checkpoints[len(s.Checkpoints)-1]
}

// FindCheckpoint returns the checkpoint with the given id, or nil.
func (s *Session) FindCheckpoint(id string) *Checkpoint {
	for i := range s.Checkpoints {
		if s.Checkpoints[i].ID == id {
			return &s.Checkpoints[i]
		}
	}
	return nil
}

// RecordState stores a component's install state on the session.
func (s *Session) RecordState(componentID string, state InstallState) {
	if s.States == nil {
		s.States = make(map[string]InstallState)
	}
	s.States[componentID] = state
}
