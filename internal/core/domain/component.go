// Package domain contains the core domain models for the component
// installation graph.
package domain

import (
	"slices"

	"github.com/google/uuid"
)

// InstallState is the lifecycle state of a component across one
// installation run. It is mutated only by the orchestrator.
type InstallState string

const (
	// StateNotStarted indicates the component has not been attempted yet.
	StateNotStarted InstallState = "NotStarted"
	// StateCompleted indicates the component installed successfully.
	StateCompleted InstallState = "Completed"
	// StateSkipped indicates the component was deliberately not installed.
	StateSkipped InstallState = "Skipped"
	// StateBlocked indicates the component was not attempted because a
	// prerequisite failed.
	StateBlocked InstallState = "Blocked"
	// StateFailed indicates the component's instructions failed.
	StateFailed InstallState = "Failed"
)

// InstructionKind identifies the operation an instruction performs.
type InstructionKind string

const (
	// InstructionCopy copies a file or directory into the destination.
	InstructionCopy InstructionKind = "copy"
	// InstructionMove moves a file within the destination.
	InstructionMove InstructionKind = "move"
	// InstructionDelete removes a file from the destination.
	InstructionDelete InstructionKind = "delete"
	// InstructionMkDir creates a directory in the destination.
	InstructionMkDir InstructionKind = "mkdir"
)

// Instruction is a single file operation carried by a component.
// Richer instruction engines plug in through ports.InstructionExecutor;
// the domain only carries the data.
type Instruction struct {
	Kind        InstructionKind
	Source      string
	Destination string
}

// Component is a unit of installable content with ordering and
// mutual-exclusion constraints against other components.
//
// The four edge sets hold component ids in insertion order. Dependencies
// are selection requirements; InstallBefore/InstallAfter are pure
// sequencing hints independent of dependency semantics.
type Component struct {
	ID     string
	Name   string
	Author string

	Dependencies  []string
	Restrictions  []string
	InstallBefore []string
	InstallAfter  []string

	Instructions []Instruction

	// Notice, when non-empty, requires a one-time blocking user
	// acknowledgment before the component installs.
	Notice string

	IsSelected   bool
	InstallState InstallState
}

// NewComponent creates a component with a freshly assigned id.
func NewComponent(name, author string) *Component {
	return &Component{
		ID:           uuid.NewString(),
		Name:         name,
		Author:       author,
		InstallState: StateNotStarted,
	}
}

// RegenerateID assigns a new id to the component. Used by the
// attempt-fixes recovery path when duplicate ids are found.
func (c *Component) RegenerateID() {
	c.ID = uuid.NewString()
}

// ReferencesSelf reports whether the component lists its own id in any
// of its edge sets. Self-references are validation errors.
func (c *Component) ReferencesSelf() bool {
	return slices.Contains(c.Dependencies, c.ID) ||
		slices.Contains(c.Restrictions, c.ID) ||
		slices.Contains(c.InstallBefore, c.ID) ||
		slices.Contains(c.InstallAfter, c.ID)
}

// Attempted reports whether the component already carries a terminal
// state from a prior resumed run.
func (c *Component) Attempted() bool {
	switch c.InstallState {
	case StateCompleted, StateSkipped, StateBlocked, StateFailed:
		return true
	default:
		return false
	}
}

// SelectedComponents filters the list down to components the user has
// selected, preserving order.
func SelectedComponents(components []*Component) []*Component {
	selected := make([]*Component, 0, len(components))
	for _, c := range components {
		if c.IsSelected {
			selected = append(selected, c)
		}
	}
	return selected
}

// ComponentsByID indexes components by id. Later duplicates do not
// overwrite earlier ones; duplicate detection is the resolver's job.
func ComponentsByID(components []*Component) map[string]*Component {
	byID := make(map[string]*Component, len(components))
	for _, c := range components {
		if _, exists := byID[c.ID]; !exists {
			byID[c.ID] = c
		}
	}
	return byID
}
