package domain

import "go.trai.ch/zerr"

var (
	// ErrSelfReference is returned when a component lists its own id in one
	// of its edge sets.
	ErrSelfReference = zerr.New("component references itself")

	// ErrDuplicateComponent is returned when two components share an id.
	ErrDuplicateComponent = zerr.New("duplicate component id")

	// ErrComponentNotFound is returned when a referenced component id does
	// not resolve to a known component.
	ErrComponentNotFound = zerr.New("component not found")

	// ErrMissingInstallBefore is returned when an installBefore target is
	// absent from the component set.
	ErrMissingInstallBefore = zerr.New("installBefore target not in component set")

	// ErrMissingInstallAfter is returned when an installAfter target is
	// absent from the component set.
	ErrMissingInstallAfter = zerr.New("installAfter target not in component set")

	// ErrMissingDependency is returned when a dependency id is absent from
	// the component set.
	ErrMissingDependency = zerr.New("dependency not in component set")

	// ErrCircularDependency is returned when the install graph contains a
	// cycle.
	ErrCircularDependency = zerr.New("circular dependency detected")

	// ErrTopologicalSortFailed wraps an unexpected internal failure of the
	// topological sort.
	ErrTopologicalSortFailed = zerr.New("topological sort failed")

	// ErrRestrictionViolated is returned when two mutually exclusive
	// components are selected together.
	ErrRestrictionViolated = zerr.New("mutually exclusive components selected")

	// ErrNoComponentsSelected is returned when an installation is requested
	// with nothing selected.
	ErrNoComponentsSelected = zerr.New("no components selected")

	// ErrManifestNotFound is returned when no component manifest can be
	// located.
	ErrManifestNotFound = zerr.New("could not find modforge.toml or modforge.yaml")

	// ErrManifestReadFailed is returned when the manifest cannot be read.
	ErrManifestReadFailed = zerr.New("failed to read manifest")

	// ErrManifestParseFailed is returned when the manifest cannot be parsed.
	ErrManifestParseFailed = zerr.New("failed to parse manifest")

	// ErrInvalidComponentName is returned when a manifest component has no
	// name.
	ErrInvalidComponentName = zerr.New("component name must not be empty")

	// ErrUnknownInstruction is returned for an instruction kind the
	// executor does not implement.
	ErrUnknownInstruction = zerr.New("unknown instruction kind")

	// ErrSessionCreateFailed is returned when a session directory cannot be
	// created.
	ErrSessionCreateFailed = zerr.New("failed to create installation session")

	// ErrSessionReadFailed is returned when a session file cannot be read.
	ErrSessionReadFailed = zerr.New("failed to read session")

	// ErrSessionWriteFailed is returned when a session file cannot be
	// written.
	ErrSessionWriteFailed = zerr.New("failed to persist session")

	// ErrSessionMarshalFailed is returned when session data cannot be
	// marshaled.
	ErrSessionMarshalFailed = zerr.New("failed to marshal session")

	// ErrSessionUnmarshalFailed is returned when session data cannot be
	// unmarshaled.
	ErrSessionUnmarshalFailed = zerr.New("failed to unmarshal session")

	// ErrSessionNotFound is returned when a requested session does not
	// exist.
	ErrSessionNotFound = zerr.New("session not found")

	// ErrCheckpointFailed is returned when a filesystem snapshot cannot be
	// taken.
	ErrCheckpointFailed = zerr.New("failed to create checkpoint")

	// ErrCheckpointNotFound is returned when a checkpoint id does not exist
	// in the session.
	ErrCheckpointNotFound = zerr.New("checkpoint not found")

	// ErrRollbackFailed is returned when restoring a checkpoint fails.
	ErrRollbackFailed = zerr.New("failed to roll back to checkpoint")

	// ErrInstallFailed is returned by the app layer when an installation
	// run ends with a non-success exit code.
	ErrInstallFailed = zerr.New("installation failed")
)
