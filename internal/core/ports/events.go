package ports

import "github.com/modforge/modforge/internal/core/domain"

// InstallErrorRequest describes a component failure the handler must
// decide on.
type InstallErrorRequest struct {
	ComponentName string
	Code          domain.ExitCode
	Err           error
	CanRollback   bool
}

// InstallErrorDecision is the handler's answer to an install error.
// Rollback restores the session baseline and ends the run. Continue is
// only consulted for recovered panics, which carry no taxonomy of their
// own; for regular exit codes the taxonomy decides.
type InstallErrorDecision struct {
	Rollback bool
	Continue bool
}

// NotificationRequest is a one-time blocking notice raised before a
// component installs.
type NotificationRequest struct {
	ComponentName string
	Message       string
}

// NotificationDecision reports whether the user cancelled in response
// to a notification.
type NotificationDecision struct {
	Cancelled bool
}

// EventHandler receives installation lifecycle events and answers the
// blocking ones. It replaces mutable event-argument objects with a
// request/response exchange.
//
//go:generate mockgen -source=events.go -destination=mocks/mock_events.go -package=mocks
type EventHandler interface {
	OnComponentStarted(name string, index, total int)
	OnComponentCompleted(name, checkpointID string)
	OnComponentFailed(name string, code domain.ExitCode)
	OnInstallError(req InstallErrorRequest) InstallErrorDecision
	OnNotification(req NotificationRequest) NotificationDecision
}
