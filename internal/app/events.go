package app

import (
	"fmt"

	"github.com/modforge/modforge/internal/core/domain"
	"github.com/modforge/modforge/internal/core/ports"
)

// policyHandler is the CLI's EventHandler. It answers the blocking
// installation events from flags instead of interactive prompts, so
// runs behave identically in scripts and terminals.
type policyHandler struct {
	logger          ports.Logger
	rollbackOnError bool
	continueOnPanic bool
	acknowledge     bool
}

func newPolicyHandler(logger ports.Logger, opts InstallOptions) *policyHandler {
	return &policyHandler{
		logger:          logger,
		rollbackOnError: opts.RollbackOnError,
		continueOnPanic: opts.IgnoreErrors,
		acknowledge:     opts.AcknowledgeNotices,
	}
}

func (h *policyHandler) OnComponentStarted(name string, index, total int) {
	h.logger.Info(fmt.Sprintf("installing %s (%d/%d)", name, index, total))
}

func (h *policyHandler) OnComponentCompleted(name, checkpointID string) {
	h.logger.Info(fmt.Sprintf("installed %s (checkpoint %s)", name, checkpointID))
}

func (h *policyHandler) OnComponentFailed(name string, code domain.ExitCode) {
	h.logger.Warn(fmt.Sprintf("component %s failed with %s", name, string(code)))
}

func (h *policyHandler) OnInstallError(req ports.InstallErrorRequest) ports.InstallErrorDecision {
	if req.Err != nil {
		h.logger.Error(req.Err)
	}
	return ports.InstallErrorDecision{
		Rollback: h.rollbackOnError && req.CanRollback,
		Continue: h.continueOnPanic,
	}
}

func (h *policyHandler) OnNotification(req ports.NotificationRequest) ports.NotificationDecision {
	h.logger.Warn(fmt.Sprintf("notice from %s: %s", req.ComponentName, req.Message))

	if h.acknowledge {
		return ports.NotificationDecision{}
	}

	h.logger.Warn("re-run with --yes to acknowledge component notices")
	return ports.NotificationDecision{Cancelled: true}
}
