package domain

// ExitCode is the outcome taxonomy shared by the instruction executor
// and the orchestrator. Only the code matters to the orchestrator; the
// executor is otherwise opaque.
type ExitCode string

const (
	// ExitSuccess indicates all instructions completed.
	ExitSuccess ExitCode = "Success"
	// ExitUserCancelledInstall indicates the user cancelled the run, either
	// directly or by requesting a rollback.
	ExitUserCancelledInstall ExitCode = "UserCancelledInstall"
	// ExitUnknownError indicates an unclassified failure.
	ExitUnknownError ExitCode = "UnknownError"
	// ExitInvalidOperation indicates an instruction that cannot be
	// performed (unknown kind, bad arguments).
	ExitInvalidOperation ExitCode = "InvalidOperation"
	// ExitFileSystemError indicates an instruction failed against the
	// destination file tree.
	ExitFileSystemError ExitCode = "FileSystemError"
	// ExitInstructionFailed indicates a recognized instruction ran and
	// reported failure.
	ExitInstructionFailed ExitCode = "InstructionFailed"
)

// Success reports whether the code is the success code.
func (c ExitCode) Success() bool {
	return c == ExitSuccess
}

// Fatal reports whether the code terminates the whole run. Every other
// non-success code fails only the component that produced it.
func (c ExitCode) Fatal() bool {
	return c == ExitUserCancelledInstall || c == ExitUnknownError
}
