package cmd

// Process exit codes. Anything else is a QA tool's own exit code passed
// through unchanged.
const (
	ExitOK       = 0
	ExitInternal = 1
	ExitUsage    = 2
)

// ExitError carries a specific process exit code out of command execution.
// An empty message means the explanation was already printed.
type ExitError struct {
	Code    int
	Message string
}

func (e *ExitError) Error() string {
	return e.Message
}

// exitPolicy decides what happens to a tool's non-zero exit status.
type exitPolicy int

const (
	// propagateExit turns the tool's exit code into the process exit code.
	propagateExit exitPolicy = iota
	// suppressExit discards the tool's exit code. Used where the rendered
	// summary is the authoritative outcome.
	suppressExit
)

// apply converts the tool's exit status into a command error per policy.
func (p exitPolicy) apply(exitCode int) error {
	if p == suppressExit || exitCode == 0 {
		return nil
	}
	return &ExitError{Code: exitCode}
}
