package process

import (
	"fmt"
	"strings"
)

// Error reports a failed external program. Its message is the program's own
// stderr text when there is any, so the diagnostic reaches the user unchanged.
type Error struct {
	Command  string
	ExitCode int
	Stderr   string
	// StderrPolicy is set when the exit status was zero but the policy
	// rejected stderr output.
	StderrPolicy bool
}

func (e *Error) Error() string {
	if msg := strings.TrimSpace(e.Stderr); msg != "" {
		return msg
	}
	if e.StderrPolicy {
		return fmt.Sprintf("The process '%s' failed because one or more lines were written to the STDERR stream", e.Command)
	}
	return fmt.Sprintf("The process '%s' failed with exit code %d", e.Command, e.ExitCode)
}
