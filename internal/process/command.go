package process

import (
	"strings"
)

// Policy controls which process outcomes count as failures beyond a non-zero
// exit status.
type Policy struct {
	// FailOnStdErr fails the run if the program wrote anything to stderr.
	FailOnStdErr bool
}

// Strict is used for primary documentation commands.
var Strict = Policy{FailOnStdErr: true}

// Relaxed is used for best-effort auxiliary commands such as installers.
var Relaxed = Policy{FailOnStdErr: false}

// Command is one external program invocation.
type Command struct {
	Name string
	Args []string
	// Dir is the working directory; empty means the current directory.
	Dir string
	// Env holds KEY=VALUE entries added to the inherited environment.
	Env    []string
	Policy Policy
}

// String renders the command line with shell-style quoting for display.
func (c Command) String() string {
	parts := make([]string, 0, len(c.Env)+len(c.Args)+1)
	parts = append(parts, c.Env...)
	parts = append(parts, c.Name)
	for _, a := range c.Args {
		parts = append(parts, shellQuote(a))
	}
	return strings.Join(parts, " ")
}

func shellQuote(s string) string {
	if s == "" {
		return "''"
	}
	if !strings.ContainsAny(s, " \t\n'\"\\$`*?[]{}()<>|&;#~") {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
