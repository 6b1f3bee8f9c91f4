// Package actions speaks the GitHub Actions runner protocol: inputs arrive as
// INPUT_<NAME> environment variables and status is reported through workflow
// commands written to stdout.
package actions

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// InputEnvName returns the variable the runner uses for input name.
func InputEnvName(name string) string {
	return "INPUT_" + strings.ToUpper(strings.ReplaceAll(name, " ", "_"))
}

// LookupInput reads input name from the process environment.
func LookupInput(name string) (string, bool) {
	return os.LookupEnv(InputEnvName(name))
}

// IsActions reports whether the process runs inside a GitHub Actions job.
func IsActions() bool {
	return os.Getenv("GITHUB_ACTIONS") == "true"
}

// IsDebug reports whether step debug logging is enabled.
func IsDebug() bool {
	return os.Getenv("RUNNER_DEBUG") == "1"
}

// Commands writes workflow commands.
type Commands struct {
	w       io.Writer
	enabled bool
}

// NewCommands returns a writer that is active only inside Actions.
func NewCommands(w io.Writer) *Commands {
	return &Commands{w: w, enabled: IsActions()}
}

// NewCommandsEnabled returns an always-active writer.
func NewCommandsEnabled(w io.Writer) *Commands {
	return &Commands{w: w, enabled: true}
}

// Enabled reports whether commands are emitted.
func (c *Commands) Enabled() bool {
	return c != nil && c.enabled
}

func (c *Commands) issue(command, message string) {
	if !c.Enabled() {
		return
	}
	_, _ = fmt.Fprintf(c.w, "::%s::%s\n", command, escapeData(message))
}

// StartGroup begins a collapsible log group.
func (c *Commands) StartGroup(name string) { c.issue("group", name) }

// EndGroup closes the current log group.
func (c *Commands) EndGroup() { c.issue("endgroup", "") }

// Group runs fn inside a log group and always closes it.
func (c *Commands) Group(name string, fn func() error) error {
	c.StartGroup(name)
	defer c.EndGroup()
	return fn()
}

// Error emits an error annotation.
func (c *Commands) Error(message string) { c.issue("error", message) }

// Debug emits a debug message.
func (c *Commands) Debug(message string) { c.issue("debug", message) }

func escapeData(s string) string {
	return strings.NewReplacer("%", "%25", "\r", "%0D", "\n", "%0A").Replace(s)
}
