package errors

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
)

// Reporter receives the final failure message, e.g. to emit a workflow
// annotation.
type Reporter func(message string)

// CLIErrorAdapter handles error presentation and exit codes for the CLI.
// A run either succeeds or fails; there is no finer exit code.
type CLIErrorAdapter struct {
	verbose  bool
	logger   *slog.Logger
	out      io.Writer
	reporter Reporter
	exit     func(int)
}

// NewCLIErrorAdapter creates a new CLI error adapter.
func NewCLIErrorAdapter(verbose bool, logger *slog.Logger) *CLIErrorAdapter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CLIErrorAdapter{
		verbose: verbose,
		logger:  logger,
		out:     os.Stderr,
		exit:    os.Exit,
	}
}

// WithReporter registers an additional sink for the failure message.
func (a *CLIErrorAdapter) WithReporter(r Reporter) *CLIErrorAdapter {
	a.reporter = r
	return a
}

// WithOutput redirects the user-facing message.
func (a *CLIErrorAdapter) WithOutput(w io.Writer) *CLIErrorAdapter {
	a.out = w
	return a
}

// WithExit replaces os.Exit (tests).
func (a *CLIErrorAdapter) WithExit(exit func(int)) *CLIErrorAdapter {
	a.exit = exit
	return a
}

// ExitCodeFor returns 0 for nil and 1 for every failure.
func (a *CLIErrorAdapter) ExitCodeFor(err error) int {
	if err == nil {
		return 0
	}
	return 1
}

// FormatError returns the error's message, which is the sole diagnostic.
func (a *CLIErrorAdapter) FormatError(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

// HandleError reports the message once and exits for a non-nil error.
func (a *CLIErrorAdapter) HandleError(err error) {
	if err == nil {
		return
	}

	message := a.FormatError(err)
	a.logError(err)
	if a.reporter != nil {
		a.reporter(message)
	} else {
		_, _ = fmt.Fprintln(a.out, message)
	}
	a.exit(a.ExitCodeFor(err))
}

// logError adds the structured record behind the message in verbose mode.
// Otherwise the message is the only output.
func (a *CLIErrorAdapter) logError(err error) {
	if !a.verbose {
		return
	}
	if classified, ok := AsClassified(err); ok {
		a.logger.LogAttrs(context.Background(), slog.LevelDebug, classified.Message(), classified.LogAttrs()...)
		return
	}
	a.logger.Debug("Run failed", "error", err)
}
