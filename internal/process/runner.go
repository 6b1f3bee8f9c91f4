package process

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"time"

	ferrors "git.home.luguber.info/inful/doccbuilder/internal/foundation/errors"
	"git.home.luguber.info/inful/doccbuilder/internal/logfields"
	"git.home.luguber.info/inful/doccbuilder/internal/metrics"
)

// Runner executes a Command to completion and returns its stdout.
type Runner interface {
	Run(ctx context.Context, cmd Command) (string, error)
}

// ExecRunner runs commands with os/exec.
type ExecRunner struct {
	// Echo, when set, receives raw stdout and stderr as they are produced.
	Echo     io.Writer
	Logger   *slog.Logger
	Recorder metrics.Recorder
}

// NewExecRunner returns a runner that logs through slog.Default.
func NewExecRunner() *ExecRunner {
	return &ExecRunner{Recorder: metrics.NoopRecorder{}}
}

// WithEcho sets the raw output sink.
func (r *ExecRunner) WithEcho(w io.Writer) *ExecRunner {
	r.Echo = w
	return r
}

// WithRecorder sets the metrics recorder.
func (r *ExecRunner) WithRecorder(rec metrics.Recorder) *ExecRunner {
	r.Recorder = rec
	return r
}

func (r *ExecRunner) logger() *slog.Logger {
	if r.Logger != nil {
		return r.Logger
	}
	return slog.Default()
}

// Run starts cmd, waits for it, and applies cmd.Policy.
func (r *ExecRunner) Run(ctx context.Context, cmd Command) (string, error) {
	log := r.logger().With(logfields.Command(cmd.Name))
	rec := r.Recorder
	if rec == nil {
		rec = metrics.NoopRecorder{}
	}

	c := exec.CommandContext(ctx, cmd.Name, cmd.Args...)
	c.Dir = cmd.Dir
	if len(cmd.Env) > 0 {
		c.Env = append(os.Environ(), cmd.Env...)
	}

	var stdout, stderr bytes.Buffer
	outLines := newLineLogger(log, "stdout")
	errLines := newLineLogger(log, "stderr")
	outWriters := []io.Writer{&stdout, outLines}
	errWriters := []io.Writer{&stderr, errLines}
	if r.Echo != nil {
		outWriters = append(outWriters, r.Echo)
		errWriters = append(errWriters, r.Echo)
	}
	c.Stdout = io.MultiWriter(outWriters...)
	c.Stderr = io.MultiWriter(errWriters...)

	log.Info("Running command", logfields.Args(cmd.Args), logfields.Dir(cmd.Dir))
	start := time.Now()
	err := c.Run()
	outLines.Flush()
	errLines.Flush()

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			perr := &Error{Command: cmd.Name, ExitCode: exitErr.ExitCode(), Stderr: stderr.String()}
			log.Debug("Command failed", logfields.ExitCode(perr.ExitCode), logfields.Duration(time.Since(start)))
			rec.IncInvocation(cmd.Name, metrics.ResultFailed)
			return stdout.String(), perr
		}
		rec.IncInvocation(cmd.Name, metrics.ResultFailed)
		return stdout.String(), ferrors.WrapError(err, ferrors.CategoryProcess, "unable to run "+cmd.Name).
			WithContext("command", cmd.Name).
			Build()
	}

	if cmd.Policy.FailOnStdErr && stderr.Len() > 0 {
		rec.IncInvocation(cmd.Name, metrics.ResultFailed)
		return stdout.String(), &Error{Command: cmd.Name, Stderr: stderr.String(), StderrPolicy: true}
	}

	log.Debug("Command finished", logfields.Duration(time.Since(start)))
	rec.IncInvocation(cmd.Name, metrics.ResultSuccess)
	return stdout.String(), nil
}
