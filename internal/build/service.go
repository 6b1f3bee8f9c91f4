package build

import (
	"context"
	"time"

	"git.home.luguber.info/inful/doccbuilder/internal/backend"
	"git.home.luguber.info/inful/doccbuilder/internal/config"
	"git.home.luguber.info/inful/doccbuilder/internal/process"
)

// Service is the canonical interface for generating documentation.
type Service interface {
	// Run validates inputs and invokes the selected generator.
	Run(ctx context.Context, req Request) (*Result, error)
}

// Request contains all inputs required for one run.
type Request struct {
	// Inputs is the configuration source.
	Inputs *config.Inputs

	// Env describes the host.
	Env config.Environment

	// DryRun stops after planning; no generator is started.
	DryRun bool
}

// Result contains the outcome of a run.
type Result struct {
	Status Status

	// Config is set once inputs were normalized.
	Config *config.RunConfig

	// Backend is empty when selection did not happen.
	Backend backend.Kind

	// Command is the planned generator invocation.
	Command process.Command

	// Output is the generator's stdout.
	Output string

	StartTime time.Time
	EndTime   time.Time
	Duration  time.Duration
}

// Status represents the outcome of a run.
type Status string

const (
	StatusSuccess Status = "success"
	StatusFailed  Status = "failed"
	// StatusPlanned marks a dry run that got as far as a command.
	StatusPlanned Status = "planned"
)

// IsSuccess reports whether the run did what it was asked to.
func (s Status) IsSuccess() bool {
	return s == StatusSuccess || s == StatusPlanned
}

func (r *Result) finish(status Status) {
	r.Status = status
	r.EndTime = time.Now()
	r.Duration = r.EndTime.Sub(r.StartTime)
}
