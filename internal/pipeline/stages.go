package pipeline

import (
	"context"
	"time"

	"git.home.luguber.info/inful/doccbuilder/internal/actions"
	"git.home.luguber.info/inful/doccbuilder/internal/logfields"
	"git.home.luguber.info/inful/doccbuilder/internal/metrics"
	"git.home.luguber.info/inful/doccbuilder/internal/observability"
)

// Stage is a discrete unit of work in a pipeline run.
type Stage func(ctx context.Context, st *State) error

// StageName is a strongly-typed identifier for a stage.
type StageName string

// Canonical stage names.
const (
	StageInstall    StageName = "install"
	StageResolve    StageName = "resolve"
	StageIntrospect StageName = "introspect"
	StageExtract    StageName = "extract"
	StageCombine    StageName = "combine"
	StageClean      StageName = "clean"
	StageGenerate   StageName = "generate"
)

var stageTitles = map[StageName]string{
	StageInstall:    "Installing dependencies",
	StageResolve:    "Resolving package",
	StageIntrospect: "Reading package manifest",
	StageExtract:    "Extracting documentation",
	StageCombine:    "Combining documentation",
	StageClean:      "Cleaning output",
	StageGenerate:   "Generating documentation",
}

// StageDef pairs a stage name with its executing function.
type StageDef struct {
	Name StageName
	Fn   Stage
}

// Pipeline is a fluent builder for ordered stage definitions.
type Pipeline struct{ Defs []StageDef }

// NewPipeline creates an empty pipeline.
func NewPipeline() *Pipeline { return &Pipeline{Defs: make([]StageDef, 0, 8)} }

// Add appends a stage unconditionally.
func (p *Pipeline) Add(name StageName, fn Stage) *Pipeline {
	p.Defs = append(p.Defs, StageDef{Name: name, Fn: fn})
	return p
}

// AddIf appends a stage only if cond is true.
func (p *Pipeline) AddIf(cond bool, name StageName, fn Stage) *Pipeline {
	if cond {
		p.Add(name, fn)
	}
	return p
}

// Build returns a copy of the stage definitions.
func (p *Pipeline) Build() []StageDef {
	out := make([]StageDef, len(p.Defs))
	copy(out, p.Defs)
	return out
}

// RunStages executes stages in order, recording timing and stopping on the
// first error. The error is returned unwrapped so the failing program's
// message stays the only diagnostic.
func RunStages(ctx context.Context, st *State, stages []StageDef, rec metrics.Recorder, cmds *actions.Commands) error {
	for _, def := range stages {
		if err := ctx.Err(); err != nil {
			return err
		}

		sctx := observability.WithStage(ctx, string(def.Name))
		title := stageTitles[def.Name]
		if title == "" {
			title = string(def.Name)
		}

		t0 := time.Now()
		err := cmds.Group(title, func() error { return def.Fn(sctx, st) })
		dur := time.Since(t0)

		rec.ObserveStageDuration(string(def.Name), dur)
		rec.IncStageResult(string(def.Name), metrics.ResultFor(err))
		st.Durations[def.Name] = dur

		if err != nil {
			observability.DebugContext(sctx, "Stage failed", logfields.Duration(dur), logfields.Error(err))
			return err
		}
		observability.DebugContext(sctx, "Stage complete", logfields.Duration(dur))
	}
	return nil
}
