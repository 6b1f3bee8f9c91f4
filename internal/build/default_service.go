package build

import (
	"context"
	"io"
	"log/slog"
	"time"

	"git.home.luguber.info/inful/doccbuilder/internal/actions"
	"git.home.luguber.info/inful/doccbuilder/internal/backend"
	"git.home.luguber.info/inful/doccbuilder/internal/config"
	"git.home.luguber.info/inful/doccbuilder/internal/docc"
	ferrors "git.home.luguber.info/inful/doccbuilder/internal/foundation/errors"
	"git.home.luguber.info/inful/doccbuilder/internal/logfields"
	"git.home.luguber.info/inful/doccbuilder/internal/metrics"
	"git.home.luguber.info/inful/doccbuilder/internal/observability"
	"git.home.luguber.info/inful/doccbuilder/internal/process"
)

// Stage names used for logging and metrics.
const (
	StageValidate = "validate"
	StageGenerate = "generate"
)

// Workflow group titles.
const (
	GroupValidating = "Validating input"
	GroupGenerating = "Generating documentation"
)

// ProbeFactory creates the capability probe for a backend.
type ProbeFactory func(runner process.Runner, b backend.Backend, dir string) docc.CapabilityProbe

// DefaultService is the standard implementation of Service.
type DefaultService struct {
	runner       process.Runner
	recorder     metrics.Recorder
	commands     *actions.Commands
	probeFactory ProbeFactory
}

// NewService creates a DefaultService running commands with runner.
func NewService(runner process.Runner) *DefaultService {
	return &DefaultService{
		runner:   runner,
		recorder: metrics.NoopRecorder{},
		commands: actions.NewCommands(io.Discard),
		probeFactory: func(r process.Runner, b backend.Backend, dir string) docc.CapabilityProbe {
			return backend.NewProbe(r, b, dir)
		},
	}
}

// WithRecorder sets the metrics recorder.
func (s *DefaultService) WithRecorder(r metrics.Recorder) *DefaultService {
	s.recorder = r
	return s
}

// WithCommands sets the workflow command writer used for log groups.
func (s *DefaultService) WithCommands(c *actions.Commands) *DefaultService {
	s.commands = c
	return s
}

// WithProbeFactory replaces the help-text probe (for testing).
func (s *DefaultService) WithProbeFactory(f ProbeFactory) *DefaultService {
	s.probeFactory = f
	return s
}

// Run executes validation and generation.
func (s *DefaultService) Run(ctx context.Context, req Request) (*Result, error) {
	result := &Result{StartTime: time.Now()}

	if req.Inputs == nil {
		result.finish(StatusFailed)
		return result, ferrors.InternalError("inputs required").Build()
	}
	if err := backend.CheckPlatform(req.Env.GOOS); err != nil {
		result.finish(StatusFailed)
		return result, err
	}

	var b backend.Backend
	stageStart := time.Now()
	err := s.commands.Group(GroupValidating, func() error {
		var err error
		b, err = s.validate(observability.WithStage(ctx, StageValidate), req, result)
		return err
	})
	s.recorder.ObserveStageDuration(StageValidate, time.Since(stageStart))
	s.recorder.IncStageResult(StageValidate, metrics.ResultFor(err))
	if err != nil {
		return s.fail(result, err)
	}

	ctx = observability.WithBackend(ctx, string(b.Kind()))
	if req.DryRun {
		observability.InfoContext(ctx, "Planned documentation command", logfields.Command(result.Command.String()))
		s.recorder.IncStageResult(StageGenerate, metrics.ResultSkipped)
		result.finish(StatusPlanned)
		return result, nil
	}

	stageStart = time.Now()
	err = s.commands.Group(GroupGenerating, func() error {
		gctx := observability.WithStage(ctx, StageGenerate)
		observability.InfoContext(gctx, "Generating documentation", logfields.Path(result.Config.PackagePath))
		out, err := s.runner.Run(gctx, result.Command)
		result.Output = out
		return err
	})
	s.recorder.ObserveStageDuration(StageGenerate, time.Since(stageStart))
	s.recorder.IncStageResult(StageGenerate, metrics.ResultFor(err))
	if err != nil {
		return s.fail(result, err)
	}

	result.finish(StatusSuccess)
	s.recorder.ObserveRunDuration(string(result.Backend), result.Duration)
	s.recorder.IncRunOutcome(string(result.Backend), metrics.ResultSuccess)
	observability.InfoContext(ctx, "Documentation generated", logfields.Duration(result.Duration))
	return result, nil
}

// validate fills result.Config and result.Command.
func (s *DefaultService) validate(ctx context.Context, req Request, result *Result) (backend.Backend, error) {
	cfg, err := config.Normalize(req.Inputs, req.Env)
	if err != nil {
		return nil, err
	}
	result.Config = cfg

	b, err := backend.Select(req.Env.GOOS, cfg.Request)
	if err != nil {
		return nil, err
	}
	result.Backend = b.Kind()

	if _, ok := b.(backend.Plugin); ok {
		if err := s.checkToolchain(ctx, cfg.PackagePath); err != nil {
			return nil, err
		}
	}

	// Only the output path depends on the probed flags.
	caps := docc.Capabilities{PluginGenerator: b.Kind() == backend.KindPlugin}
	if cfg.Options.OutputPath.IsSome() {
		probe := s.probeFactory(s.runner, b, cfg.PackagePath)
		caps, err = docc.ProbeCapabilities(ctx, probe, caps.PluginGenerator)
		if err != nil {
			return nil, err
		}
		observability.DebugContext(ctx, "Probed generator capabilities",
			logfields.Backend(string(b.Kind())),
			slog.Bool("supports_output_path", caps.SupportsOutputPath))
	}

	policy := process.Relaxed
	if cfg.FailOnStdErr {
		policy = process.Strict
	}
	result.Command = backend.Plan(b, cfg.PackagePath, cfg.Options, caps, policy)
	return b, nil
}

func (s *DefaultService) checkToolchain(ctx context.Context, dir string) error {
	out, err := s.runner.Run(ctx, backend.VersionCommand(dir))
	if err != nil {
		return err
	}
	version, err := docc.ParseSwiftVersion(out)
	if err != nil {
		return err
	}
	observability.DebugContext(ctx, "Found Swift toolchain", slog.String("version", version))
	return docc.CheckPluginToolchain(version)
}

func (s *DefaultService) fail(result *Result, err error) (*Result, error) {
	result.finish(StatusFailed)
	label := string(result.Backend)
	if label == "" {
		label = "none"
	}
	s.recorder.ObserveRunDuration(label, result.Duration)
	s.recorder.IncRunOutcome(label, metrics.ResultFailed)
	return result, err
}
