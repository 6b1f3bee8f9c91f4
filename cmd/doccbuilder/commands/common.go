package commands

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"runtime"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/google/uuid"

	"git.home.luguber.info/inful/doccbuilder/internal/actions"
	"git.home.luguber.info/inful/doccbuilder/internal/config"
	"git.home.luguber.info/inful/doccbuilder/internal/foundation"
	"git.home.luguber.info/inful/doccbuilder/internal/logfields"
	"git.home.luguber.info/inful/doccbuilder/internal/metrics"
	"git.home.luguber.info/inful/doccbuilder/internal/observability"
	"git.home.luguber.info/inful/doccbuilder/internal/process"
)

// LogLevelEnv overrides the log level chosen by flags.
const LogLevelEnv = "DOCCBUILDER_LOG_LEVEL"

// Global carries per-process state shared by every command.
type Global struct {
	Ctx      context.Context
	Logger   *slog.Logger
	RunID    string
	Out      io.Writer
	Commands *actions.Commands
	Runner   process.Runner
	Recorder *metrics.PrometheusRecorder
	Env      config.Environment
}

// CLI definition & global flags.
type CLI struct {
	Config  string           `short:"c" help:"Inputs file (YAML). Defaults to ./doccbuilder.yaml when present." type:"path"`
	Verbose bool             `short:"v" help:"Enable verbose logging and echo tool output"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Generate GenerateCmd `cmd:"" default:"1" help:"Generate documentation with the selected backend"`
	Flags    FlagsCmd    `cmd:"" help:"Print the documentation command without running it"`
	Legacy   LegacyCmd   `cmd:"" help:"Generate documentation with SourceKitten and jazzy"`
	Targets  TargetsCmd  `cmd:"" help:"List the documentable targets of the package"`
}

// AfterApply runs after flag parsing; setup logging once.
func (c *CLI) AfterApply() error {
	level := slog.LevelInfo
	if c.Verbose || actions.IsDebug() {
		level = slog.LevelDebug
	}
	if raw := strings.TrimSpace(os.Getenv(LogLevelEnv)); raw != "" {
		var parsed slog.Level
		if err := parsed.UnmarshalText([]byte(raw)); err == nil {
			level = parsed
		}
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return nil
}

// NewGlobal builds the shared state for one invocation.
func NewGlobal(ctx context.Context, c *CLI) *Global {
	runID := uuid.NewString()
	ctx = observability.WithRunID(ctx, runID)
	logger := slog.Default().With(logfields.RunID(runID))

	recorder := metrics.NewPrometheusRecorder(nil)
	runner := process.NewExecRunner().WithRecorder(recorder)
	runner.Logger = logger
	if c.Verbose || actions.IsDebug() {
		runner.WithEcho(os.Stdout)
	}

	wd, err := os.Getwd()
	if err != nil {
		logger.Warn("Unable to determine working directory", logfields.Error(err))
	}

	return &Global{
		Ctx:      ctx,
		Logger:   logger,
		RunID:    runID,
		Out:      os.Stdout,
		Commands: actions.NewCommands(os.Stdout),
		Runner:   runner,
		Recorder: recorder,
		Env:      config.Environment{GOOS: runtime.GOOS, WorkDir: wd},
	}
}

// Inputs loads .env files and layers INPUT_* variables over the inputs file.
func (c *CLI) Inputs(g *Global) (*config.Inputs, error) {
	if p, err := config.LoadEnvFile(g.Env.WorkDir); err != nil {
		return nil, err
	} else if p != "" {
		g.Logger.Debug("Loaded environment", logfields.Path(p))
	}

	layers := config.Layered{config.EnvLookup}
	path := c.Config
	if path == "" {
		if _, err := os.Stat(config.DefaultConfigFile); err == nil {
			path = config.DefaultConfigFile
		} else if !errors.Is(err, fs.ErrNotExist) {
			g.Logger.Warn("Unable to read inputs file", logfields.Path(config.DefaultConfigFile), logfields.Error(err))
		}
	}
	if path != "" {
		file, err := config.LoadFile(path)
		if err != nil {
			return nil, err
		}
		g.Logger.Debug("Using inputs file", logfields.Path(path))
		layers = append(layers, file)
	}
	return config.NewInputs(layers), nil
}

// writeMetrics exports the registry when a metrics file was requested.
func writeMetrics(g *Global, path foundation.Option[string]) {
	p, ok := path.Get()
	if !ok {
		return
	}
	if err := g.Recorder.WriteTextfile(p); err != nil {
		g.Logger.Warn("Failed to write metrics file", logfields.Path(p), logfields.Error(err))
		return
	}
	g.Logger.Debug("Wrote metrics", logfields.Path(p))
}
