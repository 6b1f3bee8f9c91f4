package pipeline

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"git.home.luguber.info/inful/doccbuilder/internal/actions"
	"git.home.luguber.info/inful/doccbuilder/internal/backend"
	"git.home.luguber.info/inful/doccbuilder/internal/config"
	ferrors "git.home.luguber.info/inful/doccbuilder/internal/foundation/errors"
	"git.home.luguber.info/inful/doccbuilder/internal/logfields"
	"git.home.luguber.info/inful/doccbuilder/internal/manifest"
	"git.home.luguber.info/inful/doccbuilder/internal/metrics"
	"git.home.luguber.info/inful/doccbuilder/internal/observability"
	"git.home.luguber.info/inful/doccbuilder/internal/process"
	"git.home.luguber.info/inful/doccbuilder/internal/util/sets"
	"git.home.luguber.info/inful/doccbuilder/internal/workspace"
)

// CombinedFile is the name of the merged SourceKitten output.
const CombinedFile = "combined.json"

// Backend label used for run metrics.
const metricsLabel = "jazzy"

// State is shared by the stages of one run.
type State struct {
	Config    *config.RunConfig
	Workspace *workspace.Manager

	Package *manifest.Package
	// Targets are extracted in this order.
	Targets []string
	// Docs holds the elements of every per-target array, in target order.
	Docs         []json.RawMessage
	CombinedPath string
	OutputDir    string
	Output       string

	Durations map[StageName]time.Duration
}

// Result summarizes a finished run.
type Result struct {
	Package   string
	Targets   []string
	OutputDir string
	Duration  time.Duration
	Stages    map[StageName]time.Duration
}

// Controller runs the legacy jazzy pipeline.
type Controller struct {
	runner           process.Runner
	recorder         metrics.Recorder
	commands         *actions.Commands
	goos             string
	workspaceFactory func() *workspace.Manager
	headResolver     func(dir string) string
}

// NewController creates a controller for goos.
func NewController(runner process.Runner, goos string) *Controller {
	return &Controller{
		runner:   runner,
		recorder: metrics.NoopRecorder{},
		commands: actions.NewCommands(io.Discard),
		goos:     goos,
		workspaceFactory: func() *workspace.Manager {
			return workspace.NewManager("")
		},
		headResolver: ResolveHead,
	}
}

// WithRecorder sets the metrics recorder.
func (c *Controller) WithRecorder(r metrics.Recorder) *Controller {
	c.recorder = r
	return c
}

// WithCommands sets the workflow command writer used for log groups.
func (c *Controller) WithCommands(cmds *actions.Commands) *Controller {
	c.commands = cmds
	return c
}

// WithWorkspaceFactory allows injecting a custom workspace factory (for testing).
func (c *Controller) WithWorkspaceFactory(f func() *workspace.Manager) *Controller {
	c.workspaceFactory = f
	return c
}

// WithHeadResolver replaces the git HEAD lookup (for testing).
func (c *Controller) WithHeadResolver(f func(dir string) string) *Controller {
	c.headResolver = f
	return c
}

// Run executes every stage. The workspace is removed on all paths.
func (c *Controller) Run(ctx context.Context, cfg *config.RunConfig) (*Result, error) {
	start := time.Now()
	if cfg == nil {
		return nil, ferrors.InternalError("config required").Build()
	}
	if err := backend.CheckPlatform(c.goos); err != nil {
		return nil, err
	}

	st := &State{
		Config:    cfg,
		Workspace: c.workspaceFactory(),
		OutputDir: cfg.Options.OutputPath.UnwrapOr(filepath.Join(cfg.PackagePath, "docs")),
		Durations: map[StageName]time.Duration{},
	}
	if cfg.Legacy.Clean && containsPath(st.OutputDir, cfg.PackagePath) {
		return nil, ferrors.ConfigError("refusing to clean output directory "+st.OutputDir+": it contains the package").
			WithContext("path", st.OutputDir).
			Build()
	}
	defer func() {
		if err := st.Workspace.Cleanup(); err != nil {
			observability.WarnContext(ctx, "Failed to cleanup workspace", logfields.Error(err))
		}
	}()

	stages := NewPipeline().
		AddIf(!cfg.Legacy.SkipInstall, StageInstall, c.install).
		Add(StageResolve, c.resolve).
		Add(StageIntrospect, c.introspect).
		Add(StageExtract, c.extract).
		Add(StageCombine, c.combine).
		AddIf(cfg.Legacy.Clean, StageClean, c.clean).
		Add(StageGenerate, c.generate).
		Build()

	err := RunStages(ctx, st, stages, c.recorder, c.commands)
	dur := time.Since(start)
	c.recorder.ObserveRunDuration(metricsLabel, dur)
	c.recorder.IncRunOutcome(metricsLabel, metrics.ResultFor(err))
	if err != nil {
		return nil, err
	}

	observability.InfoContext(ctx, "Documentation generated", logfields.Path(st.OutputDir), logfields.Count(len(st.Targets)), logfields.Duration(dur))
	return &Result{
		Package:   st.Package.Name,
		Targets:   st.Targets,
		OutputDir: st.OutputDir,
		Duration:  dur,
		Stages:    st.Durations,
	}, nil
}

// InstallCommands lists the tool installers for goos. They are independent
// of each other.
func InstallCommands(goos string) []process.Command {
	cmds := []process.Command{
		{Name: "gem", Args: []string{"install", "jazzy"}, Policy: process.Relaxed},
	}
	switch goos {
	case "darwin":
		cmds = append(cmds, process.Command{Name: "brew", Args: []string{"install", "sourcekitten"}, Policy: process.Relaxed})
	case "linux":
		cmds = append(cmds, process.Command{Name: "sudo", Args: []string{"apt-get", "install", "-y", "libsqlite3-dev"}, Policy: process.Relaxed})
	}
	return cmds
}

func (c *Controller) install(ctx context.Context, _ *State) error {
	g, gctx := errgroup.WithContext(ctx)
	for _, cmd := range InstallCommands(c.goos) {
		g.Go(func() error {
			_, err := c.runner.Run(gctx, cmd)
			return err
		})
	}
	return g.Wait()
}

func (c *Controller) resolve(ctx context.Context, st *State) error {
	_, err := c.runner.Run(ctx, process.Command{
		Name:   backend.SwiftTool,
		Args:   []string{"package", "resolve"},
		Dir:    st.Config.PackagePath,
		Policy: process.Relaxed,
	})
	return err
}

func (c *Controller) introspect(ctx context.Context, st *State) error {
	out, err := c.runner.Run(ctx, process.Command{
		Name:   backend.SwiftTool,
		Args:   []string{"package", "dump-package"},
		Dir:    st.Config.PackagePath,
		Policy: process.Relaxed,
	})
	if err != nil {
		return err
	}
	pkg, err := manifest.Parse([]byte(out))
	if err != nil {
		return err
	}
	st.Package = pkg

	st.Targets = sets.NewOrdered(st.Config.Request.Targets...).Items()
	if len(st.Targets) == 0 {
		st.Targets = pkg.UniqueTargets()
	}
	if len(st.Targets) == 0 {
		return ferrors.ManifestError("package " + pkg.Name + " has no products to document").Build()
	}
	observability.InfoContext(ctx, "Found targets", logfields.Count(len(st.Targets)), slog.Any("targets", st.Targets))
	return nil
}

// extract must stay sequential; see the package documentation.
func (c *Controller) extract(ctx context.Context, st *State) error {
	for _, target := range st.Targets {
		out, err := c.runner.Run(ctx, process.Command{
			Name:   "sourcekitten",
			Args:   []string{"doc", "--spm", "--module-name", target},
			Dir:    st.Config.PackagePath,
			Policy: process.Relaxed,
		})
		if err != nil {
			return err
		}
		var docs []json.RawMessage
		if err := json.Unmarshal([]byte(out), &docs); err != nil {
			return ferrors.WrapError(err, ferrors.CategoryProcess, "sourcekitten produced invalid JSON").
				WithContext("target", target).
				Build()
		}
		observability.DebugContext(ctx, "Extracted target", logfields.Target(target), logfields.Count(len(docs)))
		st.Docs = append(st.Docs, docs...)
	}
	return nil
}

func (c *Controller) combine(_ context.Context, st *State) error {
	docs := st.Docs
	if docs == nil {
		docs = []json.RawMessage{}
	}
	data, err := json.Marshal(docs)
	if err != nil {
		return ferrors.WrapError(err, ferrors.CategoryInternal, "failed to encode combined documentation").Build()
	}
	if err := st.Workspace.Create(); err != nil {
		return ferrors.WrapError(err, ferrors.CategoryFileSystem, "failed to create workspace").Build()
	}
	p, err := st.Workspace.WriteFile(CombinedFile, data)
	if err != nil {
		return ferrors.WrapError(err, ferrors.CategoryFileSystem, "failed to write combined documentation").Build()
	}
	st.CombinedPath = p
	return nil
}

func (c *Controller) clean(ctx context.Context, st *State) error {
	observability.InfoContext(ctx, "Removing previous output", logfields.Path(st.OutputDir))
	if err := os.RemoveAll(st.OutputDir); err != nil {
		return ferrors.WrapError(err, ferrors.CategoryFileSystem, "failed to clean output directory").
			WithContext("path", st.OutputDir).
			Build()
	}
	return nil
}

// containsPath reports whether p equals dir or lies below it.
func containsPath(dir, p string) bool {
	rel, err := filepath.Rel(filepath.Clean(dir), filepath.Clean(p))
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}

func (c *Controller) generate(ctx context.Context, st *State) error {
	head := ""
	if svc, ok := st.Config.Options.SourceRepository.Service.Get(); ok && svc.Type == "github" {
		head = c.headResolver(st.Config.PackagePath)
	}
	policy := process.Relaxed
	if st.Config.FailOnStdErr {
		policy = process.Strict
	}
	cmd := JazzyCommand(st, head)
	cmd.Policy = policy
	out, err := c.runner.Run(ctx, cmd)
	st.Output = out
	return err
}
