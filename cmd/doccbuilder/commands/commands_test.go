package commands

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/doccbuilder/internal/actions"
	"git.home.luguber.info/inful/doccbuilder/internal/backend"
	"git.home.luguber.info/inful/doccbuilder/internal/build"
	"git.home.luguber.info/inful/doccbuilder/internal/config"
	"git.home.luguber.info/inful/doccbuilder/internal/metrics"
	"git.home.luguber.info/inful/doccbuilder/internal/process"
)

const dumpPackage = `{"name":"TestProject","products":[
{"name":"TestProject1","targets":["TestProject1"]},
{"name":"TestProject2","targets":["TestProject2"]},
{"name":"TestProjects","targets":["TestProject1","TestProject2"]}],
"targets":[{"name":"TestProject1","type":"regular"},{"name":"TestProject2","type":"regular"}]}`

func testGlobal(t *testing.T, runner process.Runner) (*Global, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	return &Global{
		Ctx:      context.Background(),
		Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		RunID:    "test",
		Out:      &out,
		Commands: actions.NewCommandsEnabled(io.Discard),
		Runner:   runner,
		Recorder: metrics.NewPrometheusRecorder(nil),
		Env:      config.Environment{GOOS: "linux", WorkDir: t.TempDir()},
	}, &out
}

func swiftRunner() *process.Recording {
	return process.NewRecording().On(backend.SwiftTool, func(cmd process.Command) (string, error) {
		switch {
		case len(cmd.Args) == 1 && cmd.Args[0] == "--version":
			return "Swift version 5.10 (swift-5.10-RELEASE)", nil
		case cmd.Args[len(cmd.Args)-1] == "--help":
			return "--output-path <dir>", nil
		case len(cmd.Args) == 2 && cmd.Args[1] == "dump-package":
			return dumpPackage, nil
		}
		return "", nil
	})
}

func TestCLI_InputsLayering(t *testing.T) {
	g, _ := testGlobal(t, process.NewRecording())
	file := filepath.Join(g.Env.WorkDir, "inputs.yaml")
	require.NoError(t, os.WriteFile(file, []byte("inputs:\n  package-path: from-file\n  output: site\n"), 0o600))
	t.Setenv("INPUT_PACKAGE-PATH", "from-env")

	in, err := (&CLI{Config: file}).Inputs(g)
	require.NoError(t, err)

	v, err := in.Input(config.KeyPackagePath, config.InputOptions{})
	require.NoError(t, err)
	assert.Equal(t, "from-env", v)

	v, err = in.Input(config.KeyOutput, config.InputOptions{})
	require.NoError(t, err)
	assert.Equal(t, "site", v)
}

func TestCLI_InputsMissingFile(t *testing.T) {
	g, _ := testGlobal(t, process.NewRecording())
	_, err := (&CLI{Config: filepath.Join(g.Env.WorkDir, "nope.yaml")}).Inputs(g)
	require.Error(t, err)
}

func TestAfterApply_LogLevelOverride(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })
	t.Setenv(LogLevelEnv, "warn")
	t.Setenv("RUNNER_DEBUG", "")

	require.NoError(t, (&CLI{Verbose: true}).AfterApply())
	ctx := context.Background()
	assert.False(t, slog.Default().Enabled(ctx, slog.LevelInfo))
	assert.True(t, slog.Default().Enabled(ctx, slog.LevelWarn))
}

func TestFlagsCmd_PrintsPlan(t *testing.T) {
	g, out := testGlobal(t, swiftRunner())
	t.Setenv("INPUT_PACKAGE-PATH", "pkg")
	t.Setenv("INPUT_HOSTING-BASE-PATH", "/docs")

	require.NoError(t, (&FlagsCmd{NoColor: true}).Run(g, &CLI{}))

	text := out.String()
	assert.Contains(t, text, "backend: swift-docc-plugin\n")
	assert.Contains(t, text, "directory: "+filepath.Join(g.Env.WorkDir, "pkg")+"\n")
	assert.Contains(t, text, "command: swift package generate-documentation --enable-experimental-combined-documentation --disable-indexing --hosting-base-path /docs\n")
	assert.NotContains(t, text, "environment:")
}

func TestPrintPlan_Environment(t *testing.T) {
	var out bytes.Buffer
	printPlan(&out, &build.Result{
		Backend: backend.KindPlugin,
		Command: process.Command{Name: "swift", Args: []string{"package"}, Dir: "/pkg", Env: []string{"DOCC_OUTPUT_DIR=/out"}},
	}, true)
	assert.Contains(t, out.String(), "environment: [DOCC_OUTPUT_DIR=/out]\n")
}

func TestGenerateCmd_WritesMetrics(t *testing.T) {
	runner := swiftRunner()
	g, _ := testGlobal(t, runner)
	metricsFile := filepath.Join(g.Env.WorkDir, "doccbuilder.prom")
	t.Setenv("INPUT_PACKAGE-PATH", ".")
	t.Setenv("INPUT_METRICS-FILE", metricsFile)

	require.NoError(t, (&GenerateCmd{}).Run(g, &CLI{}))
	assert.Equal(t, []string{"swift", "swift"}, runner.Names())

	data, err := os.ReadFile(metricsFile)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), "doccbuilder_stage_duration_seconds"))
}

func TestTargetsCmd(t *testing.T) {
	runner := swiftRunner()
	g, out := testGlobal(t, runner)
	t.Setenv("INPUT_PACKAGE-PATH", "TestProject")

	require.NoError(t, (&TargetsCmd{}).Run(g, &CLI{}))
	assert.Equal(t, "TestProject1\nTestProject2\n", out.String())
	require.Len(t, runner.Commands, 1)
	assert.Equal(t, filepath.Join(g.Env.WorkDir, "TestProject"), runner.Commands[0].Dir)
}

func TestTargetsCmd_RequiresPackagePath(t *testing.T) {
	g, _ := testGlobal(t, process.NewRecording())
	err := (&TargetsCmd{}).Run(g, &CLI{})
	require.EqualError(t, err, "Input required and not supplied: package-path")
}

func TestLegacyCmd_ConfigErrorBeforeAnyProcess(t *testing.T) {
	runner := process.NewRecording()
	g, _ := testGlobal(t, runner)
	t.Setenv("INPUT_PACKAGE-PATH", ".")
	t.Setenv("INPUT_CLEAN", "maybe")

	err := (&LegacyCmd{}).Run(g, &CLI{})
	require.Error(t, err)
	assert.Empty(t, runner.Commands)
}
