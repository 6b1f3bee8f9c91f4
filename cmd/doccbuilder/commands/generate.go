package commands

import (
	"git.home.luguber.info/inful/doccbuilder/internal/build"
)

// GenerateCmd implements the 'generate' command.
type GenerateCmd struct{}

func (cmd *GenerateCmd) Run(g *Global, cli *CLI) error {
	result, err := runService(g, cli, false)
	if result != nil && result.Config != nil {
		writeMetrics(g, result.Config.MetricsFile)
	}
	return err
}

func runService(g *Global, cli *CLI, dryRun bool) (*build.Result, error) {
	inputs, err := cli.Inputs(g)
	if err != nil {
		return nil, err
	}
	svc := build.NewService(g.Runner).
		WithRecorder(g.Recorder).
		WithCommands(g.Commands)
	return svc.Run(g.Ctx, build.Request{Inputs: inputs, Env: g.Env, DryRun: dryRun})
}
