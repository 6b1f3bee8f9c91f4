package commands

import (
	"git.home.luguber.info/inful/doccbuilder/internal/config"
	"git.home.luguber.info/inful/doccbuilder/internal/pipeline"
)

// LegacyCmd runs the SourceKitten and jazzy pipeline.
type LegacyCmd struct{}

func (cmd *LegacyCmd) Run(g *Global, cli *CLI) error {
	inputs, err := cli.Inputs(g)
	if err != nil {
		return err
	}

	var cfg *config.RunConfig
	err = g.Commands.Group("Validating input", func() error {
		var err error
		cfg, err = config.Normalize(inputs, g.Env)
		return err
	})
	if err != nil {
		return err
	}
	defer writeMetrics(g, cfg.MetricsFile)

	_, err = pipeline.NewController(g.Runner, g.Env.GOOS).
		WithRecorder(g.Recorder).
		WithCommands(g.Commands).
		Run(g.Ctx, cfg)
	return err
}
