package commands

import (
	"fmt"

	"git.home.luguber.info/inful/doccbuilder/internal/backend"
	"git.home.luguber.info/inful/doccbuilder/internal/config"
	"git.home.luguber.info/inful/doccbuilder/internal/manifest"
	"git.home.luguber.info/inful/doccbuilder/internal/process"
)

// TargetsCmd lists the unique targets vended by the package's products.
type TargetsCmd struct{}

func (cmd *TargetsCmd) Run(g *Global, cli *CLI) error {
	inputs, err := cli.Inputs(g)
	if err != nil {
		return err
	}
	dir, err := inputs.Input(config.KeyPackagePath, config.InputOptions{Required: true})
	if err != nil {
		return err
	}
	targets, err := listTargets(g, config.ResolvePath(g.Env.WorkDir, dir))
	if err != nil {
		return err
	}
	for _, t := range targets {
		_, _ = fmt.Fprintln(g.Out, t)
	}
	return nil
}

func listTargets(g *Global, dir string) ([]string, error) {
	out, err := g.Runner.Run(g.Ctx, process.Command{
		Name:   backend.SwiftTool,
		Args:   []string{"package", "dump-package"},
		Dir:    dir,
		Policy: process.Relaxed,
	})
	if err != nil {
		return nil, err
	}
	pkg, err := manifest.Parse([]byte(out))
	if err != nil {
		return nil, err
	}
	return pkg.UniqueTargets(), nil
}
