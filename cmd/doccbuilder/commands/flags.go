package commands

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"git.home.luguber.info/inful/doccbuilder/internal/build"
)

// FlagsCmd prints the planned generator invocation.
type FlagsCmd struct {
	NoColor bool `name:"no-color" help:"Disable colored output"`
}

func (cmd *FlagsCmd) Run(g *Global, cli *CLI) error {
	result, err := runService(g, cli, true)
	if err != nil {
		return err
	}
	printPlan(g.Out, result, cmd.NoColor)
	return nil
}

func printPlan(w io.Writer, result *build.Result, noColor bool) {
	label := color.New(color.Bold)
	name := color.New(color.FgCyan)
	setting := color.New(color.FgYellow)
	for _, c := range []*color.Color{label, name, setting} {
		if noColor {
			c.DisableColor()
		}
	}

	planned := result.Command
	_, _ = label.Fprint(w, "backend: ")
	_, _ = fmt.Fprintln(w, result.Backend)
	_, _ = label.Fprint(w, "directory: ")
	_, _ = fmt.Fprintln(w, planned.Dir)
	if len(planned.Env) > 0 {
		_, _ = label.Fprint(w, "environment: ")
		_, _ = setting.Fprintln(w, planned.Env)
	}
	_, _ = label.Fprint(w, "command: ")
	_, _ = name.Fprintln(w, planned.String())
}
