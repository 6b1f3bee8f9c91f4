package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/doccbuilder/cmd/doccbuilder/commands"
	ferrors "git.home.luguber.info/inful/doccbuilder/internal/foundation/errors"
	"git.home.luguber.info/inful/doccbuilder/internal/version"
)

func main() {
	cli := &commands.CLI{}
	parser := kong.Parse(cli,
		kong.Name("doccbuilder"),
		kong.Description("Generate Swift DocC documentation with swift-docc-plugin or xcodebuild."),
		kong.Vars{"version": version.String()},
		kong.UsageOnError(),
	)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	global := commands.NewGlobal(ctx, cli)
	err := parser.Run(global, cli)

	adapter := ferrors.NewCLIErrorAdapter(cli.Verbose, global.Logger)
	if global.Commands.Enabled() {
		adapter = adapter.WithReporter(global.Commands.Error)
	}
	cancel()
	adapter.HandleError(err)
}
