package main

import (
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/remotebuild/cmd/remotebuild/commands"
	foundationerrors "git.home.luguber.info/inful/remotebuild/internal/foundation/errors"
	"git.home.luguber.info/inful/remotebuild/internal/logfields"
	"git.home.luguber.info/inful/remotebuild/internal/version"
)

func main() {
	var cli commands.CLI
	ctx := kong.Parse(&cli,
		kong.Name("remotebuild"),
		kong.Description("Local helpers for remote builds: build identifiers, workspaces and cleanup."),
		kong.UsageOnError(),
		commands.Vars(version.String()),
	)

	global := commands.NewGlobal(os.Stdout)
	global.MetricsTextfile = cli.MetricsTextfile

	err := ctx.Run(global, &cli)

	if werr := global.WriteMetrics(); werr != nil {
		slog.Warn("Failed to write metrics", logfields.Path(global.MetricsTextfile), logfields.Error(werr))
	}

	foundationerrors.NewCLIErrorAdapter(cli.Verbose, slog.Default()).HandleError(err)
}
