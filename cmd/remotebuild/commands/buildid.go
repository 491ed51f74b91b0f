package commands

import (
	"fmt"
	"log/slog"

	"git.home.luguber.info/inful/remotebuild/internal/logfields"
	"git.home.luguber.info/inful/remotebuild/internal/remote"
)

// BuildIDCmd implements the 'build-id' command.
type BuildIDCmd struct {
	App       string `name:"app" help:"Application name (defaults to config)"`
	Project   string `name:"project" help:"Project name (defaults to config)"`
	Directory string `arg:"" optional:"" help:"Project directory (defaults to config)"`
}

func (b *BuildIDCmd) Run(g *Global, root *CLI) error {
	cfg, err := root.loadConfig(g)
	if err != nil {
		return err
	}
	app := firstNonEmpty(b.App, cfg.Application)
	project := firstNonEmpty(b.Project, cfg.Project.Name)
	dir := firstNonEmpty(b.Directory, cfg.Project.Directory)

	id, err := remote.BuildID(app, project, dir)
	g.Recorder.IncBuildID(err == nil)
	if err != nil {
		return err
	}

	slog.Debug("Derived build id", logfields.BuildID(id), logfields.Path(dir))
	_, err = fmt.Fprintln(g.Out, id)
	return err
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
