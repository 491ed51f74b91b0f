package commands

import (
	"fmt"
	"log/slog"

	"git.home.luguber.info/inful/remotebuild/internal/config"
	"git.home.luguber.info/inful/remotebuild/internal/logfields"
	"git.home.luguber.info/inful/remotebuild/internal/remote"
	"git.home.luguber.info/inful/remotebuild/internal/workspace"
)

// PrepareCmd implements the 'prepare' command.
type PrepareCmd struct{}

func (p *PrepareCmd) Run(g *Global, root *CLI) error {
	cfg, err := root.loadConfig(g)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := remote.ValidateArchitectures(cfg.Architectures); err != nil {
		return err
	}

	id, err := remote.BuildID(cfg.Application, cfg.Project.Name, cfg.Project.Directory)
	g.Recorder.IncBuildID(err == nil)
	if err != nil {
		return err
	}

	mgr := newWorkspaceManager(g, cfg, id)
	if err := mgr.Create(); err != nil {
		return err
	}

	slog.Info("Workspace ready",
		logfields.BuildID(id),
		logfields.Workspace(mgr.GetPath()),
		logfields.Architectures(cfg.Architectures))
	_, err = fmt.Fprintf(g.Out, "Build %s for %s\nWorkspace: %s\n",
		id, remote.HumanizeList(cfg.Architectures, "and"), mgr.GetPath())
	return err
}

func newWorkspaceManager(g *Global, cfg *config.Config, buildID string) *workspace.Manager {
	eraser := remote.NewEraser(remote.WithRecorder(g.Recorder), remote.WithLogger(slog.Default()))
	if cfg.Workspace.Persistent {
		return workspace.NewPersistentManager(cfg.Workspace.BaseDirectory, buildID, workspace.WithEraser(eraser))
	}
	return workspace.NewManager(cfg.Workspace.BaseDirectory, buildID, workspace.WithEraser(eraser))
}
