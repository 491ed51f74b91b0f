package commands

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/dustin/go-humanize"

	foundationerrors "git.home.luguber.info/inful/remotebuild/internal/foundation/errors"
	"git.home.luguber.info/inful/remotebuild/internal/remote"
	"git.home.luguber.info/inful/remotebuild/internal/workspace"
)

// CleanCmd implements the 'clean' command.
type CleanCmd struct {
	Paths     []string `arg:"" optional:"" help:"Paths to remove (defaults to the project's persistent workspace)"`
	MissingOK bool     `name:"missing-ok" help:"Do not fail when a path does not exist"`
}

func (c *CleanCmd) Run(g *Global, root *CLI) error {
	if len(c.Paths) == 0 {
		return c.purgeWorkspace(g, root)
	}

	eraser := remote.NewEraser(remote.WithRecorder(g.Recorder), remote.WithLogger(slog.Default()))
	for _, path := range c.Paths {
		stats, err := eraser.Remove(path)
		if err != nil {
			if c.MissingOK && foundationerrors.HasCategory(err, foundationerrors.CategoryNotFound) {
				if _, werr := fmt.Fprintf(g.Out, "Skipped %s (not found)\n", path); werr != nil {
					return werr
				}
				continue
			}
			return err
		}
		if err := printRemoval(g, path, stats); err != nil {
			return err
		}
	}
	return nil
}

func (c *CleanCmd) purgeWorkspace(g *Global, root *CLI) error {
	cfg, err := root.loadConfig(g)
	if err != nil {
		return err
	}
	// Ephemeral workspaces get a fresh name per run and cannot be found again.
	if !cfg.Workspace.Persistent {
		return foundationerrors.ValidationError("clean without paths requires a persistent workspace").
			WithContext("path", root.Config).
			Build()
	}
	id, err := remote.BuildID(cfg.Application, cfg.Project.Name, cfg.Project.Directory)
	g.Recorder.IncBuildID(err == nil)
	if err != nil {
		return err
	}

	eraser := remote.NewEraser(remote.WithRecorder(g.Recorder), remote.WithLogger(slog.Default()))
	mgr := workspace.NewPersistentManager(cfg.Workspace.BaseDirectory, id, workspace.WithEraser(eraser))
	if _, err := os.Lstat(mgr.GetPath()); errors.Is(err, fs.ErrNotExist) {
		_, werr := fmt.Fprintf(g.Out, "Skipped %s (not found)\n", mgr.GetPath())
		return werr
	}
	stats, err := mgr.Purge()
	if err != nil {
		return err
	}
	return printRemoval(g, mgr.GetPath(), stats)
}

func printRemoval(g *Global, path string, stats remote.RemovalStats) error {
	_, err := fmt.Fprintf(g.Out, "Removed %s (%d entries, %s)\n",
		path, stats.Entries(), humanize.Bytes(uint64(stats.Bytes)))
	return err
}
