package commands

import (
	"fmt"

	"git.home.luguber.info/inful/remotebuild/internal/remote"
)

// ValidateCmd implements the 'validate' command.
type ValidateCmd struct {
	Architectures []string `arg:"" optional:"" help:"Architectures to check (defaults to config)"`
}

func (v *ValidateCmd) Run(g *Global, root *CLI) error {
	archs := v.Architectures
	if len(archs) == 0 {
		cfg, err := root.loadConfig(g)
		if err != nil {
			return err
		}
		archs = cfg.Architectures
	}

	if err := remote.ValidateArchitectures(archs); err != nil {
		return err
	}
	_, err := fmt.Fprintf(g.Out, "Building for %s\n", remote.HumanizeList(archs, "and"))
	return err
}
