package commands

import (
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	prom "github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/remotebuild/internal/config"
	"git.home.luguber.info/inful/remotebuild/internal/metrics"
)

// Global carries state shared by every subcommand.
type Global struct {
	Out             io.Writer
	Registry        *prom.Registry
	Recorder        metrics.Recorder
	MetricsTextfile string
}

// NewGlobal returns a Global writing command output to out, with a private
// metrics registry.
func NewGlobal(out io.Writer) *Global {
	reg := prom.NewRegistry()
	return &Global{
		Out:      out,
		Registry: reg,
		Recorder: metrics.NewPrometheusRecorder(reg),
	}
}

// WriteMetrics writes the collected metrics when a textfile was requested.
func (g *Global) WriteMetrics() error {
	return metrics.WriteTextfile(g.MetricsTextfile, g.Registry)
}

// Vars returns the kong interpolation variables the CLI struct refers to.
func Vars(ver string) kong.Vars {
	return kong.Vars{
		"version":     ver,
		"config_path": config.DefaultPath,
	}
}

// CLI definition & global flags - used by commands that need access to root config.
type CLI struct {
	Config          string           `short:"c" help:"Configuration file path" default:"${config_path}"`
	Verbose         bool             `short:"v" help:"Enable verbose logging"`
	MetricsTextfile string           `name:"metrics-textfile" help:"Write Prometheus metrics to this file on exit"`
	Version         kong.VersionFlag `name:"version" help:"Show version and exit"`

	BuildID  BuildIDCmd  `cmd:"" name:"build-id" help:"Print the build identifier of a project directory"`
	Validate ValidateCmd `cmd:"" help:"Check architectures against the remote builder's supported list"`
	Prepare  PrepareCmd  `cmd:"" help:"Create the build workspace for the configured project"`
	Clean    CleanCmd    `cmd:"" help:"Remove directory trees, including read-only content"`
	Init     InitCmd     `cmd:"" help:"Initialize a new configuration file"`
}

// AfterApply runs after flag parsing; setup logging once.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply() error {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return nil
}

// loadConfig reads the configuration file if present, falling back to defaults.
// A metrics textfile from the config is used unless the flag already set one.
func (c *CLI) loadConfig(g *Global) (*config.Config, error) {
	cfg, err := config.LoadOptional(c.Config)
	if err != nil {
		return nil, err
	}
	if g.MetricsTextfile == "" {
		g.MetricsTextfile = cfg.Metrics.Textfile
	}
	return cfg, nil
}
