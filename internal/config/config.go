package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	foundationerrors "git.home.luguber.info/inful/remotebuild/internal/foundation/errors"
)

// DefaultPath is the configuration file looked up when none is given.
const DefaultPath = "remotebuild.yaml"

// Config represents the application configuration
type Config struct {
	Application   string          `yaml:"application"`
	Project       ProjectConfig   `yaml:"project"`
	Architectures []string        `yaml:"architectures"`
	Workspace     WorkspaceConfig `yaml:"workspace"`
	Metrics       MetricsConfig   `yaml:"metrics"`
}

// ProjectConfig identifies the local project handed to the remote builder.
type ProjectConfig struct {
	Name      string `yaml:"name"`
	Directory string `yaml:"directory"`
}

// WorkspaceConfig controls where build workspaces are created.
type WorkspaceConfig struct {
	BaseDirectory string `yaml:"base_directory,omitempty"`
	Persistent    bool   `yaml:"persistent"`
}

// MetricsConfig controls metrics output.
type MetricsConfig struct {
	Textfile string `yaml:"textfile,omitempty"` // node-exporter textfile; empty disables metrics
}

// Default returns a configuration with every default applied.
func Default() *Config {
	cfg := &Config{Workspace: WorkspaceConfig{Persistent: true}}
	cfg.applyDefaults()
	return cfg
}

// Load loads configuration from the specified file
func Load(configPath string) (*Config, error) {
	loadEnvFile()

	data, err := os.ReadFile(configPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, foundationerrors.WrapError(err, foundationerrors.CategoryConfig, "configuration file not found").
				Fatal().
				WithContext("path", configPath).
				Build()
		}
		return nil, foundationerrors.WrapError(err, foundationerrors.CategoryConfig, "failed to read config file").
			Fatal().
			WithContext("path", configPath).
			Build()
	}

	// Expand environment variables in the YAML content
	expanded := os.ExpandEnv(string(data))

	cfg := &Config{Workspace: WorkspaceConfig{Persistent: true}}
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, foundationerrors.WrapError(err, foundationerrors.CategoryConfig, "failed to parse config file").
			Fatal().
			WithContext("path", configPath).
			Build()
	}
	cfg.applyDefaults()

	return cfg, nil
}

// LoadOptional behaves like Load but returns Default() when the file does not exist.
func LoadOptional(configPath string) (*Config, error) {
	if _, err := os.Stat(configPath); errors.Is(err, fs.ErrNotExist) {
		loadEnvFile()
		return Default(), nil
	}
	return Load(configPath)
}

func (c *Config) applyDefaults() {
	if c.Application == "" {
		c.Application = "remotebuild"
	}
	if c.Project.Directory == "" {
		c.Project.Directory = "."
	}
	if c.Project.Name == "" {
		if abs, err := filepath.Abs(c.Project.Directory); err == nil {
			c.Project.Name = filepath.Base(abs)
		}
	}
	if len(c.Architectures) == 0 {
		c.Architectures = []string{"amd64"}
	}
	if c.Workspace.BaseDirectory == "" {
		c.Workspace.BaseDirectory = filepath.Join(os.TempDir(), "remotebuild")
	}
}

// Validate checks the fields every command relies on.
func (c *Config) Validate() error {
	if c.Project.Name == "" {
		return foundationerrors.ConfigError("project name is required").Build()
	}
	if len(c.Architectures) == 0 {
		return foundationerrors.ConfigError("at least one architecture is required").Build()
	}
	return nil
}

// Init creates a new configuration file with example content
func Init(configPath string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return foundationerrors.ConfigError("configuration file already exists (use --force to overwrite)").
			WithContext("path", configPath).
			Build()
	}

	example := Config{
		Application:   "remotebuild",
		Project:       ProjectConfig{Name: "my-project", Directory: "."},
		Architectures: []string{"amd64", "arm64"},
		Workspace:     WorkspaceConfig{Persistent: true},
		Metrics:       MetricsConfig{},
	}

	data, err := yaml.Marshal(&example)
	if err != nil {
		return foundationerrors.InternalError("failed to marshal example config").WithCause(err).Build()
	}

	if dir := filepath.Dir(configPath); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
	}
	if err := os.WriteFile(configPath, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
