package workspace

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	foundationerrors "git.home.luguber.info/inful/remotebuild/internal/foundation/errors"
	"git.home.luguber.info/inful/remotebuild/internal/logfields"
	"git.home.luguber.info/inful/remotebuild/internal/remote"
)

// Manager handles workspace operations (both ephemeral and persistent)
type Manager struct {
	baseDir    string
	buildID    string
	dir        string
	persistent bool
	eraser     *remote.Eraser
}

// Option configures a Manager.
type Option func(*Manager)

// WithEraser sets the eraser used for cleanup.
func WithEraser(e *remote.Eraser) Option {
	return func(m *Manager) {
		if e != nil {
			m.eraser = e
		}
	}
}

// NewManager creates a workspace manager with ephemeral directories.
func NewManager(baseDir, buildID string, opts ...Option) *Manager {
	return newManager(baseDir, buildID, false, opts)
}

// NewPersistentManager creates a workspace manager whose directory is
// baseDir/buildID and survives Cleanup.
func NewPersistentManager(baseDir, buildID string, opts ...Option) *Manager {
	m := newManager(baseDir, buildID, true, opts)
	m.dir = filepath.Join(m.baseDir, buildID)
	return m
}

func newManager(baseDir, buildID string, persistent bool, opts []Option) *Manager {
	if baseDir == "" {
		baseDir = filepath.Join(os.TempDir(), "remotebuild")
	}
	m := &Manager{
		baseDir:    baseDir,
		buildID:    buildID,
		persistent: persistent,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.eraser == nil {
		m.eraser = remote.NewEraser()
	}
	return m
}

// Create creates the workspace directory.
// For ephemeral mode: creates a fresh timestamped directory
// For persistent mode: ensures the fixed directory exists
func (m *Manager) Create() error {
	if m.buildID == "" {
		return foundationerrors.ValidationError("workspace requires a build id").Build()
	}

	if m.persistent {
		if err := os.MkdirAll(m.dir, 0o750); err != nil {
			return workspaceError("create", m.dir, err)
		}
		slog.Info("Using persistent workspace", logfields.Workspace(m.dir), logfields.BuildID(m.buildID))
		return nil
	}

	name := fmt.Sprintf("%s-%s-%s", m.buildID, time.Now().Format("20060102-150405"), uuid.NewString()[:8])
	dir := filepath.Join(m.baseDir, name)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return workspaceError("create", dir, err)
	}

	m.dir = dir
	slog.Info("Created workspace", logfields.Workspace(dir), logfields.BuildID(m.buildID))
	return nil
}

// GetPath returns the path to the workspace directory
func (m *Manager) GetPath() string {
	return m.dir
}

// BuildID returns the build identifier the workspace is keyed by.
func (m *Manager) BuildID() string {
	return m.buildID
}

// Cleanup removes an ephemeral workspace. Persistent workspaces are kept.
func (m *Manager) Cleanup() error {
	if m.dir == "" {
		return nil
	}
	if m.persistent {
		slog.Debug("Skipping cleanup for persistent workspace", logfields.Workspace(m.dir))
		return nil
	}
	if err := m.remove(); err != nil {
		return err
	}
	m.dir = ""
	return nil
}

// Purge removes the workspace directory regardless of mode. A workspace that
// was never created, or is already gone, is not an error.
func (m *Manager) Purge() (remote.RemovalStats, error) {
	if m.dir == "" {
		return remote.RemovalStats{}, nil
	}
	stats, err := m.eraser.Remove(m.dir)
	if err != nil && !foundationerrors.HasCategory(err, foundationerrors.CategoryNotFound) {
		return stats, workspaceError("purge", m.dir, err)
	}
	slog.Info("Purged workspace", logfields.Workspace(m.dir), logfields.Entries(stats.Entries()))
	if !m.persistent {
		m.dir = ""
	}
	return stats, nil
}

func (m *Manager) remove() error {
	stats, err := m.eraser.Remove(m.dir)
	if err != nil {
		if foundationerrors.HasCategory(err, foundationerrors.CategoryNotFound) {
			return nil
		}
		return workspaceError("cleanup", m.dir, err)
	}
	slog.Info("Cleaned up workspace", logfields.Workspace(m.dir), logfields.Entries(stats.Entries()))
	return nil
}

// CreateSubdir creates a subdirectory within the workspace
func (m *Manager) CreateSubdir(name string) (string, error) {
	if m.dir == "" {
		return "", errors.New("workspace not created")
	}

	subdir := filepath.Join(m.dir, name)
	if err := os.MkdirAll(subdir, 0o750); err != nil {
		return "", workspaceError("create subdirectory", subdir, err)
	}
	return subdir, nil
}

func workspaceError(operation, path string, err error) error {
	category := foundationerrors.CategoryFileSystem
	if foundationerrors.HasCategory(err, foundationerrors.CategoryPermission) {
		category = foundationerrors.CategoryPermission
	}
	return foundationerrors.WrapError(err, category, "workspace operation failed").
		Fatal().
		WithContext("operation", operation).
		WithContext("path", path).
		Build()
}
