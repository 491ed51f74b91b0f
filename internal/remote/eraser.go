package remote

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	foundationerrors "git.home.luguber.info/inful/remotebuild/internal/foundation/errors"
	"git.home.luguber.info/inful/remotebuild/internal/logfields"
	"git.home.luguber.info/inful/remotebuild/internal/metrics"
)

// fileSystem is the subset of filesystem calls the eraser makes.
type fileSystem interface {
	Lstat(name string) (fs.FileInfo, error)
	ReadDir(name string) ([]fs.DirEntry, error)
	Remove(name string) error
	Chmod(name string, mode fs.FileMode) error
}

type osFileSystem struct{}

func (osFileSystem) Lstat(name string) (fs.FileInfo, error)     { return os.Lstat(name) }
func (osFileSystem) ReadDir(name string) ([]fs.DirEntry, error) { return os.ReadDir(name) }
func (osFileSystem) Remove(name string) error                   { return os.Remove(name) }
func (osFileSystem) Chmod(name string, mode fs.FileMode) error  { return os.Chmod(name, mode) }

// RemovalStats summarizes what a removal deleted.
type RemovalStats struct {
	Files    int
	Dirs     int
	Symlinks int
	Other    int
	Bytes    int64 // size of regular files removed
	Repairs  int   // permission repairs performed
}

// Entries returns the total number of entries removed.
func (s RemovalStats) Entries() int {
	return s.Files + s.Dirs + s.Symlinks + s.Other
}

// Eraser removes directory trees, repairing permission bits that would
// otherwise block the removal.
type Eraser struct {
	fs       fileSystem
	logger   *slog.Logger
	recorder metrics.Recorder
}

// EraserOption configures an Eraser.
type EraserOption func(*Eraser)

// WithLogger sets the logger used for debug output.
func WithLogger(logger *slog.Logger) EraserOption {
	return func(e *Eraser) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithRecorder sets the metrics recorder.
func WithRecorder(recorder metrics.Recorder) EraserOption {
	return func(e *Eraser) {
		if recorder != nil {
			e.recorder = recorder
		}
	}
}

func withFileSystem(fsys fileSystem) EraserOption {
	return func(e *Eraser) { e.fs = fsys }
}

// NewEraser creates an Eraser backed by the OS filesystem.
func NewEraser(opts ...EraserOption) *Eraser {
	e := &Eraser{
		fs:       osFileSystem{},
		logger:   slog.Default(),
		recorder: metrics.NoopRecorder{},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// RemoveTree removes root and everything beneath it using a default Eraser.
func RemoveTree(root string) error {
	_, err := NewEraser().Remove(root)
	return err
}

// Remove deletes root and all its descendants, children before parents.
//
// When a removal is refused for lack of permission, the entry and its parent
// (if the parent is inside the tree) get owner write permission and the
// removal is retried once. A second failure aborts the walk with an error
// naming the entry; whatever was already removed stays removed.
//
// Symlinks are removed as links and never followed. A missing root is a
// not_found error. Entries that vanish during the walk count as removed.
func (e *Eraser) Remove(root string) (RemovalStats, error) {
	var stats RemovalStats
	start := time.Now()
	root = filepath.Clean(root)

	info, err := e.fs.Lstat(root)
	if err != nil {
		e.recorder.IncTreeRemoval(false)
		if errors.Is(err, fs.ErrNotExist) {
			return stats, foundationerrors.NotFoundError("path to remove not found").
				WithCause(err).
				WithContext("path", root).
				Build()
		}
		return stats, removalError(root, err)
	}

	size := int64(0)
	if info.Mode().IsRegular() {
		size = info.Size()
	}
	err = e.removeEntry(root, info.Mode().Type(), size, true, &stats)

	elapsed := time.Since(start)
	e.recorder.ObserveRemovalDuration(elapsed)
	e.recorder.IncTreeRemoval(err == nil)
	e.recorder.AddRemovedEntries(metrics.EntryFile, stats.Files)
	e.recorder.AddRemovedEntries(metrics.EntryDir, stats.Dirs)
	e.recorder.AddRemovedEntries(metrics.EntrySymlink, stats.Symlinks)
	e.recorder.AddRemovedEntries(metrics.EntryOther, stats.Other)

	if err != nil {
		return stats, err
	}
	e.logger.Debug("Removed tree",
		logfields.Path(root),
		logfields.Entries(stats.Entries()),
		logfields.Bytes(stats.Bytes),
		logfields.DurationMS(float64(elapsed.Microseconds())/1000))
	return stats, nil
}

func (e *Eraser) removeEntry(path string, typ fs.FileMode, size int64, isRoot bool, stats *RemovalStats) error {
	if typ.IsDir() {
		if err := e.removeChildren(path, stats); err != nil {
			return err
		}
	}
	return e.removeWithRepair(path, typ, size, isRoot, stats)
}

func (e *Eraser) removeChildren(dir string, stats *RemovalStats) error {
	entries, err := e.fs.ReadDir(dir)
	if err != nil && errors.Is(err, fs.ErrPermission) {
		e.logger.Debug("Repairing unreadable directory", logfields.Path(dir), logfields.Error(err))
		e.addOwnerBits(dir, 0o700)
		stats.Repairs++
		e.recorder.IncPermissionRepair(metrics.EntryDir)
		entries, err = e.fs.ReadDir(dir)
	}
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return removalError(dir, err)
	}

	for _, entry := range entries {
		child := filepath.Join(dir, entry.Name())
		var size int64
		if entry.Type().IsRegular() {
			if info, infoErr := entry.Info(); infoErr == nil {
				size = info.Size()
			}
		}
		if err := e.removeEntry(child, entry.Type(), size, false, stats); err != nil {
			return err
		}
	}
	return nil
}

func (e *Eraser) removeWithRepair(path string, typ fs.FileMode, size int64, isRoot bool, stats *RemovalStats) error {
	err := e.fs.Remove(path)
	if err != nil && errors.Is(err, fs.ErrPermission) {
		e.logger.Debug("Repairing permissions before retrying removal", logfields.Path(path), logfields.Error(err))
		e.repair(path, typ, isRoot)
		stats.Repairs++
		e.recorder.IncPermissionRepair(entryKind(typ))
		err = e.fs.Remove(path)
	}
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return removalError(path, err)
	}

	switch entryKind(typ) {
	case metrics.EntryDir:
		stats.Dirs++
	case metrics.EntrySymlink:
		stats.Symlinks++
	case metrics.EntryFile:
		stats.Files++
		stats.Bytes += size
	default:
		stats.Other++
	}
	return nil
}

// repair grants the owner write access to path and write+search access to
// its parent. Unlinking is governed by the parent's bits, so both matter.
// The root's parent lies outside the tree and is left alone. Symlinks are
// skipped because chmod would follow them.
func (e *Eraser) repair(path string, typ fs.FileMode, isRoot bool) {
	if !isRoot {
		e.addOwnerBits(filepath.Dir(path), 0o700)
	}
	switch {
	case typ&fs.ModeSymlink != 0:
	case typ.IsDir():
		e.addOwnerBits(path, 0o700)
	default:
		e.addOwnerBits(path, 0o200)
	}
}

func (e *Eraser) addOwnerBits(path string, bits fs.FileMode) {
	info, err := e.fs.Lstat(path)
	if err != nil {
		e.logger.Debug("Cannot inspect entry for repair", logfields.Path(path), logfields.Error(err))
		return
	}
	mode := info.Mode().Perm() | bits
	if mode == info.Mode().Perm() {
		return
	}
	if err := e.fs.Chmod(path, mode); err != nil {
		e.logger.Debug("Cannot change entry mode", logfields.Path(path), logfields.Mode(mode), logfields.Error(err))
	}
}

func entryKind(typ fs.FileMode) metrics.EntryKind {
	switch {
	case typ.IsDir():
		return metrics.EntryDir
	case typ&fs.ModeSymlink != 0:
		return metrics.EntrySymlink
	case typ.IsRegular():
		return metrics.EntryFile
	default:
		return metrics.EntryOther
	}
}

func removalError(path string, err error) error {
	if errors.Is(err, fs.ErrPermission) {
		return foundationerrors.PermissionError("failed to remove path").
			WithCause(err).
			WithContext("path", path).
			Build()
	}
	return foundationerrors.FileSystemError("failed to remove path").
		WithCause(err).
		Fatal().
		WithContext("path", path).
		Build()
}
