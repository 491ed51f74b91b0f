package metrics

import "time"

// EntryKind labels the kind of filesystem entry a removal touched.
type EntryKind string

const (
	EntryFile    EntryKind = "file"
	EntryDir     EntryKind = "dir"
	EntrySymlink EntryKind = "symlink"
	EntryOther   EntryKind = "other"
)

// Recorder defines observability hooks for build-id derivation and tree removal.
type Recorder interface {
	IncBuildID(success bool)
	IncTreeRemoval(success bool)
	AddRemovedEntries(kind EntryKind, n int)
	IncPermissionRepair(kind EntryKind)
	ObserveRemovalDuration(d time.Duration)
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) IncBuildID(bool)                      {}
func (NoopRecorder) IncTreeRemoval(bool)                  {}
func (NoopRecorder) AddRemovedEntries(EntryKind, int)     {}
func (NoopRecorder) IncPermissionRepair(EntryKind)        {}
func (NoopRecorder) ObserveRemovalDuration(time.Duration) {}
