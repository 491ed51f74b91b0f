package metrics

import (
	"testing"
	"time"
)

var (
	_ Recorder = NoopRecorder{}
	_ Recorder = (*PrometheusRecorder)(nil)
)

func TestNoopRecorder(t *testing.T) {
	// Calls must be safe with no backing state.
	var r Recorder = NoopRecorder{}
	r.IncBuildID(true)
	r.IncTreeRemoval(false)
	r.AddRemovedEntries(EntryFile, 3)
	r.IncPermissionRepair(EntryDir)
	r.ObserveRemovalDuration(10 * time.Millisecond)
}

func TestNilPrometheusRecorder(t *testing.T) {
	var p *PrometheusRecorder
	p.IncBuildID(true)
	p.IncTreeRemoval(true)
	p.AddRemovedEntries(EntryDir, 1)
	p.IncPermissionRepair(EntryFile)
	p.ObserveRemovalDuration(time.Second)
}
