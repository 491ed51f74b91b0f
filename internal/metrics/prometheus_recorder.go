package metrics

import (
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	buildIDs        *prom.CounterVec
	removals        *prom.CounterVec
	removedEntries  *prom.CounterVec
	repairs         *prom.CounterVec
	removalDuration prom.Histogram
}

// NewPrometheusRecorder constructs the metrics and registers them with reg.
// A nil registry gets a fresh private one.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		buildIDs: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "remotebuild",
			Name:      "build_ids_total",
			Help:      "Build identifiers derived, by result",
		}, []string{"result"}),
		removals: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "remotebuild",
			Name:      "tree_removals_total",
			Help:      "Directory tree removals, by result",
		}, []string{"result"}),
		removedEntries: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "remotebuild",
			Name:      "removed_entries_total",
			Help:      "Filesystem entries removed, by kind",
		}, []string{"kind"}),
		repairs: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "remotebuild",
			Name:      "permission_repairs_total",
			Help:      "Permission repairs performed before retrying a removal, by kind",
		}, []string{"kind"}),
		removalDuration: prom.NewHistogram(prom.HistogramOpts{
			Namespace: "remotebuild",
			Name:      "tree_removal_duration_seconds",
			Help:      "Duration of directory tree removals",
			Buckets:   prom.DefBuckets,
		}),
	}
	reg.MustRegister(pr.buildIDs, pr.removals, pr.removedEntries, pr.repairs, pr.removalDuration)
	return pr
}

func resultLabel(success bool) string {
	if success {
		return "success"
	}
	return "failed"
}

func (p *PrometheusRecorder) IncBuildID(success bool) {
	if p == nil {
		return
	}
	p.buildIDs.WithLabelValues(resultLabel(success)).Inc()
}

func (p *PrometheusRecorder) IncTreeRemoval(success bool) {
	if p == nil {
		return
	}
	p.removals.WithLabelValues(resultLabel(success)).Inc()
}

func (p *PrometheusRecorder) AddRemovedEntries(kind EntryKind, n int) {
	if p == nil || n <= 0 {
		return
	}
	p.removedEntries.WithLabelValues(string(kind)).Add(float64(n))
}

func (p *PrometheusRecorder) IncPermissionRepair(kind EntryKind) {
	if p == nil {
		return
	}
	p.repairs.WithLabelValues(string(kind)).Inc()
}

func (p *PrometheusRecorder) ObserveRemovalDuration(d time.Duration) {
	if p == nil {
		return
	}
	p.removalDuration.Observe(d.Seconds())
}
