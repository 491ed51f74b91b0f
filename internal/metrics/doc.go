// Package metrics provides observability hooks for remotebuild's filesystem helpers.
//
// Components receive a Recorder and default to NoopRecorder, so metrics are
// collected only when the CLI is asked to write them:
//
//	reg := prometheus.NewRegistry()
//	rec := metrics.NewPrometheusRecorder(reg)
//	eraser := remote.NewEraser(remote.WithRecorder(rec))
//	...
//	_ = metrics.WriteTextfile("/var/lib/node_exporter/remotebuild.prom", reg)
//
// The textfile format is the one read by the node exporter's textfile
// collector, which suits a short-lived CLI better than an HTTP endpoint.
package metrics
