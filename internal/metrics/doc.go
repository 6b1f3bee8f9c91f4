// Package metrics provides run and stage metrics for doccbuilder.
//
// Components receive a Recorder through dependency injection and default to
// NoopRecorder, so metrics never require nil checks at call sites. When a
// metrics file is configured the CLI swaps in a PrometheusRecorder and writes
// the registry once, at the end of the run, in the Prometheus text format
// understood by the node_exporter textfile collector. There is no HTTP
// endpoint: a run is a single short-lived process.
package metrics
