// Package metrics defines the sinks vehicle metric samples are exported to.
// Implementations such as the Prometheus and log sinks live in infra/metrics
// and register themselves by type name; NewSink builds the configured set,
// combining several sinks into a MultiSink.
package metrics
