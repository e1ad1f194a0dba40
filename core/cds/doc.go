// Package cds models the vehicle property bus (CDS): property identifiers,
// payload access and the in-process hub that fans property updates out to
// metric chains.
//
// A transport (see infra/mqtt) feeds decoded payloads into a Hub and is told,
// through the Watcher interface, which properties currently have consumers.
// Metric code only ever sees the Source interface.
package cds
