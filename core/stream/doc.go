// Package stream is the push-based reactive substrate used to derive vehicle
// metrics. A Stream delivers values to its subscribers synchronously, on the
// goroutine that produced the upstream value. Operators are cold: every
// subscription builds its own chain up to the first shared node (see Share)
// or hot source.
//
// Absence is never an error. A node that cannot produce a value for a tick
// simply does not emit.
package stream
