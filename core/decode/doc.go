// Package decode turns bit-coded and state-coded vehicle signals into
// classifications. Every function is stateless and total: unknown inputs
// map to a defined fallback instead of failing.
package decode
