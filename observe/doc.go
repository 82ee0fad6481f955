// Package observe provides observability primitives for icon resolution.
//
// It is a pure instrumentation library: no resolution logic, no transport,
// no I/O beyond exporter setup. The resolver and the source cascade wire an
// Observer in and report spans, metrics and structured logs through it.
package observe
