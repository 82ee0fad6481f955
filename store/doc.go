// Package store provides the tiered icon cache: a durable domain-keyed
// store built on a minimal key-value interface, a process-lifetime memory
// index for hot entries, per-kind TTL policy applied lazily at read time,
// and a janitor that bounds storage with two-watermark eviction.
package store
