// Package resolve ties the icon pipeline together: the in-memory index, the
// durable store, the remote cascade and the letter-glyph fallback, behind a
// single Resolve call that always produces something renderable.
//
// Lookup order is memory index, durable store, then the cascade. TTLs are
// applied lazily at read time; a letter entry past its soft TTL is served
// immediately while an upgrade attempt runs in the background. When every
// remote provider fails, the resolver falls back to a deterministic letter
// glyph and caches it so the cascade is not replayed on every render.
//
// Concurrent resolutions of the same domain are coalesced: one cascade run
// feeds every waiting caller.
package resolve
