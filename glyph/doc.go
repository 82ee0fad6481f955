// Package glyph derives deterministic letter-glyph fallback icons.
//
// A glyph is one upper-cased character over a background color picked from a
// fixed palette by hashing the display name. The color is the cached
// artifact, so the hash must be stable across process restarts.
package glyph
