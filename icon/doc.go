// Package icon defines the site icon data model: the persisted cache entry,
// the transient resolved result, and domain normalization.
//
// An entry is a tagged union over three kinds. Image entries embed a
// normalized inline image, ExternalURL entries reference a candidate URL
// that could not be embedded, and Letter entries carry the background color
// of a deterministic letter glyph.
package icon
