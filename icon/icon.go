package icon

import (
	"encoding/json"
	"time"
)

// Kind discriminates the payload carried by an Entry.
type Kind int

const (
	// KindImage is a normalized inline image payload.
	KindImage Kind = iota
	// KindExternalURL is a resolved absolute URL used when the source
	// image cannot be embedded (ICO, SVG).
	KindExternalURL
	// KindLetter is a letter-glyph fallback; the payload is the glyph
	// background color.
	KindLetter
)

// String returns the string representation of the kind.
func (k Kind) String() string {
	switch k {
	case KindImage:
		return "image"
	case KindExternalURL:
		return "external_url"
	case KindLetter:
		return "letter"
	default:
		return "unknown"
	}
}

// Entry is one cached icon resolution for a domain.
//
// Exactly one of Image, URL, Color is meaningful, selected by Kind.
// Entries are replaced wholesale on refresh, never mutated in place.
type Entry struct {
	Kind      Kind      `json:"kind"`
	Domain    string    `json:"domain"`
	Image     []byte    `json:"image,omitempty"`
	URL       string    `json:"url,omitempty"`
	Color     string    `json:"color,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	SizeBytes int64     `json:"size_bytes"`
}

// Resolved is the value returned to callers. It is always derivable from an
// Entry or freshly computed; it is never persisted.
type Resolved struct {
	Kind   Kind
	Domain string

	// Image is the normalized inline image for KindImage.
	Image []byte
	// URL is the external icon URL for KindExternalURL.
	URL string
	// Char and Color describe the letter glyph for KindLetter.
	Char  string
	Color string
}

// entryWire is the persisted JSON shape of an Entry. Timestamps are stored
// as UTC millis so entries survive driver and timezone changes.
type entryWire struct {
	Kind      string `json:"kind"`
	Domain    string `json:"domain"`
	Image     []byte `json:"image,omitempty"`
	URL       string `json:"url,omitempty"`
	Color     string `json:"color,omitempty"`
	CreatedAt int64  `json:"created_at"`
	SizeBytes int64  `json:"size_bytes"`
}

// EncodeEntry serializes an entry for the durable store.
func EncodeEntry(e Entry) ([]byte, error) {
	w := entryWire{
		Kind:      e.Kind.String(),
		Domain:    e.Domain,
		Image:     e.Image,
		URL:       e.URL,
		Color:     e.Color,
		CreatedAt: e.CreatedAt.UTC().UnixMilli(),
		SizeBytes: e.SizeBytes,
	}
	return json.Marshal(w)
}

// DecodeEntry deserializes a stored entry. A payload with an unexpected
// shape or missing fields returns ErrCorruptEntry; callers treat that as a
// cache miss rather than a failure.
func DecodeEntry(data []byte) (Entry, error) {
	var w entryWire
	if err := json.Unmarshal(data, &w); err != nil {
		return Entry{}, ErrCorruptEntry
	}
	var kind Kind
	switch w.Kind {
	case "image":
		kind = KindImage
	case "external_url":
		kind = KindExternalURL
	case "letter":
		kind = KindLetter
	default:
		return Entry{}, ErrCorruptEntry
	}
	if w.Domain == "" || w.CreatedAt <= 0 {
		return Entry{}, ErrCorruptEntry
	}
	switch kind {
	case KindImage:
		if len(w.Image) == 0 {
			return Entry{}, ErrCorruptEntry
		}
	case KindExternalURL:
		if w.URL == "" {
			return Entry{}, ErrCorruptEntry
		}
	case KindLetter:
		if w.Color == "" {
			return Entry{}, ErrCorruptEntry
		}
	}
	return Entry{
		Kind:      kind,
		Domain:    w.Domain,
		Image:     w.Image,
		URL:       w.URL,
		Color:     w.Color,
		CreatedAt: time.UnixMilli(w.CreatedAt).UTC(),
		SizeBytes: w.SizeBytes,
	}, nil
}
