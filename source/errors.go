package source

import "errors"

// Sentinel errors for cascade fetch and gating.
var (
	// ErrBadStatus is returned when a provider responds with a non-2xx status.
	ErrBadStatus = errors.New("source: unexpected response status")

	// ErrTooLarge is returned when a response body exceeds the fetch limit.
	ErrTooLarge = errors.New("source: response body too large")

	// ErrEmptyBody is returned when a provider responds with no payload.
	ErrEmptyBody = errors.New("source: empty response body")

	// ErrUnsupportedFormat is returned when the payload is not a known
	// icon format.
	ErrUnsupportedFormat = errors.New("source: unsupported image format")

	// ErrUndecodable is returned when a raster payload cannot be decoded.
	ErrUndecodable = errors.New("source: undecodable image payload")

	// ErrTooSmall is returned when a raster payload fails the minimum
	// dimension gate.
	ErrTooSmall = errors.New("source: image below minimum dimensions")

	// ErrExhausted is returned when every provider in the cascade has
	// failed or been rejected.
	ErrExhausted = errors.New("source: all providers exhausted")
)
