package icon

import "errors"

// Sentinel errors for the icon data model.
var (
	// ErrInvalidDomain is returned when a domain cannot be normalized.
	ErrInvalidDomain = errors.New("icon: domain is invalid")

	// ErrCorruptEntry is returned when a stored entry has an unexpected
	// shape. Callers treat it as a cache miss.
	ErrCorruptEntry = errors.New("icon: corrupt cache entry")
)
