package resolve

import "errors"

// Sentinel errors for resolver construction and lifecycle.
var (
	// ErrNilStore is returned when no durable store is configured.
	ErrNilStore = errors.New("resolve: store is required")

	// ErrNilCascade is returned when no cascade is configured.
	ErrNilCascade = errors.New("resolve: cascade is required")

	// ErrClosed is returned when the resolver has been closed.
	ErrClosed = errors.New("resolve: resolver is closed")
)
