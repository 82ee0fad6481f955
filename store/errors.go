package store

import "errors"

// Sentinel errors for store operations.
var (
	// ErrClosed is returned when an operation runs against a closed store.
	ErrClosed = errors.New("store: store is closed")

	// ErrNotConfigured is returned when a store handle is nil or was not
	// opened.
	ErrNotConfigured = errors.New("store: storage is not configured")
)
