package storage

import "errors"

// Storage errors. Sample stores are append-only: the read path never
// updates or deletes what ingestion wrote.
var (
	// ErrNotFound is returned when a requested record does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput is returned when a record fails basic validation
	// before reaching the backend (nil sample, inverted time range).
	ErrInvalidInput = errors.New("invalid input")
)
