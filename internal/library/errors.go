package library

import "errors"

var (
	// ErrStoreUnavailable reports a path that does not resolve to a readable
	// SQLite database with the expected RKVersion schema.
	ErrStoreUnavailable = errors.New("library database unavailable")
	// ErrDataIntegrity reports more than one version sharing a uuid.
	ErrDataIntegrity = errors.New("library data integrity violation")
	// ErrReadOnly is returned when a write is attempted on a read-only store.
	ErrReadOnly = errors.New("library opened read-only")
	// ErrClosed is returned by operations on a closed store.
	ErrClosed = errors.New("library store closed")
)
