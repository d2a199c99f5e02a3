package repository

import "errors"

var (
	// ErrNotFound is returned when a lookup by id matches no document.
	ErrNotFound = errors.New("document not found")
	// ErrDuplicateKey is returned when a write violates a unique index.
	ErrDuplicateKey = errors.New("duplicate key")
)
