package domain

import "errors"

var (
	// ErrNotFound is returned by repositories when a document is absent.
	ErrNotFound = errors.New("not found")

	// ErrDuplicate is returned when an insert violates a unique index.
	ErrDuplicate = errors.New("duplicate key")

	// ErrVersionConflict is returned by version-guarded replacements when
	// the document changed since it was read.
	ErrVersionConflict = errors.New("version conflict")
)
