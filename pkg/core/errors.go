package core

import "errors"

// Store error taxonomy. Implementations wrap these with context; callers
// branch with errors.Is.
var (
	// ErrNotFound reports that the targeted entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrDuplicateKey reports an attempt to create a view whose view_id is
	// already taken.
	ErrDuplicateKey = errors.New("duplicate key")

	// ErrInvalidReference reports an attempt to create a relation whose
	// endpoint view does not exist.
	ErrInvalidReference = errors.New("invalid reference")

	// ErrNoFields reports an update that carries no fields.
	ErrNoFields = errors.New("no fields to update")
)
