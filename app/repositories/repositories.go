// Package repositories wraps the document store collections behind small
// interfaces so services stay testable without a running MongoDB.
package repositories

import "errors"

// ErrNotFound is returned when no document matches the filter.
var ErrNotFound = errors.New("repositories: not found")

// ErrDuplicate is returned when an insert violates a unique index. This is
// the authoritative duplicate check: two concurrent signups can both pass
// the existence lookup, but only one insert survives the index.
var ErrDuplicate = errors.New("repositories: duplicate key")
