// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as handlers
// to distinguish between different failure scenarios: a missing entity maps
// to HTTP 404, a natural-key collision to HTTP 409, and a malformed
// identifier to HTTP 400.
package repository

import "errors"

// ErrNotFound is returned when no row or document matches the given key.
var ErrNotFound = errors.New("not found")

// ErrConflict is returned when an operation would duplicate a natural key.
var ErrConflict = errors.New("conflict")

// ErrInvalidID is returned when an identifier is neither a document-store
// ObjectID nor a numeric surrogate id.
var ErrInvalidID = errors.New("invalid identifier")
