package store

import (
	"errors"
	"fmt"
)

// Common store errors used across all store implementations.
var (
	// ErrNotFound is returned when a requested document or object does not
	// exist in the store. Callers treat this as a valid cache-miss state,
	// not a failure.
	ErrNotFound = errors.New("entity not found")

	// ErrInvalidEntity is returned when an entity fails validation before
	// being stored. Check the wrapped error for specific validation details.
	ErrInvalidEntity = errors.New("invalid entity")

	// ErrUpdateFailed is returned when a write operation fails, for example
	// because the backend is unreachable or the write violates constraints.
	ErrUpdateFailed = errors.New("update failed")

	// Entity-specific "not found" errors

	// ErrProgressNotFound indicates that no progress record exists for the
	// user. New users hit this on first load; it maps to empty progress.
	ErrProgressNotFound = fmt.Errorf("%w: user progress", ErrNotFound)

	// ErrArtifactNotFound indicates that no generated artifact exists for
	// the key. The content caches treat this as a generation trigger.
	ErrArtifactNotFound = fmt.Errorf("%w: artifact", ErrNotFound)

	// ErrBlobNotFound indicates that the requested object does not exist in
	// the blob store.
	ErrBlobNotFound = fmt.Errorf("%w: blob", ErrNotFound)
)

// IsNotFoundError checks if the error is any kind of "not found" error.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}
