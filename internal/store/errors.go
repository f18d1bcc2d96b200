package store

import (
	"errors"
	"fmt"
)

// Common store errors used across all store implementations.
var (
	// ErrNotFound is returned when a requested entity does not exist in the
	// store. This is the generic version of the entity-specific not found
	// errors below.
	ErrNotFound = errors.New("entity not found")

	// ErrDuplicate is returned when an operation would create a duplicate
	// of a unique entity.
	ErrDuplicate = errors.New("entity already exists")

	// ErrInvalidEntity is returned when an entity fails validation before
	// being stored. Check the wrapped error for specific validation details.
	ErrInvalidEntity = errors.New("invalid entity")

	// ErrTransactionFailed is returned when a database transaction fails
	// to begin or commit.
	ErrTransactionFailed = errors.New("transaction failed")

	// ErrItemNotFound indicates that the requested corpus item does not exist.
	ErrItemNotFound = fmt.Errorf("%w: item", ErrNotFound)

	// ErrStatsNotFound indicates that the user stats row has not been
	// created yet (fresh profile).
	ErrStatsNotFound = fmt.Errorf("%w: user stats", ErrNotFound)

	// ErrUnlockStateNotFound indicates that no unlock state exists for the
	// requested level or feature key.
	ErrUnlockStateNotFound = fmt.Errorf("%w: unlock state", ErrNotFound)

	// ErrAnchorNotFound indicates that the trusted clock anchor has not
	// been persisted yet (first ever clock read).
	ErrAnchorNotFound = fmt.Errorf("%w: trusted anchor", ErrNotFound)
)

// IsNotFoundError checks if the error is any kind of "not found" error.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}
