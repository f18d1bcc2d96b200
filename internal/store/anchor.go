package store

import (
	"context"
	"database/sql"
)

// AnchorStore defines the persistence port for the trusted clock anchor:
// the highest wall-clock reading in milliseconds ever observed. The anchor
// is monotone non-decreasing; implementations only ever move it forward.
type AnchorStore interface {
	// Get retrieves the anchor, locking it for the duration of the
	// surrounding transaction so concurrent clock reads serialize.
	// Returns ErrAnchorNotFound when no anchor row exists; callers treat
	// that the same as an anchor of zero.
	Get(ctx context.Context) (int64, error)

	// Set writes the anchor value. Callers must only pass values greater
	// than the current anchor; the clock guard enforces this.
	Set(ctx context.Context, millis int64) error

	// WithTx returns a new store instance bound to the provided transaction.
	WithTx(tx *sql.Tx) AnchorStore
}
