package store

import (
	"context"
	"database/sql"

	"github.com/wordtrail/wordtrail-api/internal/domain"
)

// UnlockStore defines the persistence port for per-level unlock and quota
// state.
type UnlockStore interface {
	// Get retrieves the unlock state for a level or feature key.
	// Returns ErrUnlockStateNotFound if none has been recorded.
	Get(ctx context.Context, levelID string) (*domain.UnlockState, error)

	// GetForUpdate retrieves the unlock state and locks its row for the
	// duration of the surrounding transaction, serializing concurrent
	// quota consumption.
	// Returns ErrUnlockStateNotFound if none has been recorded.
	GetForUpdate(ctx context.Context, levelID string) (*domain.UnlockState, error)

	// Upsert writes the unlock state, creating the row on first use.
	Upsert(ctx context.Context, state *domain.UnlockState) error

	// WithTx returns a new store instance bound to the provided transaction.
	WithTx(tx *sql.Tx) UnlockStore
}
