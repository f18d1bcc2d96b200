package store

import (
	"context"
	"database/sql"

	"github.com/wordtrail/wordtrail-api/internal/domain"
)

// StatsStore defines the persistence port for the singleton user stats row.
type StatsStore interface {
	// Get retrieves the stats row.
	// Returns ErrStatsNotFound for a profile that has never studied.
	Get(ctx context.Context) (*domain.UserStats, error)

	// GetForUpdate retrieves the stats row and locks it for the duration
	// of the surrounding transaction.
	// Returns ErrStatsNotFound for a profile that has never studied.
	GetForUpdate(ctx context.Context) (*domain.UserStats, error)

	// Upsert writes the stats row, creating it on first study.
	Upsert(ctx context.Context, stats *domain.UserStats) error

	// WithTx returns a new store instance bound to the provided transaction.
	WithTx(tx *sql.Tx) StatsStore
}
