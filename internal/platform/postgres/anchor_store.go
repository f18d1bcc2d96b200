package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/wordtrail/wordtrail-api/internal/store"
)

// anchorRowID pins the singleton anchor row.
const anchorRowID = 1

// AnchorStore implements the store.AnchorStore interface using a PostgreSQL
// database as the storage backend.
type AnchorStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewAnchorStore creates a new PostgreSQL implementation of the AnchorStore
// interface. If logger is nil, a default logger will be used.
func NewAnchorStore(db store.DBTX, logger *slog.Logger) *AnchorStore {
	if db == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &AnchorStore{
		db:     db,
		logger: logger.With(slog.String("component", "anchor_store")),
	}
}

// Ensure AnchorStore implements store.AnchorStore interface
var _ store.AnchorStore = (*AnchorStore)(nil)

// Get implements store.AnchorStore.Get
// The row lock closes the race where two concurrent clock reads both see a
// stale anchor and skip advancing it.
func (s *AnchorStore) Get(ctx context.Context) (int64, error) {
	var millis int64
	query := `SELECT monotonic_millis FROM trusted_anchor WHERE id = $1 FOR UPDATE`
	err := s.db.QueryRowContext(ctx, query, anchorRowID).Scan(&millis)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, store.ErrAnchorNotFound
		}
		return 0, MapError(err)
	}
	return millis, nil
}

// Set implements store.AnchorStore.Set
// GREATEST guards the monotone invariant at the storage layer as well: even
// a buggy caller cannot move the anchor backward.
func (s *AnchorStore) Set(ctx context.Context, millis int64) error {
	query := `
		INSERT INTO trusted_anchor (id, monotonic_millis)
		VALUES ($1, $2)
		ON CONFLICT (id) DO UPDATE SET
			monotonic_millis = GREATEST(trusted_anchor.monotonic_millis, EXCLUDED.monotonic_millis)`

	_, err := s.db.ExecContext(ctx, query, anchorRowID, millis)
	if err != nil {
		return MapError(err)
	}

	return nil
}

// WithTx implements store.AnchorStore.WithTx
func (s *AnchorStore) WithTx(tx *sql.Tx) store.AnchorStore {
	return &AnchorStore{
		db:     tx,
		logger: s.logger,
	}
}
