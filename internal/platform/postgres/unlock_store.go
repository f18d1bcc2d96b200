package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/wordtrail/wordtrail-api/internal/domain"
	"github.com/wordtrail/wordtrail-api/internal/store"
)

// UnlockStore implements the store.UnlockStore interface using a PostgreSQL
// database as the storage backend.
type UnlockStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewUnlockStore creates a new PostgreSQL implementation of the UnlockStore
// interface. If logger is nil, a default logger will be used.
func NewUnlockStore(db store.DBTX, logger *slog.Logger) *UnlockStore {
	if db == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &UnlockStore{
		db:     db,
		logger: logger.With(slog.String("component", "unlock_store")),
	}
}

// Ensure UnlockStore implements store.UnlockStore interface
var _ store.UnlockStore = (*UnlockStore)(nil)

const unlockColumns = "level_id, unlocked, expires_at_millis, daily_usage_count, daily_usage_date, updated_at"

// Get implements store.UnlockStore.Get
func (s *UnlockStore) Get(ctx context.Context, levelID string) (*domain.UnlockState, error) {
	query := `SELECT ` + unlockColumns + ` FROM unlock_states WHERE level_id = $1`
	return s.scanState(s.db.QueryRowContext(ctx, query, levelID))
}

// GetForUpdate implements store.UnlockStore.GetForUpdate
func (s *UnlockStore) GetForUpdate(ctx context.Context, levelID string) (*domain.UnlockState, error) {
	query := `SELECT ` + unlockColumns + ` FROM unlock_states WHERE level_id = $1 FOR UPDATE`
	return s.scanState(s.db.QueryRowContext(ctx, query, levelID))
}

// Upsert implements store.UnlockStore.Upsert
func (s *UnlockStore) Upsert(ctx context.Context, state *domain.UnlockState) error {
	if err := state.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `
		INSERT INTO unlock_states (level_id, unlocked, expires_at_millis, daily_usage_count, daily_usage_date, updated_at)
		VALUES ($1, $2, $3, $4, $5, now())
		ON CONFLICT (level_id) DO UPDATE SET
			unlocked = EXCLUDED.unlocked,
			expires_at_millis = EXCLUDED.expires_at_millis,
			daily_usage_count = EXCLUDED.daily_usage_count,
			daily_usage_date = EXCLUDED.daily_usage_date,
			updated_at = now()`

	_, err := s.db.ExecContext(ctx, query,
		state.LevelID, state.Unlocked, state.ExpiresAtMillis,
		state.DailyUsageCount, state.DailyUsageDate)
	if err != nil {
		return MapError(err)
	}

	return nil
}

// WithTx implements store.UnlockStore.WithTx
func (s *UnlockStore) WithTx(tx *sql.Tx) store.UnlockStore {
	return &UnlockStore{
		db:     tx,
		logger: s.logger,
	}
}

func (s *UnlockStore) scanState(row *sql.Row) (*domain.UnlockState, error) {
	var state domain.UnlockState
	err := row.Scan(
		&state.LevelID, &state.Unlocked, &state.ExpiresAtMillis,
		&state.DailyUsageCount, &state.DailyUsageDate, &state.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrUnlockStateNotFound
		}
		return nil, MapError(err)
	}
	return &state, nil
}
