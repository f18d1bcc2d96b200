package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/wordtrail/wordtrail-api/internal/domain"
	"github.com/wordtrail/wordtrail-api/internal/store"
)

// statsRowID pins the singleton stats row. The table carries a check
// constraint so no second row can ever appear.
const statsRowID = 1

// StatsStore implements the store.StatsStore interface using a PostgreSQL
// database as the storage backend.
type StatsStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewStatsStore creates a new PostgreSQL implementation of the StatsStore
// interface. If logger is nil, a default logger will be used.
func NewStatsStore(db store.DBTX, logger *slog.Logger) *StatsStore {
	if db == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &StatsStore{
		db:     db,
		logger: logger.With(slog.String("component", "stats_store")),
	}
}

// Ensure StatsStore implements store.StatsStore interface
var _ store.StatsStore = (*StatsStore)(nil)

// Get implements store.StatsStore.Get
func (s *StatsStore) Get(ctx context.Context) (*domain.UserStats, error) {
	query := `
		SELECT streak_days, last_study_date, today_studied_count, today_review_count, updated_at
		FROM user_stats WHERE id = $1`
	return s.scanStats(s.db.QueryRowContext(ctx, query, statsRowID))
}

// GetForUpdate implements store.StatsStore.GetForUpdate
func (s *StatsStore) GetForUpdate(ctx context.Context) (*domain.UserStats, error) {
	query := `
		SELECT streak_days, last_study_date, today_studied_count, today_review_count, updated_at
		FROM user_stats WHERE id = $1 FOR UPDATE`
	return s.scanStats(s.db.QueryRowContext(ctx, query, statsRowID))
}

// Upsert implements store.StatsStore.Upsert
func (s *StatsStore) Upsert(ctx context.Context, stats *domain.UserStats) error {
	query := `
		INSERT INTO user_stats (id, streak_days, last_study_date, today_studied_count, today_review_count, updated_at)
		VALUES ($1, $2, $3, $4, $5, now())
		ON CONFLICT (id) DO UPDATE SET
			streak_days = EXCLUDED.streak_days,
			last_study_date = EXCLUDED.last_study_date,
			today_studied_count = EXCLUDED.today_studied_count,
			today_review_count = EXCLUDED.today_review_count,
			updated_at = now()`

	_, err := s.db.ExecContext(ctx, query,
		statsRowID, stats.StreakDays, stats.LastStudyDate,
		stats.TodayStudiedCount, stats.TodayReviewCount)
	if err != nil {
		return MapError(err)
	}

	return nil
}

// WithTx implements store.StatsStore.WithTx
func (s *StatsStore) WithTx(tx *sql.Tx) store.StatsStore {
	return &StatsStore{
		db:     tx,
		logger: s.logger,
	}
}

func (s *StatsStore) scanStats(row *sql.Row) (*domain.UserStats, error) {
	var stats domain.UserStats
	err := row.Scan(
		&stats.StreakDays, &stats.LastStudyDate,
		&stats.TodayStudiedCount, &stats.TodayReviewCount, &stats.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrStatsNotFound
		}
		return nil, MapError(err)
	}
	return &stats, nil
}
