package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/wordtrail/wordtrail-api/internal/domain"
	"github.com/wordtrail/wordtrail-api/internal/store"
)

// StudyRecordStore implements the store.StudyRecordStore interface using a
// PostgreSQL database as the storage backend.
type StudyRecordStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewStudyRecordStore creates a new PostgreSQL implementation of the
// StudyRecordStore interface. If logger is nil, a default logger will be used.
func NewStudyRecordStore(db store.DBTX, logger *slog.Logger) *StudyRecordStore {
	if db == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &StudyRecordStore{
		db:     db,
		logger: logger.With(slog.String("component", "study_record_store")),
	}
}

// Ensure StudyRecordStore implements store.StudyRecordStore interface
var _ store.StudyRecordStore = (*StudyRecordStore)(nil)

// Insert implements store.StudyRecordStore.Insert
// Outcomes are persisted as their integer codes; see domain.DecodeOutcome.
func (s *StudyRecordStore) Insert(ctx context.Context, record *domain.StudyRecord) error {
	if err := record.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `
		INSERT INTO study_records (id, item_id, outcome, timestamp_millis)
		VALUES ($1, $2, $3, $4)`

	_, err := s.db.ExecContext(ctx, query,
		record.ID, record.ItemID, record.Outcome.Code(), record.TimestampMillis)
	if err != nil {
		return MapError(err)
	}

	return nil
}

// ListByItem implements store.StudyRecordStore.ListByItem
func (s *StudyRecordStore) ListByItem(
	ctx context.Context,
	itemID uuid.UUID,
	limit int,
) ([]domain.StudyRecord, error) {
	if limit <= 0 {
		limit = defaultQueueLimit
	}

	query := `
		SELECT id, item_id, outcome, timestamp_millis
		FROM study_records
		WHERE item_id = $1
		ORDER BY timestamp_millis DESC
		LIMIT $2`

	rows, err := s.db.QueryContext(ctx, query, itemID, limit)
	if err != nil {
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	var records []domain.StudyRecord
	for rows.Next() {
		var (
			rec  domain.StudyRecord
			code int
		)
		if err := rows.Scan(&rec.ID, &rec.ItemID, &code, &rec.TimestampMillis); err != nil {
			return nil, MapError(err)
		}

		outcome, ok := domain.DecodeOutcome(code)
		if !ok {
			s.logger.Warn("decoded out-of-range outcome code as again",
				slog.String("record_id", rec.ID.String()),
				slog.Int("code", code))
		}
		rec.Outcome = outcome

		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	return records, nil
}

// WithTx implements store.StudyRecordStore.WithTx
func (s *StudyRecordStore) WithTx(tx *sql.Tx) store.StudyRecordStore {
	return &StudyRecordStore{
		db:     tx,
		logger: s.logger,
	}
}
