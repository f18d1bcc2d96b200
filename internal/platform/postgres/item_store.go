package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/wordtrail/wordtrail-api/internal/domain"
	"github.com/wordtrail/wordtrail-api/internal/store"
)

// defaultQueueLimit bounds review queue reads when the caller passes a
// non-positive limit.
const defaultQueueLimit = 20

// ItemStore implements the store.ItemStore interface using a PostgreSQL
// database as the storage backend.
type ItemStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewItemStore creates a new PostgreSQL implementation of the ItemStore
// interface. It accepts a database connection or transaction that should be
// initialized and managed by the caller. If logger is nil, a default logger
// will be used.
func NewItemStore(db store.DBTX, logger *slog.Logger) *ItemStore {
	if db == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &ItemStore{
		db:     db,
		logger: logger.With(slog.String("component", "item_store")),
	}
}

// Ensure ItemStore implements store.ItemStore interface
var _ store.ItemStore = (*ItemStore)(nil)

const itemColumns = "id, prompt, answer, level_id, mastery_level, created_at, updated_at"

// Create implements store.ItemStore.Create
func (s *ItemStore) Create(ctx context.Context, item *domain.Item) error {
	if err := item.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `
		INSERT INTO items (id, prompt, answer, level_id, mastery_level, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := s.db.ExecContext(ctx, query,
		item.ID, item.Prompt, item.Answer, item.LevelID,
		item.MasteryLevel, item.CreatedAt, item.UpdatedAt)
	if err != nil {
		return MapError(err)
	}

	return nil
}

// GetByID implements store.ItemStore.GetByID
// Returns store.ErrItemNotFound if the item does not exist.
func (s *ItemStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE id = $1`
	return s.scanItem(s.db.QueryRowContext(ctx, query, id))
}

// GetForUpdate implements store.ItemStore.GetForUpdate
// The row lock is held until the surrounding transaction ends, so two
// concurrent reviews of the same item apply their transitions in sequence.
func (s *ItemStore) GetForUpdate(ctx context.Context, id uuid.UUID) (*domain.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE id = $1 FOR UPDATE`
	return s.scanItem(s.db.QueryRowContext(ctx, query, id))
}

// UpdateMastery implements store.ItemStore.UpdateMastery
func (s *ItemStore) UpdateMastery(ctx context.Context, id uuid.UUID, level int) error {
	if level < 0 || level > domain.MaxMasteryLevel {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, domain.ErrMasteryOutOfRange)
	}

	query := `UPDATE items SET mastery_level = $2, updated_at = now() WHERE id = $1`

	result, err := s.db.ExecContext(ctx, query, id, level)
	if err != nil {
		return MapError(err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return MapError(err)
	}
	if rows == 0 {
		return store.ErrItemNotFound
	}

	return nil
}

// ListReviewQueue implements store.ItemStore.ListReviewQueue
func (s *ItemStore) ListReviewQueue(ctx context.Context, levelID string, limit int) ([]domain.Item, error) {
	if limit <= 0 {
		limit = defaultQueueLimit
	}

	query := `
		SELECT ` + itemColumns + `
		FROM items
		WHERE level_id = $1 AND mastery_level < $2
		ORDER BY mastery_level ASC, updated_at ASC
		LIMIT $3`

	rows, err := s.db.QueryContext(ctx, query, levelID, domain.MaxMasteryLevel, limit)
	if err != nil {
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	return s.collectItems(rows)
}

// ListAnswerPool implements store.ItemStore.ListAnswerPool
func (s *ItemStore) ListAnswerPool(
	ctx context.Context,
	levelID string,
	excludeID uuid.UUID,
	limit int,
) ([]domain.Item, error) {
	if limit <= 0 {
		limit = defaultQueueLimit
	}

	var (
		rows *sql.Rows
		err  error
	)
	if levelID == "" {
		query := `
			SELECT ` + itemColumns + `
			FROM items
			WHERE id <> $1
			ORDER BY random()
			LIMIT $2`
		rows, err = s.db.QueryContext(ctx, query, excludeID, limit)
	} else {
		query := `
			SELECT ` + itemColumns + `
			FROM items
			WHERE level_id = $1 AND id <> $2
			ORDER BY random()
			LIMIT $3`
		rows, err = s.db.QueryContext(ctx, query, levelID, excludeID, limit)
	}
	if err != nil {
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	return s.collectItems(rows)
}

// Count implements store.ItemStore.Count
func (s *ItemStore) Count(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `SELECT count(*) FROM items`).Scan(&count)
	if err != nil {
		return 0, MapError(err)
	}
	return count, nil
}

// WithTx implements store.ItemStore.WithTx
func (s *ItemStore) WithTx(tx *sql.Tx) store.ItemStore {
	return &ItemStore{
		db:     tx,
		logger: s.logger,
	}
}

func (s *ItemStore) scanItem(row *sql.Row) (*domain.Item, error) {
	var item domain.Item
	err := row.Scan(
		&item.ID, &item.Prompt, &item.Answer, &item.LevelID,
		&item.MasteryLevel, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrItemNotFound
		}
		return nil, MapError(err)
	}
	return &item, nil
}

func (s *ItemStore) collectItems(rows *sql.Rows) ([]domain.Item, error) {
	var items []domain.Item
	for rows.Next() {
		var item domain.Item
		err := rows.Scan(
			&item.ID, &item.Prompt, &item.Answer, &item.LevelID,
			&item.MasteryLevel, &item.CreatedAt, &item.UpdatedAt)
		if err != nil {
			return nil, MapError(err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}
	return items, nil
}
