package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/wordtrail/wordtrail-api/internal/domain"
)

// ItemStore defines the persistence port for corpus items.
type ItemStore interface {
	// Create saves a new corpus item.
	// Returns ErrDuplicate if an item with the same ID already exists.
	Create(ctx context.Context, item *domain.Item) error

	// GetByID retrieves an item by its unique ID.
	// Returns ErrItemNotFound if the item does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Item, error)

	// GetForUpdate retrieves an item and locks its row for the duration of
	// the surrounding transaction, serializing concurrent mastery updates.
	// Returns ErrItemNotFound if the item does not exist.
	GetForUpdate(ctx context.Context, id uuid.UUID) (*domain.Item, error)

	// UpdateMastery writes a new mastery level for the item.
	// Returns ErrItemNotFound if the item does not exist.
	UpdateMastery(ctx context.Context, id uuid.UUID, level int) error

	// ListReviewQueue returns review-eligible items (mastery below the
	// ceiling) for a level, lowest mastery first. A non-positive limit
	// applies the implementation default.
	ListReviewQueue(ctx context.Context, levelID string, limit int) ([]domain.Item, error)

	// ListAnswerPool returns distractor candidates: items other than
	// excludeID, drawn from the given level, or corpus-wide when levelID
	// is empty.
	ListAnswerPool(ctx context.Context, levelID string, excludeID uuid.UUID, limit int) ([]domain.Item, error)

	// Count returns the number of items in the corpus. Used to decide
	// whether first-run seeding is needed.
	Count(ctx context.Context) (int, error)

	// WithTx returns a new store instance bound to the provided transaction.
	WithTx(tx *sql.Tx) ItemStore
}
