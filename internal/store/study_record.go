package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/wordtrail/wordtrail-api/internal/domain"
)

// StudyRecordStore defines the persistence port for the append-only review
// history. Records are only ever inserted; there is no update or delete.
type StudyRecordStore interface {
	// Insert appends one review event.
	// Returns ErrDuplicate if a record with the same ID already exists.
	Insert(ctx context.Context, record *domain.StudyRecord) error

	// ListByItem returns the review history for an item, newest first.
	ListByItem(ctx context.Context, itemID uuid.UUID, limit int) ([]domain.StudyRecord, error)

	// WithTx returns a new store instance bound to the provided transaction.
	WithTx(tx *sql.Tx) StudyRecordStore
}
