package domain

import (
	"errors"

	"github.com/google/uuid"
)

// StudyRecord validation errors.
var (
	// ErrRecordIDEmpty is returned when a study record ID is empty or nil.
	ErrRecordIDEmpty = errors.New("study record ID cannot be empty")

	// ErrRecordItemIDEmpty is returned when a study record has no item reference.
	ErrRecordItemIDEmpty = errors.New("study record item ID cannot be empty")

	// ErrRecordTimestampZero is returned when a study record has no timestamp.
	ErrRecordTimestampZero = errors.New("study record timestamp cannot be zero")
)

// StudyRecord is one review event: which item was reviewed, how the learner
// judged it, and when on the trusted clock it happened. Records are
// append-only; they are never mutated or deleted.
type StudyRecord struct {
	ID              uuid.UUID `json:"id"`
	ItemID          uuid.UUID `json:"item_id"`
	Outcome         Outcome   `json:"outcome"`
	TimestampMillis int64     `json:"timestamp_millis"`
}

// NewStudyRecord creates a review event stamped with the given trusted-clock
// reading in milliseconds. Returns an error if validation fails.
func NewStudyRecord(itemID uuid.UUID, outcome Outcome, timestampMillis int64) (*StudyRecord, error) {
	rec := &StudyRecord{
		ID:              uuid.New(),
		ItemID:          itemID,
		Outcome:         outcome,
		TimestampMillis: timestampMillis,
	}

	if err := rec.Validate(); err != nil {
		return nil, err
	}

	return rec, nil
}

// Validate checks if the StudyRecord has valid data.
func (r *StudyRecord) Validate() error {
	if r.ID == uuid.Nil {
		return ErrRecordIDEmpty
	}

	if r.ItemID == uuid.Nil {
		return ErrRecordItemIDEmpty
	}

	if !r.Outcome.IsValid() {
		return ErrInvalidOutcome
	}

	if r.TimestampMillis <= 0 {
		return ErrRecordTimestampZero
	}

	return nil
}
