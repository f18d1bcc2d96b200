// Package review implements the study ledger: the transactional orchestrator
// that turns a review outcome into a study record, a mastery transition, and
// the matching stats and streak updates, all committed together or not at all.
package review

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/wordtrail/wordtrail-api/internal/domain"
)

// Service-level errors.
var (
	// ErrInvalidOutcome is returned when a submitted outcome is not one of
	// the three recognized variants.
	ErrInvalidOutcome = errors.New("invalid review outcome")
)

// QuizSet is a generated multiple-choice option set for one item.
type QuizSet struct {
	Options      []string `json:"options"`
	CorrectIndex int      `json:"correct_index"`
}

// Service provides the study ledger operations.
type Service interface {
	// RecordResult applies one review outcome to an item.
	//
	// Within a single transaction it inserts the study record (stamped
	// with trusted time), advances the item's mastery level, bumps both
	// daily counters, and recomputes the streak from the record's
	// calendar date. Either all of those effects are durable, or none.
	//
	// Returns:
	//   - (true, nil): the review was recorded
	//   - (false, nil): the item does not exist; nothing was written
	//   - (false, ErrInvalidOutcome): the outcome is unknown
	//   - (false, error): persistence failure; no partial state remains
	RecordResult(ctx context.Context, itemID uuid.UUID, outcome domain.Outcome) (bool, error)

	// ReviewQueue returns the review-eligible items for a level, lowest
	// mastery first, for the UI layer to poll.
	ReviewQueue(ctx context.Context, levelID string, limit int) ([]domain.Item, error)

	// QuizOptions generates a four-option multiple-choice set for the
	// item, drawing distractors from its level and then the whole corpus.
	// Returns store.ErrItemNotFound (wrapped) if the item does not exist.
	QuizOptions(ctx context.Context, itemID uuid.UUID) (*QuizSet, error)
}
