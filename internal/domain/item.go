package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// MaxMasteryLevel is the top rung of the mastery ladder. An item whose
// mastery has reached this level is considered learned and leaves the
// regular review queue.
const MaxMasteryLevel = 5

// Item-specific validation errors.
var (
	// ErrItemIDEmpty is returned when an item ID is empty or nil.
	ErrItemIDEmpty = errors.New("item ID cannot be empty")

	// ErrItemPromptEmpty is returned when an item's prompt text is empty.
	ErrItemPromptEmpty = errors.New("item prompt cannot be empty")

	// ErrItemAnswerEmpty is returned when an item's answer text is empty.
	ErrItemAnswerEmpty = errors.New("item answer cannot be empty")

	// ErrItemLevelEmpty is returned when an item has no level assignment.
	ErrItemLevelEmpty = errors.New("item level ID cannot be empty")

	// ErrMasteryOutOfRange is returned when a mastery level falls outside
	// [0, MaxMasteryLevel].
	ErrMasteryOutOfRange = errors.New("mastery level out of range")
)

// Item is a single vocabulary entry in the corpus: a prompt shown to the
// learner and the answer they are expected to produce. MasteryLevel is
// owned by the review ledger and mutated only inside its transactions.
type Item struct {
	ID           uuid.UUID `json:"id"`
	Prompt       string    `json:"prompt"`
	Answer       string    `json:"answer"`
	LevelID      string    `json:"level_id"`
	MasteryLevel int       `json:"mastery_level"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// NewItem creates a corpus item at mastery level zero.
// Returns an error if validation fails.
func NewItem(prompt, answer, levelID string) (*Item, error) {
	now := time.Now().UTC()
	item := &Item{
		ID:           uuid.New(),
		Prompt:       strings.TrimSpace(prompt),
		Answer:       strings.TrimSpace(answer),
		LevelID:      strings.TrimSpace(levelID),
		MasteryLevel: 0,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := item.Validate(); err != nil {
		return nil, err
	}

	return item, nil
}

// Validate checks if the Item has valid data.
// Returns an error if any field fails validation.
func (i *Item) Validate() error {
	if i.ID == uuid.Nil {
		return ErrItemIDEmpty
	}

	if i.Prompt == "" {
		return ErrItemPromptEmpty
	}

	if i.Answer == "" {
		return ErrItemAnswerEmpty
	}

	if i.LevelID == "" {
		return ErrItemLevelEmpty
	}

	if i.MasteryLevel < 0 || i.MasteryLevel > MaxMasteryLevel {
		return ErrMasteryOutOfRange
	}

	return nil
}

// ReviewEligible reports whether the item still belongs in the regular
// review queue. Eligibility is the sole scheduling signal: there is no
// per-item due date.
func (i *Item) ReviewEligible() bool {
	return i.MasteryLevel < MaxMasteryLevel
}
