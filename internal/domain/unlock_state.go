package domain

import (
	"errors"
	"time"
)

// ErrUnlockLevelIDEmpty is returned when an unlock state has no level/feature key.
var ErrUnlockLevelIDEmpty = errors.New("unlock state level ID cannot be empty")

// UnlockState gates one level or feature. A state is unlocked while
// Unlocked is true and, when ExpiresAtMillis is set, while the trusted
// clock has not passed it. The daily-usage fields back the free-tier
// quota: DailyUsageCount counts consumptions on the trusted-time calendar
// day named by DailyUsageDate, and resets exactly once when the day
// advances past it.
type UnlockState struct {
	LevelID         string    `json:"level_id"`
	Unlocked        bool      `json:"unlocked"`
	ExpiresAtMillis *int64    `json:"expires_at_millis,omitempty"`
	DailyUsageCount int       `json:"daily_usage_count"`
	DailyUsageDate  string    `json:"daily_usage_date"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// NewUnlockState returns a locked, unconsumed state for the given key.
func NewUnlockState(levelID string) *UnlockState {
	return &UnlockState{
		LevelID:   levelID,
		UpdatedAt: time.Now().UTC(),
	}
}

// Validate checks if the UnlockState has valid data.
func (s *UnlockState) Validate() error {
	if s.LevelID == "" {
		return ErrUnlockLevelIDEmpty
	}
	return nil
}
