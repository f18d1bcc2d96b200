// Package entitlement gates access to content levels and meters the
// free-tier daily quota. All checks are evaluated against the trusted
// monotonic clock so that winding the device clock backward can neither
// revive an expired unlock nor grant a second daily allowance.
package entitlement

import (
	"context"
	"errors"
)

// ErrEmptyLevelID is returned when a caller passes an empty level or
// feature key.
var ErrEmptyLevelID = errors.New("level ID cannot be empty")

// Service manages per-level unlocks and the shared daily usage quota.
type Service interface {
	// IsLevelUnlocked reports whether the level is currently unlocked.
	// A level is unlocked when an unlock has been recorded and it either
	// has no expiry or the trusted clock has not reached the expiry yet.
	// Unknown levels are locked, not an error.
	IsLevelUnlocked(ctx context.Context, levelID string) (bool, error)

	// UnlockLevel records an unlock grant for the level. A nil expiresAt
	// makes the unlock permanent; otherwise it lapses once the trusted
	// clock reaches the given epoch milliseconds.
	UnlockLevel(ctx context.Context, levelID string, expiresAtMillis *int64) error

	// ConsumeQuota attempts to consume one unit of the daily free quota.
	// Premium callers always pass without consuming anything. Free callers
	// pass while the day's count is below the configured limit; the count
	// lazily resets when the trusted-time calendar day has advanced past
	// the recorded usage date. Returns false when the quota is exhausted.
	ConsumeQuota(ctx context.Context, premium bool) (bool, error)
}
