package entitlement

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/wordtrail/wordtrail-api/internal/domain"
	"github.com/wordtrail/wordtrail-api/internal/platform/logger"
	"github.com/wordtrail/wordtrail-api/internal/service/clock"
	"github.com/wordtrail/wordtrail-api/internal/store"
)

// QuotaFeatureKey is the UnlockState row that backs the shared daily
// free-tier quota. It lives in the same table as level unlocks so quota
// consumption rides the same transactional machinery.
const QuotaFeatureKey = "daily-free-quota"

// DefaultDailyLimit applies when the configured limit is not positive.
const DefaultDailyLimit = 20

type serviceImpl struct {
	transactor store.Transactor
	unlocks    store.UnlockStore
	guard      *clock.Guard
	dailyLimit int
	logger     *slog.Logger
}

var _ Service = (*serviceImpl)(nil)

// NewService creates a new entitlement service. dailyLimit <= 0 selects
// DefaultDailyLimit; log may be nil for the default logger.
func NewService(
	transactor store.Transactor,
	unlocks store.UnlockStore,
	guard *clock.Guard,
	dailyLimit int,
	log *slog.Logger,
) Service {
	if transactor == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("transactor cannot be nil")
	}
	if unlocks == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("unlocks cannot be nil")
	}
	if guard == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("guard cannot be nil")
	}
	if dailyLimit <= 0 {
		dailyLimit = DefaultDailyLimit
	}
	if log == nil {
		log = slog.Default()
	}

	return &serviceImpl{
		transactor: transactor,
		unlocks:    unlocks,
		guard:      guard,
		dailyLimit: dailyLimit,
		logger:     log.With(slog.String("component", "entitlement_service")),
	}
}

// IsLevelUnlocked implements Service.IsLevelUnlocked. The expiry is
// compared against the trusted clock inside the same transaction that
// advances the anchor, so a rolled-back device clock sees frozen time.
func (s *serviceImpl) IsLevelUnlocked(ctx context.Context, levelID string) (bool, error) {
	if levelID == "" {
		return false, ErrEmptyLevelID
	}

	var unlocked bool
	err := s.transactor.RunInTransaction(ctx, func(ctx context.Context, tx *sql.Tx) error {
		state, err := s.unlocks.WithTx(tx).Get(ctx, levelID)
		if err != nil {
			if errors.Is(err, store.ErrUnlockStateNotFound) {
				unlocked = false
				return nil
			}
			return fmt.Errorf("failed to get unlock state: %w", err)
		}
		if !state.Unlocked {
			unlocked = false
			return nil
		}
		if state.ExpiresAtMillis == nil {
			unlocked = true
			return nil
		}

		now, err := s.guard.EffectiveNowTx(ctx, tx)
		if err != nil {
			return fmt.Errorf("failed to read trusted time: %w", err)
		}
		unlocked = now < *state.ExpiresAtMillis
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("failed to check level unlock: %w", err)
	}
	return unlocked, nil
}

// UnlockLevel implements Service.UnlockLevel.
func (s *serviceImpl) UnlockLevel(ctx context.Context, levelID string, expiresAtMillis *int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if levelID == "" {
		return ErrEmptyLevelID
	}

	err := s.transactor.RunInTransaction(ctx, func(ctx context.Context, tx *sql.Tx) error {
		unlocks := s.unlocks.WithTx(tx)

		state, err := unlocks.Get(ctx, levelID)
		if err != nil {
			if !errors.Is(err, store.ErrUnlockStateNotFound) {
				return fmt.Errorf("failed to get unlock state: %w", err)
			}
			state = domain.NewUnlockState(levelID)
		}

		state.Unlocked = true
		state.ExpiresAtMillis = expiresAtMillis
		state.UpdatedAt = time.Now().UTC()

		if err := unlocks.Upsert(ctx, state); err != nil {
			return fmt.Errorf("failed to save unlock state: %w", err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to unlock level: %w", err)
	}

	log.Info("level unlocked",
		slog.String("level_id", levelID),
		slog.Bool("permanent", expiresAtMillis == nil))
	return nil
}

// ConsumeQuota implements Service.ConsumeQuota. The lazy daily reset and
// the limit check happen under the same row lock so two concurrent free
// consumptions cannot both observe the pre-reset count.
func (s *serviceImpl) ConsumeQuota(ctx context.Context, premium bool) (bool, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if premium {
		return true, nil
	}

	var allowed bool
	err := s.transactor.RunInTransaction(ctx, func(ctx context.Context, tx *sql.Tx) error {
		unlocks := s.unlocks.WithTx(tx)

		now, err := s.guard.EffectiveNowTx(ctx, tx)
		if err != nil {
			return fmt.Errorf("failed to read trusted time: %w", err)
		}
		today := clock.CalendarDay(now)

		state, err := unlocks.GetForUpdate(ctx, QuotaFeatureKey)
		if err != nil {
			if !errors.Is(err, store.ErrUnlockStateNotFound) {
				return fmt.Errorf("failed to get quota state: %w", err)
			}
			state = domain.NewUnlockState(QuotaFeatureKey)
		}

		if state.DailyUsageDate != today {
			state.DailyUsageCount = 0
			state.DailyUsageDate = today
		}

		if state.DailyUsageCount >= s.dailyLimit {
			allowed = false
			// Persist the date advance even on a denied attempt so the
			// reset is not replayed by the next caller.
			state.UpdatedAt = time.Now().UTC()
			if err := unlocks.Upsert(ctx, state); err != nil {
				return fmt.Errorf("failed to save quota state: %w", err)
			}
			return nil
		}

		state.DailyUsageCount++
		state.UpdatedAt = time.Now().UTC()
		if err := unlocks.Upsert(ctx, state); err != nil {
			return fmt.Errorf("failed to save quota state: %w", err)
		}
		allowed = true
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("failed to consume quota: %w", err)
	}

	if !allowed {
		log.Debug("daily quota exhausted", slog.Int("limit", s.dailyLimit))
	}
	return allowed, nil
}
