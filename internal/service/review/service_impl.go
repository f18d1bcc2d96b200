package review

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/wordtrail/wordtrail-api/internal/domain"
	"github.com/wordtrail/wordtrail-api/internal/domain/mastery"
	"github.com/wordtrail/wordtrail-api/internal/domain/streak"
	"github.com/wordtrail/wordtrail-api/internal/platform/logger"
	"github.com/wordtrail/wordtrail-api/internal/quiz"
	"github.com/wordtrail/wordtrail-api/internal/service/clock"
	"github.com/wordtrail/wordtrail-api/internal/store"
)

// answerPoolLimit bounds how many candidates each pool hands the distractor
// sampler.
const answerPoolLimit = 50

// Verify interface compliance at compile time
var _ Service = (*serviceImpl)(nil)

// serviceImpl implements the Service interface.
type serviceImpl struct {
	transactor store.Transactor
	items      store.ItemStore
	records    store.StudyRecordStore
	stats      store.StatsStore
	guard      *clock.Guard
	params     *mastery.Params

	// rngMu guards rng: rand.Rand is not safe for concurrent use and quiz
	// requests may arrive in parallel.
	rngMu  sync.Mutex
	rng    *rand.Rand
	logger *slog.Logger
}

// NewService creates a new study ledger service. params may be nil for the
// default ladder policy; rng may be nil for a time-seeded source; log may be
// nil for the default logger.
func NewService(
	transactor store.Transactor,
	items store.ItemStore,
	records store.StudyRecordStore,
	stats store.StatsStore,
	guard *clock.Guard,
	params *mastery.Params,
	rng *rand.Rand,
	log *slog.Logger,
) Service {
	if transactor == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("transactor cannot be nil")
	}
	if items == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("items cannot be nil")
	}
	if records == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("records cannot be nil")
	}
	if stats == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("stats cannot be nil")
	}
	if guard == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("guard cannot be nil")
	}
	if params == nil {
		params = mastery.NewDefaultParams()
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if log == nil {
		log = slog.Default()
	}

	return &serviceImpl{
		transactor: transactor,
		items:      items,
		records:    records,
		stats:      stats,
		guard:      guard,
		params:     params,
		rng:        rng,
		logger:     log.With(slog.String("component", "review_service")),
	}
}

// RecordResult implements Service.RecordResult.
func (s *serviceImpl) RecordResult(
	ctx context.Context,
	itemID uuid.UUID,
	outcome domain.Outcome,
) (bool, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if !outcome.IsValid() {
		log.Warn("rejected review with invalid outcome",
			slog.String("item_id", itemID.String()),
			slog.String("outcome", string(outcome)))
		return false, ErrInvalidOutcome
	}

	log.Debug("recording review result",
		slog.String("item_id", itemID.String()),
		slog.String("outcome", string(outcome)))

	var newLevel, streakDays int
	err := s.transactor.RunInTransaction(ctx, func(ctx context.Context, tx *sql.Tx) error {
		items := s.items.WithTx(tx)
		records := s.records.WithTx(tx)
		stats := s.stats.WithTx(tx)

		// The row lock serializes concurrent reviews of the same item.
		item, err := items.GetForUpdate(ctx, itemID)
		if err != nil {
			if errors.Is(err, store.ErrItemNotFound) {
				return store.ErrItemNotFound
			}
			return fmt.Errorf("failed to load item: %w", err)
		}

		// Trusted time is read inside this transaction so the anchor
		// advance commits together with the review it stamps.
		now, err := s.guard.EffectiveNowTx(ctx, tx)
		if err != nil {
			return err
		}

		newLevel = s.params.Advance(item.MasteryLevel, outcome)

		record, err := domain.NewStudyRecord(itemID, outcome, now)
		if err != nil {
			return fmt.Errorf("failed to build study record: %w", err)
		}
		if err := records.Insert(ctx, record); err != nil {
			return fmt.Errorf("failed to insert study record: %w", err)
		}

		if err := items.UpdateMastery(ctx, itemID, newLevel); err != nil {
			return fmt.Errorf("failed to update mastery: %w", err)
		}

		userStats, err := stats.GetForUpdate(ctx)
		if err != nil {
			if !errors.Is(err, store.ErrStatsNotFound) {
				return fmt.Errorf("failed to load user stats: %w", err)
			}
			userStats = domain.NewUserStats()
		}

		today := clock.CalendarDay(now)
		delta := streak.Evaluate(userStats.LastStudyDate, today)
		userStats.StreakDays = streak.Apply(userStats.StreakDays, delta)

		// The daily counters belong to the trusted-time calendar day;
		// the first review on a new day starts them over.
		if userStats.LastStudyDate != today {
			userStats.TodayStudiedCount = 0
			userStats.TodayReviewCount = 0
		}
		userStats.TodayStudiedCount++
		userStats.TodayReviewCount++
		userStats.LastStudyDate = today

		if err := stats.Upsert(ctx, userStats); err != nil {
			return fmt.Errorf("failed to update user stats: %w", err)
		}

		streakDays = userStats.StreakDays
		return nil
	})

	if err != nil {
		// Unknown item is a clean no-op, not an error across the boundary.
		if errors.Is(err, store.ErrItemNotFound) {
			log.Warn("review for unknown item",
				slog.String("item_id", itemID.String()))
			return false, nil
		}

		log.Error("failed to record review result",
			slog.String("error", err.Error()),
			slog.String("item_id", itemID.String()))
		return false, fmt.Errorf("failed to record result: %w", err)
	}

	log.Debug("review result recorded",
		slog.String("item_id", itemID.String()),
		slog.String("outcome", string(outcome)),
		slog.Int("new_level", newLevel),
		slog.Int("streak_days", streakDays))

	return true, nil
}

// ReviewQueue implements Service.ReviewQueue.
func (s *serviceImpl) ReviewQueue(
	ctx context.Context,
	levelID string,
	limit int,
) ([]domain.Item, error) {
	queue, err := s.items.ListReviewQueue(ctx, levelID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list review queue: %w", err)
	}
	return queue, nil
}

// QuizOptions implements Service.QuizOptions.
func (s *serviceImpl) QuizOptions(ctx context.Context, itemID uuid.UUID) (*QuizSet, error) {
	item, err := s.items.GetByID(ctx, itemID)
	if err != nil {
		return nil, fmt.Errorf("failed to load quiz item: %w", err)
	}

	sameLevel, err := s.items.ListAnswerPool(ctx, item.LevelID, item.ID, answerPoolLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to load same-level pool: %w", err)
	}

	global, err := s.items.ListAnswerPool(ctx, "", item.ID, answerPoolLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to load global pool: %w", err)
	}

	s.rngMu.Lock()
	options, correctIndex := quiz.GenerateOptions(s.rng, *item, sameLevel, global)
	s.rngMu.Unlock()

	return &QuizSet{Options: options, CorrectIndex: correctIndex}, nil
}
