package clock

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/wordtrail/wordtrail-api/internal/platform/logger"
	"github.com/wordtrail/wordtrail-api/internal/store"
)

// Guard maintains the trusted monotonic clock. It ratchets a persisted
// anchor forward on every read: wall-clock readings above the anchor advance
// it, readings at or below it are ignored and the anchor value is returned
// instead. The effective time therefore never decreases for the lifetime of
// the installation, regardless of wall-clock manipulation.
//
// Rollback is silent: effective time simply freezes at the anchor, and no
// error reaches the caller.
type Guard struct {
	transactor store.Transactor
	anchors    store.AnchorStore
	wall       WallClock
	logger     *slog.Logger
}

// NewGuard creates a trusted clock guard over the given anchor store and
// wall clock. If log is nil, a default logger will be used.
func NewGuard(
	transactor store.Transactor,
	anchors store.AnchorStore,
	wall WallClock,
	log *slog.Logger,
) *Guard {
	if transactor == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("transactor cannot be nil")
	}
	if anchors == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("anchors cannot be nil")
	}
	if wall == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("wall clock cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}

	return &Guard{
		transactor: transactor,
		anchors:    anchors,
		wall:       wall,
		logger:     log.With(slog.String("component", "clock_guard")),
	}
}

// EffectiveNow returns the trusted current time in Unix milliseconds,
// running the anchor read-modify-write in its own transaction.
func (g *Guard) EffectiveNow(ctx context.Context) (int64, error) {
	var now int64
	err := g.transactor.RunInTransaction(ctx, func(ctx context.Context, tx *sql.Tx) error {
		var txErr error
		now, txErr = g.EffectiveNowTx(ctx, tx)
		return txErr
	})
	if err != nil {
		return 0, fmt.Errorf("failed to read trusted clock: %w", err)
	}
	return now, nil
}

// EffectiveNowTx returns the trusted current time inside an existing
// transaction. Callers whose expiry or quota decision depends on the reading
// must use this form so the anchor update and the decision commit together;
// a separate transaction would reopen the time-of-check/time-of-use gap.
func (g *Guard) EffectiveNowTx(ctx context.Context, tx *sql.Tx) (int64, error) {
	log := logger.FromContextOrDefault(ctx, g.logger)
	anchors := g.anchors.WithTx(tx)

	anchor, err := anchors.Get(ctx)
	if err != nil {
		if !errors.Is(err, store.ErrAnchorNotFound) {
			return 0, fmt.Errorf("failed to load trusted anchor: %w", err)
		}
		// First ever clock read; the anchor starts at zero.
		anchor = 0
	}

	observed := g.wall.NowMillis()
	if observed > anchor {
		if err := anchors.Set(ctx, observed); err != nil {
			return 0, fmt.Errorf("failed to advance trusted anchor: %w", err)
		}
		return observed, nil
	}

	if observed < anchor {
		log.Debug("wall clock behind trusted anchor, effective time frozen",
			slog.Int64("observed_millis", observed),
			slog.Int64("anchor_millis", anchor))
	}

	return anchor, nil
}
