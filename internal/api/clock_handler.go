package api

import (
	"log/slog"
	"net/http"

	"github.com/wordtrail/wordtrail-api/internal/api/shared"
	"github.com/wordtrail/wordtrail-api/internal/service/clock"
)

// TimeResponse reports the trusted monotonic time.
type TimeResponse struct {
	EffectiveMillis int64  `json:"effective_millis"`
	CalendarDay     string `json:"calendar_day"`
}

// ClockHandler exposes the trusted clock.
type ClockHandler struct {
	guard  *clock.Guard
	logger *slog.Logger
}

// NewClockHandler creates a new ClockHandler.
func NewClockHandler(guard *clock.Guard, log *slog.Logger) *ClockHandler {
	if guard == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("guard cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}

	return &ClockHandler{
		guard:  guard,
		logger: log.With(slog.String("component", "clock_handler")),
	}
}

// GetTime handles GET /time requests. It returns the trusted monotonic
// time, which never runs backward even when the wall clock does.
func (h *ClockHandler) GetTime(w http.ResponseWriter, r *http.Request) {
	now, err := h.guard.EffectiveNow(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to read trusted time")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, TimeResponse{
		EffectiveMillis: now,
		CalendarDay:     clock.CalendarDay(now),
	})
}
