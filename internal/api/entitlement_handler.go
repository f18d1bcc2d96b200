package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/wordtrail/wordtrail-api/internal/api/shared"
	"github.com/wordtrail/wordtrail-api/internal/platform/logger"
	"github.com/wordtrail/wordtrail-api/internal/service/entitlement"
)

// UnlockStatusResponse reports whether a level is currently unlocked.
type UnlockStatusResponse struct {
	LevelID  string `json:"level_id"`
	Unlocked bool   `json:"unlocked"`
}

// UnlockLevelRequest represents the request body for recording an unlock
// grant. A nil expiry makes the unlock permanent.
type UnlockLevelRequest struct {
	ExpiresAtMillis *int64 `json:"expires_at_millis,omitempty" validate:"omitempty,gt=0"`
}

// ConsumeQuotaResponse reports whether a quota unit was granted.
type ConsumeQuotaResponse struct {
	Allowed bool `json:"allowed"`
}

// EntitlementHandler handles unlock and quota HTTP requests.
type EntitlementHandler struct {
	entitlementService entitlement.Service
	validator          *validator.Validate
	logger             *slog.Logger
}

// NewEntitlementHandler creates a new EntitlementHandler.
func NewEntitlementHandler(entitlementService entitlement.Service, log *slog.Logger) *EntitlementHandler {
	if entitlementService == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("entitlementService cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}

	return &EntitlementHandler{
		entitlementService: entitlementService,
		validator:          validator.New(),
		logger:             log.With(slog.String("component", "entitlement_handler")),
	}
}

// GetUnlockStatus handles GET /levels/{id}/unlock requests.
func (h *EntitlementHandler) GetUnlockStatus(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	levelID, err := getPathLevelID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	unlocked, err := h.entitlementService.IsLevelUnlocked(r.Context(), levelID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to check level unlock")
		return
	}

	log.Debug("unlock status checked",
		slog.String("level_id", levelID),
		slog.Bool("unlocked", unlocked))
	shared.RespondWithJSON(w, r, http.StatusOK, UnlockStatusResponse{
		LevelID:  levelID,
		Unlocked: unlocked,
	})
}

// UnlockLevel handles POST /levels/{id}/unlock requests. It records an
// unlock granted by the external ad or billing flow.
func (h *EntitlementHandler) UnlockLevel(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	levelID, err := getPathLevelID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	// An empty body grants a permanent unlock.
	var req UnlockLevelRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Warn("failed to decode request body", slog.String("error", err.Error()))
			shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request body")
			return
		}
		if err := h.validator.Struct(req); err != nil {
			log.Warn("request validation failed", slog.String("error", err.Error()))
			shared.RespondWithError(w, r, http.StatusBadRequest, "Expiry must be a positive timestamp")
			return
		}
	}

	if err := h.entitlementService.UnlockLevel(r.Context(), levelID, req.ExpiresAtMillis); err != nil {
		HandleAPIError(w, r, err, "Failed to unlock level")
		return
	}

	log.Debug("level unlock recorded",
		slog.String("level_id", levelID),
		slog.Bool("permanent", req.ExpiresAtMillis == nil))
	shared.RespondWithJSON(w, r, http.StatusOK, UnlockStatusResponse{
		LevelID:  levelID,
		Unlocked: true,
	})
}

// ConsumeQuota handles POST /quota/consume requests. The premium flag is
// derived by the entitlement middleware from the presented token; premium
// requests always pass, free requests consume one daily unit while any
// remain.
func (h *EntitlementHandler) ConsumeQuota(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	premium := shared.GetPremium(r.Context())

	allowed, err := h.entitlementService.ConsumeQuota(r.Context(), premium)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to consume quota")
		return
	}

	if !allowed {
		log.Debug("quota consumption denied")
		shared.RespondWithJSON(w, r, http.StatusTooManyRequests, ConsumeQuotaResponse{Allowed: false})
		return
	}

	log.Debug("quota consumed", slog.Bool("premium", premium))
	shared.RespondWithJSON(w, r, http.StatusOK, ConsumeQuotaResponse{Allowed: true})
}
