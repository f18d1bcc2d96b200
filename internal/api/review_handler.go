// Package api provides HTTP handlers for the API.
package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/wordtrail/wordtrail-api/internal/api/shared"
	"github.com/wordtrail/wordtrail-api/internal/domain"
	"github.com/wordtrail/wordtrail-api/internal/platform/logger"
	"github.com/wordtrail/wordtrail-api/internal/service/review"
)

// ItemResponse represents the response data for a vocabulary item.
type ItemResponse struct {
	ID           string    `json:"id"`
	Prompt       string    `json:"prompt"`
	Answer       string    `json:"answer"`
	LevelID      string    `json:"level_id"`
	MasteryLevel int       `json:"mastery_level"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func itemToResponse(item *domain.Item) ItemResponse {
	return ItemResponse{
		ID:           item.ID.String(),
		Prompt:       item.Prompt,
		Answer:       item.Answer,
		LevelID:      item.LevelID,
		MasteryLevel: item.MasteryLevel,
		CreatedAt:    item.CreatedAt,
		UpdatedAt:    item.UpdatedAt,
	}
}

// RecordResultRequest represents the request body for submitting a review
// outcome.
type RecordResultRequest struct {
	Outcome string `json:"outcome" validate:"required,oneof=known later again"`
}

// RecordResultResponse reports whether the review was applied. Applied is
// false when the item does not exist.
type RecordResultResponse struct {
	Applied bool `json:"applied"`
}

// QuizResponse represents a generated multiple-choice set.
type QuizResponse struct {
	Options      []string `json:"options"`
	CorrectIndex int      `json:"correct_index"`
}

// ReviewHandler handles review-related HTTP requests.
type ReviewHandler struct {
	reviewService review.Service
	validator     *validator.Validate
	logger        *slog.Logger
}

// NewReviewHandler creates a new ReviewHandler.
func NewReviewHandler(reviewService review.Service, log *slog.Logger) *ReviewHandler {
	if reviewService == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("reviewService cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}

	return &ReviewHandler{
		reviewService: reviewService,
		validator:     validator.New(),
		logger:        log.With(slog.String("component", "review_handler")),
	}
}

// RecordResult handles POST /items/{id}/review requests. It applies one
// review outcome to the item and responds with whether it was applied.
func (h *ReviewHandler) RecordResult(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	itemID, err := getPathUUID(r, "id")
	if err != nil {
		log.Warn("invalid item ID in path", slog.String("error", err.Error()))
		HandleAPIError(w, r, err, "")
		return
	}

	var req RecordResultRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Warn("failed to decode request body", slog.String("error", err.Error()))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		log.Warn("request validation failed", slog.String("error", err.Error()))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Outcome must be one of: known, later, again")
		return
	}

	outcome, err := domain.ParseOutcome(req.Outcome)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid review outcome")
		return
	}

	applied, err := h.reviewService.RecordResult(r.Context(), itemID, outcome)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to record review result")
		return
	}

	log.Debug("review result recorded",
		slog.String("item_id", itemID.String()),
		slog.String("outcome", string(outcome)),
		slog.Bool("applied", applied))
	shared.RespondWithJSON(w, r, http.StatusOK, RecordResultResponse{Applied: applied})
}

// ReviewQueue handles GET /review/queue?level=...&limit=... requests. It
// returns the review-eligible items for the level, weakest mastery first.
func (h *ReviewHandler) ReviewQueue(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	levelID := r.URL.Query().Get("level")
	if levelID == "" {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Query parameter 'level' is required")
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Query parameter 'limit' must be a non-negative integer")
			return
		}
		limit = parsed
	}

	items, err := h.reviewService.ReviewQueue(r.Context(), levelID, limit)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get review queue")
		return
	}

	responses := make([]ItemResponse, 0, len(items))
	for i := range items {
		responses = append(responses, itemToResponse(&items[i]))
	}

	log.Debug("review queue retrieved",
		slog.String("level_id", levelID),
		slog.Int("count", len(responses)))
	shared.RespondWithJSON(w, r, http.StatusOK, responses)
}

// QuizOptions handles GET /items/{id}/quiz requests. It generates a
// four-option multiple-choice set for the item.
func (h *ReviewHandler) QuizOptions(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	itemID, err := getPathUUID(r, "id")
	if err != nil {
		log.Warn("invalid item ID in path", slog.String("error", err.Error()))
		HandleAPIError(w, r, err, "")
		return
	}

	set, err := h.reviewService.QuizOptions(r.Context(), itemID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to generate quiz options")
		return
	}

	log.Debug("quiz options generated", slog.String("item_id", itemID.String()))
	shared.RespondWithJSON(w, r, http.StatusOK, QuizResponse{
		Options:      set.Options,
		CorrectIndex: set.CorrectIndex,
	})
}
