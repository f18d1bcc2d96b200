package api

import (
	"errors"
	"net/http"

	"github.com/wordtrail/wordtrail-api/internal/api/shared"
	"github.com/wordtrail/wordtrail-api/internal/domain"
	"github.com/wordtrail/wordtrail-api/internal/service/entitlement"
	"github.com/wordtrail/wordtrail-api/internal/service/review"
	"github.com/wordtrail/wordtrail-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Entitlement token errors
	case errors.Is(err, entitlement.ErrInvalidToken),
		errors.Is(err, entitlement.ErrExpiredToken),
		errors.Is(err, entitlement.ErrEmptyToken):
		return http.StatusUnauthorized

	// Not found errors
	case errors.Is(err, store.ErrItemNotFound),
		errors.Is(err, store.ErrStatsNotFound),
		errors.Is(err, store.ErrUnlockStateNotFound):
		return http.StatusNotFound

	// Bad request errors
	case errors.Is(err, review.ErrInvalidOutcome),
		errors.Is(err, entitlement.ErrEmptyLevelID),
		errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidID),
		errors.Is(err, store.ErrInvalidEntity):
		return http.StatusBadRequest

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	case errors.Is(err, entitlement.ErrInvalidToken):
		return "Invalid entitlement token"

	case errors.Is(err, entitlement.ErrExpiredToken):
		return "Entitlement token expired"

	case errors.Is(err, entitlement.ErrEmptyToken):
		return "Entitlement token required"

	case errors.Is(err, store.ErrItemNotFound):
		return "Item not found"

	case errors.Is(err, store.ErrStatsNotFound):
		return "Statistics not found"

	case errors.Is(err, store.ErrUnlockStateNotFound):
		return "Unlock state not found"

	case errors.Is(err, review.ErrInvalidOutcome):
		return "Invalid review outcome"

	case errors.Is(err, entitlement.ErrEmptyLevelID):
		return "Level ID is required"

	case errors.Is(err, domain.ErrInvalidID):
		return "Invalid ID format"

	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, store.ErrInvalidEntity):
		return "Invalid request data"

	default:
		return "An unexpected error occurred"
	}
}

// HandleAPIError maps the error to a status code and writes a sanitized
// response, logging the full error. An empty userMessage selects the safe
// message for the error type.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, userMessage string) {
	statusCode := MapErrorToStatusCode(err)
	if userMessage == "" {
		userMessage = GetSafeErrorMessage(err)
	}
	shared.RespondWithErrorAndLog(w, r, statusCode, userMessage, err)
}
