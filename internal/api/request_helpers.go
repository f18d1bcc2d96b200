package api

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/wordtrail/wordtrail-api/internal/domain"
)

// getPathUUID extracts a UUID from the URL path parameters.
// It parses and validates the UUID, handling common error cases.
func getPathUUID(r *http.Request, paramName string) (uuid.UUID, error) {
	pathParam := chi.URLParam(r, paramName)
	if pathParam == "" {
		return uuid.Nil, fmt.Errorf("%s is required: %w", paramName, domain.ErrValidation)
	}

	id, err := uuid.Parse(pathParam)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%s has invalid format: %w", paramName, domain.ErrInvalidID)
	}

	return id, nil
}

// getPathLevelID extracts a non-empty level identifier from the URL path.
func getPathLevelID(r *http.Request, paramName string) (string, error) {
	levelID := chi.URLParam(r, paramName)
	if levelID == "" {
		return "", fmt.Errorf("%s is required: %w", paramName, domain.ErrValidation)
	}
	return levelID, nil
}
