package api

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/wordtrail/wordtrail-api/internal/domain"
	"github.com/wordtrail/wordtrail-api/internal/service/entitlement"
	"github.com/wordtrail/wordtrail-api/internal/service/review"
	"github.com/wordtrail/wordtrail-api/internal/store"
)

func TestMapErrorToStatusCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"invalid token", entitlement.ErrInvalidToken, http.StatusUnauthorized},
		{"expired token", entitlement.ErrExpiredToken, http.StatusUnauthorized},
		{"item not found", store.ErrItemNotFound, http.StatusNotFound},
		{"unlock state not found", store.ErrUnlockStateNotFound, http.StatusNotFound},
		{"invalid outcome", review.ErrInvalidOutcome, http.StatusBadRequest},
		{"empty level ID", entitlement.ErrEmptyLevelID, http.StatusBadRequest},
		{"invalid ID", domain.ErrInvalidID, http.StatusBadRequest},
		{"wrapped not found", fmt.Errorf("loading: %w", store.ErrItemNotFound), http.StatusNotFound},
		{"unknown error", errors.New("boom"), http.StatusInternalServerError},
		{"nil error", nil, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, MapErrorToStatusCode(tt.err))
		})
	}
}

// GetSafeErrorMessage must never echo internal error text for unknown errors.
func TestGetSafeErrorMessageNeverLeaks(t *testing.T) {
	t.Parallel()

	internal := errors.New("pq: connection to postgres://user:secret@db failed")
	msg := GetSafeErrorMessage(internal)

	assert.Equal(t, "An unexpected error occurred", msg)
	assert.NotContains(t, msg, "secret")
}

func TestGetSafeErrorMessageKnownErrors(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Item not found", GetSafeErrorMessage(store.ErrItemNotFound))
	assert.Equal(t, "Invalid review outcome", GetSafeErrorMessage(review.ErrInvalidOutcome))
	assert.Equal(t, "Entitlement token expired", GetSafeErrorMessage(entitlement.ErrExpiredToken))
}
