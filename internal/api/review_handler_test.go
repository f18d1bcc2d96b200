package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wordtrail/wordtrail-api/internal/api"
	"github.com/wordtrail/wordtrail-api/internal/domain"
	"github.com/wordtrail/wordtrail-api/internal/mocks"
	"github.com/wordtrail/wordtrail-api/internal/quiz"
	"github.com/wordtrail/wordtrail-api/internal/service/clock"
	"github.com/wordtrail/wordtrail-api/internal/service/review"
)

// reviewStartMillis is 2026-02-09T12:00:00Z.
const reviewStartMillis = int64(1770638400000)

type reviewTestEnv struct {
	mem    *mocks.MemoryStore
	router *chi.Mux
}

func newReviewTestEnv(t *testing.T) *reviewTestEnv {
	t.Helper()

	mem := mocks.NewMemoryStore()
	wall := &mocks.WallClock{Millis: reviewStartMillis}
	guard := clock.NewGuard(mem, mem.Anchors(), wall, nil)
	svc := review.NewService(
		mem, mem.Items(), mem.StudyRecords(), mem.Stats(), guard,
		nil, rand.New(rand.NewSource(1)), nil)
	handler := api.NewReviewHandler(svc, nil)

	router := chi.NewRouter()
	router.Post("/items/{id}/review", handler.RecordResult)
	router.Get("/items/{id}/quiz", handler.QuizOptions)
	router.Get("/review/queue", handler.ReviewQueue)

	return &reviewTestEnv{mem: mem, router: router}
}

func (e *reviewTestEnv) seedItem(t *testing.T, answer, levelID string, level int) domain.Item {
	t.Helper()

	item, err := domain.NewItem("prompt "+answer, answer, levelID)
	require.NoError(t, err)
	item.MasteryLevel = level
	e.mem.SeedItem(*item)
	return *item
}

func TestRecordResultEndpoint(t *testing.T) {
	t.Parallel()

	env := newReviewTestEnv(t)
	item := env.seedItem(t, "cat", "a1", 2)

	body := bytes.NewBufferString(`{"outcome":"known"}`)
	req := httptest.NewRequest(http.MethodPost, "/items/"+item.ID.String()+"/review", body)
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp api.RecordResultResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.True(t, resp.Applied)

	stored, err := env.mem.Items().GetByID(context.Background(), item.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, stored.MasteryLevel)
}

func TestRecordResultEndpointUnknownItem(t *testing.T) {
	t.Parallel()

	env := newReviewTestEnv(t)

	body := bytes.NewBufferString(`{"outcome":"again"}`)
	req := httptest.NewRequest(http.MethodPost, "/items/"+uuid.NewString()+"/review", body)
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)

	// Unknown items are reported, not errored.
	require.Equal(t, http.StatusOK, rec.Code)

	var resp api.RecordResultResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.False(t, resp.Applied)
}

func TestRecordResultEndpointValidation(t *testing.T) {
	t.Parallel()

	env := newReviewTestEnv(t)
	item := env.seedItem(t, "cat", "a1", 2)

	tests := []struct {
		name string
		path string
		body string
		want int
	}{
		{
			name: "malformed JSON",
			path: "/items/" + item.ID.String() + "/review",
			body: `{"outcome":`,
			want: http.StatusBadRequest,
		},
		{
			name: "unrecognized outcome",
			path: "/items/" + item.ID.String() + "/review",
			body: `{"outcome":"easy"}`,
			want: http.StatusBadRequest,
		},
		{
			name: "missing outcome",
			path: "/items/" + item.ID.String() + "/review",
			body: `{}`,
			want: http.StatusBadRequest,
		},
		{
			name: "malformed item ID",
			path: "/items/not-a-uuid/review",
			body: `{"outcome":"known"}`,
			want: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequest(http.MethodPost, tt.path, bytes.NewBufferString(tt.body))
			rec := httptest.NewRecorder()
			env.router.ServeHTTP(rec, req)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestReviewQueueEndpoint(t *testing.T) {
	t.Parallel()

	env := newReviewTestEnv(t)
	env.seedItem(t, "cat", "a1", 1)
	env.seedItem(t, "dog", "a1", domain.MaxMasteryLevel)
	env.seedItem(t, "tree", "b2", 0)

	req := httptest.NewRequest(http.MethodGet, "/review/queue?level=a1", nil)
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var items []api.ItemResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&items))
	require.Len(t, items, 1)
	assert.Equal(t, "cat", items[0].Answer)
}

func TestReviewQueueEndpointRequiresLevel(t *testing.T) {
	t.Parallel()

	env := newReviewTestEnv(t)

	req := httptest.NewRequest(http.MethodGet, "/review/queue", nil)
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestQuizOptionsEndpoint(t *testing.T) {
	t.Parallel()

	env := newReviewTestEnv(t)
	item := env.seedItem(t, "cat", "a1", 1)
	env.seedItem(t, "dog", "a1", 1)

	req := httptest.NewRequest(http.MethodGet, "/items/"+item.ID.String()+"/quiz", nil)
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp api.QuizResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Len(t, resp.Options, 4)
	assert.Equal(t, "cat", resp.Options[resp.CorrectIndex])
	assert.Contains(t, resp.Options, quiz.Sentinel)
}

func TestQuizOptionsEndpointUnknownItem(t *testing.T) {
	t.Parallel()

	env := newReviewTestEnv(t)

	req := httptest.NewRequest(http.MethodGet, "/items/"+uuid.NewString()+"/quiz", nil)
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
