package api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wordtrail/wordtrail-api/internal/api"
	"github.com/wordtrail/wordtrail-api/internal/api/middleware"
	"github.com/wordtrail/wordtrail-api/internal/mocks"
	"github.com/wordtrail/wordtrail-api/internal/service/clock"
	"github.com/wordtrail/wordtrail-api/internal/service/entitlement"
)

// entitlementStartMillis is 2026-02-09T12:00:00Z.
const entitlementStartMillis = int64(1770638400000)

const handlerTestSecret = "handler-test-secret"

type entitlementTestEnv struct {
	mem    *mocks.MemoryStore
	wall   *mocks.WallClock
	router *chi.Mux
}

func newEntitlementTestEnv(t *testing.T, dailyLimit int) *entitlementTestEnv {
	t.Helper()

	mem := mocks.NewMemoryStore()
	wall := &mocks.WallClock{Millis: entitlementStartMillis}
	guard := clock.NewGuard(mem, mem.Anchors(), wall, nil)
	svc := entitlement.NewService(mem, mem.Unlocks(), guard, dailyLimit, nil)
	verifier := entitlement.NewPremiumVerifier(handlerTestSecret, guard, nil)
	handler := api.NewEntitlementHandler(svc, nil)

	router := chi.NewRouter()
	router.Use(middleware.EntitlementMiddleware(verifier))
	router.Get("/levels/{id}/unlock", handler.GetUnlockStatus)
	router.Post("/levels/{id}/unlock", handler.UnlockLevel)
	router.Post("/quota/consume", handler.ConsumeQuota)

	return &entitlementTestEnv{mem: mem, wall: wall, router: router}
}

func mintPremiumToken(t *testing.T, secret string) string {
	t.Helper()

	exp := time.UnixMilli(entitlementStartMillis).UTC().Add(24 * time.Hour)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"premium": true,
		"exp":     exp.Unix(),
	})
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestUnlockStatusEndpointDefaultsLocked(t *testing.T) {
	t.Parallel()

	env := newEntitlementTestEnv(t, 3)

	req := httptest.NewRequest(http.MethodGet, "/levels/b2/unlock", nil)
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp api.UnlockStatusResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "b2", resp.LevelID)
	assert.False(t, resp.Unlocked)
}

func TestUnlockLevelEndpointPermanent(t *testing.T) {
	t.Parallel()

	env := newEntitlementTestEnv(t, 3)

	req := httptest.NewRequest(http.MethodPost, "/levels/b2/unlock", nil)
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/levels/b2/unlock", nil)
	rec = httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp api.UnlockStatusResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.True(t, resp.Unlocked)
}

func TestUnlockLevelEndpointTimed(t *testing.T) {
	t.Parallel()

	env := newEntitlementTestEnv(t, 3)
	expiry := entitlementStartMillis + 60_000

	body, err := json.Marshal(api.UnlockLevelRequest{ExpiresAtMillis: &expiry})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/levels/c1/unlock", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	// Move trusted time past the expiry.
	env.wall.Advance(120_000)

	req = httptest.NewRequest(http.MethodGet, "/levels/c1/unlock", nil)
	rec = httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp api.UnlockStatusResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.False(t, resp.Unlocked)
}

func TestConsumeQuotaEndpointFreeTier(t *testing.T) {
	t.Parallel()

	env := newEntitlementTestEnv(t, 2)

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodPost, "/quota/consume", nil)
		rec := httptest.NewRecorder()
		env.router.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code, "consumption %d should pass", i+1)
	}

	req := httptest.NewRequest(http.MethodPost, "/quota/consume", nil)
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)

	var resp api.ConsumeQuotaResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.False(t, resp.Allowed)
}

func TestConsumeQuotaEndpointPremiumBypass(t *testing.T) {
	t.Parallel()

	env := newEntitlementTestEnv(t, 1)
	token := mintPremiumToken(t, handlerTestSecret)

	// Exhaust the free quota.
	req := httptest.NewRequest(http.MethodPost, "/quota/consume", nil)
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	req = httptest.NewRequest(http.MethodPost, "/quota/consume", nil)
	rec = httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusTooManyRequests, rec.Code)

	// Premium sails past the exhausted quota.
	req = httptest.NewRequest(http.MethodPost, "/quota/consume", nil)
	req.Header.Set(middleware.EntitlementTokenHeader, token)
	rec = httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestConsumeQuotaEndpointRejectsBadToken(t *testing.T) {
	t.Parallel()

	env := newEntitlementTestEnv(t, 1)
	badToken := mintPremiumToken(t, "some-other-secret")

	req := httptest.NewRequest(http.MethodPost, "/quota/consume", nil)
	req.Header.Set(middleware.EntitlementTokenHeader, badToken)
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestUnlockLevelEndpointRejectsBadExpiry(t *testing.T) {
	t.Parallel()

	env := newEntitlementTestEnv(t, 3)

	req := httptest.NewRequest(http.MethodPost, "/levels/c1/unlock",
		bytes.NewBufferString(`{"expires_at_millis":-5}`))
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
