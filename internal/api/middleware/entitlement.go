package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/wordtrail/wordtrail-api/internal/api/shared"
	"github.com/wordtrail/wordtrail-api/internal/platform/logger"
)

// EntitlementTokenHeader carries the signed entitlement token the billing
// collaborator hands the app.
const EntitlementTokenHeader = "X-Entitlement-Token"

// TokenVerifier validates a signed entitlement token and reports whether it
// grants premium access.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (bool, error)
}

// EntitlementMiddleware derives the premium flag for the request from the
// optional entitlement token header. An absent header means free tier, not
// an error; only a presented-but-invalid token is rejected.
func EntitlementMiddleware(verifier TokenVerifier) func(http.Handler) http.Handler {
	if verifier == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("verifier cannot be nil")
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			log := logger.FromContextOrDefault(r.Context(), slog.Default())

			token := r.Header.Get(EntitlementTokenHeader)
			if token == "" {
				// Free tier.
				next.ServeHTTP(w, r.WithContext(shared.SetPremium(r.Context(), false)))
				return
			}

			premium, err := verifier.Verify(r.Context(), token)
			if err != nil {
				log.Warn("entitlement token rejected", slog.String("error", err.Error()))
				shared.RespondWithError(w, r, http.StatusUnauthorized, "Invalid entitlement token")
				return
			}

			next.ServeHTTP(w, r.WithContext(shared.SetPremium(r.Context(), premium)))
		})
	}
}
