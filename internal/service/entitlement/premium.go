package entitlement

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/wordtrail/wordtrail-api/internal/service/clock"
)

// Premium token errors.
var (
	// ErrInvalidToken is returned when the entitlement token is malformed,
	// carries a bad signature, or fails its claims checks.
	ErrInvalidToken = errors.New("invalid entitlement token")

	// ErrExpiredToken is returned when the entitlement token has expired
	// on the trusted clock.
	ErrExpiredToken = errors.New("entitlement token expired")

	// ErrEmptyToken is returned when an empty token string is presented.
	ErrEmptyToken = errors.New("entitlement token cannot be empty")
)

// premiumClaims is the payload of an entitlement token minted by the
// billing collaborator.
type premiumClaims struct {
	Premium bool `json:"premium"`
	jwt.RegisteredClaims
}

// PremiumVerifier validates the signed entitlement tokens the billing
// collaborator hands the app. Token expiry is checked against the trusted
// monotonic clock rather than the device wall clock, so winding the clock
// back cannot keep an expired token alive.
type PremiumVerifier struct {
	secret []byte
	guard  *clock.Guard
	logger *slog.Logger
}

// NewPremiumVerifier creates a verifier for HMAC-signed entitlement
// tokens. log may be nil for the default logger.
func NewPremiumVerifier(secret string, guard *clock.Guard, log *slog.Logger) *PremiumVerifier {
	if secret == "" {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("secret cannot be empty")
	}
	if guard == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("guard cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}

	return &PremiumVerifier{
		secret: []byte(secret),
		guard:  guard,
		logger: log.With(slog.String("component", "premium_verifier")),
	}
}

// Verify reports whether the token grants premium entitlement. An empty
// or invalid token yields an error; a valid token without the premium
// claim yields false.
func (v *PremiumVerifier) Verify(ctx context.Context, tokenString string) (bool, error) {
	if tokenString == "" {
		return false, ErrEmptyToken
	}

	now, err := v.guard.EffectiveNow(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to read trusted time: %w", err)
	}
	trustedNow := time.UnixMilli(now).UTC()

	claims := &premiumClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(token *jwt.Token) (interface{}, error) {
			return v.secret, nil
		},
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithTimeFunc(func() time.Time { return trustedNow }),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return false, ErrExpiredToken
		}
		v.logger.Debug("entitlement token rejected", slog.String("error", err.Error()))
		return false, ErrInvalidToken
	}
	if !token.Valid {
		return false, ErrInvalidToken
	}

	return claims.Premium, nil
}
