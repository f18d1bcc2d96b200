package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/wordtrail/wordtrail-api/internal/api"
	apiMiddleware "github.com/wordtrail/wordtrail-api/internal/api/middleware"
)

// setupRouter creates and configures the application router with all routes
// and middleware. Returns the configured router.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	// Standard middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware)

	reviewHandler := api.NewReviewHandler(app.reviewService, app.logger)
	entitlementHandler := api.NewEntitlementHandler(app.entitlementService, app.logger)
	clockHandler := api.NewClockHandler(app.clockGuard, app.logger)
	entitlementMiddleware := apiMiddleware.EntitlementMiddleware(app.premiumVerifier)

	r.Route("/api", func(r chi.Router) {
		// Review endpoints
		r.Post("/items/{id}/review", reviewHandler.RecordResult)
		r.Get("/items/{id}/quiz", reviewHandler.QuizOptions)
		r.Get("/review/queue", reviewHandler.ReviewQueue)

		// Entitlement endpoints
		r.Get("/levels/{id}/unlock", entitlementHandler.GetUnlockStatus)
		r.Post("/levels/{id}/unlock", entitlementHandler.UnlockLevel)
		r.With(entitlementMiddleware).Post("/quota/consume", entitlementHandler.ConsumeQuota)

		// Trusted time probe
		r.Get("/time", clockHandler.GetTime)
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	return r
}
