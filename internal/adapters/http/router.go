// Package http provides the inbound HTTP adapter including routing and server lifecycle.
package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/jsamuelsen11/referral-pipeline/internal/adapters/http/handlers"
)

// NewRouter creates an HTTP handler with all application routes registered.
// Middleware is applied globally in the order given.
func NewRouter(
	pipelineHandler *handlers.PipelineHandler,
	reportHandler *handlers.ReportHandler,
	healthHandler *handlers.HealthHandler,
	middlewares ...func(http.Handler) http.Handler,
) http.Handler {
	r := chi.NewRouter()

	for _, mw := range middlewares {
		r.Use(mw)
	}

	// Health endpoints (outside /api/v1 prefix).
	r.Get("/health/live", healthHandler.Liveness)
	r.Get("/health/ready", healthHandler.Readiness)
	r.Get("/api/health", healthHandler.APIHealth)

	// API v1 routes.
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/stages", pipelineHandler.Stages)
		r.Get("/referrals", pipelineHandler.ListReferrals)

		// Reports.
		r.Get("/reports/summary", reportHandler.Summary)
		r.Get("/reports/dashboard", reportHandler.Dashboard)

		// Entity collections: {kind} is "referral-sources" or "clients".
		r.Get("/{kind}", pipelineHandler.ListEntities)
		r.Post("/{kind}", pipelineHandler.CreateEntity)
		r.Post("/{kind}/stage:bulk", pipelineHandler.BulkChangeStage)
		r.Get("/{kind}/{id}", pipelineHandler.GetEntity)
		r.Patch("/{kind}/{id}", pipelineHandler.UpdateEntity)
		r.Post("/{kind}/{id}/stage", pipelineHandler.ChangeStage)
		r.Get("/{kind}/{id}/history", pipelineHandler.ListHistory)
		r.Get("/{kind}/{id}/contacts", pipelineHandler.ListContacts)
		r.Post("/{kind}/{id}/contacts", pipelineHandler.AppendContact)
	})

	return r
}
