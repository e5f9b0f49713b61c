package handlers

import (
	"net/http"

	"github.com/jsamuelsen11/referral-pipeline/internal/adapters/http/dto"
	"github.com/jsamuelsen11/referral-pipeline/internal/ports"
)

// HealthHandler serves the probe endpoints.
type HealthHandler struct {
	registry ports.HealthRegistry
}

// NewHealthHandler creates a HealthHandler reporting on registry.
func NewHealthHandler(registry ports.HealthRegistry) *HealthHandler {
	return &HealthHandler{registry: registry}
}

// Liveness handles GET /health/live. The process answering is the check.
func (h *HealthHandler) Liveness(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, dto.LivenessResponse{Status: dto.HealthOK})
}

// APIHealth handles GET /api/health, the bare availability probe used by
// existing dashboards.
func (h *HealthHandler) APIHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, dto.APIHealthResponse{OK: true})
}

// Readiness handles GET /health/ready: 200 when every registered component
// passes, 503 otherwise. The body lists each component either way.
func (h *HealthHandler) Readiness(w http.ResponseWriter, r *http.Request) {
	resp := dto.ToReadinessResponse(h.registry.CheckAll(r.Context()))

	status := http.StatusOK
	if !resp.Ready() {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, r, status, resp)
}
