package handlers

import (
	"net/http"

	"github.com/jsamuelsen11/referral-pipeline/internal/adapters/http/dto"
	"github.com/jsamuelsen11/referral-pipeline/internal/ports"
)

// ReportHandler handles the read-only report endpoints.
type ReportHandler struct {
	svc ports.ReportService
}

// NewReportHandler creates a new ReportHandler with the given service port.
func NewReportHandler(svc ports.ReportService) *ReportHandler {
	return &ReportHandler{svc: svc}
}

// Summary handles GET /api/v1/reports/summary.
func (h *ReportHandler) Summary(w http.ResponseWriter, r *http.Request) {
	s, err := h.svc.Summary(r.Context())
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.ToSummaryResponse(s))
}

// Dashboard handles GET /api/v1/reports/dashboard?month=YYYY-MM. A missing
// or malformed month falls back to the current month.
func (h *ReportHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	d, err := h.svc.Dashboard(r.Context(), r.URL.Query().Get("month"))
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.ToDashboardResponse(d))
}
