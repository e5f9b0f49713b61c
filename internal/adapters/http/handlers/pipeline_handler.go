package handlers

import (
	"net/http"
	"strings"

	"github.com/jsamuelsen11/referral-pipeline/internal/adapters/http/dto"
	"github.com/jsamuelsen11/referral-pipeline/internal/domain/pipeline"
	"github.com/jsamuelsen11/referral-pipeline/internal/ports"
)

// PipelineHandler handles entity, stage, history and contact endpoints for
// both kinds. The kind comes from the {kind} path segment.
type PipelineHandler struct {
	svc ports.PipelineService
}

// NewPipelineHandler creates a new PipelineHandler with the given service port.
func NewPipelineHandler(svc ports.PipelineService) *PipelineHandler {
	return &PipelineHandler{svc: svc}
}

// Stages handles GET /api/v1/stages.
func (h *PipelineHandler) Stages(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, dto.ToStagesResponse(h.svc.Catalog()))
}

// ListEntities handles GET /api/v1/{kind}?stage=.
func (h *PipelineHandler) ListEntities(w http.ResponseWriter, r *http.Request) {
	kind, err := parseKind(r)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	filter := pipeline.ListFilter{
		Stage: pipeline.Stage(strings.TrimSpace(r.URL.Query().Get("stage"))),
	}

	list, err := h.svc.ListEntities(r.Context(), kind, filter)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.ToEntityListResponse(list))
}

// CreateEntity handles POST /api/v1/{kind}.
func (h *PipelineHandler) CreateEntity(w http.ResponseWriter, r *http.Request) {
	kind, err := parseKind(r)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	var req dto.CreateEntityRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	created, err := h.svc.CreateEntity(r.Context(), kind, req.ToDraft())
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusCreated, dto.ToEntityResponse(created))
}

// GetEntity handles GET /api/v1/{kind}/{id}.
func (h *PipelineHandler) GetEntity(w http.ResponseWriter, r *http.Request) {
	kind, id, err := parseKindAndID(r)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	e, err := h.svc.GetEntity(r.Context(), kind, id)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.ToEntityResponse(e))
}

// UpdateEntity handles PATCH /api/v1/{kind}/{id}.
func (h *PipelineHandler) UpdateEntity(w http.ResponseWriter, r *http.Request) {
	kind, id, err := parseKindAndID(r)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	var req dto.UpdateEntityRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	updated, err := h.svc.UpdateEntity(r.Context(), kind, id, req.ToPatch())
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.ToEntityResponse(updated))
}

// ChangeStage handles POST /api/v1/{kind}/{id}/stage.
func (h *PipelineHandler) ChangeStage(w http.ResponseWriter, r *http.Request) {
	kind, id, err := parseKindAndID(r)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	var req dto.ChangeStageRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	moved, err := h.svc.ChangeStage(r.Context(), kind, req.ToStageChange(id))
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.ToEntityResponse(moved))
}

// BulkChangeStage handles POST /api/v1/{kind}/stage:bulk. Per-item
// failures are reported in the body; the response is 200 unless the
// request itself is malformed.
func (h *PipelineHandler) BulkChangeStage(w http.ResponseWriter, r *http.Request) {
	kind, err := parseKind(r)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	var req dto.BulkChangeStageRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	result, err := h.svc.BulkChangeStage(r.Context(), kind, req.ToStageChanges())
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.ToBulkChangeStageResponse(result))
}

// ListHistory handles GET /api/v1/{kind}/{id}/history.
func (h *PipelineHandler) ListHistory(w http.ResponseWriter, r *http.Request) {
	kind, id, err := parseKindAndID(r)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	entries, err := h.svc.ListHistory(r.Context(), kind, id)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.ToHistoryListResponse(entries))
}

// ListContacts handles GET /api/v1/{kind}/{id}/contacts.
func (h *PipelineHandler) ListContacts(w http.ResponseWriter, r *http.Request) {
	kind, id, err := parseKindAndID(r)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	events, err := h.svc.ListContactEvents(r.Context(), kind, id)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.ToContactEventListResponse(events))
}

// AppendContact handles POST /api/v1/{kind}/{id}/contacts.
func (h *PipelineHandler) AppendContact(w http.ResponseWriter, r *http.Request) {
	kind, id, err := parseKindAndID(r)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	var req dto.ContactEventRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	ev, err := h.svc.AppendContactEvent(r.Context(), req.ToContactEvent(kind, id))
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusCreated, dto.ToContactEventResponse(ev))
}

// ListReferrals handles GET /api/v1/referrals?referral_source_id=.
func (h *PipelineHandler) ListReferrals(w http.ResponseWriter, r *http.Request) {
	sourceID := strings.TrimSpace(r.URL.Query().Get("referral_source_id"))

	refs, err := h.svc.ListReferrals(r.Context(), sourceID)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.ToReferralListResponse(refs))
}
