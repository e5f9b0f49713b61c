// Package dto provides HTTP request/response data transfer objects and
// RFC 9457 Problem Details error responses for the inbound HTTP adapter layer.
package dto

import (
	"errors"
	"time"

	"github.com/jsamuelsen11/referral-pipeline/internal/domain"
	"github.com/jsamuelsen11/referral-pipeline/internal/domain/pipeline"
	"github.com/jsamuelsen11/referral-pipeline/internal/domain/report"
	"github.com/jsamuelsen11/referral-pipeline/internal/ports"
)

// EntityResponse represents a referral source or client in HTTP responses.
// The client-only fields are omitted for referral sources.
type EntityResponse struct {
	ID            string  `json:"id"`
	Kind          string  `json:"kind"`
	Name          string  `json:"name"`
	Email         string  `json:"email"`
	Phone         string  `json:"phone,omitempty"`
	BusinessName  string  `json:"business_name,omitempty"`
	Stage         string  `json:"stage"`
	Notes         string  `json:"notes,omitempty"`
	LastContactAt *string `json:"last_contact_at"`
	CreatedAt     string  `json:"created_at"`
	UpdatedAt     string  `json:"updated_at"`

	DealSizeCents     *int64  `json:"deal_size_cents,omitempty"`
	ExpectedCloseDate *string `json:"expected_close_date,omitempty"`
	ReferralSourceID  string  `json:"referral_source_id,omitempty"`
}

// EntityListResponse represents a list of entities in HTTP responses.
type EntityListResponse struct {
	Items []EntityResponse `json:"items"`
	Count int              `json:"count"`
}

// ToEntityResponse converts a domain entity to an HTTP response DTO.
func ToEntityResponse(e *pipeline.Entity) EntityResponse {
	resp := EntityResponse{
		ID:            e.ID,
		Kind:          e.Kind.String(),
		Name:          e.Name,
		Email:         e.Email,
		Phone:         e.Phone,
		BusinessName:  e.BusinessName,
		Stage:         e.Stage.String(),
		Notes:         e.Notes,
		LastContactAt: formatTimePtr(e.LastContactAt),
		CreatedAt:     formatTime(e.CreatedAt),
		UpdatedAt:     formatTime(e.UpdatedAt),
	}

	if e.Kind == pipeline.KindClient {
		deal := e.DealSizeCents
		resp.DealSizeCents = &deal
		resp.ReferralSourceID = e.ReferralSourceID
		if e.ExpectedCloseDate != nil {
			d := e.ExpectedCloseDate.Format(pipeline.DateLayout)
			resp.ExpectedCloseDate = &d
		}
	}

	return resp
}

// ToEntityListResponse converts a slice of entities to a list DTO.
func ToEntityListResponse(entities []pipeline.Entity) EntityListResponse {
	items := make([]EntityResponse, len(entities))
	for i := range entities {
		items[i] = ToEntityResponse(&entities[i])
	}
	return EntityListResponse{Items: items, Count: len(items)}
}

// HistoryEntryResponse represents one ledger entry. FromStage is null for
// the creation entry.
type HistoryEntryResponse struct {
	ID        string  `json:"id"`
	Kind      string  `json:"kind"`
	EntityID  string  `json:"entity_id"`
	FromStage *string `json:"from_stage"`
	ToStage   string  `json:"to_stage"`
	Reason    string  `json:"reason,omitempty"`
	ActorID   string  `json:"actor_id,omitempty"`
	ChangedAt string  `json:"changed_at"`
}

// HistoryListResponse represents an entity's ledger, newest first.
type HistoryListResponse struct {
	Items []HistoryEntryResponse `json:"items"`
	Count int                    `json:"count"`
}

// ToHistoryListResponse converts ledger entries to a list DTO.
func ToHistoryListResponse(entries []pipeline.HistoryEntry) HistoryListResponse {
	items := make([]HistoryEntryResponse, len(entries))
	for i, h := range entries {
		items[i] = HistoryEntryResponse{
			ID:        h.ID,
			Kind:      h.Kind.String(),
			EntityID:  h.EntityID,
			ToStage:   h.To.String(),
			Reason:    h.Reason,
			ActorID:   h.ActorID,
			ChangedAt: formatTime(h.ChangedAt),
		}
		if h.From != nil {
			from := h.From.String()
			items[i].FromStage = &from
		}
	}
	return HistoryListResponse{Items: items, Count: len(items)}
}

// BulkChangeStageResponse represents the result of a bulk stage change.
// It includes both moved entities and per-item errors.
type BulkChangeStageResponse struct {
	Moved     []EntityResponse     `json:"moved"`
	Errors    []BulkStageErrorItem `json:"errors"`
	Total     int                  `json:"total"`
	Succeeded int                  `json:"succeeded"`
	Failed    int                  `json:"failed"`
}

// BulkStageErrorItem represents a single rejected move within a bulk
// operation.
type BulkStageErrorItem struct {
	EntityID  string `json:"entity_id"`
	Code      string `json:"code"`
	Message   string `json:"message"`
	FromStage string `json:"from_stage,omitempty"`
	ToStage   string `json:"to_stage,omitempty"`
}

// ToBulkChangeStageResponse converts a ports.BulkStageResult to an HTTP
// response DTO.
func ToBulkChangeStageResponse(result *ports.BulkStageResult) BulkChangeStageResponse {
	moved := make([]EntityResponse, len(result.Moved))
	for i := range result.Moved {
		moved[i] = ToEntityResponse(&result.Moved[i])
	}

	errs := make([]BulkStageErrorItem, len(result.Errors))
	for i, e := range result.Errors {
		errs[i] = BulkStageErrorItem{
			EntityID: e.EntityID,
			Code:     domain.CodeOf(e.Err),
			Message:  e.Err.Error(),
		}
		var terr *domain.TransitionError
		if errors.As(e.Err, &terr) {
			errs[i].FromStage = terr.From
			errs[i].ToStage = terr.To
		}
	}

	return BulkChangeStageResponse{
		Moved:     moved,
		Errors:    errs,
		Total:     len(result.Moved) + len(result.Errors),
		Succeeded: len(result.Moved),
		Failed:    len(result.Errors),
	}
}

// ReferralResponse represents a referral link.
type ReferralResponse struct {
	ID               string `json:"id"`
	ReferralSourceID string `json:"referral_source_id"`
	ClientID         string `json:"client_id"`
	ReferredAt       string `json:"referred_at"`
	Status           string `json:"status"`
}

// ReferralListResponse represents a list of referral links.
type ReferralListResponse struct {
	Items []ReferralResponse `json:"items"`
	Count int                `json:"count"`
}

// ToReferralListResponse converts referral links to a list DTO.
func ToReferralListResponse(refs []pipeline.Referral) ReferralListResponse {
	items := make([]ReferralResponse, len(refs))
	for i, r := range refs {
		items[i] = ReferralResponse{
			ID:               r.ID,
			ReferralSourceID: r.ReferralSourceID,
			ClientID:         r.ClientID,
			ReferredAt:       formatTime(r.ReferredAt),
			Status:           string(r.Status),
		}
	}
	return ReferralListResponse{Items: items, Count: len(items)}
}

// ContactEventResponse represents a logged message.
type ContactEventResponse struct {
	ID        string `json:"id"`
	Kind      string `json:"kind"`
	EntityID  string `json:"entity_id"`
	Direction string `json:"direction"`
	Subject   string `json:"subject,omitempty"`
	Snippet   string `json:"snippet,omitempty"`
	FromEmail string `json:"from_email,omitempty"`
	ToEmail   string `json:"to_email,omitempty"`
	ThreadID  string `json:"thread_id,omitempty"`
	SentAt    string `json:"sent_at"`
	CreatedAt string `json:"created_at"`
}

// ContactEventListResponse represents an entity's contact events.
type ContactEventListResponse struct {
	Items []ContactEventResponse `json:"items"`
	Count int                    `json:"count"`
}

// ToContactEventResponse converts a contact event to an HTTP response DTO.
func ToContactEventResponse(ev *pipeline.ContactEvent) ContactEventResponse {
	return ContactEventResponse{
		ID:        ev.ID,
		Kind:      ev.Kind.String(),
		EntityID:  ev.EntityID,
		Direction: string(ev.Direction),
		Subject:   ev.Subject,
		Snippet:   ev.Snippet,
		FromEmail: ev.FromEmail,
		ToEmail:   ev.ToEmail,
		ThreadID:  ev.ThreadID,
		SentAt:    formatTime(ev.SentAt),
		CreatedAt: formatTime(ev.CreatedAt),
	}
}

// ToContactEventListResponse converts contact events to a list DTO.
func ToContactEventListResponse(events []pipeline.ContactEvent) ContactEventListResponse {
	items := make([]ContactEventResponse, len(events))
	for i := range events {
		items[i] = ToContactEventResponse(&events[i])
	}
	return ContactEventListResponse{Items: items, Count: len(items)}
}

// PipelineResponse describes one kind's stage catalog.
type PipelineResponse struct {
	Kind    string   `json:"kind"`
	Path    string   `json:"path"`
	Stages  []string `json:"stages"`
	Initial string   `json:"initial"`
	Success string   `json:"success,omitempty"`
	Closed  []string `json:"closed"`
	Gated   []string `json:"gated"`
}

// StagesResponse lists both stage catalogs.
type StagesResponse struct {
	ReferralSource PipelineResponse `json:"referral_source"`
	Client         PipelineResponse `json:"client"`
}

// ToStagesResponse converts the catalog to an HTTP response DTO.
func ToStagesResponse(c pipeline.Catalog) StagesResponse {
	return StagesResponse{
		ReferralSource: toPipelineResponse(c.For(pipeline.KindReferralSource)),
		Client:         toPipelineResponse(c.For(pipeline.KindClient)),
	}
}

func toPipelineResponse(p pipeline.Pipeline) PipelineResponse {
	stages := p.Stages()
	resp := PipelineResponse{
		Kind:    p.Kind().String(),
		Path:    p.Kind().PathSegment(),
		Stages:  make([]string, len(stages)),
		Initial: p.Initial().String(),
		Success: p.Success().String(),
		Closed:  []string{},
		Gated:   []string{},
	}
	for i, s := range stages {
		resp.Stages[i] = s.String()
		if p.IsGated(s) {
			resp.Gated = append(resp.Gated, s.String())
		}
	}
	for _, s := range p.ClosedStages() {
		resp.Closed = append(resp.Closed, s.String())
	}
	return resp
}

// SummaryResponse represents the headline counts.
type SummaryResponse struct {
	ReferralSourceCount  int   `json:"referral_source_count"`
	ClientCount          int   `json:"client_count"`
	OpenClientValueCents int64 `json:"open_client_value_cents"`
}

// ToSummaryResponse converts a report summary to an HTTP response DTO.
func ToSummaryResponse(s *report.Summary) SummaryResponse {
	return SummaryResponse{
		ReferralSourceCount:  s.ReferralSourceCount,
		ClientCount:          s.ClientCount,
		OpenClientValueCents: s.OpenClientValueCents,
	}
}

// WeeklyBucketResponse is one row of the weekly report.
type WeeklyBucketResponse struct {
	Label             string `json:"week_label"`
	SignedCount       int    `json:"signed_count"`
	ClientsAddedCount int    `json:"clients_added_count"`
}

// IncomePointResponse is one month of projected income.
type IncomePointResponse struct {
	Month               string `json:"month"`
	ExpectedIncomeCents int64  `json:"expected_income_cents"`
}

// DashboardResponse combines the weekly and income reports.
type DashboardResponse struct {
	Month  string                 `json:"month"`
	Weekly []WeeklyBucketResponse `json:"weekly"`
	Income []IncomePointResponse  `json:"income_by_month"`
}

// ToDashboardResponse converts a dashboard to an HTTP response DTO.
func ToDashboardResponse(d *report.Dashboard) DashboardResponse {
	resp := DashboardResponse{
		Month:  d.Month.String(),
		Weekly: make([]WeeklyBucketResponse, len(d.Weekly)),
		Income: make([]IncomePointResponse, len(d.Income)),
	}
	for i, w := range d.Weekly {
		resp.Weekly[i] = WeeklyBucketResponse(w)
	}
	for i, p := range d.Income {
		resp.Income[i] = IncomePointResponse{Month: p.Month.String(), ExpectedIncomeCents: p.ExpectedIncomeCents}
	}
	return resp
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func formatTimePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := formatTime(*t)
	return &s
}
