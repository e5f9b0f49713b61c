package handlers_test

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/jsamuelsen11/referral-pipeline/internal/adapters/http/dto"
	"github.com/jsamuelsen11/referral-pipeline/internal/adapters/http/handlers"
	"github.com/jsamuelsen11/referral-pipeline/internal/domain"
	"github.com/jsamuelsen11/referral-pipeline/internal/domain/pipeline"
	"github.com/jsamuelsen11/referral-pipeline/internal/ports"
	"github.com/jsamuelsen11/referral-pipeline/mocks"
)

func newPipelineHandler(t *testing.T) (*handlers.PipelineHandler, *mocks.MockPipelineService) {
	t.Helper()
	svc := mocks.NewMockPipelineService(t)
	return handlers.NewPipelineHandler(svc), svc
}

func clientsReq(method, target string, body *bytes.Buffer, params map[string]string) *http.Request {
	var req *http.Request
	if body == nil {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, body)
		req.Header.Set("Content-Type", "application/json")
	}
	return withChiParams(req, params)
}

// --- Stages ---

func TestStages(t *testing.T) {
	t.Parallel()
	h, svc := newPipelineHandler(t)

	svc.EXPECT().Catalog().Return(pipeline.DefaultCatalog())

	rec := httptest.NewRecorder()
	h.Stages(rec, httptest.NewRequest(http.MethodGet, "/api/v1/stages", nil))

	requireStatus(t, rec, http.StatusOK)
	resp := decodeJSON[dto.StagesResponse](t, rec)
	if resp.Client.Initial != "REFERRED" {
		t.Errorf("Client.Initial = %q, want REFERRED", resp.Client.Initial)
	}
	if resp.ReferralSource.Path != "referral-sources" {
		t.Errorf("ReferralSource.Path = %q", resp.ReferralSource.Path)
	}
}

// --- ListEntities ---

func TestListEntities_Success(t *testing.T) {
	t.Parallel()
	h, svc := newPipelineHandler(t)

	svc.EXPECT().ListEntities(mock.Anything, pipeline.KindClient, pipeline.ListFilter{}).
		Return([]pipeline.Entity{validClient()}, nil)

	rec := httptest.NewRecorder()
	h.ListEntities(rec, clientsReq(http.MethodGet, "/api/v1/clients", nil, map[string]string{"kind": "clients"}))

	requireStatus(t, rec, http.StatusOK)
	resp := decodeJSON[dto.EntityListResponse](t, rec)
	if resp.Count != 1 || resp.Items[0].ID != "c-1" {
		t.Errorf("resp = %+v", resp)
	}
}

func TestListEntities_StageFilter(t *testing.T) {
	t.Parallel()
	h, svc := newPipelineHandler(t)

	svc.EXPECT().ListEntities(mock.Anything, pipeline.KindReferralSource,
		pipeline.ListFilter{Stage: pipeline.StageIntroScheduled}).
		Return([]pipeline.Entity{validReferralSource()}, nil)

	rec := httptest.NewRecorder()
	h.ListEntities(rec, clientsReq(http.MethodGet, "/api/v1/referral-sources?stage=INTRO_SCHEDULED", nil,
		map[string]string{"kind": "referral-sources"}))

	requireStatus(t, rec, http.StatusOK)
}

func TestListEntities_UnknownCollection(t *testing.T) {
	t.Parallel()

	for _, kind := range []string{"widgets", "CLIENT", ""} {
		t.Run(kind, func(t *testing.T) {
			t.Parallel()
			h, _ := newPipelineHandler(t)

			rec := httptest.NewRecorder()
			h.ListEntities(rec, clientsReq(http.MethodGet, "/api/v1/x", nil, map[string]string{"kind": kind}))

			requireStatus(t, rec, http.StatusNotFound)
		})
	}
}

func TestListEntities_ServiceError(t *testing.T) {
	t.Parallel()
	h, svc := newPipelineHandler(t)

	svc.EXPECT().ListEntities(mock.Anything, pipeline.KindClient, pipeline.ListFilter{Stage: "NOPE"}).
		Return(nil, &domain.ValidationError{Fields: map[string]string{"stage": "unknown stage"}})

	rec := httptest.NewRecorder()
	h.ListEntities(rec, clientsReq(http.MethodGet, "/api/v1/clients?stage=NOPE", nil, map[string]string{"kind": "clients"}))

	requireStatus(t, rec, http.StatusBadRequest)
}

// --- CreateEntity ---

func TestCreateEntity_Success(t *testing.T) {
	t.Parallel()
	h, svc := newPipelineHandler(t)

	created := validClient()
	svc.EXPECT().CreateEntity(mock.Anything, pipeline.KindClient, pipeline.Draft{
		Name:             "Dana Reyes",
		Email:            "dana@example.com",
		DealSizeCents:    250000,
		ReferralSourceID: "rs-1",
	}).Return(&created, nil)

	body := jsonBody(t, dto.CreateEntityRequest{
		Name: "Dana Reyes", Email: "dana@example.com", DealSizeCents: 250000, ReferralSourceID: "rs-1",
	})
	rec := httptest.NewRecorder()
	h.CreateEntity(rec, clientsReq(http.MethodPost, "/api/v1/clients", body, map[string]string{"kind": "clients"}))

	requireStatus(t, rec, http.StatusCreated)
	resp := decodeJSON[dto.EntityResponse](t, rec)
	if resp.Stage != "REFERRED" {
		t.Errorf("Stage = %q, want REFERRED", resp.Stage)
	}
}

func TestCreateEntity_BadBody(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		body    string
		wantMsg string
	}{
		{name: "malformed", body: "{bad", wantMsg: "invalid JSON"},
		{name: "empty", body: "", wantMsg: domain.MsgRequired},
		{name: "oversized", body: `{"name":"` + strings.Repeat("x", 1<<20) + `"}`, wantMsg: "must not exceed 1048576 bytes"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			h, _ := newPipelineHandler(t)

			rec := httptest.NewRecorder()
			h.CreateEntity(rec, clientsReq(http.MethodPost, "/api/v1/clients", bytes.NewBufferString(tt.body),
				map[string]string{"kind": "clients"}))

			requireStatus(t, rec, http.StatusBadRequest)
			resp := decodeJSON[dto.Problem](t, rec)
			if len(resp.Errors) != 1 || resp.Errors[0].Location != "body.body" || resp.Errors[0].Message != tt.wantMsg {
				t.Errorf("Errors = %+v, want body: %q", resp.Errors, tt.wantMsg)
			}
		})
	}
}

func TestCreateEntity_MissingFields(t *testing.T) {
	t.Parallel()
	h, _ := newPipelineHandler(t)

	rec := httptest.NewRecorder()
	h.CreateEntity(rec, clientsReq(http.MethodPost, "/api/v1/clients", jsonBody(t, dto.CreateEntityRequest{}),
		map[string]string{"kind": "clients"}))

	requireStatus(t, rec, http.StatusBadRequest)
	resp := decodeJSON[dto.Problem](t, rec)
	if resp.Code != domain.CodeValidationFailed {
		t.Errorf("Code = %q, want %q", resp.Code, domain.CodeValidationFailed)
	}
}

func TestCreateEntity_UnknownReferralSource(t *testing.T) {
	t.Parallel()
	h, svc := newPipelineHandler(t)

	svc.EXPECT().CreateEntity(mock.Anything, pipeline.KindClient, mock.AnythingOfType("pipeline.Draft")).
		Return(nil, domain.ErrReferralSourceNotFound)

	body := jsonBody(t, dto.CreateEntityRequest{Name: "Dana", Email: "d@example.com", ReferralSourceID: "missing"})
	rec := httptest.NewRecorder()
	h.CreateEntity(rec, clientsReq(http.MethodPost, "/api/v1/clients", body, map[string]string{"kind": "clients"}))

	requireStatus(t, rec, http.StatusNotFound)
	resp := decodeJSON[dto.Problem](t, rec)
	if resp.Code != domain.CodeReferralSourceNotFound {
		t.Errorf("Code = %q, want %q", resp.Code, domain.CodeReferralSourceNotFound)
	}
}

// --- GetEntity ---

func TestGetEntity_Success(t *testing.T) {
	t.Parallel()
	h, svc := newPipelineHandler(t)

	e := validReferralSource()
	svc.EXPECT().GetEntity(mock.Anything, pipeline.KindReferralSource, "rs-1").Return(&e, nil)

	rec := httptest.NewRecorder()
	h.GetEntity(rec, clientsReq(http.MethodGet, "/api/v1/referral-sources/rs-1", nil,
		map[string]string{"kind": "referral-sources", "id": "rs-1"}))

	requireStatus(t, rec, http.StatusOK)
	resp := decodeJSON[dto.EntityResponse](t, rec)
	if resp.Kind != "REFERRAL_SOURCE" {
		t.Errorf("Kind = %q, want REFERRAL_SOURCE", resp.Kind)
	}
}

func TestGetEntity_NotFound(t *testing.T) {
	t.Parallel()
	h, svc := newPipelineHandler(t)

	svc.EXPECT().GetEntity(mock.Anything, pipeline.KindClient, "nope").Return(nil, domain.ErrEntityNotFound)

	rec := httptest.NewRecorder()
	h.GetEntity(rec, clientsReq(http.MethodGet, "/api/v1/clients/nope", nil,
		map[string]string{"kind": "clients", "id": "nope"}))

	requireStatus(t, rec, http.StatusNotFound)
}

func TestGetEntity_BlankID(t *testing.T) {
	t.Parallel()
	h, _ := newPipelineHandler(t)

	rec := httptest.NewRecorder()
	h.GetEntity(rec, clientsReq(http.MethodGet, "/api/v1/clients/%20", nil,
		map[string]string{"kind": "clients", "id": " "}))

	requireStatus(t, rec, http.StatusBadRequest)
}

// --- UpdateEntity ---

func TestUpdateEntity_Success(t *testing.T) {
	t.Parallel()
	h, svc := newPipelineHandler(t)

	updated := validClient()
	updated.Notes = "warm lead"
	svc.EXPECT().UpdateEntity(mock.Anything, pipeline.KindClient, "c-1", mock.MatchedBy(func(p pipeline.Patch) bool {
		return p.Notes != nil && *p.Notes == "warm lead" && p.Name == nil && !p.ExpectedCloseDate.Set
	})).Return(&updated, nil)

	rec := httptest.NewRecorder()
	h.UpdateEntity(rec, clientsReq(http.MethodPatch, "/api/v1/clients/c-1", bytes.NewBufferString(`{"notes":"warm lead"}`),
		map[string]string{"kind": "clients", "id": "c-1"}))

	requireStatus(t, rec, http.StatusOK)
	resp := decodeJSON[dto.EntityResponse](t, rec)
	if resp.Notes != "warm lead" {
		t.Errorf("Notes = %q", resp.Notes)
	}
}

func TestUpdateEntity_ClearsCloseDate(t *testing.T) {
	t.Parallel()
	h, svc := newPipelineHandler(t)

	updated := validClient()
	svc.EXPECT().UpdateEntity(mock.Anything, pipeline.KindClient, "c-1", mock.MatchedBy(func(p pipeline.Patch) bool {
		return p.ExpectedCloseDate.Set && p.ExpectedCloseDate.Value == nil
	})).Return(&updated, nil)

	rec := httptest.NewRecorder()
	h.UpdateEntity(rec, clientsReq(http.MethodPatch, "/api/v1/clients/c-1", bytes.NewBufferString(`{"expected_close_date":null}`),
		map[string]string{"kind": "clients", "id": "c-1"}))

	requireStatus(t, rec, http.StatusOK)
}

func TestUpdateEntity_GatedStageNeedsCloseDate(t *testing.T) {
	t.Parallel()
	h, svc := newPipelineHandler(t)

	svc.EXPECT().UpdateEntity(mock.Anything, pipeline.KindClient, "c-1", mock.AnythingOfType("pipeline.Patch")).
		Return(nil, &domain.TransitionError{Rule: domain.ErrMissingCloseDate, Kind: "CLIENT", From: "CONTRACT_SENT", To: "CONTRACT_SENT"})

	rec := httptest.NewRecorder()
	h.UpdateEntity(rec, clientsReq(http.MethodPatch, "/api/v1/clients/c-1", bytes.NewBufferString(`{"expected_close_date":""}`),
		map[string]string{"kind": "clients", "id": "c-1"}))

	requireStatus(t, rec, http.StatusUnprocessableEntity)
}

// --- ChangeStage ---

func TestChangeStage_Success(t *testing.T) {
	t.Parallel()
	h, svc := newPipelineHandler(t)

	moved := validClient()
	moved.Stage = pipeline.StageContacted
	svc.EXPECT().ChangeStage(mock.Anything, pipeline.KindClient, pipeline.StageChange{
		EntityID: "c-1",
		To:       pipeline.StageContacted,
		ActorID:  "u-7",
	}).Return(&moved, nil)

	body := jsonBody(t, dto.ChangeStageRequest{ToStage: "CONTACTED", ActorID: "u-7"})
	rec := httptest.NewRecorder()
	h.ChangeStage(rec, clientsReq(http.MethodPost, "/api/v1/clients/c-1/stage", body,
		map[string]string{"kind": "clients", "id": "c-1"}))

	requireStatus(t, rec, http.StatusOK)
	resp := decodeJSON[dto.EntityResponse](t, rec)
	if resp.Stage != "CONTACTED" {
		t.Errorf("Stage = %q, want CONTACTED", resp.Stage)
	}
}

func TestChangeStage_WithCloseDate(t *testing.T) {
	t.Parallel()
	h, svc := newPipelineHandler(t)

	moved := validClient()
	want := time.Date(2026, 4, 30, 0, 0, 0, 0, time.UTC)
	svc.EXPECT().ChangeStage(mock.Anything, pipeline.KindClient, mock.MatchedBy(func(c pipeline.StageChange) bool {
		return c.ExpectedCloseDate != nil && c.ExpectedCloseDate.Equal(want)
	})).Return(&moved, nil)

	body := jsonBody(t, dto.ChangeStageRequest{ToStage: "PROP_SENT_REVIEW", ExpectedCloseDate: "2026-04-30"})
	rec := httptest.NewRecorder()
	h.ChangeStage(rec, clientsReq(http.MethodPost, "/api/v1/clients/c-1/stage", body,
		map[string]string{"kind": "clients", "id": "c-1"}))

	requireStatus(t, rec, http.StatusOK)
}

func TestChangeStage_Rejections(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{
			name:       "unknown stage",
			err:        &domain.TransitionError{Rule: domain.ErrUnknownStage, Kind: "CLIENT", From: "REFERRED", To: "LOST_IN_SPACE"},
			wantStatus: http.StatusBadRequest,
			wantCode:   domain.CodeUnknownStage,
		},
		{
			name:       "skip ahead",
			err:        &domain.TransitionError{Rule: domain.ErrNonAdjacentForward, Kind: "CLIENT", From: "REFERRED", To: "LOST_IN_SPACE"},
			wantStatus: http.StatusUnprocessableEntity,
			wantCode:   domain.CodeNonAdjacentForward,
		},
		{
			name:       "backward without reason",
			err:        &domain.TransitionError{Rule: domain.ErrReasonRequired, Kind: "CLIENT", From: "REFERRED", To: "LOST_IN_SPACE"},
			wantStatus: http.StatusUnprocessableEntity,
			wantCode:   domain.CodeReasonRequired,
		},
		{
			name:       "entity missing",
			err:        domain.ErrEntityNotFound,
			wantStatus: http.StatusNotFound,
			wantCode:   domain.CodeEntityNotFound,
		},
		{
			name:       "ledger failed after write",
			err:        &domain.ConsistencyError{Op: "change stage", Kind: "CLIENT", EntityID: "c-1", Err: errors.New("disk full")},
			wantStatus: http.StatusInternalServerError,
			wantCode:   domain.CodeConsistencyFailure,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			h, svc := newPipelineHandler(t)

			svc.EXPECT().ChangeStage(mock.Anything, pipeline.KindClient, mock.AnythingOfType("pipeline.StageChange")).
				Return(nil, tt.err)

			body := jsonBody(t, dto.ChangeStageRequest{ToStage: "LOST_IN_SPACE"})
			rec := httptest.NewRecorder()
			h.ChangeStage(rec, clientsReq(http.MethodPost, "/api/v1/clients/c-1/stage", body,
				map[string]string{"kind": "clients", "id": "c-1"}))

			requireStatus(t, rec, tt.wantStatus)
			resp := decodeJSON[dto.Problem](t, rec)
			if resp.Code != tt.wantCode {
				t.Errorf("Code = %q, want %q", resp.Code, tt.wantCode)
			}
		})
	}
}

func TestChangeStage_TransitionFieldsInBody(t *testing.T) {
	t.Parallel()
	h, svc := newPipelineHandler(t)

	svc.EXPECT().ChangeStage(mock.Anything, pipeline.KindClient, mock.AnythingOfType("pipeline.StageChange")).
		Return(nil, &domain.TransitionError{Rule: domain.ErrNonAdjacentForward, Kind: "CLIENT", From: "REFERRED", To: "CONTRACT_SENT"})

	body := jsonBody(t, dto.ChangeStageRequest{ToStage: "CONTRACT_SENT"})
	rec := httptest.NewRecorder()
	h.ChangeStage(rec, clientsReq(http.MethodPost, "/api/v1/clients/c-1/stage", body,
		map[string]string{"kind": "clients", "id": "c-1"}))

	resp := decodeJSON[dto.Problem](t, rec)
	if resp.FromStage != "REFERRED" || resp.ToStage != "CONTRACT_SENT" {
		t.Errorf("from/to = %q/%q, want REFERRED/CONTRACT_SENT", resp.FromStage, resp.ToStage)
	}
}

func TestChangeStage_MissingToStage(t *testing.T) {
	t.Parallel()
	h, _ := newPipelineHandler(t)

	rec := httptest.NewRecorder()
	h.ChangeStage(rec, clientsReq(http.MethodPost, "/api/v1/clients/c-1/stage", bytes.NewBufferString(`{}`),
		map[string]string{"kind": "clients", "id": "c-1"}))

	requireStatus(t, rec, http.StatusBadRequest)
}

// --- BulkChangeStage ---

func TestBulkChangeStage_PartialSuccess(t *testing.T) {
	t.Parallel()
	h, svc := newPipelineHandler(t)

	moved := validClient()
	moved.Stage = pipeline.StageContacted
	svc.EXPECT().BulkChangeStage(mock.Anything, pipeline.KindClient, []pipeline.StageChange{
		{EntityID: "c-1", To: pipeline.StageContacted},
		{EntityID: "c-2", To: pipeline.StageContractSent},
	}).Return(&ports.BulkStageResult{
		Moved: []pipeline.Entity{moved},
		Errors: []ports.BulkStageError{{
			EntityID: "c-2",
			Err:      &domain.TransitionError{Rule: domain.ErrNonAdjacentForward, Kind: "CLIENT", From: "REFERRED", To: "CONTRACT_SENT"},
		}},
	}, nil)

	body := bytes.NewBufferString(`{"changes":[{"entity_id":"c-1","to_stage":"CONTACTED"},{"entity_id":"c-2","to_stage":"CONTRACT_SENT"}]}`)
	rec := httptest.NewRecorder()
	h.BulkChangeStage(rec, clientsReq(http.MethodPost, "/api/v1/clients/stage:bulk", body, map[string]string{"kind": "clients"}))

	requireStatus(t, rec, http.StatusOK)
	resp := decodeJSON[dto.BulkChangeStageResponse](t, rec)
	if resp.Succeeded != 1 || resp.Failed != 1 {
		t.Errorf("Succeeded/Failed = %d/%d, want 1/1", resp.Succeeded, resp.Failed)
	}
	if len(resp.Errors) != 1 || resp.Errors[0].Code != domain.CodeNonAdjacentForward {
		t.Errorf("Errors = %+v", resp.Errors)
	}
}

func TestBulkChangeStage_EmptyList(t *testing.T) {
	t.Parallel()
	h, _ := newPipelineHandler(t)

	rec := httptest.NewRecorder()
	h.BulkChangeStage(rec, clientsReq(http.MethodPost, "/api/v1/clients/stage:bulk", bytes.NewBufferString(`{"changes":[]}`),
		map[string]string{"kind": "clients"}))

	requireStatus(t, rec, http.StatusBadRequest)
}

func TestBulkChangeStage_DuplicateIDs(t *testing.T) {
	t.Parallel()
	h, svc := newPipelineHandler(t)

	svc.EXPECT().BulkChangeStage(mock.Anything, pipeline.KindClient, mock.Anything).
		Return(nil, &domain.ValidationError{Fields: map[string]string{"changes[1].entity_id": "duplicate"}})

	body := bytes.NewBufferString(`{"changes":[{"entity_id":"c-1","to_stage":"CONTACTED"},{"entity_id":"c-1","to_stage":"CONTACTED"}]}`)
	rec := httptest.NewRecorder()
	h.BulkChangeStage(rec, clientsReq(http.MethodPost, "/api/v1/clients/stage:bulk", body, map[string]string{"kind": "clients"}))

	requireStatus(t, rec, http.StatusBadRequest)
}

// --- History and contacts ---

func TestListHistory_Success(t *testing.T) {
	t.Parallel()
	h, svc := newPipelineHandler(t)

	from := pipeline.StageReferred
	svc.EXPECT().ListHistory(mock.Anything, pipeline.KindClient, "c-1").Return([]pipeline.HistoryEntry{
		{ID: "h2", Kind: pipeline.KindClient, EntityID: "c-1", From: &from, To: pipeline.StageContacted, ChangedAt: testTime},
		{ID: "h1", Kind: pipeline.KindClient, EntityID: "c-1", To: pipeline.StageReferred, Reason: "Created", ChangedAt: testTime},
	}, nil)

	rec := httptest.NewRecorder()
	h.ListHistory(rec, clientsReq(http.MethodGet, "/api/v1/clients/c-1/history", nil,
		map[string]string{"kind": "clients", "id": "c-1"}))

	requireStatus(t, rec, http.StatusOK)
	resp := decodeJSON[dto.HistoryListResponse](t, rec)
	if resp.Count != 2 || resp.Items[0].ID != "h2" {
		t.Errorf("resp = %+v", resp)
	}
}

func TestListHistory_NotFound(t *testing.T) {
	t.Parallel()
	h, svc := newPipelineHandler(t)

	svc.EXPECT().ListHistory(mock.Anything, pipeline.KindClient, "nope").Return(nil, domain.ErrEntityNotFound)

	rec := httptest.NewRecorder()
	h.ListHistory(rec, clientsReq(http.MethodGet, "/api/v1/clients/nope/history", nil,
		map[string]string{"kind": "clients", "id": "nope"}))

	requireStatus(t, rec, http.StatusNotFound)
}

func TestAppendContact_Success(t *testing.T) {
	t.Parallel()
	h, svc := newPipelineHandler(t)

	sent := time.Date(2026, 2, 10, 14, 0, 0, 0, time.UTC)
	svc.EXPECT().AppendContactEvent(mock.Anything, mock.MatchedBy(func(ev pipeline.ContactEvent) bool {
		return ev.Kind == pipeline.KindReferralSource && ev.EntityID == "rs-1" && ev.SentAt.Equal(sent)
	})).Return(&pipeline.ContactEvent{
		ID: "ev-1", Kind: pipeline.KindReferralSource, EntityID: "rs-1",
		Direction: pipeline.DirectionOutbound, SentAt: sent, CreatedAt: testTime,
	}, nil)

	body := jsonBody(t, dto.ContactEventRequest{Direction: "OUTBOUND", Subject: "Intro", SentAt: "2026-02-10T09:00:00-05:00"})
	rec := httptest.NewRecorder()
	h.AppendContact(rec, clientsReq(http.MethodPost, "/api/v1/referral-sources/rs-1/contacts", body,
		map[string]string{"kind": "referral-sources", "id": "rs-1"}))

	requireStatus(t, rec, http.StatusCreated)
	resp := decodeJSON[dto.ContactEventResponse](t, rec)
	if resp.ID != "ev-1" {
		t.Errorf("ID = %q, want ev-1", resp.ID)
	}
}

func TestAppendContact_BadDirection(t *testing.T) {
	t.Parallel()
	h, _ := newPipelineHandler(t)

	body := jsonBody(t, dto.ContactEventRequest{Direction: "SIDEWAYS", SentAt: "2026-02-10T09:00:00Z"})
	rec := httptest.NewRecorder()
	h.AppendContact(rec, clientsReq(http.MethodPost, "/api/v1/clients/c-1/contacts", body,
		map[string]string{"kind": "clients", "id": "c-1"}))

	requireStatus(t, rec, http.StatusBadRequest)
}

func TestListContacts_Success(t *testing.T) {
	t.Parallel()
	h, svc := newPipelineHandler(t)

	svc.EXPECT().ListContactEvents(mock.Anything, pipeline.KindClient, "c-1").Return([]pipeline.ContactEvent{
		{ID: "ev-1", Kind: pipeline.KindClient, EntityID: "c-1", Direction: pipeline.DirectionInbound, SentAt: testTime, CreatedAt: testTime},
	}, nil)

	rec := httptest.NewRecorder()
	h.ListContacts(rec, clientsReq(http.MethodGet, "/api/v1/clients/c-1/contacts", nil,
		map[string]string{"kind": "clients", "id": "c-1"}))

	requireStatus(t, rec, http.StatusOK)
	resp := decodeJSON[dto.ContactEventListResponse](t, rec)
	if resp.Count != 1 {
		t.Errorf("Count = %d, want 1", resp.Count)
	}
}

// --- Referrals ---

func TestListReferrals_BySource(t *testing.T) {
	t.Parallel()
	h, svc := newPipelineHandler(t)

	svc.EXPECT().ListReferrals(mock.Anything, "rs-1").Return([]pipeline.Referral{
		{ID: "r-1", ReferralSourceID: "rs-1", ClientID: "c-1", ReferredAt: testTime, Status: pipeline.ReferralActive},
	}, nil)

	rec := httptest.NewRecorder()
	h.ListReferrals(rec, httptest.NewRequest(http.MethodGet, "/api/v1/referrals?referral_source_id=rs-1", nil))

	requireStatus(t, rec, http.StatusOK)
	resp := decodeJSON[dto.ReferralListResponse](t, rec)
	if resp.Count != 1 || resp.Items[0].ClientID != "c-1" {
		t.Errorf("resp = %+v", resp)
	}
}

func TestListReferrals_ServiceError(t *testing.T) {
	t.Parallel()
	h, svc := newPipelineHandler(t)

	svc.EXPECT().ListReferrals(mock.Anything, "").Return(nil, errors.New("db closed"))

	rec := httptest.NewRecorder()
	h.ListReferrals(rec, httptest.NewRequest(http.MethodGet, "/api/v1/referrals", nil))

	requireStatus(t, rec, http.StatusInternalServerError)
}
