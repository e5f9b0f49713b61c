package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/jsamuelsen11/referral-pipeline/internal/domain/pipeline"
)

var testTime = time.Date(2026, 2, 12, 15, 4, 5, 0, time.UTC)

func withChiParams(r *http.Request, params map[string]string) *http.Request {
	rctx := chi.NewRouteContext()
	for k, v := range params {
		rctx.URLParams.Add(k, v)
	}
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func validClient() pipeline.Entity {
	return pipeline.Entity{
		ID:               "c-1",
		Kind:             pipeline.KindClient,
		Name:             "Dana Reyes",
		Email:            "dana@example.com",
		Stage:            pipeline.StageReferred,
		DealSizeCents:    250000,
		ReferralSourceID: "rs-1",
		CreatedAt:        testTime,
		UpdatedAt:        testTime,
	}
}

func validReferralSource() pipeline.Entity {
	return pipeline.Entity{
		ID:        "rs-1",
		Kind:      pipeline.KindReferralSource,
		Name:      "Acme Advisors",
		Email:     "hello@acme.example",
		Stage:     pipeline.StageIntroScheduled,
		CreatedAt: testTime,
		UpdatedAt: testTime,
	}
}

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	buf := &bytes.Buffer{}
	if err := json.NewEncoder(buf).Encode(v); err != nil {
		t.Fatalf("failed to encode JSON body: %v", err)
	}
	return buf
}

func decodeJSON[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var result T
	if err := json.NewDecoder(rec.Body).Decode(&result); err != nil {
		t.Fatalf("failed to decode JSON response: %v", err)
	}
	return result
}

func requireStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Errorf("status = %d, want %d; body = %s", rec.Code, want, rec.Body.String())
	}
}
