package http_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/mock"

	adapthttp "github.com/jsamuelsen11/referral-pipeline/internal/adapters/http"
	"github.com/jsamuelsen11/referral-pipeline/internal/adapters/http/handlers"
	"github.com/jsamuelsen11/referral-pipeline/internal/domain/pipeline"
	"github.com/jsamuelsen11/referral-pipeline/internal/ports"
	"github.com/jsamuelsen11/referral-pipeline/mocks"
)

type testDeps struct {
	pipeline *mocks.MockPipelineService
	reports  *mocks.MockReportService
	registry *mocks.MockHealthRegistry
}

func newTestRouter(t *testing.T, middlewares ...func(http.Handler) http.Handler) (http.Handler, testDeps) {
	t.Helper()
	deps := testDeps{
		pipeline: mocks.NewMockPipelineService(t),
		reports:  mocks.NewMockReportService(t),
		registry: mocks.NewMockHealthRegistry(t),
	}

	router := adapthttp.NewRouter(
		handlers.NewPipelineHandler(deps.pipeline),
		handlers.NewReportHandler(deps.reports),
		handlers.NewHealthHandler(deps.registry),
		middlewares...,
	)
	return router, deps
}

func TestRouter_AllRoutesRegistered(t *testing.T) {
	t.Parallel()

	router, _ := newTestRouter(t)

	expectedRoutes := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/health/live"},
		{http.MethodGet, "/health/ready"},
		{http.MethodGet, "/api/health"},
		{http.MethodGet, "/api/v1/stages"},
		{http.MethodGet, "/api/v1/referrals"},
		{http.MethodGet, "/api/v1/reports/summary"},
		{http.MethodGet, "/api/v1/reports/dashboard"},
		{http.MethodGet, "/api/v1/{kind}"},
		{http.MethodPost, "/api/v1/{kind}"},
		{http.MethodPost, "/api/v1/{kind}/stage:bulk"},
		{http.MethodGet, "/api/v1/{kind}/{id}"},
		{http.MethodPatch, "/api/v1/{kind}/{id}"},
		{http.MethodPost, "/api/v1/{kind}/{id}/stage"},
		{http.MethodGet, "/api/v1/{kind}/{id}/history"},
		{http.MethodGet, "/api/v1/{kind}/{id}/contacts"},
		{http.MethodPost, "/api/v1/{kind}/{id}/contacts"},
	}

	chiRouter, ok := router.(*chi.Mux)
	if !ok {
		t.Fatal("router is not *chi.Mux")
	}

	registered := make(map[string]bool)
	err := chi.Walk(chiRouter, func(method, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		registered[method+" "+route] = true
		return nil
	})
	if err != nil {
		t.Fatalf("chi.Walk error: %v", err)
	}

	for _, expected := range expectedRoutes {
		key := expected.method + " " + expected.path
		if !registered[key] {
			t.Errorf("route %s not registered", key)
		}
	}
}

func TestRouter_MiddlewareApplied(t *testing.T) {
	t.Parallel()

	called := false
	testMW := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			called = true
			next.ServeHTTP(w, r)
		})
	}

	router, deps := newTestRouter(t, testMW)
	deps.registry.EXPECT().CheckAll(mock.Anything).Return(map[string]error{})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health/ready", nil)
	router.ServeHTTP(rec, req)

	if !called {
		t.Error("middleware was not called")
	}
}

func TestRouter_IntegrationListClients(t *testing.T) {
	t.Parallel()

	router, deps := newTestRouter(t)
	deps.pipeline.EXPECT().ListEntities(mock.Anything, pipeline.KindClient, pipeline.ListFilter{}).
		Return([]pipeline.Entity{}, nil)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/clients", nil)
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusOK)
	}
}

func TestRouter_BulkRouteBeatsEntityID(t *testing.T) {
	t.Parallel()

	router, deps := newTestRouter(t)
	deps.pipeline.EXPECT().BulkChangeStage(mock.Anything, pipeline.KindReferralSource, mock.Anything).
		Return(&ports.BulkStageResult{}, nil)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/referral-sources/stage:bulk",
		strings.NewReader(`{"changes":[{"entity_id":"rs-1","to_stage":"DOCS_SIGNED"}]}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want %d; body = %s", rec.Code, http.StatusOK, rec.Body.String())
	}
}

func TestRouter_UnknownCollectionReturns404(t *testing.T) {
	t.Parallel()

	router, _ := newTestRouter(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/widgets", nil)
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestRouter_NotFoundReturns404(t *testing.T) {
	t.Parallel()

	router, _ := newTestRouter(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/nonexistent", nil)
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestRouter_MethodNotAllowed(t *testing.T) {
	t.Parallel()

	router, _ := newTestRouter(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/api/v1/clients", nil)
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusMethodNotAllowed)
	}
}
