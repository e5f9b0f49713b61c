// Package pipelineapi is the outbound adapter for the referral pipeline's
// own HTTP API. It translates between the API's JSON representation and
// domain types so tools such as pipelinectl can drive a running server
// through [ports.PipelineAPI]. Error responses are mapped back to domain
// errors by [TranslateHTTPError].
package pipelineapi

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/jsamuelsen11/referral-pipeline/internal/adapters/http/dto"
	"github.com/jsamuelsen11/referral-pipeline/internal/domain"
	"github.com/jsamuelsen11/referral-pipeline/internal/domain/pipeline"
	"github.com/jsamuelsen11/referral-pipeline/internal/domain/report"
	"github.com/jsamuelsen11/referral-pipeline/internal/platform/httpclient"
	"github.com/jsamuelsen11/referral-pipeline/internal/ports"
)

// Compile-time interface checks.
var (
	_ ports.PipelineAPI   = (*Client)(nil)
	_ ports.HealthChecker = (*Client)(nil)
)

const apiPrefix = "/api/v1"

// Client implements [ports.PipelineAPI] over HTTP. The underlying
// [httpclient.Client] provides circuit breaking, retry, rate limiting and
// tracing for every call.
type Client struct {
	req    *Requester
	logger *slog.Logger
}

// NewClient creates a Client that sends requests through the given
// [httpclient.Client]. The client's BaseURL should point to the server
// root (e.g. "http://localhost:8080").
func NewClient(client *httpclient.Client, logger *slog.Logger) *Client {
	return &Client{
		req:    NewRequester(client, logger),
		logger: logger,
	}
}

// ListEntities fetches GET /api/v1/{kind}, optionally filtered by stage.
func (c *Client) ListEntities(ctx context.Context, kind pipeline.Kind, filter pipeline.ListFilter) ([]pipeline.Entity, error) {
	path := collectionPath(kind)
	if filter.Stage != "" {
		path += "?" + url.Values{"stage": {filter.Stage.String()}}.Encode()
	}

	var resp dto.EntityListResponse
	if err := c.req.Do(ctx, http.MethodGet, path, http.StatusOK, nil, &resp); err != nil {
		return nil, err
	}
	return toEntityList(&resp)
}

// GetEntity fetches GET /api/v1/{kind}/{id}.
// Returns [domain.ErrEntityNotFound] if the server has no such entity.
func (c *Client) GetEntity(ctx context.Context, kind pipeline.Kind, id string) (*pipeline.Entity, error) {
	var resp dto.EntityResponse
	if err := c.req.Do(ctx, http.MethodGet, entityPath(kind, id), http.StatusOK, nil, &resp); err != nil {
		return nil, err
	}
	return entityOrError(&resp)
}

// CreateEntity sends POST /api/v1/{kind}.
func (c *Client) CreateEntity(ctx context.Context, kind pipeline.Kind, draft pipeline.Draft) (*pipeline.Entity, error) {
	var resp dto.EntityResponse
	if err := c.req.Do(ctx, http.MethodPost, collectionPath(kind), http.StatusCreated, toCreateRequest(draft), &resp); err != nil {
		return nil, err
	}
	return entityOrError(&resp)
}

// ChangeStage sends POST /api/v1/{kind}/{id}/stage. A rejected move comes
// back as a *domain.TransitionError with the rule, kind and stages filled
// in.
func (c *Client) ChangeStage(ctx context.Context, kind pipeline.Kind, change pipeline.StageChange) (*pipeline.Entity, error) {
	path := entityPath(kind, change.EntityID) + "/stage"

	var resp dto.EntityResponse
	if err := c.req.Do(ctx, http.MethodPost, path, http.StatusOK, toChangeStageRequest(change), &resp); err != nil {
		var terr *domain.TransitionError
		if errors.As(err, &terr) && terr.Kind == "" {
			terr.Kind = kind.String()
		}
		return nil, err
	}
	return entityOrError(&resp)
}

// ListHistory fetches GET /api/v1/{kind}/{id}/history, newest first.
func (c *Client) ListHistory(ctx context.Context, kind pipeline.Kind, id string) ([]pipeline.HistoryEntry, error) {
	var resp dto.HistoryListResponse
	if err := c.req.Do(ctx, http.MethodGet, entityPath(kind, id)+"/history", http.StatusOK, nil, &resp); err != nil {
		return nil, err
	}
	return toHistory(&resp)
}

// AppendContactEvent sends POST /api/v1/{kind}/{id}/contacts.
func (c *Client) AppendContactEvent(ctx context.Context, event pipeline.ContactEvent) (*pipeline.ContactEvent, error) {
	path := entityPath(event.Kind, event.EntityID) + "/contacts"

	var resp dto.ContactEventResponse
	if err := c.req.Do(ctx, http.MethodPost, path, http.StatusCreated, toContactRequest(event), &resp); err != nil {
		return nil, err
	}
	ev, err := toContactEvent(&resp)
	if err != nil {
		return nil, err
	}
	return &ev, nil
}

// Summary fetches GET /api/v1/reports/summary.
func (c *Client) Summary(ctx context.Context) (*report.Summary, error) {
	var resp dto.SummaryResponse
	if err := c.req.Do(ctx, http.MethodGet, apiPrefix+"/reports/summary", http.StatusOK, nil, &resp); err != nil {
		return nil, err
	}
	return toSummary(&resp), nil
}

// Dashboard fetches GET /api/v1/reports/dashboard. An empty month lets the
// server pick the current one.
func (c *Client) Dashboard(ctx context.Context, month string) (*report.Dashboard, error) {
	path := apiPrefix + "/reports/dashboard"
	if month != "" {
		path += "?" + url.Values{"month": {month}}.Encode()
	}

	var resp dto.DashboardResponse
	if err := c.req.Do(ctx, http.MethodGet, path, http.StatusOK, nil, &resp); err != nil {
		return nil, err
	}
	return toDashboard(&resp)
}

// Readiness fetches GET /health/ready. Both 200 and 503 carry a report;
// any other outcome is an error.
func (c *Client) Readiness(ctx context.Context) (*ports.Readiness, error) {
	var resp dto.ReadinessResponse
	accept := []int{http.StatusOK, http.StatusServiceUnavailable}
	if _, err := c.req.DoAccepting(ctx, http.MethodGet, "/health/ready", accept, nil, &resp); err != nil {
		return nil, err
	}
	return &ports.Readiness{Ready: resp.Ready(), Checks: resp.Checks}, nil
}

// Name returns the identifier used when this component is registered with
// a [ports.HealthRegistry].
func (c *Client) Name() string {
	return "pipeline-api"
}

// HealthCheck reports the server's availability from the circuit breaker
// state. No network call is made.
func (c *Client) HealthCheck(_ context.Context) error {
	switch state := c.req.CircuitBreakerState(); state {
	case "closed":
		return nil
	case "half-open":
		return errors.New("pipeline-api: degraded (circuit breaker half-open)")
	case "open":
		return errors.New("pipeline-api: failing (circuit breaker open)")
	default:
		return fmt.Errorf("pipeline-api: unknown circuit breaker state %q", state)
	}
}

func collectionPath(kind pipeline.Kind) string {
	return apiPrefix + "/" + kind.PathSegment()
}

func entityPath(kind pipeline.Kind, id string) string {
	return collectionPath(kind) + "/" + url.PathEscape(id)
}

func entityOrError(resp *dto.EntityResponse) (*pipeline.Entity, error) {
	e, err := toEntity(resp)
	if err != nil {
		return nil, err
	}
	return &e, nil
}
