package pipelineapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"slices"

	"github.com/jsamuelsen11/referral-pipeline/internal/domain"
	"github.com/jsamuelsen11/referral-pipeline/internal/platform/httpclient"
)

// Requester runs one API call end to end: it builds the request from a
// path relative to the server root, sends it through httpclient, checks the
// status, decodes the JSON body and turns failures into domain errors.
type Requester struct {
	client *httpclient.Client
	logger *slog.Logger
}

// NewRequester creates a Requester sending through client.
func NewRequester(client *httpclient.Client, logger *slog.Logger) *Requester {
	return &Requester{client: client, logger: logger}
}

// Do sends reqBody as JSON (when non-nil) and decodes the response into
// respBody (when non-nil). Any status other than wantStatus is passed to
// TranslateHTTPError.
func (r *Requester) Do(ctx context.Context, method, path string, wantStatus int, reqBody, respBody any) error {
	_, err := r.DoAccepting(ctx, method, path, []int{wantStatus}, reqBody, respBody)
	return err
}

// DoAccepting is Do for endpoints with more than one successful status, such
// as a readiness probe answering 200 or 503. It returns the status received.
func (r *Requester) DoAccepting(ctx context.Context, method, path string, accept []int, reqBody, respBody any) (int, error) {
	req, err := r.newRequest(ctx, method, path, reqBody)
	if err != nil {
		return 0, err
	}
	return r.execute(req, accept, respBody)
}

// CircuitBreakerState reports the underlying client's breaker state.
func (r *Requester) CircuitBreakerState() string {
	return r.client.CircuitBreakerState()
}

func (r *Requester) newRequest(ctx context.Context, method, path string, reqBody any) (*http.Request, error) {
	target, err := r.client.Resolve(path)
	if err != nil {
		return nil, err
	}

	if reqBody == nil {
		req, err := http.NewRequestWithContext(ctx, method, target, http.NoBody)
		if err != nil {
			return nil, fmt.Errorf("creating %s request for %s: %w", method, path, err)
		}
		return req, nil
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshaling %s body for %s: %w", method, path, err)
	}
	req, err := http.NewRequestWithContext(ctx, method, target, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating %s request for %s: %w", method, path, err)
	}
	req.Header.Set("Content-Type", "application/json")
	return req, nil
}

func (r *Requester) closeBody(ctx context.Context, resp *http.Response) {
	if err := resp.Body.Close(); err != nil {
		r.logger.WarnContext(ctx, "closing response body failed", slog.Any("error", err))
	}
}

// execute sends req and always closes the response body. When httpclient
// gives up on a retryable status it returns the last response as well as an
// error; that response is judged like any other so an accepted 503 or the
// server's problem body wins over the retry error.
func (r *Requester) execute(req *http.Request, accept []int, respBody any) (int, error) {
	ctx := req.Context()

	resp, err := r.client.Do(ctx, req)
	if resp == nil {
		r.logger.ErrorContext(ctx, "request failed",
			slog.String("method", req.Method),
			slog.String("path", req.URL.Path),
			slog.Any("error", err),
		)
		if errors.Is(err, httpclient.ErrUnavailable) {
			return 0, fmt.Errorf("%s %s: %w: %w", req.Method, req.URL.Path, domain.ErrUnavailable, err)
		}
		return 0, fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, err)
	}
	defer r.closeBody(ctx, resp)

	if !slices.Contains(accept, resp.StatusCode) {
		r.logger.WarnContext(ctx, "unexpected status",
			slog.String("method", req.Method),
			slog.String("path", req.URL.Path),
			slog.Int("status", resp.StatusCode),
			slog.Any("accept", accept),
		)
		return resp.StatusCode, TranslateHTTPError(resp)
	}

	if respBody != nil {
		if err := json.NewDecoder(resp.Body).Decode(respBody); err != nil {
			return resp.StatusCode, fmt.Errorf("decoding response from %s %s: %w", req.Method, req.URL.Path, err)
		}
	}
	return resp.StatusCode, nil
}
