package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/jsamuelsen11/referral-pipeline/internal/adapters/http/middleware"
)

func serveIDs(t *testing.T, reqID, corrID string) (gotReq, gotCorr string, rec *httptest.ResponseRecorder) {
	t.Helper()

	handler := middleware.RequestID()(middleware.CorrelationID()(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		gotReq = middleware.RequestIDFromContext(r.Context())
		gotCorr = middleware.CorrelationIDFromContext(r.Context())
	})))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/clients", http.NoBody)
	if reqID != "" {
		req.Header.Set("X-Request-ID", reqID)
	}
	if corrID != "" {
		req.Header.Set("X-Correlation-ID", corrID)
	}
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return gotReq, gotCorr, rec
}

func TestRequestID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		inbound  string
		wantKeep bool
	}{
		{name: "absent", inbound: ""},
		{name: "kept", inbound: "crm-sync-0042", wantKeep: true},
		{name: "contains space", inbound: "two words"},
		{name: "control character", inbound: "id\x00"},
		{name: "too long", inbound: strings.Repeat("a", 129)},
		{name: "max length kept", inbound: strings.Repeat("a", 128), wantKeep: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, _, rec := serveIDs(t, tt.inbound, "")

			if tt.wantKeep {
				if got != tt.inbound {
					t.Errorf("request ID = %q, want inbound %q", got, tt.inbound)
				}
			} else if _, err := uuid.Parse(got); err != nil {
				t.Errorf("request ID = %q, want a generated UUID", got)
			}
			if rec.Header().Get("X-Request-ID") != got {
				t.Errorf("response X-Request-ID = %q, want %q", rec.Header().Get("X-Request-ID"), got)
			}
		})
	}
}

func TestRequestID_Unique(t *testing.T) {
	t.Parallel()

	seen := make(map[string]bool)
	for range 50 {
		id, _, _ := serveIDs(t, "", "")
		seen[id] = true
	}
	if len(seen) != 50 {
		t.Errorf("unique IDs = %d, want 50", len(seen))
	}
}

func TestCorrelationID(t *testing.T) {
	t.Parallel()

	t.Run("inbound kept", func(t *testing.T) {
		t.Parallel()
		_, corr, rec := serveIDs(t, "req-1", "corr-1")
		if corr != "corr-1" || rec.Header().Get("X-Correlation-ID") != "corr-1" {
			t.Errorf("correlation ID = %q, header %q; want corr-1", corr, rec.Header().Get("X-Correlation-ID"))
		}
	})

	t.Run("falls back to request ID", func(t *testing.T) {
		t.Parallel()
		req, corr, _ := serveIDs(t, "req-2", "")
		if corr != req {
			t.Errorf("correlation ID = %q, want request ID %q", corr, req)
		}
	})

	t.Run("unusable inbound replaced", func(t *testing.T) {
		t.Parallel()
		req, corr, _ := serveIDs(t, "req-3", "bad id")
		if corr != req {
			t.Errorf("correlation ID = %q, want request ID %q", corr, req)
		}
	})
}

func TestIDsFromEmptyContext(t *testing.T) {
	t.Parallel()

	if got := middleware.RequestIDFromContext(context.Background()); got != "" {
		t.Errorf("RequestIDFromContext = %q, want empty", got)
	}
	if got := middleware.CorrelationIDFromContext(context.Background()); got != "" {
		t.Errorf("CorrelationIDFromContext = %q, want empty", got)
	}

	ctx := middleware.WithCorrelationID(middleware.WithRequestID(context.Background(), "r"), "c")
	if middleware.RequestIDFromContext(ctx) != "r" || middleware.CorrelationIDFromContext(ctx) != "c" {
		t.Error("With* did not store the IDs")
	}
}
