package logging_test

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/jsamuelsen11/referral-pipeline/internal/platform/logging"
)

func TestNew_LevelFiltering(t *testing.T) {
	t.Parallel()

	tests := []struct {
		level    string
		logAt    slog.Level
		wantLine bool
	}{
		{level: "debug", logAt: slog.LevelDebug, wantLine: true},
		{level: "DEBUG", logAt: slog.LevelDebug, wantLine: true},
		{level: "info", logAt: slog.LevelDebug, wantLine: false},
		{level: "info", logAt: slog.LevelInfo, wantLine: true},
		{level: "warn", logAt: slog.LevelInfo, wantLine: false},
		{level: "error", logAt: slog.LevelWarn, wantLine: false},
		{level: "error", logAt: slog.LevelError, wantLine: true},
		{level: "verbose", logAt: slog.LevelDebug, wantLine: false},
		{level: "verbose", logAt: slog.LevelInfo, wantLine: true},
	}

	for _, tt := range tests {
		t.Run(tt.level+"/"+tt.logAt.String(), func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			logging.New(tt.level, "json", &buf).Log(context.Background(), tt.logAt, "stage changed")

			if got := buf.Len() > 0; got != tt.wantLine {
				t.Errorf("line written = %v, want %v: %q", got, tt.wantLine, buf.String())
			}
		})
	}
}

func TestNew_Format(t *testing.T) {
	t.Parallel()

	tests := []struct {
		format string
		want   string
	}{
		{format: "json", want: `"level":"INFO"`},
		{format: "text", want: "level=INFO"},
		{format: "xml", want: `"level":"INFO"`},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			logging.New("info", tt.format, &buf).Info("referral created")

			out := buf.String()
			if !strings.Contains(out, tt.want) || !strings.Contains(out, "referral created") {
				t.Errorf("output = %q, want %q and the message", out, tt.want)
			}
		})
	}
}

func TestNew_SourceOnlyAtDebug(t *testing.T) {
	t.Parallel()

	for level, want := range map[string]bool{"debug": true, "info": false} {
		var buf bytes.Buffer
		logging.New(level, "json", &buf).Error("x")

		if got := strings.Contains(buf.String(), `"source"`); got != want {
			t.Errorf("level %s: source present = %v, want %v", level, got, want)
		}
	}
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    slog.Level
		wantErr bool
	}{
		{in: "debug", want: slog.LevelDebug},
		{in: " Warn ", want: slog.LevelWarn},
		{in: "ERROR", want: slog.LevelError},
		{in: "info", want: slog.LevelInfo},
		{in: "trace", want: slog.LevelInfo, wantErr: true},
		{in: "", want: slog.LevelInfo, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()

			got, err := logging.ParseLevel(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseLevel(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestFromContext(t *testing.T) {
	t.Parallel()

	if logging.FromContext(context.Background()) != slog.Default() {
		t.Error("FromContext(bare) is not slog.Default()")
	}

	first := logging.New("info", "json", &bytes.Buffer{})
	second := first.With(slog.String("request_id", "r-1"))

	ctx := logging.WithLogger(context.Background(), first)
	if logging.FromContext(ctx) != first {
		t.Error("FromContext did not return the stored logger")
	}
	if logging.FromContext(logging.WithLogger(ctx, second)) != second {
		t.Error("FromContext did not return the innermost logger")
	}
}

func TestIsSensitiveHeader(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"Authorization", "proxy-authorization", "X-Api-Key", "Cookie", "Set-Cookie"} {
		if !logging.IsSensitiveHeader(name) {
			t.Errorf("IsSensitiveHeader(%q) = false, want true", name)
		}
	}
	for _, name := range []string{"Content-Type", "X-Request-ID", "Traceparent"} {
		if logging.IsSensitiveHeader(name) {
			t.Errorf("IsSensitiveHeader(%q) = true, want false", name)
		}
	}
}

func TestNew_Redaction(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		attr slog.Attr
		raw  string
	}{
		{name: "authorization", attr: slog.String("authorization", "Bearer supersecret-token"), raw: "supersecret-token"},
		{name: "set-cookie", attr: slog.String("set-cookie", "session=abc123"), raw: "abc123"},
		{name: "password", attr: slog.String("password", "hunter2"), raw: "hunter2"},
		{name: "secret prefix", attr: slog.String("secret_key", "s3cr3t"), raw: "s3cr3t"},
		{name: "bearer in free text", attr: slog.String("raw_header", "Bearer eyJhbGciOiJSUzI1NiJ9"), raw: "eyJhbGciOiJSUzI1NiJ9"},
		{name: "inline api key", attr: slog.String("error", "upstream rejected api_key=k-998877"), raw: "k-998877"},
		{name: "email", attr: slog.String("email", "dana@example.com"), raw: "dana@example.com"},
		{name: "from_email", attr: slog.String("from_email", "ops@acme.example"), raw: "ops@acme.example"},
		{name: "phone", attr: slog.String("phone", "+1 555 0100"), raw: "555 0100"},
		{name: "address in free text", attr: slog.String("error", "duplicate contact lee@example.org"), raw: "lee@example.org"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			logging.New("info", "json", &buf).Info("contact", tt.attr)

			out := buf.String()
			if strings.Contains(out, tt.raw) {
				t.Errorf("output contains %q, want it redacted: %s", tt.raw, out)
			}
			if !strings.Contains(out, "[REDACTED]") {
				t.Errorf("output missing [REDACTED] marker: %s", out)
			}
		})
	}
}

func TestNew_KeepsOrdinaryFields(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logging.New("info", "json", &buf).Info("moved",
		slog.String("entity_id", "c-123"),
		slog.String("route", "/api/v1/clients/{id}/stage"),
		slog.String("to_stage", "CONTRACT_SENT"),
	)

	out := buf.String()
	for _, want := range []string{"c-123", "/api/v1/clients/{id}/stage", "CONTRACT_SENT"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q: %s", want, out)
		}
	}
}

func TestNew_RedactsEntityStructFields(t *testing.T) {
	t.Parallel()

	type contact struct {
		ID    string
		Email string
		Phone string
	}

	var buf bytes.Buffer
	logging.New("info", "json", &buf).Info("created", slog.Any("entity", contact{ID: "c-1", Email: "dana@example.com", Phone: "555-0100"}))

	out := buf.String()
	if strings.Contains(out, "dana@example.com") || strings.Contains(out, "555-0100") {
		t.Errorf("output leaks contact fields: %s", out)
	}
	if !strings.Contains(out, "c-1") {
		t.Errorf("output missing ID: %s", out)
	}
}
