package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/jsamuelsen11/referral-pipeline/internal/adapters/http/dto"
	"github.com/jsamuelsen11/referral-pipeline/internal/domain"
	"github.com/jsamuelsen11/referral-pipeline/internal/domain/pipeline"
	"github.com/jsamuelsen11/referral-pipeline/internal/platform/logging"
)

// parseKind resolves the {kind} path segment. Unknown kinds are reported
// as not found.
func parseKind(r *http.Request) (pipeline.Kind, error) {
	raw := chi.URLParam(r, "kind")
	k, err := pipeline.ParseKind(raw)
	if err != nil || k.PathSegment() != raw {
		return 0, fmt.Errorf("collection %q: %w", raw, domain.ErrNotFound)
	}
	return k, nil
}

// parseID extracts a non-empty string path parameter.
func parseID(r *http.Request, param string) (string, error) {
	id := strings.TrimSpace(chi.URLParam(r, param))
	if id == "" {
		return "", &domain.ValidationError{
			Fields: map[string]string{param: domain.MsgRequired},
		}
	}
	return id, nil
}

// parseKindAndID resolves both {kind} and {id}.
func parseKindAndID(r *http.Request) (pipeline.Kind, string, error) {
	kind, err := parseKind(r)
	if err != nil {
		return 0, "", err
	}
	id, err := parseID(r, "id")
	if err != nil {
		return 0, "", err
	}
	return kind, id, nil
}

// writeJSON writes v with the given status. An encoding failure after the
// header is sent can only be logged.
func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.FromContext(r.Context()).WarnContext(r.Context(), "encoding response failed",
			slog.Int("status", status),
			slog.Any("error", err),
		)
	}
}

// maxJSONBodyBytes caps request bodies at 1 MiB.
const maxJSONBodyBytes = 1 << 20

// decodeJSONBody decodes the body into dst. A malformed or oversized body
// is answered with a VALIDATION problem on the "body" field and false.
func decodeJSONBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBodyBytes)
	err := json.NewDecoder(r.Body).Decode(dst)
	if err == nil {
		return true
	}

	msg := "invalid JSON"
	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge):
		msg = fmt.Sprintf("must not exceed %d bytes", tooLarge.Limit)
	case errors.Is(err, io.EOF):
		msg = domain.MsgRequired
	}
	dto.WriteErrorResponse(w, r, &domain.ValidationError{
		Fields: map[string]string{"body": msg},
	})
	return false
}

type validatable interface {
	Validate() error
}

// decodeAndValidate decodes the body into dst and runs its Validate. Either
// failure is written as a problem response and reported as false.
func decodeAndValidate[T validatable](w http.ResponseWriter, r *http.Request, dst T) bool {
	if !decodeJSONBody(w, r, dst) {
		return false
	}
	if err := dst.Validate(); err != nil {
		dto.WriteErrorResponse(w, r, err)
		return false
	}
	return true
}
