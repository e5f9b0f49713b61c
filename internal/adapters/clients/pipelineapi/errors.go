package pipelineapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/jsamuelsen11/referral-pipeline/internal/domain"
)

// maxErrorBodySize limits how much of an error response body we read.
const maxErrorBodySize = 1 << 20 // 1 MB

// ErrServerFault marks a response where the server reached its handler and
// failed there. Unlike domain.ErrUnavailable, retrying later will not help.
var ErrServerFault = errors.New("server error")

// problemDetail is the subset of the server's RFC 9457 body the client
// needs to rebuild a domain error.
type problemDetail struct {
	Detail    string        `json:"detail"`
	Code      string        `json:"code"`
	FromStage string        `json:"from_stage"`
	ToStage   string        `json:"to_stage"`
	Errors    []errorDetail `json:"errors"`
}

type errorDetail struct {
	Location string `json:"location"`
	Message  string `json:"message"`
}

// TranslateHTTPError maps an HTTP error response back to the domain error
// the server started from.
//
// The problem body's code is authoritative: rule codes become a
// *domain.TransitionError carrying the rejected from/to stages, and
// VALIDATION_FAILED with field details becomes a *domain.ValidationError.
// Without a recognised code the status decides: 404 is ErrNotFound, 400 is
// ErrValidation, 422 is ErrRuleViolation, 502/503/504 are ErrUnavailable and
// any other 5xx (including an INTERNAL problem) is ErrServerFault.
func TranslateHTTPError(resp *http.Response) error {
	pd := parseProblemDetail(resp)

	detail := pd.Detail
	if detail == "" {
		detail = http.StatusText(resp.StatusCode)
	}

	if sentinel := domain.ErrorForCode(pd.Code); sentinel != nil {
		switch {
		case domain.IsRuleSentinel(sentinel):
			return &domain.TransitionError{Rule: sentinel, From: pd.FromStage, To: pd.ToStage}
		case sentinel == domain.ErrValidation && len(pd.Errors) > 0:
			return toValidationError(pd.Errors)
		default:
			return fmt.Errorf("%s: %w", detail, sentinel)
		}
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%s: %w", detail, domain.ErrNotFound)

	case resp.StatusCode == http.StatusBadRequest:
		if len(pd.Errors) > 0 {
			return toValidationError(pd.Errors)
		}
		return fmt.Errorf("%s: %w", detail, domain.ErrValidation)

	case resp.StatusCode == http.StatusUnprocessableEntity:
		return fmt.Errorf("%s: %w", detail, domain.ErrRuleViolation)

	case resp.StatusCode == http.StatusBadGateway,
		resp.StatusCode == http.StatusServiceUnavailable,
		resp.StatusCode == http.StatusGatewayTimeout:
		return fmt.Errorf("%s: %w", detail, domain.ErrUnavailable)

	case resp.StatusCode >= http.StatusInternalServerError:
		return fmt.Errorf("%s: %w", detail, ErrServerFault)

	default:
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, detail)
	}
}

// parseProblemDetail reads an RFC 9457 body from the response. Returns an
// empty problemDetail if the content type is wrong or parsing fails.
func parseProblemDetail(resp *http.Response) problemDetail {
	if resp.Body == nil {
		return problemDetail{}
	}

	ct := resp.Header.Get("Content-Type")
	if !strings.HasPrefix(ct, "application/problem+json") {
		return problemDetail{}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodySize))
	if err != nil {
		return problemDetail{}
	}

	var pd problemDetail
	if err := json.Unmarshal(body, &pd); err != nil {
		return problemDetail{}
	}
	return pd
}

// toValidationError converts field details to a domain ValidationError,
// stripping the "body." prefix from locations.
func toValidationError(details []errorDetail) *domain.ValidationError {
	fields := make(map[string]string, len(details))
	for _, d := range details {
		field := strings.TrimPrefix(d.Location, "body.")
		fields[field] = d.Message
	}
	return &domain.ValidationError{Fields: fields}
}
