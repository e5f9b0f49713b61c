package dto

import (
	"cmp"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"slices"

	"github.com/jsamuelsen11/referral-pipeline/internal/domain"
	"github.com/jsamuelsen11/referral-pipeline/internal/platform/logging"
)

// CodeRequestTimeout is the problem code written when the server abandons a
// request at its deadline. It has no domain sentinel.
const CodeRequestTimeout = "REQUEST_TIMEOUT"

const (
	problemType        = "about:blank"
	problemContentType = "application/problem+json"

	// internalDetail replaces the message of errors no domain code covers.
	internalDetail = "internal server error"
)

// Problem is an RFC 9457 problem body. Code is the stable machine-readable
// reason; clients match on it rather than on Detail.
type Problem struct {
	Type     string       `json:"type"`
	Title    string       `json:"title"`
	Status   int          `json:"status"`
	Detail   string       `json:"detail,omitempty"`
	Instance string       `json:"instance,omitempty"`
	Code     string       `json:"code"`
	Errors   []FieldError `json:"errors,omitempty"`

	// FromStage and ToStage identify a rejected stage move.
	FromStage string `json:"from_stage,omitempty"`
	ToStage   string `json:"to_stage,omitempty"`
}

// FieldError locates one validation failure, e.g. "body.email".
type FieldError struct {
	Location string `json:"location"`
	Message  string `json:"message"`
	Value    any    `json:"value,omitempty"`
}

// NewProblem describes err for the request r.
func NewProblem(r *http.Request, err error) Problem {
	code := domain.CodeOf(err)
	p := newStatusProblem(r, StatusFor(err), code, err.Error())
	if code == domain.CodeInternal {
		p.Detail = internalDetail
	}

	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		p.Errors = fieldErrors(verr.Fields)
	}
	var terr *domain.TransitionError
	if errors.As(err, &terr) {
		p.FromStage, p.ToStage = terr.From, terr.To
	}
	return p
}

// StatusFor maps a domain error to its HTTP status. Anything unrecognised
// is a 500, and so is a consistency failure whatever its cause.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrConsistency):
		return http.StatusInternalServerError
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrRuleViolation):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrUnavailable):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// WriteErrorResponse writes err as application/problem+json. Errors without
// a domain code are logged here since their detail is withheld.
func WriteErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	p := NewProblem(r, err)
	if p.Code == domain.CodeInternal {
		logging.FromContext(r.Context()).ErrorContext(r.Context(), "unhandled error",
			slog.Any("error", err),
			slog.String("path", r.URL.Path),
		)
	}
	writeProblem(w, r, p)
}

// WriteStatusProblem writes a problem that no domain error stands behind,
// such as a request timeout.
func WriteStatusProblem(w http.ResponseWriter, r *http.Request, status int, code, detail string) {
	writeProblem(w, r, newStatusProblem(r, status, code, detail))
}

func newStatusProblem(r *http.Request, status int, code, detail string) Problem {
	return Problem{
		Type:     problemType,
		Title:    http.StatusText(status),
		Status:   status,
		Detail:   detail,
		Instance: r.RequestURI,
		Code:     code,
	}
}

func writeProblem(w http.ResponseWriter, r *http.Request, p Problem) {
	w.Header().Set("Content-Type", problemContentType)
	w.WriteHeader(p.Status)
	if err := json.NewEncoder(w).Encode(p); err != nil {
		logging.FromContext(r.Context()).WarnContext(r.Context(), "writing problem body", slog.Any("error", err))
	}
}

func fieldErrors(fields map[string]string) []FieldError {
	out := make([]FieldError, 0, len(fields))
	for field, msg := range fields {
		out = append(out, FieldError{Location: "body." + field, Message: msg})
	}
	slices.SortFunc(out, func(a, b FieldError) int { return cmp.Compare(a.Location, b.Location) })
	return out
}
