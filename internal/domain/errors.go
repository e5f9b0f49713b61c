package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Sentinel errors for errors.Is() checking.
var (
	ErrNotFound      = errors.New("not found")
	ErrValidation    = errors.New("validation error")
	ErrRuleViolation = errors.New("rule violation")
	ErrConsistency   = errors.New("consistency failure")
	ErrUnavailable   = errors.New("unavailable")
)

// Not-found errors distinguish which identifier failed to resolve. Both
// match ErrNotFound through errors.Is.
var (
	ErrEntityNotFound         = fmt.Errorf("entity %w", ErrNotFound)
	ErrReferralSourceNotFound = fmt.Errorf("referral source %w", ErrNotFound)
)

// Transition rule sentinels. A *TransitionError matches exactly one of these
// plus its category (ErrValidation for ErrUnknownStage, ErrRuleViolation
// for the rest).
var (
	ErrUnknownStage       = errors.New("unknown stage")
	ErrNoOpTransition     = errors.New("stage unchanged")
	ErrNonAdjacentForward = errors.New("forward moves must advance exactly one stage")
	ErrReasonRequired     = errors.New("backward moves require a reason")
	ErrMissingCloseDate   = errors.New("expected close date is required for this stage")
)

// ValidationError provides programmatic access to field-level validation failures.
// Use errors.Is(err, ErrValidation) for simple checks, or errors.As(err, &verr) to
// access verr.Fields for per-field error details.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for field := range e.Fields {
		keys = append(keys, field)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, field := range keys {
		parts = append(parts, field+": "+e.Fields[field])
	}
	return fmt.Sprintf("%s: %s", ErrValidation.Error(), strings.Join(parts, "; "))
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// TransitionError reports a rejected stage move. Rule is one of the rule
// sentinels above; Kind, From and To identify the attempted move so callers
// can correct the request.
type TransitionError struct {
	Rule error
	Kind string
	From string
	To   string
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("%s transition %s -> %s rejected: %v", e.Kind, e.From, e.To, e.Rule)
}

// Unwrap exposes both the rule sentinel and its category.
func (e *TransitionError) Unwrap() []error {
	if errors.Is(e.Rule, ErrUnknownStage) {
		return []error{e.Rule, ErrValidation}
	}
	return []error{e.Rule, ErrRuleViolation}
}

// ConsistencyError is returned when an entity write succeeded but the
// follow-up ledger write did not, on storage that cannot apply both
// atomically. The operation must not be treated as complete.
type ConsistencyError struct {
	Op       string
	Kind     string
	EntityID string
	Err      error
}

func (e *ConsistencyError) Error() string {
	return fmt.Sprintf("%s: %s %s %s: %v", ErrConsistency.Error(), e.Op, e.Kind, e.EntityID, e.Err)
}

func (e *ConsistencyError) Unwrap() []error {
	return []error{ErrConsistency, e.Err}
}
