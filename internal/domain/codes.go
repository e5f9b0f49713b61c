package domain

import "errors"

// Stable machine-readable error codes carried in API error bodies.
const (
	CodeValidationFailed       = "VALIDATION_FAILED"
	CodeUnknownStage           = "UNKNOWN_STAGE"
	CodeNoOpTransition         = "NO_OP_TRANSITION"
	CodeNonAdjacentForward     = "NON_ADJACENT_FORWARD"
	CodeReasonRequired         = "REASON_REQUIRED"
	CodeMissingCloseDate       = "MISSING_CLOSE_DATE"
	CodeEntityNotFound         = "ENTITY_NOT_FOUND"
	CodeReferralSourceNotFound = "REFERRAL_SOURCE_NOT_FOUND"
	CodeNotFound               = "NOT_FOUND"
	CodeConsistencyFailure     = "CONSISTENCY_FAILURE"
	CodeUpstreamUnavailable    = "UPSTREAM_UNAVAILABLE"
	CodeInternal               = "INTERNAL"
)

// codeTable is ordered from most to least specific.
var codeTable = []struct {
	code string
	err  error
}{
	{CodeConsistencyFailure, ErrConsistency},
	{CodeUnknownStage, ErrUnknownStage},
	{CodeNoOpTransition, ErrNoOpTransition},
	{CodeNonAdjacentForward, ErrNonAdjacentForward},
	{CodeReasonRequired, ErrReasonRequired},
	{CodeMissingCloseDate, ErrMissingCloseDate},
	{CodeReferralSourceNotFound, ErrReferralSourceNotFound},
	{CodeEntityNotFound, ErrEntityNotFound},
	{CodeNotFound, ErrNotFound},
	{CodeValidationFailed, ErrValidation},
	{CodeUpstreamUnavailable, ErrUnavailable},
}

// CodeOf returns the error code for err, or CodeInternal if err matches
// none of the domain sentinels.
func CodeOf(err error) string {
	for _, c := range codeTable {
		if errors.Is(err, c.err) {
			return c.code
		}
	}
	return CodeInternal
}

// ErrorForCode returns the sentinel a code stands for, or nil for unknown
// codes and CodeInternal.
func ErrorForCode(code string) error {
	for _, c := range codeTable {
		if c.code == code {
			return c.err
		}
	}
	return nil
}

// IsRuleSentinel reports whether err is one of the transition rule
// sentinels.
func IsRuleSentinel(err error) bool {
	switch err {
	case ErrUnknownStage, ErrNoOpTransition, ErrNonAdjacentForward, ErrReasonRequired, ErrMissingCloseDate:
		return true
	}
	return false
}
