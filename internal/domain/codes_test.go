package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestCodeOf(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "validation", err: &ValidationError{Fields: map[string]string{"name": MsgRequired}}, want: CodeValidationFailed},
		{name: "unknown stage", err: &TransitionError{Rule: ErrUnknownStage}, want: CodeUnknownStage},
		{name: "no-op", err: &TransitionError{Rule: ErrNoOpTransition}, want: CodeNoOpTransition},
		{name: "non-adjacent", err: &TransitionError{Rule: ErrNonAdjacentForward}, want: CodeNonAdjacentForward},
		{name: "reason", err: &TransitionError{Rule: ErrReasonRequired}, want: CodeReasonRequired},
		{name: "close date", err: &TransitionError{Rule: ErrMissingCloseDate}, want: CodeMissingCloseDate},
		{name: "entity not found", err: fmt.Errorf("get: %w", ErrEntityNotFound), want: CodeEntityNotFound},
		{name: "referral source not found", err: ErrReferralSourceNotFound, want: CodeReferralSourceNotFound},
		{name: "bare not found", err: ErrNotFound, want: CodeNotFound},
		{name: "consistency", err: &ConsistencyError{Op: "ChangeStage", Err: errors.New("disk full")}, want: CodeConsistencyFailure},
		{name: "consistency wrapping not found", err: &ConsistencyError{Op: "ChangeStage", Err: ErrEntityNotFound}, want: CodeConsistencyFailure},
		{name: "unavailable", err: fmt.Errorf("calling api: %w", ErrUnavailable), want: CodeUpstreamUnavailable},
		{name: "unknown", err: errors.New("boom"), want: CodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := CodeOf(tt.err); got != tt.want {
				t.Errorf("CodeOf() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestErrorForCode_RoundTrip(t *testing.T) {
	t.Parallel()

	for _, c := range codeTable {
		got := ErrorForCode(c.code)
		if !errors.Is(got, c.err) {
			t.Errorf("ErrorForCode(%q) = %v, want %v", c.code, got, c.err)
		}
		if CodeOf(got) != c.code {
			t.Errorf("CodeOf(ErrorForCode(%q)) = %q", c.code, CodeOf(got))
		}
	}

	if got := ErrorForCode(CodeInternal); got != nil {
		t.Errorf("ErrorForCode(INTERNAL) = %v, want nil", got)
	}
	if got := ErrorForCode("NOPE"); got != nil {
		t.Errorf("ErrorForCode(NOPE) = %v, want nil", got)
	}
}

func TestIsRuleSentinel(t *testing.T) {
	t.Parallel()

	if !IsRuleSentinel(ErrReasonRequired) {
		t.Error("IsRuleSentinel(ErrReasonRequired) = false")
	}
	if IsRuleSentinel(ErrValidation) {
		t.Error("IsRuleSentinel(ErrValidation) = true")
	}
}
