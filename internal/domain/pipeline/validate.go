package pipeline

import (
	"strings"

	"github.com/jsamuelsen11/referral-pipeline/internal/domain"
)

// Transition is a requested stage move together with the facts the rules
// depend on.
type Transition struct {
	From         Stage
	To           Stage
	Reason       string
	HasCloseDate bool
}

// Validate decides whether t is legal in p. It returns nil or a
// *domain.TransitionError naming the first rule that rejected the move:
//
//  1. To must be a stage of p (ErrUnknownStage).
//  2. To must differ from From (ErrNoOpTransition).
//  3. Forward moves advance exactly one stage (ErrNonAdjacentForward).
//  4. Backward moves, of any distance, need a non-blank reason (ErrReasonRequired).
//  5. Gated stages need an expected close date (ErrMissingCloseDate).
func Validate(p Pipeline, t Transition) error {
	toIdx, ok := p.Index(t.To)
	if !ok {
		return reject(p, t, domain.ErrUnknownStage)
	}

	// An unknown From sorts before the initial stage.
	fromIdx, ok := p.Index(t.From)
	if !ok {
		fromIdx = -1
	}

	switch {
	case toIdx == fromIdx:
		return reject(p, t, domain.ErrNoOpTransition)
	case toIdx > fromIdx:
		if toIdx-fromIdx != 1 {
			return reject(p, t, domain.ErrNonAdjacentForward)
		}
	default:
		if strings.TrimSpace(t.Reason) == "" {
			return reject(p, t, domain.ErrReasonRequired)
		}
	}

	if p.IsGated(t.To) && !t.HasCloseDate {
		return reject(p, t, domain.ErrMissingCloseDate)
	}

	return nil
}

// ValidateCloseDate applies the close-date gate to an entity sitting in
// current. Field updates use it so a gated client cannot lose its date.
func ValidateCloseDate(p Pipeline, current Stage, hasCloseDate bool) error {
	if p.IsGated(current) && !hasCloseDate {
		return &domain.TransitionError{
			Rule: domain.ErrMissingCloseDate,
			Kind: p.Kind().String(),
			From: string(current),
			To:   string(current),
		}
	}
	return nil
}

func reject(p Pipeline, t Transition, rule error) error {
	return &domain.TransitionError{
		Rule: rule,
		Kind: p.Kind().String(),
		From: string(t.From),
		To:   string(t.To),
	}
}
