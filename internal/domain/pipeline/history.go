package pipeline

import (
	"fmt"
	"strings"
	"time"

	"github.com/jsamuelsen11/referral-pipeline/internal/domain"
)

// Reasons recorded on creation entries.
const (
	ReasonCreated             = "Created"
	ReasonCreatedFromReferral = "Created from referral"
	ReasonCreatedNoReferral   = "Created with no referral source"
)

// HistoryEntry is one immutable ledger record. From is nil only for the
// creation entry.
type HistoryEntry struct {
	ID        string
	Kind      Kind
	EntityID  string
	From      *Stage
	To        Stage
	Reason    string
	ActorID   string
	ChangedAt time.Time
}

// IsCreation reports whether the entry records the entity's creation.
func (h HistoryEntry) IsCreation() bool {
	return h.From == nil
}

// CreationEntry builds the ledger record for a newly created entity.
func CreationEntry(id string, e *Entity, reason string) HistoryEntry {
	return HistoryEntry{
		ID:        id,
		Kind:      e.Kind,
		EntityID:  e.ID,
		To:        e.Stage,
		Reason:    reason,
		ChangedAt: e.CreatedAt,
	}
}

// StageChange is a request to move one entity.
type StageChange struct {
	EntityID          string
	To                Stage
	Reason            string
	ActorID           string
	ExpectedCloseDate *time.Time
}

// Normalize trims the free-text fields and reduces the close date to its
// UTC calendar date.
func (c *StageChange) Normalize() {
	c.EntityID = strings.TrimSpace(c.EntityID)
	c.To = Stage(strings.TrimSpace(string(c.To)))
	c.Reason = strings.TrimSpace(c.Reason)
	c.ActorID = strings.TrimSpace(c.ActorID)
	c.ExpectedCloseDate = truncateDate(c.ExpectedCloseDate)
}

// Validate checks the request is well formed before any rules run.
func (c *StageChange) Validate() error {
	fields := make(map[string]string)
	if c.EntityID == "" {
		fields["entity_id"] = domain.MsgRequired
	}
	if c.To == "" {
		fields["to_stage"] = domain.MsgRequired
	}
	if len(fields) > 0 {
		return &domain.ValidationError{Fields: fields}
	}
	return nil
}

// TransitionEntry builds the ledger record for an approved move.
func TransitionEntry(id string, kind Kind, from Stage, c StageChange, at time.Time) HistoryEntry {
	f := from
	return HistoryEntry{
		ID:        id,
		Kind:      kind,
		EntityID:  c.EntityID,
		From:      &f,
		To:        c.To,
		Reason:    c.Reason,
		ActorID:   c.ActorID,
		ChangedAt: at,
	}
}

// String renders the entry for logs and CLI output, e.g.
// "CLIENT 42: REFERRED -> CONTACTED".
func (h HistoryEntry) String() string {
	from := "(new)"
	if h.From != nil {
		from = string(*h.From)
	}
	return fmt.Sprintf("%s %s: %s -> %s", h.Kind, h.EntityID, from, h.To)
}
