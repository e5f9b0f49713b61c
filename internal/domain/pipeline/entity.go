package pipeline

import (
	"fmt"
	"strings"
	"time"

	"github.com/jsamuelsen11/referral-pipeline/internal/domain"
)

// DateLayout is the wire and storage format of expected close dates.
const DateLayout = "2006-01-02"

// Entity is a referral source or a client. The client-only fields
// (DealSizeCents, ExpectedCloseDate, ReferralSourceID) stay zero for
// referral sources.
type Entity struct {
	ID            string
	Kind          Kind
	Name          string
	Email         string
	Phone         string
	BusinessName  string
	Stage         Stage
	Notes         string
	LastContactAt *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time

	DealSizeCents     int64
	ExpectedCloseDate *time.Time
	ReferralSourceID  string
}

// HasCloseDate reports whether the expected close date is set.
func (e *Entity) HasCloseDate() bool {
	return e.ExpectedCloseDate != nil
}

// Validate checks the fields every entity must carry.
// Returns a *domain.ValidationError with per-field details, or nil.
func (e *Entity) Validate() error {
	fields := make(map[string]string)

	if strings.TrimSpace(e.Name) == "" {
		fields["name"] = domain.MsgRequired
	}
	if strings.TrimSpace(e.Email) == "" {
		fields["email"] = domain.MsgRequired
	}
	if e.DealSizeCents < 0 {
		fields["deal_size_cents"] = fmt.Sprintf("must not be negative, got %d", e.DealSizeCents)
	}

	if len(fields) > 0 {
		return &domain.ValidationError{Fields: fields}
	}
	return nil
}

// Draft carries the caller-supplied fields of a new entity.
type Draft struct {
	Name              string
	Email             string
	Phone             string
	BusinessName      string
	Notes             string
	DealSizeCents     int64
	ExpectedCloseDate *time.Time
	ReferralSourceID  string
}

// NewEntity builds an entity of kind k in the pipeline's initial stage.
// Strings are trimmed and negative deal sizes clamp to zero. Client-only
// fields are dropped for referral sources.
func NewEntity(p Pipeline, id string, d Draft, now time.Time) *Entity {
	e := &Entity{
		ID:           id,
		Kind:         p.Kind(),
		Name:         strings.TrimSpace(d.Name),
		Email:        strings.TrimSpace(d.Email),
		Phone:        strings.TrimSpace(d.Phone),
		BusinessName: strings.TrimSpace(d.BusinessName),
		Notes:        strings.TrimSpace(d.Notes),
		Stage:        p.Initial(),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if p.Kind() == KindClient {
		e.DealSizeCents = max(0, d.DealSizeCents)
		e.ExpectedCloseDate = truncateDate(d.ExpectedCloseDate)
		e.ReferralSourceID = strings.TrimSpace(d.ReferralSourceID)
	}
	return e
}

// DateChange is a tri-state edit of a nullable date: leave it, set it, or
// clear it.
type DateChange struct {
	Set   bool
	Value *time.Time
}

// SetDate returns a DateChange that sets (or, for nil, clears) the date.
func SetDate(t *time.Time) DateChange {
	return DateChange{Set: true, Value: t}
}

// Patch is a partial update of the non-stage fields. A nil pointer leaves
// the field unchanged. For optional text fields an empty string clears the
// value; Name and Email cannot be cleared.
type Patch struct {
	Name              *string
	Email             *string
	Phone             *string
	BusinessName      *string
	Notes             *string
	DealSizeCents     *int64
	ExpectedCloseDate DateChange
}

// Validate rejects edits that would blank a required field.
func (p *Patch) Validate() error {
	fields := make(map[string]string)

	if p.Name != nil && strings.TrimSpace(*p.Name) == "" {
		fields["name"] = domain.MsgMustNotEmpty
	}
	if p.Email != nil && strings.TrimSpace(*p.Email) == "" {
		fields["email"] = domain.MsgMustNotEmpty
	}

	if len(fields) > 0 {
		return &domain.ValidationError{Fields: fields}
	}
	return nil
}

// Apply writes the patch onto e and stamps UpdatedAt. Client-only fields
// are ignored for referral sources.
func (p *Patch) Apply(e *Entity, now time.Time) {
	if p.Name != nil {
		e.Name = strings.TrimSpace(*p.Name)
	}
	if p.Email != nil {
		e.Email = strings.TrimSpace(*p.Email)
	}
	if p.Phone != nil {
		e.Phone = strings.TrimSpace(*p.Phone)
	}
	if p.BusinessName != nil {
		e.BusinessName = strings.TrimSpace(*p.BusinessName)
	}
	if p.Notes != nil {
		e.Notes = strings.TrimSpace(*p.Notes)
	}
	if e.Kind == KindClient {
		if p.DealSizeCents != nil {
			e.DealSizeCents = max(0, *p.DealSizeCents)
		}
		if p.ExpectedCloseDate.Set {
			e.ExpectedCloseDate = truncateDate(p.ExpectedCloseDate.Value)
		}
	}
	e.UpdatedAt = now
}

// ListFilter narrows entity listings. A zero value lists everything.
type ListFilter struct {
	Stage Stage
}

// ParseDate parses an expected close date. Both the plain date form and
// RFC 3339 timestamps are accepted; only the UTC calendar date is kept.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(DateLayout, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: want YYYY-MM-DD", s)
	}
	return *truncateDate(&t), nil
}

func truncateDate(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	d := time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
	return &d
}
