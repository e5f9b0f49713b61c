package dto

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jsamuelsen11/referral-pipeline/internal/domain"
	"github.com/jsamuelsen11/referral-pipeline/internal/domain/pipeline"
)

// OptionalDate is a nullable date field that remembers whether it was
// present in the request body. Absent leaves the value alone, null or ""
// clears it, and a date string sets it.
type OptionalDate struct {
	Set   bool
	Value string
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *OptionalDate) UnmarshalJSON(b []byte) error {
	d.Set = true
	if bytes.Equal(b, []byte("null")) {
		d.Value = ""
		return nil
	}
	return json.Unmarshal(b, &d.Value)
}

// MarshalJSON implements json.Marshaler. An unset or empty date encodes
// as null.
func (d OptionalDate) MarshalJSON() ([]byte, error) {
	if d.Value == "" {
		return []byte("null"), nil
	}
	return json.Marshal(d.Value)
}

// CreateEntityRequest represents the JSON body for creating a referral
// source or client. The client-only fields are ignored for referral sources.
type CreateEntityRequest struct {
	Name              string `json:"name"`
	Email             string `json:"email"`
	Phone             string `json:"phone,omitempty"`
	BusinessName      string `json:"business_name,omitempty"`
	Notes             string `json:"notes,omitempty"`
	DealSizeCents     int64  `json:"deal_size_cents,omitempty"`
	ExpectedCloseDate string `json:"expected_close_date,omitempty"`
	ReferralSourceID  string `json:"referral_source_id,omitempty"`
}

// Validate checks that required fields are present.
// Returns a *domain.ValidationError if any checks fail.
func (r *CreateEntityRequest) Validate() error {
	fields := make(map[string]string)

	if strings.TrimSpace(r.Name) == "" {
		fields["name"] = domain.MsgRequired
	}
	if strings.TrimSpace(r.Email) == "" {
		fields["email"] = domain.MsgRequired
	}
	if r.ExpectedCloseDate != "" {
		if _, err := pipeline.ParseDate(r.ExpectedCloseDate); err != nil {
			fields["expected_close_date"] = err.Error()
		}
	}

	if len(fields) > 0 {
		return &domain.ValidationError{Fields: fields}
	}
	return nil
}

// ToDraft converts a validated request to a pipeline.Draft.
func (r *CreateEntityRequest) ToDraft() pipeline.Draft {
	d := pipeline.Draft{
		Name:             r.Name,
		Email:            r.Email,
		Phone:            r.Phone,
		BusinessName:     r.BusinessName,
		Notes:            r.Notes,
		DealSizeCents:    r.DealSizeCents,
		ReferralSourceID: r.ReferralSourceID,
	}
	if t, err := pipeline.ParseDate(r.ExpectedCloseDate); err == nil {
		d.ExpectedCloseDate = &t
	}
	return d
}

// UpdateEntityRequest represents the JSON body for editing an entity's
// fields. All fields are optional; nil means "do not change this field".
// An empty string clears an optional text field.
type UpdateEntityRequest struct {
	Name              *string      `json:"name,omitempty"`
	Email             *string      `json:"email,omitempty"`
	Phone             *string      `json:"phone,omitempty"`
	BusinessName      *string      `json:"business_name,omitempty"`
	Notes             *string      `json:"notes,omitempty"`
	DealSizeCents     *int64       `json:"deal_size_cents,omitempty"`
	ExpectedCloseDate OptionalDate `json:"expected_close_date"`
}

// Validate checks that any provided fields have valid values.
// Returns a *domain.ValidationError if any checks fail.
func (r *UpdateEntityRequest) Validate() error {
	fields := make(map[string]string)

	if r.Name != nil && strings.TrimSpace(*r.Name) == "" {
		fields["name"] = domain.MsgMustNotEmpty
	}
	if r.Email != nil && strings.TrimSpace(*r.Email) == "" {
		fields["email"] = domain.MsgMustNotEmpty
	}
	if r.ExpectedCloseDate.Value != "" {
		if _, err := pipeline.ParseDate(r.ExpectedCloseDate.Value); err != nil {
			fields["expected_close_date"] = err.Error()
		}
	}

	if len(fields) > 0 {
		return &domain.ValidationError{Fields: fields}
	}
	return nil
}

// ToPatch converts a validated request to a pipeline.Patch.
func (r *UpdateEntityRequest) ToPatch() pipeline.Patch {
	p := pipeline.Patch{
		Name:          r.Name,
		Email:         r.Email,
		Phone:         r.Phone,
		BusinessName:  r.BusinessName,
		Notes:         r.Notes,
		DealSizeCents: r.DealSizeCents,
	}
	if r.ExpectedCloseDate.Set {
		var v *time.Time
		if t, err := pipeline.ParseDate(r.ExpectedCloseDate.Value); err == nil {
			v = &t
		}
		p.ExpectedCloseDate = pipeline.SetDate(v)
	}
	return p
}

// ChangeStageRequest represents the JSON body for moving one entity.
type ChangeStageRequest struct {
	ToStage           string `json:"to_stage"`
	Reason            string `json:"reason,omitempty"`
	ActorID           string `json:"actor_id,omitempty"`
	ExpectedCloseDate string `json:"expected_close_date,omitempty"`
}

// Validate checks that the target stage is present and the close date, if
// any, parses. Stage legality is decided by the service.
func (r *ChangeStageRequest) Validate() error {
	fields := make(map[string]string)

	if strings.TrimSpace(r.ToStage) == "" {
		fields["to_stage"] = domain.MsgRequired
	}
	if r.ExpectedCloseDate != "" {
		if _, err := pipeline.ParseDate(r.ExpectedCloseDate); err != nil {
			fields["expected_close_date"] = err.Error()
		}
	}

	if len(fields) > 0 {
		return &domain.ValidationError{Fields: fields}
	}
	return nil
}

// ToStageChange converts a validated request for entity id.
func (r *ChangeStageRequest) ToStageChange(id string) pipeline.StageChange {
	c := pipeline.StageChange{
		EntityID: id,
		To:       pipeline.Stage(r.ToStage),
		Reason:   r.Reason,
		ActorID:  r.ActorID,
	}
	if t, err := pipeline.ParseDate(r.ExpectedCloseDate); err == nil {
		c.ExpectedCloseDate = &t
	}
	return c
}

// BulkChangeStageItem is one move within a bulk request.
type BulkChangeStageItem struct {
	EntityID string `json:"entity_id"`
	ChangeStageRequest
}

// BulkChangeStageRequest represents the JSON body for moving several
// entities of one kind.
type BulkChangeStageRequest struct {
	Changes []BulkChangeStageItem `json:"changes"`
}

// Validate checks the list is non-empty and every item is well formed.
// Field keys are prefixed with the item index, e.g. "changes[1].to_stage".
func (r *BulkChangeStageRequest) Validate() error {
	fields := make(map[string]string)

	if len(r.Changes) == 0 {
		fields["changes"] = domain.MsgMustNotEmpty
	}
	for i, c := range r.Changes {
		if strings.TrimSpace(c.EntityID) == "" {
			fields[fmt.Sprintf("changes[%d].entity_id", i)] = domain.MsgRequired
		}
		var verr *domain.ValidationError
		if errors.As(c.ChangeStageRequest.Validate(), &verr) {
			for k, v := range verr.Fields {
				fields[fmt.Sprintf("changes[%d].%s", i, k)] = v
			}
		}
	}

	if len(fields) > 0 {
		return &domain.ValidationError{Fields: fields}
	}
	return nil
}

// ToStageChanges converts a validated request.
func (r *BulkChangeStageRequest) ToStageChanges() []pipeline.StageChange {
	out := make([]pipeline.StageChange, len(r.Changes))
	for i := range r.Changes {
		out[i] = r.Changes[i].ToStageChange(r.Changes[i].EntityID)
	}
	return out
}

// ContactEventRequest represents the JSON body for logging a message.
type ContactEventRequest struct {
	Direction string `json:"direction"`
	Subject   string `json:"subject,omitempty"`
	Snippet   string `json:"snippet,omitempty"`
	FromEmail string `json:"from_email,omitempty"`
	ToEmail   string `json:"to_email,omitempty"`
	ThreadID  string `json:"thread_id,omitempty"`
	SentAt    string `json:"sent_at"`
}

// Validate checks direction and the RFC 3339 sent time.
// Returns a *domain.ValidationError if any checks fail.
func (r *ContactEventRequest) Validate() error {
	fields := make(map[string]string)

	if !pipeline.Direction(r.Direction).IsValid() {
		fields["direction"] = fmt.Sprintf("must be %s or %s, got %q", pipeline.DirectionInbound, pipeline.DirectionOutbound, r.Direction)
	}
	if strings.TrimSpace(r.SentAt) == "" {
		fields["sent_at"] = domain.MsgRequired
	} else if _, err := time.Parse(time.RFC3339, r.SentAt); err != nil {
		fields["sent_at"] = fmt.Sprintf("invalid timestamp %q: want RFC 3339", r.SentAt)
	}

	if len(fields) > 0 {
		return &domain.ValidationError{Fields: fields}
	}
	return nil
}

// ToContactEvent converts a validated request for the given entity.
func (r *ContactEventRequest) ToContactEvent(kind pipeline.Kind, id string) pipeline.ContactEvent {
	sent, _ := time.Parse(time.RFC3339, r.SentAt)
	return pipeline.ContactEvent{
		Kind:      kind,
		EntityID:  id,
		Direction: pipeline.Direction(r.Direction),
		Subject:   r.Subject,
		Snippet:   r.Snippet,
		FromEmail: r.FromEmail,
		ToEmail:   r.ToEmail,
		ThreadID:  r.ThreadID,
		SentAt:    sent.UTC(),
	}
}

