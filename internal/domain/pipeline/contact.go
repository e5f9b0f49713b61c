package pipeline

import (
	"fmt"
	"strings"
	"time"

	"github.com/jsamuelsen11/referral-pipeline/internal/domain"
)

// Direction says who sent a logged message.
type Direction string

const (
	DirectionInbound  Direction = "INBOUND"
	DirectionOutbound Direction = "OUTBOUND"
)

// IsValid returns true if the direction is one of the defined constants.
func (d Direction) IsValid() bool {
	return d == DirectionInbound || d == DirectionOutbound
}

// ContactEvent is a logged email exchange with a referral source or client.
// Logging one moves the entity's LastContactAt to SentAt.
type ContactEvent struct {
	ID        string
	Kind      Kind
	EntityID  string
	Direction Direction
	Subject   string
	Snippet   string
	FromEmail string
	ToEmail   string
	ThreadID  string
	SentAt    time.Time
	CreatedAt time.Time
}

// Normalize trims the free-text fields.
func (c *ContactEvent) Normalize() {
	c.Subject = strings.TrimSpace(c.Subject)
	c.Snippet = strings.TrimSpace(c.Snippet)
	c.FromEmail = strings.TrimSpace(c.FromEmail)
	c.ToEmail = strings.TrimSpace(c.ToEmail)
	c.ThreadID = strings.TrimSpace(c.ThreadID)
}

// Validate checks direction and sent time.
func (c *ContactEvent) Validate() error {
	fields := make(map[string]string)

	if !c.Direction.IsValid() {
		fields["direction"] = fmt.Sprintf("must be %s or %s, got %q", DirectionInbound, DirectionOutbound, c.Direction)
	}
	if c.SentAt.IsZero() {
		fields["sent_at"] = domain.MsgRequired
	}

	if len(fields) > 0 {
		return &domain.ValidationError{Fields: fields}
	}
	return nil
}
