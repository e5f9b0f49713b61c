package pipeline

import "time"

// ReferralStatus is the lifecycle state of a referral link.
type ReferralStatus string

const (
	ReferralActive   ReferralStatus = "ACTIVE"
	ReferralArchived ReferralStatus = "ARCHIVED"
)

// IsValid returns true if the status is one of the defined constants.
func (s ReferralStatus) IsValid() bool {
	return s == ReferralActive || s == ReferralArchived
}

// Referral links a client to the referral source it came from. It is
// written once, when the client is created.
type Referral struct {
	ID               string
	ReferralSourceID string
	ClientID         string
	ReferredAt       time.Time
	Status           ReferralStatus
}
