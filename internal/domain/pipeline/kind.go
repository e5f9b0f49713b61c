// Package pipeline holds the stage catalogs, the transition rules and the
// entities that move through them.
package pipeline

import "fmt"

// Kind selects which pipeline an entity belongs to. It is parsed once at the
// boundary and threaded through as a value.
type Kind int

const (
	KindReferralSource Kind = iota + 1
	KindClient
)

// Kinds lists every kind in a stable order.
func Kinds() []Kind {
	return []Kind{KindReferralSource, KindClient}
}

// String returns the storage tag, e.g. "CLIENT".
func (k Kind) String() string {
	switch k {
	case KindReferralSource:
		return "REFERRAL_SOURCE"
	case KindClient:
		return "CLIENT"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// PathSegment returns the URL collection name for the kind.
func (k Kind) PathSegment() string {
	switch k {
	case KindReferralSource:
		return "referral-sources"
	case KindClient:
		return "clients"
	default:
		return ""
	}
}

// IsValid reports whether k is one of the defined kinds.
func (k Kind) IsValid() bool {
	return k == KindReferralSource || k == KindClient
}

// ParseKind accepts either the storage tag or the URL path segment.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "REFERRAL_SOURCE", "referral-sources":
		return KindReferralSource, nil
	case "CLIENT", "clients":
		return KindClient, nil
	default:
		return 0, fmt.Errorf("unknown entity kind %q", s)
	}
}
