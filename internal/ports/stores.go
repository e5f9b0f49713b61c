package ports

import (
	"context"
	"time"

	"github.com/jsamuelsen11/referral-pipeline/internal/domain/pipeline"
	"github.com/jsamuelsen11/referral-pipeline/internal/domain/report"
)

// EntityStore persists referral sources and clients.
type EntityStore interface {
	// Create inserts a fully formed entity.
	Create(ctx context.Context, e *pipeline.Entity) error

	// Get returns domain.ErrEntityNotFound if no entity matches.
	Get(ctx context.Context, kind pipeline.Kind, id string) (*pipeline.Entity, error)

	// Update writes every non-stage field and UpdatedAt.
	Update(ctx context.Context, e *pipeline.Entity) error

	// SetStage moves the entity to stage and stamps UpdatedAt. A non-nil
	// closeDate also replaces the expected close date.
	SetStage(ctx context.Context, kind pipeline.Kind, id string, stage pipeline.Stage, closeDate *time.Time, at time.Time) error

	// Touch sets LastContactAt.
	Touch(ctx context.Context, kind pipeline.Kind, id string, lastContactAt, at time.Time) error

	// Delete removes an entity. Used to compensate a create on stores
	// without transactions.
	Delete(ctx context.Context, kind pipeline.Kind, id string) error

	// List returns entities of kind, newest first.
	List(ctx context.Context, kind pipeline.Kind, filter pipeline.ListFilter) ([]pipeline.Entity, error)

	// Count returns the number of entities of kind.
	Count(ctx context.Context, kind pipeline.Kind) (int, error)

	// SumDealSize sums client deal sizes, skipping clients in any of the
	// excluded stages.
	SumDealSize(ctx context.Context, exclude []pipeline.Stage) (int64, error)

	// DealSizeByCloseMonth sums client deal sizes grouped by the month of
	// the expected close date, for months in [from, to].
	DealSizeByCloseMonth(ctx context.Context, from, to report.MonthKey) (map[report.MonthKey]int64, error)
}

// Ledger is the append-only stage history.
type Ledger interface {
	Append(ctx context.Context, entry pipeline.HistoryEntry) error

	// ListFor returns the entity's entries, newest first.
	ListFor(ctx context.Context, kind pipeline.Kind, id string) ([]pipeline.HistoryEntry, error)

	// CountTransitionsInto tallies entries into stage within
	// month, bucketed by week.
	CountTransitionsInto(ctx context.Context, kind pipeline.Kind, stage pipeline.Stage, month report.MonthKey) (report.WeekCounts, error)

	// CountCreations tallies creation entries within month, bucketed by week.
	CountCreations(ctx context.Context, kind pipeline.Kind, month report.MonthKey) (report.WeekCounts, error)
}

// ReferralStore persists referral links.
type ReferralStore interface {
	CreateReferral(ctx context.Context, r pipeline.Referral) error
	DeleteReferral(ctx context.Context, id string) error

	// ListReferrals returns links newest first; an empty sourceID lists all.
	ListReferrals(ctx context.Context, sourceID string) ([]pipeline.Referral, error)
}

// ContactStore persists contact events.
type ContactStore interface {
	AppendContact(ctx context.Context, ev pipeline.ContactEvent) error
	DeleteContact(ctx context.Context, id string) error

	// ListContacts returns the entity's events, newest SentAt first.
	ListContacts(ctx context.Context, kind pipeline.Kind, id string) ([]pipeline.ContactEvent, error)
}

// Transactor runs a function as one storage transaction.
type Transactor interface {
	// InTx calls fn with a context bound to a transaction. The
	// transaction commits if fn returns nil and rolls back otherwise.
	InTx(ctx context.Context, fn func(ctx context.Context) error) error

	// Atomic reports whether InTx really provides all-or-nothing writes.
	Atomic() bool
}

// Store is everything the services need from a storage adapter.
type Store interface {
	EntityStore
	Ledger
	ReferralStore
	ContactStore
	Transactor
	HealthChecker
	Close() error
}
