package ports

import (
	"context"

	"github.com/jsamuelsen11/referral-pipeline/internal/domain/pipeline"
	"github.com/jsamuelsen11/referral-pipeline/internal/domain/report"
)

// PipelineService is the service port for entity and stage operations.
// Implemented by the application layer; called by inbound adapters.
type PipelineService interface {
	// Catalog returns the stage catalog the service validates against.
	Catalog() pipeline.Catalog

	// CreateEntity creates an entity in its pipeline's initial stage and
	// records the creation in the ledger.
	// Returns domain.ErrValidation for missing fields and
	// domain.ErrReferralSourceNotFound for an unknown referral source.
	CreateEntity(ctx context.Context, kind pipeline.Kind, draft pipeline.Draft) (*pipeline.Entity, error)

	// GetEntity returns one entity.
	// Returns domain.ErrEntityNotFound if it does not exist.
	GetEntity(ctx context.Context, kind pipeline.Kind, id string) (*pipeline.Entity, error)

	// ListEntities returns entities of kind, newest first.
	// Returns domain.ErrValidation if the filter names an unknown stage.
	ListEntities(ctx context.Context, kind pipeline.Kind, filter pipeline.ListFilter) ([]pipeline.Entity, error)

	// UpdateEntity applies a field patch. The stage cannot be changed here.
	UpdateEntity(ctx context.Context, kind pipeline.Kind, id string, patch pipeline.Patch) (*pipeline.Entity, error)

	// ChangeStage validates and applies one stage move, writing the entity
	// and its ledger entry as a unit.
	// Returns a *domain.TransitionError when a rule rejects the move and a
	// *domain.ConsistencyError when the ledger append failed after the
	// entity write on a store without transactions.
	ChangeStage(ctx context.Context, kind pipeline.Kind, change pipeline.StageChange) (*pipeline.Entity, error)

	// BulkChangeStage applies independent stage moves concurrently. Each
	// move succeeds or fails on its own; per-item failures are collected in
	// the result. A hard error is returned only for request-level problems.
	BulkChangeStage(ctx context.Context, kind pipeline.Kind, changes []pipeline.StageChange) (*BulkStageResult, error)

	// ListHistory returns an entity's ledger entries, newest first.
	ListHistory(ctx context.Context, kind pipeline.Kind, id string) ([]pipeline.HistoryEntry, error)

	// ListReferrals returns referral links, newest first. An empty sourceID
	// lists every link.
	ListReferrals(ctx context.Context, sourceID string) ([]pipeline.Referral, error)

	// AppendContactEvent logs a message and moves the entity's last contact
	// time to its sent time.
	AppendContactEvent(ctx context.Context, event pipeline.ContactEvent) (*pipeline.ContactEvent, error)

	// ListContactEvents returns an entity's contact events, newest first.
	ListContactEvents(ctx context.Context, kind pipeline.Kind, id string) ([]pipeline.ContactEvent, error)
}

// ReportService is the read-only reporting port.
type ReportService interface {
	// Summary returns entity counts and the open client pipeline value.
	Summary(ctx context.Context) (*report.Summary, error)

	// Dashboard returns the weekly buckets for month ("YYYY-MM"; empty or
	// malformed means the current month) and the six-month income series.
	Dashboard(ctx context.Context, month string) (*report.Dashboard, error)
}

// BulkStageError records one rejected move within a bulk operation.
type BulkStageError struct {
	EntityID string
	Err      error
}

// BulkStageResult holds the outcome of a bulk stage change.
type BulkStageResult struct {
	Moved  []pipeline.Entity
	Errors []BulkStageError
}
