package ports

import (
	"context"

	"github.com/jsamuelsen11/referral-pipeline/internal/domain/pipeline"
	"github.com/jsamuelsen11/referral-pipeline/internal/domain/report"
)

// PipelineAPI is the client port for the service's HTTP API. Implemented
// by the outbound pipelineapi adapter; used by pipelinectl. Error
// responses are translated back to the domain errors the server started
// from, so errors.Is works across the wire.
type PipelineAPI interface {
	ListEntities(ctx context.Context, kind pipeline.Kind, filter pipeline.ListFilter) ([]pipeline.Entity, error)
	GetEntity(ctx context.Context, kind pipeline.Kind, id string) (*pipeline.Entity, error)
	CreateEntity(ctx context.Context, kind pipeline.Kind, draft pipeline.Draft) (*pipeline.Entity, error)
	ChangeStage(ctx context.Context, kind pipeline.Kind, change pipeline.StageChange) (*pipeline.Entity, error)
	ListHistory(ctx context.Context, kind pipeline.Kind, id string) ([]pipeline.HistoryEntry, error)
	AppendContactEvent(ctx context.Context, event pipeline.ContactEvent) (*pipeline.ContactEvent, error)
	Summary(ctx context.Context) (*report.Summary, error)
	Dashboard(ctx context.Context, month string) (*report.Dashboard, error)

	// Readiness asks the server's readiness probe. A server that answers
	// "not ready" is a result, not an error.
	Readiness(ctx context.Context) (*Readiness, error)
}

// Readiness is a server's readiness report. Checks maps each component to
// "ok" or its failure message.
type Readiness struct {
	Ready  bool
	Checks map[string]string
}
