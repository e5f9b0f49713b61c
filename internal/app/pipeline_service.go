// Package app provides application services that orchestrate use cases by
// coordinating between domain logic and infrastructure through port interfaces.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/metric"

	appctx "github.com/jsamuelsen11/referral-pipeline/internal/app/context"
	"github.com/jsamuelsen11/referral-pipeline/internal/app/fanout"
	"github.com/jsamuelsen11/referral-pipeline/internal/domain"
	"github.com/jsamuelsen11/referral-pipeline/internal/domain/pipeline"
	"github.com/jsamuelsen11/referral-pipeline/internal/platform/telemetry"
	"github.com/jsamuelsen11/referral-pipeline/internal/ports"
)

// Compile-time check that PipelineService implements ports.PipelineService.
var _ ports.PipelineService = (*PipelineService)(nil)

// DefaultBulkWorkers bounds concurrent moves in BulkChangeStage when the
// configuration leaves it unset.
const DefaultBulkWorkers = 4

// PipelineConfig holds the tunables of PipelineService.
type PipelineConfig struct {
	BulkWorkers int
}

// Option customizes a service at construction.
type Option func(*options)

type options struct {
	now   func() time.Time
	newID func() string
}

func defaultOptions() options {
	return options{
		now:   func() time.Time { return time.Now().UTC() },
		newID: uuid.NewString,
	}
}

// WithClock replaces the wall clock. Tests use it to pin timestamps.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// WithIDGenerator replaces the UUID generator used for new records.
func WithIDGenerator(fn func() string) Option {
	return func(o *options) { o.newID = fn }
}

// PipelineService implements ports.PipelineService. Every write builds an
// appctx.RequestContext, stages its actions (entity first, ledger last) and
// commits them inside one store transaction.
type PipelineService struct {
	store   ports.Store
	catalog pipeline.Catalog
	cfg     PipelineConfig
	metrics *telemetry.Metrics
	logger  *slog.Logger
	opts    options
}

// NewPipelineService creates a PipelineService. metrics may be nil.
func NewPipelineService(
	store ports.Store,
	catalog pipeline.Catalog,
	cfg PipelineConfig,
	metrics *telemetry.Metrics,
	logger *slog.Logger,
	opts ...Option,
) *PipelineService {
	if cfg.BulkWorkers < 1 {
		cfg.BulkWorkers = DefaultBulkWorkers
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &PipelineService{
		store:   store,
		catalog: catalog,
		cfg:     cfg,
		metrics: metrics,
		logger:  logger,
		opts:    o,
	}
}

// Catalog returns the stage catalog.
func (s *PipelineService) Catalog() pipeline.Catalog {
	return s.catalog
}

// CreateEntity creates an entity in its initial stage together with its
// creation ledger entry and, for clients with a referral source, the
// referral link.
func (s *PipelineService) CreateEntity(ctx context.Context, kind pipeline.Kind, draft pipeline.Draft) (*pipeline.Entity, error) {
	p := s.catalog.For(kind)
	now := s.opts.now()
	e := pipeline.NewEntity(p, s.opts.newID(), draft, now)

	s.logger.InfoContext(ctx, "creating entity",
		slog.String("kind", kind.String()),
		slog.String("entity_id", e.ID),
	)

	if err := e.Validate(); err != nil {
		return nil, err
	}

	reason := pipeline.ReasonCreated
	if kind == pipeline.KindClient {
		reason = pipeline.ReasonCreatedNoReferral
		if e.ReferralSourceID != "" {
			reason = pipeline.ReasonCreatedFromReferral
		}
	}

	err := s.store.InTx(ctx, func(ctx context.Context) error {
		rc := appctx.New(ctx)

		if e.ReferralSourceID != "" {
			if _, err := s.store.Get(ctx, pipeline.KindReferralSource, e.ReferralSourceID); err != nil {
				if errors.Is(err, domain.ErrNotFound) {
					return fmt.Errorf("referral source %s: %w", e.ReferralSourceID, domain.ErrReferralSourceNotFound)
				}
				return err
			}
		}

		created := *e
		if err := rc.Stage(appctx.EntityKey(kind, e.ID), &created, &appctx.Func{
			Desc: fmt.Sprintf("insert %s %s", kind, e.ID),
			Do:   func(ctx context.Context) error { return s.store.Create(ctx, &created) },
			Undo: func(ctx context.Context) error { return s.store.Delete(ctx, kind, e.ID) },
		}); err != nil {
			return err
		}

		if e.ReferralSourceID != "" {
			ref := pipeline.Referral{
				ID:               s.opts.newID(),
				ReferralSourceID: e.ReferralSourceID,
				ClientID:         e.ID,
				ReferredAt:       now,
				Status:           pipeline.ReferralActive,
			}
			if err := rc.AddAction(&appctx.Func{
				Desc: fmt.Sprintf("insert referral %s -> %s", ref.ReferralSourceID, ref.ClientID),
				Do:   func(ctx context.Context) error { return s.store.CreateReferral(ctx, ref) },
				Undo: func(ctx context.Context) error { return s.store.DeleteReferral(ctx, ref.ID) },
			}); err != nil {
				return err
			}
		}

		entry := pipeline.CreationEntry(s.opts.newID(), e, reason)
		if err := rc.AddAction(s.appendLedger(entry)); err != nil {
			return err
		}

		return rc.Commit(ctx)
	})
	if err != nil {
		err = s.asConsistency(ctx, "CreateEntity", kind, e.ID, err)
		s.logFailure(ctx, "failed to create entity", "CreateEntity", kind, e.ID, err)
		return nil, err
	}

	return e, nil
}

// GetEntity returns one entity.
func (s *PipelineService) GetEntity(ctx context.Context, kind pipeline.Kind, id string) (*pipeline.Entity, error) {
	e, err := s.store.Get(ctx, kind, id)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			s.logger.ErrorContext(ctx, "failed to fetch entity",
				slog.String("operation", "GetEntity"),
				slog.String("kind", kind.String()),
				slog.String("entity_id", id),
				slog.Any("error", err),
			)
		}
		return nil, err
	}
	return e, nil
}

// ListEntities returns entities of kind, newest first.
func (s *PipelineService) ListEntities(ctx context.Context, kind pipeline.Kind, filter pipeline.ListFilter) ([]pipeline.Entity, error) {
	if filter.Stage != "" && !s.catalog.For(kind).Contains(filter.Stage) {
		return nil, &domain.ValidationError{Fields: map[string]string{
			"stage": fmt.Sprintf("unknown %s stage %q", kind, filter.Stage),
		}}
	}

	list, err := s.store.List(ctx, kind, filter)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to list entities",
			slog.String("operation", "ListEntities"),
			slog.String("kind", kind.String()),
			slog.Any("error", err),
		)
		return nil, err
	}
	return list, nil
}

// UpdateEntity applies patch to the non-stage fields. A client in a gated
// stage cannot have its expected close date cleared.
func (s *PipelineService) UpdateEntity(ctx context.Context, kind pipeline.Kind, id string, patch pipeline.Patch) (*pipeline.Entity, error) {
	s.logger.InfoContext(ctx, "updating entity",
		slog.String("kind", kind.String()),
		slog.String("entity_id", id),
	)

	if err := patch.Validate(); err != nil {
		return nil, err
	}

	p := s.catalog.For(kind)
	var updated *pipeline.Entity

	err := s.store.InTx(ctx, func(ctx context.Context) error {
		rc := appctx.New(ctx)
		key := appctx.EntityKey(kind, id)

		cur, err := appctx.GetOrFetch(rc, key, func(ctx context.Context) (*pipeline.Entity, error) {
			return s.store.Get(ctx, kind, id)
		})
		if err != nil {
			return err
		}

		prev := *cur
		next := *cur
		patch.Apply(&next, s.opts.now())
		if err := next.Validate(); err != nil {
			return err
		}
		if err := pipeline.ValidateCloseDate(p, next.Stage, next.HasCloseDate()); err != nil {
			return err
		}

		if err := rc.Stage(key, &next, &appctx.Func{
			Desc: fmt.Sprintf("update %s %s", kind, id),
			Do:   func(ctx context.Context) error { return s.store.Update(ctx, &next) },
			Undo: func(ctx context.Context) error { return s.store.Update(ctx, &prev) },
		}); err != nil {
			return err
		}
		if err := rc.Commit(ctx); err != nil {
			return err
		}

		updated = &next
		return nil
	})
	if err != nil {
		s.logFailure(ctx, "failed to update entity", "UpdateEntity", kind, id, err)
		return nil, err
	}

	return updated, nil
}

// ChangeStage validates one move against the kind's pipeline and applies
// it. The entity update and its ledger entry are committed as one unit.
func (s *PipelineService) ChangeStage(ctx context.Context, kind pipeline.Kind, change pipeline.StageChange) (*pipeline.Entity, error) {
	change.Normalize()
	if kind != pipeline.KindClient {
		change.ExpectedCloseDate = nil
	}

	s.logger.InfoContext(ctx, "changing stage",
		slog.String("kind", kind.String()),
		slog.String("entity_id", change.EntityID),
		slog.String("to_stage", change.To.String()),
	)

	if err := change.Validate(); err != nil {
		return nil, err
	}

	p := s.catalog.For(kind)
	var (
		moved *pipeline.Entity
		from  pipeline.Stage
	)

	err := s.store.InTx(ctx, func(ctx context.Context) error {
		rc := appctx.New(ctx)
		key := appctx.EntityKey(kind, change.EntityID)

		cur, err := appctx.GetOrFetch(rc, key, func(ctx context.Context) (*pipeline.Entity, error) {
			return s.store.Get(ctx, kind, change.EntityID)
		})
		if err != nil {
			return err
		}
		from = cur.Stage

		if err := pipeline.Validate(p, pipeline.Transition{
			From:         cur.Stage,
			To:           change.To,
			Reason:       change.Reason,
			HasCloseDate: cur.HasCloseDate() || change.ExpectedCloseDate != nil,
		}); err != nil {
			return err
		}

		now := s.opts.now()
		prev := *cur
		next := *cur
		next.Stage = change.To
		next.UpdatedAt = now
		if change.ExpectedCloseDate != nil {
			next.ExpectedCloseDate = change.ExpectedCloseDate
		}

		if err := rc.Stage(key, &next, &appctx.Func{
			Desc: fmt.Sprintf("set stage %s %s %s -> %s", kind, change.EntityID, prev.Stage, change.To),
			Do: func(ctx context.Context) error {
				return s.store.SetStage(ctx, kind, change.EntityID, change.To, change.ExpectedCloseDate, now)
			},
			Undo: func(ctx context.Context) error {
				if err := s.store.SetStage(ctx, kind, prev.ID, prev.Stage, nil, prev.UpdatedAt); err != nil {
					return err
				}
				return s.store.Update(ctx, &prev)
			},
		}); err != nil {
			return err
		}

		entry := pipeline.TransitionEntry(s.opts.newID(), kind, prev.Stage, change, now)
		if err := rc.AddAction(s.appendLedger(entry)); err != nil {
			return err
		}

		if err := rc.Commit(ctx); err != nil {
			return err
		}

		moved = &next
		return nil
	})

	s.recordTransition(ctx, kind, from, change.To, err)

	if err != nil {
		err = s.asConsistency(ctx, "ChangeStage", kind, change.EntityID, err)
		s.logFailure(ctx, "failed to change stage", "ChangeStage", kind, change.EntityID, err)
		return nil, err
	}

	return moved, nil
}

// BulkChangeStage applies independent moves concurrently. Duplicate entity
// ids are rejected up front since their outcome would depend on ordering.
func (s *PipelineService) BulkChangeStage(ctx context.Context, kind pipeline.Kind, changes []pipeline.StageChange) (*ports.BulkStageResult, error) {
	s.logger.InfoContext(ctx, "bulk changing stage",
		slog.String("kind", kind.String()),
		slog.Int("count", len(changes)),
	)

	if len(changes) == 0 {
		return nil, &domain.ValidationError{Fields: map[string]string{"changes": domain.MsgMustNotEmpty}}
	}

	changes = append([]pipeline.StageChange(nil), changes...)
	seen := make(map[string]struct{}, len(changes))
	for i := range changes {
		changes[i].Normalize()
		id := changes[i].EntityID
		if _, dup := seen[id]; dup && id != "" {
			return nil, &domain.ValidationError{Fields: map[string]string{
				"changes": fmt.Sprintf("duplicate entity_id %q", id),
			}}
		}
		seen[id] = struct{}{}
	}

	results := fanout.Run(ctx, s.cfg.BulkWorkers, changes, func(ctx context.Context, c pipeline.StageChange) (pipeline.Entity, error) {
		e, err := s.ChangeStage(ctx, kind, c)
		if err != nil {
			return pipeline.Entity{}, err
		}
		return *e, nil
	})

	moved, failed := fanout.Split(results)
	out := &ports.BulkStageResult{Moved: moved}
	if out.Moved == nil {
		out.Moved = []pipeline.Entity{}
	}
	for _, i := range failed {
		out.Errors = append(out.Errors, ports.BulkStageError{
			EntityID: changes[i].EntityID,
			Err:      results[i].Err,
		})
	}

	if len(failed) > 0 {
		s.logger.WarnContext(ctx, "bulk stage change partially failed",
			slog.String("operation", "BulkChangeStage"),
			slog.String("kind", kind.String()),
			slog.Int("moved", len(out.Moved)),
			slog.Int("failed", len(failed)),
		)
	}

	return out, nil
}

// ListHistory returns an entity's ledger entries, newest first.
func (s *PipelineService) ListHistory(ctx context.Context, kind pipeline.Kind, id string) ([]pipeline.HistoryEntry, error) {
	if _, err := s.GetEntity(ctx, kind, id); err != nil {
		return nil, err
	}

	entries, err := s.store.ListFor(ctx, kind, id)
	if err != nil {
		s.logFailure(ctx, "failed to list history", "ListHistory", kind, id, err)
		return nil, err
	}
	return entries, nil
}

// ListReferrals returns referral links, newest first.
func (s *PipelineService) ListReferrals(ctx context.Context, sourceID string) ([]pipeline.Referral, error) {
	refs, err := s.store.ListReferrals(ctx, sourceID)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to list referrals",
			slog.String("operation", "ListReferrals"),
			slog.String("referral_source_id", sourceID),
			slog.Any("error", err),
		)
		return nil, err
	}
	return refs, nil
}

// AppendContactEvent stores ev and moves the entity's LastContactAt to
// ev.SentAt in one unit of work.
func (s *PipelineService) AppendContactEvent(ctx context.Context, ev pipeline.ContactEvent) (*pipeline.ContactEvent, error) {
	ev.Normalize()
	if err := ev.Validate(); err != nil {
		return nil, err
	}

	now := s.opts.now()
	ev.ID = s.opts.newID()
	ev.CreatedAt = now
	ev.SentAt = ev.SentAt.UTC()

	s.logger.InfoContext(ctx, "logging contact event",
		slog.String("kind", ev.Kind.String()),
		slog.String("entity_id", ev.EntityID),
		slog.String("direction", string(ev.Direction)),
	)

	err := s.store.InTx(ctx, func(ctx context.Context) error {
		rc := appctx.New(ctx)
		key := appctx.EntityKey(ev.Kind, ev.EntityID)

		cur, err := appctx.GetOrFetch(rc, key, func(ctx context.Context) (*pipeline.Entity, error) {
			return s.store.Get(ctx, ev.Kind, ev.EntityID)
		})
		if err != nil {
			return err
		}

		prev := *cur
		next := *cur
		sentAt := ev.SentAt
		next.LastContactAt = &sentAt
		next.UpdatedAt = now

		if err := rc.AddAction(&appctx.Func{
			Desc: fmt.Sprintf("insert contact event %s", ev.ID),
			Do:   func(ctx context.Context) error { return s.store.AppendContact(ctx, ev) },
			Undo: func(ctx context.Context) error { return s.store.DeleteContact(ctx, ev.ID) },
		}); err != nil {
			return err
		}
		if err := rc.Stage(key, &next, &appctx.Func{
			Desc: fmt.Sprintf("touch %s %s", ev.Kind, ev.EntityID),
			Do:   func(ctx context.Context) error { return s.store.Touch(ctx, ev.Kind, ev.EntityID, sentAt, now) },
			Undo: func(ctx context.Context) error { return s.store.Update(ctx, &prev) },
		}); err != nil {
			return err
		}

		return rc.Commit(ctx)
	})
	if err != nil {
		s.logFailure(ctx, "failed to log contact event", "AppendContactEvent", ev.Kind, ev.EntityID, err)
		return nil, err
	}

	return &ev, nil
}

// ListContactEvents returns an entity's contact events, newest first.
func (s *PipelineService) ListContactEvents(ctx context.Context, kind pipeline.Kind, id string) ([]pipeline.ContactEvent, error) {
	if _, err := s.GetEntity(ctx, kind, id); err != nil {
		return nil, err
	}

	events, err := s.store.ListContacts(ctx, kind, id)
	if err != nil {
		s.logFailure(ctx, "failed to list contact events", "ListContactEvents", kind, id, err)
		return nil, err
	}
	return events, nil
}

// ledgerAppend marks the ledger step of a commit so asConsistency can tell
// it apart from the other writes.
type ledgerAppend struct {
	appctx.Func
}

func (s *PipelineService) appendLedger(entry pipeline.HistoryEntry) *ledgerAppend {
	return &ledgerAppend{appctx.Func{
		Desc: "append ledger entry " + entry.String(),
		Do:   func(ctx context.Context) error { return s.store.Append(ctx, entry) },
	}}
}

// asConsistency converts a commit whose ledger append failed after the
// entity write landed into a *domain.ConsistencyError when the store could
// not roll them back atomically. Failures of any other step are returned
// unchanged.
func (s *PipelineService) asConsistency(ctx context.Context, op string, kind pipeline.Kind, id string, err error) error {
	var cerr *appctx.CommitError
	if s.store.Atomic() || !errors.As(err, &cerr) || !cerr.PartiallyApplied() {
		return err
	}
	if _, ok := cerr.Failed.(*ledgerAppend); !ok {
		return err
	}

	if s.metrics != nil {
		s.metrics.ConsistencyFailureTotal.Add(ctx, 1, metric.WithAttributes(
			telemetry.AttrOperation.String(op),
			telemetry.AttrKind.String(kind.String()),
		))
	}

	return &domain.ConsistencyError{
		Op:       op,
		Kind:     kind.String(),
		EntityID: id,
		Err:      cerr,
	}
}

func (s *PipelineService) recordTransition(ctx context.Context, kind pipeline.Kind, from, to pipeline.Stage, err error) {
	if s.metrics == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = domain.CodeOf(err)
	}
	s.metrics.StageTransitionTotal.Add(ctx, 1, metric.WithAttributes(
		telemetry.AttrKind.String(kind.String()),
		telemetry.AttrFromStage.String(from.String()),
		telemetry.AttrToStage.String(to.String()),
		telemetry.AttrResult.String(result),
	))
}

// logFailure logs client errors (validation, not found, rule violations)
// at INFO and everything else at ERROR.
func (s *PipelineService) logFailure(ctx context.Context, msg, op string, kind pipeline.Kind, id string, err error) {
	attrs := []any{
		slog.String("operation", op),
		slog.String("kind", kind.String()),
		slog.String("entity_id", id),
		slog.Any("error", err),
	}
	if errors.Is(err, domain.ErrValidation) || errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrRuleViolation) {
		s.logger.InfoContext(ctx, msg, attrs...)
		return
	}
	s.logger.ErrorContext(ctx, msg, attrs...)
}
