// Package memory is an in-process storage adapter. It has no transactions:
// InTx runs the function directly and Atomic reports false, so the
// services fall back to compensating actions. Used by the local profile and
// by tests.
package memory

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/jsamuelsen11/referral-pipeline/internal/domain"
	"github.com/jsamuelsen11/referral-pipeline/internal/domain/pipeline"
	"github.com/jsamuelsen11/referral-pipeline/internal/domain/report"
	"github.com/jsamuelsen11/referral-pipeline/internal/ports"
)

var _ ports.Store = (*Store)(nil)

type entityKey struct {
	kind pipeline.Kind
	id   string
}

// Store keeps everything in maps guarded by one RWMutex.
type Store struct {
	mu        sync.RWMutex
	entities  map[entityKey]pipeline.Entity
	seq       map[entityKey]int
	nextSeq   int
	history   []pipeline.HistoryEntry
	referrals []pipeline.Referral
	contacts  []pipeline.ContactEvent
}

// New returns an empty store.
func New() *Store {
	return &Store{
		entities: make(map[entityKey]pipeline.Entity),
		seq:      make(map[entityKey]int),
	}
}

// Name implements ports.HealthChecker.
func (s *Store) Name() string { return "storage" }

// HealthCheck always succeeds.
func (s *Store) HealthCheck(context.Context) error { return nil }

// Close is a no-op.
func (s *Store) Close() error { return nil }

// InTx calls fn directly.
func (s *Store) InTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// Atomic reports false.
func (s *Store) Atomic() bool { return false }

func notFound(kind pipeline.Kind, id string) error {
	return fmt.Errorf("%s %s: %w", kind, id, domain.ErrEntityNotFound)
}

func cloneEntity(e pipeline.Entity) pipeline.Entity {
	if e.LastContactAt != nil {
		t := *e.LastContactAt
		e.LastContactAt = &t
	}
	if e.ExpectedCloseDate != nil {
		t := *e.ExpectedCloseDate
		e.ExpectedCloseDate = &t
	}
	return e
}

// Create inserts e.
func (s *Store) Create(ctx context.Context, e *pipeline.Entity) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	k := entityKey{e.Kind, e.ID}
	if _, ok := s.entities[k]; ok {
		return fmt.Errorf("create %s %s: already exists", e.Kind, e.ID)
	}
	s.entities[k] = cloneEntity(*e)
	s.nextSeq++
	s.seq[k] = s.nextSeq
	return nil
}

// Get returns a copy of the entity.
func (s *Store) Get(ctx context.Context, kind pipeline.Kind, id string) (*pipeline.Entity, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.entities[entityKey{kind, id}]
	if !ok {
		return nil, notFound(kind, id)
	}
	out := cloneEntity(e)
	return &out, nil
}

// Update replaces the non-stage fields.
func (s *Store) Update(ctx context.Context, e *pipeline.Entity) error {
	return s.mutate(ctx, e.Kind, e.ID, func(cur *pipeline.Entity) {
		stage := cur.Stage
		*cur = cloneEntity(*e)
		cur.Stage = stage
	})
}

// SetStage moves the entity.
func (s *Store) SetStage(ctx context.Context, kind pipeline.Kind, id string, stage pipeline.Stage, closeDate *time.Time, at time.Time) error {
	return s.mutate(ctx, kind, id, func(cur *pipeline.Entity) {
		cur.Stage = stage
		if closeDate != nil {
			d := *closeDate
			cur.ExpectedCloseDate = &d
		}
		cur.UpdatedAt = at
	})
}

// Touch sets LastContactAt.
func (s *Store) Touch(ctx context.Context, kind pipeline.Kind, id string, lastContactAt, at time.Time) error {
	return s.mutate(ctx, kind, id, func(cur *pipeline.Entity) {
		cur.LastContactAt = &lastContactAt
		cur.UpdatedAt = at
	})
}

func (s *Store) mutate(ctx context.Context, kind pipeline.Kind, id string, fn func(*pipeline.Entity)) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	k := entityKey{kind, id}
	e, ok := s.entities[k]
	if !ok {
		return notFound(kind, id)
	}
	fn(&e)
	s.entities[k] = e
	return nil
}

// Delete removes an entity.
func (s *Store) Delete(ctx context.Context, kind pipeline.Kind, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	k := entityKey{kind, id}
	if _, ok := s.entities[k]; !ok {
		return notFound(kind, id)
	}
	delete(s.entities, k)
	delete(s.seq, k)
	return nil
}

// List returns entities of kind, newest first.
func (s *Store) List(ctx context.Context, kind pipeline.Kind, filter pipeline.ListFilter) ([]pipeline.Entity, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	type row struct {
		e   pipeline.Entity
		seq int
	}
	var rows []row
	for k, e := range s.entities {
		if k.kind != kind || (filter.Stage != "" && e.Stage != filter.Stage) {
			continue
		}
		rows = append(rows, row{e: cloneEntity(e), seq: s.seq[k]})
	}
	slices.SortFunc(rows, func(a, b row) int {
		if c := b.e.CreatedAt.Compare(a.e.CreatedAt); c != 0 {
			return c
		}
		return b.seq - a.seq
	})

	out := make([]pipeline.Entity, len(rows))
	for i, r := range rows {
		out[i] = r.e
	}
	return out, nil
}

// Count returns the number of entities of kind.
func (s *Store) Count(ctx context.Context, kind pipeline.Kind) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := 0
	for k := range s.entities {
		if k.kind == kind {
			n++
		}
	}
	return n, nil
}

// SumDealSize sums client deal sizes outside the excluded stages.
func (s *Store) SumDealSize(ctx context.Context, exclude []pipeline.Stage) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	var sum int64
	for k, e := range s.entities {
		if k.kind == pipeline.KindClient && !slices.Contains(exclude, e.Stage) {
			sum += e.DealSizeCents
		}
	}
	return sum, nil
}

// DealSizeByCloseMonth groups client deal sizes by close month in [from, to].
func (s *Store) DealSizeByCloseMonth(ctx context.Context, from, to report.MonthKey) (map[report.MonthKey]int64, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[report.MonthKey]int64)
	for k, e := range s.entities {
		if k.kind != pipeline.KindClient || e.ExpectedCloseDate == nil {
			continue
		}
		m := report.MonthOf(*e.ExpectedCloseDate)
		if m.Before(from) || to.Before(m) {
			continue
		}
		out[m] += e.DealSizeCents
	}
	return out, nil
}

// Append adds a ledger entry.
func (s *Store) Append(ctx context.Context, h pipeline.HistoryEntry) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history = append(s.history, h)
	return nil
}

// ListFor returns an entity's entries, newest first; ties keep reverse
// insertion order.
func (s *Store) ListFor(ctx context.Context, kind pipeline.Kind, id string) ([]pipeline.HistoryEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []pipeline.HistoryEntry{}
	for i := len(s.history) - 1; i >= 0; i-- {
		h := s.history[i]
		if h.Kind == kind && h.EntityID == id {
			out = append(out, h)
		}
	}
	slices.SortStableFunc(out, func(a, b pipeline.HistoryEntry) int {
		return b.ChangedAt.Compare(a.ChangedAt)
	})
	return out, nil
}

// CountTransitionsInto tallies entries into stage during month.
func (s *Store) CountTransitionsInto(ctx context.Context, kind pipeline.Kind, stage pipeline.Stage, month report.MonthKey) (report.WeekCounts, error) {
	return s.countHistory(ctx, month, func(h pipeline.HistoryEntry) bool {
		return h.Kind == kind && h.To == stage
	})
}

// CountCreations tallies creation entries during month.
func (s *Store) CountCreations(ctx context.Context, kind pipeline.Kind, month report.MonthKey) (report.WeekCounts, error) {
	return s.countHistory(ctx, month, func(h pipeline.HistoryEntry) bool {
		return h.Kind == kind && h.IsCreation()
	})
}

func (s *Store) countHistory(ctx context.Context, month report.MonthKey, match func(pipeline.HistoryEntry) bool) (report.WeekCounts, error) {
	var counts report.WeekCounts
	if err := ctx.Err(); err != nil {
		return counts, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, h := range s.history {
		if match(h) && month.Contains(h.ChangedAt) {
			counts.Inc(h.ChangedAt)
		}
	}
	return counts, nil
}

// CreateReferral stores a referral link.
func (s *Store) CreateReferral(ctx context.Context, r pipeline.Referral) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.referrals = append(s.referrals, r)
	return nil
}

// DeleteReferral removes a referral link if present.
func (s *Store) DeleteReferral(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.referrals = slices.DeleteFunc(s.referrals, func(r pipeline.Referral) bool { return r.ID == id })
	return nil
}

// ListReferrals returns links newest first.
func (s *Store) ListReferrals(ctx context.Context, sourceID string) ([]pipeline.Referral, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []pipeline.Referral{}
	for i := len(s.referrals) - 1; i >= 0; i-- {
		r := s.referrals[i]
		if sourceID == "" || r.ReferralSourceID == sourceID {
			out = append(out, r)
		}
	}
	slices.SortStableFunc(out, func(a, b pipeline.Referral) int {
		return b.ReferredAt.Compare(a.ReferredAt)
	})
	return out, nil
}

// AppendContact stores a contact event.
func (s *Store) AppendContact(ctx context.Context, ev pipeline.ContactEvent) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.contacts = append(s.contacts, ev)
	return nil
}

// DeleteContact removes a contact event if present.
func (s *Store) DeleteContact(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.contacts = slices.DeleteFunc(s.contacts, func(c pipeline.ContactEvent) bool { return c.ID == id })
	return nil
}

// ListContacts returns an entity's events, newest sent first.
func (s *Store) ListContacts(ctx context.Context, kind pipeline.Kind, id string) ([]pipeline.ContactEvent, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []pipeline.ContactEvent{}
	for _, c := range s.contacts {
		if c.Kind == kind && c.EntityID == id {
			out = append(out, c)
		}
	}
	slices.SortStableFunc(out, func(a, b pipeline.ContactEvent) int {
		return b.SentAt.Compare(a.SentAt)
	})
	return out, nil
}
