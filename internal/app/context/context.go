// Package appctx provides the per-operation unit of work used by the
// pipeline services.
//
// A RequestContext memoizes reads and queues writes. Each state-changing
// operation creates one, stages its writes in order and commits them:
//
//	rc := appctx.New(ctx)
//	e, err := appctx.GetOrFetch(rc, appctx.EntityKey(kind, id), fetch)
//	rc.Stage(appctx.EntityKey(kind, id), moved, setStageAction)
//	rc.AddAction(ledgerAppendAction)
//	err = rc.Commit(ctx)
//
// Commit runs the actions in insertion order and compensates completed
// actions in reverse when one fails.
package appctx

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/jsamuelsen11/referral-pipeline/internal/domain"
)

var _ domain.WriteStager = (*RequestContext)(nil)

// ErrAlreadyCommitted is returned when a RequestContext is staged into or
// committed after Commit has run.
var ErrAlreadyCommitted = errors.New("appctx: request context already committed")

// ErrNilAction is returned when a nil Action is staged or executed.
var ErrNilAction = errors.New("appctx: nil action")

// ErrTypeMismatch is returned by GetOrFetch when the same key was cached
// with a different type.
var ErrTypeMismatch = errors.New("appctx: cached value type mismatch")

// RequestContext wraps a context.Context with a read cache and an ordered
// action queue. It belongs to one operation; the queue is mutex-guarded but
// the cache is meant for sequential use.
type RequestContext struct {
	context.Context

	cache map[string]cacheEntry

	mu        sync.Mutex
	actions   []domain.Action
	committed bool
}

type cacheEntry struct {
	value any
	err   error
}

// New returns an empty RequestContext around ctx.
func New(ctx context.Context) *RequestContext {
	return &RequestContext{
		Context: ctx,
		cache:   make(map[string]cacheEntry),
	}
}

// EntityKey is the cache key for an entity, e.g. "CLIENT:42".
func EntityKey(kind fmt.Stringer, id string) string {
	return kind.String() + ":" + id
}

// GetOrFetch returns the cached value for key or calls fetchFn and caches
// its result. Errors are cached too, so a missing entity is looked up once.
func GetOrFetch[T any](rc *RequestContext, key string, fetchFn func(ctx context.Context) (T, error)) (T, error) {
	if entry, ok := rc.cache[key]; ok {
		var zero T
		if entry.err != nil {
			return zero, entry.err
		}
		v, ok := entry.value.(T)
		if !ok {
			return zero, fmt.Errorf("%w: key %q holds %T, requested %T", ErrTypeMismatch, key, entry.value, zero)
		}
		return v, nil
	}

	val, err := fetchFn(rc.Context)
	rc.cache[key] = cacheEntry{value: val, err: err}
	return val, err
}

// Stage caches entity under key and queues action. Later GetOrFetch calls
// for key see the staged entity.
func (rc *RequestContext) Stage(key string, entity any, action domain.Action) error {
	if err := rc.AddAction(action); err != nil {
		return err
	}
	rc.cache[key] = cacheEntry{value: entity}
	return nil
}

// AddAction queues action for Commit.
func (rc *RequestContext) AddAction(action domain.Action) error {
	if action == nil {
		return ErrNilAction
	}

	rc.mu.Lock()
	defer rc.mu.Unlock()

	if rc.committed {
		return ErrAlreadyCommitted
	}
	rc.actions = append(rc.actions, action)
	return nil
}

// Execute runs action immediately. It is not queued and Commit will not
// roll it back.
func (rc *RequestContext) Execute(action domain.Action) error {
	if action == nil {
		return ErrNilAction
	}
	return action.Execute(rc.Context)
}

// Pending returns the number of queued actions.
func (rc *RequestContext) Pending() int {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	return len(rc.actions)
}
