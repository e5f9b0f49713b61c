// Package fanout runs independent per-item work with bounded concurrency
// and collects one result per item in input order. Bulk stage moves use it
// so that one rejected move never blocks the others.
package fanout

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Result is the outcome for one item: Value on success, Err otherwise.
type Result[R any] struct {
	Value R
	Err   error
}

// Run calls fn for every item using at most maxWorkers goroutines and
// returns the results in input order. A failing item does not cancel the
// others. Items that have not started when ctx is done get ctx.Err()
// without fn being called. maxWorkers below 1 is treated as 1.
func Run[T, R any](ctx context.Context, maxWorkers int, items []T, fn func(context.Context, T) (R, error)) []Result[R] {
	results := make([]Result[R], len(items))
	if len(items) == 0 {
		return results
	}

	var g errgroup.Group
	g.SetLimit(max(1, maxWorkers))

	for i, item := range items {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				results[i] = Result[R]{Err: err}
				return nil
			}
			v, err := fn(ctx, item)
			results[i] = Result[R]{Value: v, Err: err}
			return nil
		})
	}

	_ = g.Wait()
	return results
}

// Split separates results into the values that succeeded and the indexes
// of those that failed, both in input order.
func Split[R any](results []Result[R]) (ok []R, failed []int) {
	for i, r := range results {
		if r.Err != nil {
			failed = append(failed, i)
			continue
		}
		ok = append(ok, r.Value)
	}
	return ok, failed
}
