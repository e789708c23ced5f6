// Package fanout runs a function over a slice with bounded concurrency and
// returns the results in input order.
package fanout

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Result holds the outcome for one input element
type Result[R any] struct {
	Value R
	Err   error
}

// Map calls fn for every element of items with at most limit calls in flight.
// Results line up with items by index. A failing call does not cancel the
// others; its error is kept in the matching Result. limit <= 0 means no bound.
func Map[T, R any](ctx context.Context, items []T, limit int, fn func(ctx context.Context, i int, item T) (R, error)) []Result[R] {
	results := make([]Result[R], len(items))
	if len(items) == 0 {
		return results
	}

	var g errgroup.Group
	if limit > 0 {
		g.SetLimit(limit)
	}

	for i, item := range items {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				results[i].Err = err
				return nil
			}
			v, err := fn(ctx, i, item)
			results[i] = Result[R]{Value: v, Err: err}
			return nil
		})
	}

	_ = g.Wait()
	return results
}
