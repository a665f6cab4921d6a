package schema

import (
	"context"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

// Each calls fn for indexes 0..n-1 using at most workers goroutines
// (workers <= 0 means no limit). It returns the error of the lowest failing
// index. Items above a known failure are skipped since they cannot change
// the result.
func Each(ctx context.Context, n, workers int, fn func(ctx context.Context, i int) error) error {
	if n == 0 {
		return nil
	}
	if workers <= 0 {
		workers = -1
	}
	errs := make([]error, n)
	var lowest atomic.Int64
	lowest.Store(int64(n))
	fail := func(i int, err error) {
		errs[i] = err
		for {
			cur := lowest.Load()
			if int64(i) >= cur || lowest.CompareAndSwap(cur, int64(i)) {
				return
			}
		}
	}

	var g errgroup.Group
	g.SetLimit(workers)
	for i := 0; i < n; i++ {
		if int64(i) > lowest.Load() {
			break
		}
		i := i
		g.Go(func() error {
			if int64(i) > lowest.Load() {
				return nil
			}
			if err := ctx.Err(); err != nil {
				fail(i, err)
				return nil
			}
			if err := fn(ctx, i); err != nil {
				fail(i, err)
			}
			return nil
		})
	}
	_ = g.Wait()
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
