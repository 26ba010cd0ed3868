// Package fanout runs bounded batches of concurrent calls with a pause
// between batches, keeping bursty upstream APIs under their rate limits.
package fanout

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"
)

// Batches calls fn for every index in [0, n). At most size calls run at once;
// each batch waits for the previous one plus delay. Results keep index order.
// The first error cancels the remaining calls and is returned.
func Batches[T any](ctx context.Context, n, size int, delay time.Duration, fn func(ctx context.Context, i int) (T, error)) ([]T, error) {
	if n <= 0 {
		return []T{}, nil
	}
	if size <= 0 {
		size = n
	}

	results := make([]T, n)
	for start := 0; start < n; start += size {
		if start > 0 && delay > 0 {
			timer := time.NewTimer(delay)
			select {
			case <-ctx.Done():
				timer.Stop()
				return nil, ctx.Err()
			case <-timer.C:
			}
		}

		end := min(start+size, n)
		g, gctx := errgroup.WithContext(ctx)
		for i := start; i < end; i++ {
			g.Go(func() error {
				v, err := fn(gctx, i)
				if err != nil {
					return err
				}
				results[i] = v
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
	}
	return results, nil
}
