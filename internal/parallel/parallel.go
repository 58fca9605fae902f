// Package parallel runs independent index ranges on a bounded worker pool.
package parallel

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// DefaultMinChunk keeps tiny batches on the calling goroutine.
const DefaultMinChunk = 16

// Workers resolves a requested pool size; n <= 0 means one per CPU.
func Workers(n int) int {
	if n <= 0 {
		return runtime.NumCPU()
	}
	return n
}

// For splits [0, n) into contiguous chunks of at least minChunk indices
// and runs fn on up to workers of them at once. The first error cancels
// ctx for the remaining chunks and is returned.
func For(ctx context.Context, n, workers, minChunk int, fn func(ctx context.Context, start, end int) error) error {
	if n <= 0 {
		return nil
	}
	workers = Workers(workers)
	if minChunk < 1 {
		minChunk = 1
	}
	if n <= minChunk || workers == 1 {
		if err := ctx.Err(); err != nil {
			return err
		}
		return fn(ctx, 0, n)
	}

	chunks := min(n/minChunk, workers*4)
	chunkSize := (n + chunks - 1) / chunks

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for start := 0; start < n; start += chunkSize {
		end := min(start+chunkSize, n)
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return fn(ctx, start, end)
		})
	}
	return g.Wait()
}
