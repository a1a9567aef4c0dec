// Package worker runs independent per-file tasks with bounded
// concurrency. The format engine itself is stateless, so files can be
// processed in parallel freely; the bound only protects the file system
// and memory.
package worker

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Task pairs an input with its result or failure. Results keep the input
// order regardless of completion order.
type Task[T any, R any] struct {
	Input  T
	Result R
	Err    error
}

// Run processes every input through fn with at most workers goroutines.
// Per-task failures land in the corresponding Task; only context
// cancellation stops the batch early.
func Run[T any, R any](ctx context.Context, inputs []T, workers int, fn func(context.Context, T) (R, error)) []Task[T, R] {
	if workers < 1 {
		workers = 1
	}

	results := make([]Task[T, R], len(inputs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i := range inputs {
		i := i
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				results[i] = Task[T, R]{Input: inputs[i], Err: err}
				return nil
			}
			r, err := fn(ctx, inputs[i])
			results[i] = Task[T, R]{Input: inputs[i], Result: r, Err: err}
			return nil
		})
	}

	// Workers never return errors themselves, so Wait only synchronizes.
	_ = g.Wait()
	return results
}

// Batch splits items into contiguous chunks of at most batchSize.
func Batch[T any](items []T, batchSize int) [][]T {
	if batchSize <= 0 {
		batchSize = 1
	}
	var batches [][]T
	for i := 0; i < len(items); i += batchSize {
		end := min(i+batchSize, len(items))
		batches = append(batches, items[i:end])
	}
	return batches
}
