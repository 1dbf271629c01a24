package embedding

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

const defaultBatchConcurrency = 4

// BatchOptions tunes EmbedBatch.
type BatchOptions struct {
	Concurrency int
	Limiter     *rate.Limiter
}

// EmbedBatch embeds texts concurrently. The result at position i always
// belongs to texts[i]. The first failure cancels the remaining calls and
// no partial result is returned.
func EmbedBatch(ctx context.Context, e Embedder, texts []string, opts BatchOptions) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}
	limit := opts.Concurrency
	if limit <= 0 {
		limit = defaultBatchConcurrency
	}

	results := make([][]float32, len(texts))
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i, text := range texts {
		g.Go(func() error {
			if opts.Limiter != nil {
				if err := opts.Limiter.Wait(gCtx); err != nil {
					return fmt.Errorf("embedding text %d: %w", i, err)
				}
			}
			vec, err := e.Embed(gCtx, text)
			if err != nil {
				return fmt.Errorf("embedding text %d: %w", i, err)
			}
			results[i] = vec
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
