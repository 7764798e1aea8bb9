package social

import (
	"context"
	"log"
	"time"
)

// SourceFetch retrieves all candidate items for one named source (a
// subreddit, an account handle, a search query).
type SourceFetch func(ctx context.Context, origin string) ([]ContentItem, error)

// AggregateResult is the merged candidate set of a fan-out run.
type AggregateResult struct {
	Items     []ContentItem
	Succeeded []string
	Failed    []string
}

// Aggregate queries sources sequentially, merging their items into one
// candidate set. Sources run one at a time with a fixed delay in between; the
// provider rate-limits per key, so parallel fan-out would only multiply 429s.
//
// A source that fails with nothing recovered is recorded as skipped and does
// not abort the rest; a source that yields items before failing counts as a
// degraded success. No dedup happens here: cross-source identity is
// unreliable, duplicates pass through as-is.
func Aggregate(ctx context.Context, sources []string, delay time.Duration, fetch SourceFetch) (AggregateResult, error) {
	var result AggregateResult

	for i, origin := range sources {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		if i > 0 && delay > 0 {
			select {
			case <-ctx.Done():
				return result, ctx.Err()
			case <-time.After(delay):
			}
		}

		items, err := fetch(ctx, origin)
		if err != nil && len(items) == 0 {
			log.Printf("skipping source %s: %v", origin, err)
			result.Failed = append(result.Failed, origin)
			continue
		}
		if err != nil {
			log.Printf("partial results from %s (%d items): %v", origin, len(items), err)
		}

		result.Items = append(result.Items, items...)
		result.Succeeded = append(result.Succeeded, origin)
	}

	return result, nil
}
