package social

import (
	"context"
	"errors"
	"testing"
)

func TestAggregatePartialFailureContainment(t *testing.T) {
	fetch := func(ctx context.Context, origin string) ([]ContentItem, error) {
		if origin == "forbidden" {
			return nil, errors.New("access forbidden")
		}
		return []ContentItem{{ID: origin + "-1", Origin: origin}}, nil
	}

	result, err := Aggregate(context.Background(), []string{"stocks", "forbidden", "options"}, 0, fetch)
	if err != nil {
		t.Fatalf("Aggregate: %v", err)
	}

	if len(result.Items) != 2 {
		t.Errorf("expected items from 2 sources, got %d", len(result.Items))
	}
	if len(result.Failed) != 1 || result.Failed[0] != "forbidden" {
		t.Errorf("expected exactly one failed source, got %v", result.Failed)
	}
	if len(result.Succeeded) != 2 {
		t.Errorf("expected 2 succeeded sources, got %v", result.Succeeded)
	}
}

func TestAggregatePartialYieldCountsAsSuccess(t *testing.T) {
	fetch := func(ctx context.Context, origin string) ([]ContentItem, error) {
		// Pagination failed mid-run but recovered one page.
		return []ContentItem{{ID: "partial"}}, errors.New("rate limited")
	}

	result, err := Aggregate(context.Background(), []string{"stocks"}, 0, fetch)
	if err != nil {
		t.Fatalf("Aggregate: %v", err)
	}
	if len(result.Items) != 1 {
		t.Errorf("expected recovered items to be kept, got %d", len(result.Items))
	}
	if len(result.Failed) != 0 {
		t.Errorf("source with recovered items must not count as failed: %v", result.Failed)
	}
}

func TestAggregatePreservesSourceOrder(t *testing.T) {
	var visited []string
	fetch := func(ctx context.Context, origin string) ([]ContentItem, error) {
		visited = append(visited, origin)
		return nil, nil
	}

	sources := []string{"a", "b", "c"}
	if _, err := Aggregate(context.Background(), sources, 0, fetch); err != nil {
		t.Fatalf("Aggregate: %v", err)
	}
	for i, s := range sources {
		if visited[i] != s {
			t.Fatalf("sources visited out of order: %v", visited)
		}
	}
}

func TestAggregateStopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	var calls int
	fetch := func(ctx context.Context, origin string) ([]ContentItem, error) {
		calls++
		cancel() // cancel after the first source completes
		return []ContentItem{{ID: origin}}, nil
	}

	result, err := Aggregate(ctx, []string{"a", "b", "c"}, 0, fetch)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if calls != 1 {
		t.Errorf("expected 1 fetch before cancellation, got %d", calls)
	}
	if len(result.Items) != 1 {
		t.Errorf("items fetched before cancellation should be returned, got %d", len(result.Items))
	}
}
