package research

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/tickersocial/tickersocial/internal/social"
	"github.com/tickersocial/tickersocial/pkg/sociavault"
)

// subredditData is the payload of the subreddit scrape endpoint: posts keyed
// by id.
type subredditData struct {
	Posts json.RawMessage `json:"posts"`
}

// ForumPosts fans out over the target subreddits, filters the merged posts
// down to the ticker and builds the report. A subreddit that cannot be
// fetched is skipped, not fatal.
func (s *Service) ForumPosts(ctx context.Context, target social.QueryTarget) (*social.Report, error) {
	sources := target.Sources
	if len(sources) == 0 {
		sources = TargetSubreddits
	}

	agg, err := social.Aggregate(ctx, sources, s.cfg.SourceDelay, func(ctx context.Context, subreddit string) ([]social.ContentItem, error) {
		return s.fetchSubreddit(ctx, subreddit, target.Window)
	})
	if err != nil {
		return nil, err
	}

	return finalize(agg, target, time.Now()), nil
}

func (s *Service) fetchSubreddit(ctx context.Context, subreddit string, window time.Duration) ([]social.ContentItem, error) {
	params := map[string]string{
		"subreddit": subreddit,
		"timeframe": redditTimeframe(window),
		"sort":      "top",
		"trim":      "false",
	}

	body, err := s.fetch(ctx, "reddit", "subreddit", "/scrape/reddit/subreddit", params)
	if err != nil {
		return nil, err
	}

	data, err := sociavault.DecodeEnvelope(body)
	if err != nil {
		return nil, err
	}

	var sd subredditData
	if err := json.Unmarshal(data, &sd); err != nil {
		return nil, fmt.Errorf("parse subreddit payload: %w", err)
	}

	raws, err := sociavault.ItemCollection(sd.Posts)
	if err != nil {
		return nil, err
	}

	items := make([]social.ContentItem, 0, len(raws))
	for _, raw := range raws {
		item, err := social.NormalizeRedditPost(raw, subreddit)
		if err != nil {
			continue
		}
		items = append(items, item)
	}
	return items, nil
}

// redditTimeframe picks the coarsest listing timeframe that still covers the
// lookback window; the recency stage trims to the exact range afterwards.
func redditTimeframe(window time.Duration) string {
	switch {
	case window <= 0:
		return "all"
	case window <= 24*time.Hour:
		return "day"
	case window <= 7*24*time.Hour:
		return "week"
	case window <= 31*24*time.Hour:
		return "month"
	case window <= 366*24*time.Hour:
		return "year"
	default:
		return "all"
	}
}
