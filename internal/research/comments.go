package research

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/tickersocial/tickersocial/internal/social"
	"github.com/tickersocial/tickersocial/pkg/sociavault"
)

// PostComments fetches the top comments of a single forum post, tags each
// one by conversational role and builds the report. The simple comments
// endpoint returns a bare array rather than the usual response envelope.
func (s *Service) PostComments(ctx context.Context, postURL string, amount int, target social.QueryTarget) (*social.Report, error) {
	if amount <= 0 {
		amount = DefaultMinComments
	}

	params := map[string]string{
		"url":    postURL,
		"amount": strconv.Itoa(amount),
		"trim":   "false",
	}

	origin := ExtractPostID(postURL)
	if origin == "" {
		return nil, fmt.Errorf("cannot extract post id from url %q", postURL)
	}

	agg, err := social.Aggregate(ctx, []string{origin}, 0, func(ctx context.Context, origin string) ([]social.ContentItem, error) {
		body, err := s.fetch(ctx, "reddit", "comments", "/scrape/reddit/post/comments/simple", params)
		if err != nil {
			return nil, err
		}

		raws, err := sociavault.ItemCollection(body)
		if err != nil {
			return nil, err
		}

		items := make([]social.ContentItem, 0, len(raws))
		for _, raw := range raws {
			item, nerr := social.NormalizeRedditComment(raw, origin)
			if nerr != nil {
				continue
			}
			items = append(items, item)
		}
		return items, nil
	})
	if err != nil {
		return nil, err
	}

	now := time.Now()
	items := social.ApplyFilters(agg.Items, target, now)
	items = social.Rank(items, target.MaxResults)
	items = social.ClassifyItems(items)
	items = social.TagItems(items)
	return social.BuildReport(items, target, agg.Succeeded, agg.Failed, now), nil
}

// ExtractPostID pulls the post id out of a canonical post URL of the form
// .../r/{subreddit}/comments/{id}/{slug}/.
func ExtractPostID(postURL string) string {
	parts := strings.Split(postURL, "/")
	for i, part := range parts {
		if part == "comments" && i+1 < len(parts) {
			return parts[i+1]
		}
	}
	return ""
}
