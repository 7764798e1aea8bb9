package research

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/tickersocial/tickersocial/internal/social"
	"github.com/tickersocial/tickersocial/pkg/sociavault"
)

// userTweetsData is the payload of the user-tweets endpoint.
type userTweetsData struct {
	Tweets json.RawMessage `json:"tweets"`
}

// MicroblogPosts scans the target account timelines for ticker mentions.
// The provider has no search endpoint for this platform, so relevance comes
// entirely from the local topic filter over curated accounts.
func (s *Service) MicroblogPosts(ctx context.Context, target social.QueryTarget) (*social.Report, error) {
	sources := target.Sources
	if len(sources) == 0 {
		sources = AccountsFor(target.Topic)
	}

	agg, err := social.Aggregate(ctx, sources, s.cfg.SourceDelay, s.fetchUserTweets)
	if err != nil {
		return nil, err
	}

	return finalize(agg, target, time.Now()), nil
}

func (s *Service) fetchUserTweets(ctx context.Context, handle string) ([]social.ContentItem, error) {
	params := map[string]string{
		"handle": handle,
		"trim":   "false",
	}

	body, err := s.fetch(ctx, "twitter", "user_tweets", "/scrape/twitter/user-tweets", params)
	if err != nil {
		return nil, err
	}

	data, err := sociavault.DecodeEnvelope(body)
	if err != nil {
		return nil, err
	}

	var td userTweetsData
	if err := json.Unmarshal(data, &td); err != nil {
		return nil, fmt.Errorf("parse user tweets payload: %w", err)
	}

	raws, err := sociavault.ItemCollection(td.Tweets)
	if err != nil {
		return nil, err
	}

	items := make([]social.ContentItem, 0, len(raws))
	for _, raw := range raws {
		item, err := social.NormalizeTweet(raw, handle)
		if err != nil {
			continue
		}
		items = append(items, item)
	}
	return items, nil
}
