package research

import (
	"context"
	"encoding/json"
	"time"

	"github.com/tickersocial/tickersocial/config"
	"github.com/tickersocial/tickersocial/internal/social"
	"github.com/tickersocial/tickersocial/pkg/sociavault"
)

// Service runs research operations against the SociaVault API.
type Service struct {
	client *sociavault.Client
	cache  *sociavault.CacheManager
	cfg    *config.Config
}

func NewService(cfg *config.Config) *Service {
	return &Service{
		client: sociavault.NewClient(cfg),
		cache:  sociavault.NewCacheManager(cfg.CacheDir, cfg.CacheTTL, cfg.CacheEnabled),
		cfg:    cfg,
	}
}

// Credits reports the account's remaining API credits.
func (s *Service) Credits(ctx context.Context) (*sociavault.Credits, error) {
	return s.client.CheckCredits(ctx)
}

// fetch wraps a single GET with the response cache so repeated runs inside
// the TTL window do not spend credits.
func (s *Service) fetch(ctx context.Context, source, method, path string, params map[string]string) ([]byte, error) {
	var cached json.RawMessage
	if s.cache.Get(source, method, params, &cached) {
		return cached, nil
	}

	body, err := s.client.Get(ctx, path, params)
	if err != nil {
		return nil, err
	}

	s.cache.Set(source, method, params, json.RawMessage(body))
	return body, nil
}

// paginate wraps a multi-page fetch with the response cache, keyed on the
// request parameters plus the item cap.
func (s *Service) paginate(ctx context.Context, source, method string, req sociavault.PageRequest) ([]json.RawMessage, error) {
	key := map[string]any{"params": req.Params, "max": req.MaxItems}

	var cached []json.RawMessage
	if s.cache.Get(source, method, key, &cached) {
		return cached, nil
	}

	items, err := s.client.Paginate(ctx, req)
	if err != nil {
		return items, err
	}

	s.cache.Set(source, method, key, items)
	return items, nil
}

// finalize runs the shared pipeline stages over a merged candidate set and
// assembles the report.
func finalize(agg social.AggregateResult, target social.QueryTarget, now time.Time) *social.Report {
	items := social.ApplyFilters(agg.Items, target, now)
	items = social.Rank(items, target.MaxResults)
	items = social.ClassifyItems(items)
	return social.BuildReport(items, target, agg.Succeeded, agg.Failed, now)
}
