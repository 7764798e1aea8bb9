package research

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/tickersocial/tickersocial/internal/social"
	"github.com/tickersocial/tickersocial/pkg/sociavault"
)

// youtubeSearchData is the payload of the video search endpoint. Pagination
// uses an opaque continuation token instead of a numeric cursor.
type youtubeSearchData struct {
	Videos            json.RawMessage   `json:"videos"`
	ContinuationToken sociavault.Cursor `json:"continuationToken"`
}

func parseYouTubeSearchPage(body []byte) (*sociavault.Page, error) {
	data, err := sociavault.DecodeEnvelope(body)
	if err != nil {
		return nil, err
	}

	var sd youtubeSearchData
	if err := json.Unmarshal(data, &sd); err != nil {
		return nil, fmt.Errorf("parse search payload: %w", err)
	}

	items, err := sociavault.ItemCollection(sd.Videos)
	if err != nil {
		return nil, err
	}

	return &sociavault.Page{Items: items, Cursor: sd.ContinuationToken}, nil
}

// VideoSearch searches the long-form video platform for the target query and
// builds the report. Like/comment counts ride along in the search results via
// includeExtras, so no per-video detail fetch is needed.
func (s *Service) VideoSearch(ctx context.Context, target social.QueryTarget) (*social.Report, error) {
	query := target.Query
	if query == "" && target.Topic != "" {
		query = target.Topic + " stock"
	}

	params := map[string]string{
		"query":         query,
		"sortBy":        "relevance",
		"includeExtras": "true",
	}
	if ud := youtubeUploadDate(target.Window); ud != "" {
		params["uploadDate"] = ud
	}

	agg, err := social.Aggregate(ctx, []string{query}, 0, func(ctx context.Context, _ string) ([]social.ContentItem, error) {
		raws, err := s.paginate(ctx, "youtube", "search", sociavault.PageRequest{
			Path:        "/scrape/youtube/search",
			Params:      params,
			CursorParam: "continuationToken",
			MaxItems:    target.MaxResults,
			Parse:       parseYouTubeSearchPage,
		})

		items := make([]social.ContentItem, 0, len(raws))
		for _, raw := range raws {
			item, nerr := social.NormalizeYouTubeVideo(raw)
			if nerr != nil {
				continue
			}
			items = append(items, item)
		}
		return items, err
	})
	if err != nil {
		return nil, err
	}

	return finalize(agg, target, time.Now()), nil
}

// youtubeUploadDate maps the lookback window onto the search endpoint's
// upload-date vocabulary. An empty return means no date filter.
func youtubeUploadDate(window time.Duration) string {
	switch {
	case window <= 0:
		return ""
	case window <= 24*time.Hour:
		return "today"
	case window <= 7*24*time.Hour:
		return "this_week"
	case window <= 31*24*time.Hour:
		return "this_month"
	case window <= 366*24*time.Hour:
		return "this_year"
	default:
		return ""
	}
}
