package research

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/tickersocial/tickersocial/internal/social"
	"github.com/tickersocial/tickersocial/pkg/sociavault"
)

// tiktokSearchData is the payload of the keyword search endpoint. The result
// collection arrives as either an object keyed by index or a plain array;
// the cursor is numeric and 0 means end-of-results.
type tiktokSearchData struct {
	SearchItems json.RawMessage   `json:"search_item_list"`
	Cursor      sociavault.Cursor `json:"cursor"`
}

func parseTikTokSearchPage(body []byte) (*sociavault.Page, error) {
	data, err := sociavault.DecodeEnvelope(body)
	if err != nil {
		return nil, err
	}

	var sd tiktokSearchData
	if err := json.Unmarshal(data, &sd); err != nil {
		return nil, fmt.Errorf("parse search payload: %w", err)
	}

	entries, err := sociavault.ItemCollection(sd.SearchItems)
	if err != nil {
		return nil, err
	}

	page := &sociavault.Page{Cursor: sd.Cursor}
	for _, entry := range entries {
		var wrap struct {
			AwemeInfo json.RawMessage `json:"aweme_info"`
		}
		if err := json.Unmarshal(entry, &wrap); err != nil || len(wrap.AwemeInfo) == 0 {
			continue
		}
		page.Items = append(page.Items, wrap.AwemeInfo)
	}
	return page, nil
}

// ShortVideos searches the short-video platform for the target query and
// builds the report. With withTranscripts set, each hit is enriched through
// the video-info endpoint so the classifier sees the spoken words too; a
// failed detail fetch keeps the plain search result.
func (s *Service) ShortVideos(ctx context.Context, target social.QueryTarget, withTranscripts bool) (*social.Report, error) {
	query := target.Query
	if query == "" && target.Topic != "" {
		query = "#" + target.Topic + " stock"
	}

	params := map[string]string{
		"query":   query,
		"sort_by": "relevance",
	}
	if dp := tiktokDatePosted(target.Window); dp != "" {
		params["date_posted"] = dp
	}

	agg, err := social.Aggregate(ctx, []string{query}, 0, func(ctx context.Context, _ string) ([]social.ContentItem, error) {
		raws, err := s.paginate(ctx, "tiktok", "search", sociavault.PageRequest{
			Path:        "/scrape/tiktok/search/keyword",
			Params:      params,
			CursorParam: "cursor",
			MaxItems:    target.MaxResults,
			Parse:       parseTikTokSearchPage,
		})

		items := make([]social.ContentItem, 0, len(raws))
		for _, raw := range raws {
			item, nerr := social.NormalizeTikTokVideo(raw)
			if nerr != nil {
				continue
			}
			if withTranscripts {
				item = s.enrichVideo(ctx, item)
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

// videoInfoResponse carries the detail payload plus a raw WEBVTT transcript.
type videoInfoResponse struct {
	AwemeDetail json.RawMessage `json:"aweme_detail"`
	Transcript  string          `json:"transcript"`
}

// enrichVideo swaps a search hit for its full detail record and appends the
// transcript text. Detail failures are logged and the original item kept.
func (s *Service) enrichVideo(ctx context.Context, item social.ContentItem) social.ContentItem {
	params := map[string]string{
		"url":            item.URL,
		"get_transcript": "true",
	}

	body, err := s.fetch(ctx, "tiktok", "video_info", "/scrape/tiktok/video-info", params)
	if err != nil {
		log.Printf("video detail fetch failed for %s: %v", item.ID, err)
		return item
	}

	var resp videoInfoResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return item
	}

	if len(resp.AwemeDetail) > 0 {
		if detail, err := social.NormalizeTikTokVideo(resp.AwemeDetail); err == nil {
			detail.URL = item.URL
			item = detail
		}
	}

	if transcript := parseWebVTT(resp.Transcript); transcript != "" {
		item.Text = strings.TrimSpace(item.Text + "\n\n" + transcript)
	}
	return item
}

// parseWebVTT flattens a WEBVTT transcript to plain text, dropping the
// header, cue timings and blank lines.
func parseWebVTT(webvtt string) string {
	if webvtt == "" {
		return ""
	}

	var parts []string
	for _, line := range strings.Split(webvtt, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "WEBVTT") || strings.Contains(line, "-->") {
			continue
		}
		parts = append(parts, line)
	}
	return strings.Join(parts, " ")
}

// tiktokDatePosted maps the lookback window onto the search endpoint's date
// filter vocabulary. An empty return means no date filter.
func tiktokDatePosted(window time.Duration) string {
	switch {
	case window <= 0:
		return ""
	case window <= 24*time.Hour:
		return "yesterday"
	case window <= 7*24*time.Hour:
		return "this-week"
	case window <= 31*24*time.Hour:
		return "this-month"
	case window <= 92*24*time.Hour:
		return "last-3-months"
	case window <= 183*24*time.Hour:
		return "last-6-months"
	default:
		return ""
	}
}
