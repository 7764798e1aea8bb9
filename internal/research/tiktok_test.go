package research

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func tiktokSearchBody(startID, count int, cursor any, createdAt int64) string {
	var items []string
	for i := 0; i < count; i++ {
		items = append(items, fmt.Sprintf(`{
			"aweme_info": {
				"aweme_id": "%d",
				"desc": "#TSLA stock is moving",
				"create_time": %d,
				"author": {"unique_id": "trader%d"},
				"statistics": {"digg_count": 100, "play_count": %d}
			}
		}`, startID+i, createdAt, startID+i, 1000*(startID+i)))
	}
	cursorField := ""
	if cursor != nil {
		cursorField = fmt.Sprintf(`, "cursor": %v`, cursor)
	}
	return fmt.Sprintf(`{"success": true, "data": {"search_item_list": [%s]%s}}`,
		strings.Join(items, ","), cursorField)
}

func TestShortVideosPaginates(t *testing.T) {
	created := time.Now().Add(-24 * time.Hour).Unix()

	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		switch r.URL.Query().Get("cursor") {
		case "":
			fmt.Fprint(w, tiktokSearchBody(1, 2, 20, created))
		case "20":
			// Numeric 0 cursor is the terminal marker.
			fmt.Fprint(w, tiktokSearchBody(3, 2, 0, created))
		default:
			t.Errorf("unexpected cursor %q", r.URL.Query().Get("cursor"))
		}
	}))
	defer srv.Close()

	svc := testService(t, srv.URL, false)
	target := ShortVideoTarget("TSLA", "")
	target.MaxResults = 10

	report, err := svc.ShortVideos(context.Background(), target, false)
	if err != nil {
		t.Fatalf("ShortVideos: %v", err)
	}

	if calls != 2 {
		t.Errorf("server saw %d calls, want 2 pages", calls)
	}
	if len(report.Items) != 4 {
		t.Fatalf("got %d items, want 4 across both pages", len(report.Items))
	}
	// Ranked by views descending.
	if report.Items[0].Engagement.Views != 4000 {
		t.Errorf("top item views = %d, want 4000", report.Items[0].Engagement.Views)
	}
}

func TestShortVideosTruncatesToMax(t *testing.T) {
	created := time.Now().Add(-24 * time.Hour).Unix()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, tiktokSearchBody(1, 5, 0, created))
	}))
	defer srv.Close()

	svc := testService(t, srv.URL, false)
	target := ShortVideoTarget("TSLA", "")
	target.MaxResults = 3

	report, err := svc.ShortVideos(context.Background(), target, false)
	if err != nil {
		t.Fatalf("ShortVideos: %v", err)
	}
	if len(report.Items) != 3 {
		t.Fatalf("got %d items, want 3", len(report.Items))
	}
}

func TestShortVideosTranscriptEnrichment(t *testing.T) {
	created := time.Now().Add(-24 * time.Hour).Unix()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.Contains(r.URL.Path, "video-info") {
			if r.URL.Query().Get("get_transcript") != "true" {
				t.Error("detail fetch missing get_transcript=true")
			}
			fmt.Fprintf(w, `{
				"aweme_detail": {
					"aweme_id": "1",
					"desc": "#TSLA stock is moving",
					"create_time": %d,
					"author": {"unique_id": "trader1"},
					"statistics": {"digg_count": 100, "play_count": 1000}
				},
				"transcript": "WEBVTT\n\n00:00:00.000 --> 00:00:02.000\nbig rally incoming\n\n00:00:02.000 --> 00:00:04.000\ntime to buy"
			}`, created)
			return
		}
		fmt.Fprint(w, tiktokSearchBody(1, 1, 0, created))
	}))
	defer srv.Close()

	svc := testService(t, srv.URL, false)
	report, err := svc.ShortVideos(context.Background(), ShortVideoTarget("TSLA", ""), true)
	if err != nil {
		t.Fatalf("ShortVideos: %v", err)
	}
	if len(report.Items) != 1 {
		t.Fatalf("got %d items, want 1", len(report.Items))
	}

	item := report.Items[0]
	if !strings.Contains(item.Text, "big rally incoming time to buy") {
		t.Errorf("transcript not appended, text = %q", item.Text)
	}
	if item.Classification == nil || item.Classification.Category != "bullish" {
		t.Errorf("transcript keywords should drive sentiment, got %+v", item.Classification)
	}
}

func TestParseWebVTT(t *testing.T) {
	in := "WEBVTT\n\n00:00:00.000 --> 00:00:01.500\nhello there\n\n00:00:01.500 --> 00:00:03.000\ngeneral market"
	if got := parseWebVTT(in); got != "hello there general market" {
		t.Errorf("parseWebVTT = %q", got)
	}
	if got := parseWebVTT(""); got != "" {
		t.Errorf("empty transcript should stay empty, got %q", got)
	}
}

func TestTikTokDatePosted(t *testing.T) {
	cases := []struct {
		window time.Duration
		want   string
	}{
		{12 * time.Hour, "yesterday"},
		{5 * 24 * time.Hour, "this-week"},
		{30 * 24 * time.Hour, "this-month"},
		{60 * 24 * time.Hour, "last-3-months"},
		{0, ""},
	}
	for _, c := range cases {
		if got := tiktokDatePosted(c.window); got != c.want {
			t.Errorf("tiktokDatePosted(%v) = %q, want %q", c.window, got, c.want)
		}
	}
}
