package research

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/tickersocial/tickersocial/config"
)

func testService(t *testing.T, baseURL string, cacheEnabled bool) *Service {
	t.Helper()
	return NewService(&config.Config{
		APIBaseURL:       baseURL,
		SociaVaultAPIKey: "test-key",
		RequestTimeout:   5 * time.Second,
		MaxRetries:       0,
		RetryBaseDelay:   time.Millisecond,
		SourceDelay:      0,
		CacheDir:         t.TempDir(),
		CacheTTL:         time.Minute,
		CacheEnabled:     cacheEnabled,
	})
}

func subredditBody(subreddit string, score int, createdUTC int64) string {
	return fmt.Sprintf(`{
		"success": true,
		"data": {
			"posts": {
				"%s_post": {
					"id": "%s_post",
					"title": "TSLA delivery numbers discussion",
					"selftext": "Tesla beat estimates again.",
					"subreddit": "%s",
					"permalink": "/r/%s/comments/%s_post/tsla/",
					"score": %d,
					"num_comments": 40,
					"created_utc": %d
				}
			}
		}
	}`, subreddit, subreddit, subreddit, subreddit, subreddit, score, createdUTC)
}

func TestForumPostsFanOut(t *testing.T) {
	recent := time.Now().Add(-24 * time.Hour).Unix()

	var requests []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sub := r.URL.Query().Get("subreddit")
		requests = append(requests, sub)
		fmt.Fprint(w, subredditBody(sub, 100+len(requests), recent))
	}))
	defer srv.Close()

	svc := testService(t, srv.URL, false)
	report, err := svc.ForumPosts(context.Background(), ForumTarget("TSLA"))
	if err != nil {
		t.Fatalf("ForumPosts: %v", err)
	}

	if len(requests) != len(TargetSubreddits) {
		t.Fatalf("got %d requests, want one per subreddit (%d)", len(requests), len(TargetSubreddits))
	}
	if len(report.Items) != 3 {
		t.Fatalf("got %d items, want 3", len(report.Items))
	}
	if len(report.Sources.Succeeded) != 3 || len(report.Sources.Failed) != 0 {
		t.Errorf("sources = %+v", report.Sources)
	}
	for _, it := range report.Items {
		if it.Classification == nil {
			t.Errorf("item %s missing classification", it.ID)
		}
	}
}

func TestForumPostsSkipsFailedSubreddit(t *testing.T) {
	recent := time.Now().Add(-24 * time.Hour).Unix()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sub := r.URL.Query().Get("subreddit")
		if sub == "ValueInvesting" {
			w.WriteHeader(http.StatusForbidden)
			fmt.Fprint(w, `{"error": "no access"}`)
			return
		}
		fmt.Fprint(w, subredditBody(sub, 200, recent))
	}))
	defer srv.Close()

	svc := testService(t, srv.URL, false)
	report, err := svc.ForumPosts(context.Background(), ForumTarget("TSLA"))
	if err != nil {
		t.Fatalf("ForumPosts: %v", err)
	}

	if len(report.Sources.Failed) != 1 || report.Sources.Failed[0] != "ValueInvesting" {
		t.Errorf("failed sources = %v, want [ValueInvesting]", report.Sources.Failed)
	}
	if len(report.Items) != 2 {
		t.Errorf("got %d items, want 2 from the surviving subreddits", len(report.Items))
	}
}

func TestForumPostsFiltersOffTopic(t *testing.T) {
	recent := time.Now().Add(-24 * time.Hour).Unix()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{
			"success": true,
			"data": {
				"posts": {
					"on": {"id": "on", "title": "$TSLA to the moon", "subreddit": "stocks", "score": 500, "num_comments": 50, "created_utc": %d},
					"off": {"id": "off", "title": "What broker do you use?", "subreddit": "stocks", "score": 500, "num_comments": 50, "created_utc": %d}
				}
			}
		}`, recent, recent)
	}))
	defer srv.Close()

	svc := testService(t, srv.URL, false)
	target := ForumTarget("TSLA")
	target.Sources = []string{"stocks"}

	report, err := svc.ForumPosts(context.Background(), target)
	if err != nil {
		t.Fatalf("ForumPosts: %v", err)
	}
	if len(report.Items) != 1 || report.Items[0].ID != "on" {
		t.Fatalf("items = %+v, want only the on-topic post", report.Items)
	}
}

func TestFetchCacheAvoidsSecondRequest(t *testing.T) {
	recent := time.Now().Add(-24 * time.Hour).Unix()

	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		fmt.Fprint(w, subredditBody("stocks", 100, recent))
	}))
	defer srv.Close()

	svc := testService(t, srv.URL, true)
	target := ForumTarget("TSLA")
	target.Sources = []string{"stocks"}

	for i := 0; i < 2; i++ {
		if _, err := svc.ForumPosts(context.Background(), target); err != nil {
			t.Fatalf("ForumPosts run %d: %v", i+1, err)
		}
	}
	if calls != 1 {
		t.Errorf("server saw %d calls, want 1 (second run cached)", calls)
	}
}

func TestRedditTimeframe(t *testing.T) {
	cases := []struct {
		window time.Duration
		want   string
	}{
		{12 * time.Hour, "day"},
		{3 * 24 * time.Hour, "week"},
		{14 * 24 * time.Hour, "month"},
		{90 * 24 * time.Hour, "year"},
		{0, "all"},
	}
	for _, c := range cases {
		if got := redditTimeframe(c.window); got != c.want {
			t.Errorf("redditTimeframe(%v) = %q, want %q", c.window, got, c.want)
		}
	}
}
