package research

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/tickersocial/tickersocial/internal/social"
)

func TestPostCommentsTagsAndRanks(t *testing.T) {
	recent := time.Now().Add(-2 * time.Hour).Unix()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("amount") != "25" {
			t.Errorf("amount = %q, want 25", q.Get("amount"))
		}
		// Bare array, no envelope.
		fmt.Fprintf(w, `[
			{"id": "c1", "body": "Is this priced in already?", "score": 5, "created_utc": %d},
			{"id": "c2", "body": "I agree, the data clearly supports a breakout here based on my research.", "score": 80, "created_utc": %d}
		]`, recent, recent)
	}))
	defer srv.Close()

	svc := testService(t, srv.URL, false)
	url := "https://www.reddit.com/r/stocks/comments/abc123/tsla_earnings/"

	report, err := svc.PostComments(context.Background(), url, 25, social.QueryTarget{})
	if err != nil {
		t.Fatalf("PostComments: %v", err)
	}
	if len(report.Items) != 2 {
		t.Fatalf("got %d items, want 2", len(report.Items))
	}
	if report.Items[0].ID != "c2" {
		t.Errorf("top comment = %s, want highest-scored c2", report.Items[0].ID)
	}

	hasTag := func(item social.ContentItem, tag social.CommentTag) bool {
		for _, got := range item.Tags {
			if got == tag {
				return true
			}
		}
		return false
	}

	if !hasTag(report.Items[0], social.TagAgreement) || !hasTag(report.Items[0], social.TagDataDriven) {
		t.Errorf("c2 tags = %v, want agreement and data_driven", report.Items[0].Tags)
	}
	if !hasTag(report.Items[1], social.TagQuestion) {
		t.Errorf("c1 tags = %v, want question", report.Items[1].Tags)
	}
	if report.Items[0].Classification == nil {
		t.Error("comments should still carry sentiment")
	}
}

func TestPostCommentsRejectsBadURL(t *testing.T) {
	svc := testService(t, "http://127.0.0.1:0", false)
	if _, err := svc.PostComments(context.Background(), "https://example.com/not-a-post", 5, social.QueryTarget{}); err == nil {
		t.Fatal("expected error for url without a post id")
	}
}

func TestExtractPostID(t *testing.T) {
	cases := []struct {
		url  string
		want string
	}{
		{"https://www.reddit.com/r/stocks/comments/abc123/title/", "abc123"},
		{"https://reddit.com/r/options/comments/xyz", "xyz"},
		{"https://example.com/nothing", ""},
	}
	for _, c := range cases {
		if got := ExtractPostID(c.url); got != c.want {
			t.Errorf("ExtractPostID(%q) = %q, want %q", c.url, got, c.want)
		}
	}
}
