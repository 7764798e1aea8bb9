package research

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func tweetBody(handle string, likes, retweets int, createdAt time.Time) string {
	return fmt.Sprintf(`{
		"success": true,
		"data": {
			"tweets": [
				{
					"rest_id": "%s_1",
					"legacy": {
						"full_text": "Breaking: $NVDA posts record quarter",
						"favorite_count": %d,
						"retweet_count": %d,
						"created_at": "%s"
					}
				},
				{
					"rest_id": "%s_2",
					"legacy": {
						"full_text": "Good morning from the newsroom",
						"favorite_count": 500,
						"retweet_count": 100,
						"created_at": "%s"
					}
				}
			]
		}
	}`, handle, likes, retweets, createdAt.Format("Mon Jan 02 15:04:05 -0700 2006"),
		handle, createdAt.Format("Mon Jan 02 15:04:05 -0700 2006"))
}

func TestMicroblogPostsScansAccounts(t *testing.T) {
	recent := time.Now().Add(-12 * time.Hour)

	var handles []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handle := r.URL.Query().Get("handle")
		handles = append(handles, handle)
		fmt.Fprint(w, tweetBody(handle, 50, 10, recent))
	}))
	defer srv.Close()

	svc := testService(t, srv.URL, false)
	target := MicroblogTarget("NVDA")
	target.Sources = []string{"CNBC", "Bloomberg"}

	report, err := svc.MicroblogPosts(context.Background(), target)
	if err != nil {
		t.Fatalf("MicroblogPosts: %v", err)
	}

	if len(handles) != 2 {
		t.Fatalf("scanned %d handles, want 2", len(handles))
	}
	// Only the ticker-mentioning tweet from each account survives the topic
	// filter, despite the other's higher engagement.
	if len(report.Items) != 2 {
		t.Fatalf("got %d items, want 2", len(report.Items))
	}
	for _, it := range report.Items {
		if it.Engagement.Likes != 50 {
			t.Errorf("item %s should be the ticker mention, got %+v", it.ID, it.Engagement)
		}
	}
}

func TestMicroblogPostsEngagementFloor(t *testing.T) {
	recent := time.Now().Add(-12 * time.Hour)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Likes below the floor, retweets above: OR semantics keep it.
		fmt.Fprint(w, tweetBody(r.URL.Query().Get("handle"), 2, 8, recent))
	}))
	defer srv.Close()

	svc := testService(t, srv.URL, false)
	target := MicroblogTarget("NVDA")
	target.Sources = []string{"CNBC"}

	report, err := svc.MicroblogPosts(context.Background(), target)
	if err != nil {
		t.Fatalf("MicroblogPosts: %v", err)
	}
	if len(report.Items) != 1 {
		t.Fatalf("got %d items, want 1 kept via retweet floor", len(report.Items))
	}
}

func TestAccountsForMergesTickerHandles(t *testing.T) {
	accounts := AccountsFor("TSLA")
	want := len(FinancialAccounts) + len(TickerAccounts["TSLA"])
	if len(accounts) != want {
		t.Fatalf("got %d accounts, want %d", len(accounts), want)
	}

	if got := AccountsFor("ZZZZ"); len(got) != len(FinancialAccounts) {
		t.Errorf("unmapped ticker should get the general accounts only, got %d", len(got))
	}
}
