package social

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// Normalizers map each provider payload shape onto ContentItem so the filter,
// rank and classify stages never see raw provider JSON. One normalizer per
// source kind; downstream code is entirely shape-agnostic.

// redditPostRaw is a post as served by the subreddit scrape endpoint
// (an object keyed by post id).
type redditPostRaw struct {
	ID           string  `json:"id"`
	Title        string  `json:"title"`
	Selftext     string  `json:"selftext"`
	SelftextHTML string  `json:"selftext_html"`
	URL          string  `json:"url"`
	Permalink    string  `json:"permalink"`
	Subreddit    string  `json:"subreddit"`
	Author       string  `json:"author"`
	Score        int     `json:"score"`
	NumComments  int     `json:"num_comments"`
	CreatedUTC   float64 `json:"created_utc"`
}

// NormalizeRedditPost converts a raw subreddit post into a forum_post item.
func NormalizeRedditPost(raw json.RawMessage, origin string) (ContentItem, error) {
	var post redditPostRaw
	if err := json.Unmarshal(raw, &post); err != nil {
		return ContentItem{}, fmt.Errorf("parse reddit post: %w", err)
	}
	if post.ID == "" {
		return ContentItem{}, fmt.Errorf("reddit post missing id")
	}

	body := post.Selftext
	if body == "" && post.SelftextHTML != "" {
		body = stripHTML(post.SelftextHTML)
	}

	text := post.Title
	if body != "" {
		text = post.Title + "\n\n" + body
	}

	url := post.URL
	if post.Permalink != "" {
		url = "https://www.reddit.com" + post.Permalink
	}

	if origin == "" {
		origin = post.Subreddit
	}

	return ContentItem{
		ID:        post.ID,
		Kind:      KindForumPost,
		Origin:    origin,
		Author:    post.Author,
		Text:      text,
		CreatedAt: unixToTime(post.CreatedUTC),
		Engagement: Engagement{
			Upvotes:  post.Score,
			Comments: post.NumComments,
		},
		URL: url,
	}, nil
}

// redditCommentRaw is one entry of the flat comment array returned by the
// post-comments endpoint.
type redditCommentRaw struct {
	ID         string  `json:"id"`
	Body       string  `json:"body"`
	Author     string  `json:"author"`
	Score      int     `json:"score"`
	Ups        int     `json:"ups"`
	CreatedUTC float64 `json:"created_utc"`
	Permalink  string  `json:"permalink"`
	ParentID   string  `json:"parent_id"`
}

// NormalizeRedditComment converts a raw comment into a forum_comment item.
func NormalizeRedditComment(raw json.RawMessage, origin string) (ContentItem, error) {
	var c redditCommentRaw
	if err := json.Unmarshal(raw, &c); err != nil {
		return ContentItem{}, fmt.Errorf("parse reddit comment: %w", err)
	}
	if c.ID == "" {
		return ContentItem{}, fmt.Errorf("reddit comment missing id")
	}

	score := c.Score
	if score == 0 {
		score = c.Ups
	}

	url := ""
	if c.Permalink != "" {
		url = "https://www.reddit.com" + c.Permalink
	}

	return ContentItem{
		ID:        c.ID,
		Kind:      KindForumComment,
		Origin:    origin,
		Author:    c.Author,
		Text:      c.Body,
		CreatedAt: unixToTime(c.CreatedUTC),
		Engagement: Engagement{
			Upvotes: score,
		},
		URL: url,
	}, nil
}

// tweetRaw covers both response generations the API passes through: the
// modern shape nests counts under "legacy", older payloads carry them at the
// top level. Fallbacks mirror that.
type tweetRaw struct {
	RestID string `json:"rest_id"`
	IDStr  string `json:"id_str"`
	Legacy struct {
		FullText      string `json:"full_text"`
		FavoriteCount int    `json:"favorite_count"`
		RetweetCount  int    `json:"retweet_count"`
		ReplyCount    int    `json:"reply_count"`
		CreatedAt     string `json:"created_at"`
	} `json:"legacy"`
	Text          string `json:"text"`
	FullText      string `json:"full_text"`
	FavoriteCount int    `json:"favorite_count"`
	RetweetCount  int    `json:"retweet_count"`
	ReplyCount    int    `json:"reply_count"`
	CreatedAt     string `json:"created_at"`
}

// twitterTimeLayout is the classic "Wed Oct 10 20:19:24 +0000 2018" format.
const twitterTimeLayout = "Mon Jan 02 15:04:05 -0700 2006"

// NormalizeTweet converts a raw tweet into a microblog_post item. origin is
// the account handle the tweet was fetched from.
func NormalizeTweet(raw json.RawMessage, origin string) (ContentItem, error) {
	var tw tweetRaw
	if err := json.Unmarshal(raw, &tw); err != nil {
		return ContentItem{}, fmt.Errorf("parse tweet: %w", err)
	}

	id := tw.RestID
	if id == "" {
		id = tw.IDStr
	}
	if id == "" {
		return ContentItem{}, fmt.Errorf("tweet missing id")
	}

	text := tw.Legacy.FullText
	if text == "" {
		text = tw.FullText
	}
	if text == "" {
		text = tw.Text
	}

	likes := tw.Legacy.FavoriteCount
	if likes == 0 {
		likes = tw.FavoriteCount
	}
	retweets := tw.Legacy.RetweetCount
	if retweets == 0 {
		retweets = tw.RetweetCount
	}
	replies := tw.Legacy.ReplyCount
	if replies == 0 {
		replies = tw.ReplyCount
	}

	createdAt := parseTweetTime(tw.Legacy.CreatedAt)
	if createdAt.IsZero() {
		createdAt = parseTweetTime(tw.CreatedAt)
	}

	return ContentItem{
		ID:        id,
		Kind:      KindMicroblogPost,
		Origin:    origin,
		Author:    origin,
		Text:      text,
		CreatedAt: createdAt,
		Engagement: Engagement{
			Likes:    likes,
			Reshares: retweets,
			Comments: replies,
		},
		URL: fmt.Sprintf("https://twitter.com/%s/status/%s", origin, id),
	}, nil
}

func parseTweetTime(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	if t, err := time.Parse(twitterTimeLayout, s); err == nil {
		return t
	}
	if t, err := time.Parse(time.RFC3339, strings.Replace(s, "Z", "+00:00", 1)); err == nil {
		return t
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t
	}
	return time.Time{}
}

// tiktokVideoRaw is the aweme_info object of a TikTok search item or the
// aweme_detail of a video-info response.
type tiktokVideoRaw struct {
	AwemeID    string `json:"aweme_id"`
	Desc       string `json:"desc"`
	CreateTime int64  `json:"create_time"`
	Author     struct {
		UniqueID string `json:"unique_id"`
		Nickname string `json:"nickname"`
	} `json:"author"`
	Statistics struct {
		DiggCount    int   `json:"digg_count"`
		CommentCount int   `json:"comment_count"`
		ShareCount   int   `json:"share_count"`
		PlayCount    int64 `json:"play_count"`
	} `json:"statistics"`
	TranscriptText string `json:"transcript_text"`
}

// NormalizeTikTokVideo converts an aweme object into a short_video item.
// When a transcript was fetched it is appended to the caption so the
// classifier sees both.
func NormalizeTikTokVideo(raw json.RawMessage) (ContentItem, error) {
	var v tiktokVideoRaw
	if err := json.Unmarshal(raw, &v); err != nil {
		return ContentItem{}, fmt.Errorf("parse tiktok video: %w", err)
	}
	if v.AwemeID == "" {
		return ContentItem{}, fmt.Errorf("tiktok video missing aweme_id")
	}

	text := v.Desc
	if v.TranscriptText != "" {
		text = strings.TrimSpace(text + "\n\n" + v.TranscriptText)
	}

	var createdAt time.Time
	if v.CreateTime > 0 {
		createdAt = time.Unix(v.CreateTime, 0)
	}

	return ContentItem{
		ID:        v.AwemeID,
		Kind:      KindShortVideo,
		Origin:    v.Author.UniqueID,
		Author:    v.Author.UniqueID,
		Text:      text,
		CreatedAt: createdAt,
		Engagement: Engagement{
			Likes:    v.Statistics.DiggCount,
			Comments: v.Statistics.CommentCount,
			Reshares: v.Statistics.ShareCount,
			Views:    v.Statistics.PlayCount,
		},
		URL: fmt.Sprintf("https://www.tiktok.com/@%s/video/%s", v.Author.UniqueID, v.AwemeID),
	}, nil
}

// youtubeVideoRaw is a search result with includeExtras counts.
type youtubeVideoRaw struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	URL          string `json:"url"`
	ChannelName  string `json:"channel_name"`
	PublishedAt  string `json:"published_at"`
	ViewCount    int64  `json:"view_count"`
	LikeCount    int    `json:"like_count"`
	CommentCount int    `json:"comment_count"`
}

// NormalizeYouTubeVideo converts a search result into a short_video item.
func NormalizeYouTubeVideo(raw json.RawMessage) (ContentItem, error) {
	var v youtubeVideoRaw
	if err := json.Unmarshal(raw, &v); err != nil {
		return ContentItem{}, fmt.Errorf("parse youtube video: %w", err)
	}
	if v.ID == "" {
		return ContentItem{}, fmt.Errorf("youtube video missing id")
	}

	text := v.Title
	if v.Description != "" {
		text = v.Title + "\n\n" + v.Description
	}

	var createdAt time.Time
	if v.PublishedAt != "" {
		if t, err := time.Parse(time.RFC3339, v.PublishedAt); err == nil {
			createdAt = t
		}
	}

	url := v.URL
	if url == "" {
		url = "https://www.youtube.com/watch?v=" + v.ID
	}

	return ContentItem{
		ID:        v.ID,
		Kind:      KindShortVideo,
		Origin:    v.ChannelName,
		Author:    v.ChannelName,
		Text:      text,
		CreatedAt: createdAt,
		Engagement: Engagement{
			Likes:    v.LikeCount,
			Comments: v.CommentCount,
			Views:    v.ViewCount,
		},
		URL: url,
	}, nil
}

// unixToTime converts a float seconds timestamp; zero stays the zero time so
// the recency filter can fail closed on it.
func unixToTime(sec float64) time.Time {
	if sec <= 0 {
		return time.Time{}
	}
	return time.Unix(int64(sec), 0)
}

// stripHTML extracts plain text from an HTML fragment.
func stripHTML(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return html
	}
	return strings.TrimSpace(doc.Text())
}
