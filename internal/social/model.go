// Package social holds the normalized content model and the filter, rank,
// classify and report stages shared by every platform.
package social

import "time"

// SourceKind identifies the platform shape a content item came from.
type SourceKind string

const (
	KindForumPost     SourceKind = "forum_post"
	KindForumComment  SourceKind = "forum_comment"
	KindMicroblogPost SourceKind = "microblog_post"
	KindShortVideo    SourceKind = "short_video"
)

// Engagement holds audience interaction counts. Which fields are populated
// depends on the source kind: forum items carry upvotes/comments, microblog
// posts likes/reshares/comments, short videos likes/comments/shares/views.
type Engagement struct {
	Upvotes  int   `json:"upvotes,omitempty"`
	Comments int   `json:"comments,omitempty"`
	Likes    int   `json:"likes,omitempty"`
	Reshares int   `json:"reshares,omitempty"`
	Views    int64 `json:"views,omitempty"`
}

// ContentItem is one normalized unit of social content. Text may be empty
// (link-only posts); a zero CreatedAt means the source did not report a
// timestamp and excludes the item from recency filtering.
type ContentItem struct {
	ID         string     `json:"id"`
	Kind       SourceKind `json:"source_kind"`
	Origin     string     `json:"origin"`
	Author     string     `json:"author,omitempty"`
	Text       string     `json:"text"`
	CreatedAt  time.Time  `json:"created_at,omitzero"`
	Engagement Engagement `json:"engagement"`
	URL        string     `json:"url,omitempty"`

	// Attached after ranking; never part of filtering input.
	Classification *Classification `json:"classification,omitempty"`
	Tags           []CommentTag    `json:"tags,omitempty"`
}

// EngagementFloor holds per-metric minimums. Floors are OR-combined: an item
// passes when any configured (non-zero) metric meets its floor, so both
// popular and heavily-discussed content survives, including low-score
// controversial posts.
type EngagementFloor struct {
	MinUpvotes  int `json:"min_upvotes,omitempty"`
	MinComments int `json:"min_comments,omitempty"`
	MinLikes    int `json:"min_likes,omitempty"`
	MinReshares int `json:"min_reshares,omitempty"`
}

// Meets reports whether the engagement satisfies any configured floor.
// With no floors configured everything passes.
func (f EngagementFloor) Meets(e Engagement) bool {
	configured := false
	if f.MinUpvotes > 0 {
		configured = true
		if e.Upvotes >= f.MinUpvotes {
			return true
		}
	}
	if f.MinComments > 0 {
		configured = true
		if e.Comments >= f.MinComments {
			return true
		}
	}
	if f.MinLikes > 0 {
		configured = true
		if e.Likes >= f.MinLikes {
			return true
		}
	}
	if f.MinReshares > 0 {
		configured = true
		if e.Reshares >= f.MinReshares {
			return true
		}
	}
	return !configured
}

// QueryTarget is the search intent for one research run.
type QueryTarget struct {
	Topic   string   `json:"topic,omitempty"`   // ticker symbol; empty for untargeted listing queries
	Aliases []string `json:"aliases,omitempty"` // company name, cashtag handles
	Query   string   `json:"query,omitempty"`   // literal search query override

	Window     time.Duration   `json:"window,omitempty"` // how far back to look; 0 disables the recency stage
	Sources    []string        `json:"sources,omitempty"`
	Floor      EngagementFloor `json:"engagement_floor"`
	MaxResults int             `json:"max_results"`
}
