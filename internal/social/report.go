package social

import "time"

// SourceStats records which origins a fan-out run reached. A run with every
// source in Failed could not reach the provider at all; an empty item list
// with succeeded sources is just an empty (but successful) result.
type SourceStats struct {
	Queried   []string `json:"queried"`
	Succeeded []string `json:"succeeded"`
	Failed    []string `json:"failed,omitempty"`
}

// Summary aggregates engagement and classification statistics over the
// surviving items.
type Summary struct {
	TotalItems int `json:"total_items"`

	TotalUpvotes  int   `json:"total_upvotes,omitempty"`
	TotalComments int   `json:"total_comments,omitempty"`
	TotalLikes    int   `json:"total_likes,omitempty"`
	TotalReshares int   `json:"total_reshares,omitempty"`
	TotalViews    int64 `json:"total_views,omitempty"`

	AvgUpvotes float64 `json:"avg_upvotes,omitempty"`
	AvgLikes   float64 `json:"avg_likes,omitempty"`
	AvgViews   float64 `json:"avg_views,omitempty"`

	Sentiment         map[Category]int   `json:"sentiment,omitempty"`
	DominantSentiment Category           `json:"dominant_sentiment,omitempty"`
	TagCounts         map[CommentTag]int `json:"tag_counts,omitempty"`
}

// Report is the final package of one research run: the ranked items, their
// summary statistics and the retrieval metadata.
type Report struct {
	Target    QueryTarget `json:"target"`
	FetchedAt time.Time   `json:"fetched_at"`
	Sources   SourceStats `json:"sources"`
	Items     []ContentItem `json:"items"`
	Summary   Summary     `json:"summary"`
}

// BuildReport assembles the report for a ranked, classified item list.
// Pure function, no I/O.
func BuildReport(items []ContentItem, target QueryTarget, succeeded, failed []string, now time.Time) *Report {
	summary := Summary{TotalItems: len(items)}

	sentiment := make(map[Category]int)
	tags := make(map[CommentTag]int)

	for _, it := range items {
		summary.TotalUpvotes += it.Engagement.Upvotes
		summary.TotalComments += it.Engagement.Comments
		summary.TotalLikes += it.Engagement.Likes
		summary.TotalReshares += it.Engagement.Reshares
		summary.TotalViews += it.Engagement.Views

		if it.Classification != nil {
			sentiment[it.Classification.Category]++
		}
		for _, tag := range it.Tags {
			tags[tag]++
		}
	}

	if n := len(items); n > 0 {
		summary.AvgUpvotes = float64(summary.TotalUpvotes) / float64(n)
		summary.AvgLikes = float64(summary.TotalLikes) / float64(n)
		summary.AvgViews = float64(summary.TotalViews) / float64(n)
	}

	if len(sentiment) > 0 {
		summary.Sentiment = sentiment
		switch {
		case sentiment[CategoryBullish] > sentiment[CategoryBearish]:
			summary.DominantSentiment = CategoryBullish
		case sentiment[CategoryBearish] > sentiment[CategoryBullish]:
			summary.DominantSentiment = CategoryBearish
		default:
			summary.DominantSentiment = CategoryNeutral
		}
	}
	if len(tags) > 0 {
		summary.TagCounts = tags
	}

	queried := make([]string, 0, len(succeeded)+len(failed))
	queried = append(queried, succeeded...)
	queried = append(queried, failed...)

	return &Report{
		Target:    target,
		FetchedAt: now,
		Sources: SourceStats{
			Queried:   queried,
			Succeeded: succeeded,
			Failed:    failed,
		},
		Items:   items,
		Summary: summary,
	}
}
