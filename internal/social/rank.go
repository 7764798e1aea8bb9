package social

import "sort"

// EngagementScore computes the ranking score for an item. Forum content ranks
// by raw upvotes; microblog posts count likes plus double-weighted reshares;
// short videos rank by play count.
func EngagementScore(it ContentItem) int64 {
	switch it.Kind {
	case KindMicroblogPost:
		return int64(it.Engagement.Likes) + 2*int64(it.Engagement.Reshares)
	case KindShortVideo:
		return it.Engagement.Views
	default:
		return int64(it.Engagement.Upvotes)
	}
}

// Rank sorts items descending by engagement score, breaking ties with the
// most recent creation time, and truncates to maxResults (ignored when <= 0).
// The sort is stable, so ranking the same list twice is deterministic.
func Rank(items []ContentItem, maxResults int) []ContentItem {
	ranked := make([]ContentItem, len(items))
	copy(ranked, items)

	sort.SliceStable(ranked, func(i, j int) bool {
		si, sj := EngagementScore(ranked[i]), EngagementScore(ranked[j])
		if si != sj {
			return si > sj
		}
		return ranked[i].CreatedAt.After(ranked[j].CreatedAt)
	})

	if maxResults > 0 && len(ranked) > maxResults {
		ranked = ranked[:maxResults]
	}
	return ranked
}
