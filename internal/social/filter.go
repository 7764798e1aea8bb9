package social

import (
	"strings"
	"time"
)

// topicTerms builds the case-insensitive search terms for a topic: the raw
// symbol, its cashtag/hashtag variants and any aliases.
func topicTerms(topic string, aliases []string) []string {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return nil
	}
	upper := strings.ToUpper(topic)
	terms := []string{
		strings.ToLower(upper),
		"$" + strings.ToLower(upper),
		"#" + strings.ToLower(upper),
	}
	for _, alias := range aliases {
		alias = strings.ToLower(strings.TrimSpace(alias))
		if alias != "" {
			terms = append(terms, alias)
		}
	}
	return terms
}

// FilterByTopic keeps items whose text mentions the topic symbol, a $/#
// variant, or any alias. With no topic the stage is skipped entirely
// (untargeted listing queries).
func FilterByTopic(items []ContentItem, topic string, aliases []string) []ContentItem {
	terms := topicTerms(topic, aliases)
	if len(terms) == 0 {
		return items
	}

	survivors := make([]ContentItem, 0, len(items))
	for _, it := range items {
		text := strings.ToLower(it.Text)
		for _, term := range terms {
			if strings.Contains(text, term) {
				survivors = append(survivors, it)
				break
			}
		}
	}
	return survivors
}

// FilterByRecency keeps items created at or after now-window. Items with no
// timestamp are dropped (fail closed). A window of zero disables the stage.
func FilterByRecency(items []ContentItem, window time.Duration, now time.Time) []ContentItem {
	if window <= 0 {
		return items
	}
	cutoff := now.Add(-window)

	survivors := make([]ContentItem, 0, len(items))
	for _, it := range items {
		if it.CreatedAt.IsZero() {
			continue
		}
		if !it.CreatedAt.Before(cutoff) {
			survivors = append(survivors, it)
		}
	}
	return survivors
}

// FilterByEngagement keeps items meeting any configured engagement floor.
func FilterByEngagement(items []ContentItem, floor EngagementFloor) []ContentItem {
	survivors := make([]ContentItem, 0, len(items))
	for _, it := range items {
		if floor.Meets(it.Engagement) {
			survivors = append(survivors, it)
		}
	}
	return survivors
}

// ApplyFilters runs the fixed pipeline: topic match, then recency window,
// then engagement floor. Every stage is pure and order-preserving.
func ApplyFilters(items []ContentItem, target QueryTarget, now time.Time) []ContentItem {
	items = FilterByTopic(items, target.Topic, target.Aliases)
	items = FilterByRecency(items, target.Window, now)
	items = FilterByEngagement(items, target.Floor)
	return items
}
