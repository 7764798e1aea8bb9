// Package summary renders saved research reports into a daily markdown
// digest of the top items.
package summary

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/tickersocial/tickersocial/internal/social"
	"github.com/tickersocial/tickersocial/pkg/utils"
)

const DefaultMaxItems = 20

// LoadReports reads every report JSON file in dir. Unreadable files are
// skipped so one corrupt report does not sink the digest.
func LoadReports(dir string) ([]*social.Report, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, err
	}

	var reports []*social.Report
	for _, path := range paths {
		var r social.Report
		if err := utils.LoadJSON(path, &r); err != nil {
			continue
		}
		reports = append(reports, &r)
	}
	return reports, nil
}

// Generate renders the top items across all reports as markdown, highest
// combined engagement (score plus comments) first.
func Generate(reports []*social.Report, maxItems int, now time.Time) string {
	if maxItems <= 0 {
		maxItems = DefaultMaxItems
	}

	var items []social.ContentItem
	for _, r := range reports {
		items = append(items, r.Items...)
	}
	total := len(items)
	items = rankCombined(items, maxItems)

	var b strings.Builder
	b.WriteString("# Daily Social Top Posts\n\n")
	fmt.Fprintf(&b, "**Generated:** %s\n\n", now.UTC().Format("2006-01-02 15:04 UTC"))
	fmt.Fprintf(&b, "**Total items analyzed:** %d\n", total)
	fmt.Fprintf(&b, "**Top items shown:** %d\n\n", len(items))
	b.WriteString("---\n\n")

	for i, it := range items {
		title, body := splitText(it.Text)

		fmt.Fprintf(&b, "## %d. %s - %s\n\n", i+1, originLabel(it), title)
		fmt.Fprintf(&b, "**Engagement:** %s\n\n", engagementLine(it))

		if body != "" {
			if len(body) > 500 {
				body = body[:500] + "..."
			}
			fmt.Fprintf(&b, "**Body:**\n```\n%s\n```\n\n", body)
		} else {
			b.WriteString("*Link post (no body text)*\n\n")
		}

		if it.Classification != nil {
			fmt.Fprintf(&b, "**Sentiment:** %s (%.0f%% confidence)\n\n",
				it.Classification.Category, it.Classification.Confidence*100)
		}
		if it.URL != "" {
			fmt.Fprintf(&b, "**URL:** %s\n\n", it.URL)
		}
		b.WriteString("---\n\n")
	}

	return b.String()
}

// rankCombined orders items by engagement score plus comment count, so a
// heavily discussed post outranks a quietly upvoted one. Ties break toward
// the more recent item.
func rankCombined(items []social.ContentItem, max int) []social.ContentItem {
	ranked := make([]social.ContentItem, len(items))
	copy(ranked, items)

	sort.SliceStable(ranked, func(i, j int) bool {
		si, sj := combinedScore(ranked[i]), combinedScore(ranked[j])
		if si != sj {
			return si > sj
		}
		return ranked[i].CreatedAt.After(ranked[j].CreatedAt)
	})

	if len(ranked) > max {
		ranked = ranked[:max]
	}
	return ranked
}

func combinedScore(it social.ContentItem) int64 {
	return social.EngagementScore(it) + int64(it.Engagement.Comments)
}

// Write saves the digest as daily_summary.md in dir.
func Write(dir, content string) error {
	return utils.WriteMarkdown(dir, "daily_summary.md", content)
}

// splitText treats the first line as the title and the rest as the body.
func splitText(text string) (title, body string) {
	title, body, found := strings.Cut(text, "\n\n")
	if !found {
		title, body, _ = strings.Cut(text, "\n")
	}
	title = strings.TrimSpace(title)
	if title == "" {
		title = "No title"
	}
	return title, strings.TrimSpace(body)
}

func originLabel(it social.ContentItem) string {
	switch it.Kind {
	case social.KindForumPost, social.KindForumComment:
		return "r/" + it.Origin
	case social.KindMicroblogPost:
		return "@" + it.Origin
	default:
		if it.Origin != "" {
			return "@" + it.Origin
		}
		return "video"
	}
}

func engagementLine(it social.ContentItem) string {
	e := it.Engagement
	switch it.Kind {
	case social.KindMicroblogPost:
		return fmt.Sprintf("%d likes | %d reshares | %d replies", e.Likes, e.Reshares, e.Comments)
	case social.KindShortVideo:
		return fmt.Sprintf("%d views | %d likes | %d comments", e.Views, e.Likes, e.Comments)
	default:
		return fmt.Sprintf("%d upvotes | %d comments", e.Upvotes, e.Comments)
	}
}
