// Package display renders research reports for the terminal.
package display

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/tickersocial/tickersocial/internal/social"
)

var (
	headerStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#FFFFFF")).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#3B82F6")).
		Padding(0, 2)

	titleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#3B82F6"))

	labelStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#06B6D4"))

	dimStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#6B7280"))

	urlStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#3B82F6")).
		Underline(true)

	bullishStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#10B981")).
		Bold(true)

	bearishStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#EF4444")).
		Bold(true)

	neutralStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#9CA3AF"))
)

// ReportDisplay renders one research report.
type ReportDisplay struct {
	ticker string
}

func NewReportDisplay(ticker string) *ReportDisplay {
	return &ReportDisplay{ticker: ticker}
}

// Show prints the full report: header, stats, then each item.
func (d *ReportDisplay) Show(report *social.Report) {
	d.showHeader(report)
	d.showStats(report)

	if len(report.Items) == 0 {
		fmt.Println(dimStyle.Render("No items found matching the filters."))
		fmt.Println()
		return
	}

	for i, it := range report.Items {
		d.showItem(i+1, it)
		if i < len(report.Items)-1 {
			fmt.Println(dimStyle.Render(strings.Repeat("─", 78)))
		}
	}
	fmt.Println()
}

func (d *ReportDisplay) showHeader(report *social.Report) {
	header := "$" + d.ticker
	if company, ok := reportCompany(report); ok {
		header += " - " + company
	}
	fmt.Println()
	fmt.Println(headerStyle.Render(header))
	fmt.Println()
}

func (d *ReportDisplay) showStats(report *social.Report) {
	s := report.Summary

	fmt.Printf("%s %d\n", labelStyle.Render("Items found:"), s.TotalItems)
	if s.TotalUpvotes > 0 {
		fmt.Printf("%s %d\n", labelStyle.Render("Total upvotes:"), s.TotalUpvotes)
	}
	if s.TotalLikes > 0 {
		fmt.Printf("%s %d\n", labelStyle.Render("Total likes:"), s.TotalLikes)
	}
	if s.TotalViews > 0 {
		fmt.Printf("%s %d\n", labelStyle.Render("Total views:"), s.TotalViews)
	}
	if s.TotalComments > 0 {
		fmt.Printf("%s %d\n", labelStyle.Render("Total comments:"), s.TotalComments)
	}
	if s.DominantSentiment != "" {
		fmt.Printf("%s %s\n", labelStyle.Render("Dominant sentiment:"), sentimentBadge(s.DominantSentiment))
	}

	fmt.Printf("%s %s\n", labelStyle.Render("Sources:"), sourceLine(report.Sources))
	fmt.Println()
}

func (d *ReportDisplay) showItem(n int, it social.ContentItem) {
	title, _ := headline(it.Text)
	fmt.Println(titleStyle.Render(fmt.Sprintf("%d. %s", n, title)))

	stats := engagementLine(it)
	if !it.CreatedAt.IsZero() {
		stats += dimStyle.Render("  •  " + it.CreatedAt.Format("Jan 02, 2006"))
	}
	if it.Origin != "" {
		stats += dimStyle.Render("  •  " + it.Origin)
	}
	fmt.Println(stats)

	if it.Classification != nil {
		fmt.Printf("%s %s %s\n",
			labelStyle.Render("Sentiment:"),
			sentimentBadge(it.Classification.Category),
			dimStyle.Render(fmt.Sprintf("(%.0f%% confidence, %d bullish / %d bearish signals)",
				it.Classification.Confidence*100,
				it.Classification.BullishSignals,
				it.Classification.BearishSignals)))
	}
	if len(it.Tags) > 0 {
		tags := make([]string, len(it.Tags))
		for i, tag := range it.Tags {
			tags[i] = string(tag)
		}
		fmt.Printf("%s %s\n", labelStyle.Render("Tags:"), strings.Join(tags, ", "))
	}

	if it.URL != "" {
		fmt.Println(urlStyle.Render(it.URL))
	}

	if preview := bodyPreview(it.Text); preview != "" {
		fmt.Println()
		fmt.Println(dimStyle.Render(preview))
	}
	fmt.Println()
}

// ShowCredits prints the account credit balance.
func ShowCredits(credits int) {
	fmt.Printf("%s %d\n", labelStyle.Render("Available credits:"), credits)
}

// ShowRunFooter prints the completion line for a research run.
func ShowRunFooter(started time.Time) {
	fmt.Println(dimStyle.Render(fmt.Sprintf("Completed in %s", time.Since(started).Round(time.Millisecond))))
}

func sentimentBadge(c social.Category) string {
	switch c {
	case social.CategoryBullish:
		return bullishStyle.Render("BULLISH")
	case social.CategoryBearish:
		return bearishStyle.Render("BEARISH")
	default:
		return neutralStyle.Render("NEUTRAL")
	}
}

func sourceLine(s social.SourceStats) string {
	line := fmt.Sprintf("%d/%d succeeded", len(s.Succeeded), len(s.Queried))
	if len(s.Failed) > 0 {
		line += " " + dimStyle.Render("(failed: "+strings.Join(s.Failed, ", ")+")")
	}
	return line
}

func headline(text string) (string, string) {
	title, rest, found := strings.Cut(text, "\n\n")
	if !found {
		title, rest, _ = strings.Cut(text, "\n")
	}
	title = strings.TrimSpace(title)
	if len(title) > 100 {
		title = title[:100] + "..."
	}
	if title == "" {
		title = "(no text)"
	}
	return title, strings.TrimSpace(rest)
}

func bodyPreview(text string) string {
	_, body := headline(text)
	body = strings.TrimSpace(body)
	if body == "" {
		return ""
	}
	if len(body) > 200 {
		body = body[:200] + "..."
	}
	return body
}

func engagementLine(it social.ContentItem) string {
	e := it.Engagement
	switch it.Kind {
	case social.KindMicroblogPost:
		return fmt.Sprintf("♥ %d  •  %d reshares  •  %d replies", e.Likes, e.Reshares, e.Comments)
	case social.KindShortVideo:
		return fmt.Sprintf("▶ %d views  •  ♥ %d  •  %d comments", e.Views, e.Likes, e.Comments)
	default:
		return fmt.Sprintf("↑ %d  •  %d comments", e.Upvotes, e.Comments)
	}
}

func reportCompany(report *social.Report) (string, bool) {
	for _, alias := range report.Target.Aliases {
		if alias != "" {
			return alias, true
		}
	}
	return "", false
}
