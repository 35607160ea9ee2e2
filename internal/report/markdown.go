// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package report renders the per-run artifacts: the Markdown report, the
// CSV dataset, and the impact charts. Renderers consume the aggregated
// records read-only; none of them mutates or re-fetches anything.
package report

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/aichikawa/pubtrack/pkg/types"
)

// forumItemBase links a thread ID back to the forum.
const forumItemBase = "https://news.ycombinator.com/item?id="

// tweetSearchBase is the micro-blog search page linked for publications
// with tweet mentions.
const tweetSearchBase = "https://twitter.com/search?q=%s&src=typed_query"

// Markdown renders the social comment analysis report.
func Markdown(records []types.MetricRecord, dateLabel string) string {
	var b strings.Builder

	b.WriteString("# Social Comment Analysis Report\n")
	fmt.Fprintf(&b, "**Generated:** %s\n\n", dateLabel)
	b.WriteString("## Impact Overview\n")

	writeOverviewTable(&b, records)
	b.WriteString("\n")

	b.WriteString("## Social Signals & Sentiment\n")
	highlights := selectHighlights(records)
	if len(highlights) == 0 {
		b.WriteString("_No significant social signals detected yet._\n")
		return b.String()
	}

	for _, r := range highlights {
		writeHighlight(&b, r)
	}
	return b.String()
}

func writeOverviewTable(b *strings.Builder, records []types.MetricRecord) {
	table := tablewriter.NewWriter(b)
	table.SetHeader([]string{"Title", "Downloads", "DL Rate", "Mentions", "HN Pts", "HN Cmts"})
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	// GitHub-flavored table: pipe separators, no outer frame rows.
	table.SetBorders(tablewriter.Border{Left: true, Top: false, Right: true, Bottom: false})
	table.SetCenterSeparator("|")
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_RIGHT,
		tablewriter.ALIGN_RIGHT,
		tablewriter.ALIGN_RIGHT,
		tablewriter.ALIGN_RIGHT,
		tablewriter.ALIGN_RIGHT,
	})

	for _, r := range records {
		hnPts, hnCmts := "-", "-"
		if r.Forum != nil {
			hnPts = fmt.Sprintf("%d", r.Forum.Points)
			hnCmts = fmt.Sprintf("%d", r.Forum.Comments)
		}
		table.Append([]string{
			types.ShortenTitle(r.Title, 30),
			r.Downloads.String(),
			r.DisplayRate(),
			formatScore(r.Social.Score),
			hnPts,
			hnCmts,
		})
	}
	table.Render()
}

// selectHighlights keeps records with any social attention: a nonzero
// mention score or a found thread with points.
func selectHighlights(records []types.MetricRecord) []types.MetricRecord {
	var out []types.MetricRecord
	for _, r := range records {
		if r.Social.Score > 0 || (r.Forum != nil && r.Forum.Points > 0) {
			out = append(out, r)
		}
	}
	return out
}

func writeHighlight(b *strings.Builder, r types.MetricRecord) {
	fmt.Fprintf(b, "### %s\n", r.Title)

	if r.Social.Score > 0 {
		fmt.Fprintf(b, "**[Mentions] Score: %s**\n", formatScore(r.Social.Score))
		fmt.Fprintf(b, "- Posts: %d\n", r.Social.PostMentions)
		if r.Social.TweetMentions > 0 {
			safeTitle := url.QueryEscape(strings.SplitN(r.Title, ":", 2)[0])
			fmt.Fprintf(b, "> [Search Tweets]("+tweetSearchBase+")\n", safeTitle)
		}
		details := r.Social.DetailsURL
		if details == "" {
			details = "#"
		}
		fmt.Fprintf(b, "- [View Details](%s)\n", details)
	}

	if r.Forum != nil {
		fmt.Fprintf(b, "**[Hacker News] %d pts**\n", r.Forum.Points)
		fmt.Fprintf(b, "- [Thread](%s%s)\n", forumItemBase, r.Forum.StoryID)
		for _, c := range r.Forum.Previews {
			fmt.Fprintf(b, "  - %s **%s:** %q\n", c.Sentiment.Icon(), c.Author, c.Text)
		}
	}

	b.WriteString("\n---\n")
}

// formatScore renders a mention score without trailing zeros.
func formatScore(score float64) string {
	return strconv.FormatFloat(score, 'f', -1, 64)
}
