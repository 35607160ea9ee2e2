// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aichikawa/pubtrack/pkg/types"
)

func sampleRecords() []types.MetricRecord {
	return []types.MetricRecord{
		{
			DOI:       "10.5281/zenodo.1",
			Title:     "In the Lover's Mirror",
			Platform:  types.PlatformZenodo,
			Views:     types.KnownCount(200),
			Downloads: types.KnownCount(50),
			DLRate:    "25.0%",
			Social: types.SocialSignal{
				Score:         7.25,
				PostMentions:  4,
				TweetMentions: 3,
				DetailsURL:    "https://example.com/details",
			},
			Forum: &types.ForumSignal{
				StoryID:  "41000001",
				Points:   120,
				Comments: 45,
				Previews: []types.CommentPreview{
					{Author: "alice", Text: "Great work.", Sentiment: types.SentimentPositive},
					{Author: "bob", Text: "Awful.", Sentiment: types.SentimentNegative},
				},
			},
			Reads: types.ReadsOf(340),
		},
		{
			DOI:      "10.31224/5289",
			Title:    "Masami Systems: A Structurally Constrained Companion",
			Platform: types.PlatformEngrxiv,
			// Downloads present-but-zero from a cache miss; views absent.
			Downloads: types.KnownCount(0),
			DLRate:    "-",
			Reads:     types.ProtectedReads(),
		},
	}
}

func TestMarkdownOverviewTable(t *testing.T) {
	md := Markdown(sampleRecords(), "2026-08-30 09:00 JST")

	assert.Contains(t, md, "# Social Comment Analysis Report")
	assert.Contains(t, md, "**Generated:** 2026-08-30 09:00 JST")
	assert.Contains(t, md, "## Impact Overview")

	// GitHub table with the short title and the display-rate override.
	assert.Contains(t, md, "| Title ")
	assert.Contains(t, md, "In the Lover's Mirror")
	assert.Contains(t, md, "25.0%")
	assert.Contains(t, md, "N/A", "non-registry platform shows N/A regardless of the computed rate")
	assert.Contains(t, md, "Masami Systems...")
}

func TestMarkdownHighlights(t *testing.T) {
	md := Markdown(sampleRecords(), "d")

	assert.Contains(t, md, "## Social Signals & Sentiment")
	assert.Contains(t, md, "### In the Lover's Mirror")
	assert.Contains(t, md, "**[Mentions] Score: 7.25**")
	assert.Contains(t, md, "[Search Tweets](https://twitter.com/search?q=In+the+Lover%27s+Mirror&src=typed_query)")
	assert.Contains(t, md, "[View Details](https://example.com/details)")
	assert.Contains(t, md, "**[Hacker News] 120 pts**")
	assert.Contains(t, md, "[Thread](https://news.ycombinator.com/item?id=41000001)")
	assert.Contains(t, md, `(+) **alice:** "Great work."`)
	assert.Contains(t, md, `(-) **bob:** "Awful."`)

	assert.NotContains(t, md, "### Masami Systems",
		"records without social attention are not highlighted")
}

func TestMarkdownNoHighlights(t *testing.T) {
	records := []types.MetricRecord{
		{DOI: "10.31224/1", Title: "Quiet Paper", Platform: types.PlatformEngrxiv, Downloads: types.KnownCount(3), DLRate: "-"},
	}
	md := Markdown(records, "d")
	assert.Contains(t, md, "_No significant social signals detected yet._")
}

func TestWriteCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "metrics.csv")
	require.NoError(t, WriteCSV(sampleRecords(), path))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3, "header plus one row per record")

	assert.Equal(t, csvHeader, rows[0])

	assert.Equal(t, "10.5281/zenodo.1", rows[1][0])
	assert.Equal(t, "200", rows[1][3])
	assert.Equal(t, "340", rows[1][11])

	assert.Equal(t, "-", rows[2][3], "absent views keep the sentinel")
	assert.Equal(t, "0", rows[2][4], "present-but-zero downloads stay a real zero")
	assert.Equal(t, "Protected", rows[2][11])
}

func TestWriteHTMLChart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "impact.html")
	stats := types.CorpusStats{TotalDownloads: 50, AverageDownloads: 25.0}

	require.NoError(t, WriteHTMLChart(sampleRecords(), stats, "2026-08-30", path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	html := string(data)
	assert.Contains(t, html, "echarts")
	assert.Contains(t, html, "DL Rate (%)")
	assert.Contains(t, html, "Total DL: 50")
}

func TestWritePNGChart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "impact.png")
	stats := types.CorpusStats{TotalDownloads: 50, AverageDownloads: 25.0}

	require.NoError(t, WritePNGChart(sampleRecords(), stats, "2026-08-30", path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestParseRate(t *testing.T) {
	v, ok := parseRate("25.0%")
	assert.True(t, ok)
	assert.Equal(t, 25.0, v)

	for _, s := range []string{"-", "N/A", "", "x%"} {
		_, ok := parseRate(s)
		assert.False(t, ok, s)
	}
}

func TestFormatScore(t *testing.T) {
	assert.Equal(t, "7.25", formatScore(7.25))
	assert.Equal(t, "0", formatScore(0))
	assert.Equal(t, "12", formatScore(12))
}
