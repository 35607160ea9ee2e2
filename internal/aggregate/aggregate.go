// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package aggregate joins per-publication source results into
// MetricRecords and computes corpus-level summary statistics.
package aggregate

import (
	"fmt"
	"strings"

	"github.com/aichikawa/pubtrack/internal/sentiment"
	"github.com/aichikawa/pubtrack/pkg/types"
)

// exclusionPattern marks non-representative records (supplementary
// bundles) that would skew a small-sample mean. Matched case-insensitively
// as a substring of the title.
const exclusionPattern = "technical letter"

// Inputs holds one publication's raw source results.
type Inputs struct {
	Views     types.Count
	Downloads types.Count
	Social    types.SocialSignal
	Forum     *types.ForumSignal
	Reads     types.ReadsEstimate
}

// BuildRecord joins one publication's inputs into a MetricRecord,
// computing the derived download rate and labeling comment previews.
// The record is complete on return and never mutated afterwards.
func BuildRecord(pub types.Publication, in Inputs, cls *sentiment.Classifier) types.MetricRecord {
	rec := types.MetricRecord{
		DOI:       pub.DOI,
		Title:     pub.Title,
		Platform:  pub.Platform,
		Views:     in.Views,
		Downloads: in.Downloads,
		DLRate:    deriveRate(in.Views, in.Downloads),
		Social:    in.Social,
		Reads:     in.Reads,
	}

	if in.Forum != nil {
		forum := *in.Forum
		forum.Previews = make([]types.CommentPreview, len(in.Forum.Previews))
		for i, p := range in.Forum.Previews {
			p.Sentiment = cls.Classify(p.Text)
			forum.Previews[i] = p
		}
		rec.Forum = &forum
	}

	return rec
}

// deriveRate computes downloads/views as a one-decimal percentage string,
// or "-" when either figure is absent or views is zero.
func deriveRate(views, downloads types.Count) string {
	if !views.Known || !downloads.Known || views.Value <= 0 {
		return "-"
	}
	return fmt.Sprintf("%.1f%%", float64(downloads.Value)/float64(views.Value)*100)
}

// Summarize computes corpus statistics over all records of a run.
//
// The total zero-fills missing download counts. The average drops missing
// values instead and excludes any record whose title matches the
// exclusion pattern; with nothing left to average it stays 0.
func Summarize(records []types.MetricRecord) types.CorpusStats {
	var stats types.CorpusStats
	var sum int

	for _, r := range records {
		stats.TotalDownloads += r.Downloads.OrZero()

		if strings.Contains(strings.ToLower(r.Title), exclusionPattern) {
			continue
		}
		if !r.Downloads.Known {
			continue
		}
		sum += r.Downloads.Value
		stats.Averaged++
	}

	if stats.Averaged > 0 {
		stats.AverageDownloads = float64(sum) / float64(stats.Averaged)
	}
	return stats
}
