// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/aichikawa/pubtrack/pkg/types"
)

// csvHeader defines the dataset columns.
var csvHeader = []string{
	"DOI", "Title", "Platform",
	"Views", "Downloads", "DL Rate",
	"Mention Score", "Post Mentions", "Tweet Mentions",
	"HN Points", "HN Comments",
	"RG Reads",
}

// WriteCSV writes the flattened dataset to path, one row per record.
// Absent values keep their sentinel renderings so a reader can tell "no
// data" from a genuine zero.
func WriteCSV(records []types.MetricRecord, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating dataset file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		return fmt.Errorf("writing dataset header: %w", err)
	}

	for _, r := range records {
		hnPts, hnCmts := "-", "-"
		if r.Forum != nil {
			hnPts = strconv.Itoa(r.Forum.Points)
			hnCmts = strconv.Itoa(r.Forum.Comments)
		}
		row := []string{
			r.DOI, r.Title, string(r.Platform),
			r.Views.String(), r.Downloads.String(), r.DLRate,
			formatScore(r.Social.Score),
			strconv.Itoa(r.Social.PostMentions),
			strconv.Itoa(r.Social.TweetMentions),
			hnPts, hnCmts,
			r.Reads.String(),
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("writing dataset row for %s: %w", r.DOI, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flushing dataset: %w", err)
	}
	return nil
}
