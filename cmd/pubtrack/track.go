// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/aichikawa/pubtrack/internal/aggregate"
	"github.com/aichikawa/pubtrack/internal/deliver"
	"github.com/aichikawa/pubtrack/internal/history"
	"github.com/aichikawa/pubtrack/internal/httputil"
	"github.com/aichikawa/pubtrack/internal/report"
	"github.com/aichikawa/pubtrack/internal/sentiment"
	"github.com/aichikawa/pubtrack/internal/sources"
	"github.com/aichikawa/pubtrack/internal/titlecache"
	"github.com/aichikawa/pubtrack/internal/track"
	"github.com/aichikawa/pubtrack/pkg/types"
)

var trackCmd = &cobra.Command{
	Use:   "track",
	Short: "Collect metrics and generate the report artifacts",
	Long: `Track runs the full collection pipeline: it queries every configured
source for every tracked publication, aggregates the results, and writes
the CSV dataset, Markdown report, and impact charts into the output
directory. When Slack credentials are configured the artifacts are
uploaded to the configured channel.`,
	RunE: runTrack,
}

func init() {
	trackCmd.Flags().String("output-dir", "", "directory for generated artifacts (default from config)")
	trackCmd.Flags().String("publications", "", "YAML file listing tracked publications (default: built-in list)")
	trackCmd.Flags().Bool("skip-upload", false, "generate artifacts without uploading to Slack")

	rootCmd.AddCommand(trackCmd)
}

func runTrack(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	if dir, _ := cmd.Flags().GetString("output-dir"); dir != "" {
		cfg.Tracker.OutputDir = dir
	}
	if file, _ := cmd.Flags().GetString("publications"); file != "" {
		cfg.Tracker.PublicationsFile = file
	}
	skipUpload, _ := cmd.Flags().GetBool("skip-upload")

	ctx := cmd.Context()
	out := os.Stdout

	pubs, err := track.LoadPublications(cfg.Tracker.PublicationsFile, out)
	if err != nil {
		return err
	}
	if len(pubs) == 0 {
		return fmt.Errorf("no valid publications to track")
	}

	if err := os.MkdirAll(cfg.Tracker.OutputDir, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	slackClient := deliver.New(cfg.Delivery)
	if slackClient.Enabled() && !skipUpload {
		slackClient.Diagnose(ctx, out)
	}

	cache := titlecache.Prefetch(ctx, httputil.NewClient(cfg.Sources.ScrapeTimeout), cfg.Sources.CacheQuery, out)

	set := sources.NewSet(cfg.Sources)
	tracker := &track.Tracker{
		Registry:   set.Registry,
		Mentions:   set.Mentions,
		Forum:      set.Forum,
		Reads:      set.Reads,
		Cache:      cache,
		Classifier: sentiment.New(),
		Pause:      cfg.Tracker.PublicationPause,
	}

	records := tracker.Collect(ctx, pubs, out)
	stats := aggregate.Summarize(records)
	dateLabel, day := track.DateLabel(cfg.Tracker.Timezone)

	csvPath := filepath.Join(cfg.Tracker.OutputDir, fmt.Sprintf("pub_metrics_%s.csv", day))
	if err := report.WriteCSV(records, csvPath); err != nil {
		return fmt.Errorf("writing CSV dataset: %w", err)
	}

	mdPath := filepath.Join(cfg.Tracker.OutputDir, fmt.Sprintf("Social_Comment_Analysis_%s.md", day))
	if err := os.WriteFile(mdPath, []byte(report.Markdown(records, dateLabel)), 0o644); err != nil {
		return fmt.Errorf("writing Markdown report: %w", err)
	}

	htmlPath := filepath.Join(cfg.Tracker.OutputDir, fmt.Sprintf("impact_report_%s.html", day))
	if err := report.WriteHTMLChart(records, stats, dateLabel, htmlPath); err != nil {
		return fmt.Errorf("writing HTML chart: %w", err)
	}

	pngPath := filepath.Join(cfg.Tracker.OutputDir, fmt.Sprintf("impact_graph_%s.png", day))
	if err := report.WritePNGChart(records, stats, dateLabel, pngPath); err != nil {
		fmt.Fprintf(out, "warning: PNG chart generation failed: %v\n", err)
		pngPath = ""
	}

	printSummary(out, records, stats, dateLabel)

	if cfg.History.Path != "" {
		recordHistory(ctx, cfg.History.Path, dateLabel, stats, records, out)
	}

	if slackClient.Enabled() && !skipUpload {
		fmt.Fprintln(out, "Uploading to Slack...")
		slackClient.UploadAll(ctx, []deliver.Artifact{
			{Path: pngPath, Title: fmt.Sprintf("Impact Graph (%s)", dateLabel)},
			{Path: mdPath, Title: fmt.Sprintf("Social Report (%s)", dateLabel)},
			{Path: csvPath, Title: "Raw Data (CSV)"},
		}, out)
	} else if !skipUpload {
		fmt.Fprintln(out, "Slack bot token or channel ID not set. Files saved locally.")
	}

	return nil
}

// recordHistory snapshots the run into the history database. Best-effort:
// failures are reported on the progress writer and never abort the run.
func recordHistory(ctx context.Context, path, dateLabel string, stats types.CorpusStats, records []types.MetricRecord, out io.Writer) {
	store, err := history.Open(path)
	if err != nil {
		fmt.Fprintf(out, "warning: history store unavailable: %v\n", err)
		return
	}
	defer store.Close()

	if err := store.RecordRun(ctx, dateLabel, stats, records); err != nil {
		fmt.Fprintf(out, "warning: recording run history: %v\n", err)
	}
}

func printSummary(out io.Writer, records []types.MetricRecord, stats types.CorpusStats, dateLabel string) {
	fmt.Fprintln(out)
	fmt.Fprintln(out, strings.Repeat("=", 50))
	fmt.Fprintf(out, "REPORT SUMMARY (%s)\n", dateLabel)
	fmt.Fprintln(out, strings.Repeat("=", 50))
	fmt.Fprintf(out, "Total Downloads: %d\n", stats.TotalDownloads)

	table := tablewriter.NewWriter(out)
	table.SetHeader([]string{"Title", "Downloads", "DL Rate", "Mentions"})
	for _, r := range records {
		table.Append([]string{
			types.ShortenTitle(r.Title, 30),
			r.Downloads.String(),
			r.DisplayRate(),
			fmt.Sprintf("%.1f", r.Social.Score),
		})
	}
	table.Render()
}
