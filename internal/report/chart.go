// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/aichikawa/pubtrack/pkg/types"
)

// barColor matches the report theme.
const barColor = "#482ff7"

// WriteHTMLChart renders the interactive dual-axis impact chart: download
// bars on the left axis, download rate line on the right. Records without
// a computable rate leave a gap in the line rather than a zero.
func WriteHTMLChart(records []types.MetricRecord, stats types.CorpusStats, dateLabel, path string) error {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "Publication Impact"}),
		charts.WithTitleOpts(opts.Title{
			Title:    "Publication Impact",
			Subtitle: statsLine(stats, dateLabel),
		}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Downloads"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)
	bar.ExtendYAxis(opts.YAxis{Name: "DL Rate (%)", Type: "value"})

	labels := make([]string, len(records))
	barData := make([]opts.BarData, len(records))
	lineData := make([]opts.LineData, len(records))

	for i, r := range records {
		labels[i] = types.ShortenTitle(r.Title, 20)
		barData[i] = opts.BarData{
			Value:     r.Downloads.OrZero(),
			ItemStyle: &opts.ItemStyle{Color: barColor},
		}
		if rate, ok := parseRate(r.DLRate); ok {
			lineData[i] = opts.LineData{Value: rate}
		} else {
			lineData[i] = opts.LineData{Value: "-"}
		}
	}

	bar.SetXAxis(labels).AddSeries("Downloads", barData)

	line := charts.NewLine()
	line.SetXAxis(labels).AddSeries("DL Rate (%)", lineData,
		charts.WithLineChartOpts(opts.LineChart{YAxisIndex: 1}))
	bar.Overlap(line)

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating chart file: %w", err)
	}
	defer f.Close()

	if err := bar.Render(f); err != nil {
		return fmt.Errorf("rendering chart: %w", err)
	}
	return nil
}

// statsLine is the corpus annotation shown on both charts.
func statsLine(stats types.CorpusStats, dateLabel string) string {
	return fmt.Sprintf("Stats (%s) | Total DL: %d | Avg DL (excl. letter): %.1f",
		dateLabel, stats.TotalDownloads, stats.AverageDownloads)
}

// parseRate extracts the numeric percentage from a rate string such as
// "25.0%". Sentinel strings report false.
func parseRate(rate string) (float64, bool) {
	if !strings.HasSuffix(rate, "%") {
		return 0, false
	}
	v, err := strconv.ParseFloat(strings.TrimSuffix(rate, "%"), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
