// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/aichikawa/pubtrack/pkg/types"
)

// WritePNGChart renders the static download bar chart. It is best-effort:
// the caller logs a failure and the run proceeds without the image.
func WritePNGChart(records []types.MetricRecord, stats types.CorpusStats, dateLabel, path string) error {
	p := plot.New()
	p.Title.Text = "Publication Impact\n" + statsLine(stats, dateLabel)
	p.Y.Label.Text = "Downloads"

	values := make(plotter.Values, len(records))
	labels := make([]string, len(records))
	for i, r := range records {
		values[i] = float64(r.Downloads.OrZero())
		labels[i] = types.ShortenTitle(r.Title, 20)
	}

	bars, err := plotter.NewBarChart(values, vg.Points(30))
	if err != nil {
		return fmt.Errorf("building bar chart: %w", err)
	}
	bars.Color = color.RGBA{R: 0x48, G: 0x2f, B: 0xf7, A: 0xff}
	bars.LineStyle.Width = 0

	p.Add(bars)
	p.NominalX(labels...)

	if err := p.Save(10*vg.Inch, 5*vg.Inch, path); err != nil {
		return fmt.Errorf("saving chart image: %w", err)
	}
	return nil
}
