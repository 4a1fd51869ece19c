// Package report renders completed sessions for human review: an
// interactive HTML page via go-echarts and a static PNG group plot via
// gonum/plot. It consumes vision value types and never feeds back into the
// detection pipeline.
package report

import (
	"fmt"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/gmshoot/shotvision/internal/vision"
)

// WriteSessionHTML renders an HTML session report to path: a shot scatter
// over the target rings and a score timeline, with the headline statistics
// in the page title.
func WriteSessionHTML(path string, results []vision.ShotResult, stats vision.SessionStatistics, target vision.TargetConfiguration) error {
	page := components.NewPage()
	page.SetPageTitle("Session Report")
	page.AddCharts(shotScatter(results, stats, target), scoreTimeline(results))

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create report file: %w", err)
	}
	defer f.Close()

	if err := page.Render(f); err != nil {
		return fmt.Errorf("render session report: %w", err)
	}
	return nil
}

// shotScatter plots shot coordinates in target space, coloured by score.
// The y axis is inverted so the plot matches the image-space convention
// (smaller y is higher on the target).
func shotScatter(results []vision.ShotResult, stats vision.SessionStatistics, target vision.TargetConfiguration) *charts.Scatter {
	data := make([]opts.ScatterData, 0, len(results))
	maxScore := 0.0
	for _, r := range results {
		data = append(data, opts.ScatterData{Value: []interface{}{r.Coordinates.X, r.Coordinates.Y, float64(r.Score)}})
		if float64(r.Score) > maxScore {
			maxScore = float64(r.Score)
		}
	}
	if maxScore == 0 {
		maxScore = 1
	}

	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Theme: "dark", Width: "700px", Height: "700px"}),
		charts.WithTitleOpts(opts.Title{
			Title:    fmt.Sprintf("Shot Group - %s target", target.TargetType),
			Subtitle: fmt.Sprintf("shots=%d avg=%.1f bullseyes=%d hit=%d%%", stats.TotalShots, stats.AverageScore, stats.BullseyeCount, stats.HitPercentage),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Min: 0, Max: 100, Name: "X"}),
		charts.WithYAxisOpts(opts.YAxis{Min: 0, Max: 100, Name: "Y", Inverse: opts.Bool(true)}),
		charts.WithVisualMapOpts(opts.VisualMap{
			Show:       opts.Bool(true),
			Calculable: opts.Bool(true),
			Min:        0,
			Max:        float32(maxScore),
			Dimension:  "2",
			InRange:    &opts.VisualMapInRange{Color: []string{"#31688e", "#35b779", "#fde725"}},
		}),
	)
	scatter.AddSeries("shots", data, charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: 12}))
	return scatter
}

// scoreTimeline plots the per-shot score in firing order.
func scoreTimeline(results []vision.ShotResult) *charts.Line {
	xAxis := make([]string, 0, len(results))
	data := make([]opts.LineData, 0, len(results))
	for i, r := range results {
		xAxis = append(xAxis, fmt.Sprintf("%d", i+1))
		data = append(data, opts.LineData{Value: r.Score})
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Theme: "dark", Width: "900px", Height: "400px"}),
		charts.WithTitleOpts(opts.Title{Title: "Score by Shot"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Score"}),
	)
	line.SetXAxis(xAxis)
	line.AddSeries("score", data)
	return line
}
