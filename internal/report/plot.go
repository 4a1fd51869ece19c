package report

import (
	"fmt"
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/gmshoot/shotvision/internal/vision"
)

// PlotGroupPNG saves a static scatter of the shot group with its centroid
// and RMS spread circle, for offline inspection or embedding in reports.
func PlotGroupPNG(path string, results []vision.ShotResult, stats vision.SessionStatistics) error {
	p := plot.New()
	p.Title.Text = fmt.Sprintf("Shot Group (%d shots, avg %.1f)", stats.TotalShots, stats.AverageScore)
	p.X.Label.Text = "X"
	p.Y.Label.Text = "Y"
	p.X.Min, p.X.Max = 0, 100
	// Inverted so the plot matches image-space orientation.
	p.Y.Min, p.Y.Max = 100, 0

	pts := make(plotter.XYs, 0, len(results))
	for _, r := range results {
		pts = append(pts, plotter.XY{X: r.Coordinates.X, Y: r.Coordinates.Y})
	}
	shots, err := plotter.NewScatter(pts)
	if err != nil {
		return fmt.Errorf("build shot scatter: %w", err)
	}
	shots.GlyphStyle.Radius = vg.Points(4)
	shots.GlyphStyle.Color = color.RGBA{R: 231, G: 76, B: 60, A: 255}
	p.Add(shots)
	p.Legend.Add("shots", shots)

	if stats.TotalShots > 0 {
		spread, err := plotter.NewLine(circlePoints(stats.Spread.CentroidX, stats.Spread.CentroidY, stats.Spread.Radius))
		if err != nil {
			return fmt.Errorf("build spread circle: %w", err)
		}
		spread.Width = vg.Points(1)
		spread.Color = color.RGBA{R: 52, G: 152, B: 219, A: 255}
		p.Add(spread)
		p.Legend.Add("rms spread", spread)
	}

	p.Legend.Top = true
	if err := p.Save(7*vg.Inch, 7*vg.Inch, path); err != nil {
		return fmt.Errorf("save group plot: %w", err)
	}
	return nil
}

// circlePoints approximates a circle as a closed 64-segment polyline.
func circlePoints(cx, cy, r float64) plotter.XYs {
	const segments = 64
	pts := make(plotter.XYs, segments+1)
	for i := 0; i <= segments; i++ {
		theta := 2 * math.Pi * float64(i) / segments
		pts[i] = plotter.XY{X: cx + r*math.Cos(theta), Y: cy + r*math.Sin(theta)}
	}
	return pts
}
