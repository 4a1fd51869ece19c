package vision

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// GroupMetrics are the classical shot-group measurements coaches work with,
// computed over the normalized coordinate space. All fields are total
// derivations: fewer shots than a metric needs yields its neutral value.
type GroupMetrics struct {
	// MeanPointOfImpact is the centroid of all shot coordinates.
	MeanPointOfImpact Coordinate `json:"mean_point_of_impact"`
	// ExtremeSpread is the maximum distance between any two shots.
	ExtremeSpread float64 `json:"extreme_spread"`
	// MeanRadius is the average distance from the mean point of impact.
	MeanRadius float64 `json:"mean_radius"`
	// StdDevX and StdDevY are per-axis population standard deviations.
	StdDevX float64 `json:"std_dev_x"`
	StdDevY float64 `json:"std_dev_y"`
	// CircularErrorProbable is the radius containing half the shots,
	// centred on the mean point of impact.
	CircularErrorProbable float64 `json:"circular_error_probable"`
	// FigureOfMerit is the mean of the group's bounding-box width and height.
	FigureOfMerit float64 `json:"figure_of_merit"`
	// TrendStability is 1 for a flat score sequence, decaying toward 0 as
	// the per-shot score slope grows.
	TrendStability float64 `json:"trend_stability"`
}

// CalculateGroupMetrics computes group measurements over a shot sequence.
func CalculateGroupMetrics(results []ShotResult) GroupMetrics {
	var m GroupMetrics
	if len(results) == 0 {
		return m
	}

	xs := make([]float64, len(results))
	ys := make([]float64, len(results))
	scores := make([]float64, len(results))
	for i, r := range results {
		xs[i] = r.Coordinates.X
		ys[i] = r.Coordinates.Y
		scores[i] = float64(r.Score)
	}

	cx := stat.Mean(xs, nil)
	cy := stat.Mean(ys, nil)
	m.MeanPointOfImpact = Coordinate{X: cx, Y: cy}

	minX, maxX := xs[0], xs[0]
	minY, maxY := ys[0], ys[0]
	radii := make([]float64, len(xs))
	for i := range xs {
		radii[i] = math.Hypot(xs[i]-cx, ys[i]-cy)
		m.MeanRadius += radii[i]
		minX = math.Min(minX, xs[i])
		maxX = math.Max(maxX, xs[i])
		minY = math.Min(minY, ys[i])
		maxY = math.Max(maxY, ys[i])
		for j := i + 1; j < len(xs); j++ {
			if d := math.Hypot(xs[i]-xs[j], ys[i]-ys[j]); d > m.ExtremeSpread {
				m.ExtremeSpread = d
			}
		}
	}
	m.MeanRadius /= float64(len(xs))
	m.FigureOfMerit = ((maxX - minX) + (maxY - minY)) / 2

	if len(xs) >= 2 {
		m.StdDevX = stat.PopStdDev(xs, nil)
		m.StdDevY = stat.PopStdDev(ys, nil)
	}

	sort.Float64s(radii)
	m.CircularErrorProbable = stat.Quantile(0.5, stat.Empirical, radii, nil)

	m.TrendStability = trendStability(scores)
	return m
}

// trendStability fits a line through score-vs-shot-index and maps the
// absolute slope to [0,1]: a slope of one full point per shot (or more)
// scores 0.
func trendStability(scores []float64) float64 {
	if len(scores) < 3 {
		return 1
	}
	idx := make([]float64, len(scores))
	for i := range idx {
		idx[i] = float64(i)
	}
	_, slope := stat.LinearRegression(idx, scores, nil, false)
	return clamp01(1 - math.Abs(slope))
}

// DetectFlyers splits a shot sequence into the core group and flyers:
// shots whose distance from the mean point of impact exceeds threshold
// population standard deviations of the radial distances. Groups smaller
// than 3 shots have no flyers.
func DetectFlyers(results []ShotResult, threshold float64) (core, flyers []ShotResult) {
	if len(results) < 3 {
		return results, nil
	}
	if threshold <= 0 {
		threshold = 2.0
	}

	xs := make([]float64, len(results))
	ys := make([]float64, len(results))
	for i, r := range results {
		xs[i] = r.Coordinates.X
		ys[i] = r.Coordinates.Y
	}
	cx := stat.Mean(xs, nil)
	cy := stat.Mean(ys, nil)

	radii := make([]float64, len(results))
	for i := range results {
		radii[i] = math.Hypot(xs[i]-cx, ys[i]-cy)
	}
	mean := stat.Mean(radii, nil)
	sigma := stat.PopStdDev(radii, nil)
	if sigma == 0 {
		return results, nil
	}

	cut := mean + threshold*sigma
	for i, r := range results {
		if radii[i] > cut {
			flyers = append(flyers, r)
		} else {
			core = append(core, r)
		}
	}
	return core, flyers
}
