package vision

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// Trend classifies the score direction across a session.
type Trend string

const (
	TrendImproving Trend = "improving"
	TrendDeclining Trend = "declining"
	TrendStable    Trend = "stable"
)

// trendEpsilon is the minimum mean-score difference between the first and
// second half of a session before the trend leaves "stable".
const trendEpsilon = 2.0

// Normalization anchors for the bounded [0,1] statistics. These are
// qualitative tuning points, not physical constants: a spread radius at or
// beyond the reference yields precision 0, per-axis deviation at or beyond
// the reference sigma yields grouping 0, and a score standard deviation of
// half the reference range yields consistency 0.
const (
	defaultReferenceRadius = 25.0
	defaultReferenceSigma  = 12.0
	defaultScoreRange      = 10.0
)

// Spread describes where shots landed relative to each other.
type Spread struct {
	CentroidX float64 `json:"centroid_x"`
	CentroidY float64 `json:"centroid_y"`
	// Radius is the RMS distance from the centroid to each shot; RMS keeps
	// a single outlier from dominating the way a max would.
	Radius float64 `json:"radius"`
}

// Improvement carries the qualitative trend classification.
type Improvement struct {
	Trend Trend `json:"trend"`
}

// SessionStatistics aggregates a full ShotResult sequence. It is recomputed
// from an immutable snapshot of the sequence on every request rather than
// updated incrementally, so a statistics read never races a result append.
type SessionStatistics struct {
	TotalShots    int     `json:"total_shots"`
	AverageScore  float64 `json:"average_score"`
	BestScore     int     `json:"best_score"`
	WorstScore    int     `json:"worst_score"`
	BullseyeCount int     `json:"bullseye_count"`
	HitPercentage int     `json:"hit_percentage"`

	Spread      Spread      `json:"spread"`
	Precision   float64     `json:"precision"`
	Grouping    float64     `json:"grouping"`
	Consistency float64     `json:"consistency"`
	Improvement Improvement `json:"improvement"`
}

// CalculateSessionStatistics reduces a chronological ShotResult sequence to
// session statistics. A total function: zero shots returns a zero-filled
// struct with a stable trend, never an error.
func CalculateSessionStatistics(results []ShotResult) SessionStatistics {
	stats := SessionStatistics{
		TotalShots:  len(results),
		Improvement: Improvement{Trend: TrendStable},
	}
	if len(results) == 0 {
		return stats
	}

	scores := make([]float64, len(results))
	xs := make([]float64, len(results))
	ys := make([]float64, len(results))
	hits := 0
	best := results[0].Score
	worst := results[0].Score
	for i, r := range results {
		scores[i] = float64(r.Score)
		xs[i] = r.Coordinates.X
		ys[i] = r.Coordinates.Y
		if r.Score > 0 {
			hits++
		}
		if r.Score > best {
			best = r.Score
		}
		if r.Score < worst {
			worst = r.Score
		}
		if r.IsBullseye {
			stats.BullseyeCount++
		}
	}

	stats.AverageScore = stat.Mean(scores, nil)
	stats.BestScore = best
	stats.WorstScore = worst
	stats.HitPercentage = int(math.Round(100 * float64(hits) / float64(len(results))))

	cx := stat.Mean(xs, nil)
	cy := stat.Mean(ys, nil)
	sumSq := 0.0
	for i := range xs {
		sumSq += (xs[i]-cx)*(xs[i]-cx) + (ys[i]-cy)*(ys[i]-cy)
	}
	radius := math.Sqrt(sumSq / float64(len(xs)))
	stats.Spread = Spread{CentroidX: cx, CentroidY: cy, Radius: radius}

	stats.Precision = clamp01(1 - radius/defaultReferenceRadius)
	stats.Grouping = grouping(xs, ys)
	stats.Consistency = consistency(scores)
	stats.Improvement.Trend = scoreTrend(scores)
	return stats
}

// grouping rewards low coordinate variance independent of absolute
// accuracy: a tight cluster far off-centre still groups well.
func grouping(xs, ys []float64) float64 {
	if len(xs) < 2 {
		return 1
	}
	sigma := (stat.PopStdDev(xs, nil) + stat.PopStdDev(ys, nil)) / 2
	return clamp01(1 - sigma/defaultReferenceSigma)
}

// consistency is one minus the normalized score standard deviation. A
// strictly improving (or declining) session necessarily has non-zero score
// variance, so its consistency is reduced; that is the intended reading.
func consistency(scores []float64) float64 {
	if len(scores) < 2 {
		return 1
	}
	sigma := stat.PopStdDev(scores, nil)
	return clamp01(1 - sigma/(defaultScoreRange/2))
}

// scoreTrend splits the chronological scores into first and second halves
// (odd counts drop the middle shot from both) and compares their means.
// Fewer than 3 shots is always stable.
func scoreTrend(scores []float64) Trend {
	if len(scores) < 3 {
		return TrendStable
	}
	half := len(scores) / 2
	first := stat.Mean(scores[:half], nil)
	second := stat.Mean(scores[len(scores)-half:], nil)
	switch {
	case second-first > trendEpsilon:
		return TrendImproving
	case first-second > trendEpsilon:
		return TrendDeclining
	default:
		return TrendStable
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
