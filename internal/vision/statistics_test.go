package vision

import (
	"testing"

	"github.com/gmshoot/shotvision/internal/testutil"
)

func resultsFromScores(scores ...int) []ShotResult {
	results := make([]ShotResult, len(scores))
	for i, s := range scores {
		results[i] = ShotResult{
			Score:       s,
			Coordinates: Coordinate{X: 50, Y: 50},
		}
	}
	return results
}

func TestCalculateSessionStatistics_Empty(t *testing.T) {
	stats := CalculateSessionStatistics(nil)
	if stats.TotalShots != 0 || stats.AverageScore != 0 || stats.BullseyeCount != 0 {
		t.Errorf("non-zero statistics for empty session: %+v", stats)
	}
	if stats.Improvement.Trend != TrendStable {
		t.Errorf("trend = %s, want stable for empty session", stats.Improvement.Trend)
	}
}

// TestCalculateSessionStatistics_PerfectGroup runs four identical centre
// bullseyes: zero spread, full precision, grouping, and consistency.
func TestCalculateSessionStatistics_PerfectGroup(t *testing.T) {
	target := DefaultTargetConfiguration()
	var results []ShotResult
	for i := 0; i < 4; i++ {
		results = append(results, AnalyzeShot("shot", Coordinate{X: 50, Y: 50}, target, results))
	}

	stats := CalculateSessionStatistics(results)
	if stats.TotalShots != 4 || stats.BullseyeCount != 4 {
		t.Errorf("shots = %d bullseyes = %d, want 4 and 4", stats.TotalShots, stats.BullseyeCount)
	}
	testutil.AssertInDelta(t, stats.AverageScore, 10, 1e-9)
	if stats.BestScore != 10 || stats.WorstScore != 10 {
		t.Errorf("best/worst = %d/%d, want 10/10", stats.BestScore, stats.WorstScore)
	}
	if stats.HitPercentage != 100 {
		t.Errorf("hit percentage = %d, want 100", stats.HitPercentage)
	}
	testutil.AssertInDelta(t, stats.Spread.Radius, 0, 1e-9)
	testutil.AssertInDelta(t, stats.Precision, 1, 1e-9)
	testutil.AssertInDelta(t, stats.Grouping, 1, 1e-9)
	testutil.AssertInDelta(t, stats.Consistency, 1, 1e-9)
}

func TestCalculateSessionStatistics_MixedSession(t *testing.T) {
	results := []ShotResult{
		{Score: 10, IsBullseye: true, Coordinates: Coordinate{X: 50, Y: 50}},
		{Score: 8, Coordinates: Coordinate{X: 62, Y: 50}},
		{Score: 0, Coordinates: Coordinate{X: 98, Y: 2}},
		{Score: 6, Coordinates: Coordinate{X: 50, Y: 85}},
	}

	stats := CalculateSessionStatistics(results)
	testutil.AssertInDelta(t, stats.AverageScore, 6, 1e-9)
	if stats.BestScore != 10 || stats.WorstScore != 0 {
		t.Errorf("best/worst = %d/%d, want 10/0", stats.BestScore, stats.WorstScore)
	}
	if stats.BullseyeCount != 1 {
		t.Errorf("bullseyes = %d, want 1", stats.BullseyeCount)
	}
	// 3 of 4 shots scored points.
	if stats.HitPercentage != 75 {
		t.Errorf("hit percentage = %d, want 75", stats.HitPercentage)
	}
	testutil.AssertUnitInterval(t, stats.Precision)
	testutil.AssertUnitInterval(t, stats.Grouping)
	testutil.AssertUnitInterval(t, stats.Consistency)
}

// TestCalculateSessionStatistics_SpreadRadius places two shots 10 apart on
// the x axis: centroid midway, RMS radius 5.
func TestCalculateSessionStatistics_SpreadRadius(t *testing.T) {
	results := []ShotResult{
		{Score: 9, Coordinates: Coordinate{X: 45, Y: 50}},
		{Score: 9, Coordinates: Coordinate{X: 55, Y: 50}},
	}
	stats := CalculateSessionStatistics(results)
	testutil.AssertInDelta(t, stats.Spread.CentroidX, 50, 1e-9)
	testutil.AssertInDelta(t, stats.Spread.CentroidY, 50, 1e-9)
	testutil.AssertInDelta(t, stats.Spread.Radius, 5, 1e-9)
	// Precision: 1 - 5/25.
	testutil.AssertInDelta(t, stats.Precision, 0.8, 1e-9)
}

func TestScoreTrend(t *testing.T) {
	tests := []struct {
		name   string
		scores []int
		want   Trend
	}{
		{"TooFewShots", []int{0, 10}, TrendStable},
		{"Alternating", []int{0, 10, 0, 10}, TrendStable},
		{"Improving", []int{3, 4, 8, 9}, TrendImproving},
		{"Declining", []int{9, 8, 4, 3}, TrendDeclining},
		{"FlatHighScores", []int{9, 9, 9, 9, 9}, TrendStable},
		// Odd count drops the middle shot from both halves: halves are
		// {2, 3} and {8, 9}, difference 6 > epsilon.
		{"OddCountImproving", []int{2, 3, 5, 8, 9}, TrendImproving},
		// Means differ by exactly epsilon; the comparison is strict.
		{"ExactEpsilonIsStable", []int{5, 5, 7, 7}, TrendStable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stats := CalculateSessionStatistics(resultsFromScores(tt.scores...))
			if stats.Improvement.Trend != tt.want {
				t.Errorf("trend = %s, want %s", stats.Improvement.Trend, tt.want)
			}
		})
	}
}

func TestConsistency_PenalizesScoreVariance(t *testing.T) {
	steady := CalculateSessionStatistics(resultsFromScores(8, 8, 8, 8))
	jumpy := CalculateSessionStatistics(resultsFromScores(10, 2, 10, 2))
	if jumpy.Consistency >= steady.Consistency {
		t.Errorf("jumpy consistency %v not below steady %v", jumpy.Consistency, steady.Consistency)
	}
	testutil.AssertInDelta(t, steady.Consistency, 1, 1e-9)
	// Sigma 4 against the reference half-range 5: 1 - 4/5.
	testutil.AssertInDelta(t, jumpy.Consistency, 0.2, 1e-9)
}

func TestGrouping_IndependentOfAccuracy(t *testing.T) {
	// A tight cluster far off-centre still groups perfectly.
	offCentre := []ShotResult{
		{Coordinates: Coordinate{X: 80, Y: 20}},
		{Coordinates: Coordinate{X: 80, Y: 20}},
		{Coordinates: Coordinate{X: 80, Y: 20}},
	}
	stats := CalculateSessionStatistics(offCentre)
	testutil.AssertInDelta(t, stats.Grouping, 1, 1e-9)
}
