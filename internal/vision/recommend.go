package vision

import (
	"fmt"
	"math"
)

// RecommendationCategory tags a coaching rule. Core logic works on the tag;
// human-readable text is rendered only at the output boundary, so nothing
// downstream ever needs to match on message content.
type RecommendationCategory int

const (
	RecommendationKeepPracticing RecommendationCategory = iota
	RecommendationExcellentPerformance
	RecommendationNeedsFundamentals
	RecommendationDirectionalBias
	RecommendationPoorGrouping
	RecommendationLowConsistency
	RecommendationImprovingTrend
	RecommendationDecliningTrend
)

// String returns the category tag name.
func (c RecommendationCategory) String() string {
	switch c {
	case RecommendationKeepPracticing:
		return "keep_practicing"
	case RecommendationExcellentPerformance:
		return "excellent_performance"
	case RecommendationNeedsFundamentals:
		return "needs_fundamentals"
	case RecommendationDirectionalBias:
		return "directional_bias"
	case RecommendationPoorGrouping:
		return "poor_grouping"
	case RecommendationLowConsistency:
		return "low_consistency"
	case RecommendationImprovingTrend:
		return "improving_trend"
	case RecommendationDecliningTrend:
		return "declining_trend"
	default:
		return fmt.Sprintf("unknown(%d)", int(c))
	}
}

// Recommendation is one coaching message with its rule tag.
type Recommendation struct {
	Category RecommendationCategory `json:"category"`
	Message  string                 `json:"message"`
}

// Rule thresholds for the coaching table.
const (
	excellentAverage    = 8.5
	fundamentalsAverage = 5.0
	biasOffset          = 8.0
	wideSpreadRadius    = 15.0
	lowConsistency      = 0.5
)

// GenerateRecommendations runs the fixed-priority coaching rule table over
// session statistics. Multiple rules may fire; the baseline encouragement
// is always appended so the result is never empty.
func GenerateRecommendations(stats SessionStatistics) []Recommendation {
	var recs []Recommendation
	add := func(c RecommendationCategory, msg string) {
		recs = append(recs, Recommendation{Category: c, Message: msg})
	}

	if stats.TotalShots > 0 {
		switch {
		case stats.AverageScore >= excellentAverage:
			add(RecommendationExcellentPerformance,
				fmt.Sprintf("Excellent shooting - %.1f average. Consider increasing target distance for a new challenge.", stats.AverageScore))
		case stats.AverageScore < fundamentalsAverage:
			add(RecommendationNeedsFundamentals,
				"Scores suggest working on fundamentals: stance, sight alignment, and breathing before speed.")
		}

		if dir := biasDirection(stats.Spread); dir != "" {
			add(RecommendationDirectionalBias,
				fmt.Sprintf("Shots are grouping %s of centre - check trigger control and grip pressure.", dir))
		}

		if stats.Spread.Radius > wideSpreadRadius {
			add(RecommendationPoorGrouping,
				"Wide shot spread - slow down and focus on a consistent aiming point for each shot.")
		}

		if stats.Consistency < lowConsistency {
			add(RecommendationLowConsistency,
				"Scores vary a lot between shots - work on a repeatable pre-shot routine to steady your focus.")
		}

		switch stats.Improvement.Trend {
		case TrendImproving:
			add(RecommendationImprovingTrend, "Scores improved over the session - whatever you adjusted, keep doing it.")
		case TrendDeclining:
			add(RecommendationDecliningTrend, "Scores dropped toward the end - fatigue may be setting in; shorter strings could help.")
		}
	}

	add(RecommendationKeepPracticing, "Keep practicing - consistent session work is what moves scores.")
	return recs
}

// biasDirection reports which way the group centroid is displaced from the
// target centre, or "" when the offset is inside the bias threshold. The
// vertical axis is image-space: smaller y is higher on the target.
func biasDirection(spread Spread) string {
	dx := spread.CentroidX - TargetCenter
	dy := spread.CentroidY - TargetCenter
	if math.Hypot(dx, dy) <= biasOffset {
		return ""
	}
	if math.Abs(dx) >= math.Abs(dy) {
		if dx > 0 {
			return "right"
		}
		return "left"
	}
	if dy > 0 {
		return "low"
	}
	return "high"
}
