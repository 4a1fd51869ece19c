package vision

import (
	"math"

	"github.com/gmshoot/shotvision/internal/units"
)

// MissZoneID is the sentinel zone recorded when a shot matches no ring.
const MissZoneID = "miss"

// ShotResult is the scored outcome for one impact coordinate. It is derived
// deterministically from the coordinate plus the target configuration and is
// immutable: identical inputs always produce an identical result.
type ShotResult struct {
	ShotID      string     `json:"shot_id"`
	Coordinates Coordinate `json:"coordinates"`

	RawDistance       float64 `json:"raw_distance"`
	CorrectedDistance float64 `json:"corrected_distance"`

	ScoringZone      string  `json:"scoring_zone"`
	Score            int     `json:"score"`
	CompensatedScore float64 `json:"compensated_score"`
	IsBullseye       bool    `json:"is_bullseye"`

	AngleFromCenterDegrees float64 `json:"angle_from_center_degrees"`
	Confidence             float64 `json:"confidence"`
}

// AnalyzeShot scores one impact coordinate against a target configuration.
//
// Pure and stateless: it may be called from any number of goroutines with no
// synchronization. prior is accepted for forward compatibility (duplicate
// suppression against earlier impacts lives upstream) and does not affect
// the result.
func AnalyzeShot(shotID string, coord Coordinate, target TargetConfiguration, prior []ShotResult) ShotResult {
	_ = prior

	result := ShotResult{
		ShotID:      shotID,
		Coordinates: coord,
		ScoringZone: MissZoneID,
		Confidence:  1,
	}

	if !coord.InRange() {
		return result
	}

	dx := coord.X - TargetCenter
	dy := coord.Y - TargetCenter
	raw := math.Hypot(dx, dy)
	result.RawDistance = raw

	corrected := perspectiveCorrect(raw, target.CameraAngleDegrees)
	corrected = lensCorrect(corrected, raw, target)
	result.CorrectedDistance = corrected

	result.AngleFromCenterDegrees = units.NormalizeDegrees(units.RadiansToDegrees(math.Atan2(dy, dx)))

	zones := target.sortedZones()
	zone, matched := lookupZone(zones, corrected)
	if !matched {
		// No ring matched (or none configured): scored as a miss, never an
		// error. An empty zone list is the degraded all-miss mode.
		return result
	}

	result.ScoringZone = zone.ID
	result.Score = zone.PointValue
	result.IsBullseye = zone.PointValue == maxPointValue(zones)
	result.CompensatedScore = float64(zone.PointValue) * distanceCompensation(target)
	result.Confidence = ringConfidence(zone, corrected)
	return result
}

// perspectiveCorrect maps an image-space distance to target-space by
// dividing out the camera angle foreshortening. A head-on camera (0°) is a
// no-op; oblique angles enlarge the apparent distance.
func perspectiveCorrect(raw, cameraAngleDegrees float64) float64 {
	cos := math.Cos(units.DegreesToRadians(cameraAngleDegrees))
	if cos <= 0 {
		// A camera at or past 90° cannot see the target face; leave the
		// distance unchanged rather than dividing by a non-positive cosine.
		return raw
	}
	return raw / cos
}

// lensCorrect applies a second-order radial distortion correction. A zero
// coefficient is a no-op.
func lensCorrect(corrected, raw float64, target TargetConfiguration) float64 {
	maxRadius := target.maxZoneRadius()
	rel := raw / maxRadius
	return corrected * (1 + target.LensDistortionCoefficient*rel*rel)
}

// lookupZone selects the first zone (ascending by outer radius) whose
// half-open interval [inner, outer) contains the distance.
func lookupZone(zones []ScoringZone, distance float64) (ScoringZone, bool) {
	for _, z := range zones {
		if distance >= z.InnerRadius && distance < z.OuterRadius {
			return z, true
		}
	}
	return ScoringZone{}, false
}

func maxPointValue(zones []ScoringZone) int {
	max := math.MinInt
	for _, z := range zones {
		if z.PointValue > max {
			max = z.PointValue
		}
	}
	return max
}

// distanceCompensation scales a zone's point value by shooting distance
// relative to the reference distance: closer targets scale down, farther
// targets scale up. The curve is a square root so doubling the distance is
// worth ~41% more, not 100%, and it is continuous and monotonic through the
// reference point (factor 1.0).
func distanceCompensation(target TargetConfiguration) float64 {
	if target.TargetDistanceMeters <= 0 {
		return 1
	}
	factor := math.Sqrt(target.TargetDistanceMeters / target.referenceDistance())
	// Clamp so extreme configurations cannot dominate the nominal score.
	if factor < 0.5 {
		factor = 0.5
	}
	if factor > 2.0 {
		factor = 2.0
	}
	return factor
}

// ringConfidence reflects discretization risk at ring edges: high for a hit
// well inside a ring, decaying as the corrected distance approaches a
// boundary. The edge band is 30% of the ring width on each side.
func ringConfidence(zone ScoringZone, distance float64) float64 {
	width := zone.OuterRadius - zone.InnerRadius
	if width <= 0 {
		return 0.7
	}

	distToEdge := zone.OuterRadius - distance
	if zone.InnerRadius > 0 {
		if d := distance - zone.InnerRadius; d < distToEdge {
			distToEdge = d
		}
	}

	band := 0.3 * width
	rel := distToEdge / band
	if rel > 1 {
		rel = 1
	}
	if rel < 0 {
		rel = 0
	}
	return 0.70 + 0.25*rel
}
