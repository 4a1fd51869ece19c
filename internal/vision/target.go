package vision

import "sort"

// Coordinate is a shot position in normalized target space: [0,100] on both
// axes with the target centre at (50,50).
type Coordinate struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// TargetCenter is the normalized centre of the target face.
const TargetCenter = 50.0

// InRange reports whether the coordinate lies inside the normalized target
// space. Anything outside is scored as a miss without further geometry.
func (c Coordinate) InRange() bool {
	return c.X >= 0 && c.X <= 100 && c.Y >= 0 && c.Y <= 100
}

// ScoringZone is an annular region of the target face mapped to a point
// value. Radii are in normalized coordinate units.
type ScoringZone struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	PointValue  int     `json:"point_value"`
	InnerRadius float64 `json:"inner_radius"`
	OuterRadius float64 `json:"outer_radius"`
	Color       string  `json:"color"`
}

// TargetConfiguration describes the target layout and camera geometry for
// one session. It is supplied externally and immutable for the session.
type TargetConfiguration struct {
	TargetDistanceMeters      float64       `json:"target_distance_meters"`
	TargetDiameterCm          float64       `json:"target_diameter_cm"`
	TargetType                string        `json:"target_type"`
	ScoringZones              []ScoringZone `json:"scoring_zones"`
	CameraAngleDegrees        float64       `json:"camera_angle_degrees"`
	LensDistortionCoefficient float64       `json:"lens_distortion_coefficient"`

	// ReferenceDistanceMeters anchors the distance compensation curve; a
	// target at exactly this distance scores its nominal point values.
	// Zero means the default of 10m.
	ReferenceDistanceMeters float64 `json:"reference_distance_meters,omitempty"`
}

// DefaultReferenceDistanceMeters anchors distance compensation when the
// target configuration does not specify a reference.
const DefaultReferenceDistanceMeters = 10.0

// DefaultTargetConfiguration returns a standard concentric-ring target at
// 10m: bullseye worth 10 points, rings stepping down to 6, miss outside.
func DefaultTargetConfiguration() TargetConfiguration {
	return TargetConfiguration{
		TargetDistanceMeters: 10,
		TargetDiameterCm:     60,
		TargetType:           "concentric",
		ScoringZones: []ScoringZone{
			{ID: "bullseye", Name: "Bullseye", PointValue: 10, InnerRadius: 0, OuterRadius: 5, Color: "#ffd700"},
			{ID: "inner", Name: "Inner", PointValue: 9, InnerRadius: 5, OuterRadius: 10, Color: "#e74c3c"},
			{ID: "middle", Name: "Middle", PointValue: 8, InnerRadius: 10, OuterRadius: 20, Color: "#3498db"},
			{ID: "outer", Name: "Outer", PointValue: 7, InnerRadius: 20, OuterRadius: 30, Color: "#2ecc71"},
			{ID: "edge", Name: "Edge", PointValue: 6, InnerRadius: 30, OuterRadius: 40, Color: "#95a5a6"},
		},
	}
}

// sortedZones returns the configured zones sorted ascending by outer radius.
// The engine tolerates unordered input; lookup always happens on the sorted
// copy so callers may supply zones in any order.
func (t TargetConfiguration) sortedZones() []ScoringZone {
	zones := make([]ScoringZone, len(t.ScoringZones))
	copy(zones, t.ScoringZones)
	sort.Slice(zones, func(i, j int) bool { return zones[i].OuterRadius < zones[j].OuterRadius })
	return zones
}

// maxZoneRadius returns the largest configured outer radius, falling back to
// the target centre offset when no zones are configured.
func (t TargetConfiguration) maxZoneRadius() float64 {
	max := 0.0
	for _, z := range t.ScoringZones {
		if z.OuterRadius > max {
			max = z.OuterRadius
		}
	}
	if max <= 0 {
		max = TargetCenter
	}
	return max
}

// referenceDistance returns the anchor distance for compensation.
func (t TargetConfiguration) referenceDistance() float64 {
	if t.ReferenceDistanceMeters > 0 {
		return t.ReferenceDistanceMeters
	}
	return DefaultReferenceDistanceMeters
}
