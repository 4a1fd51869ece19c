// Package units provides shared constants and conversions for the distance
// and angle quantities used by the scoring pipeline.
package units

import "math"

// Distance unit constants
const (
	Meters = "m"
	Yards  = "yd"
	Feet   = "ft"
)

// ValidDistanceUnits contains all valid distance unit values
var ValidDistanceUnits = []string{Meters, Yards, Feet}

// IsValidDistanceUnit checks if the given unit is in the list of valid units
func IsValidDistanceUnit(unit string) bool {
	for _, validUnit := range ValidDistanceUnits {
		if unit == validUnit {
			return true
		}
	}
	return false
}

// ValidDistanceUnitsString returns a comma-separated string of valid units for error messages
func ValidDistanceUnitsString() string {
	return "m, yd, ft"
}

// ConvertDistance converts a distance from meters to the target units.
// Target configurations store distances in meters.
func ConvertDistance(meters float64, targetUnits string) float64 {
	switch targetUnits {
	case Meters:
		return meters
	case Yards:
		return meters * 1.0936132983377
	case Feet:
		return meters * 3.2808398950131
	default:
		return meters
	}
}

// DegreesToRadians converts an angle in degrees to radians.
func DegreesToRadians(deg float64) float64 { return deg * math.Pi / 180.0 }

// RadiansToDegrees converts an angle in radians to degrees.
func RadiansToDegrees(rad float64) float64 { return rad * 180.0 / math.Pi }

// NormalizeDegrees maps an angle in degrees into [0, 360).
func NormalizeDegrees(deg float64) float64 {
	norm := math.Mod(deg, 360.0)
	if norm < 0 {
		norm += 360.0
	}
	return norm
}
