package units

import (
	"math"
	"testing"
)

func TestIsValidDistanceUnit(t *testing.T) {
	tests := []struct {
		unit string
		want bool
	}{
		{Meters, true},
		{Yards, true},
		{Feet, true},
		{"km", false},
		{"", false},
		{"M", false},
	}
	for _, tt := range tests {
		if got := IsValidDistanceUnit(tt.unit); got != tt.want {
			t.Errorf("IsValidDistanceUnit(%q) = %v, want %v", tt.unit, got, tt.want)
		}
	}
}

func TestConvertDistance(t *testing.T) {
	tests := []struct {
		name   string
		meters float64
		units  string
		want   float64
	}{
		{"meters passthrough", 10, Meters, 10},
		{"to yards", 10, Yards, 10.936132983377},
		{"to feet", 10, Feet, 32.808398950131},
		{"unknown unit passthrough", 10, "furlong", 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ConvertDistance(tt.meters, tt.units)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("ConvertDistance(%v, %q) = %v, want %v", tt.meters, tt.units, got, tt.want)
			}
		})
	}
}

func TestAngleConversions(t *testing.T) {
	if got := DegreesToRadians(180); math.Abs(got-math.Pi) > 1e-12 {
		t.Errorf("DegreesToRadians(180) = %v, want pi", got)
	}
	if got := RadiansToDegrees(math.Pi / 2); math.Abs(got-90) > 1e-12 {
		t.Errorf("RadiansToDegrees(pi/2) = %v, want 90", got)
	}
}

func TestNormalizeDegrees(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{0, 0},
		{360, 0},
		{-90, 270},
		{450, 90},
		{-360, 0},
	}
	for _, tt := range tests {
		if got := NormalizeDegrees(tt.in); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("NormalizeDegrees(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestNormalizedToCm(t *testing.T) {
	// A 60cm target: the full 100-unit span is 60cm, so 50 units is 30cm.
	if got := NormalizedToCm(50, 60); math.Abs(got-30) > 1e-9 {
		t.Errorf("NormalizedToCm(50, 60) = %v, want 30", got)
	}
	if got := NormalizedToCm(50, 0); got != 0 {
		t.Errorf("NormalizedToCm with zero diameter = %v, want 0", got)
	}
	// Round trip
	if got := CmToNormalized(NormalizedToCm(37.5, 60), 60); math.Abs(got-37.5) > 1e-9 {
		t.Errorf("round trip = %v, want 37.5", got)
	}
}
