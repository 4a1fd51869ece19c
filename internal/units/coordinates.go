package units

// Target coordinates are normalized to a [0,100] square with the target
// centre at (50,50). These helpers map normalized offsets to physical sizes
// on the target face.

// NormalizedSpan is the width of the normalized coordinate space.
const NormalizedSpan = 100.0

// NormalizedToCm converts a distance expressed in normalized coordinate
// units to centimetres on a target of the given diameter. The full
// normalized span corresponds to the target diameter.
func NormalizedToCm(normalized, targetDiameterCm float64) float64 {
	if targetDiameterCm <= 0 {
		return 0
	}
	return normalized * targetDiameterCm / NormalizedSpan
}

// CmToNormalized converts a physical distance in centimetres to normalized
// coordinate units for a target of the given diameter.
func CmToNormalized(cm, targetDiameterCm float64) float64 {
	if targetDiameterCm <= 0 {
		return 0
	}
	return cm * NormalizedSpan / targetDiameterCm
}
