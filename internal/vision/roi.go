package vision

// ROI is a region of interest resolved to pixel bounds. X1/Y1 are exclusive.
// It is resolved once per session from the normalized fractions in
// FrameDifferenceConfig at first-frame resolution, clipped to frame bounds.
type ROI struct {
	X0, Y0 int
	X1, Y1 int
}

// Width returns the ROI width in pixels.
func (r ROI) Width() int { return r.X1 - r.X0 }

// Height returns the ROI height in pixels.
func (r ROI) Height() int { return r.Y1 - r.Y0 }

// Area returns the ROI pixel count.
func (r ROI) Area() int { return r.Width() * r.Height() }

// Contains reports whether the pixel (x, y) lies inside the ROI.
func (r ROI) Contains(x, y int) bool {
	return x >= r.X0 && x < r.X1 && y >= r.Y0 && y < r.Y1
}

// resolveROI converts the normalized centre/size fractions into pixel bounds
// for a frame of the given dimensions, clipping to the frame.
func resolveROI(centerX, centerY, width, height float64, frameW, frameH int) ROI {
	halfW := width * float64(frameW) / 2
	halfH := height * float64(frameH) / 2
	cx := centerX * float64(frameW)
	cy := centerY * float64(frameH)

	roi := ROI{
		X0: int(cx - halfW),
		Y0: int(cy - halfH),
		X1: int(cx + halfW),
		Y1: int(cy + halfH),
	}
	if roi.X0 < 0 {
		roi.X0 = 0
	}
	if roi.Y0 < 0 {
		roi.Y0 = 0
	}
	if roi.X1 > frameW {
		roi.X1 = frameW
	}
	if roi.Y1 > frameH {
		roi.Y1 = frameH
	}
	return roi
}
