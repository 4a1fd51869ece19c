package vision

// BackgroundModel is the adaptive per-pixel luma reference approximating the
// static scene. It is exclusively owned by one Detector for one session:
// created when the first frame arrives, blended on every processed frame,
// and discarded with the session. It is never shared or persisted.
type BackgroundModel struct {
	Width  int
	Height int

	// Luma holds the per-pixel reference in [0,255], row-major.
	Luma []float32

	// FramesBlended counts how many frames have contributed to the model.
	FramesBlended int
}

// newBackgroundModel seeds a model verbatim from the first frame.
func newBackgroundModel(f *Frame) *BackgroundModel {
	m := &BackgroundModel{
		Width:  f.Width,
		Height: f.Height,
		Luma:   make([]float32, f.Width*f.Height),
	}
	for y := 0; y < f.Height; y++ {
		for x := 0; x < f.Width; x++ {
			m.Luma[y*f.Width+x] = float32(f.LumaAt(x, y))
		}
	}
	m.FramesBlended = 1
	return m
}

// LumaAt returns the reference luma at (x, y).
func (m *BackgroundModel) LumaAt(x, y int) float64 {
	return float64(m.Luma[y*m.Width+x])
}

// Blend folds the frame into the model with an exponential moving average:
// ref = (1-alpha)*ref + alpha*observed. The frame must match the model
// dimensions; callers gate on that before blending.
func (m *BackgroundModel) Blend(f *Frame, alpha float64) {
	a := float32(alpha)
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			i := y*m.Width + x
			m.Luma[i] = (1-a)*m.Luma[i] + a*float32(f.LumaAt(x, y))
		}
	}
	m.FramesBlended++
}

// BlendRegion is Blend restricted to the given ROI. The steady-state drift
// and post-shot absorb updates only ever look at the ROI, so there is no
// point paying for the full frame.
func (m *BackgroundModel) BlendRegion(f *Frame, roi ROI, alpha float64) {
	a := float32(alpha)
	for y := roi.Y0; y < roi.Y1; y++ {
		for x := roi.X0; x < roi.X1; x++ {
			i := y*m.Width + x
			m.Luma[i] = (1-a)*m.Luma[i] + a*float32(f.LumaAt(x, y))
		}
	}
	m.FramesBlended++
}
