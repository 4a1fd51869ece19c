package vision

import "io"

// SyntheticSource generates a deterministic frame sequence for replay and
// testing: a uniform light target face with dark square impacts appearing
// at configured frame indices. It implements FrameSource.
type SyntheticSource struct {
	Width      int
	Height     int
	FPS        float64
	Frames     int
	Background uint8
	Impacts    []SyntheticImpact

	next int64
}

// SyntheticImpact is one injected impact: a dark square that appears at
// FrameIndex and persists for the rest of the sequence, like a real hole.
type SyntheticImpact struct {
	FrameIndex int64
	X, Y       int // top-left pixel of the square
	Size       int
	Luma       uint8
}

// NewSyntheticSource returns a source with a light 160x120 grayscale face
// at 5 FPS. Callers adjust fields before the first NextFrame call.
func NewSyntheticSource(frames int, impacts ...SyntheticImpact) *SyntheticSource {
	return &SyntheticSource{
		Width:      160,
		Height:     120,
		FPS:        5,
		Frames:     frames,
		Background: 200,
		Impacts:    impacts,
	}
}

// NextFrame returns the next frame, or io.EOF after the configured count.
func (s *SyntheticSource) NextFrame() (*Frame, error) {
	if s.next >= int64(s.Frames) {
		return nil, io.EOF
	}
	seq := s.next
	s.next++

	pixels := make([]uint8, s.Width*s.Height)
	for i := range pixels {
		pixels[i] = s.Background
	}
	for _, imp := range s.Impacts {
		if seq < imp.FrameIndex {
			continue
		}
		for y := imp.Y; y < imp.Y+imp.Size && y < s.Height; y++ {
			for x := imp.X; x < imp.X+imp.Size && x < s.Width; x++ {
				if x >= 0 && y >= 0 {
					pixels[y*s.Width+x] = imp.Luma
				}
			}
		}
	}

	return &Frame{
		Width:            s.Width,
		Height:           s.Height,
		Channels:         1,
		Pixels:           pixels,
		TimestampSeconds: float64(seq) / s.FPS,
		Sequence:         seq,
	}, nil
}
