// Package vision implements the shot detection, geometric scoring, and
// session statistics pipeline.
//
// The pipeline has three stages. A stateful Detector consumes sampled video
// frames, maintains an adaptive background model, and emits DetectedShot
// events when a new impact appears on the target face. The stateless scoring
// functions turn an impact coordinate plus a target configuration into a
// ShotResult. The statistics functions reduce a ShotResult sequence into
// session-level metrics and coaching recommendations.
package vision

import (
	"fmt"

	"github.com/cespare/xxhash/v2"
)

// Frame is one sampled video frame delivered by an external frame source.
// Pixels is a row-major interleaved buffer of Width*Height*Channels bytes.
// Frames are read-only to the pipeline and are not retained after
// processing, except for the keyframe snapshot attached to an accepted shot.
type Frame struct {
	Width    int
	Height   int
	Channels int // 1 (grayscale), 3 (RGB) or 4 (RGBA; alpha ignored)

	Pixels []uint8

	TimestampSeconds float64
	Sequence         int64
}

// Valid reports whether the frame has positive dimensions and a pixel
// buffer of the expected length.
func (f *Frame) Valid() bool {
	if f == nil || f.Width <= 0 || f.Height <= 0 {
		return false
	}
	if f.Channels != 1 && f.Channels != 3 && f.Channels != 4 {
		return false
	}
	return len(f.Pixels) == f.Width*f.Height*f.Channels
}

// LumaAt returns the mean-channel luma for the pixel at (x, y) in the range
// [0, 255]. For RGBA buffers the alpha channel is excluded from the mean.
func (f *Frame) LumaAt(x, y int) float64 {
	colour := f.Channels
	if colour > 3 {
		colour = 3
	}
	base := (y*f.Width + x) * f.Channels
	sum := 0
	for c := 0; c < colour; c++ {
		sum += int(f.Pixels[base+c])
	}
	return float64(sum) / float64(colour)
}

// Digest returns a 64-bit content hash over the raw pixel bytes. It gives
// frames and keyframe snapshots a deterministic, collision-resistant
// identity without depending on timestamps or sequence numbers.
func (f *Frame) Digest() uint64 {
	return xxhash.Sum64(f.Pixels)
}

// Clone returns a deep copy of the frame. Used to capture keyframe
// snapshots, since the source may reuse pixel buffers between frames.
func (f *Frame) Clone() *Frame {
	pixels := make([]uint8, len(f.Pixels))
	copy(pixels, f.Pixels)
	return &Frame{
		Width:            f.Width,
		Height:           f.Height,
		Channels:         f.Channels,
		Pixels:           pixels,
		TimestampSeconds: f.TimestampSeconds,
		Sequence:         f.Sequence,
	}
}

func (f *Frame) String() string {
	return fmt.Sprintf("frame seq=%d %dx%dx%d t=%.3fs", f.Sequence, f.Width, f.Height, f.Channels, f.TimestampSeconds)
}
