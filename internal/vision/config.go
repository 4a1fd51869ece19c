package vision

import "fmt"

// Detection tuning defaults. The exact values are qualitative: they are
// chosen so that a small dark blob appearing inside the ROI of an otherwise
// static scene is accepted, while sensor noise and scene-wide lighting
// shifts are rejected. All of them can be overridden per session, either
// directly on FrameDifferenceConfig or through a config.TuningConfig file.
const (
	// DefaultMotionThreshold is the normalized ROI change score above which a
	// frame is considered significant.
	DefaultMotionThreshold = 0.01
	// DefaultMinTimeBetweenShots is the cooldown between accepted shots in seconds.
	DefaultMinTimeBetweenShots = 2.0
	// DefaultWarmupFrames is the number of sampled frames used to seed the
	// background model before any shot can be emitted.
	DefaultWarmupFrames = 4
	// DefaultWarmupBlend is the fast EMA rate used while seeding the model.
	DefaultWarmupBlend = 0.12
	// DefaultDriftBlend is the slow EMA rate used to track ambient lighting.
	DefaultDriftBlend = 0.025
	// DefaultAbsorbBlend is the EMA rate used to fold an accepted impact (and
	// any still-significant frames during cooldown) into the background so a
	// hole does not re-trigger.
	DefaultAbsorbBlend = 0.08
	// DefaultPixelDiffThreshold is the per-pixel luma delta marking a pixel
	// as changed when building the blob mask.
	DefaultPixelDiffThreshold = 25.0
	// DefaultDarknessMargin is how much darker than the background a pixel
	// must be to count as a dark (impact-like) change.
	DefaultDarknessMargin = 30.0
	// DefaultDarkWeight is the weight applied to darkening pixels in the ROI
	// change score. Impacts are dark marks on a lighter target face.
	DefaultDarkWeight = 3.0
	// DefaultMinBlobPixels rejects candidate blobs smaller than this as noise.
	DefaultMinBlobPixels = 8
	// DefaultMaxBlobFraction rejects candidate blobs covering more than this
	// fraction of the ROI as scene-wide events.
	DefaultMaxBlobFraction = 0.08
	// DefaultDarkRatioFloor is the minimum fraction of changed pixels that
	// must be darkening for a candidate to be accepted as an impact.
	DefaultDarkRatioFloor = 0.7
)

// FrameDifferenceConfig configures one detection session.
type FrameDifferenceConfig struct {
	// MotionThreshold is the normalized ROI change score gate, in (0, 1].
	MotionThreshold float64
	// MinTimeBetweenShots is the cooldown between accepted shots in seconds.
	MinTimeBetweenShots float64
	// MaxShots ends the session once this many shots were accepted. Zero
	// means unlimited.
	MaxShots int

	// ROI centre and size as fractions of the frame extent.
	ROICenterX float64
	ROICenterY float64
	ROIWidth   float64
	ROIHeight  float64

	// SampleRate processes every Nth delivered frame; values below 1 are
	// treated as 1.
	SampleRate int

	// Tunables, zero meaning "use the package default".
	WarmupFrames       int
	WarmupBlend        float64
	DriftBlend         float64
	AbsorbBlend        float64
	PixelDiffThreshold float64
	DarknessMargin     float64
	DarkWeight         float64
	MinBlobPixels      int
	MaxBlobFraction    float64
	DarkRatioFloor     float64

	// EnableDiagnostics turns on per-frame debug logging for this session.
	EnableDiagnostics bool
}

// DefaultFrameDifferenceConfig returns a config with sensible defaults:
// ROI covering the central 80% of the frame, every frame processed, and the
// package default thresholds.
func DefaultFrameDifferenceConfig() FrameDifferenceConfig {
	return FrameDifferenceConfig{
		MotionThreshold:     DefaultMotionThreshold,
		MinTimeBetweenShots: DefaultMinTimeBetweenShots,
		ROICenterX:          0.5,
		ROICenterY:          0.5,
		ROIWidth:            0.8,
		ROIHeight:           0.8,
		SampleRate:          1,
	}
}

// Validate checks the config fields that have hard ranges. Tunables left at
// zero are filled with defaults at session start and are not errors here.
func (c *FrameDifferenceConfig) Validate() error {
	if c.MotionThreshold <= 0 || c.MotionThreshold > 1 {
		return fmt.Errorf("motion threshold %v out of range (0, 1]", c.MotionThreshold)
	}
	if c.MinTimeBetweenShots < 0 {
		return fmt.Errorf("min time between shots %v must not be negative", c.MinTimeBetweenShots)
	}
	if c.MaxShots < 0 {
		return fmt.Errorf("max shots %d must not be negative", c.MaxShots)
	}
	if c.ROIWidth <= 0 || c.ROIWidth > 1 || c.ROIHeight <= 0 || c.ROIHeight > 1 {
		return fmt.Errorf("roi size %vx%v out of range (0, 1]", c.ROIWidth, c.ROIHeight)
	}
	if c.ROICenterX < 0 || c.ROICenterX > 1 || c.ROICenterY < 0 || c.ROICenterY > 1 {
		return fmt.Errorf("roi centre (%v, %v) out of range [0, 1]", c.ROICenterX, c.ROICenterY)
	}
	for name, v := range map[string]float64{
		"warmup blend":      c.WarmupBlend,
		"drift blend":       c.DriftBlend,
		"absorb blend":      c.AbsorbBlend,
		"dark ratio":        c.DarkRatioFloor,
		"max blob fraction": c.MaxBlobFraction,
	} {
		if v < 0 || v > 1 {
			return fmt.Errorf("%s %v out of range [0, 1]", name, v)
		}
	}
	return nil
}

// withDefaults returns a copy of the config with zero-valued tunables
// replaced by the package defaults.
func (c FrameDifferenceConfig) withDefaults() FrameDifferenceConfig {
	if c.SampleRate < 1 {
		c.SampleRate = 1
	}
	if c.WarmupFrames <= 0 {
		c.WarmupFrames = DefaultWarmupFrames
	}
	if c.WarmupBlend == 0 {
		c.WarmupBlend = DefaultWarmupBlend
	}
	if c.DriftBlend == 0 {
		c.DriftBlend = DefaultDriftBlend
	}
	if c.AbsorbBlend == 0 {
		c.AbsorbBlend = DefaultAbsorbBlend
	}
	if c.PixelDiffThreshold == 0 {
		c.PixelDiffThreshold = DefaultPixelDiffThreshold
	}
	if c.DarknessMargin == 0 {
		c.DarknessMargin = DefaultDarknessMargin
	}
	if c.DarkWeight == 0 {
		c.DarkWeight = DefaultDarkWeight
	}
	if c.MinBlobPixels <= 0 {
		c.MinBlobPixels = DefaultMinBlobPixels
	}
	if c.MaxBlobFraction == 0 {
		c.MaxBlobFraction = DefaultMaxBlobFraction
	}
	if c.DarkRatioFloor == 0 {
		c.DarkRatioFloor = DefaultDarkRatioFloor
	}
	return c
}
