package vision

import "testing"

func TestFrameDifferenceConfig_Validate(t *testing.T) {
	mutations := []struct {
		name   string
		mutate func(*FrameDifferenceConfig)
	}{
		{"ZeroMotionThreshold", func(c *FrameDifferenceConfig) { c.MotionThreshold = 0 }},
		{"MotionThresholdOverOne", func(c *FrameDifferenceConfig) { c.MotionThreshold = 1.2 }},
		{"NegativeCooldown", func(c *FrameDifferenceConfig) { c.MinTimeBetweenShots = -1 }},
		{"NegativeMaxShots", func(c *FrameDifferenceConfig) { c.MaxShots = -2 }},
		{"ZeroROIWidth", func(c *FrameDifferenceConfig) { c.ROIWidth = 0 }},
		{"ROICentreOutOfRange", func(c *FrameDifferenceConfig) { c.ROICenterX = 1.3 }},
		{"BlendOutOfRange", func(c *FrameDifferenceConfig) { c.AbsorbBlend = 1.5 }},
	}

	t.Run("DefaultIsValid", func(t *testing.T) {
		cfg := DefaultFrameDifferenceConfig()
		if err := cfg.Validate(); err != nil {
			t.Fatalf("default config invalid: %v", err)
		}
	})

	for _, tt := range mutations {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultFrameDifferenceConfig()
			tt.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Validate accepted an out-of-range config")
			}
		})
	}
}

// TestFrameDifferenceConfig_WithDefaults checks zero-valued tunables are
// filled in while explicit settings survive.
func TestFrameDifferenceConfig_WithDefaults(t *testing.T) {
	cfg := FrameDifferenceConfig{
		MotionThreshold:     0.02,
		MinTimeBetweenShots: 3,
		ROICenterX:          0.5,
		ROICenterY:          0.5,
		ROIWidth:            0.6,
		ROIHeight:           0.6,
		DarkWeight:          5,
	}
	got := cfg.withDefaults()

	if got.SampleRate != 1 {
		t.Errorf("SampleRate = %d, want 1", got.SampleRate)
	}
	if got.WarmupFrames != DefaultWarmupFrames {
		t.Errorf("WarmupFrames = %d, want %d", got.WarmupFrames, DefaultWarmupFrames)
	}
	if got.PixelDiffThreshold != DefaultPixelDiffThreshold {
		t.Errorf("PixelDiffThreshold = %v, want %v", got.PixelDiffThreshold, DefaultPixelDiffThreshold)
	}
	if got.DarkRatioFloor != DefaultDarkRatioFloor {
		t.Errorf("DarkRatioFloor = %v, want %v", got.DarkRatioFloor, DefaultDarkRatioFloor)
	}
	// Explicit values win over defaults.
	if got.DarkWeight != 5 {
		t.Errorf("DarkWeight = %v, want the explicit 5", got.DarkWeight)
	}
	if got.MotionThreshold != 0.02 || got.MinTimeBetweenShots != 3 {
		t.Errorf("explicit thresholds were overwritten: %+v", got)
	}
}
