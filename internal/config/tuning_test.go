package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/gmshoot/shotvision/internal/testutil"
	"github.com/gmshoot/shotvision/internal/vision"
)

func writeTuningFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write tuning file: %v", err)
	}
	return path
}

func TestLoadTuningConfig_Partial(t *testing.T) {
	path := writeTuningFile(t, "tuning.json", `{
		"motion_threshold": 0.02,
		"min_blob_pixels": 12
	}`)

	cfg, err := LoadTuningConfig(path)
	testutil.AssertNoError(t, err)

	if cfg.MotionThreshold == nil || *cfg.MotionThreshold != 0.02 {
		t.Errorf("MotionThreshold = %v, want 0.02", cfg.MotionThreshold)
	}
	if cfg.MinBlobPixels == nil || *cfg.MinBlobPixels != 12 {
		t.Errorf("MinBlobPixels = %v, want 12", cfg.MinBlobPixels)
	}
	// Omitted fields stay unset.
	if cfg.DarkWeight != nil || cfg.WarmupFrames != nil {
		t.Errorf("omitted fields were set: %+v", cfg)
	}
}

func TestLoadTuningConfig_Errors(t *testing.T) {
	t.Run("WrongExtension", func(t *testing.T) {
		path := writeTuningFile(t, "tuning.yaml", "{}")
		_, err := LoadTuningConfig(path)
		testutil.AssertError(t, err)
	})
	t.Run("MissingFile", func(t *testing.T) {
		_, err := LoadTuningConfig(filepath.Join(t.TempDir(), "absent.json"))
		testutil.AssertError(t, err)
	})
	t.Run("MalformedJSON", func(t *testing.T) {
		path := writeTuningFile(t, "tuning.json", `{"motion_threshold": `)
		_, err := LoadTuningConfig(path)
		testutil.AssertError(t, err)
	})
	t.Run("OutOfRangeValue", func(t *testing.T) {
		path := writeTuningFile(t, "tuning.json", `{"motion_threshold": 2.0}`)
		_, err := LoadTuningConfig(path)
		testutil.AssertError(t, err)
	})
}

func TestTuningConfig_Validate(t *testing.T) {
	bad := func(mutate func(*TuningConfig)) *TuningConfig {
		c := EmptyTuningConfig()
		mutate(c)
		return c
	}
	f := func(v float64) *float64 { return &v }
	i := func(v int) *int { return &v }

	tests := []struct {
		name string
		cfg  *TuningConfig
	}{
		{"MotionThresholdZero", bad(func(c *TuningConfig) { c.MotionThreshold = f(0) })},
		{"NegativeCooldown", bad(func(c *TuningConfig) { c.MinTimeBetweenShots = f(-1) })},
		{"ZeroWarmupFrames", bad(func(c *TuningConfig) { c.WarmupFrames = i(0) })},
		{"BlendOverOne", bad(func(c *TuningConfig) { c.DriftBlend = f(1.5) })},
		{"PixelDiffOver255", bad(func(c *TuningConfig) { c.PixelDiffThreshold = f(300) })},
		{"DarkWeightBelowOne", bad(func(c *TuningConfig) { c.DarkWeight = f(0.5) })},
		{"ZeroMinBlob", bad(func(c *TuningConfig) { c.MinBlobPixels = i(0) })},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			testutil.AssertError(t, tt.cfg.Validate())
		})
	}

	t.Run("EmptyIsValid", func(t *testing.T) {
		testutil.AssertNoError(t, EmptyTuningConfig().Validate())
	})
}

// TestTuningConfig_ApplyTo overlays a partial tuning config and checks only
// the set fields change.
func TestTuningConfig_ApplyTo(t *testing.T) {
	threshold := 0.05
	blobs := 20
	tuning := &TuningConfig{
		MotionThreshold: &threshold,
		MinBlobPixels:   &blobs,
	}

	got := vision.DefaultFrameDifferenceConfig()
	tuning.ApplyTo(&got)

	want := vision.DefaultFrameDifferenceConfig()
	want.MotionThreshold = 0.05
	want.MinBlobPixels = 20

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("applied config mismatch (-want +got):\n%s", diff)
	}
}

func TestTuningConfig_ApplyToEmptyIsNoop(t *testing.T) {
	got := vision.DefaultFrameDifferenceConfig()
	EmptyTuningConfig().ApplyTo(&got)
	if diff := cmp.Diff(vision.DefaultFrameDifferenceConfig(), got); diff != "" {
		t.Errorf("empty tuning changed the config (-want +got):\n%s", diff)
	}
}
