// Package config loads optional JSON tuning files for the detection
// pipeline. Fields omitted from a file keep their in-code defaults, so
// partial configs are safe; a deployment only writes the knobs it changes.
package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/gmshoot/shotvision/internal/security"
	"github.com/gmshoot/shotvision/internal/vision"
)

// TuningConfig overlays the tunable detection parameters. Pointer fields
// distinguish "not set" from an explicit zero. The field set mirrors the
// knobs on vision.FrameDifferenceConfig whose exact values are qualitative
// rather than pinned, so ranges can be tuned per venue without a rebuild.
type TuningConfig struct {
	MotionThreshold     *float64 `json:"motion_threshold,omitempty"`
	MinTimeBetweenShots *float64 `json:"min_time_between_shots,omitempty"`

	WarmupFrames *int     `json:"warmup_frames,omitempty"`
	WarmupBlend  *float64 `json:"warmup_blend,omitempty"`
	DriftBlend   *float64 `json:"drift_blend,omitempty"`
	AbsorbBlend  *float64 `json:"absorb_blend,omitempty"`

	PixelDiffThreshold *float64 `json:"pixel_diff_threshold,omitempty"`
	DarknessMargin     *float64 `json:"darkness_margin,omitempty"`
	DarkWeight         *float64 `json:"dark_weight,omitempty"`
	MinBlobPixels      *int     `json:"min_blob_pixels,omitempty"`
	MaxBlobFraction    *float64 `json:"max_blob_fraction,omitempty"`
	DarkRatioFloor     *float64 `json:"dark_ratio_floor,omitempty"`
}

// EmptyTuningConfig returns a TuningConfig with all fields unset.
func EmptyTuningConfig() *TuningConfig {
	return &TuningConfig{}
}

// LoadTuningConfig loads a TuningConfig from a JSON file. The file must
// have a .json extension and stay under the max file size. Fields omitted
// from the JSON remain unset.
func LoadTuningConfig(path string) (*TuningConfig, error) {
	const maxFileSize = 1 * 1024 * 1024 // 1MB
	cleanPath, err := security.ValidateConfigFile(path, ".json", maxFileSize)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := EmptyTuningConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks that any set fields hold usable values.
func (c *TuningConfig) Validate() error {
	if c.MotionThreshold != nil && (*c.MotionThreshold <= 0 || *c.MotionThreshold > 1) {
		return fmt.Errorf("motion_threshold must be in (0, 1], got %f", *c.MotionThreshold)
	}
	if c.MinTimeBetweenShots != nil && *c.MinTimeBetweenShots < 0 {
		return fmt.Errorf("min_time_between_shots must be non-negative, got %f", *c.MinTimeBetweenShots)
	}
	if c.WarmupFrames != nil && *c.WarmupFrames < 1 {
		return fmt.Errorf("warmup_frames must be at least 1, got %d", *c.WarmupFrames)
	}
	for name, v := range map[string]*float64{
		"warmup_blend":      c.WarmupBlend,
		"drift_blend":       c.DriftBlend,
		"absorb_blend":      c.AbsorbBlend,
		"max_blob_fraction": c.MaxBlobFraction,
		"dark_ratio_floor":  c.DarkRatioFloor,
	} {
		if v != nil && (*v <= 0 || *v > 1) {
			return fmt.Errorf("%s must be in (0, 1], got %f", name, *v)
		}
	}
	if c.PixelDiffThreshold != nil && (*c.PixelDiffThreshold < 0 || *c.PixelDiffThreshold > 255) {
		return fmt.Errorf("pixel_diff_threshold must be in [0, 255], got %f", *c.PixelDiffThreshold)
	}
	if c.DarknessMargin != nil && (*c.DarknessMargin < 0 || *c.DarknessMargin > 255) {
		return fmt.Errorf("darkness_margin must be in [0, 255], got %f", *c.DarknessMargin)
	}
	if c.DarkWeight != nil && *c.DarkWeight < 1 {
		return fmt.Errorf("dark_weight must be at least 1, got %f", *c.DarkWeight)
	}
	if c.MinBlobPixels != nil && *c.MinBlobPixels < 1 {
		return fmt.Errorf("min_blob_pixels must be at least 1, got %d", *c.MinBlobPixels)
	}
	return nil
}

// ApplyTo overlays the set fields onto a detection config. Unset fields
// leave the target untouched.
func (c *TuningConfig) ApplyTo(cfg *vision.FrameDifferenceConfig) {
	if c.MotionThreshold != nil {
		cfg.MotionThreshold = *c.MotionThreshold
	}
	if c.MinTimeBetweenShots != nil {
		cfg.MinTimeBetweenShots = *c.MinTimeBetweenShots
	}
	if c.WarmupFrames != nil {
		cfg.WarmupFrames = *c.WarmupFrames
	}
	if c.WarmupBlend != nil {
		cfg.WarmupBlend = *c.WarmupBlend
	}
	if c.DriftBlend != nil {
		cfg.DriftBlend = *c.DriftBlend
	}
	if c.AbsorbBlend != nil {
		cfg.AbsorbBlend = *c.AbsorbBlend
	}
	if c.PixelDiffThreshold != nil {
		cfg.PixelDiffThreshold = *c.PixelDiffThreshold
	}
	if c.DarknessMargin != nil {
		cfg.DarknessMargin = *c.DarknessMargin
	}
	if c.DarkWeight != nil {
		cfg.DarkWeight = *c.DarkWeight
	}
	if c.MinBlobPixels != nil {
		cfg.MinBlobPixels = *c.MinBlobPixels
	}
	if c.MaxBlobFraction != nil {
		cfg.MaxBlobFraction = *c.MaxBlobFraction
	}
	if c.DarkRatioFloor != nil {
		cfg.DarkRatioFloor = *c.DarkRatioFloor
	}
}
