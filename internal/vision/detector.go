package vision

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"

	"github.com/gmshoot/shotvision/internal/monitoring"
)

// ErrResource indicates the detector could not set up its compute surface
// (background model and ROI) for the session. Fatal: the session never starts.
var ErrResource = errors.New("vision: cannot allocate detection surface")

// ErrSessionStopped is returned for frames delivered after Stop was called.
var ErrSessionStopped = errors.New("vision: session stopped")

// DetectedShot is one accepted impact event. Immutable once created; shots
// are appended to the session list in strictly increasing timestamp order.
type DetectedShot struct {
	ShotID           string  `json:"shot_id"`
	FrameNumber      int64   `json:"frame_number"`
	TimestampSeconds float64 `json:"timestamp_seconds"`

	// KeyFrame is a full-resolution snapshot of the frame that triggered
	// the detection, for downstream classification or review.
	KeyFrame *Frame `json:"-"`

	// KeyFrameDigest is the 64-bit content hash of the keyframe pixels.
	KeyFrameDigest uint64 `json:"key_frame_digest"`

	Confidence float64 `json:"confidence"`
}

// FrameSource supplies a lazy, time-ordered sequence of frames. NextFrame
// returns io.EOF when the stream ends. Acquisition, decoding, and any retry
// policy live behind this interface, outside the pipeline.
type FrameSource interface {
	NextFrame() (*Frame, error)
}

// Detector runs one detection session. It owns the background model and the
// growing shot list for that session and must be fed frames sequentially:
// each frame's result depends on the model state left by the previous frame.
// Frames must arrive in non-decreasing timestamp order; that is a
// precondition, not something the detector recovers from. Two concurrent
// sessions simply use two Detector instances; nothing is shared.
type Detector struct {
	cfg FrameDifferenceConfig

	model *BackgroundModel
	roi   ROI

	warmupRemaining int
	framesDelivered int64
	framesProcessed int64
	lastShotTime    float64
	haveShot        bool
	stopped         bool

	shots []DetectedShot
}

// NewDetector starts a detection session with the given config. Tunables
// left at zero are filled with package defaults. The background model is
// allocated lazily when the first frame arrives, because the frame stream
// determines its dimensions.
func NewDetector(cfg FrameDifferenceConfig) (*Detector, error) {
	cfg = cfg.withDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("vision: invalid config: %w", err)
	}
	return &Detector{cfg: cfg, warmupRemaining: cfg.WarmupFrames}, nil
}

// Config returns the effective session config after defaulting.
func (d *Detector) Config() FrameDifferenceConfig { return d.cfg }

// Shots returns the shots accepted so far, in timestamp order.
func (d *Detector) Shots() []DetectedShot { return d.shots }

// Done reports whether the session reached its MaxShots cap or was stopped.
func (d *Detector) Done() bool {
	if d.stopped {
		return true
	}
	return d.cfg.MaxShots > 0 && len(d.shots) >= d.cfg.MaxShots
}

// Stop halts frame intake. Frames delivered after Stop emit nothing.
func (d *Detector) Stop() { d.stopped = true }

// ProcessFrame feeds one frame through the session and returns a
// DetectedShot if this frame was accepted as a new impact, or nil.
//
// An invalid first frame is a fatal ErrResource: the detector has no surface
// to build its model on. A frame with mismatched dimensions mid-session is
// dropped (logged) and the model left unchanged.
func (d *Detector) ProcessFrame(f *Frame) (*DetectedShot, error) {
	if d.stopped {
		return nil, ErrSessionStopped
	}
	if d.Done() {
		return nil, nil
	}

	d.framesDelivered++
	if (d.framesDelivered-1)%int64(d.cfg.SampleRate) != 0 {
		return nil, nil
	}

	if d.model == nil {
		return nil, d.startSurface(f)
	}

	if !f.Valid() || f.Width != d.model.Width || f.Height != d.model.Height {
		monitoring.Logf("[Detector] dropping frame seq=%d: dimensions %dx%d do not match session %dx%d",
			f.Sequence, f.Width, f.Height, d.model.Width, d.model.Height)
		return nil, nil
	}

	d.framesProcessed++

	// Warm-up: keep seeding the model quickly; no shots are emitted.
	if d.warmupRemaining > 0 {
		d.model.Blend(f, d.cfg.WarmupBlend)
		d.warmupRemaining--
		if d.cfg.EnableDiagnostics {
			monitoring.Logf("[Detector] warmup frame seq=%d, %d remaining", f.Sequence, d.warmupRemaining)
		}
		return nil, nil
	}

	score := d.roiChangeScore(f)
	significant := score > d.cfg.MotionThreshold
	cooldownOver := !d.haveShot || f.TimestampSeconds-d.lastShotTime > d.cfg.MinTimeBetweenShots

	if d.cfg.EnableDiagnostics {
		monitoring.Logf("[Detector] frame seq=%d t=%.2fs score=%.5f significant=%v cooldown_over=%v",
			f.Sequence, f.TimestampSeconds, score, significant, cooldownOver)
	}

	if !significant {
		// Track ambient lighting without absorbing real impacts.
		d.model.BlendRegion(f, d.roi, d.cfg.DriftBlend)
		return nil, nil
	}

	if !cooldownOver {
		// A change during cooldown is almost always the shot we just
		// accepted; fold it in so the hole stops triggering.
		d.model.BlendRegion(f, d.roi, d.cfg.AbsorbBlend)
		return nil, nil
	}

	totalChanged, darkChanged := d.changedPixels(f)
	shot, reason := d.classifyCandidate(f, score, totalChanged, darkChanged)
	if shot == nil {
		if d.cfg.EnableDiagnostics {
			monitoring.Logf("[Detector] frame seq=%d rejected: %s (changed=%d dark=%d)",
				f.Sequence, reason, totalChanged, darkChanged)
		}
		// Rejected changes are scene events (lighting, occlusion); fold
		// them into the model rather than letting them linger.
		d.model.BlendRegion(f, d.roi, d.cfg.AbsorbBlend)
		return nil, nil
	}

	d.shots = append(d.shots, *shot)
	d.haveShot = true
	d.lastShotTime = f.TimestampSeconds
	// Nudge the model so the fresh hole becomes part of the backdrop.
	d.model.BlendRegion(f, d.roi, d.cfg.AbsorbBlend)

	monitoring.Logf("[Detector] shot %d accepted: seq=%d t=%.2fs confidence=%.2f changed=%d dark=%d",
		len(d.shots), f.Sequence, f.TimestampSeconds, shot.Confidence, totalChanged, darkChanged)
	return shot, nil
}

// startSurface allocates the background model and ROI from the first frame.
func (d *Detector) startSurface(f *Frame) error {
	if !f.Valid() {
		return fmt.Errorf("%w: first frame invalid (%dx%dx%d, %d bytes)",
			ErrResource, f.Width, f.Height, f.Channels, len(f.Pixels))
	}
	roi := resolveROI(d.cfg.ROICenterX, d.cfg.ROICenterY, d.cfg.ROIWidth, d.cfg.ROIHeight, f.Width, f.Height)
	if roi.Area() <= 0 {
		return fmt.Errorf("%w: roi resolves to zero pixels on %dx%d frame", ErrResource, f.Width, f.Height)
	}
	d.model = newBackgroundModel(f)
	d.roi = roi
	d.framesProcessed = 1
	if d.warmupRemaining > 0 {
		d.warmupRemaining--
	}
	monitoring.Logf("[Detector] session surface %dx%d roi=%dx%d+%d+%d warmup=%d",
		f.Width, f.Height, roi.Width(), roi.Height(), roi.X0, roi.Y0, d.warmupRemaining)
	return nil
}

// roiChangeScore computes the darkening-biased mean absolute luma difference
// between the frame and the background model over the ROI, normalized to
// [0, ~DarkWeight] by the ROI pixel count and the luma range.
func (d *Detector) roiChangeScore(f *Frame) float64 {
	sum := 0.0
	for y := d.roi.Y0; y < d.roi.Y1; y++ {
		for x := d.roi.X0; x < d.roi.X1; x++ {
			diff := f.LumaAt(x, y) - d.model.LumaAt(x, y)
			weight := diff
			if weight < 0 {
				weight = -weight
			}
			if diff < -d.cfg.DarknessMargin {
				weight *= d.cfg.DarkWeight
			}
			sum += weight
		}
	}
	return sum / (float64(d.roi.Area()) * 255.0)
}

// changedPixels builds the binary changed-pixel mask over the ROI and
// returns the total changed count and the darkening subset.
func (d *Detector) changedPixels(f *Frame) (total, dark int) {
	for y := d.roi.Y0; y < d.roi.Y1; y++ {
		for x := d.roi.X0; x < d.roi.X1; x++ {
			diff := f.LumaAt(x, y) - d.model.LumaAt(x, y)
			abs := diff
			if abs < 0 {
				abs = -abs
			}
			if abs <= d.cfg.PixelDiffThreshold {
				continue
			}
			total++
			if diff < -d.cfg.DarknessMargin {
				dark++
			}
		}
	}
	return total, dark
}

// classifyCandidate applies the blob-size and darkness purity gates and, on
// acceptance, builds the DetectedShot with its keyframe snapshot.
func (d *Detector) classifyCandidate(f *Frame, score float64, totalChanged, darkChanged int) (*DetectedShot, string) {
	if totalChanged < d.cfg.MinBlobPixels {
		return nil, "blob below noise floor"
	}
	maxBlob := int(d.cfg.MaxBlobFraction * float64(d.roi.Area()))
	if totalChanged > maxBlob {
		return nil, "blob covers too much of roi"
	}
	darkRatio := float64(darkChanged) / float64(totalChanged)
	if darkRatio < d.cfg.DarkRatioFloor {
		return nil, "changed pixels not dark enough"
	}

	ratio := score / d.cfg.MotionThreshold
	if ratio > 1 {
		ratio = 1
	}
	confidence := ratio * (0.5 + 0.5*darkRatio)
	if confidence > 1 {
		confidence = 1
	}

	key := f.Clone()
	return &DetectedShot{
		ShotID:           uuid.New().String(),
		FrameNumber:      f.Sequence,
		TimestampSeconds: f.TimestampSeconds,
		KeyFrame:         key,
		KeyFrameDigest:   key.Digest(),
		Confidence:       confidence,
	}, ""
}

// Run pulls frames from the source until it is exhausted, the session hits
// its MaxShots cap, or the context is cancelled, and returns the accepted
// shots. A warm-up that never completes because the stream ends first
// finalizes gracefully: whatever was seeded simply never produced a shot.
//
// Run consumes the source as fast as the detector can process; a live
// source that produces faster than this should drop frames rather than
// queue them, since detection depends on relative ordering, not on seeing
// every frame.
func (d *Detector) Run(ctx context.Context, src FrameSource) ([]DetectedShot, error) {
	for {
		select {
		case <-ctx.Done():
			d.Stop()
			return d.shots, ctx.Err()
		default:
		}
		if d.Done() {
			return d.shots, nil
		}

		f, err := src.NextFrame()
		if errors.Is(err, io.EOF) {
			return d.shots, nil
		}
		if err != nil {
			return d.shots, fmt.Errorf("vision: frame source: %w", err)
		}
		if _, err := d.ProcessFrame(f); err != nil {
			if errors.Is(err, ErrSessionStopped) {
				return d.shots, nil
			}
			return d.shots, err
		}
	}
}
