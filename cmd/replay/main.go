// Command replay runs a synthetic shooting session through the full
// pipeline: frame generation, shot detection, geometric scoring, session
// statistics, and optional persistence and reports. Useful for validating
// tuning changes without camera hardware.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand"

	"github.com/gmshoot/shotvision/internal/config"
	"github.com/gmshoot/shotvision/internal/monitoring"
	"github.com/gmshoot/shotvision/internal/report"
	"github.com/gmshoot/shotvision/internal/sessiondb"
	"github.com/gmshoot/shotvision/internal/units"
	"github.com/gmshoot/shotvision/internal/version"
	"github.com/gmshoot/shotvision/internal/vision"
)

func main() {
	shots := flag.Int("shots", 5, "number of impacts to inject")
	fps := flag.Float64("fps", 5, "frames per second")
	seconds := flag.Float64("duration", 60, "session length in seconds")
	seed := flag.Int64("seed", 1, "random seed for impact placement")
	tuningPath := flag.String("tuning", "", "optional JSON tuning file")
	dbPath := flag.String("db", "", "optional sqlite path to persist the session")
	htmlPath := flag.String("html", "", "optional HTML report output path")
	pngPath := flag.String("png", "", "optional PNG group plot output path")
	displayUnits := flag.String("units", units.Meters, "distance units for display (m, yd, ft)")
	verbose := flag.Bool("v", false, "per-frame diagnostics")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("shotvision replay %s (%s, built %s)\n", version.Version, version.GitSHA, version.BuildTime)
		return
	}

	if *verbose {
		monitoring.EnableDebug(true)
		log.SetFlags(log.Ltime | log.Lmicroseconds)
	}

	if !units.IsValidDistanceUnit(*displayUnits) {
		log.Fatalf("invalid units %q (valid: %s)", *displayUnits, units.ValidDistanceUnitsString())
	}

	cfg := vision.DefaultFrameDifferenceConfig()
	cfg.MaxShots = *shots
	cfg.EnableDiagnostics = *verbose
	if *tuningPath != "" {
		tuning, err := config.LoadTuningConfig(*tuningPath)
		if err != nil {
			log.Fatalf("tuning config: %v", err)
		}
		tuning.ApplyTo(&cfg)
	}

	frames := int(*seconds * *fps)
	src, impacts := buildSession(frames, *fps, *shots, *seed, cfg)

	detector, err := vision.NewDetector(cfg)
	if err != nil {
		log.Fatalf("start session: %v", err)
	}
	detected, err := detector.Run(context.Background(), src)
	if err != nil {
		log.Fatalf("detection: %v", err)
	}
	log.Printf("detected %d/%d injected impacts", len(detected), len(impacts))

	target := vision.DefaultTargetConfiguration()
	log.Printf("target: %s, %.0fcm face at %.1f %s", target.TargetType, target.TargetDiameterCm,
		units.ConvertDistance(target.TargetDistanceMeters, *displayUnits), *displayUnits)
	results := scoreShots(detected, src, target)

	stats := vision.CalculateSessionStatistics(results)
	group := vision.CalculateGroupMetrics(results)
	log.Printf("session: avg=%.2f best=%d worst=%d bullseyes=%d hit=%d%% trend=%s",
		stats.AverageScore, stats.BestScore, stats.WorstScore, stats.BullseyeCount,
		stats.HitPercentage, stats.Improvement.Trend)
	log.Printf("group: spread=%.2f (%.1fcm) mean_radius=%.2f extreme=%.2f cep=%.2f",
		stats.Spread.Radius, units.NormalizedToCm(stats.Spread.Radius, target.TargetDiameterCm),
		group.MeanRadius, group.ExtremeSpread, group.CircularErrorProbable)
	for _, rec := range vision.GenerateRecommendations(stats) {
		log.Printf("coach [%s]: %s", rec.Category, rec.Message)
	}

	if *dbPath != "" {
		persist(*dbPath, detected, results, stats, target)
	}
	if *htmlPath != "" {
		if err := report.WriteSessionHTML(*htmlPath, results, stats, target); err != nil {
			log.Fatalf("html report: %v", err)
		}
		log.Printf("wrote %s", *htmlPath)
	}
	if *pngPath != "" {
		if err := report.PlotGroupPNG(*pngPath, results, stats); err != nil {
			log.Fatalf("png plot: %v", err)
		}
		log.Printf("wrote %s", *pngPath)
	}
}

// buildSession creates a synthetic source with n impacts placed randomly in
// the central half of the frame, spaced far enough apart in time to clear
// the detector cooldown.
func buildSession(frames int, fps float64, n int, seed int64, cfg vision.FrameDifferenceConfig) (*vision.SyntheticSource, []vision.SyntheticImpact) {
	rng := rand.New(rand.NewSource(seed))
	src := vision.NewSyntheticSource(frames)

	warmupLead := int64(cfg.WarmupFrames) + 2
	gap := int64((cfg.MinTimeBetweenShots + 1) * fps)
	impacts := make([]vision.SyntheticImpact, 0, n)
	for i := 0; i < n; i++ {
		frameIdx := warmupLead + int64(i)*gap
		if frameIdx >= int64(frames) {
			break
		}
		impacts = append(impacts, vision.SyntheticImpact{
			FrameIndex: frameIdx,
			X:          src.Width/4 + rng.Intn(src.Width/2),
			Y:          src.Height/4 + rng.Intn(src.Height/2),
			Size:       8,
			Luma:       30,
		})
	}
	src.Impacts = impacts
	return src, impacts
}

// scoreShots maps each detected shot back to its injected impact by
// timestamp order and scores the impact centre. A real deployment gets the
// coordinate from keyframe classification instead.
func scoreShots(detected []vision.DetectedShot, src *vision.SyntheticSource, target vision.TargetConfiguration) []vision.ShotResult {
	results := make([]vision.ShotResult, 0, len(detected))
	for i, shot := range detected {
		if i >= len(src.Impacts) {
			break
		}
		imp := src.Impacts[i]
		coord := vision.Coordinate{
			X: (float64(imp.X) + float64(imp.Size)/2) / float64(src.Width) * 100,
			Y: (float64(imp.Y) + float64(imp.Size)/2) / float64(src.Height) * 100,
		}
		results = append(results, vision.AnalyzeShot(shot.ShotID, coord, target, results))
	}
	return results
}

// persist writes the session and its shots to sqlite.
func persist(path string, detected []vision.DetectedShot, results []vision.ShotResult, stats vision.SessionStatistics, target vision.TargetConfiguration) {
	db, err := sessiondb.Open(path)
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	defer db.Close()

	store := sessiondb.NewSessionStore(db)
	sess := &sessiondb.Session{
		TargetType:     target.TargetType,
		TargetDistance: target.TargetDistanceMeters,
	}
	if err := store.CreateSession(sess); err != nil {
		log.Fatalf("create session: %v", err)
	}
	for i, result := range results {
		row := &sessiondb.ShotRow{
			SessionID:        sess.SessionID,
			Seq:              i,
			Result:           result,
			TimestampSeconds: detected[i].TimestampSeconds,
			KeyFrameDigest:   detected[i].KeyFrameDigest,
		}
		if err := store.InsertShot(row); err != nil {
			log.Fatalf("insert shot: %v", err)
		}
	}
	if err := store.FinishSession(sess.SessionID, stats); err != nil {
		log.Fatalf("finish session: %v", err)
	}
	log.Printf("persisted session %s (%d shots) to %s", sess.SessionID, len(results), path)
}
