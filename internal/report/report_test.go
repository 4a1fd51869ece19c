package report

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/gmshoot/shotvision/internal/testutil"
	"github.com/gmshoot/shotvision/internal/vision"
)

func sessionFixture() ([]vision.ShotResult, vision.SessionStatistics, vision.TargetConfiguration) {
	target := vision.DefaultTargetConfiguration()
	coords := []vision.Coordinate{
		{X: 50, Y: 50},
		{X: 56, Y: 48},
		{X: 44, Y: 55},
		{X: 70, Y: 50},
		{X: 120, Y: 50}, // miss
	}
	var results []vision.ShotResult
	for _, c := range coords {
		results = append(results, vision.AnalyzeShot("shot", c, target, results))
	}
	return results, vision.CalculateSessionStatistics(results), target
}

func TestWriteSessionHTML(t *testing.T) {
	results, stats, target := sessionFixture()
	path := filepath.Join(t.TempDir(), "session.html")

	testutil.AssertNoError(t, WriteSessionHTML(path, results, stats, target))

	data, err := os.ReadFile(path)
	testutil.AssertNoError(t, err)
	if len(data) == 0 {
		t.Fatal("report file is empty")
	}
	for _, want := range []string{"Session Report", "Shot Group", "Score by Shot"} {
		if !bytes.Contains(data, []byte(want)) {
			t.Errorf("report missing %q", want)
		}
	}
}

func TestWriteSessionHTML_EmptySession(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.html")
	err := WriteSessionHTML(path, nil, vision.SessionStatistics{}, vision.DefaultTargetConfiguration())
	testutil.AssertNoError(t, err)
}

func TestWriteSessionHTML_BadPath(t *testing.T) {
	results, stats, target := sessionFixture()
	err := WriteSessionHTML(filepath.Join(t.TempDir(), "missing", "session.html"), results, stats, target)
	testutil.AssertError(t, err)
}

func TestPlotGroupPNG(t *testing.T) {
	results, stats, _ := sessionFixture()
	path := filepath.Join(t.TempDir(), "group.png")

	testutil.AssertNoError(t, PlotGroupPNG(path, results, stats))

	data, err := os.ReadFile(path)
	testutil.AssertNoError(t, err)
	if !bytes.HasPrefix(data, []byte("\x89PNG")) {
		t.Error("output is not a PNG file")
	}
}

func TestPlotGroupPNG_EmptySession(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.png")
	testutil.AssertNoError(t, PlotGroupPNG(path, nil, vision.SessionStatistics{}))
}
