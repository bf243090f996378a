package main

import (
	"encoding/json"
	"image"
	_ "image/png" // register PNG decoder
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sofia-tsaf/TransparentSOFIA/src/stocks"
)

// writeObservationLine writes a minimal JSONL envelope suitable for rendering.
func writeObservationLine(t *testing.T, f *os.File, stock string, year int, bb, ff float64) {
	t.Helper()
	env := &stocks.ObservationEnvelope{
		Meta: &stocks.Meta{
			SchemaVersion: stocks.SchemaVersion,
			Source:        "test",
			TimestampUTC:  time.Now().UTC().Format(time.RFC3339Nano),
		},
		Observation: &stocks.Observation{
			Stock: stock,
			Year:  year,
			Ratios: map[string]float64{
				"bbmsy.cmsy.naive": bb,
				"ffmsy.cmsy.naive": ff,
			},
		},
	}
	b, err := json.Marshal(env)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if _, err := f.Write(append(b, '\n')); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func writeSampleTable(t *testing.T) string {
	t.Helper()
	tmp, err := os.CreateTemp(t.TempDir(), "observations-*.jsonl")
	if err != nil {
		t.Fatalf("create temp table: %v", err)
	}
	for year := 2000; year <= 2004; year++ {
		writeObservationLine(t, tmp, "cod", year, 1.4-0.2*float64(year-2000), 0.7+0.1*float64(year-2000))
		writeObservationLine(t, tmp, "hake", year, 0.9, 1.2)
	}
	if err := tmp.Close(); err != nil {
		t.Fatalf("close table: %v", err)
	}
	return tmp.Name()
}

// TestScreenshotWidths_BaseSet ensures both generated screenshots share the
// exact headless width from chartSize(nil).
func TestScreenshotWidths_BaseSet(t *testing.T) {
	// Force a fixed full-width value while headless so assertions are exact.
	screenshotWidthOverride = 1400
	table := writeSampleTable(t)
	outDir := t.TempDir()

	if err := RunScreenshotsMode(table, outDir, "", 4, 0); err != nil {
		t.Fatalf("RunScreenshotsMode: %v", err)
	}

	expectedW, _ := chartSize(nil)

	checked := 0
	err := filepath.Walk(outDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() || filepath.Ext(path) != ".png" {
			return nil
		}
		f, err := os.Open(path)
		if err != nil {
			t.Fatalf("open %s: %v", path, err)
		}
		defer f.Close()
		img, _, err := image.Decode(f)
		if err != nil {
			t.Fatalf("decode %s: %v", path, err)
		}
		if w := img.Bounds().Dx(); w != expectedW {
			t.Fatalf("image width mismatch for %s: got %d, want %d", filepath.Base(path), w, expectedW)
		}
		checked++
		return nil
	})
	if err != nil {
		t.Fatalf("walk outDir: %v", err)
	}
	// Two primary charts plus the 3-class variants.
	if checked != 4 {
		t.Fatalf("expected 4 PNG screenshots in %s, found %d", outDir, checked)
	}
}

// TestScreenshotWidths_AllowsShrink guards against regressions that
// reintroduce large minimum widths.
func TestScreenshotWidths_AllowsShrink(t *testing.T) {
	screenshotWidthOverride = 480
	table := writeSampleTable(t)
	outDir := t.TempDir()

	if err := RunScreenshotsMode(table, outDir, "cmsy.naive", 3, 0); err != nil {
		t.Fatalf("RunScreenshotsMode: %v", err)
	}

	expectedW, _ := chartSize(nil)

	checked := 0
	err := filepath.Walk(outDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() || filepath.Ext(path) != ".png" {
			return nil
		}
		f, err := os.Open(path)
		if err != nil {
			t.Fatalf("open %s: %v", path, err)
		}
		defer f.Close()
		img, _, err := image.Decode(f)
		if err != nil {
			t.Fatalf("decode %s: %v", path, err)
		}
		if w := img.Bounds().Dx(); w != expectedW {
			t.Fatalf("image width mismatch for %s: got %d, want %d", filepath.Base(path), w, expectedW)
		}
		checked++
		return nil
	})
	if err != nil {
		t.Fatalf("walk outDir: %v", err)
	}
	if checked == 0 {
		t.Fatalf("no PNG screenshots found in %s", outDir)
	}
}

// TestScreenshots_WritesBothCharts checks the fixed output names exist,
// including the other-scheme variants.
func TestScreenshots_WritesBothCharts(t *testing.T) {
	screenshotWidthOverride = 800
	table := writeSampleTable(t)
	outDir := t.TempDir()

	if err := RunScreenshotsMode(table, outDir, "", 4, 0); err != nil {
		t.Fatalf("RunScreenshotsMode: %v", err)
	}
	for _, name := range []string{
		"count_chart.png", "stock_chart.png",
		"count_chart_3cat.png", "stock_chart_3cat.png",
	} {
		path := filepath.Join(outDir, name)
		if _, err := os.Stat(path); err != nil {
			t.Fatalf("missing screenshot %s: %v", name, err)
		}
	}
}

// TestScreenshots_ExplicitWidthParam proves a positive width beats the
// headless default.
func TestScreenshots_ExplicitWidthParam(t *testing.T) {
	screenshotWidthOverride = 1400
	table := writeSampleTable(t)
	outDir := t.TempDir()

	if err := RunScreenshotsMode(table, outDir, "", 4, 600); err != nil {
		t.Fatalf("RunScreenshotsMode: %v", err)
	}
	f, err := os.Open(filepath.Join(outDir, "count_chart.png"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if w := img.Bounds().Dx(); w != 600 {
		t.Fatalf("explicit width ignored: got %d, want 600", w)
	}
}

// TestScreenshots_MethodFallback picks the first discovered method when the
// requested one is blank and the default is absent.
func TestScreenshots_MethodFallback(t *testing.T) {
	screenshotWidthOverride = 800
	tmp, err := os.CreateTemp(t.TempDir(), "observations-*.jsonl")
	if err != nil {
		t.Fatalf("create temp table: %v", err)
	}
	env := &stocks.ObservationEnvelope{
		Meta: &stocks.Meta{SchemaVersion: stocks.SchemaVersion},
		Observation: &stocks.Observation{
			Stock: "sole",
			Year:  2010,
			Ratios: map[string]float64{
				"bbmsy.sraplus": 1.3,
				"ffmsy.sraplus": 0.6,
			},
		},
	}
	b, err := json.Marshal(env)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if _, err := tmp.Write(append(b, '\n')); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := tmp.Close(); err != nil {
		t.Fatalf("close table: %v", err)
	}

	outDir := t.TempDir()
	if err := RunScreenshotsMode(tmp.Name(), outDir, "", 4, 0); err != nil {
		t.Fatalf("RunScreenshotsMode: %v", err)
	}
	if _, err := os.Stat(filepath.Join(outDir, "count_chart.png")); err != nil {
		t.Fatalf("missing count chart: %v", err)
	}
}
