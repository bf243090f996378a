package catplot

import (
	"errors"
	"math"
	"reflect"
	"testing"

	"github.com/sofia-tsaf/TransparentSOFIA/src/stocks"
)

// buildFrame assembles a frame with bbmsy.m / ffmsy.m series from pairs.
func buildFrame(t *testing.T, method string, rows []struct {
	stock string
	year  int
	b, f  float64
}) *stocks.Frame {
	t.Helper()
	fr := stocks.NewFrame("stock", "year", []string{stocks.BBmsyPrefix + method, stocks.FFmsyPrefix + method})
	for _, r := range rows {
		if err := fr.Append(r.stock, r.year, []float64{r.b, r.f}); err != nil {
			t.Fatalf("append: %v", err)
		}
	}
	return fr
}

func TestThresholdClassifier_FourClassQuadrants(t *testing.T) {
	nan := math.NaN()
	fr := buildFrame(t, "m", []struct {
		stock string
		year  int
		b, f  float64
	}{
		{"a", 2000, 1.5, 0.5}, // worked example: healthy
		{"b", 2000, 0.7, 1.2}, // worked example: overfished and overfishing
		{"c", 2000, 1.5, 1.5},
		{"d", 2000, 0.7, 0.5},
		{"e", 2000, 1.0, 0.5}, // b on the reference point counts as low
		{"f", 2000, 1.5, 1.0}, // f on the reference point counts as overfishing
		{"g", 2000, nan, 0.5},
		{"h", 2000, 1.5, nan},
	})
	got, err := ThresholdClassifier{}.Classify(fr, "m", 4)
	if err != nil {
		t.Fatalf("classify: %v", err)
	}
	want := []int{1, 4, 2, 3, 3, 2, 0, 0}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("codes: got %v, want %v", got, want)
	}
}

func TestThresholdClassifier_ThreeClassBands(t *testing.T) {
	fr := stocks.NewFrame("stock", "year", []string{stocks.BBmsyPrefix + "m"})
	for _, b := range []float64{1.5, 1.2, 1.0, 0.8, 0.5, math.NaN()} {
		if err := fr.Append("s", 2000, []float64{b}); err != nil {
			t.Fatalf("append: %v", err)
		}
	}
	got, err := ThresholdClassifier{}.Classify(fr, "m", 3)
	if err != nil {
		t.Fatalf("classify: %v", err)
	}
	// Boundaries 1.2 and 0.8 both fall in the middle band.
	want := []int{1, 2, 2, 2, 3, 0}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("codes: got %v, want %v", got, want)
	}
}

func TestThresholdClassifier_CustomBounds(t *testing.T) {
	fr := stocks.NewFrame("stock", "year", []string{stocks.BBmsyPrefix + "m"})
	if err := fr.Append("s", 2000, []float64{1.3}); err != nil {
		t.Fatalf("append: %v", err)
	}
	got, err := ThresholdClassifier{Upper: 1.5, Lower: 1.4}.Classify(fr, "m", 3)
	if err != nil {
		t.Fatalf("classify: %v", err)
	}
	if got[0] != 3 {
		t.Fatalf("custom lower bound: got %d, want 3", got[0])
	}
}

func TestThresholdClassifier_MissingColumns(t *testing.T) {
	// bbmsy present for another method only.
	fr := stocks.NewFrame("stock", "year", []string{stocks.BBmsyPrefix + "other", stocks.FFmsyPrefix + "other"})
	if _, err := (ThresholdClassifier{}).Classify(fr, "m", 4); !errors.Is(err, stocks.ErrMissingColumn) {
		t.Fatalf("expected ErrMissingColumn, got %v", err)
	}

	// bbmsy present, ffmsy absent: fine for 3 classes, an error for 4.
	fr = stocks.NewFrame("stock", "year", []string{stocks.BBmsyPrefix + "m"})
	if err := fr.Append("s", 2000, []float64{1.0}); err != nil {
		t.Fatalf("append: %v", err)
	}
	if _, err := (ThresholdClassifier{}).Classify(fr, "m", 3); err != nil {
		t.Fatalf("3-class should not need ffmsy: %v", err)
	}
	if _, err := (ThresholdClassifier{}).Classify(fr, "m", 4); !errors.Is(err, stocks.ErrMissingColumn) {
		t.Fatalf("expected ErrMissingColumn for ffmsy, got %v", err)
	}
}

func TestThresholdClassifier_NonThreeFallsToFour(t *testing.T) {
	fr := buildFrame(t, "m", []struct {
		stock string
		year  int
		b, f  float64
	}{{"a", 2000, 1.5, 0.5}})
	for _, cats := range []int{0, 1, 2, 4, 5, 99} {
		got, err := ThresholdClassifier{}.Classify(fr, "m", cats)
		if err != nil {
			t.Fatalf("cats=%d: %v", cats, err)
		}
		if got[0] != 1 {
			t.Fatalf("cats=%d: got %d, want quadrant code 1", cats, got[0])
		}
	}
}
