package catplot

import (
	"fmt"
	"math"

	"github.com/sofia-tsaf/TransparentSOFIA/src/stocks"
)

// Classifier assigns a status category code to every row of a frame.
// Codes are 1-based in Palette order; 0 marks a row whose ratios were
// missing, which keeps it out of every tally.
type Classifier interface {
	Classify(f *stocks.Frame, method string, categories int) ([]int, error)
}

// Default reference points.
const (
	DefaultUpper = 1.2 // 3-class: healthy above this B/Bmsy
	DefaultLower = 0.8 // 3-class: overfished below this B/Bmsy
	DefaultRef   = 1.0 // 4-class: B/Bmsy and F/Fmsy reference point
)

// ThresholdClassifier classifies on fixed B/Bmsy and F/Fmsy thresholds.
// The zero value uses the default reference points.
type ThresholdClassifier struct {
	Upper float64
	Lower float64
	Ref   float64
}

func (tc ThresholdClassifier) bounds() (upper, lower, ref float64) {
	upper, lower, ref = tc.Upper, tc.Lower, tc.Ref
	if upper == 0 {
		upper = DefaultUpper
	}
	if lower == 0 {
		lower = DefaultLower
	}
	if ref == 0 {
		ref = DefaultRef
	}
	return upper, lower, ref
}

// Classify reads bbmsy.<method> (and, for four categories, ffmsy.<method>).
//
// Three categories split on B/Bmsy alone: above upper is 1, below lower is
// 3, the band between (boundaries included) is 2. Any other category count
// uses the four quadrants of (B/Bmsy, F/Fmsy) around the reference point:
// 1 b>1,f<1; 2 b>1,f>1; 3 b<1,f<1; 4 b<1,f>1, with the boundary itself
// counting as the unhealthy side.
func (tc ThresholdClassifier) Classify(f *stocks.Frame, method string, categories int) ([]int, error) {
	upper, lower, ref := tc.bounds()
	b, err := f.Series(stocks.BBmsyPrefix + method)
	if err != nil {
		return nil, fmt.Errorf("classify: %w", err)
	}
	cats := make([]int, f.Len())
	if NormalizeCategories(categories) == 3 {
		for i, bv := range b {
			switch {
			case math.IsNaN(bv):
				cats[i] = 0
			case bv > upper:
				cats[i] = 1
			case bv < lower:
				cats[i] = 3
			default:
				cats[i] = 2
			}
		}
		return cats, nil
	}
	ff, err := f.Series(stocks.FFmsyPrefix + method)
	if err != nil {
		return nil, fmt.Errorf("classify: %w", err)
	}
	for i, bv := range b {
		fv := ff[i]
		switch {
		case math.IsNaN(bv) || math.IsNaN(fv):
			cats[i] = 0
		case bv > ref && fv < ref:
			cats[i] = 1
		case bv > ref:
			cats[i] = 2
		case fv < ref:
			cats[i] = 3
		default:
			cats[i] = 4
		}
	}
	return cats, nil
}
