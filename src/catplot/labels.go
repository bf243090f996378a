// Package catplot classifies stock assessment observations into status
// categories and assembles renderer-independent chart specs.
package catplot

import "image/color"

// Category palette. Index i holds the label and fill of category code i+1;
// the two slices always line up.
var (
	threeClassLabels = []string{"b>1.2", "0.8<b<1.2", "b<0.8"}
	fourClassLabels  = []string{"b>1,f<1", "b>1,f>1", "b<1,f<1", "b<1,f>1"}

	// R color names: darkgreen, yellow, red, orange.
	darkGreen = color.RGBA{R: 0x00, G: 0x64, B: 0x00, A: 0xFF}
	yellow    = color.RGBA{R: 0xFF, G: 0xFF, B: 0x00, A: 0xFF}
	red       = color.RGBA{R: 0xFF, G: 0x00, B: 0x00, A: 0xFF}
	orange    = color.RGBA{R: 0xFF, G: 0xA5, B: 0x00, A: 0xFF}

	threeClassColors = []color.RGBA{darkGreen, yellow, red}
	fourClassColors  = []color.RGBA{darkGreen, orange, yellow, red}
)

// NormalizeCategories maps a requested category count onto the two
// supported schemes: 3 selects the biomass-only split, everything else
// the four status categories (legacy fallthrough).
func NormalizeCategories(categories int) int {
	if categories == 3 {
		return 3
	}
	return 4
}

// Palette returns copies of the ordered label and color sets for the given
// category count.
func Palette(categories int) ([]string, []color.RGBA) {
	labels, colors := fourClassLabels, fourClassColors
	if NormalizeCategories(categories) == 3 {
		labels, colors = threeClassLabels, threeClassColors
	}
	outLabels := make([]string, len(labels))
	copy(outLabels, labels)
	outColors := make([]color.RGBA, len(colors))
	copy(outColors, colors)
	return outLabels, outColors
}
