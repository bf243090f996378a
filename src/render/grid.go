package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"strconv"

	"github.com/sofia-tsaf/TransparentSOFIA/src/catplot"
)

// missingCell fills stock/year slots with no classified observation.
var missingCell = color.RGBA{R: 0xEE, G: 0xEE, B: 0xEE, A: 0xFF}

// StockChart renders the stock-by-year category grid. Rows are stocks in
// sorted order top to bottom, columns the contiguous year span; each cell
// takes its category fill, light gray where the stock has no classified
// observation that year.
func StockChart(s *catplot.Spec, opt Options) (image.Image, error) {
	opt = opt.withDefaults(s)
	years := s.Years()
	names := s.StockNames()
	if len(years) == 0 || len(names) == 0 {
		return nil, fmt.Errorf("%w: no observations", ErrEmptySpec)
	}
	minYear := years[0]
	span := years[len(years)-1] - minYear + 1
	grid := s.Grid()

	img := image.NewRGBA(image.Rect(0, 0, opt.Width, opt.Height))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)

	const (
		titleBand = 24
		tickBand  = 20
		rightPad  = 12
	)
	legendH := 0
	if !opt.HideLegend {
		legendH = legendHeight
	}
	gutter := labelGutter(img, names, opt.Width/4)
	plot := image.Rect(gutter, titleBand, opt.Width-rightPad, opt.Height-tickBand-legendH)
	if plot.Dx() < span || plot.Dy() < len(names) {
		return nil, fmt.Errorf("%dx%d too small for %d years x %d stocks", opt.Width, opt.Height, span, len(names))
	}
	cellW := float64(plot.Dx()) / float64(span)
	cellH := float64(plot.Dy()) / float64(len(names))

	// 1px gaps read as grid lines once cells are big enough to spare them.
	gap := 0
	if cellW >= 4 && cellH >= 5 {
		gap = 1
	}
	for ri, name := range names {
		row := grid[name]
		y0 := plot.Min.Y + int(float64(ri)*cellH)
		y1 := plot.Min.Y + int(float64(ri+1)*cellH)
		for ci := 0; ci < span; ci++ {
			x0 := plot.Min.X + int(float64(ci)*cellW)
			x1 := plot.Min.X + int(float64(ci+1)*cellW)
			fill := missingCell
			if cat := row[minYear+ci]; cat >= 1 && cat <= len(s.Colors) {
				fill = s.Colors[cat-1]
			}
			draw.Draw(img, image.Rect(x0, y0, x1-gap, y1-gap), image.NewUniform(fill), image.Point{}, draw.Src)
		}
	}
	drawRectOutline(img, plot, outlineColor)

	drawString(img, opt.Title, plot.Min.X, 16)
	drawStockLabels(img, names, plot, cellH, gutter)
	drawYearTicks(img, plot, minYear, span, cellW)

	if !opt.HideLegend {
		drawLegend(img, image.Rect(0, opt.Height-legendH, opt.Width, opt.Height), s.Labels, s.Colors)
	}
	return img, nil
}

// labelGutter sizes the left gutter to the longest stock name, capped.
func labelGutter(img *image.RGBA, names []string, maxW int) int {
	w := 0
	for _, n := range names {
		if lw := stringWidth(img, n); lw > w {
			w = lw
		}
	}
	w += 10
	if w > maxW {
		w = maxW
	}
	if w < 40 {
		w = 40
	}
	return w
}

// drawStockLabels writes row labels, thinning them when rows get shorter
// than the face and truncating names that overflow the gutter.
func drawStockLabels(img *image.RGBA, names []string, plot image.Rectangle, cellH float64, gutter int) {
	step := 1
	if cellH < 11 {
		step = int(11/cellH) + 1
	}
	maxChars := (gutter - 8) / 7
	if maxChars < 1 {
		return
	}
	for ri := 0; ri < len(names); ri += step {
		label := names[ri]
		if len(label) > maxChars {
			if maxChars > 2 {
				label = label[:maxChars-2] + ".."
			} else {
				label = label[:maxChars]
			}
		}
		cy := plot.Min.Y + int((float64(ri)+0.5)*cellH)
		drawString(img, label, 4, cy+4)
	}
}

// drawYearTicks marks thinned year positions under the plot.
func drawYearTicks(img *image.RGBA, plot image.Rectangle, minYear, span int, cellW float64) {
	step := yearTickStep(span, maxYearLabels)
	for off := 0; off < span; off += step {
		cx := plot.Min.X + int((float64(off)+0.5)*cellW)
		draw.Draw(img, image.Rect(cx, plot.Max.Y, cx+1, plot.Max.Y+4), image.NewUniform(outlineColor), image.Point{}, draw.Src)
		label := strconv.Itoa(minYear + off)
		lw := stringWidth(img, label)
		drawString(img, label, cx-lw/2, plot.Max.Y+16)
	}
}
