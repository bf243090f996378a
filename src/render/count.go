package render

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"strconv"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/sofia-tsaf/TransparentSOFIA/src/catplot"
)

var chartBackground = drawing.ColorWhite

// CountChart renders the stacked bars of category counts per year.
//
// go-chart normalizes every stacked bar to the full canvas height, so each
// bar leads with a background-colored filler segment sized to the gap
// between its year total and the busiest year's total. Segment heights
// then encode absolute counts, comparable across bars, and the Y axis is
// dropped because the normalized percentages would mislead.
func CountChart(s *catplot.Spec, opt Options) (image.Image, error) {
	opt = opt.withDefaults(s)
	counts := s.CountsByYear()
	if len(counts) == 0 {
		return nil, fmt.Errorf("%w: no observations", ErrEmptySpec)
	}
	maxTotal := 0
	for _, yc := range counts {
		if t := yc.Total(); t > maxTotal {
			maxTotal = t
		}
	}
	if maxTotal == 0 {
		return nil, fmt.Errorf("%w: no classified observations", ErrEmptySpec)
	}

	labelStep := yearTickStep(len(counts), maxYearLabels)
	spacing, barWidth := barLayout(opt.Width, len(counts))
	bars := make([]chart.StackedBar, 0, len(counts))
	for i, yc := range counts {
		name := ""
		if i%labelStep == 0 {
			name = strconv.Itoa(yc.Year)
		}
		values := make([]chart.Value, 0, s.Classes+1)
		if pad := maxTotal - yc.Total(); pad > 0 {
			values = append(values, chart.Value{
				Value: float64(pad),
				Style: chart.Style{FillColor: chartBackground, StrokeColor: chartBackground, StrokeWidth: 1},
			})
		}
		for ci := 0; ci < s.Classes; ci++ {
			n := yc.Counts[ci]
			if n == 0 {
				continue
			}
			col := drawingColor(s.Colors[ci])
			values = append(values, chart.Value{
				Value: float64(n),
				Style: chart.Style{FillColor: col, StrokeColor: col, StrokeWidth: 1},
			})
		}
		bars = append(bars, chart.StackedBar{Name: name, Width: barWidth, Values: values})
	}

	legendH := 0
	if !opt.HideLegend {
		legendH = legendHeight
	}
	sbc := chart.StackedBarChart{
		Title:      opt.Title,
		Width:      opt.Width,
		Height:     opt.Height - legendH,
		Background: chart.Style{Padding: chart.Box{Top: 28, Left: 16, Right: 16, Bottom: 8}, FillColor: chartBackground},
		Canvas:     chart.Style{FillColor: chartBackground},
		YAxis:      chart.Hidden(),
		BarSpacing: spacing,
		Bars:       bars,
	}
	var buf bytes.Buffer
	if err := sbc.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("render count chart: %w", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		return nil, fmt.Errorf("decode count chart png: %w", err)
	}
	if opt.HideLegend {
		return img, nil
	}
	return appendLegend(img, opt.Width, s.Labels, s.Colors), nil
}

func drawingColor(c color.RGBA) drawing.Color {
	return drawing.Color{R: c.R, G: c.G, B: c.B, A: c.A}
}

// barLayout budgets bar width and spacing so all bars fit the canvas.
func barLayout(width, n int) (spacing, barWidth int) {
	plot := width - 60
	if plot < n {
		plot = n
	}
	spacing = plot / (4 * n)
	if spacing < 2 {
		spacing = 2
	}
	if spacing > 12 {
		spacing = 12
	}
	barWidth = plot/n - spacing
	if barWidth < 4 {
		barWidth = 4
	}
	if barWidth > 120 {
		barWidth = 120
	}
	return spacing, barWidth
}
