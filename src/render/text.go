package render

import (
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

var (
	textColor    = color.RGBA{R: 0x20, G: 0x20, B: 0x20, A: 0xFF}
	outlineColor = color.RGBA{R: 0x55, G: 0x55, B: 0x55, A: 0xFF}
)

func textDrawer(dst draw.Image) *font.Drawer {
	return &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(textColor),
		Face: basicfont.Face7x13,
	}
}

// drawString draws s with its baseline at (x, y).
func drawString(dst draw.Image, s string, x, y int) {
	d := textDrawer(dst)
	d.Dot = fixed.Point26_6{X: fixed.I(x), Y: fixed.I(y)}
	d.DrawString(s)
}

// stringWidth measures s in the raster face.
func stringWidth(dst draw.Image, s string) int {
	return textDrawer(dst).MeasureString(s).Ceil()
}

// drawRectOutline strokes a 1px rectangle.
func drawRectOutline(dst draw.Image, r image.Rectangle, c color.Color) {
	u := image.NewUniform(c)
	draw.Draw(dst, image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+1), u, image.Point{}, draw.Src)
	draw.Draw(dst, image.Rect(r.Min.X, r.Max.Y-1, r.Max.X, r.Max.Y), u, image.Point{}, draw.Src)
	draw.Draw(dst, image.Rect(r.Min.X, r.Min.Y, r.Min.X+1, r.Max.Y), u, image.Point{}, draw.Src)
	draw.Draw(dst, image.Rect(r.Max.X-1, r.Min.Y, r.Max.X, r.Max.Y), u, image.Point{}, draw.Src)
}

// drawLegend draws swatch+label pairs centered inside r. The strip is the
// only place category colors are named, so both chart kinds share it.
func drawLegend(dst *image.RGBA, r image.Rectangle, labels []string, colors []color.RGBA) {
	const (
		swatch        = 12
		gapSwatchText = 6
		gapItems      = 18
	)
	widths := make([]int, len(labels))
	total := 0
	for i, lb := range labels {
		widths[i] = stringWidth(dst, lb)
		total += swatch + gapSwatchText + widths[i]
		if i > 0 {
			total += gapItems
		}
	}
	x := r.Min.X + (r.Dx()-total)/2
	if x < r.Min.X+4 {
		x = r.Min.X + 4
	}
	cy := r.Min.Y + r.Dy()/2
	for i, lb := range labels {
		sw := image.Rect(x, cy-swatch/2, x+swatch, cy+swatch/2)
		draw.Draw(dst, sw, image.NewUniform(colors[i]), image.Point{}, draw.Src)
		// Outline keeps the yellow swatch visible on white.
		drawRectOutline(dst, sw, outlineColor)
		x += swatch + gapSwatchText
		drawString(dst, lb, x, cy+4)
		x += widths[i] + gapItems
	}
}

// appendLegend returns img with a legend strip composed beneath it.
func appendLegend(img image.Image, width int, labels []string, colors []color.RGBA) image.Image {
	b := img.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, width, b.Dy()+legendHeight))
	draw.Draw(out, out.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	draw.Draw(out, image.Rect(0, 0, width, b.Dy()), img, b.Min, draw.Src)
	drawLegend(out, image.Rect(0, b.Dy(), width, b.Dy()+legendHeight), labels, colors)
	return out
}
