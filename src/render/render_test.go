package render

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/sofia-tsaf/TransparentSOFIA/src/catplot"
	"github.com/sofia-tsaf/TransparentSOFIA/src/stocks"
)

// specFor builds a spec over two stocks and three years, one NaN row.
func specFor(t *testing.T, typ string, cats int) *catplot.Spec {
	t.Helper()
	fr := stocks.NewFrame("stock", "year", []string{
		stocks.BBmsyPrefix + catplot.DefaultMethod,
		stocks.FFmsyPrefix + catplot.DefaultMethod,
	})
	rows := []struct {
		stock string
		year  int
		b, f  float64
	}{
		{"cod", 2000, 1.5, 0.5},
		{"cod", 2001, 1.5, 1.5},
		{"cod", 2002, 0.7, 1.2},
		{"hake", 2000, 0.7, 0.5},
		{"hake", 2001, 0.7, 1.2},
		{"hake", 2002, math.NaN(), 1.0},
	}
	for _, r := range rows {
		if err := fr.Append(r.stock, r.year, []float64{r.b, r.f}); err != nil {
			t.Fatalf("append: %v", err)
		}
	}
	s, err := catplot.PlotCat(fr, catplot.Options{Type: typ, Categories: cats})
	if err != nil {
		t.Fatalf("plot: %v", err)
	}
	return s
}

func containsColor(img image.Image, want color.RGBA) bool {
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if color.RGBAModel.Convert(img.At(x, y)).(color.RGBA) == want {
				return true
			}
		}
	}
	return false
}

func TestCountChart_SizeAndCategoryColors(t *testing.T) {
	s := specFor(t, "count", 4)
	img, err := CountChart(s, Options{Width: 640, Height: 400})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if img.Bounds().Dx() != 640 || img.Bounds().Dy() != 400 {
		t.Fatalf("size: got %dx%d, want 640x400", img.Bounds().Dx(), img.Bounds().Dy())
	}
	// Every category occurs in the sample, so every fill color must land
	// somewhere on the canvas.
	for i, c := range s.Colors {
		if !containsColor(img, c) {
			t.Fatalf("category %d color %v not found in rendered chart", i+1, c)
		}
	}
}

func TestCountChart_HideLegendKeepsSize(t *testing.T) {
	s := specFor(t, "count", 3)
	img, err := CountChart(s, Options{Width: 500, Height: 300, HideLegend: true})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if img.Bounds().Dx() != 500 || img.Bounds().Dy() != 300 {
		t.Fatalf("size: got %dx%d", img.Bounds().Dx(), img.Bounds().Dy())
	}
}

func TestStockChart_SizeAndCellColors(t *testing.T) {
	s := specFor(t, "stock", 4)
	img, err := StockChart(s, Options{Width: 640, Height: 360})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if img.Bounds().Dx() != 640 || img.Bounds().Dy() != 360 {
		t.Fatalf("size: got %dx%d", img.Bounds().Dx(), img.Bounds().Dy())
	}
	for i, c := range s.Colors {
		if !containsColor(img, c) {
			t.Fatalf("category %d color %v not found in grid", i+1, c)
		}
	}
	// hake/2002 is unclassified, so the missing fill must appear too.
	if !containsColor(img, missingCell) {
		t.Fatalf("missing-cell fill not found in grid")
	}
}

func TestChart_DispatchesOnKind(t *testing.T) {
	count := specFor(t, "prop", 4)
	if count.Kind != catplot.KindCount {
		t.Fatalf("prop should resolve to count kind")
	}
	if _, err := Chart(count, Options{Width: 400, Height: 300}); err != nil {
		t.Fatalf("count dispatch: %v", err)
	}
	grid := specFor(t, "all", 4)
	if grid.Kind != catplot.KindStock {
		t.Fatalf("all should resolve to stock kind")
	}
	if _, err := Chart(grid, Options{Width: 400, Height: 300}); err != nil {
		t.Fatalf("stock dispatch: %v", err)
	}
	bad := &catplot.Spec{}
	if _, err := Chart(bad, Options{}); !errors.Is(err, catplot.ErrUnsupportedChartType) {
		t.Fatalf("expected ErrUnsupportedChartType for zero kind, got %v", err)
	}
}

func TestChart_EmptySpec(t *testing.T) {
	s := &catplot.Spec{Kind: catplot.KindCount, Classes: 4}
	if _, err := CountChart(s, Options{}); !errors.Is(err, ErrEmptySpec) {
		t.Fatalf("expected ErrEmptySpec, got %v", err)
	}
	s.Kind = catplot.KindStock
	if _, err := StockChart(s, Options{}); !errors.Is(err, ErrEmptySpec) {
		t.Fatalf("expected ErrEmptySpec, got %v", err)
	}
}

func TestChart_AllRowsUnclassified(t *testing.T) {
	s := &catplot.Spec{
		Kind:    catplot.KindCount,
		Classes: 4,
		Points:  []catplot.Point{{Stock: "cod", Year: 2000, Cat: 0}},
	}
	if _, err := CountChart(s, Options{}); !errors.Is(err, ErrEmptySpec) {
		t.Fatalf("expected ErrEmptySpec for all-NaN data, got %v", err)
	}
}

func TestPNG_EncodesSignature(t *testing.T) {
	s := specFor(t, "count", 4)
	b, err := PNG(s, Options{Width: 320, Height: 240})
	if err != nil {
		t.Fatalf("png: %v", err)
	}
	if !bytes.HasPrefix(b, []byte("\x89PNG\r\n\x1a\n")) {
		t.Fatalf("missing png signature: % x", b[:8])
	}
}

func TestYearTickStep(t *testing.T) {
	cases := []struct {
		n, max, want int
	}{
		{5, 16, 1},
		{16, 16, 1},
		{17, 16, 2},
		{40, 16, 5},
		{100, 16, 10},
		{300, 16, 20},
		{5, 0, 1},
	}
	for _, c := range cases {
		if got := yearTickStep(c.n, c.max); got != c.want {
			t.Fatalf("yearTickStep(%d,%d): got %d, want %d", c.n, c.max, got, c.want)
		}
	}
}

func TestDefaultTitleNamesMethod(t *testing.T) {
	s := specFor(t, "count", 4)
	if got := DefaultTitle(s); got != "Category counts by year (cmsy.naive)" {
		t.Fatalf("count title: %q", got)
	}
	s = specFor(t, "stock", 4)
	if got := DefaultTitle(s); got != "Stock status by year (cmsy.naive)" {
		t.Fatalf("stock title: %q", got)
	}
}
