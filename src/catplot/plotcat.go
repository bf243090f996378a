package catplot

import (
	"errors"
	"fmt"
	"image/color"

	"github.com/sofia-tsaf/TransparentSOFIA/src/stocks"
)

// DefaultMethod is the estimation method used when Options.Method is empty.
const DefaultMethod = "cmsy.naive"

// ErrUnsupportedChartType reports a chart type outside count/prop/stock/all.
var ErrUnsupportedChartType = errors.New("unsupported chart type")

// Kind selects the chart family a Spec describes.
type Kind int

const (
	// KindCount is the stacked bar chart of category counts per year.
	KindCount Kind = iota + 1
	// KindStock is the stock-by-year category grid.
	KindStock
)

func (k Kind) String() string {
	switch k {
	case KindCount:
		return "count"
	case KindStock:
		return "stock"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Options control PlotCat. The zero value plots a four-category count
// chart for DefaultMethod with the threshold classifier.
type Options struct {
	Method     string
	Categories int
	Type       string
	Classifier Classifier
}

// Point is one classified observation. Cat is 0 when the row could not be
// classified; such points stay in the Spec so the year and stock axes
// still cover them, but they are excluded from counts.
type Point struct {
	Stock string
	Year  int
	Cat   int
}

// Spec is a renderer-independent description of one category chart.
type Spec struct {
	Kind    Kind
	Method  string
	Classes int
	Labels  []string
	Colors  []color.RGBA
	Points  []Point
}

// PlotCat classifies every row of f and assembles the chart spec for the
// requested type:
//
//	"count" (alias "prop"): category counts per year, stacked bars
//	"stock" (alias "all"):  stock-by-year category grid
//
// The first two frame columns are taken as stock and year per the frame's
// positional contract. Unknown types report ErrUnsupportedChartType.
func PlotCat(f *stocks.Frame, opt Options) (*Spec, error) {
	kind, err := resolveKind(opt.Type)
	if err != nil {
		return nil, err
	}
	method := opt.Method
	if method == "" {
		method = DefaultMethod
	}
	cls := opt.Classifier
	if cls == nil {
		cls = ThresholdClassifier{}
	}
	classes := NormalizeCategories(opt.Categories)
	cats, err := cls.Classify(f, method, classes)
	if err != nil {
		return nil, err
	}
	if len(cats) != f.Len() {
		return nil, fmt.Errorf("classifier returned %d codes for %d rows", len(cats), f.Len())
	}
	labels, colors := Palette(classes)
	s := &Spec{
		Kind:    kind,
		Method:  method,
		Classes: classes,
		Labels:  labels,
		Colors:  colors,
		Points:  make([]Point, f.Len()),
	}
	for i := range s.Points {
		c := cats[i]
		if c < 0 || c > classes {
			return nil, fmt.Errorf("classifier returned code %d for row %d (want 0..%d)", c, i, classes)
		}
		s.Points[i] = Point{Stock: f.Stock(i), Year: f.Year(i), Cat: c}
	}
	return s, nil
}

// CatPlot is the historical name of PlotCat and forwards unchanged.
//
// Deprecated: use PlotCat.
func CatPlot(f *stocks.Frame, opt Options) (*Spec, error) {
	return PlotCat(f, opt)
}

func resolveKind(t string) (Kind, error) {
	switch t {
	case "", "count", "prop":
		return KindCount, nil
	case "stock", "all":
		return KindStock, nil
	default:
		return 0, fmt.Errorf("%w: %q (want count, prop, stock or all)", ErrUnsupportedChartType, t)
	}
}
