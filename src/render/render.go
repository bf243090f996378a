// Package render turns chart specs into images. The count chart goes
// through go-chart; the stock grid is drawn directly because a category
// raster has no go-chart equivalent.
package render

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"

	"github.com/sofia-tsaf/TransparentSOFIA/src/catplot"
)

// ErrEmptySpec reports a spec with nothing to draw.
var ErrEmptySpec = errors.New("empty chart spec")

const (
	DefaultWidth  = 1024
	DefaultHeight = 520

	legendHeight = 26
)

// Options control the rendered size and chrome. Zero values pick defaults.
type Options struct {
	Width      int
	Height     int
	Title      string
	HideLegend bool
}

func (o Options) withDefaults(s *catplot.Spec) Options {
	if o.Width <= 0 {
		o.Width = DefaultWidth
	}
	if o.Height <= 0 {
		o.Height = DefaultHeight
	}
	if o.Title == "" {
		o.Title = DefaultTitle(s)
	}
	return o
}

// DefaultTitle names a chart after its kind and estimation method.
func DefaultTitle(s *catplot.Spec) string {
	switch s.Kind {
	case catplot.KindStock:
		return fmt.Sprintf("Stock status by year (%s)", s.Method)
	default:
		return fmt.Sprintf("Category counts by year (%s)", s.Method)
	}
}

// Chart renders s with the renderer matching its kind.
func Chart(s *catplot.Spec, opt Options) (image.Image, error) {
	switch s.Kind {
	case catplot.KindCount:
		return CountChart(s, opt)
	case catplot.KindStock:
		return StockChart(s, opt)
	default:
		return nil, fmt.Errorf("%w: kind %v", catplot.ErrUnsupportedChartType, s.Kind)
	}
}

// PNG renders s and encodes the result.
func PNG(s *catplot.Spec, opt Options) ([]byte, error) {
	img, err := Chart(s, opt)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("png encode: %w", err)
	}
	return buf.Bytes(), nil
}
