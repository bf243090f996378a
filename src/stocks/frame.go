// Package stocks holds the observation table model and its loaders.
package stocks

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Ratio series prefixes. A column like "bbmsy.cmsy.naive" is the B/Bmsy
// series of estimation method "cmsy.naive".
const (
	BBmsyPrefix = "bbmsy."
	FFmsyPrefix = "ffmsy."
)

// ErrMissingColumn reports a series the table does not carry.
var ErrMissingColumn = errors.New("missing column")

// Frame is a rectangular table of stock assessment observations.
//
// The first two columns of whatever source the frame was loaded from are
// always reinterpreted as stock name and year, no matter how the source
// labelled them. The remaining columns are float64 series keyed by their
// original header, in source order. Missing cells hold NaN.
type Frame struct {
	// Original headers of the first two columns, kept for diagnostics only.
	SourceStockName string
	SourceYearName  string

	stockCol []string
	yearCol  []int
	order    []string
	series   map[string][]float64
}

// NewFrame returns an empty frame with the given series columns. Duplicate
// series names keep the first occurrence.
func NewFrame(stockHdr, yearHdr string, series []string) *Frame {
	f := &Frame{
		SourceStockName: stockHdr,
		SourceYearName:  yearHdr,
		series:          make(map[string][]float64, len(series)),
	}
	for _, name := range series {
		if _, dup := f.series[name]; dup {
			continue
		}
		f.order = append(f.order, name)
		f.series[name] = nil
	}
	return f
}

// Append adds one observation row; vals must carry one value per series
// column, in column order.
func (f *Frame) Append(stock string, year int, vals []float64) error {
	if len(vals) != len(f.order) {
		return fmt.Errorf("append row %s/%d: got %d values, frame has %d series", stock, year, len(vals), len(f.order))
	}
	f.stockCol = append(f.stockCol, stock)
	f.yearCol = append(f.yearCol, year)
	for i, name := range f.order {
		f.series[name] = append(f.series[name], vals[i])
	}
	return nil
}

// Len returns the number of observation rows.
func (f *Frame) Len() int { return len(f.stockCol) }

// Stock returns the stock name of row i.
func (f *Frame) Stock(i int) string { return f.stockCol[i] }

// Year returns the year of row i.
func (f *Frame) Year(i int) int { return f.yearCol[i] }

// HasSeries reports whether the named series column exists.
func (f *Frame) HasSeries(name string) bool {
	_, ok := f.series[name]
	return ok
}

// SeriesNames returns the series column headers in source order.
func (f *Frame) SeriesNames() []string {
	out := make([]string, len(f.order))
	copy(out, f.order)
	return out
}

// Series returns the values of one series column, one per row. Unknown
// names report ErrMissingColumn together with the available columns so a
// mistyped method is quick to spot.
func (f *Frame) Series(name string) ([]float64, error) {
	vals, ok := f.series[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (have: %s)", ErrMissingColumn, name, strings.Join(f.order, ", "))
	}
	return vals, nil
}

// Methods returns the sorted estimation method suffixes that carry both a
// bbmsy. and an ffmsy. series.
func (f *Frame) Methods() []string {
	var out []string
	for _, name := range f.order {
		if !strings.HasPrefix(name, BBmsyPrefix) {
			continue
		}
		m := strings.TrimPrefix(name, BBmsyPrefix)
		if f.HasSeries(FFmsyPrefix + m) {
			out = append(out, m)
		}
	}
	sort.Strings(out)
	return out
}
