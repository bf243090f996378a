package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sofia-tsaf/TransparentSOFIA/cmd/sofiaviewer/uihelpers"
	"github.com/sofia-tsaf/TransparentSOFIA/src/catplot"
	"github.com/sofia-tsaf/TransparentSOFIA/src/render"
	"github.com/sofia-tsaf/TransparentSOFIA/src/stocks"
)

// screenshotWidthOverride forces a fixed chart width while headless so
// tests can assert exact output dimensions. Zero keeps the default.
var screenshotWidthOverride int

// RunScreenshotsMode renders the viewer's two charts headlessly into
// outDir without ever creating a window, plus the other category scheme
// as *_<n>cat.png variants. Used by -screenshots and by tests; width <= 0
// falls back to the headless chartSize.
func RunScreenshotsMode(tableFile, outDir, method string, categories, width int) error {
	frame, err := stocks.LoadFile(tableFile)
	if err != nil {
		return fmt.Errorf("load %s: %w", tableFile, err)
	}
	if method == "" {
		methods := frame.Methods()
		switch {
		case containsString(methods, catplot.DefaultMethod):
			method = catplot.DefaultMethod
		case len(methods) > 0:
			method = methods[0]
		default:
			return fmt.Errorf("no ratio columns in %s", tableFile)
		}
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", outDir, err)
	}

	w, h := chartSize(nil)
	if width > 0 {
		w, h = width, uihelpers.ChartHeightFor(width)
	}

	primary := catplot.NormalizeCategories(categories)
	variant := 3
	if primary == 3 {
		variant = 4
	}
	for _, shot := range []struct {
		name string
		typ  string
	}{
		{"count_chart.png", "count"},
		{"stock_chart.png", "stock"},
	} {
		if err := writeScreenshot(frame, filepath.Join(outDir, shot.name), method, primary, shot.typ, w, h); err != nil {
			return err
		}
	}
	// The other scheme is best effort: a 3-class table has no ffmsy
	// columns to feed the 4-class variant.
	for _, shot := range []struct {
		name string
		typ  string
	}{
		{fmt.Sprintf("count_chart_%dcat.png", variant), "count"},
		{fmt.Sprintf("stock_chart_%dcat.png", variant), "stock"},
	} {
		if err := writeScreenshot(frame, filepath.Join(outDir, shot.name), method, variant, shot.typ, w, h); err != nil {
			stocks.Warnf("screenshot variant %s skipped: %v", shot.name, err)
		}
	}
	return nil
}

func writeScreenshot(frame *stocks.Frame, outPath, method string, categories int, typ string, w, h int) error {
	spec, err := catplot.PlotCat(frame, catplot.Options{
		Method:     method,
		Categories: categories,
		Type:       typ,
	})
	if err != nil {
		return fmt.Errorf("build %s: %w", filepath.Base(outPath), err)
	}
	if spec.Kind == catplot.KindStock {
		h = uihelpers.ComputeGridHeight(len(spec.StockNames()))
	}
	data, err := render.PNG(spec, render.Options{Width: w, Height: h})
	if err != nil {
		return fmt.Errorf("render %s: %w", filepath.Base(outPath), err)
	}
	if err := os.WriteFile(outPath, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", outPath, err)
	}
	fmt.Printf("[screenshot] wrote %s\n", outPath)
	return nil
}
