// SOFIA Viewer: desktop UI around the category charts. Loads an
// observation table, classifies it per estimation method and shows the
// per-year summary table plus the rendered count and stock grid charts.
package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"strconv"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/sofia-tsaf/TransparentSOFIA/cmd/sofiaviewer/uihelpers"
	"github.com/sofia-tsaf/TransparentSOFIA/src/catplot"
	"github.com/sofia-tsaf/TransparentSOFIA/src/render"
	"github.com/sofia-tsaf/TransparentSOFIA/src/stocks"
)

type uiState struct {
	app    fyne.App
	window fyne.Window

	filePath   string
	method     string
	categories int

	frame *stocks.Frame

	// Summary tab data, rebuilt on every reclassification.
	summaryLabels []string
	summaryRows   []catplot.YearCount

	countImgCanvas *canvas.Image
	stockImgCanvas *canvas.Image
	methodSelect   *widget.Select
	catsSelect     *widget.Select
	table          *widget.Table
	statusLabel    *widget.Label
}

// truncatePath shortens long paths for display, keeping the tail.
func truncatePath(p string, max int) string {
	if len(p) <= max {
		return p
	}
	if max <= 1 {
		return "…"
	}
	return "…" + p[len(p)-max+1:]
}

func containsString(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

// chartSize derives render dimensions from the window width; when headless
// (nil state or window) it uses screenshotWidthOverride or a default.
func chartSize(state *uiState) (int, int) {
	if state == nil || state.window == nil {
		w := screenshotWidthOverride
		if w <= 0 {
			w = 1000
		}
		return w, uihelpers.ChartHeightFor(w)
	}
	cw := 0
	if c := state.window.Canvas(); c != nil {
		cw = int(c.Size().Width)
	}
	return uihelpers.ComputeChartDimensions(cw)
}

// blank returns a neutral placeholder so the canvas still updates visibly
// on render errors.
func blank(w, h int) image.Image {
	if w <= 0 {
		w = 800
	}
	if h <= 0 {
		h = 320
	}
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, color.RGBA{R: 245, G: 245, B: 245, A: 255})
		}
	}
	return img
}

// notice draws a short message centered on a blank placeholder.
func notice(w, h int, msg string) image.Image {
	img := blank(w, h).(*image.RGBA)
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(color.RGBA{R: 60, G: 60, B: 60, A: 255}),
		Face: basicfont.Face7x13,
	}
	tw := d.MeasureString(msg).Ceil()
	x := (w - tw) / 2
	if x < 8 {
		x = 8
	}
	d.Dot = fixed.Point26_6{X: fixed.I(x), Y: fixed.I(h / 2)}
	d.DrawString(msg)
	return img
}

func buildSpec(state *uiState, typ string) (*catplot.Spec, error) {
	if state.frame == nil {
		return nil, fmt.Errorf("no table loaded")
	}
	return catplot.PlotCat(state.frame, catplot.Options{
		Method:     state.method,
		Categories: state.categories,
		Type:       typ,
	})
}

func renderCountChart(state *uiState) image.Image {
	w, h := chartSize(state)
	spec, err := buildSpec(state, "count")
	if err != nil {
		return notice(w, h, "No chartable data")
	}
	img, err := render.CountChart(spec, render.Options{Width: w, Height: h})
	if err != nil {
		fmt.Printf("[viewer] count chart render error: %v; showing blank fallback\n", err)
		return blank(w, h)
	}
	return img
}

func renderStockChart(state *uiState) image.Image {
	w, _ := chartSize(state)
	spec, err := buildSpec(state, "stock")
	if err != nil {
		return notice(w, 320, "No chartable data")
	}
	h := uihelpers.ComputeGridHeight(len(spec.StockNames()))
	img, err := render.StockChart(spec, render.Options{Width: w, Height: h})
	if err != nil {
		fmt.Printf("[viewer] stock grid render error: %v; showing blank fallback\n", err)
		return blank(w, h)
	}
	return img
}

// updateSummary reclassifies for the summary tab and the status line.
func updateSummary(state *uiState) {
	labels, _ := catplot.Palette(state.categories)
	state.summaryLabels = labels
	state.summaryRows = nil
	spec, err := buildSpec(state, "count")
	if err != nil {
		if state.statusLabel != nil {
			state.statusLabel.SetText("-")
		}
		return
	}
	state.summaryRows = spec.CountsByYear()
	applyTableWidths(state)
	if state.statusLabel != nil {
		years := spec.Years()
		span := "-"
		if len(years) > 0 {
			span = fmt.Sprintf("%d-%d", years[0], years[len(years)-1])
		}
		state.statusLabel.SetText(fmt.Sprintf("rows=%d stocks=%d years=%s", len(spec.Points), len(spec.StockNames()), span))
	}
}

func redrawCharts(state *uiState) {
	if state == nil {
		return
	}
	updateSummary(state)
	if state.countImgCanvas != nil {
		state.countImgCanvas.Image = renderCountChart(state)
		state.countImgCanvas.Refresh()
	}
	if state.stockImgCanvas != nil {
		state.stockImgCanvas.Image = renderStockChart(state)
		state.stockImgCanvas.Refresh()
	}
	if state.table != nil {
		state.table.Refresh()
	}
}

func applyTableWidths(state *uiState) {
	if state == nil || state.table == nil {
		return
	}
	widths := uihelpers.ComputeTableColumnWidths(900, len(state.summaryLabels)+2)
	for i, w := range widths {
		state.table.SetColumnWidth(i, w)
	}
}

// load data and render
func loadAll(state *uiState, fileLabel *widget.Label) {
	if state.filePath == "" {
		return
	}
	frame, err := stocks.LoadFile(state.filePath)
	if err != nil {
		dialog.ShowError(err, state.window)
		return
	}
	state.frame = frame
	methods := frame.Methods()
	fmt.Printf("[viewer] loaded %d rows from %s; methods: %s\n", frame.Len(), state.filePath, strings.Join(methods, ", "))
	if state.method == "" || !containsString(methods, state.method) {
		switch {
		case containsString(methods, catplot.DefaultMethod):
			state.method = catplot.DefaultMethod
		case len(methods) > 0:
			state.method = methods[0]
		}
	}
	if state.methodSelect != nil {
		state.methodSelect.Options = methods
		state.methodSelect.Selected = state.method
		state.methodSelect.Refresh()
	}
	if fileLabel != nil {
		fileLabel.SetText(truncatePath(state.filePath, 60))
	}
	savePrefs(state)
	redrawCharts(state)
}

func main() {
	var fileFlag, methodFlag, screenshotsDir, logLevel string
	var catsFlag int
	flag.StringVar(&fileFlag, "file", "", "Path to the observation table (.csv or .jsonl)")
	flag.StringVar(&methodFlag, "method", "", "Estimation method (defaults to the first one found)")
	flag.IntVar(&catsFlag, "cats", 4, "Number of status categories (3 or 4)")
	flag.StringVar(&screenshotsDir, "screenshots", "", "Render charts headlessly into this directory and exit")
	flag.StringVar(&logLevel, "log-level", "info", "Log level (debug|info|warn|error)")
	flag.Parse()
	stocks.SetLogLevel(logLevel)

	if screenshotsDir != "" {
		if fileFlag == "" {
			fmt.Println("[viewer] -screenshots requires -file")
			os.Exit(1)
		}
		if err := RunScreenshotsMode(fileFlag, screenshotsDir, methodFlag, catsFlag, 0); err != nil {
			fmt.Printf("[viewer] screenshots: %v\n", err)
			os.Exit(1)
		}
		return
	}

	a := app.NewWithID("com.sofia.viewer")
	w := a.NewWindow("SOFIA Viewer")
	w.Resize(fyne.NewSize(1100, 800))

	state := &uiState{
		app:        a,
		window:     w,
		filePath:   fileFlag,
		method:     methodFlag,
		categories: catplot.NormalizeCategories(catsFlag),
	}

	// top bar controls; callbacks are wired after the canvases exist
	fileLabel := widget.NewLabel(truncatePath(state.filePath, 60))
	methodSelect := widget.NewSelect([]string{}, nil)
	methodSelect.PlaceHolder = "(method)"
	state.methodSelect = methodSelect
	catsSelect := widget.NewSelect([]string{"3 classes", "4 classes"}, nil)
	if state.categories == 3 {
		catsSelect.Selected = "3 classes"
	} else {
		catsSelect.Selected = "4 classes"
	}
	state.catsSelect = catsSelect
	state.statusLabel = widget.NewLabel("-")

	// summary table: Year | one column per category | Total
	state.table = widget.NewTable(
		func() (int, int) {
			return len(state.summaryRows) + 1, len(state.summaryLabels) + 2
		},
		func() fyne.CanvasObject {
			return widget.NewLabel("")
		},
		func(id widget.TableCellID, obj fyne.CanvasObject) {
			lbl, ok := obj.(*widget.Label)
			if !ok {
				return
			}
			lbl.TextStyle = fyne.TextStyle{}
			cols := len(state.summaryLabels) + 2
			if id.Row == 0 {
				lbl.TextStyle = fyne.TextStyle{Bold: true}
				switch {
				case id.Col == 0:
					lbl.SetText("Year")
				case id.Col == cols-1:
					lbl.SetText("Total")
				default:
					lbl.SetText(state.summaryLabels[id.Col-1])
				}
				return
			}
			if id.Row-1 >= len(state.summaryRows) {
				lbl.SetText("")
				return
			}
			yc := state.summaryRows[id.Row-1]
			switch {
			case id.Col == 0:
				lbl.SetText(strconv.Itoa(yc.Year))
			case id.Col == cols-1:
				lbl.SetText(strconv.Itoa(yc.Total()))
			default:
				if id.Col-1 < len(yc.Counts) {
					lbl.SetText(strconv.Itoa(yc.Counts[id.Col-1]))
				} else {
					lbl.SetText("")
				}
			}
		},
	)
	applyTableWidths(state)

	// chart placeholders
	state.countImgCanvas = canvas.NewImageFromImage(image.NewRGBA(image.Rect(0, 0, 100, 60)))
	state.countImgCanvas.FillMode = canvas.ImageFillContain
	state.countImgCanvas.SetMinSize(fyne.NewSize(900, 320))
	state.stockImgCanvas = canvas.NewImageFromImage(image.NewRGBA(image.Rect(0, 0, 100, 60)))
	state.stockImgCanvas.FillMode = canvas.ImageFillContain
	state.stockImgCanvas.SetMinSize(fyne.NewSize(900, 320))

	top := container.NewHBox(
		widget.NewButton("Open…", func() { openFileDialog(state, fileLabel) }),
		widget.NewButton("Reload", func() { loadAll(state, fileLabel) }),
		widget.NewLabel("Method:"), methodSelect,
		widget.NewLabel("Categories:"), catsSelect,
		state.statusLabel,
		widget.NewLabel("File:"), fileLabel,
	)
	chartsColumn := container.NewVBox(
		state.countImgCanvas,
		widget.NewSeparator(),
		state.stockImgCanvas,
	)
	chartsScroll := container.NewVScroll(chartsColumn)
	chartsScroll.SetMinSize(fyne.NewSize(900, 650))
	tabs := container.NewAppTabs(
		container.NewTabItem("Summary", state.table),
		container.NewTabItem("Charts", chartsScroll),
	)
	tabs.SetTabLocation(container.TabLocationTop)
	tabs.OnSelected = func(ti *container.TabItem) {
		if state.app != nil {
			state.app.Preferences().SetInt("selectedTabIndex", tabs.SelectedIndex())
		}
	}
	w.SetContent(container.NewBorder(top, nil, nil, nil, tabs))

	// Redraw charts on window resize so they scale with width
	if w.Canvas() != nil {
		prevW := int(w.Canvas().Size().Width)
		done := make(chan struct{})
		w.SetOnClosed(func() {
			savePrefs(state)
			close(done)
		})
		go func() {
			t := time.NewTicker(300 * time.Millisecond)
			defer t.Stop()
			for {
				select {
				case <-done:
					return
				case <-t.C:
					c := w.Canvas()
					if c == nil {
						continue
					}
					if curW := int(c.Size().Width); curW != prevW {
						prevW = curW
						fyne.Do(func() { redrawCharts(state) })
					}
				}
			}
		}()
	}

	// Now that canvases are ready, assign select callbacks
	methodSelect.OnChanged = func(v string) {
		if v == "" {
			return
		}
		state.method = v
		savePrefs(state)
		redrawCharts(state)
	}
	catsSelect.OnChanged = func(v string) {
		if strings.HasPrefix(v, "3") {
			state.categories = 3
		} else {
			state.categories = 4
		}
		savePrefs(state)
		redrawCharts(state)
	}

	buildMenus(state, fileLabel)
	loadPrefs(state, fileLabel)
	if state.categories == 3 {
		catsSelect.Selected = "3 classes"
	} else {
		catsSelect.Selected = "4 classes"
	}
	catsSelect.Refresh()
	if idx := a.Preferences().IntWithFallback("selectedTabIndex", 0); idx > 0 && idx < len(tabs.Items) {
		tabs.SelectIndex(idx)
	}
	loadAll(state, fileLabel)

	w.ShowAndRun()
}

// menus and dialogs
func buildMenus(state *uiState, fileLabel *widget.Label) {
	if state == nil || state.window == nil || state.app == nil {
		return
	}
	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("Open…", func() { openFileDialog(state, fileLabel) }),
		fyne.NewMenuItem("Reload", func() { loadAll(state, fileLabel) }),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Export Count Chart…", func() { exportChartPNG(state, state.countImgCanvas, "count_chart.png") }),
		fyne.NewMenuItem("Export Stock Grid…", func() { exportChartPNG(state, state.stockImgCanvas, "stock_chart.png") }),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", func() { state.window.Close() }),
	)
	helpMenu := fyne.NewMenu("Help",
		fyne.NewMenuItem("About", func() {
			dialog.ShowInformation("About",
				"SOFIA Viewer\n\nClassifies stock assessment time series into status categories\nand charts the per-year composition.", state.window)
		}),
	)
	state.window.SetMainMenu(fyne.NewMainMenu(fileMenu, helpMenu))

	canv := state.window.Canvas()
	if canv != nil {
		canv.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyO, Modifier: fyne.KeyModifierSuper}, func(fyne.Shortcut) { openFileDialog(state, fileLabel) })
		canv.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyO, Modifier: fyne.KeyModifierControl}, func(fyne.Shortcut) { openFileDialog(state, fileLabel) })
		canv.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyR, Modifier: fyne.KeyModifierSuper}, func(fyne.Shortcut) { loadAll(state, fileLabel) })
		canv.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyR, Modifier: fyne.KeyModifierControl}, func(fyne.Shortcut) { loadAll(state, fileLabel) })
		canv.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyW, Modifier: fyne.KeyModifierSuper}, func(fyne.Shortcut) { state.window.Close() })
		canv.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyW, Modifier: fyne.KeyModifierControl}, func(fyne.Shortcut) { state.window.Close() })
	}
}

// file open dialog
func openFileDialog(state *uiState, fileLabel *widget.Label) {
	d := dialog.NewFileOpen(func(rc fyne.URIReadCloser, err error) {
		if err != nil || rc == nil {
			return
		}
		defer rc.Close()
		state.filePath = rc.URI().Path()
		fileLabel.SetText(truncatePath(state.filePath, 60))
		savePrefs(state)
		loadAll(state, fileLabel)
	}, state.window)
	d.SetFilter(storage.NewExtensionFileFilter([]string{".csv", ".jsonl", ".ndjson"}))
	d.Show()
}

// export PNG of the currently rendered chart
func exportChartPNG(state *uiState, img *canvas.Image, defaultName string) {
	if state == nil || state.window == nil {
		return
	}
	if img == nil || img.Image == nil {
		dialog.ShowInformation("Export", "No chart to export.", state.window)
		return
	}
	fs := dialog.NewFileSave(func(wc fyne.URIWriteCloser, err error) {
		if err != nil || wc == nil {
			return
		}
		defer wc.Close()
		if encErr := png.Encode(wc, img.Image); encErr != nil {
			fmt.Printf("[viewer] export failed: %v\n", encErr)
		}
	}, state.window)
	fs.SetFileName(defaultName)
	fs.Show()
}

// prefs
func savePrefs(state *uiState) {
	if state == nil || state.app == nil {
		return
	}
	prefs := state.app.Preferences()
	prefs.SetString("lastFile", state.filePath)
	prefs.SetString("method", state.method)
	prefs.SetInt("categories", state.categories)
}

func loadPrefs(state *uiState, fileLabel *widget.Label) {
	if state == nil || state.app == nil {
		return
	}
	prefs := state.app.Preferences()
	if state.filePath == "" {
		if f := prefs.StringWithFallback("lastFile", ""); f != "" {
			state.filePath = f
			if fileLabel != nil {
				fileLabel.SetText(truncatePath(state.filePath, 60))
			}
		}
	}
	if state.method == "" {
		state.method = prefs.StringWithFallback("method", "")
	}
	if n := prefs.IntWithFallback("categories", state.categories); n == 3 || n == 4 {
		state.categories = n
	}
}
