// TransparentSOFIA categorization entrypoint.
//
// Two modes:
//  1. Render mode (default): load the observation table, classify every row
//     for the selected estimation method, write the requested chart PNGs and
//     print per-year category summaries (optionally also as a JSON report).
//  2. Watch mode (-watch): after the initial render, keep re-rendering
//     whenever the input table changes on disk, until interrupted.
//
// Design notes:
// - The first two table columns are always treated as stock and year, whatever
//   the file calls them; remaining columns are ratio series like bbmsy.<method>.
// - Chart type aliases: "prop" renders the count chart, "all" the stock grid;
//   "both" renders the two canonical charts in one run.
// - A YAML config (-config, or ./sofia.yaml when present) supplies defaults;
//   explicitly set flags always win.
// - Dependency direction: main -> catplot for classification and render for
//   pixels; the stocks package only loads tables.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sofia-tsaf/TransparentSOFIA/src/catplot"
	"github.com/sofia-tsaf/TransparentSOFIA/src/render"
	"github.com/sofia-tsaf/TransparentSOFIA/src/stocks"
)

// renderJob carries one render pass worth of settings.
type renderJob struct {
	file        string
	method      string
	categories  int
	chartType   string
	outDir      string
	width       int
	height      int
	summaryJSON string
}

func main() {
	filePath := flag.String("file", "", "Input observation table (.csv or .jsonl)")
	method := flag.String("method", catplot.DefaultMethod, "Estimation method suffix for bbmsy.<method>/ffmsy.<method> columns")
	categories := flag.Int("cats", 4, "Number of status categories (3 uses the biomass-only split)")
	chartType := flag.String("type", "both", "Chart type: count, prop, stock, all or both")
	outDir := flag.String("out-dir", ".", "Directory for rendered PNGs")
	width := flag.Int("width", render.DefaultWidth, "Chart width in pixels")
	height := flag.Int("height", render.DefaultHeight, "Chart height in pixels")
	summaryJSON := flag.String("summary-json", "", "Path to write a structured summary report JSON (optional)")
	listMethods := flag.Bool("list-methods", false, "List estimation methods found in the table and exit")
	watch := flag.Bool("watch", false, "Keep re-rendering when the input file changes")
	configPath := flag.String("config", "", "YAML config file with defaults (falls back to ./sofia.yaml when present)")
	logLevel := flag.String("log-level", "info", "Log level (debug|info|warn|error)")
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Printf("[init] config: %v\n", err)
		os.Exit(1)
	}
	setFlags := map[string]bool{}
	flag.Visit(func(fl *flag.Flag) { setFlags[fl.Name] = true })
	cfg.apply(setFlags, filePath, method, categories, chartType, outDir, width, height, logLevel)

	stocks.SetLogLevel(*logLevel)

	if *filePath == "" {
		fmt.Println("no input table; provide -file or a config with file:")
		flag.Usage()
		os.Exit(1)
	}

	if *listMethods {
		frame, err := stocks.LoadFile(*filePath)
		if err != nil {
			fmt.Printf("[init] load: %v\n", err)
			os.Exit(1)
		}
		methods := frame.Methods()
		if len(methods) == 0 {
			fmt.Println("no bbmsy./ffmsy. series pairs found")
			os.Exit(1)
		}
		for _, m := range methods {
			fmt.Println(m)
		}
		return
	}

	job := renderJob{
		file:        *filePath,
		method:      *method,
		categories:  *categories,
		chartType:   *chartType,
		outDir:      *outDir,
		width:       *width,
		height:      *height,
		summaryJSON: *summaryJSON,
	}
	fmt.Printf("[init] file=%s method=%s cats=%d type=%s out-dir=%s size=%dx%d\n",
		job.file, job.method, job.categories, job.chartType, job.outDir, job.width, job.height)
	if err := job.run(); err != nil {
		stocks.Errorf("render: %v", err)
		os.Exit(1)
	}
	if *watch {
		if err := watchAndRender(job); err != nil {
			stocks.Errorf("watch: %v", err)
			os.Exit(1)
		}
	}
}

// chartTypes expands the -type flag into canonical render passes.
func chartTypes(t string) ([]string, error) {
	switch t {
	case "both", "":
		return []string{"count", "stock"}, nil
	case "count", "prop", "stock", "all":
		return []string{t}, nil
	default:
		return nil, fmt.Errorf("%w: %q (want count, prop, stock, all or both)", catplot.ErrUnsupportedChartType, t)
	}
}

// run loads, classifies and renders one pass.
func (job renderJob) run() error {
	frame, err := stocks.LoadFile(job.file)
	if err != nil {
		return err
	}
	if frame.Len() == 0 {
		return fmt.Errorf("%s: no observation rows", job.file)
	}
	types, err := chartTypes(job.chartType)
	if err != nil {
		return err
	}
	if job.outDir != "" && job.outDir != "." {
		if err := os.MkdirAll(job.outDir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", job.outDir, err)
		}
	}
	var countSpec *catplot.Spec
	for _, typ := range types {
		spec, err := catplot.PlotCat(frame, catplot.Options{
			Method:     job.method,
			Categories: job.categories,
			Type:       typ,
		})
		if err != nil {
			return err
		}
		if spec.Kind == catplot.KindCount {
			countSpec = spec
		}
		pngBytes, err := render.PNG(spec, render.Options{Width: job.width, Height: job.height})
		if err != nil {
			return err
		}
		outPath := filepath.Join(job.outDir, chartFileName(spec))
		if err := os.WriteFile(outPath, pngBytes, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", outPath, err)
		}
		fmt.Printf("[render] wrote %s (%d bytes)\n", outPath, len(pngBytes))
	}
	if countSpec == nil {
		// Stock-only run still reports the per-year tallies.
		countSpec, err = catplot.PlotCat(frame, catplot.Options{Method: job.method, Categories: job.categories, Type: "count"})
		if err != nil {
			return err
		}
	}
	printSummary(countSpec)
	if job.summaryJSON != "" {
		if err := writeSummaryReport(job.summaryJSON, job.file, countSpec); err != nil {
			return err
		}
		fmt.Printf("[summary] wrote %s\n", job.summaryJSON)
	}
	return nil
}

// chartFileName derives a stable output name like sofia_count_4cat.png.
func chartFileName(s *catplot.Spec) string {
	return fmt.Sprintf("sofia_%s_%dcat.png", s.Kind, s.Classes)
}

// printSummary prints one key=value line per year.
func printSummary(s *catplot.Spec) {
	for _, yc := range s.CountsByYear() {
		var b strings.Builder
		fmt.Fprintf(&b, "[summary] year=%d total=%d", yc.Year, yc.Total())
		for i, lb := range s.Labels {
			fmt.Fprintf(&b, " %s=%d", lb, yc.Counts[i])
		}
		fmt.Println(b.String())
	}
}
