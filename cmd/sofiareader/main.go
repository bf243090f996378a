package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/sofia-tsaf/TransparentSOFIA/src/catplot"
	"github.com/sofia-tsaf/TransparentSOFIA/src/stocks"
)

func main() {
	var file string
	var method string
	var cats int
	var byYear bool
	flag.StringVar(&file, "file", "observations.csv", "Path to the observation table (.csv or .jsonl)")
	flag.StringVar(&method, "method", catplot.DefaultMethod, "Estimation method suffix")
	flag.IntVar(&cats, "cats", 4, "Number of status categories (3 or 4)")
	flag.BoolVar(&byYear, "by-year", false, "Print a per-year breakdown")
	flag.Parse()
	frame, err := stocks.LoadFile(file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	spec, err := catplot.PlotCat(frame, catplot.Options{Method: method, Categories: cats})
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	totals := make([]int, spec.Classes)
	classified := 0
	for _, p := range spec.Points {
		if p.Cat == 0 {
			continue
		}
		totals[p.Cat-1]++
		classified++
	}
	fmt.Printf("Rows: %d (classified %d)\n", frame.Len(), classified)
	fmt.Printf("Method: %s (%d classes)\n", spec.Method, spec.Classes)
	fmt.Printf("Stocks: %d  Years: %d\n", len(spec.StockNames()), len(spec.Years()))
	for i, lbl := range spec.Labels {
		fmt.Printf("%s: %d\n", lbl, totals[i])
	}
	if byYear {
		for _, yc := range spec.CountsByYear() {
			fmt.Printf("%d:", yc.Year)
			for i, n := range yc.Counts {
				fmt.Printf(" %s=%d", spec.Labels[i], n)
			}
			fmt.Printf(" total=%d\n", yc.Total())
		}
	}
}
