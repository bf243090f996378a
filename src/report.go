package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/sofia-tsaf/TransparentSOFIA/src/catplot"
)

// YearSummary is one year's category tally in the report.
type YearSummary struct {
	Year   int            `json:"year"`
	Total  int            `json:"total"`
	Counts map[string]int `json:"counts"`
}

// SummaryReport is the structured counterpart of the [summary] lines.
// Always includes a years array (may be empty).
type SummaryReport struct {
	GeneratedUTC string        `json:"generated_utc"`
	File         string        `json:"file"`
	Method       string        `json:"method"`
	Classes      int           `json:"classes"`
	Labels       []string      `json:"labels"`
	Stocks       int           `json:"stocks"`
	Years        []YearSummary `json:"years"`
}

// buildSummaryReport assembles the report from a count spec.
func buildSummaryReport(file string, s *catplot.Spec) SummaryReport {
	rep := SummaryReport{
		GeneratedUTC: time.Now().UTC().Format(time.RFC3339),
		File:         file,
		Method:       s.Method,
		Classes:      s.Classes,
		Labels:       s.Labels,
		Stocks:       len(s.StockNames()),
		Years:        []YearSummary{},
	}
	for _, yc := range s.CountsByYear() {
		ys := YearSummary{Year: yc.Year, Total: yc.Total(), Counts: make(map[string]int, len(s.Labels))}
		for i, lb := range s.Labels {
			ys.Counts[lb] = yc.Counts[i]
		}
		rep.Years = append(rep.Years, ys)
	}
	return rep
}

// writeSummaryReport marshals the report to path.
func writeSummaryReport(path, file string, s *catplot.Spec) error {
	rep := buildSummaryReport(file, s)
	b, err := json.MarshalIndent(rep, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal summary report: %w", err)
	}
	if err := os.WriteFile(path, append(b, '\n'), 0o644); err != nil {
		return fmt.Errorf("write summary report: %w", err)
	}
	return nil
}
