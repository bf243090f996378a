package stocks

import (
	"bufio"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"
)

// SchemaVersion tags JSONL observation envelopes.
// 1: initial schema (stock, year, ratios map).
const SchemaVersion = 1

// Meta describes the provenance of one JSONL observation line.
type Meta struct {
	SchemaVersion int    `json:"schema_version"`
	Source        string `json:"source,omitempty"`
	TimestampUTC  string `json:"timestamp_utc,omitempty"`
}

// Observation is one stock/year measurement with its ratio values keyed by
// series name (e.g. "bbmsy.cmsy.naive").
type Observation struct {
	Stock  string             `json:"stock"`
	Year   int                `json:"year"`
	Ratios map[string]float64 `json:"ratios,omitempty"`
}

// ObservationEnvelope is the one-line JSON wrapper written per observation.
type ObservationEnvelope struct {
	Meta        *Meta        `json:"meta,omitempty"`
	Observation *Observation `json:"observation,omitempty"`
}

// LoadFile loads a table by extension: .csv, or .jsonl/.ndjson envelopes.
func LoadFile(path string) (*Frame, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer fh.Close()
	defer TimeTrack(time.Now(), "load "+filepath.Base(path))
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return LoadCSV(fh)
	case ".jsonl", ".ndjson":
		return LoadJSONL(fh)
	default:
		return nil, fmt.Errorf("unsupported table format %q (want .csv or .jsonl)", filepath.Ext(path))
	}
}

// LoadCSV reads a header-labelled table. The first two columns become stock
// and year whatever their headers say; every remaining column is parsed as
// a float64 series. Cells that are empty, "NA", "NaN" or otherwise fail to
// parse load as NaN.
func LoadCSV(r io.Reader) (*Frame, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("csv: empty input")
	}
	if err != nil {
		return nil, fmt.Errorf("csv: read header: %w", err)
	}
	if len(header) < 2 {
		return nil, fmt.Errorf("csv: need at least stock and year columns, got %d", len(header))
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}
	f := NewFrame(header[0], header[1], header[2:])
	row := 1
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		row++
		if err != nil {
			return nil, fmt.Errorf("csv: row %d: %w", row, err)
		}
		year, err := strconv.Atoi(strings.TrimSpace(rec[1]))
		if err != nil {
			return nil, fmt.Errorf("csv: row %d: year %q: %w", row, rec[1], err)
		}
		vals := make([]float64, len(rec)-2)
		for i, cell := range rec[2:] {
			vals[i] = parseRatio(cell)
		}
		if err := f.Append(strings.TrimSpace(rec[0]), year, vals); err != nil {
			return nil, fmt.Errorf("csv: row %d: %w", row, err)
		}
	}
	Debugf("csv: loaded %d rows, %d series", f.Len(), len(f.order))
	return f, nil
}

func parseRatio(cell string) float64 {
	s := strings.TrimSpace(cell)
	if s == "" || strings.EqualFold(s, "na") || strings.EqualFold(s, "nan") {
		return math.NaN()
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return math.NaN()
	}
	return v
}

// LoadJSONL reads one ObservationEnvelope per line. Malformed lines and
// lines tagged with a newer schema version are skipped with a warning so a
// single bad line does not poison the whole file. Ratio keys become series
// columns in first-seen order; keys first seen on the same line are added
// sorted so column order stays deterministic.
func LoadJSONL(r io.Reader) (*Frame, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	type row struct {
		stock  string
		year   int
		ratios map[string]float64
	}
	var (
		rows    []row
		order   []string
		seen    = map[string]bool{}
		line    int
		skipped int
	)
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" {
			continue
		}
		var env ObservationEnvelope
		if err := json.Unmarshal([]byte(text), &env); err != nil {
			skipped++
			Debugf("jsonl: line %d: %v", line, err)
			continue
		}
		if env.Observation == nil || env.Observation.Stock == "" {
			skipped++
			continue
		}
		if env.Meta != nil && env.Meta.SchemaVersion > SchemaVersion {
			skipped++
			Debugf("jsonl: line %d: schema_version %d newer than %d", line, env.Meta.SchemaVersion, SchemaVersion)
			continue
		}
		var fresh []string
		for k := range env.Observation.Ratios {
			if !seen[k] {
				seen[k] = true
				fresh = append(fresh, k)
			}
		}
		sort.Strings(fresh)
		order = append(order, fresh...)
		rows = append(rows, row{env.Observation.Stock, env.Observation.Year, env.Observation.Ratios})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("jsonl: scan: %w", err)
	}
	if skipped > 0 {
		Warnf("jsonl: skipped %d of %d lines", skipped, line)
	}
	f := NewFrame("stock", "year", order)
	for _, rw := range rows {
		vals := make([]float64, len(order))
		for i, k := range order {
			v, ok := rw.ratios[k]
			if !ok {
				v = math.NaN()
			}
			vals[i] = v
		}
		if err := f.Append(rw.stock, rw.year, vals); err != nil {
			return nil, err
		}
	}
	Debugf("jsonl: loaded %d rows, %d series", f.Len(), len(order))
	return f, nil
}
