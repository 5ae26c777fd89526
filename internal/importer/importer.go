// Package importer reads weighing records from spreadsheet exports.
//
// Every row has four columns: integer id, vegetable name, weight in grams
// and timestamp. Rows with a missing or unreadable field are dropped and
// counted, never reported as errors; only an unreadable file is an error.
package importer

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/veggievision/lokatani/internal/dataset"
)

// DefaultTimestampLayout is the layout of text timestamps in exported sheets.
const DefaultTimestampLayout = "2006-01-02 15:04:05"

// Options controls how rows are read.
type Options struct {
	// Sheet names the worksheet to read; empty means the first one.
	Sheet string
	// TimestampLayout parses timestamps stored as text.
	TimestampLayout string
	// SkipHeader drops the first row.
	SkipHeader bool
	// Location gives wall-clock timestamps their zone.
	Location *time.Location
}

func (o Options) layout() string {
	if o.TimestampLayout == "" {
		return DefaultTimestampLayout
	}
	return o.TimestampLayout
}

func (o Options) location() *time.Location {
	if o.Location == nil {
		return time.Local
	}
	return o.Location
}

// Result is the outcome of reading one file.
type Result struct {
	Records []dataset.Record
	// Skipped counts malformed rows and rows repeating an earlier id.
	Skipped int
}

// ReadFile reads path, choosing the reader by extension.
func ReadFile(path string, opts Options) (Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return Result{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".xlsx", ".xlsm":
		return ReadXLSX(f, opts)
	case ".csv":
		return ReadCSV(f, opts)
	default:
		return Result{}, fmt.Errorf("unsupported file type %q (want .xlsx or .csv)", ext)
	}
}

// collect turns raw rows into records.
func collect(rows [][]string, opts Options, parseTime func(string) (time.Time, bool)) Result {
	res := Result{Records: []dataset.Record{}}
	seen := make(map[int]bool)

	for i, row := range rows {
		if i == 0 && opts.SkipHeader {
			continue
		}
		if isBlank(row) {
			continue
		}

		r, ok := parseRow(row, parseTime)
		if !ok || seen[r.ID] {
			res.Skipped++
			continue
		}
		seen[r.ID] = true
		res.Records = append(res.Records, r)
	}
	return res
}

func parseRow(row []string, parseTime func(string) (time.Time, bool)) (dataset.Record, bool) {
	if len(row) < 4 {
		return dataset.Record{}, false
	}

	id, ok := parseID(row[0])
	if !ok {
		return dataset.Record{}, false
	}

	name := strings.TrimSpace(row[1])
	if name == "" {
		return dataset.Record{}, false
	}

	weight, err := strconv.ParseFloat(strings.TrimSpace(row[2]), 64)
	if err != nil || math.IsNaN(weight) || math.IsInf(weight, 0) || weight < 0 {
		return dataset.Record{}, false
	}

	ts, ok := parseTime(strings.TrimSpace(row[3]))
	if !ok {
		return dataset.Record{}, false
	}

	return dataset.Record{ID: id, VegetableType: name, Weight: weight, Timestamp: ts}, true
}

// parseID accepts integers and whole spreadsheet numbers such as "12.0".
func parseID(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		return n, n > 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != math.Trunc(f) || f <= 0 || f > math.MaxInt32 {
		return 0, false
	}
	return int(f), true
}

// parseText parses a text timestamp in the configured layout, falling back
// to RFC 3339.
func parseText(s string, opts Options) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	if t, err := time.ParseInLocation(opts.layout(), s, opts.location()); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, true
	}
	return time.Time{}, false
}

func isBlank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
