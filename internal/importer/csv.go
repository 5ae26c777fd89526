package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"
)

// ReadCSV reads records from comma-separated text with the same four
// columns as the workbook. Timestamps are text only.
func ReadCSV(r io.Reader, opts Options) (Result, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	rows, err := cr.ReadAll()
	if err != nil {
		return Result{}, fmt.Errorf("read csv: %w", err)
	}

	parseTime := func(s string) (time.Time, bool) {
		return parseText(s, opts)
	}
	return collect(rows, opts, parseTime), nil
}
