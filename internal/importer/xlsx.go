package importer

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/xuri/excelize/v2"
)

// ReadXLSX reads records from an Excel workbook. Timestamps may be native
// spreadsheet dates or text in opts.TimestampLayout.
func ReadXLSX(r io.Reader, opts Options) (Result, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return Result{}, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheet := opts.Sheet
	if sheet == "" {
		sheet = f.GetSheetName(0)
	}
	if idx, err := f.GetSheetIndex(sheet); err != nil || idx < 0 {
		return Result{}, fmt.Errorf("sheet %q not found", sheet)
	}

	date1904 := false
	if props, err := f.GetWorkbookProps(); err == nil && props.Date1904 != nil {
		date1904 = *props.Date1904
	}

	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return Result{}, fmt.Errorf("read sheet %q: %w", sheet, err)
	}

	loc := opts.location()
	parseTime := func(s string) (time.Time, bool) {
		if serial, err := strconv.ParseFloat(s, 64); err == nil {
			t, err := excelize.ExcelDateToTime(serial, date1904)
			if err != nil {
				return time.Time{}, false
			}
			// Spreadsheet dates are wall-clock values without a zone, and
			// the conversion leaves sub-millisecond float noise.
			t = t.Round(time.Millisecond)
			return time.Date(t.Year(), t.Month(), t.Day(),
				t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), loc), true
		}
		return parseText(s, opts)
	}

	return collect(rows, opts, parseTime), nil
}
