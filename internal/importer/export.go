package importer

import (
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/veggievision/lokatani/internal/dataset"
)

// ExportSheet is the worksheet name written by WriteXLSX.
const ExportSheet = "Data Sayuran"

var exportHeader = []interface{}{"ID", "Jenis Sayur", "Berat", "Timestamp"}

// WriteXLSX writes records as a workbook that ReadXLSX reads back with
// SkipHeader set. Timestamps are written as text in layout, in loc.
func WriteXLSX(w io.Writer, records []dataset.Record, layout string, loc *time.Location) error {
	if layout == "" {
		layout = DefaultTimestampLayout
	}
	if loc == nil {
		loc = time.Local
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), ExportSheet); err != nil {
		return fmt.Errorf("name sheet: %w", err)
	}

	if err := f.SetSheetRow(ExportSheet, "A1", &exportHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for i, r := range records {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []interface{}{r.ID, r.VegetableType, r.Weight, r.Timestamp.In(loc).Format(layout)}
		if err := f.SetSheetRow(ExportSheet, cell, &row); err != nil {
			return fmt.Errorf("write record %d: %w", r.ID, err)
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}
