package importer

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/veggievision/lokatani/internal/dataset"
)

var wib = time.FixedZone("WIB", 7*60*60)

func testOptions() Options {
	return Options{SkipHeader: true, Location: wib}
}

// writeWorkbook saves rows to a new workbook under t.TempDir().
func writeWorkbook(t *testing.T, sheet string, rows [][]interface{}) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	if sheet != "" {
		require.NoError(t, f.SetSheetName(f.GetSheetName(0), sheet))
	} else {
		sheet = f.GetSheetName(0)
	}
	for i := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &rows[i]))
	}

	path := filepath.Join(t.TempDir(), "data_sayuran.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func header() []interface{} {
	return []interface{}{"ID", "Jenis Sayur", "Berat", "Timestamp"}
}

func TestReadXLSX_TextAndNativeTimestamps(t *testing.T) {
	path := writeWorkbook(t, "", [][]interface{}{
		header(),
		{1, "bayam", 500, "2024-03-04 08:00:00"},
		{2, "kangkung", 200.5, 45355.5}, // 2024-03-04 12:00 as a spreadsheet date
	})

	res, err := ReadFile(path, testOptions())
	require.NoError(t, err)
	assert.Zero(t, res.Skipped)
	require.Len(t, res.Records, 2)

	first := res.Records[0]
	assert.Equal(t, 1, first.ID)
	assert.Equal(t, "bayam", first.VegetableType)
	assert.Equal(t, 500.0, first.Weight)
	assert.True(t, time.Date(2024, time.March, 4, 8, 0, 0, 0, wib).Equal(first.Timestamp))

	r := res.Records[1]
	assert.Equal(t, 2, r.ID)
	assert.Equal(t, "kangkung", r.VegetableType)
	assert.Equal(t, 200.5, r.Weight)
	assert.True(t, time.Date(2024, time.March, 4, 12, 0, 0, 0, wib).Equal(r.Timestamp), r.Timestamp)
}

func TestReadXLSX_DropsMalformedRows(t *testing.T) {
	path := writeWorkbook(t, "", [][]interface{}{
		header(),
		{1, "bayam", 500, "2024-03-04 08:00:00"},
		{"x", "bayam", 500, "2024-03-04 08:00:00"},   // bad id
		{3, "", 500, "2024-03-04 08:00:00"},          // no name
		{4, "bayam", "berat", "2024-03-04 08:00:00"}, // bad weight
		{5, "bayam", -1, "2024-03-04 08:00:00"},      // negative weight
		{6, "bayam", 500, "kemarin"},                 // bad timestamp
		{7, "bayam", 500},                            // missing column
		{1, "kangkung", 100, "2024-03-05 08:00:00"},  // repeated id
		{8, "pakcoy", 150, "2024-03-05 09:00:00"},
	})

	res, err := ReadFile(path, testOptions())
	require.NoError(t, err)
	assert.Equal(t, 7, res.Skipped)
	require.Len(t, res.Records, 2)
	assert.Equal(t, "bayam", res.Records[0].VegetableType, "first occurrence of an id wins")
	assert.Equal(t, 8, res.Records[1].ID)
}

func TestReadXLSX_HeaderHandling(t *testing.T) {
	path := writeWorkbook(t, "", [][]interface{}{
		{1, "bayam", 500, "2024-03-04 08:00:00"},
		{2, "bayam", 300, "2024-03-04 09:00:00"},
	})

	res, err := ReadFile(path, testOptions())
	require.NoError(t, err)
	assert.Len(t, res.Records, 1, "first row is treated as the header")

	opts := testOptions()
	opts.SkipHeader = false
	res, err = ReadFile(path, opts)
	require.NoError(t, err)
	assert.Len(t, res.Records, 2)
}

func TestReadXLSX_NamedSheet(t *testing.T) {
	path := writeWorkbook(t, "Timbangan", [][]interface{}{
		header(),
		{1, "bayam", 500, "2024-03-04 08:00:00"},
	})

	opts := testOptions()
	opts.Sheet = "Timbangan"
	res, err := ReadFile(path, opts)
	require.NoError(t, err)
	assert.Len(t, res.Records, 1)

	opts.Sheet = "Lainnya"
	_, err = ReadFile(path, opts)
	assert.Error(t, err)
}

func TestReadXLSX_CustomLayout(t *testing.T) {
	path := writeWorkbook(t, "", [][]interface{}{
		header(),
		{1, "bayam", 500, "04/03/2024 08:00"},
	})

	opts := testOptions()
	opts.TimestampLayout = "02/01/2006 15:04"
	res, err := ReadFile(path, opts)
	require.NoError(t, err)
	require.Len(t, res.Records, 1)
	assert.True(t, time.Date(2024, time.March, 4, 8, 0, 0, 0, wib).Equal(res.Records[0].Timestamp))
}

func TestReadCSV(t *testing.T) {
	data := strings.Join([]string{
		"ID,Jenis Sayur,Berat,Timestamp",
		"1,bayam,500,2024-03-04 08:00:00",
		"2, kangkung, 200.25, 2024-03-04T09:00:00+07:00",
		"3,pakcoy,,2024-03-04 10:00:00",
		"",
		"4,bayam,12.0,2024-03-05 10:00:00",
	}, "\n")

	res, err := ReadCSV(strings.NewReader(data), testOptions())
	require.NoError(t, err)
	assert.Equal(t, 1, res.Skipped)
	require.Len(t, res.Records, 3)
	assert.Equal(t, "kangkung", res.Records[1].VegetableType)
	assert.Equal(t, 200.25, res.Records[1].Weight)
	assert.True(t, time.Date(2024, time.March, 4, 9, 0, 0, 0, wib).Equal(res.Records[1].Timestamp))
}

func TestReadFile_Errors(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "missing.xlsx"), testOptions())
	assert.Error(t, err)

	txt := filepath.Join(t.TempDir(), "data.txt")
	require.NoError(t, os.WriteFile(txt, []byte("1,bayam,1,x"), 0644))
	_, err = ReadFile(txt, testOptions())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported")

	bad := filepath.Join(t.TempDir(), "broken.xlsx")
	require.NoError(t, os.WriteFile(bad, []byte("not a zip"), 0644))
	_, err = ReadFile(bad, testOptions())
	assert.Error(t, err)
}

func TestParseID(t *testing.T) {
	cases := []struct {
		in   string
		want int
		ok   bool
	}{
		{"12", 12, true},
		{" 7 ", 7, true},
		{"3.0", 3, true},
		{"3.5", 0, false},
		{"0", 0, false},
		{"-4", 0, false},
		{"", 0, false},
		{"abc", 0, false},
	}
	for _, tc := range cases {
		got, ok := parseID(tc.in)
		assert.Equal(t, tc.ok, ok, tc.in)
		if tc.ok {
			assert.Equal(t, tc.want, got, tc.in)
		}
	}
}

func TestWriteXLSX_RoundTrip(t *testing.T) {
	records := []dataset.Record{
		{ID: 1, VegetableType: "bayam", Weight: 500, Timestamp: time.Date(2024, time.March, 4, 8, 0, 0, 0, wib)},
		{ID: 2, VegetableType: "kangkung", Weight: 200.75, Timestamp: time.Date(2024, time.March, 5, 9, 30, 15, 0, wib)},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, records, "", wib))

	opts := testOptions()
	opts.Sheet = ExportSheet
	res, err := ReadXLSX(&buf, opts)
	require.NoError(t, err)
	assert.Zero(t, res.Skipped)
	require.Len(t, res.Records, 2)
	for i := range records {
		assert.Equal(t, records[i].ID, res.Records[i].ID)
		assert.Equal(t, records[i].VegetableType, res.Records[i].VegetableType)
		assert.Equal(t, records[i].Weight, res.Records[i].Weight)
		assert.True(t, records[i].Timestamp.Equal(res.Records[i].Timestamp))
	}
}
