package storage

import "time"

// Record sources.
const (
	SourceImport = "import"
	SourceManual = "manual"
)

// ImportBatch is one spreadsheet import that replaced the record set.
type ImportBatch struct {
	ID        string
	Source    string // path of the imported file
	Imported  int
	Skipped   int
	Timestamp time.Time
}

// ListQuery defines filters for listing weighing history.
type ListQuery struct {
	Type   string
	Since  time.Time
	Until  time.Time
	Limit  int
	Offset int
}

// Stats holds aggregate statistics about the lokatani database.
type Stats struct {
	TotalRecords      int64
	ManualRecords     int64
	TotalWeight       float64
	OldestRecord      time.Time
	NewestRecord      time.Time
	DatabaseSizeBytes int64
	Types             []TypeTotal
	LastImport        *ImportBatch
}

// TypeTotal pairs a vegetable type with its record count and weight.
type TypeTotal struct {
	Type   string
	Count  int64
	Weight float64
}
