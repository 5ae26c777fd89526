package dataset

import "time"

// Record is a single weighing observation. Weight is in grams.
type Record struct {
	ID            int
	VegetableType string
	Weight        float64
	Timestamp     time.Time
}

// Query defines filters for reading records from a Store.
// Empty Type matches every vegetable; zero Since/Until leave that side
// unbounded. Bounds are inclusive. Weekday, when set, keeps only records
// whose timestamp falls on that day of the week, read in Location (the
// timestamp's own location when nil).
type Query struct {
	Type     string
	Since    time.Time
	Until    time.Time
	Weekday  *time.Weekday
	Location *time.Location
}

// TypeCount pairs a vegetable type with its record count.
type TypeCount struct {
	Type  string
	Count int
}
