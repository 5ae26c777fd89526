package nlp

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/veggievision/lokatani/internal/dataset"
)

var wib = time.FixedZone("WIB", 7*60*60)

// testNow is a Thursday; its Monday-start week runs 12-18 October.
var testNow = time.Date(2026, time.October, 15, 10, 30, 0, 0, wib)

func testCalendar() Calendar {
	return Calendar{
		Now:            func() time.Time { return testNow },
		Location:       wib,
		FirstDayOfWeek: time.Monday,
	}
}

func wibAt(month time.Month, day, hour int) time.Time {
	return time.Date(2026, month, day, hour, 0, 0, 0, wib)
}

// threeRecords is two bayam weighings today and one kangkung yesterday.
func threeRecords() []dataset.Record {
	return []dataset.Record{
		{ID: 1, VegetableType: "bayam", Weight: 500, Timestamp: wibAt(time.October, 15, 8)},
		{ID: 2, VegetableType: "bayam", Weight: 300, Timestamp: wibAt(time.October, 15, 9)},
		{ID: 3, VegetableType: "kangkung", Weight: 200, Timestamp: wibAt(time.October, 14, 14)},
	}
}

func newTestEngine(t *testing.T, records []dataset.Record) *Engine {
	t.Helper()
	e, err := New(dataset.NewStore(records), WithCalendar(testCalendar()))
	require.NoError(t, err)
	return e
}

func newTestExtractor(t *testing.T) *Extractor {
	t.Helper()
	x, err := NewExtractor(DefaultLexicon())
	require.NoError(t, err)
	return x
}

func newTestResolver() *Resolver {
	return NewResolver(testCalendar(), DefaultLexicon())
}
