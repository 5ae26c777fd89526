package cli

import (
	"bytes"
	"context"
	"database/sql"
	"io"
	"os"
	"strings"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"

	"github.com/veggievision/lokatani/internal/config"
	"github.com/veggievision/lokatani/internal/dataset"
	"github.com/veggievision/lokatani/internal/logging"
	"github.com/veggievision/lokatani/internal/storage"
)

var jakarta = mustLocation("Asia/Jakarta")

// testNow is a Thursday; its Monday-start week runs 12-18 October.
var testNow = time.Date(2026, time.October, 15, 10, 30, 0, 0, jakarta)

func mustLocation(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		panic(err)
	}
	return loc
}

func at(month time.Month, day, hour int) time.Time {
	return time.Date(2026, month, day, hour, 0, 0, 0, jakarta)
}

// sampleRecords is two bayam weighings today and one kangkung yesterday.
func sampleRecords() []dataset.Record {
	return []dataset.Record{
		{ID: 1, VegetableType: "bayam", Weight: 500, Timestamp: at(time.October, 15, 8)},
		{ID: 2, VegetableType: "bayam", Weight: 300, Timestamp: at(time.October, 15, 9)},
		{ID: 3, VegetableType: "kangkung", Weight: 200, Timestamp: at(time.October, 14, 14)},
	}
}

// newTestRuntime builds a runtime around a migrated in-memory store seeded
// with records and a clock pinned to testNow.
func newTestRuntime(t *testing.T, records ...dataset.Record) *runtime {
	t.Helper()
	db, err := sql.Open("sqlite3", ":memory:?_foreign_keys=on")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	_, err = storage.NewMigrationRunner(db).Run()
	require.NoError(t, err)

	store, err := storage.NewSQLiteStore(db)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	if len(records) > 0 {
		batch := &storage.ImportBatch{Source: "seed.xlsx"}
		require.NoError(t, store.ReplaceAll(context.Background(), records, batch))
	}

	return &runtime{
		cfg:    config.DefaultConfig(),
		logger: logging.Discard(),
		store:  store,
		db:     db,
		dbPath: ":memory:",
		now:    func() time.Time { return testNow },
	}
}

// withInput feeds lines to the runtime's prompt reader.
func withInput(rt *runtime, lines ...string) *runtime {
	rt.in = strings.NewReader(strings.Join(lines, "\n") + "\n")
	return rt
}

// captureOutput captures stdout during fn execution and returns it as a string.
func captureOutput(t *testing.T, fn func()) string {
	t.Helper()
	old := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = w

	done := make(chan string)
	go func() {
		var buf bytes.Buffer
		_, _ = io.Copy(&buf, r)
		done <- buf.String()
	}()

	fn()

	w.Close()
	os.Stdout = old
	return <-done
}
