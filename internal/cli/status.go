package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/veggievision/lokatani/internal/nlp"
	"github.com/veggievision/lokatani/internal/storage"
)

// statusJSON is the JSON output structure for the status command.
type statusJSON struct {
	Version           string          `json:"version"`
	DatabasePath      string          `json:"database_path"`
	DatabaseSizeBytes int64           `json:"database_size_bytes"`
	TotalRecords      int64           `json:"total_records"`
	ManualRecords     int64           `json:"manual_records"`
	TotalWeight       float64         `json:"total_weight"`
	OldestRecord      string          `json:"oldest_record,omitempty"`
	NewestRecord      string          `json:"newest_record,omitempty"`
	RetentionDays     int             `json:"retention_days"`
	Timezone          string          `json:"timezone"`
	Vegetables        []typeTotalJSON `json:"vegetables"`
	LastImport        *importJSON     `json:"last_import,omitempty"`
}

type typeTotalJSON struct {
	Type   string  `json:"type"`
	Count  int64   `json:"count"`
	Weight float64 `json:"weight"`
}

type importJSON struct {
	ID       string `json:"id"`
	Source   string `json:"source"`
	Imported int    `json:"imported"`
	Skipped  int    `json:"skipped"`
	At       string `json:"at"`
}

// Execute implements the go-flags Commander interface for StatusCommand.
func (c *StatusCommand) Execute(args []string) error {
	rt, err := openRuntime(c.globals)
	if err != nil {
		return err
	}
	defer rt.Close()

	return c.executeWithStore(rt)
}

// executeWithStore runs status against a provided runtime (for testing).
func (c *StatusCommand) executeWithStore(rt *runtime) error {
	stats, err := rt.store.GetStats(context.Background())
	if err != nil {
		return fmt.Errorf("get stats: %w", err)
	}

	dbSize := stats.DatabaseSizeBytes
	if info, err := os.Stat(rt.dbPath); err == nil {
		dbSize = info.Size()
	}

	if c.globals != nil && c.globals.JSON {
		return c.printStatusJSON(rt, stats, dbSize)
	}
	return c.printStatusHuman(rt, stats, dbSize)
}

func (c *StatusCommand) printStatusHuman(rt *runtime, stats *storage.Stats, dbSize int64) error {
	loc := rt.location()

	fmt.Println("lokatani Status")
	fmt.Println("===============")
	fmt.Printf("Version:       %s\n", c.version)
	fmt.Printf("Database:      %s (%s)\n", rt.dbPath, formatBytes(dbSize))
	fmt.Printf("Records:       %s", formatNumber(stats.TotalRecords))
	if stats.ManualRecords > 0 {
		fmt.Printf(" (%s manual)", formatNumber(stats.ManualRecords))
	}
	fmt.Println()
	fmt.Printf("Total weight:  %s gram\n", nlp.FormatGrams(stats.TotalWeight))

	// Time range
	if stats.TotalRecords > 0 {
		fmt.Printf("Oldest:        %s\n", stats.OldestRecord.In(loc).Format("2006-01-02"))
		fmt.Printf("Newest:        %s\n", stats.NewestRecord.In(loc).Format("2006-01-02"))
	}

	if rt.cfg.Retention.Days > 0 {
		fmt.Printf("Retention:     %d days\n", rt.cfg.Retention.Days)
	} else {
		fmt.Println("Retention:     keep all")
	}
	fmt.Printf("Timezone:      %s\n", loc.String())

	if len(stats.Types) > 0 {
		fmt.Println()
		fmt.Println("Vegetables:")
		for _, t := range stats.Types {
			fmt.Printf("  %-20s %8s  %s gram\n", t.Type, formatNumber(t.Count), nlp.FormatGrams(t.Weight))
		}
	}

	fmt.Println()
	if stats.LastImport != nil {
		li := stats.LastImport
		fmt.Printf("Last import:   %s (%d imported, %d skipped) at %s\n",
			li.Source, li.Imported, li.Skipped, li.Timestamp.In(loc).Format("2006-01-02 15:04"))
	} else {
		fmt.Println("Last import:   never")
	}

	return nil
}

func (c *StatusCommand) printStatusJSON(rt *runtime, stats *storage.Stats, dbSize int64) error {
	out := statusJSON{
		Version:           c.version,
		DatabasePath:      rt.dbPath,
		DatabaseSizeBytes: dbSize,
		TotalRecords:      stats.TotalRecords,
		ManualRecords:     stats.ManualRecords,
		TotalWeight:       stats.TotalWeight,
		RetentionDays:     rt.cfg.Retention.Days,
		Timezone:          rt.location().String(),
		Vegetables:        make([]typeTotalJSON, len(stats.Types)),
	}

	if stats.TotalRecords > 0 {
		out.OldestRecord = stats.OldestRecord.UTC().Format(time.RFC3339)
		out.NewestRecord = stats.NewestRecord.UTC().Format(time.RFC3339)
	}

	for i, t := range stats.Types {
		out.Vegetables[i] = typeTotalJSON{Type: t.Type, Count: t.Count, Weight: t.Weight}
	}

	if li := stats.LastImport; li != nil {
		out.LastImport = &importJSON{
			ID:       li.ID,
			Source:   li.Source,
			Imported: li.Imported,
			Skipped:  li.Skipped,
			At:       li.Timestamp.UTC().Format(time.RFC3339),
		}
	}

	return writeJSON(out)
}

// formatBytes formats a byte count into a human-readable string.
func formatBytes(b int64) string {
	switch {
	case b >= 1<<30:
		return fmt.Sprintf("%.1f GB", float64(b)/float64(1<<30))
	case b >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(b)/float64(1<<20))
	case b >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(b)/float64(1<<10))
	default:
		return fmt.Sprintf("%d B", b)
	}
}

// formatNumber formats an int64 with comma separators.
func formatNumber(n int64) string {
	s := fmt.Sprintf("%d", n)
	if len(s) <= 3 {
		return s
	}

	var result strings.Builder
	remainder := len(s) % 3
	if remainder > 0 {
		result.WriteString(s[:remainder])
	}
	for i := remainder; i < len(s); i += 3 {
		if i > 0 {
			result.WriteString(",")
		}
		result.WriteString(s[i : i+3])
	}
	return result.String()
}
