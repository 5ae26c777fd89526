package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/veggievision/lokatani/internal/importer"
	"github.com/veggievision/lokatani/internal/storage"
)

const watchDebounce = 500 * time.Millisecond

// Execute implements the go-flags Commander interface for ImportCommand.
func (c *ImportCommand) Execute(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("import requires exactly one file (.xlsx or .csv)")
	}

	rt, err := openRuntime(c.globals)
	if err != nil {
		return err
	}
	defer rt.Close()

	if err := c.executeWithStore(rt, args[0]); err != nil {
		return err
	}
	if !c.Watch {
		return nil
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return c.watch(ctx, rt, args[0])
}

// executeWithStore imports path into the runtime's store (used by tests).
func (c *ImportCommand) executeWithStore(rt *runtime, path string) error {
	ctx := context.Background()

	opts := importer.Options{
		Sheet:           rt.cfg.Import.Sheet,
		TimestampLayout: rt.cfg.Import.TimestampLayout,
		SkipHeader:      rt.cfg.Import.SkipHeader && !c.NoHeader,
		Location:        rt.location(),
	}
	if c.Sheet != "" {
		opts.Sheet = c.Sheet
	}

	res, err := importer.ReadFile(path, opts)
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}

	source := path
	if abs, err := filepath.Abs(path); err == nil {
		source = abs
	}
	batch := &storage.ImportBatch{Source: source, Skipped: res.Skipped}
	if err := rt.store.ReplaceAll(ctx, res.Records, batch); err != nil {
		return fmt.Errorf("storing records: %w", err)
	}

	rt.logger.Info("records imported",
		"batch", batch.ID, "source", source, "imported", batch.Imported, "skipped", batch.Skipped)
	if res.Skipped > 0 {
		rt.logger.Warn("rows skipped during import", "source", source, "skipped", res.Skipped)
	}

	if c.globals != nil && c.globals.JSON {
		return writeJSON(map[string]interface{}{
			"batch_id": batch.ID,
			"source":   batch.Source,
			"imported": batch.Imported,
			"skipped":  batch.Skipped,
			"ts":       batch.Timestamp.UTC().Format(time.RFC3339),
		})
	}

	fmt.Printf("Imported %d records from %s", batch.Imported, filepath.Base(path))
	if batch.Skipped > 0 {
		fmt.Printf(" (%d rows skipped)", batch.Skipped)
	}
	fmt.Println()
	return nil
}

// watch re-imports path each time it changes until ctx is cancelled.
func (c *ImportCommand) watch(ctx context.Context, rt *runtime, path string) error {
	fmt.Printf("Watching %s for changes (Ctrl+C to stop)\n", filepath.Base(path))
	return importer.Watch(ctx, path, watchDebounce, rt.logger, func() {
		if err := c.executeWithStore(rt, path); err != nil {
			rt.logger.Error("re-import failed", "path", path, "error", err)
		}
	})
}
