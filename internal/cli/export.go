package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/veggievision/lokatani/internal/importer"
	"github.com/veggievision/lokatani/internal/storage"
)

// Execute implements the go-flags Commander interface for ExportCommand.
func (c *ExportCommand) Execute(args []string) error {
	rt, err := openRuntime(c.globals)
	if err != nil {
		return err
	}
	defer rt.Close()

	return c.executeWithStore(rt)
}

// executeWithStore writes the selected records to c.Output (used by tests).
func (c *ExportCommand) executeWithStore(rt *runtime) error {
	ctx := context.Background()

	q := storage.ListQuery{Type: c.Type, Limit: -1}
	if c.Since != "" {
		dur, err := parseDuration(c.Since)
		if err != nil {
			return fmt.Errorf("invalid --since value %q: %w", c.Since, err)
		}
		q.Since = rt.clock().Add(-dur)
	}

	records, err := rt.store.List(ctx, q)
	if err != nil {
		return fmt.Errorf("list records: %w", err)
	}

	f, err := os.Create(c.Output)
	if err != nil {
		return fmt.Errorf("create %s: %w", c.Output, err)
	}
	if err := importer.WriteXLSX(f, records, rt.cfg.Import.TimestampLayout, rt.location()); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", c.Output, err)
	}

	rt.logger.Info("records exported", "path", c.Output, "count", len(records))

	if c.globals != nil && c.globals.JSON {
		return writeJSON(map[string]interface{}{
			"path":    c.Output,
			"records": len(records),
		})
	}
	fmt.Printf("Exported %d records to %s\n", len(records), c.Output)
	return nil
}
