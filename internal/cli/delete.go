package cli

import (
	"context"
	"fmt"
)

// Execute implements the go-flags Commander interface for DeleteCommand.
func (c *DeleteCommand) Execute(args []string) error {
	if len(c.IDs) == 0 {
		return fmt.Errorf("delete requires at least one --id")
	}

	rt, err := openRuntime(c.globals)
	if err != nil {
		return err
	}
	defer rt.Close()

	return c.executeWithStore(rt)
}

// executeWithStore deletes c.IDs from the runtime's store (used by tests).
func (c *DeleteCommand) executeWithStore(rt *runtime) error {
	if len(c.IDs) == 0 {
		return fmt.Errorf("delete requires at least one --id")
	}

	n, err := rt.store.DeleteRecords(context.Background(), c.IDs)
	if err != nil {
		return fmt.Errorf("delete failed: %w", err)
	}
	rt.logger.Info("records deleted", "requested", len(c.IDs), "deleted", n)

	if c.globals != nil && c.globals.JSON {
		return writeJSON(map[string]interface{}{
			"requested": len(c.IDs),
			"deleted":   n,
		})
	}

	fmt.Printf("Deleted %d of %d records\n", n, len(c.IDs))
	return nil
}
