package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/veggievision/lokatani/internal/dataset"
	"github.com/veggievision/lokatani/internal/nlp"
	"github.com/veggievision/lokatani/internal/storage"
)

// Execute implements the go-flags Commander interface for AddCommand.
func (c *AddCommand) Execute(args []string) error {
	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("--name is required for add command")
	}
	if c.Weight <= 0 {
		return fmt.Errorf("--weight must be a positive number of grams")
	}

	rt, err := openRuntime(c.globals)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer rt.Close()

	return c.executeWithStore(rt)
}

// executeWithStore runs the add logic against a provided runtime (used by tests).
func (c *AddCommand) executeWithStore(rt *runtime) error {
	name := strings.ToLower(strings.TrimSpace(c.Name))
	if name == "" {
		return fmt.Errorf("--name is required for add command")
	}
	if c.Weight <= 0 {
		return fmt.Errorf("--weight must be a positive number of grams")
	}

	ts := rt.clock()
	if c.At != "" {
		var err error
		ts, err = parseTime(c.At, rt.location())
		if err != nil {
			return fmt.Errorf("invalid --at value: %w", err)
		}
	}

	known := false
	for _, n := range rt.lexicon().Names() {
		if n == name {
			known = true
			break
		}
	}
	if !known {
		rt.logger.Warn("vegetable is not in the lexicon; questions will not find it", "name", name)
	}

	record := &dataset.Record{VegetableType: name, Weight: c.Weight, Timestamp: ts}
	if err := rt.store.Insert(context.Background(), record, storage.SourceManual); err != nil {
		return fmt.Errorf("storing record: %w", err)
	}

	// Output confirmation
	if c.globals != nil && c.globals.JSON {
		return writeJSON(map[string]interface{}{
			"id":     record.ID,
			"name":   record.VegetableType,
			"weight": record.Weight,
			"ts":     record.Timestamp.Format(time.RFC3339),
		})
	}

	fmt.Printf("Added record %d (%s)\n", record.ID, record.Timestamp.In(rt.location()).Format("2006-01-02 15:04:05"))
	fmt.Printf("  Vegetable: %s\n", record.VegetableType)
	fmt.Printf("  Weight:    %s gram\n", nlp.FormatGrams(record.Weight))
	return nil
}
