package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/veggievision/lokatani/internal/dataset"
	"github.com/veggievision/lokatani/internal/nlp"
	"github.com/veggievision/lokatani/internal/storage"
)

// Execute implements the go-flags Commander interface for ListCommand.
func (c *ListCommand) Execute(args []string) error {
	rt, err := openRuntime(c.globals)
	if err != nil {
		return err
	}
	defer rt.Close()

	return c.executeWithStore(rt)
}

// executeWithStore runs the listing against a provided runtime (for testing).
func (c *ListCommand) executeWithStore(rt *runtime) error {
	now := rt.clock()

	var since time.Time
	if c.Since != "" {
		dur, err := parseDuration(c.Since)
		if err != nil {
			return fmt.Errorf("invalid --since value %q: %w", c.Since, err)
		}
		since = now.Add(-dur)
	}

	var until time.Time
	if c.Until != "" {
		dur, err := parseDuration(c.Until)
		if err != nil {
			return fmt.Errorf("invalid --until value %q: %w", c.Until, err)
		}
		until = now.Add(-dur)
	}

	limit := c.Limit
	if limit <= 0 {
		limit = 20
	}

	q := storage.ListQuery{
		Type:   c.Type,
		Since:  since,
		Until:  until,
		Limit:  limit,
		Offset: c.Offset,
	}

	records, err := rt.store.List(context.Background(), q)
	if err != nil {
		return fmt.Errorf("list failed: %w", err)
	}

	if c.globals != nil && c.globals.JSON {
		return c.printJSON(records)
	}
	return c.printHuman(rt, records)
}

func (c *ListCommand) printHuman(rt *runtime, records []dataset.Record) error {
	if len(records) == 0 {
		fmt.Println("No records found")
		return nil
	}

	loc := rt.location()
	fmt.Printf("%-6s  %-12s  %12s  %s\n", "ID", "VEGETABLE", "WEIGHT (g)", "TIMESTAMP")
	for _, r := range records {
		fmt.Printf("%-6d  %-12s  %12s  %s\n",
			r.ID, r.VegetableType, nlp.FormatGrams(r.Weight), r.Timestamp.In(loc).Format("2006-01-02 15:04:05"))
	}

	recordWord := "records"
	if len(records) == 1 {
		recordWord = "record"
	}
	fmt.Printf("\n%d %s\n", len(records), recordWord)
	return nil
}

type jsonRecord struct {
	ID        int     `json:"id"`
	Vegetable string  `json:"vegetable"`
	Weight    float64 `json:"weight"`
	Timestamp string  `json:"timestamp"`
}

type jsonListOutput struct {
	Count   int          `json:"count"`
	Records []jsonRecord `json:"records"`
}

func (c *ListCommand) printJSON(records []dataset.Record) error {
	out := jsonListOutput{
		Count:   len(records),
		Records: make([]jsonRecord, len(records)),
	}

	for i, r := range records {
		out.Records[i] = jsonRecord{
			ID:        r.ID,
			Vegetable: r.VegetableType,
			Weight:    r.Weight,
			Timestamp: r.Timestamp.UTC().Format(time.RFC3339Nano),
		}
	}

	return writeJSON(out)
}
