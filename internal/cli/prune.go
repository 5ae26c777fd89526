package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
	"time"
)

// Execute implements the go-flags Commander interface for PruneCommand.
func (c *PruneCommand) Execute(args []string) error {
	rt, err := openRuntime(c.globals)
	if err != nil {
		return err
	}
	defer rt.Close()

	return c.executeWithStore(rt)
}

// cutoff resolves the prune boundary and a label describing it.
func (c *PruneCommand) cutoff(rt *runtime) (time.Time, string, error) {
	if c.OlderThan != "" && c.Before != "" {
		return time.Time{}, "", fmt.Errorf("--older-than and --before are mutually exclusive")
	}

	if c.Before != "" {
		t, err := parseTime(c.Before, rt.location())
		if err != nil {
			return time.Time{}, "", fmt.Errorf("invalid --before value: %w", err)
		}
		return t, "before " + t.In(rt.location()).Format("2006-01-02 15:04"), nil
	}

	var ttl time.Duration
	switch {
	case c.OlderThan != "":
		d, err := parseDuration(c.OlderThan)
		if err != nil {
			return time.Time{}, "", fmt.Errorf("invalid --older-than value %q: %w", c.OlderThan, err)
		}
		ttl = d
	case rt.cfg.Retention.Days > 0:
		ttl = time.Duration(rt.cfg.Retention.Days) * 24 * time.Hour
	default:
		return time.Time{}, "", fmt.Errorf("no retention configured; pass --older-than or --before")
	}
	return rt.clock().Add(-ttl), "older than " + formatDurationHuman(ttl), nil
}

// executeWithStore runs the prune against a provided runtime (for testing).
func (c *PruneCommand) executeWithStore(rt *runtime) error {
	ctx := context.Background()

	cutoff, label, err := c.cutoff(rt)
	if err != nil {
		return err
	}

	count, err := rt.store.CountBefore(ctx, cutoff)
	if err != nil {
		return err
	}

	if c.DryRun {
		if c.globals != nil && c.globals.JSON {
			return writeJSON(map[string]interface{}{
				"dry_run": true,
				"records": count,
				"cutoff":  cutoff.UTC().Format(time.RFC3339),
			})
		}
		fmt.Printf("[DRY RUN] Would prune %d records %s\n", count, label)
		return nil
	}

	if count == 0 {
		if c.globals != nil && c.globals.JSON {
			return writeJSON(map[string]interface{}{"pruned": 0})
		}
		fmt.Printf("Nothing to prune (no records %s)\n", label)
		return nil
	}

	if !c.Force {
		fmt.Printf("Delete %d records %s? [y/N]: ", count, label)
		scanner := bufio.NewScanner(rt.input())
		if !scanner.Scan() {
			return fmt.Errorf("aborted: no input received")
		}
		answer := strings.ToLower(strings.TrimSpace(scanner.Text()))
		if answer != "y" && answer != "yes" && answer != "ya" {
			return fmt.Errorf("aborted")
		}
	}

	pruned, err := rt.store.PruneBefore(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("prune failed: %w", err)
	}
	rt.logger.Info("records pruned", "count", pruned, "cutoff", cutoff)

	if c.globals != nil && c.globals.JSON {
		return writeJSON(map[string]interface{}{
			"pruned": pruned,
			"cutoff": cutoff.UTC().Format(time.RFC3339),
		})
	}
	fmt.Printf("Pruned %d records %s\n", pruned, label)
	return nil
}
