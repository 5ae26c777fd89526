package cli

import (
	"fmt"
	"math/rand"

	"github.com/veggievision/lokatani/internal/nlp"
)

// Execute implements the go-flags Commander interface for SuggestCommand.
func (c *SuggestCommand) Execute(args []string) error {
	rt, err := openRuntime(c.globals)
	if err != nil {
		return err
	}
	defer rt.Close()

	return c.executeWithStore(rt, nil)
}

// executeWithStore prints example questions; rnd may be nil (used by tests).
func (c *SuggestCommand) executeWithStore(rt *runtime, rnd *rand.Rand) error {
	count := c.Count
	if count <= 0 {
		count = rt.cfg.Chat.Suggestions
	}
	if count <= 0 {
		count = 3
	}

	cal, err := rt.calendar()
	if err != nil {
		return err
	}
	questions := nlp.NewSuggester(cal, rt.lexicon(), rnd).Next(count)

	if c.globals != nil && c.globals.JSON {
		return writeJSON(map[string]interface{}{"questions": questions})
	}
	for _, q := range questions {
		fmt.Printf("- %s\n", q)
	}
	return nil
}
