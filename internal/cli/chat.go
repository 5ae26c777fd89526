package cli

import (
	"bufio"
	"context"
	"fmt"
	"math/rand"
	"strings"

	"github.com/veggievision/lokatani/internal/nlp"
)

// exchange is one question and its answer in a chat session.
type exchange struct {
	Question string
	Answer   string
}

// Execute implements the go-flags Commander interface for ChatCommand.
func (c *ChatCommand) Execute(args []string) error {
	rt, err := openRuntime(c.globals)
	if err != nil {
		return err
	}
	defer rt.Close()

	_, err = c.executeWithStore(rt, nil)
	return err
}

// executeWithStore runs the session over rt.in until EOF or an exit word
// and returns the session history, newest first (used by tests).
func (c *ChatCommand) executeWithStore(rt *runtime, rnd *rand.Rand) ([]exchange, error) {
	engine, err := rt.engine(context.Background())
	if err != nil {
		return nil, err
	}
	cal, err := rt.calendar()
	if err != nil {
		return nil, err
	}
	suggester := nlp.NewSuggester(cal, rt.lexicon(), rnd)

	count := rt.cfg.Chat.Suggestions
	printSuggestions := func() {
		if count <= 0 {
			return
		}
		fmt.Println("Contoh pertanyaan:")
		for _, q := range suggester.Next(count) {
			fmt.Printf("  - %s\n", q)
		}
	}

	fmt.Println("Tanyakan berat sayuran yang sudah ditimbang. Ketik 'saran' untuk contoh, 'riwayat' untuk riwayat, 'keluar' untuk berhenti.")
	printSuggestions()

	var history []exchange
	scanner := bufio.NewScanner(rt.input())
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			fmt.Println()
			break
		}
		line := strings.TrimSpace(scanner.Text())

		switch strings.ToLower(line) {
		case "":
			continue
		case "keluar", "exit", "quit":
			return history, nil
		case "saran":
			printSuggestions()
			continue
		case "riwayat":
			if len(history) == 0 {
				fmt.Println("Belum ada pertanyaan.")
			}
			for _, h := range history {
				fmt.Printf("? %s\n%s\n\n", h.Question, h.Answer)
			}
			continue
		}

		resp := engine.Process(line)
		rt.logger.Debug("question answered", "question", line, "kind", string(resp.Kind))
		fmt.Println(resp.Text)
		history = append([]exchange{{Question: line, Answer: resp.Text}}, history...)
	}

	return history, scanner.Err()
}
