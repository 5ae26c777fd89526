package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/veggievision/lokatani/internal/nlp"
)

// Execute implements the go-flags Commander interface for AskCommand.
func (c *AskCommand) Execute(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("ask requires a question, e.g. lokatani ask berapa berat bayam hari ini")
	}

	rt, err := openRuntime(c.globals)
	if err != nil {
		return err
	}
	defer rt.Close()

	return c.executeWithStore(rt, strings.Join(args, " "))
}

// executeWithStore answers question from the runtime's store (used by tests).
func (c *AskCommand) executeWithStore(rt *runtime, question string) error {
	engine, err := rt.engine(context.Background())
	if err != nil {
		return err
	}

	resp := engine.Process(question)
	rt.logger.Debug("question answered", "question", question, "kind", string(resp.Kind))

	if c.globals != nil && c.globals.JSON {
		return writeJSON(newAnswerJSON(question, resp))
	}
	fmt.Println(resp.Text)
	return nil
}

type timeFrameJSON struct {
	Rule        string `json:"rule"`
	Description string `json:"description"`
	Start       string `json:"start,omitempty"`
	End         string `json:"end,omitempty"`
	Weekday     string `json:"weekday,omitempty"`
}

type answerJSON struct {
	Question   string         `json:"question"`
	Answer     string         `json:"answer"`
	Kind       string         `json:"kind"`
	Selector   string         `json:"selector,omitempty"`
	Vegetables []string       `json:"vegetables,omitempty"`
	Statistic  string         `json:"statistic,omitempty"`
	General    bool           `json:"general,omitempty"`
	TimeFrame  *timeFrameJSON `json:"time_frame,omitempty"`
}

func newAnswerJSON(question string, resp nlp.Response) answerJSON {
	out := answerJSON{
		Question: question,
		Answer:   resp.Text,
		Kind:     string(resp.Kind),
	}
	if resp.Intent != nil {
		out.Selector = resp.Intent.Selector.Kind.String()
		out.Vegetables = resp.Intent.Selector.Names
		out.Statistic = resp.Intent.Statistic.String()
		out.General = resp.Intent.General
	}
	if tf := resp.TimeFrame; tf != nil {
		out.TimeFrame = &timeFrameJSON{
			Rule:        tf.Rule,
			Description: tf.FullDescription,
		}
		if !tf.Start.IsZero() {
			out.TimeFrame.Start = tf.Start.Format(time.RFC3339Nano)
			out.TimeFrame.End = tf.End.Format(time.RFC3339Nano)
		}
		if tf.Weekday != nil {
			out.TimeFrame.Weekday = nlp.DayName(*tf.Weekday)
		}
	}
	return out
}
