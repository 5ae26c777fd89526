package nlp

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/veggievision/lokatani/internal/dataset"
)

// Source is the record collection the engine answers from.
type Source interface {
	Query(q dataset.Query) []dataset.Record
	Len() int
}

// Option configures an Engine.
type Option func(*engineConfig)

type engineConfig struct {
	calendar Calendar
	lexicon  Lexicon
	logger   *slog.Logger
}

// WithCalendar sets the clock, zone and week start used for time frames.
func WithCalendar(c Calendar) Option {
	return func(cfg *engineConfig) {
		cfg.calendar = c
	}
}

// WithLexicon replaces the built-in synonym tables.
func WithLexicon(l Lexicon) Option {
	return func(cfg *engineConfig) {
		cfg.lexicon = l
	}
}

// WithLogger sets the logger that receives per-question debug output.
func WithLogger(l *slog.Logger) Option {
	return func(cfg *engineConfig) {
		if l != nil {
			cfg.logger = l
		}
	}
}

// Response is the outcome of one question. Text is always a non-empty
// Indonesian sentence or block.
type Response struct {
	Kind      Kind
	Text      string
	Intent    *Intent
	TimeFrame *TimeFrame
}

// Engine answers weighing questions against a Source. It keeps no state
// between questions; the source must not change while a question runs.
type Engine struct {
	source    Source
	calendar  Calendar
	extractor *Extractor
	resolver  *Resolver
	logger    *slog.Logger
}

// New builds an engine over source.
func New(source Source, opts ...Option) (*Engine, error) {
	if source == nil {
		return nil, fmt.Errorf("nlp: nil source")
	}
	cfg := &engineConfig{
		calendar: DefaultCalendar(nil),
		lexicon:  DefaultLexicon(),
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(cfg)
	}

	extractor, err := NewExtractor(cfg.lexicon)
	if err != nil {
		return nil, fmt.Errorf("nlp: invalid lexicon: %w", err)
	}
	return &Engine{
		source:    source,
		calendar:  cfg.calendar,
		extractor: extractor,
		resolver:  NewResolver(cfg.calendar, cfg.lexicon),
		logger:    cfg.logger,
	}, nil
}

// Calendar returns the calendar the engine resolves dates with.
func (e *Engine) Calendar() Calendar {
	return e.calendar
}

// ProcessQuery answers raw and returns only the text.
func (e *Engine) ProcessQuery(raw string) string {
	return e.Process(raw).Text
}

// Process answers raw. It never panics; unexpected failures come back as a
// KindInternal response.
func (e *Engine) Process(raw string) (resp Response) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("query failed", "query", raw, "panic", r)
			resp = Response{Kind: KindInternal, Text: msgInternalError}
		}
	}()

	q := Normalize(raw)
	resp = e.process(q)
	e.logger.Debug("query answered", "query", q, "kind", resp.Kind)
	return resp
}

func (e *Engine) process(q string) Response {
	intent, rej := e.extractor.Extract(q)
	if rej != nil {
		return rejected(rej, nil)
	}
	e.logger.Debug("intent extracted",
		"selector", intent.Selector.Kind.String(),
		"names", intent.Selector.Names,
		"statistic", intent.Statistic.String(),
		"general", intent.General)

	if intent.General {
		return e.general(q, intent)
	}

	tf, rej := e.resolver.Resolve(q)
	if rej != nil {
		if rej.Kind == KindUnresolvedTimeFrame {
			rej.Message = unresolvedMessage(intent, e.calendar.Today().Year())
		}
		return rejected(rej, &intent)
	}
	e.logger.Debug("time frame resolved", "rule", tf.Rule, "start", tf.Start, "end", tf.End)

	records := e.source.Query(tf.Query(e.calendar.location()))
	res := Aggregate(records, intent.Selector)
	kind := KindAnswer
	if res.Overall.Empty() {
		kind = KindNoData
	}
	return Response{Kind: kind, Text: formatAnswer(intent, tf, res), Intent: &intent, TimeFrame: &tf}
}

// general answers the cross-vegetable statistics and listing questions. A
// missing time frame means the whole dataset.
func (e *Engine) general(q string, intent Intent) Response {
	if e.source.Len() == 0 {
		return Response{Kind: KindNoData, Text: msgNoDataAtAll, Intent: &intent}
	}

	label := "keseluruhan"
	query := dataset.Query{}
	var frame *TimeFrame
	tf, rej := e.resolver.Resolve(q)
	switch {
	case rej == nil:
		label = tf.FullDescription
		query = tf.Query(e.calendar.location())
		frame = &tf
	case rej.Kind != KindUnresolvedTimeFrame:
		return rejected(rej, &intent)
	}

	res := Aggregate(e.source.Query(query), All())
	kind := KindAnswer
	if res.Overall.Empty() {
		kind = KindNoData
	}
	text := formatGeneral(label, res)
	if intent.Listing {
		text = formatListing(label, res)
	}
	return Response{Kind: kind, Text: text, Intent: &intent, TimeFrame: frame}
}

func rejected(rej *Rejection, intent *Intent) Response {
	return Response{Kind: rej.Kind, Text: rej.Message, Intent: intent}
}

// Normalize lower-cases q and collapses runs of whitespace to one space.
func Normalize(q string) string {
	return strings.Join(strings.Fields(strings.ToLower(q)), " ")
}
