package nlp

import (
	"regexp"
	"strings"
)

// Statistic is the aggregate a question asks for.
type Statistic int

const (
	StatTotal Statistic = iota
	StatAverage
	StatMaximum
	StatMinimum
)

func (s Statistic) String() string {
	switch s {
	case StatAverage:
		return "average"
	case StatMaximum:
		return "maximum"
	case StatMinimum:
		return "minimum"
	default:
		return "total"
	}
}

// SelectorKind tells which vegetables a question is about.
type SelectorKind int

const (
	SelectNone SelectorKind = iota
	SelectOne
	SelectSet
	SelectAll
)

func (k SelectorKind) String() string {
	switch k {
	case SelectOne:
		return "one"
	case SelectSet:
		return "set"
	case SelectAll:
		return "all"
	default:
		return "none"
	}
}

// Selector is the vegetable scope of a question. Names is empty for
// SelectAll and SelectNone, has one entry for SelectOne and two or more,
// de-duplicated and in order of mention, for SelectSet.
type Selector struct {
	Kind  SelectorKind
	Names []string
}

// One selects a single vegetable.
func One(name string) Selector {
	return Selector{Kind: SelectOne, Names: []string{name}}
}

// Set selects several vegetables.
func Set(names ...string) Selector {
	return Selector{Kind: SelectSet, Names: names}
}

// All selects every vegetable in the dataset.
func All() Selector {
	return Selector{Kind: SelectAll}
}

// Label renders the selector for answers: "bayam", "bayam dan kangkung",
// "semua sayuran".
func (s Selector) Label() string {
	switch s.Kind {
	case SelectAll:
		return "semua sayuran"
	case SelectOne, SelectSet:
		return joinIndonesian(s.Names)
	default:
		return ""
	}
}

// Intent is the structured reading of a question.
type Intent struct {
	Selector  Selector
	Statistic Statistic
	// General routes the question to the cross-vegetable statistics answer.
	General bool
	// Listing asks the general answer for a per-vegetable list.
	Listing bool
}

var (
	weightPattern  = regexp.MustCompile(`\b(?:berat|brt|total|jumlah|berapa|brp|kilo|kg|gram|gr|ditimbang|timbang|timbangan|data)\b`)
	averagePattern = regexp.MustCompile(`\b(?:rata-rata|rata rata|ratarata|rata2|rerata|average|avg|mean)\b`)
	maximumPattern = regexp.MustCompile(`\b(?:maksimum|maksimal|maks|max|terberat|paling berat|tertinggi|terbesar)\b`)
	minimumPattern = regexp.MustCompile(`\b(?:minimum|minimal|min|teringan|paling ringan|terendah|terkecil|paling sedikit)\b`)
	generalPattern = regexp.MustCompile(`\b(?:statistik|statistic|stats|stat|rangkuman|ringkasan|rekap|rekapan|rekapitulasi|total keseluruhan|semua jenis|seluruh jenis|jenisnya)\b|\bapa (?:saja|aja)\b`)
	listingPattern = regexp.MustCompile(`\bapa (?:saja|aja)\b|\bjenisnya\b`)
	allPattern     = regexp.MustCompile(`\b(?:sayur|sayuran|sayur2|sayurnya|syr|semua|seluruh)\b`)
)

// connector joins vegetable names in a multi-vegetable question.
const connector = `(?:\s*(?:,\s*dan|,\s*serta|dan|serta|\+|&|,)\s*|\s+)`

// Extractor finds the vegetable selector and statistic in a normalized
// question.
type Extractor struct {
	lexicon   Lexicon
	vegetable *regexp.Regexp
	multi     *regexp.Regexp
	families  []*regexp.Regexp
}

// NewExtractor compiles the vegetable tables of lex.
func NewExtractor(lex Lexicon) (*Extractor, error) {
	if err := lex.Validate(); err != nil {
		return nil, err
	}

	var variants []string
	families := make([]*regexp.Regexp, len(lex.Vegetables))
	for i, v := range lex.Vegetables {
		variants = append(variants, v.Variants...)
		families[i] = regexp.MustCompile(`^` + alternation(v.Variants) + `$`)
	}
	token := `\b` + alternation(variants) + `\b`

	return &Extractor{
		lexicon:   lex,
		vegetable: regexp.MustCompile(token),
		multi:     regexp.MustCompile(token + `(?:` + connector + token + `)+`),
		families:  families,
	}, nil
}

// Extract reads q, which must already be normalized. A non-nil Rejection
// means the question cannot be answered as asked.
func (x *Extractor) Extract(q string) (Intent, *Rejection) {
	stat, hasStat := statisticOf(q)
	general := generalPattern.MatchString(q)

	if !hasStat && !general && !weightPattern.MatchString(q) {
		return Intent{}, &Rejection{Kind: KindOutOfDomain, Message: msgOutOfDomain}
	}

	intent := Intent{Statistic: stat}
	names := x.Vegetables(q)
	switch {
	case len(names) > 1:
		intent.Selector = Set(names...)
	case len(names) == 1:
		intent.Selector = One(names[0])
	case general:
		intent.Selector = All()
		intent.General = true
		intent.Listing = listingPattern.MatchString(q)
	case allPattern.MatchString(q):
		intent.Selector = All()
	default:
		return Intent{}, &Rejection{
			Kind:    KindUnrecognizedVegetable,
			Message: unrecognizedVegetableMessage(x.lexicon.Names()),
		}
	}
	return intent, nil
}

// Vegetables returns the canonical names mentioned in q. A run of names
// joined by connectors yields all of them in order of mention; otherwise
// only the first name found counts.
func (x *Extractor) Vegetables(q string) []string {
	span := x.multi.FindString(q)
	if span == "" {
		token := x.vegetable.FindString(q)
		if token == "" {
			return nil
		}
		return []string{x.canonical(token)}
	}

	var names []string
	seen := make(map[string]bool)
	for _, token := range x.vegetable.FindAllString(span, -1) {
		name := x.canonical(token)
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	return names
}

// canonical maps a matched token to the first family that accepts it.
func (x *Extractor) canonical(token string) string {
	for i, family := range x.families {
		if family.MatchString(token) {
			return x.lexicon.Vegetables[i].Canonical
		}
	}
	return token
}

func statisticOf(q string) (Statistic, bool) {
	switch {
	case averagePattern.MatchString(q):
		return StatAverage, true
	case maximumPattern.MatchString(q):
		return StatMaximum, true
	case minimumPattern.MatchString(q):
		return StatMinimum, true
	default:
		return StatTotal, false
	}
}

// joinIndonesian renders a list as "a", "a dan b" or "a, b, dan c".
func joinIndonesian(items []string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	case 2:
		return items[0] + " dan " + items[1]
	default:
		return strings.Join(items[:len(items)-1], ", ") + ", dan " + items[len(items)-1]
	}
}
