package nlp

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"
)

// AllVegetables is the reserved word for "every vegetable". It can never be
// used as a canonical vegetable name.
const AllVegetables = "semua"

// Vegetable is one vegetable family: the canonical name used in answers and
// in record lookups, plus the spellings users type for it. Variants are
// regular expression fragments matched between word boundaries.
type Vegetable struct {
	Canonical string
	Variants  []string
}

// MonthAlias maps spellings of a month to the month.
type MonthAlias struct {
	Month   time.Month
	Aliases []string
}

// Lexicon holds the synonym tables the extractor and resolver match against.
// Vegetables are checked in order; the first family whose variants match a
// detected token supplies its canonical name.
type Lexicon struct {
	Vegetables []Vegetable
	Months     []MonthAlias
	Weekdays   map[string]time.Weekday
}

// DefaultLexicon returns the built-in bayam, kangkung and pakcoy families
// with Indonesian and English month and weekday spellings.
func DefaultLexicon() Lexicon {
	return Lexicon{
		Vegetables: []Vegetable{
			{Canonical: "bayam", Variants: []string{
				"ba[yie]am", "baym", "byam", "baeam", "baiam", "bayem", "bayaam",
			}},
			{Canonical: "kangkung", Variants: []string{
				"kangkung", "kankung", "kangkon", "kangkun", "kangkong",
			}},
			{Canonical: "pakcoy", Variants: []string{
				"pakcoy", "pak coy", "pakchoy", "pakoj", "pakoy", "pakcoi", "pakchoi", "pokcoy", "bok choy",
			}},
		},
		Months: []MonthAlias{
			{time.January, []string{"januari", "jan"}},
			{time.February, []string{"februari", "pebruari", "feb"}},
			{time.March, []string{"maret", "mar"}},
			{time.April, []string{"april", "apr"}},
			{time.May, []string{"mei"}},
			{time.June, []string{"juni", "jun"}},
			{time.July, []string{"juli", "jul"}},
			{time.August, []string{"agustus", "agst", "agt", "aug"}},
			{time.September, []string{"september", "sept", "sep"}},
			{time.October, []string{"oktober", "okt", "oct"}},
			{time.November, []string{"november", "nopember", "nov"}},
			{time.December, []string{"desember", "des", "dec"}},
		},
		Weekdays: map[string]time.Weekday{
			"senin":  time.Monday,
			"selasa": time.Tuesday,
			"rabu":   time.Wednesday,
			"kamis":  time.Thursday,
			"jumat":  time.Friday,
			"jum'at": time.Friday,
			"sabtu":  time.Saturday,
			"minggu": time.Sunday,
		},
	}
}

// WithVegetable returns a copy of l with an extra family appended after the
// built-in ones. Plain words are expected; they are quoted before matching.
func (l Lexicon) WithVegetable(canonical string, words ...string) Lexicon {
	canonical = strings.ToLower(strings.TrimSpace(canonical))
	variants := []string{regexp.QuoteMeta(canonical)}
	for _, w := range words {
		w = strings.ToLower(strings.TrimSpace(w))
		if w != "" && w != canonical {
			variants = append(variants, regexp.QuoteMeta(w))
		}
	}

	out := l
	out.Vegetables = append(append([]Vegetable(nil), l.Vegetables...), Vegetable{
		Canonical: canonical,
		Variants:  variants,
	})
	return out
}

// Validate reports tables that cannot be compiled into matchers.
func (l Lexicon) Validate() error {
	if len(l.Vegetables) == 0 {
		return fmt.Errorf("lexicon has no vegetables")
	}
	for _, v := range l.Vegetables {
		if v.Canonical == "" {
			return fmt.Errorf("vegetable with empty canonical name")
		}
		if strings.EqualFold(v.Canonical, AllVegetables) {
			return fmt.Errorf("vegetable name %q is reserved", AllVegetables)
		}
		if len(v.Variants) == 0 {
			return fmt.Errorf("vegetable %q has no variants", v.Canonical)
		}
		if _, err := regexp.Compile(alternation(v.Variants)); err != nil {
			return fmt.Errorf("vegetable %q: %w", v.Canonical, err)
		}
	}
	return nil
}

// Names returns the canonical vegetable names in lexicon order.
func (l Lexicon) Names() []string {
	out := make([]string, len(l.Vegetables))
	for i, v := range l.Vegetables {
		out[i] = v.Canonical
	}
	return out
}

// monthAlternation is every month alias, longest first so "sept" is tried
// before "sep".
func (l Lexicon) monthAlternation() string {
	var all []string
	for _, m := range l.Months {
		all = append(all, m.Aliases...)
	}
	return alternation(sortByLength(all))
}

// month resolves an alias to its month.
func (l Lexicon) month(alias string) (time.Month, bool) {
	for _, m := range l.Months {
		for _, a := range m.Aliases {
			if a == alias {
				return m.Month, true
			}
		}
	}
	return 0, false
}

func (l Lexicon) weekdayAlternation() string {
	var all []string
	for name := range l.Weekdays {
		all = append(all, regexp.QuoteMeta(name))
	}
	return alternation(sortByLength(all))
}

func alternation(parts []string) string {
	return "(?:" + strings.Join(parts, "|") + ")"
}

// sortByLength orders by descending length, then alphabetically, so the
// compiled pattern does not depend on map iteration order.
func sortByLength(items []string) []string {
	out := append([]string(nil), items...)
	sort.Slice(out, func(i, j int) bool {
		if len(out[i]) != len(out[j]) {
			return len(out[i]) > len(out[j])
		}
		return out[i] < out[j]
	})
	return out
}
