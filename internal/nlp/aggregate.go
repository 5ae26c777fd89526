package nlp

import (
	"strings"

	"github.com/veggievision/lokatani/internal/dataset"
)

// Summary holds the statistics of one group of records. Average, Min and
// Max are zero when Count is zero and must not be displayed.
type Summary struct {
	Name    string
	Count   int
	Total   float64
	Average float64
	Min     float64
	Max     float64
}

// Empty reports whether the group has no records.
func (s Summary) Empty() bool {
	return s.Count == 0
}

// Value returns the figure stat asks for.
func (s Summary) Value(stat Statistic) float64 {
	switch stat {
	case StatAverage:
		return s.Average
	case StatMaximum:
		return s.Max
	case StatMinimum:
		return s.Min
	default:
		return s.Total
	}
}

// Summarize computes the statistics of records under name.
func Summarize(name string, records []dataset.Record) Summary {
	s := Summary{Name: name}
	for _, r := range records {
		if s.Count == 0 || r.Weight < s.Min {
			s.Min = r.Weight
		}
		if s.Count == 0 || r.Weight > s.Max {
			s.Max = r.Weight
		}
		s.Total += r.Weight
		s.Count++
	}
	if s.Count > 0 {
		s.Average = s.Total / float64(s.Count)
	}
	return s
}

// Result is the aggregate over the records a question selected.
type Result struct {
	// Overall covers every selected record.
	Overall Summary
	// Breakdown has one entry per vegetable. For a set selector it follows
	// the order of mention and includes vegetables with no records; for the
	// all selector it follows first appearance in the records.
	Breakdown []Summary
	// MostCommon and Heaviest are only set for the all selector. Ties go to
	// the vegetable seen first.
	MostCommon    Summary
	Heaviest      Summary
	DistinctTypes int
}

// Aggregate filters records by sel and computes the statistics the answer
// needs. Records are expected to be already restricted to the time frame.
func Aggregate(records []dataset.Record, sel Selector) Result {
	switch sel.Kind {
	case SelectAll:
		return aggregateAll(records)
	case SelectSet:
		return aggregateSet(records, sel.Names)
	case SelectOne:
		matched := filterType(records, sel.Names[0])
		s := Summarize(sel.Names[0], matched)
		return Result{Overall: s, Breakdown: []Summary{s}}
	default:
		return Result{}
	}
}

func aggregateSet(records []dataset.Record, names []string) Result {
	var res Result
	var union []dataset.Record
	for _, name := range names {
		matched := filterType(records, name)
		res.Breakdown = append(res.Breakdown, Summarize(name, matched))
		union = append(union, matched...)
	}
	res.Overall = Summarize(joinIndonesian(names), union)
	return res
}

func aggregateAll(records []dataset.Record) Result {
	var order []string
	groups := make(map[string][]dataset.Record)
	for _, r := range records {
		key := strings.ToLower(r.VegetableType)
		if _, ok := groups[key]; !ok {
			order = append(order, key)
		}
		groups[key] = append(groups[key], r)
	}

	res := Result{Overall: Summarize("semua sayuran", records), DistinctTypes: len(order)}
	for i, key := range order {
		s := Summarize(key, groups[key])
		res.Breakdown = append(res.Breakdown, s)
		if i == 0 || s.Count > res.MostCommon.Count {
			res.MostCommon = s
		}
		if i == 0 || s.Total > res.Heaviest.Total {
			res.Heaviest = s
		}
	}
	return res
}

func filterType(records []dataset.Record, name string) []dataset.Record {
	var out []dataset.Record
	for _, r := range records {
		if strings.EqualFold(r.VegetableType, name) {
			out = append(out, r)
		}
	}
	return out
}
