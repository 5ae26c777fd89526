package nlp

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// FormatGrams renders a weight with exactly two decimals. Values are rounded
// from their exact binary representation, halves to even, so 0.125 renders
// as "0.12" on every platform.
func FormatGrams(v float64) string {
	s := strconv.FormatFloat(v, 'f', 2, 64)
	if s == "-0.00" {
		return "0.00"
	}
	return s
}

// statisticPrefix is the opening of a single-line answer for stat.
func statisticPrefix(stat Statistic) string {
	switch stat {
	case StatAverage:
		return "Rata-rata berat"
	case StatMaximum:
		return "Berat maksimum"
	case StatMinimum:
		return "Berat minimum"
	default:
		return "Berat total"
	}
}

// combinedPrefix opens the combined line of a multi-vegetable answer.
func combinedPrefix(stat Statistic) string {
	switch stat {
	case StatAverage:
		return "Rata-rata gabungan"
	case StatMaximum:
		return "Berat maksimum gabungan"
	case StatMinimum:
		return "Berat minimum gabungan"
	default:
		return "Total berat"
	}
}

func noDataMessage(subject string, tf TimeFrame) string {
	return fmt.Sprintf("Tidak ada data %s yang terdeteksi pada %s.", subject, tf.FullDescription)
}

// formatAnswer renders the per-vegetable answer for intent over tf.
func formatAnswer(intent Intent, tf TimeFrame, res Result) string {
	sel := intent.Selector
	switch {
	case sel.Kind == SelectSet:
		return formatSet(intent, tf, res)
	case sel.Kind == SelectAll && intent.Statistic == StatTotal:
		return formatAllDetail(tf, res)
	}

	subject := sel.Label()
	if res.Overall.Empty() {
		if sel.Kind == SelectAll {
			subject = "sayuran"
		}
		return noDataMessage(subject, tf)
	}
	return fmt.Sprintf("%s %s %s adalah %s gram.",
		statisticPrefix(intent.Statistic), subject, tf.phrase(),
		FormatGrams(res.Overall.Value(intent.Statistic)))
}

func formatSet(intent Intent, tf TimeFrame, res Result) string {
	label := intent.Selector.Label()
	if res.Overall.Empty() {
		return noDataMessage(label, tf)
	}

	var b strings.Builder
	heading := "Berat"
	if intent.Statistic != StatTotal {
		heading = statisticPrefix(intent.Statistic)
	}
	fmt.Fprintf(&b, "%s %s %s:\n", heading, label, tf.phrase())
	for _, s := range res.Breakdown {
		switch {
		case intent.Statistic == StatTotal && s.Empty():
			fmt.Fprintf(&b, "- %s: %s gram (tidak ada data)\n", s.Name, FormatGrams(0))
		case intent.Statistic == StatTotal:
			fmt.Fprintf(&b, "- %s: %s gram (%d data)\n", s.Name, FormatGrams(s.Total), s.Count)
		case s.Empty():
			fmt.Fprintf(&b, "- %s: tidak ada data\n", s.Name)
		default:
			fmt.Fprintf(&b, "- %s: %s gram\n", s.Name, FormatGrams(s.Value(intent.Statistic)))
		}
	}
	fmt.Fprintf(&b, "\n%s %s: %s gram", combinedPrefix(intent.Statistic), label,
		FormatGrams(res.Overall.Value(intent.Statistic)))
	return b.String()
}

func formatAllDetail(tf TimeFrame, res Result) string {
	if res.Overall.Empty() {
		return noDataMessage("sayuran", tf)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Berat sayuran %s:\n", tf.phrase())
	for _, s := range res.Breakdown {
		fmt.Fprintf(&b, "- %s: %s gram (%d data)\n", s.Name, FormatGrams(s.Total), s.Count)
	}
	fmt.Fprintf(&b, "\nTotal berat semua sayuran: %s gram", FormatGrams(res.Overall.Total))
	return b.String()
}

// formatGeneral renders the cross-vegetable statistics. label names the
// period, or "keseluruhan" when the question gave none.
func formatGeneral(label string, res Result) string {
	if res.Overall.Empty() {
		return fmt.Sprintf("Tidak ada data sayuran yang terdeteksi pada %s.", label)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Statistik %s:\n", label)
	fmt.Fprintf(&b, "- Total berat semua sayuran: %s gram\n", FormatGrams(res.Overall.Total))
	fmt.Fprintf(&b, "- Jenis sayuran terbanyak terdeteksi: %s (%d kali)\n", res.MostCommon.Name, res.MostCommon.Count)
	fmt.Fprintf(&b, "- Jenis sayuran dengan berat total tertinggi: %s (%s gram)\n", res.Heaviest.Name, FormatGrams(res.Heaviest.Total))
	fmt.Fprintf(&b, "- Total jenis sayuran terdeteksi: %d jenis", res.DistinctTypes)
	return b.String()
}

// formatListing renders every vegetable with its total, heaviest first.
func formatListing(label string, res Result) string {
	if res.Overall.Empty() {
		return fmt.Sprintf("Tidak ada data sayuran yang terdeteksi pada %s.", label)
	}

	items := append([]Summary(nil), res.Breakdown...)
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Total > items[j].Total
	})

	var b strings.Builder
	fmt.Fprintf(&b, "Daftar sayuran %s:\n", label)
	for _, s := range items {
		fmt.Fprintf(&b, "- %s: %s gram\n", s.Name, FormatGrams(s.Total))
	}
	fmt.Fprintf(&b, "\nTotal berat keseluruhan: %s gram\n", FormatGrams(res.Overall.Total))
	fmt.Fprintf(&b, "Total jenis sayuran: %d jenis", res.DistinctTypes)
	return b.String()
}
