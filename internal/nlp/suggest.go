package nlp

import (
	"math/rand"
	"strconv"
	"strings"
	"time"
)

var questionTemplates = []string{
	"Berapa berat [sayuran] yang sudah dicatat hari ini?",
	"Berapa berat seluruh sayuran yang sudah dicatat hari ini?",
	"Berapa berat [sayuran] yang sudah dicatat minggu ini?",
	"Berapa berat seluruh sayuran yang sudah dicatat minggu ini?",
	"Berapa berat seluruh sayuran yang sudah dicatat pada [bulan] [tahun]?",
	"Berapa berat seluruh sayuran yang sudah dicatat pada tahun [tahun]?",
	"Berapa berat [sayuran] yang sudah dicatat pada [bulan] [tahun]?",
	"Berapa berat [sayuran] yang sudah dicatat pada tahun lalu?",
	"Berapa berat seluruh sayuran yang sudah dicatat pada tahun lalu?",
	"Berapa berat [sayuran] yang sudah dicatat pada bulan lalu?",
	"Berapa berat seluruh sayuran yang sudah dicatat pada bulan lalu?",
	"Berapa berat [sayuran] yang sudah dicatat pada tahun ini?",
	"Berapa berat seluruh sayuran yang sudah dicatat pada tahun ini?",
	"Berapa berat [sayuran] yang sudah dicatat pada bulan ini?",
	"Berapa berat seluruh sayuran yang sudah dicatat pada bulan ini?",
	"Rata-rata berat [sayuran] minggu lalu berapa?",
	"Berapa berat maksimum [sayuran] bulan ini?",
	"Rekap statistik sayuran bulan ini",
	"Sayuran apa saja yang ditimbang tahun ini?",
	"Berapa total berat bayam dan kangkung yang sudah dicatat bulan ini?",
	"Berapa total berat bayam dan pakcoy yang sudah dicatat bulan ini?",
	"Berapa total berat pakcoy dan kangkung yang sudah dicatat bulan ini?",
	"Berapa total berat pakcoy dan bayam yang sudah dicatat minggu ini?",
	"Berapa total berat pakcoy dan kangkung yang sudah dicatat minggu ini?",
	"Berapa total berat kangkung dan bayam yang sudah dicatat minggu ini?",
	"Berapa total berat kangkung dan pakcoy yang sudah dicatat hari ini?",
	"Berapa total berat kangkung dan bayam yang sudah dicatat hari ini?",
	"Berapa total berat bayam dan pakcoy yang sudah dicatat hari ini?",
}

// Suggester hands out example questions the engine can answer. A template
// is not reused until every template has been shown once.
type Suggester struct {
	cal        Calendar
	vegetables []string
	rnd        *rand.Rand
	used       map[string]bool
}

// NewSuggester fills templates with names from lex and dates from cal. A
// nil rnd seeds from the clock.
func NewSuggester(cal Calendar, lex Lexicon, rnd *rand.Rand) *Suggester {
	if rnd == nil {
		rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Suggester{
		cal:        cal,
		vegetables: lex.Names(),
		rnd:        rnd,
		used:       make(map[string]bool),
	}
}

// Next returns up to count distinct example questions.
func (s *Suggester) Next(count int) []string {
	var pool []string
	for _, t := range questionTemplates {
		if !s.used[t] {
			pool = append(pool, t)
		}
	}
	if len(pool) < count {
		s.used = make(map[string]bool)
		pool = append([]string(nil), questionTemplates...)
	}

	var out []string
	for i := 0; i < count && len(pool) > 0; i++ {
		idx := s.rnd.Intn(len(pool))
		t := pool[idx]
		pool = append(pool[:idx], pool[idx+1:]...)
		s.used[t] = true
		out = append(out, s.fill(t))
	}
	return out
}

// fill substitutes the placeholders of t. Multi-vegetable templates name
// their vegetables already and are returned as written.
func (s *Suggester) fill(t string) string {
	if strings.Contains(t, "total berat") {
		return t
	}
	if strings.Contains(t, "[sayuran]") && len(s.vegetables) > 0 {
		t = strings.ReplaceAll(t, "[sayuran]", s.vegetables[s.rnd.Intn(len(s.vegetables))])
	}
	if strings.Contains(t, "[bulan]") {
		t = strings.ReplaceAll(t, "[bulan]", MonthName(time.Month(s.rnd.Intn(12)+1)))
	}
	if strings.Contains(t, "[tahun]") {
		year := s.cal.Today().Year() - s.rnd.Intn(2)
		t = strings.ReplaceAll(t, "[tahun]", strconv.Itoa(year))
	}
	return t
}
